package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
)

// TransactionFilter filtros opcionales para listar movimientos. Campos nil no filtran.
type TransactionFilter struct {
	ProductID *int64
	UserID    *int64
	Type      *string // stock_in | stock_out
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockTransactionRepository define el puerto del registro de movimientos (solo inserción y lectura).
type StockTransactionRepository interface {
	// Create inserta el registro y completa ID y CreatedAt.
	Create(ctx context.Context, tx *entity.StockTransaction) error
	GetByID(ctx context.Context, id int64) (*entity.StockTransaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*entity.StockTransaction, error)
	CountByProduct(ctx context.Context, productID int64) (int64, error)
}
