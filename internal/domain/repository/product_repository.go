package repository

import (
	"context"

	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (libro de saldos).
// UpdateStock y GetForUpdate solo los usa el motor de movimientos dentro de una transacción.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// Update modifica nombre, unidad y estado; nunca el stock.
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id int64, currentStock decimal.Decimal) error
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id int64) error
}
