package inventory

import (
	"context"

	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios atados a ella.
// Si fn devuelve error se hace Rollback; si no, Commit. fn puede reintentarse ante
// conflictos de serialización, así que no debe tener efectos fuera de los repositorios.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txnRepo repository.StockTransactionRepository,
	) error) error
}

// StockNotifier recibe los movimientos ya confirmados (p. ej. para el feed en vivo).
type StockNotifier interface {
	StockChanged(product *entity.Product, txn *entity.StockTransaction)
}
