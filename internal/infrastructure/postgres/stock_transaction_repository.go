package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

const transactionColumns = `id, product_id, user_id, type, quantity, original_quantity, original_unit,
	previous_stock, new_stock, po_number, so_number, transaction_date, created_at`

// StockTransactionRepo registro de movimientos sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: no hay UPDATE ni DELETE.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create persiste un movimiento y completa ID y CreatedAt.
func (r *StockTransactionRepo) Create(ctx context.Context, t *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (product_id, user_id, type, quantity, original_quantity, original_unit,
			previous_stock, new_stock, po_number, so_number, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		t.ProductID, t.UserID, t.Type, t.Quantity, t.OriginalQuantity, t.OriginalUnit,
		t.PreviousStock, t.NewStock, t.PONumber, t.SONumber, t.TransactionDate,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("user_id", "usuario inexistente")
		}
		return storageErr("create stock transaction", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockTransactionRepo) GetByID(ctx context.Context, id int64) (*entity.StockTransaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM stock_transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get stock transaction", err)
	}
	return t, nil
}

// List lista movimientos según el filtro, más recientes primero.
func (r *StockTransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	var conds []string
	var args []any
	pos := 1
	add := func(cond string, v any) {
		conds = append(conds, fmt.Sprintf(cond, pos))
		args = append(args, v)
		pos++
	}
	if f.ProductID != nil {
		add("product_id = $%d", *f.ProductID)
	}
	if f.UserID != nil {
		add("user_id = $%d", *f.UserID)
	}
	if f.Type != nil {
		add("type = $%d", *f.Type)
	}
	if f.From != nil {
		add("transaction_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("transaction_date <= $%d", *f.To)
	}

	query := `SELECT ` + transactionColumns + ` FROM stock_transactions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY transaction_date DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list stock transactions", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CountByProduct cuenta los movimientos de un producto.
func (r *StockTransactionRepo) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_transactions WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, storageErr("count stock transactions", err)
	}
	return n, nil
}

func scanTransaction(row pgx.Row) (*entity.StockTransaction, error) {
	var t entity.StockTransaction
	err := row.Scan(
		&t.ID, &t.ProductID, &t.UserID, &t.Type, &t.Quantity, &t.OriginalQuantity, &t.OriginalUnit,
		&t.PreviousStock, &t.NewStock, &t.PONumber, &t.SONumber, &t.TransactionDate, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
