package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas read-only para el dashboard.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// SumQuantityByType suma cantidades del tipo dado con transaction_date en [from, to).
func (r *DashboardRepo) SumQuantityByType(ctx context.Context, txType string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_transactions
		WHERE type = $1 AND transaction_date >= $2 AND transaction_date < $3`,
		txType, from, to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, storageErr("sum quantity by type", err)
	}
	return total, nil
}

// TotalActiveStock suma current_stock de productos activos.
func (r *DashboardRepo) TotalActiveStock(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(current_stock), 0) FROM products WHERE is_active`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, storageErr("total active stock", err)
	}
	return total, nil
}

// CountActiveBelow cuenta productos activos con stock menor que threshold.
func (r *DashboardRepo) CountActiveBelow(ctx context.Context, threshold decimal.Decimal) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE is_active AND current_stock < $1`, threshold,
	).Scan(&n)
	if err != nil {
		return 0, storageErr("count active below", err)
	}
	return n, nil
}
