package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardRepository consultas de solo lectura para el resumen del dashboard.
type DashboardRepository interface {
	// SumQuantityByType suma cantidades de movimientos del tipo dado con fecha en [from, to).
	SumQuantityByType(ctx context.Context, txType string, from, to time.Time) (decimal.Decimal, error)
	// TotalActiveStock suma current_stock de productos activos.
	TotalActiveStock(ctx context.Context) (decimal.Decimal, error)
	// CountActiveBelow cuenta productos activos cuyo stock es menor que threshold.
	CountActiveBelow(ctx context.Context, threshold decimal.Decimal) (int64, error)
}
