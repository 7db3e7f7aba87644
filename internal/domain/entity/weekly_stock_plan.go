package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeeklyStockPlan es la cantidad objetivo de un producto para un rango de fechas (inclusive).
// El solapamiento entre planes del mismo producto no se impide.
type WeeklyStockPlan struct {
	ID              int64
	ProductID       int64
	UserID          int64
	PlannedQuantity decimal.Decimal
	Unit            string
	WeekStartDate   time.Time
	WeekEndDate     time.Time
	IsActive        bool
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Covers indica si asOf cae dentro de [WeekStartDate, WeekEndDate] comparando solo fechas de calendario.
func (p *WeeklyStockPlan) Covers(asOf time.Time) bool {
	d := DateOf(asOf)
	return !d.Before(DateOf(p.WeekStartDate)) && !d.After(DateOf(p.WeekEndDate))
}

// DateOf trunca t a la medianoche UTC de su fecha de calendario (en su propia zona).
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
