package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de alerta.
const (
	AlertLevelLow      = "low"
	AlertLevelCritical = "critical"
)

// LowStockAlert es una alerta de faltante para un par (producto, plan semanal).
// CurrentStock y PlannedQuantity son fotografías tomadas al crear la alerta.
// Estados: creada (sin resolver) -> resuelta (terminal).
type LowStockAlert struct {
	ID              int64
	ProductID       int64
	WeeklyPlanID    int64
	CurrentStock    decimal.Decimal
	PlannedQuantity decimal.Decimal
	AlertLevel      string
	IsResolved      bool
	AlertDate       time.Time
	ResolvedAt      *time.Time
}
