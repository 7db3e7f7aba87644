package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertResponse salida de una alerta de stock bajo.
type AlertResponse struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	WeeklyPlanID    int64           `json:"weekly_plan_id"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity"`
	AlertLevel      string          `json:"alert_level"`
	IsResolved      bool            `json:"is_resolved"`
	AlertDate       time.Time       `json:"alert_date"`
	ResolvedAt      *time.Time      `json:"resolved_at,omitempty"`
}

// AlertCheckResponse resultado de POST /api/alerts/check.
type AlertCheckResponse struct {
	Created []AlertResponse `json:"created"`
	Total   int             `json:"total"`
}
