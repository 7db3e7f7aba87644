package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePlanRequest body para POST /api/plans. Fechas en formato YYYY-MM-DD.
type CreatePlanRequest struct {
	ProductID       int64           `json:"product_id" validate:"required,gt=0"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity" validate:"gt=0"`
	Unit            string          `json:"unit" validate:"max=50"`
	WeekStartDate   string          `json:"week_start_date" validate:"required,datetime=2006-01-02"`
	WeekEndDate     string          `json:"week_end_date" validate:"required,datetime=2006-01-02"`
	Notes           string          `json:"notes" validate:"max=1000"`
}

// UpdatePlanRequest body para PUT /api/plans/:id.
type UpdatePlanRequest struct {
	PlannedQuantity *decimal.Decimal `json:"planned_quantity" validate:"omitempty,gt=0"`
	Unit            *string          `json:"unit" validate:"omitempty,max=50"`
	WeekStartDate   *string          `json:"week_start_date" validate:"omitempty,datetime=2006-01-02"`
	WeekEndDate     *string          `json:"week_end_date" validate:"omitempty,datetime=2006-01-02"`
	Notes           *string          `json:"notes" validate:"omitempty,max=1000"`
}

// PlanResponse salida de un plan semanal.
type PlanResponse struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	UserID          int64           `json:"user_id"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity"`
	Unit            string          `json:"unit"`
	WeekStartDate   string          `json:"week_start_date"`
	WeekEndDate     string          `json:"week_end_date"`
	IsActive        bool            `json:"is_active"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ShortfallResponse faltante de un producto frente al plan vigente.
type ShortfallResponse struct {
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity"`
	WeeklyPlanID    int64           `json:"weekly_plan_id"`
	Unit            string          `json:"unit"`
}
