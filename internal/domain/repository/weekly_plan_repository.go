package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PlanStock es un plan vigente unido al producto que planifica.
type PlanStock struct {
	Plan         entity.WeeklyStockPlan
	ProductName  string
	ProductUnit  string
	CurrentStock decimal.Decimal
}

// PlanFilter filtros para listar planes.
type PlanFilter struct {
	ProductID  *int64
	ActiveOnly bool
	Limit      int
	Offset     int
}

// WeeklyPlanRepository define el puerto de persistencia para planes semanales.
type WeeklyPlanRepository interface {
	Create(ctx context.Context, plan *entity.WeeklyStockPlan) error
	GetByID(ctx context.Context, id int64) (*entity.WeeklyStockPlan, error)
	Update(ctx context.Context, plan *entity.WeeklyStockPlan) error
	List(ctx context.Context, filter PlanFilter) ([]*entity.WeeklyStockPlan, error)
	// ListCurrent devuelve los planes activos con week_start_date <= asOf <= week_end_date.
	ListCurrent(ctx context.Context, asOf time.Time) ([]*entity.WeeklyStockPlan, error)
	// ListCurrentWithStock igual que ListCurrent pero unido al producto activo (nombre, unidad, stock actual).
	ListCurrentWithStock(ctx context.Context, asOf time.Time) ([]PlanStock, error)
}
