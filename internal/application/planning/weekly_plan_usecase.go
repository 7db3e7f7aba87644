// Package planning administra los planes semanales de stock y deriva los faltantes
// que consume el motor de alertas.
package planning

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/domain/inventory"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Shortfall describe un producto cuyo stock actual está por debajo de lo planificado para la semana vigente.
type Shortfall struct {
	ProductID       int64
	ProductName     string
	CurrentStock    decimal.Decimal
	PlannedQuantity decimal.Decimal
	WeeklyPlanID    int64
	Unit            string
}

// CreatePlanInput entrada para crear un plan.
type CreatePlanInput struct {
	ProductID       int64
	UserID          int64
	PlannedQuantity decimal.Decimal
	Unit            string // vacío = unidad del producto
	WeekStartDate   time.Time
	WeekEndDate     time.Time
	Notes           string
}

// UpdatePlanInput campos modificables de un plan activo; nil = sin cambio.
type UpdatePlanInput struct {
	PlannedQuantity *decimal.Decimal
	Unit            *string
	WeekStartDate   *time.Time
	WeekEndDate     *time.Time
	Notes           *string
}

// WeeklyPlanUseCase CRUD de planes semanales y consulta de faltantes.
type WeeklyPlanUseCase struct {
	planRepo    repository.WeeklyPlanRepository
	productRepo repository.ProductRepository
}

// NewWeeklyPlanUseCase construye el caso de uso.
func NewWeeklyPlanUseCase(planRepo repository.WeeklyPlanRepository, productRepo repository.ProductRepository) *WeeklyPlanUseCase {
	return &WeeklyPlanUseCase{planRepo: planRepo, productRepo: productRepo}
}

// Create valida y persiste un plan activo.
func (uc *WeeklyPlanUseCase) Create(ctx context.Context, in CreatePlanInput) (*entity.WeeklyStockPlan, error) {
	if in.UserID <= 0 {
		return nil, domain.Invalid("user_id", "requerido")
	}
	qty, start, end, err := validatePlan(in.PlannedQuantity, in.WeekStartDate, in.WeekEndDate)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, domain.NotFound("Product")
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = product.Unit
	}
	now := time.Now()
	plan := &entity.WeeklyStockPlan{
		ProductID:       product.ID,
		UserID:          in.UserID,
		PlannedQuantity: qty,
		Unit:            unit,
		WeekStartDate:   start,
		WeekEndDate:     end,
		IsActive:        true,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetByID obtiene un plan (activo o no).
func (uc *WeeklyPlanUseCase) GetByID(ctx context.Context, id int64) (*entity.WeeklyStockPlan, error) {
	plan, err := uc.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.NotFound("WeeklyPlan")
	}
	return plan, nil
}

// List lista planes con filtros.
func (uc *WeeklyPlanUseCase) List(ctx context.Context, filter repository.PlanFilter) ([]*entity.WeeklyStockPlan, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.planRepo.List(ctx, filter)
}

// Update modifica cantidad, unidad, fechas o notas. Solo se permite sobre planes activos.
func (uc *WeeklyPlanUseCase) Update(ctx context.Context, id int64, in UpdatePlanInput) (*entity.WeeklyStockPlan, error) {
	plan, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, domain.ErrConflict
	}
	qty, start, end := plan.PlannedQuantity, plan.WeekStartDate, plan.WeekEndDate
	if in.PlannedQuantity != nil {
		qty = *in.PlannedQuantity
	}
	if in.WeekStartDate != nil {
		start = *in.WeekStartDate
	}
	if in.WeekEndDate != nil {
		end = *in.WeekEndDate
	}
	qty, start, end, err = validatePlan(qty, start, end)
	if err != nil {
		return nil, err
	}
	plan.PlannedQuantity = qty
	plan.WeekStartDate = start
	plan.WeekEndDate = end
	if in.Unit != nil && strings.TrimSpace(*in.Unit) != "" {
		plan.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Notes != nil {
		plan.Notes = strings.TrimSpace(*in.Notes)
	}
	plan.UpdatedAt = time.Now()
	if err := uc.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Deactivate es el borrado lógico de un plan. Las alertas que lo referencian se conservan.
func (uc *WeeklyPlanUseCase) Deactivate(ctx context.Context, id int64) (*entity.WeeklyStockPlan, error) {
	plan, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return plan, nil
	}
	plan.IsActive = false
	plan.UpdatedAt = time.Now()
	if err := uc.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// CurrentWeekPlans devuelve los planes activos cuya semana contiene asOf.
func (uc *WeeklyPlanUseCase) CurrentWeekPlans(ctx context.Context, asOf time.Time) ([]*entity.WeeklyStockPlan, error) {
	return uc.planRepo.ListCurrent(ctx, entity.DateOf(asOf))
}

// Shortfalls cruza los planes vigentes con el stock actual de cada producto y devuelve
// los que están por debajo de lo planificado. Solo lectura.
func (uc *WeeklyPlanUseCase) Shortfalls(ctx context.Context, asOf time.Time) ([]Shortfall, error) {
	rows, err := uc.planRepo.ListCurrentWithStock(ctx, entity.DateOf(asOf))
	if err != nil {
		return nil, err
	}
	out := make([]Shortfall, 0, len(rows))
	for _, r := range rows {
		if !inventory.IsShortfall(r.CurrentStock, r.Plan.PlannedQuantity) {
			continue
		}
		unit := r.Plan.Unit
		if unit == "" {
			unit = r.ProductUnit
		}
		out = append(out, Shortfall{
			ProductID:       r.Plan.ProductID,
			ProductName:     r.ProductName,
			CurrentStock:    r.CurrentStock,
			PlannedQuantity: r.Plan.PlannedQuantity,
			WeeklyPlanID:    r.Plan.ID,
			Unit:            unit,
		})
	}
	return out, nil
}

func validatePlan(qty decimal.Decimal, start, end time.Time) (decimal.Decimal, time.Time, time.Time, error) {
	q := qty.Round(inventory.QuantityScale)
	if !q.GreaterThan(decimal.Zero) {
		return q, start, end, domain.Invalid("planned_quantity", "debe ser mayor que cero")
	}
	if q.GreaterThan(inventory.MaxQuantity) {
		return q, start, end, domain.Invalid("planned_quantity", "supera el máximo de "+inventory.MaxQuantity.StringFixed(inventory.QuantityScale))
	}
	if start.IsZero() || end.IsZero() {
		return q, start, end, domain.Invalid("week_start_date", "fechas de inicio y fin requeridas")
	}
	s, e := entity.DateOf(start), entity.DateOf(end)
	if s.After(e) {
		return q, s, e, domain.Invalid("week_end_date", "debe ser igual o posterior a week_start_date")
	}
	return q, s, e, nil
}
