// Package alerts convierte los faltantes de los planes semanales en alertas persistentes,
// sin duplicar alertas abiertas para el mismo par (producto, plan).
package alerts

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/stock-planner-api/internal/application/planning"
	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/domain/inventory"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
	"github.com/jhoicas/stock-planner-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// ShortfallSource entrega los faltantes vigentes a una fecha. Lo implementa *planning.WeeklyPlanUseCase.
type ShortfallSource interface {
	Shortfalls(ctx context.Context, asOf time.Time) ([]planning.Shortfall, error)
}

// AlertNotifier recibe las alertas recién creadas.
type AlertNotifier interface {
	AlertsCreated(alerts []*entity.LowStockAlert)
}

// LowStockAlertUseCase motor de alertas de stock bajo.
type LowStockAlertUseCase struct {
	shortfalls    ShortfallSource
	alertRepo     repository.LowStockAlertRepository
	notifier      AlertNotifier
	log           *logger.Logger
	criticalRatio decimal.Decimal
	now           func() time.Time
}

// NewLowStockAlertUseCase construye el motor. criticalRatio <= 0 usa 0.5.
func NewLowStockAlertUseCase(
	shortfalls ShortfallSource,
	alertRepo repository.LowStockAlertRepository,
	criticalRatio decimal.Decimal,
	log *logger.Logger,
) *LowStockAlertUseCase {
	if !criticalRatio.GreaterThan(decimal.Zero) {
		criticalRatio = inventory.DefaultCriticalRatio
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LowStockAlertUseCase{
		shortfalls:    shortfalls,
		alertRepo:     alertRepo,
		log:           log,
		criticalRatio: criticalRatio,
		now:           time.Now,
	}
}

// WithNotifier registra un AlertNotifier.
func (uc *LowStockAlertUseCase) WithNotifier(n AlertNotifier) *LowStockAlertUseCase {
	uc.notifier = n
	return uc
}

// ProcessLowStockChecking calcula los faltantes de hoy y crea una alerta por cada par
// (producto, plan) que no tenga ya una alerta abierta. Devuelve solo las alertas nuevas;
// repetir la llamada sin cambios de stock devuelve una lista vacía.
func (uc *LowStockAlertUseCase) ProcessLowStockChecking(ctx context.Context) ([]*entity.LowStockAlert, error) {
	now := uc.now()
	shortfalls, err := uc.shortfalls.Shortfalls(ctx, now)
	if err != nil {
		return nil, err
	}

	created := make([]*entity.LowStockAlert, 0)
	for _, s := range shortfalls {
		open, err := uc.alertRepo.HasUnresolved(ctx, s.ProductID, s.WeeklyPlanID)
		if err != nil {
			return created, err
		}
		if open {
			continue
		}
		alert := &entity.LowStockAlert{
			ProductID:       s.ProductID,
			WeeklyPlanID:    s.WeeklyPlanID,
			CurrentStock:    s.CurrentStock,
			PlannedQuantity: s.PlannedQuantity,
			AlertLevel:      inventory.ClassifyAlertLevel(s.CurrentStock, s.PlannedQuantity, uc.criticalRatio),
			AlertDate:       now,
		}
		if err := uc.alertRepo.Create(ctx, alert); err != nil {
			// Otra pasada concurrente la creó entre la verificación y el insert (índice único parcial).
			if errors.Is(err, domain.ErrDuplicate) {
				uc.log.Debug().
					Int64("product_id", s.ProductID).
					Int64("weekly_plan_id", s.WeeklyPlanID).
					Msg("alerta abierta ya existente, omitida")
				continue
			}
			return created, err
		}
		created = append(created, alert)
	}

	uc.log.Info().
		Int("shortfalls", len(shortfalls)).
		Int("created", len(created)).
		Msg("verificación de stock bajo completada")

	if uc.notifier != nil && len(created) > 0 {
		uc.notifier.AlertsCreated(created)
	}
	return created, nil
}

// Resolve marca la alerta como resuelta (resolvedAt = ahora). Una alerta ya resuelta se
// devuelve sin cambios. No existe reapertura: si el faltante persiste, la siguiente pasada crea otra.
func (uc *LowStockAlertUseCase) Resolve(ctx context.Context, id int64) (*entity.LowStockAlert, error) {
	alert, ok, err := uc.alertRepo.MarkResolved(ctx, id, uc.now())
	if err != nil {
		return nil, err
	}
	if ok {
		return alert, nil
	}
	existing, err := uc.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NotFound("Alert")
	}
	return existing, nil
}

// GetByID obtiene una alerta.
func (uc *LowStockAlertUseCase) GetByID(ctx context.Context, id int64) (*entity.LowStockAlert, error) {
	alert, err := uc.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.NotFound("Alert")
	}
	return alert, nil
}

// List lista alertas, más recientes primero.
func (uc *LowStockAlertUseCase) List(ctx context.Context, filter repository.AlertFilter) ([]*entity.LowStockAlert, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.alertRepo.List(ctx, filter)
}
