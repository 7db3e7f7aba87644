package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
)

// AlertFilter filtros para listar alertas.
type AlertFilter struct {
	Resolved  *bool
	ProductID *int64
	Limit     int
	Offset    int
}

// LowStockAlertRepository define el puerto de persistencia para alertas de stock bajo.
type LowStockAlertRepository interface {
	// HasUnresolved indica si ya existe una alerta abierta para el par (producto, plan).
	HasUnresolved(ctx context.Context, productID, weeklyPlanID int64) (bool, error)
	// Create inserta la alerta. Devuelve domain.ErrDuplicate si ya hay una abierta para el par.
	Create(ctx context.Context, alert *entity.LowStockAlert) error
	GetByID(ctx context.Context, id int64) (*entity.LowStockAlert, error)
	// MarkResolved resuelve la alerta si estaba abierta. ok=false si no había alerta abierta con ese id.
	MarkResolved(ctx context.Context, id int64, at time.Time) (alert *entity.LowStockAlert, ok bool, err error)
	List(ctx context.Context, filter AlertFilter) ([]*entity.LowStockAlert, error)
	CountUnresolved(ctx context.Context) (int64, error)
}
