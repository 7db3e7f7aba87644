package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
)

var _ repository.LowStockAlertRepository = (*LowStockAlertRepo)(nil)

const alertColumns = `id, product_id, weekly_plan_id, current_stock, planned_quantity, alert_level,
	is_resolved, alert_date, resolved_at`

// LowStockAlertRepo alertas de stock bajo sobre PostgreSQL.
// El índice único parcial (product_id, weekly_plan_id) WHERE NOT is_resolved garantiza
// una sola alerta abierta por par aunque dos chequeos corran a la vez.
type LowStockAlertRepo struct {
	q Querier
}

// NewLowStockAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLowStockAlertRepository(q Querier) *LowStockAlertRepo {
	return &LowStockAlertRepo{q: q}
}

// HasUnresolved indica si hay alerta abierta para el par (producto, plan).
func (r *LowStockAlertRepo) HasUnresolved(ctx context.Context, productID, weeklyPlanID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM low_stock_alerts
			WHERE product_id = $1 AND weekly_plan_id = $2 AND NOT is_resolved
		)`, productID, weeklyPlanID).Scan(&exists)
	if err != nil {
		return false, storageErr("check unresolved alert", err)
	}
	return exists, nil
}

// Create inserta la alerta. Devuelve domain.ErrDuplicate si ya hay una abierta para el par.
func (r *LowStockAlertRepo) Create(ctx context.Context, a *entity.LowStockAlert) error {
	query := `
		INSERT INTO low_stock_alerts (product_id, weekly_plan_id, current_stock, planned_quantity, alert_level,
			is_resolved, alert_date)
		VALUES ($1, $2, $3, $4, $5, false, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		a.ProductID, a.WeeklyPlanID, a.CurrentStock, a.PlannedQuantity, a.AlertLevel, a.AlertDate,
	).Scan(&a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("insert low stock alert", err)
	}
	a.IsResolved = false
	a.ResolvedAt = nil
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *LowStockAlertRepo) GetByID(ctx context.Context, id int64) (*entity.LowStockAlert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, `SELECT `+alertColumns+` FROM low_stock_alerts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get low stock alert", err)
	}
	return a, nil
}

// MarkResolved resuelve la alerta solo si estaba abierta (una única sentencia, sin carrera).
func (r *LowStockAlertRepo) MarkResolved(ctx context.Context, id int64, at time.Time) (*entity.LowStockAlert, bool, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, `
		UPDATE low_stock_alerts SET is_resolved = true, resolved_at = $2
		WHERE id = $1 AND NOT is_resolved
		RETURNING `+alertColumns, id, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, storageErr("resolve low stock alert", err)
	}
	return a, true, nil
}

// List lista alertas según el filtro, más recientes primero.
func (r *LowStockAlertRepo) List(ctx context.Context, f repository.AlertFilter) ([]*entity.LowStockAlert, error) {
	var conds []string
	var args []any
	pos := 1
	if f.Resolved != nil {
		conds = append(conds, fmt.Sprintf("is_resolved = $%d", pos))
		args = append(args, *f.Resolved)
		pos++
	}
	if f.ProductID != nil {
		conds = append(conds, fmt.Sprintf("product_id = $%d", pos))
		args = append(args, *f.ProductID)
		pos++
	}
	query := `SELECT ` + alertColumns + ` FROM low_stock_alerts`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY alert_date DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list low stock alerts", err)
	}
	defer rows.Close()
	var list []*entity.LowStockAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan low stock alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// CountUnresolved cuenta alertas abiertas.
func (r *LowStockAlertRepo) CountUnresolved(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM low_stock_alerts WHERE NOT is_resolved`).Scan(&n); err != nil {
		return 0, storageErr("count unresolved alerts", err)
	}
	return n, nil
}

func scanAlert(row pgx.Row) (*entity.LowStockAlert, error) {
	var a entity.LowStockAlert
	err := row.Scan(
		&a.ID, &a.ProductID, &a.WeeklyPlanID, &a.CurrentStock, &a.PlannedQuantity, &a.AlertLevel,
		&a.IsResolved, &a.AlertDate, &a.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
