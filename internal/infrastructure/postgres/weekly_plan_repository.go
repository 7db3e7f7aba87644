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

var _ repository.WeeklyPlanRepository = (*WeeklyPlanRepo)(nil)

const planColumns = `id, product_id, user_id, planned_quantity, unit, week_start_date, week_end_date,
	is_active, notes, created_at, updated_at`

// WeeklyPlanRepo planes semanales sobre PostgreSQL.
type WeeklyPlanRepo struct {
	q Querier
}

// NewWeeklyPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWeeklyPlanRepository(q Querier) *WeeklyPlanRepo {
	return &WeeklyPlanRepo{q: q}
}

// Create persiste el plan y completa ID.
func (r *WeeklyPlanRepo) Create(ctx context.Context, p *entity.WeeklyStockPlan) error {
	query := `
		INSERT INTO weekly_stock_plans (product_id, user_id, planned_quantity, unit, week_start_date, week_end_date,
			is_active, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.ProductID, p.UserID, p.PlannedQuantity, p.Unit, p.WeekStartDate, p.WeekEndDate,
		p.IsActive, p.Notes, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("product_id", "producto o usuario inexistente")
		}
		return storageErr("insert weekly plan", err)
	}
	return nil
}

// GetByID obtiene un plan por ID.
func (r *WeeklyPlanRepo) GetByID(ctx context.Context, id int64) (*entity.WeeklyStockPlan, error) {
	p, err := scanPlan(r.q.QueryRow(ctx, `SELECT `+planColumns+` FROM weekly_stock_plans WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get weekly plan", err)
	}
	return p, nil
}

// Update modifica cantidad, unidad, fechas, notas y estado.
func (r *WeeklyPlanRepo) Update(ctx context.Context, p *entity.WeeklyStockPlan) error {
	query := `
		UPDATE weekly_stock_plans SET planned_quantity = $2, unit = $3, week_start_date = $4, week_end_date = $5,
			is_active = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.PlannedQuantity, p.Unit, p.WeekStartDate, p.WeekEndDate, p.IsActive, p.Notes, p.UpdatedAt,
	)
	if err != nil {
		return storageErr("update weekly plan", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("WeeklyPlan")
	}
	return nil
}

// List lista planes según el filtro, semana más reciente primero.
func (r *WeeklyPlanRepo) List(ctx context.Context, f repository.PlanFilter) ([]*entity.WeeklyStockPlan, error) {
	var conds []string
	var args []any
	pos := 1
	if f.ProductID != nil {
		conds = append(conds, fmt.Sprintf("product_id = $%d", pos))
		args = append(args, *f.ProductID)
		pos++
	}
	if f.ActiveOnly {
		conds = append(conds, "is_active")
	}
	query := `SELECT ` + planColumns + ` FROM weekly_stock_plans`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY week_start_date DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)
	return r.query(ctx, "list weekly plans", query, args...)
}

// ListCurrent planes activos cuya semana contiene la fecha asOf.
func (r *WeeklyPlanRepo) ListCurrent(ctx context.Context, asOf time.Time) ([]*entity.WeeklyStockPlan, error) {
	query := `SELECT ` + planColumns + ` FROM weekly_stock_plans
		WHERE is_active AND week_start_date <= $1::date AND week_end_date >= $1::date
		ORDER BY product_id, id`
	return r.query(ctx, "list current weekly plans", query, dateParam(asOf))
}

// ListCurrentWithStock igual que ListCurrent, unido a productos activos.
func (r *WeeklyPlanRepo) ListCurrentWithStock(ctx context.Context, asOf time.Time) ([]repository.PlanStock, error) {
	query := `
		SELECT w.id, w.product_id, w.user_id, w.planned_quantity, w.unit, w.week_start_date, w.week_end_date,
			w.is_active, w.notes, w.created_at, w.updated_at,
			p.name, p.unit, p.current_stock
		FROM weekly_stock_plans w
		JOIN products p ON p.id = w.product_id
		WHERE w.is_active AND p.is_active
			AND w.week_start_date <= $1::date AND w.week_end_date >= $1::date
		ORDER BY w.product_id, w.id`
	rows, err := r.q.Query(ctx, query, dateParam(asOf))
	if err != nil {
		return nil, storageErr("list current plans with stock", err)
	}
	defer rows.Close()
	var list []repository.PlanStock
	for rows.Next() {
		var ps repository.PlanStock
		p := &ps.Plan
		if err := rows.Scan(
			&p.ID, &p.ProductID, &p.UserID, &p.PlannedQuantity, &p.Unit, &p.WeekStartDate, &p.WeekEndDate,
			&p.IsActive, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
			&ps.ProductName, &ps.ProductUnit, &ps.CurrentStock,
		); err != nil {
			return nil, fmt.Errorf("scan plan with stock: %w", err)
		}
		list = append(list, ps)
	}
	return list, rows.Err()
}

func (r *WeeklyPlanRepo) query(ctx context.Context, op, query string, args ...any) ([]*entity.WeeklyStockPlan, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()
	var list []*entity.WeeklyStockPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan weekly plan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// dateParam fecha de calendario como texto para evitar conversiones por zona horaria de la sesión.
func dateParam(t time.Time) string {
	return t.Format("2006-01-02")
}

func scanPlan(row pgx.Row) (*entity.WeeklyStockPlan, error) {
	var p entity.WeeklyStockPlan
	err := row.Scan(
		&p.ID, &p.ProductID, &p.UserID, &p.PlannedQuantity, &p.Unit, &p.WeekStartDate, &p.WeekEndDate,
		&p.IsActive, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
