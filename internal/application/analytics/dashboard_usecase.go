// Package analytics contiene el resumen del dashboard de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-planner-api/internal/application/dto"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold umbral global del widget "productos con stock bajo".
var DefaultLowStockThreshold = decimal.NewFromInt(10)

// OpenAlertCounter cuenta alertas sin resolver.
type OpenAlertCounter interface {
	CountUnresolved(ctx context.Context) (int64, error)
}

// DashboardUseCase genera el resumen del día.
//
// Fuente de datos: DashboardRepository (consultas read-only) y el conteo de alertas abiertas.
// El umbral es independiente de los planes semanales.
type DashboardUseCase struct {
	repo      repository.DashboardRepository
	alerts    OpenAlertCounter
	threshold decimal.Decimal
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso. threshold <= 0 usa DefaultLowStockThreshold.
func NewDashboardUseCase(repo repository.DashboardRepository, alerts OpenAlertCounter, threshold decimal.Decimal) *DashboardUseCase {
	if threshold.LessThanOrEqual(decimal.Zero) {
		threshold = DefaultLowStockThreshold
	}
	return &DashboardUseCase{repo: repo, alerts: alerts, threshold: threshold, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Consultas en paralelo:
//  1. SumQuantityByType(stock_in, hoy)
//  2. SumQuantityByType(stock_out, hoy)
//  3. TotalActiveStock
//  4. CountActiveBelow(umbral)
//  5. CountUnresolved
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	// Hoy: [00:00, mañana 00:00)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)

	type sumResult struct {
		v   decimal.Decimal
		err error
	}
	type countResult struct {
		n   int64
		err error
	}

	inCh := make(chan sumResult, 1)
	outCh := make(chan sumResult, 1)
	totalCh := make(chan sumResult, 1)
	lowCh := make(chan countResult, 1)
	openCh := make(chan countResult, 1)

	go func() {
		v, err := uc.repo.SumQuantityByType(ctx, entity.TransactionTypeStockIn, todayStart, todayEnd)
		inCh <- sumResult{v, err}
	}()
	go func() {
		v, err := uc.repo.SumQuantityByType(ctx, entity.TransactionTypeStockOut, todayStart, todayEnd)
		outCh <- sumResult{v, err}
	}()
	go func() {
		v, err := uc.repo.TotalActiveStock(ctx)
		totalCh <- sumResult{v, err}
	}()
	go func() {
		n, err := uc.repo.CountActiveBelow(ctx, uc.threshold)
		lowCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.alerts.CountUnresolved(ctx)
		openCh <- countResult{n, err}
	}()

	in, out, total, low, open := <-inCh, <-outCh, <-totalCh, <-lowCh, <-openCh
	if in.err != nil {
		return nil, fmt.Errorf("dashboard entradas del día: %w", in.err)
	}
	if out.err != nil {
		return nil, fmt.Errorf("dashboard salidas del día: %w", out.err)
	}
	if total.err != nil {
		return nil, fmt.Errorf("dashboard stock total: %w", total.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard stock bajo: %w", low.err)
	}
	if open.err != nil {
		return nil, fmt.Errorf("dashboard alertas abiertas: %w", open.err)
	}

	return &dto.DashboardSummaryDTO{
		TodayStockIn:      in.v,
		TodayStockOut:     out.v,
		TotalActiveStock:  total.v,
		LowStockProducts:  low.n,
		LowStockThreshold: uc.threshold,
		OpenAlerts:        open.n,
		Date:              todayStart.Format("2006-01-02"),
	}, nil
}
