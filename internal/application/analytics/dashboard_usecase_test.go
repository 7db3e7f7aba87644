package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-planner-api/internal/application/analytics"
	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
)

type stubDashboard struct {
	in, out, total decimal.Decimal
	below          int64
	threshold      decimal.Decimal
	from, to       time.Time
	err            error
}

func (s *stubDashboard) SumQuantityByType(_ context.Context, txType string, from, to time.Time) (decimal.Decimal, error) {
	if txType == entity.TransactionTypeStockIn {
		s.from, s.to = from, to
		return s.in, s.err
	}
	return s.out, nil
}

func (s *stubDashboard) TotalActiveStock(context.Context) (decimal.Decimal, error) {
	return s.total, nil
}

func (s *stubDashboard) CountActiveBelow(_ context.Context, threshold decimal.Decimal) (int64, error) {
	s.threshold = threshold
	return s.below, nil
}

type openAlerts int64

func (o openAlerts) CountUnresolved(context.Context) (int64, error) { return int64(o), nil }

func TestGetSummary(t *testing.T) {
	repo := &stubDashboard{
		in: decimal.NewFromInt(12), out: decimal.RequireFromString("4.5"),
		total: decimal.NewFromInt(300), below: 3,
	}
	uc := analytics.NewDashboardUseCase(repo, openAlerts(2), decimal.Zero)

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.True(t, got.TodayStockIn.Equal(decimal.NewFromInt(12)))
	assert.True(t, got.TodayStockOut.Equal(decimal.RequireFromString("4.5")))
	assert.True(t, got.TotalActiveStock.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, int64(3), got.LowStockProducts)
	assert.Equal(t, int64(2), got.OpenAlerts)
	assert.True(t, got.LowStockThreshold.Equal(analytics.DefaultLowStockThreshold), "umbral cero usa el valor por defecto")
	assert.True(t, repo.threshold.Equal(analytics.DefaultLowStockThreshold))
	assert.True(t, repo.to.Equal(repo.from.AddDate(0, 0, 1)))
	assert.Equal(t, repo.from.Format("2006-01-02"), got.Date)
}

func TestGetSummary_UmbralConfigurado(t *testing.T) {
	repo := &stubDashboard{}
	uc := analytics.NewDashboardUseCase(repo, openAlerts(0), decimal.NewFromInt(25))

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.True(t, got.LowStockThreshold.Equal(decimal.NewFromInt(25)))
}

func TestGetSummary_PropagaErrorDeAlmacenamiento(t *testing.T) {
	repo := &stubDashboard{err: domain.ErrStorageUnavailable}
	uc := analytics.NewDashboardUseCase(repo, openAlerts(0), decimal.Zero)

	_, err := uc.GetSummary(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorageUnavailable), "sin datos de respaldo inventados")
}
