package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
)

func TestWeeklyStockPlan_Covers(t *testing.T) {
	plan := &entity.WeeklyStockPlan{
		WeekStartDate: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		WeekEndDate:   time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
	}
	bogota := time.FixedZone("COT", -5*3600)

	assert.True(t, plan.Covers(time.Date(2026, 10, 12, 0, 0, 0, 0, bogota)), "primer día incluido")
	assert.True(t, plan.Covers(time.Date(2026, 10, 18, 23, 59, 0, 0, bogota)), "último día incluido")
	assert.False(t, plan.Covers(time.Date(2026, 10, 19, 0, 0, 1, 0, bogota)))
	assert.False(t, plan.Covers(time.Date(2026, 10, 11, 23, 59, 0, 0, bogota)))
}
