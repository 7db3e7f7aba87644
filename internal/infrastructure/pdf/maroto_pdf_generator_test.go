package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-planner-api/internal/application/reports"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/infrastructure/pdf"
)

func TestGenerateOpenAlerts(t *testing.T) {
	now := time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)
	rows := []reports.AlertRow{
		{
			Alert: &entity.LowStockAlert{
				ID: 1, ProductID: 3, WeeklyPlanID: 8,
				CurrentStock:    decimal.RequireFromString("1.5"),
				PlannedQuantity: decimal.NewFromInt(10),
				AlertLevel:      entity.AlertLevelCritical,
				AlertDate:       now,
			},
			ProductName: "Azúcar",
			Unit:        "kg",
		},
		{
			Alert: &entity.LowStockAlert{
				ID: 2, ProductID: 4, WeeklyPlanID: 9,
				CurrentStock:    decimal.NewFromInt(7),
				PlannedQuantity: decimal.NewFromInt(10),
				AlertLevel:      entity.AlertLevelLow,
				AlertDate:       now,
			},
			ProductName: "Aceite",
			Unit:        "litro",
		},
	}

	out, err := pdf.NewMarotoPDFGenerator("Stock Planner").GenerateOpenAlerts(rows, now)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateOpenAlerts_NoRows(t *testing.T) {
	out, err := pdf.NewMarotoPDFGenerator("").GenerateOpenAlerts(nil, time.Now())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
