package xlsx_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/jhoicas/stock-planner-api/internal/application/reports"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/infrastructure/xlsx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportTransactions(t *testing.T) {
	po := "PO-7"
	origQty := decimal.NewFromInt(500)
	origUnit := "g"
	rows := []reports.TransactionRow{
		{
			Transaction: &entity.StockTransaction{
				ID: 1, ProductID: 3, UserID: 9, Type: entity.TransactionTypeStockIn,
				Quantity:      decimal.RequireFromString("0.5"),
				PreviousStock: decimal.NewFromInt(10), NewStock: decimal.RequireFromString("10.5"),
				OriginalQuantity: &origQty, OriginalUnit: &origUnit,
				PONumber:        &po,
				TransactionDate: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
			},
			ProductName: "Harina",
			Unit:        "kg",
		},
	}

	data, err := xlsx.NewTransactionExporter().ExportTransactions(rows, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Movimientos", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	tipo, _ := f.GetCellValue("Movimientos", "C2")
	assert.Equal(t, "Entrada", tipo)
	prod, _ := f.GetCellValue("Movimientos", "D2")
	assert.Equal(t, "Harina", prod)
	ref, _ := f.GetCellValue("Movimientos", "K2")
	assert.Equal(t, "PO PO-7", ref)
	unit, _ := f.GetCellValue("Movimientos", "J2")
	assert.Equal(t, "g", unit)
}

func TestExportTransactions_Empty(t *testing.T) {
	data, err := xlsx.NewTransactionExporter().ExportTransactions(nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
