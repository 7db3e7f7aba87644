// Package xlsx exporta movimientos de stock a Excel con excelize.
package xlsx

import (
	"fmt"
	"time"

	"github.com/jhoicas/stock-planner-api/internal/application/reports"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Movimientos"

var _ reports.TransactionExporter = (*TransactionExporter)(nil)

var headers = []string{
	"ID", "Fecha", "Tipo", "Producto", "Unidad", "Cantidad", "Stock anterior", "Stock nuevo",
	"Cantidad original", "Unidad original", "Referencia", "Usuario",
}

// TransactionExporter implementa reports.TransactionExporter.
type TransactionExporter struct{}

// NewTransactionExporter construye el exportador.
func NewTransactionExporter() *TransactionExporter { return &TransactionExporter{} }

// ExportTransactions arma el libro con una fila por movimiento y devuelve sus bytes.
func (e *TransactionExporter) ExportTransactions(rows []reports.TransactionRow, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	qtyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("#,##0.000")})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera: %w", err)
		}
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	for i, r := range rows {
		rowNo := i + 2
		t := r.Transaction
		values := []interface{}{
			t.ID,
			t.TransactionDate.Format("2006-01-02 15:04"),
			typeLabel(t.Type),
			r.ProductName,
			r.Unit,
			t.Quantity.InexactFloat64(),
			t.PreviousStock.InexactFloat64(),
			t.NewStock.InexactFloat64(),
			"",
			"",
			reference(t),
			t.UserID,
		}
		if t.OriginalQuantity != nil {
			values[8] = t.OriginalQuantity.InexactFloat64()
		}
		if t.OriginalUnit != nil {
			values[9] = *t.OriginalUnit
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNo)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx: fila %d: %w", rowNo, err)
			}
		}
	}

	if len(rows) > 0 {
		last := len(rows) + 1
		if err := f.SetCellStyle(sheetName, "F2", fmt.Sprintf("I%d", last), qtyStyle); err != nil {
			return nil, fmt.Errorf("xlsx: estilo cantidades: %w", err)
		}
	}
	_ = f.SetColWidth(sheetName, "B", "B", 18)
	_ = f.SetColWidth(sheetName, "D", "D", 30)
	_ = f.SetColWidth(sheetName, "F", "I", 16)

	footer, _ := excelize.CoordinatesToCellName(1, len(rows)+3)
	_ = f.SetCellValue(sheetName, footer, "Generado: "+generatedAt.Format("2006-01-02 15:04"))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func typeLabel(t string) string {
	switch t {
	case entity.TransactionTypeStockIn:
		return "Entrada"
	case entity.TransactionTypeStockOut:
		return "Salida"
	}
	return t
}

func reference(t *entity.StockTransaction) string {
	if t.PONumber != nil {
		return "PO " + *t.PONumber
	}
	if t.SONumber != nil {
		return "SO " + *t.SONumber
	}
	return ""
}

func strPtr(s string) *string { return &s }
