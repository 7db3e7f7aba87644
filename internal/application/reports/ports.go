package reports

import (
	"time"

	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
)

// TransactionRow movimiento con los datos del producto para exportar.
type TransactionRow struct {
	Transaction *entity.StockTransaction
	ProductName string
	Unit        string
}

// AlertRow alerta abierta con los datos del producto.
type AlertRow struct {
	Alert       *entity.LowStockAlert
	ProductName string
	Unit        string
}

// TransactionExporter genera la hoja de cálculo de movimientos (infraestructura: excelize).
type TransactionExporter interface {
	ExportTransactions(rows []TransactionRow, generatedAt time.Time) ([]byte, error)
}

// AlertReportGenerator genera el PDF de alertas abiertas (infraestructura: maroto).
type AlertReportGenerator interface {
	GenerateOpenAlerts(rows []AlertRow, generatedAt time.Time) ([]byte, error)
}
