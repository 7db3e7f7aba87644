package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TodayStockIn     decimal.Decimal `json:"today_stock_in"`
	TodayStockOut    decimal.Decimal `json:"today_stock_out"`
	TotalActiveStock decimal.Decimal `json:"total_active_stock"`
	// Productos activos con stock menor que LowStockThreshold (umbral global, no el de los planes).
	LowStockProducts  int64           `json:"low_stock_products"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	OpenAlerts        int64           `json:"open_alerts"`
	Date              string          `json:"date"`
}
