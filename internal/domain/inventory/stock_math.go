// Package inventory contiene la aritmética de stock del dominio: aplicar movimientos,
// detectar faltantes contra un plan y clasificar la severidad de una alerta.
package inventory

import (
	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// QuantityScale es la cantidad de decimales con que se almacenan cantidades y saldos.
const QuantityScale = 3

// MaxQuantity es el mayor valor que admite una columna NUMERIC(14,3), para cantidades y saldos.
var MaxQuantity = decimal.RequireFromString("99999999999.999")

// DefaultCriticalRatio: una alerta es crítica si stock <= planificado * ratio.
var DefaultCriticalRatio = decimal.NewFromFloat(0.5)

// NormalizeQuantity redondea qty a QuantityScale y exige 0 < resultado <= MaxQuantity.
func NormalizeQuantity(qty decimal.Decimal) (decimal.Decimal, error) {
	q := qty.Round(QuantityScale)
	if !q.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.Invalid("quantity", "debe ser mayor que cero")
	}
	if q.GreaterThan(MaxQuantity) {
		return decimal.Zero, domain.Invalid("quantity", "supera el máximo de "+MaxQuantity.StringFixed(QuantityScale))
	}
	return q, nil
}

// ApplyMovement calcula el nuevo saldo para un movimiento ya normalizado.
// stock_in: previous + qty. stock_out: previous - qty, con InsufficientStockError si qty > previous.
func ApplyMovement(txType string, previous, qty decimal.Decimal) (decimal.Decimal, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.Invalid("quantity", "debe ser mayor que cero")
	}
	switch txType {
	case entity.TransactionTypeStockIn:
		next := previous.Add(qty)
		if next.GreaterThan(MaxQuantity) {
			return decimal.Zero, domain.Invalid("quantity", "el saldo resultante supera el máximo de "+MaxQuantity.StringFixed(QuantityScale))
		}
		return next, nil
	case entity.TransactionTypeStockOut:
		if qty.GreaterThan(previous) {
			return decimal.Zero, &domain.InsufficientStockError{Available: previous, Requested: qty}
		}
		return previous.Sub(qty), nil
	}
	return decimal.Zero, domain.Invalid("type", "tipo de movimiento desconocido")
}

// IsShortfall indica si el stock actual está por debajo de lo planificado.
func IsShortfall(current, planned decimal.Decimal) bool {
	return current.LessThan(planned)
}

// ClassifyAlertLevel devuelve "critical" si current <= planned * ratio, si no "low".
// ratio <= 0 usa DefaultCriticalRatio.
func ClassifyAlertLevel(current, planned, ratio decimal.Decimal) string {
	if !ratio.GreaterThan(decimal.Zero) {
		ratio = DefaultCriticalRatio
	}
	if current.LessThanOrEqual(planned.Mul(ratio)) {
		return entity.AlertLevelCritical
	}
	return entity.AlertLevelLow
}
