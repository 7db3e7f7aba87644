package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	TransactionTypeStockIn  = "stock_in"  // entrada
	TransactionTypeStockOut = "stock_out" // salida
)

// IsValidTransactionType indica si t es un tipo de movimiento conocido.
func IsValidTransactionType(t string) bool {
	return t == TransactionTypeStockIn || t == TransactionTypeStockOut
}

// StockTransaction es el registro inmutable de un movimiento aceptado.
// Quantity siempre es positiva y está en la unidad base del producto;
// OriginalQuantity/OriginalUnit guardan lo que digitó el operador si hubo conversión.
type StockTransaction struct {
	ID               int64
	ProductID        int64
	UserID           int64
	Type             string
	Quantity         decimal.Decimal
	OriginalQuantity *decimal.Decimal
	OriginalUnit     *string
	PreviousStock    decimal.Decimal
	NewStock         decimal.Decimal
	PONumber         *string // solo stock_in
	SONumber         *string // solo stock_out
	TransactionDate  time.Time
	CreatedAt        time.Time
}
