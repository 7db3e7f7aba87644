package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario (una sola ubicación).
// CurrentStock solo lo modifica el motor de movimientos; OpeningStock queda fijo desde la creación.
type Product struct {
	ID           int64
	Name         string
	Unit         string // unidad base libre: KG, Litre, Pieces...
	OpeningStock decimal.Decimal
	CurrentStock decimal.Decimal
	IsActive     bool // false = eliminado lógico
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
