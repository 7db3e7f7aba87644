package inventory

import (
	"strings"

	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// unitFamily agrupa alias de etiquetas que representan la misma unidad física.
type unitFamily struct {
	canonical string
	dimension string
	factor    decimal.Decimal // cuántas unidades canónicas de la dimensión equivale 1 de esta unidad
}

var thousand = decimal.NewFromInt(1000)

// Factores relativos a la unidad más grande de cada dimensión (kg, litre).
var units = map[string]unitFamily{
	"kg":         {canonical: "kg", dimension: "mass", factor: decimal.NewFromInt(1)},
	"kgs":        {canonical: "kg", dimension: "mass", factor: decimal.NewFromInt(1)},
	"kilogram":   {canonical: "kg", dimension: "mass", factor: decimal.NewFromInt(1)},
	"kilograms":  {canonical: "kg", dimension: "mass", factor: decimal.NewFromInt(1)},
	"g":          {canonical: "g", dimension: "mass", factor: decimal.NewFromInt(1).Div(thousand)},
	"gm":         {canonical: "g", dimension: "mass", factor: decimal.NewFromInt(1).Div(thousand)},
	"gram":       {canonical: "g", dimension: "mass", factor: decimal.NewFromInt(1).Div(thousand)},
	"grams":      {canonical: "g", dimension: "mass", factor: decimal.NewFromInt(1).Div(thousand)},
	"mg":         {canonical: "mg", dimension: "mass", factor: decimal.NewFromInt(1).Div(thousand).Div(thousand)},
	"l":          {canonical: "l", dimension: "volume", factor: decimal.NewFromInt(1)},
	"litre":      {canonical: "l", dimension: "volume", factor: decimal.NewFromInt(1)},
	"litres":     {canonical: "l", dimension: "volume", factor: decimal.NewFromInt(1)},
	"liter":      {canonical: "l", dimension: "volume", factor: decimal.NewFromInt(1)},
	"liters":     {canonical: "l", dimension: "volume", factor: decimal.NewFromInt(1)},
	"ml":         {canonical: "ml", dimension: "volume", factor: decimal.NewFromInt(1).Div(thousand)},
	"millilitre": {canonical: "ml", dimension: "volume", factor: decimal.NewFromInt(1).Div(thousand)},
	"milliliter": {canonical: "ml", dimension: "volume", factor: decimal.NewFromInt(1).Div(thousand)},
}

// foldLabel normaliza una etiqueta. Un Caser no se comparte entre goroutines.
func foldLabel(label string) string {
	return cases.Fold().String(strings.TrimSpace(label))
}

func lookupUnit(label string) (unitFamily, bool) {
	u, ok := units[foldLabel(label)]
	return u, ok
}

// SameUnit compara dos etiquetas de unidad ignorando mayúsculas y alias (KG == kilogram).
func SameUnit(a, b string) bool {
	ua, okA := lookupUnit(a)
	ub, okB := lookupUnit(b)
	if okA && okB {
		return ua.canonical == ub.canonical
	}
	return foldLabel(a) == foldLabel(b)
}

// ToBaseUnit convierte qty expresada en enteredUnit a la unidad base del producto.
// Unidades idénticas pasan sin cambio; unidades de distinta dimensión o desconocidas son inválidas.
// El resultado queda redondeado a QuantityScale.
func ToBaseUnit(qty decimal.Decimal, enteredUnit, baseUnit string) (decimal.Decimal, error) {
	if enteredUnit == "" || SameUnit(enteredUnit, baseUnit) {
		return qty.Round(QuantityScale), nil
	}
	from, okFrom := lookupUnit(enteredUnit)
	to, okTo := lookupUnit(baseUnit)
	if !okFrom || !okTo {
		return decimal.Zero, domain.Invalid("unit", "conversión no soportada de "+enteredUnit+" a "+baseUnit)
	}
	if from.dimension != to.dimension {
		return decimal.Zero, domain.Invalid("unit", "unidades incompatibles: "+enteredUnit+" y "+baseUnit)
	}
	return qty.Mul(from.factor).Div(to.factor).Round(QuantityScale), nil
}
