package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/inventory"
)

func TestSameUnit(t *testing.T) {
	assert.True(t, inventory.SameUnit("KG", "kg"))
	assert.True(t, inventory.SameUnit("kilogram", "Kgs"))
	assert.True(t, inventory.SameUnit(" Pieces ", "pieces"), "etiquetas libres se comparan sin mayúsculas")
	assert.False(t, inventory.SameUnit("g", "kg"))
	assert.False(t, inventory.SameUnit("Pieces", "Box"))
}

func TestToBaseUnit(t *testing.T) {
	cases := []struct {
		qty, from, to, want string
	}{
		{"500", "g", "kg", "0.500"},
		{"2", "kg", "g", "2000.000"},
		{"1500", "mg", "g", "1.500"},
		{"250", "ml", "Litre", "0.250"},
		{"1.5", "L", "ml", "1500.000"},
		{"3.14159", "kg", "KG", "3.142"},
		{"7", "", "Pieces", "7.000"},
	}
	for _, tc := range cases {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			got, err := inventory.ToBaseUnit(d(tc.qty), tc.from, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.StringFixed(3))
		})
	}
}

func TestToBaseUnit_Incompatibles(t *testing.T) {
	_, err := inventory.ToBaseUnit(d("1"), "kg", "l")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.ToBaseUnit(d("1"), "box", "kg")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unidad desconocida")
}
