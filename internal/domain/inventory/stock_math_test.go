package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNormalizeQuantity(t *testing.T) {
	q, err := inventory.NormalizeQuantity(d("1.23456"))
	require.NoError(t, err)
	assert.Equal(t, "1.235", q.StringFixed(3))

	_, err = inventory.NormalizeQuantity(d("0.0004"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "redondea a cero")

	_, err = inventory.NormalizeQuantity(d("-2"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement_Entrada(t *testing.T) {
	got, err := inventory.ApplyMovement(entity.TransactionTypeStockIn, d("10"), d("2.5"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("12.5")))
}

func TestApplyMovement_SalidaExacta(t *testing.T) {
	got, err := inventory.ApplyMovement(entity.TransactionTypeStockOut, d("3"), d("3"))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestApplyMovement_SalidaInsuficiente(t *testing.T) {
	_, err := inventory.ApplyMovement(entity.TransactionTypeStockOut, d("3"), d("3.001"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var ins *domain.InsufficientStockError
	require.True(t, errors.As(err, &ins))
	assert.True(t, ins.Available.Equal(d("3")))
	assert.True(t, ins.Requested.Equal(d("3.001")))
}

func TestApplyMovement_TipoDesconocido(t *testing.T) {
	_, err := inventory.ApplyMovement("adjust", d("3"), d("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIsShortfall(t *testing.T) {
	assert.True(t, inventory.IsShortfall(d("9.999"), d("10")))
	assert.False(t, inventory.IsShortfall(d("10"), d("10")), "igual al plan no es faltante")
	assert.False(t, inventory.IsShortfall(d("11"), d("10")))
}

func TestClassifyAlertLevel(t *testing.T) {
	half := d("0.5")
	assert.Equal(t, entity.AlertLevelCritical, inventory.ClassifyAlertLevel(d("5"), d("10"), half), "en el límite es crítica")
	assert.Equal(t, entity.AlertLevelCritical, inventory.ClassifyAlertLevel(d("0"), d("10"), half))
	assert.Equal(t, entity.AlertLevelLow, inventory.ClassifyAlertLevel(d("5.001"), d("10"), half))
	assert.Equal(t, entity.AlertLevelLow, inventory.ClassifyAlertLevel(d("8"), d("10"), decimal.Zero), "ratio cero usa el valor por defecto")
	assert.Equal(t, entity.AlertLevelCritical, inventory.ClassifyAlertLevel(d("8"), d("10"), d("0.8")))
}

func TestNormalizeQuantity_Maximo(t *testing.T) {
	q, err := inventory.NormalizeQuantity(d("99999999999.999"))
	require.NoError(t, err)
	assert.True(t, q.Equal(inventory.MaxQuantity))

	_, err = inventory.NormalizeQuantity(d("1000000000000000"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// 99999999999.9996 redondea por encima del máximo
	_, err = inventory.NormalizeQuantity(d("99999999999.9996"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement_EntradaDesbordaSaldo(t *testing.T) {
	_, err := inventory.ApplyMovement(entity.TransactionTypeStockIn, d("99999999999.999"), d("1"))
	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "quantity", validation.Field)

	got, err := inventory.ApplyMovement(entity.TransactionTypeStockIn, d("99999999998.999"), d("1"))
	require.NoError(t, err)
	assert.True(t, got.Equal(inventory.MaxQuantity))
}
