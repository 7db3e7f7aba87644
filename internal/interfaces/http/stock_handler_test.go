package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-planner-api/internal/application/dto"
	"github.com/jhoicas/stock-planner-api/internal/application/inventory"
	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	apphttp "github.com/jhoicas/stock-planner-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs
// ──────────────────────────────────────────────────────────────────────────────

type stubMutator struct {
	lastIn    *inventory.StockInInput
	lastOut   *inventory.StockOutInput
	lastBatch []inventory.BatchLine
	outErr    error
	batchFail int // índice que falla en ApplyBatch; -1 ninguno
	batchErr  error
}

func result(productID int64, txType string, qty decimal.Decimal) *inventory.MutationResult {
	return &inventory.MutationResult{
		Transaction: &entity.StockTransaction{ID: 1, ProductID: productID, Type: txType, Quantity: qty, TransactionDate: time.Now()},
		Product:     &entity.Product{ID: productID, Name: "Harina", Unit: "kg", IsActive: true},
	}
}

func (s *stubMutator) ApplyStockIn(_ context.Context, in inventory.StockInInput) (*inventory.MutationResult, error) {
	s.lastIn = &in
	return result(in.ProductID, entity.TransactionTypeStockIn, in.Quantity), nil
}

func (s *stubMutator) ApplyStockOut(_ context.Context, in inventory.StockOutInput) (*inventory.MutationResult, error) {
	s.lastOut = &in
	if s.outErr != nil {
		return nil, s.outErr
	}
	return result(in.ProductID, entity.TransactionTypeStockOut, in.Quantity), nil
}

func (s *stubMutator) ApplyBatch(_ context.Context, txType string, _ int64, _ time.Time, lines []inventory.BatchLine) (*inventory.BatchResult, error) {
	s.lastBatch = lines
	res := &inventory.BatchResult{FailedIndex: -1}
	for i, l := range lines {
		if i == s.batchFail {
			res.FailedIndex, res.FailedProductID, res.Err = i, l.ProductID, s.batchErr
			res.Skipped = len(lines) - i - 1
			return res, nil
		}
		res.Applied = append(res.Applied, result(l.ProductID, txType, l.Quantity))
	}
	return res, nil
}

type stubUnits map[int64]string

func (s stubUnits) Unit(_ context.Context, id int64) (string, error) {
	u, ok := s[id]
	if !ok {
		return "", domain.NotFound("Product")
	}
	return u, nil
}

func stockApp(m *stubMutator) *fiber.App {
	app := fiber.New()
	h := apphttp.NewStockHandler(m, stubUnits{1: "kg", 2: "unidad"})
	withUser := func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, int64(9))
		return c.Next()
	}
	app.Post("/stock/in", withUser, h.StockIn)
	app.Post("/stock/out", withUser, h.StockOut)
	app.Post("/stock/out/batch", withUser, h.StockOutBatch)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestStockIn_ConvierteUnidad(t *testing.T) {
	m := &stubMutator{batchFail: -1}
	resp, _ := postJSON(t, stockApp(m), "/stock/in", fiber.Map{
		"product_id": 1, "quantity": "500", "unit": "g", "po_number": " PO-1 ",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, m.lastIn)
	assert.True(t, m.lastIn.Quantity.Equal(decimal.RequireFromString("0.5")))
	require.NotNil(t, m.lastIn.OriginalQuantity)
	assert.True(t, m.lastIn.OriginalQuantity.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "g", *m.lastIn.OriginalUnit)
	assert.Equal(t, "PO-1", *m.lastIn.PONumber)
	assert.Equal(t, int64(9), m.lastIn.UserID)
}

func TestStockIn_MismaUnidadSinOriginal(t *testing.T) {
	m := &stubMutator{batchFail: -1}
	resp, _ := postJSON(t, stockApp(m), "/stock/in", fiber.Map{"product_id": 1, "quantity": 3, "unit": "KG"})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Nil(t, m.lastIn.OriginalQuantity)
	assert.Nil(t, m.lastIn.PONumber)
}

func TestStockIn_UnidadIncompatible_Retorna400(t *testing.T) {
	m := &stubMutator{batchFail: -1}
	resp, body := postJSON(t, stockApp(m), "/stock/in", fiber.Map{"product_id": 2, "quantity": 1, "unit": "kg"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Nil(t, m.lastIn)
}

func TestStockIn_CantidadNoPositiva_Retorna400(t *testing.T) {
	m := &stubMutator{batchFail: -1}
	resp, body := postJSON(t, stockApp(m), "/stock/in", fiber.Map{"product_id": 1, "quantity": 0})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestStockOut_StockInsuficiente(t *testing.T) {
	m := &stubMutator{batchFail: -1, outErr: &domain.InsufficientStockError{
		Available: decimal.NewFromInt(2), Requested: decimal.NewFromInt(5),
	}}
	resp, body := postJSON(t, stockApp(m), "/stock/out", fiber.Map{"product_id": 1, "quantity": 5})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Equal(t, "2.000", body["available"])
	assert.Equal(t, "5.000", body["requested"])
}

func TestStockOut_ErroresDeDominio(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"producto inexistente", domain.NotFound("Product"), http.StatusNotFound, "NOT_FOUND"},
		{"conflicto de concurrencia", domain.ErrConcurrencyConflict, http.StatusConflict, "CONCURRENCY_CONFLICT"},
		{"base de datos caída", domain.ErrStorageUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &stubMutator{batchFail: -1, outErr: tc.err}
			resp, body := postJSON(t, stockApp(m), "/stock/out", fiber.Map{"product_id": 1, "quantity": 1})

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestStockOutBatch_TodoAplicado(t *testing.T) {
	m := &stubMutator{batchFail: -1}
	resp, body := postJSON(t, stockApp(m), "/stock/out/batch", fiber.Map{"items": []fiber.Map{
		{"product_id": 1, "quantity": 1},
		{"product_id": 2, "quantity": 2},
	}})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, body["applied"], 2)
	assert.Nil(t, body["failed"])
}

func TestStockOutBatch_ParcialRetorna207(t *testing.T) {
	m := &stubMutator{batchFail: 1, batchErr: &domain.InsufficientStockError{
		Available: decimal.Zero, Requested: decimal.NewFromInt(2),
	}}
	resp, raw := postJSON(t, stockApp(m), "/stock/out/batch", fiber.Map{"items": []fiber.Map{
		{"product_id": 1, "quantity": 1},
		{"product_id": 2, "quantity": 2},
		{"product_id": 1, "quantity": 3},
	}})

	assert.Equal(t, http.StatusMultiStatus, resp.StatusCode)
	var body dto.BatchResponse
	b, _ := json.Marshal(raw)
	require.NoError(t, json.Unmarshal(b, &body))
	assert.Len(t, body.Applied, 1)
	require.NotNil(t, body.Failed)
	assert.Equal(t, 1, body.Failed.Index)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Failed.Code)
	assert.Equal(t, http.StatusBadRequest, body.Failed.Status)
	assert.Equal(t, 1, body.Skipped)
}

func TestStockOutBatch_ConversionFallaDetieneEnvio(t *testing.T) {
	m := &stubMutator{batchFail: -1}
	resp, body := postJSON(t, stockApp(m), "/stock/out/batch", fiber.Map{"items": []fiber.Map{
		{"product_id": 1, "quantity": 1},
		{"product_id": 2, "quantity": 1, "unit": "kg"},
		{"product_id": 1, "quantity": 1},
	}})

	assert.Equal(t, http.StatusMultiStatus, resp.StatusCode)
	assert.Len(t, m.lastBatch, 1, "solo se envían las líneas previas a la que falla")
	failed, ok := body["failed"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), failed["index"])
	assert.Equal(t, float64(1), body["skipped"])
}

func TestStockOutBatch_PrimeraLineaFalla(t *testing.T) {
	m := &stubMutator{batchFail: -1}
	resp, body := postJSON(t, stockApp(m), "/stock/out/batch", fiber.Map{"items": []fiber.Map{
		{"product_id": 99, "quantity": 1, "unit": "g"},
	}})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Nil(t, m.lastBatch)
	assert.Empty(t, body["applied"])
}

func TestStockOutBatch_SinItems_Retorna400(t *testing.T) {
	m := &stubMutator{batchFail: -1}
	resp, _ := postJSON(t, stockApp(m), "/stock/out/batch", fiber.Map{"items": []fiber.Map{}})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
