package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-planner-api/internal/application/dto"
	"github.com/jhoicas/stock-planner-api/internal/application/inventory"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-planner-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// StockMutator operaciones del motor de movimientos que usa el handler.
type StockMutator interface {
	ApplyStockIn(ctx context.Context, in inventory.StockInInput) (*inventory.MutationResult, error)
	ApplyStockOut(ctx context.Context, in inventory.StockOutInput) (*inventory.MutationResult, error)
	ApplyBatch(ctx context.Context, txType string, userID int64, date time.Time, lines []inventory.BatchLine) (*inventory.BatchResult, error)
}

// ProductUnitLookup devuelve la unidad base de un producto.
type ProductUnitLookup interface {
	Unit(ctx context.Context, productID int64) (string, error)
}

// StockHandler entradas y salidas de stock (protegido por rol).
type StockHandler struct {
	engine StockMutator
	units  ProductUnitLookup
}

// NewStockHandler construye el handler.
func NewStockHandler(engine StockMutator, units ProductUnitLookup) *StockHandler {
	return &StockHandler{engine: engine, units: units}
}

// StockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "product_id, quantity, unit opcional, po_number opcional"
// @Success      201   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/in [post]
func (h *StockHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	qty, origQty, origUnit, err := h.convert(c.Context(), in.ProductID, in.Quantity, in.Unit)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.engine.ApplyStockIn(c.Context(), inventory.StockInInput{
		ProductID:        in.ProductID,
		UserID:           GetUserID(c),
		Quantity:         qty,
		Date:             timeOrZero(in.TransactionDate),
		PONumber:         stringOrNil(in.PONumber),
		OriginalQuantity: origQty,
		OriginalUnit:     origUnit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMutationResponse(out))
}

// StockOut godoc
// @Summary      Registrar salida de stock
// @Description  Falla con INSUFFICIENT_STOCK (incluye available y requested) si la cantidad supera el saldo.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOutRequest  true  "product_id, quantity, unit opcional, so_number opcional"
// @Success      201   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.InsufficientStockResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/out [post]
func (h *StockHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockOutRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	qty, origQty, origUnit, err := h.convert(c.Context(), in.ProductID, in.Quantity, in.Unit)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.engine.ApplyStockOut(c.Context(), inventory.StockOutInput{
		ProductID:        in.ProductID,
		UserID:           GetUserID(c),
		Quantity:         qty,
		Date:             timeOrZero(in.TransactionDate),
		SONumber:         stringOrNil(in.SONumber),
		OriginalQuantity: origQty,
		OriginalUnit:     origUnit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMutationResponse(out))
}

// StockInBatch godoc
// @Summary      Entrada de varios productos
// @Description  Cada línea es atómica; se detiene en la primera que falla y las anteriores quedan aplicadas.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockBatchRequest  true  "items"
// @Success      201   {object}  dto.BatchResponse
// @Success      207   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/in/batch [post]
func (h *StockHandler) StockInBatch(c *fiber.Ctx) error {
	return h.batch(c, entity.TransactionTypeStockIn)
}

// StockOutBatch godoc
// @Summary      Salida de varios productos
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockBatchRequest  true  "items"
// @Success      201   {object}  dto.BatchResponse
// @Success      207   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/out/batch [post]
func (h *StockHandler) StockOutBatch(c *fiber.Ctx) error {
	return h.batch(c, entity.TransactionTypeStockOut)
}

func (h *StockHandler) batch(c *fiber.Ctx, txType string) error {
	var in dto.StockBatchRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}

	// La conversión de unidades se hace antes del motor; si falla en la línea k solo se envían las anteriores.
	lines := make([]inventory.BatchLine, 0, len(in.Items))
	convFailedAt := -1
	var convErr error
	for i, item := range in.Items {
		qty, origQty, origUnit, err := h.convert(c.Context(), item.ProductID, item.Quantity, item.Unit)
		if err != nil {
			convFailedAt, convErr = i, err
			break
		}
		lines = append(lines, inventory.BatchLine{
			ProductID:        item.ProductID,
			Quantity:         qty,
			Reference:        stringOrNil(item.Reference),
			OriginalQuantity: origQty,
			OriginalUnit:     origUnit,
		})
	}

	resp := dto.BatchResponse{Applied: []dto.MutationResponse{}}
	if len(lines) > 0 {
		res, err := h.engine.ApplyBatch(c.Context(), txType, GetUserID(c), timeOrZero(in.TransactionDate), lines)
		if err != nil {
			return writeError(c, err)
		}
		for _, m := range res.Applied {
			resp.Applied = append(resp.Applied, toMutationResponse(m))
		}
		if res.FailedIndex >= 0 {
			resp.Failed = batchFailure(res.FailedIndex, res.FailedProductID, res.Err)
			resp.Skipped = len(in.Items) - res.FailedIndex - 1
			return c.Status(batchStatus(resp)).JSON(resp)
		}
	}
	if convFailedAt >= 0 {
		resp.Failed = batchFailure(convFailedAt, in.Items[convFailedAt].ProductID, convErr)
		resp.Skipped = len(in.Items) - convFailedAt - 1
	}
	return c.Status(batchStatus(resp)).JSON(resp)
}

// batchStatus 201 si todo se aplicó, 207 si hubo aplicación parcial, o el status del error si nada se aplicó.
func batchStatus(resp dto.BatchResponse) int {
	if resp.Failed == nil {
		return fiber.StatusCreated
	}
	if len(resp.Applied) > 0 {
		return fiber.StatusMultiStatus
	}
	return resp.Failed.Status
}

func batchFailure(index int, productID int64, err error) *dto.BatchFailure {
	status, body := errorStatus(err)
	f := &dto.BatchFailure{Index: index, ProductID: productID, Status: status}
	switch b := body.(type) {
	case dto.InsufficientStockResponse:
		f.Code, f.Message = b.Code, b.Message
	case dto.ErrorResponse:
		f.Code, f.Message = b.Code, b.Message
	}
	return f
}

// convert pasa la cantidad a la unidad base del producto. Si la unidad coincide (o viene vacía)
// no hay cantidad original que registrar.
func (h *StockHandler) convert(ctx context.Context, productID int64, qty decimal.Decimal, unit string) (decimal.Decimal, *decimal.Decimal, *string, error) {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return qty, nil, nil, nil
	}
	base, err := h.units.Unit(ctx, productID)
	if err != nil {
		return decimal.Zero, nil, nil, err
	}
	if domaininv.SameUnit(unit, base) {
		return qty, nil, nil, nil
	}
	converted, err := domaininv.ToBaseUnit(qty, unit, base)
	if err != nil {
		return decimal.Zero, nil, nil, err
	}
	orig := qty
	return converted, &orig, &unit, nil
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func stringOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
