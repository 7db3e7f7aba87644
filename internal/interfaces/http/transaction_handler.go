package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-planner-api/internal/application/dto"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
)

// TransactionReader consultas del registro de movimientos.
type TransactionReader interface {
	GetTransaction(ctx context.Context, id int64) (*entity.StockTransaction, error)
	ListTransactions(ctx context.Context, filter repository.TransactionFilter) ([]*entity.StockTransaction, error)
}

// TransactionExporter genera el Excel de movimientos.
type TransactionExporter interface {
	ExportTransactions(ctx context.Context, filter repository.TransactionFilter) ([]byte, string, error)
}

// TransactionHandler lectura y exportación de movimientos (los movimientos no se editan).
type TransactionHandler struct {
	reader   TransactionReader
	exporter TransactionExporter
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(reader TransactionReader, exporter TransactionExporter) *TransactionHandler {
	return &TransactionHandler{reader: reader, exporter: exporter}
}

// List godoc
// @Summary      Listar movimientos
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int     false  "Producto"
// @Param        user_id     query  int     false  "Usuario"
// @Param        type        query  string  false  "stock_in | stock_out"
// @Param        from        query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        to          query  string  false  "YYYY-MM-DD (día completo) o RFC3339"
// @Param        limit       query  int     false  "Límite"  default(50)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	filter, ok, err := transactionFilter(c)
	if !ok {
		return err
	}
	filter.Limit, filter.Offset = pageParams(c, 50, 500)
	list, err := h.reader.ListTransactions(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toTransactionResponse(t))
	}
	return c.JSON(dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Count: len(items)},
	})
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	t, err := h.reader.GetTransaction(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransactionResponse(t))
}

// Export godoc
// @Summary      Exportar movimientos a Excel
// @Tags         transactions
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        product_id  query  int     false  "Producto"
// @Param        type        query  string  false  "stock_in | stock_out"
// @Param        from        query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        to          query  string  false  "YYYY-MM-DD o RFC3339"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions/export [get]
func (h *TransactionHandler) Export(c *fiber.Ctx) error {
	filter, ok, err := transactionFilter(c)
	if !ok {
		return err
	}
	data, filename, err := h.exporter.ExportTransactions(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func transactionFilter(c *fiber.Ctx) (repository.TransactionFilter, bool, error) {
	var f repository.TransactionFilter
	bad := func(msg string) (repository.TransactionFilter, bool, error) {
		return f, false, validationError(c, msg)
	}
	if v := c.Query("product_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return bad("product_id inválido")
		}
		f.ProductID = &id
	}
	if v := c.Query("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return bad("user_id inválido")
		}
		f.UserID = &id
	}
	if v := c.Query("type"); v != "" {
		if !entity.IsValidTransactionType(v) {
			return bad("type debe ser stock_in o stock_out")
		}
		f.Type = &v
	}
	if v := c.Query("from"); v != "" {
		t, _, err := parseTimeParam(v)
		if err != nil {
			return bad("from inválido")
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, dateOnly, err := parseTimeParam(v)
		if err != nil {
			return bad("to inválido")
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = &t
	}
	return f, true, nil
}

// parseTimeParam acepta YYYY-MM-DD (hora local del servidor) o RFC3339.
func parseTimeParam(v string) (time.Time, bool, error) {
	if t, err := parseDate(v); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	return t, false, err
}
