package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-planner-api/internal/application/dto"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
)

// AlertService motor y consultas de alertas de stock bajo.
type AlertService interface {
	ProcessLowStockChecking(ctx context.Context) ([]*entity.LowStockAlert, error)
	Resolve(ctx context.Context, id int64) (*entity.LowStockAlert, error)
	List(ctx context.Context, filter repository.AlertFilter) ([]*entity.LowStockAlert, error)
}

// AlertReporter genera el PDF de alertas abiertas.
type AlertReporter interface {
	OpenAlertsPDF(ctx context.Context) ([]byte, string, error)
}

// AlertHandler endpoints de /api/alerts.
type AlertHandler struct {
	uc       AlertService
	reporter AlertReporter
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc AlertService, reporter AlertReporter) *AlertHandler {
	return &AlertHandler{uc: uc, reporter: reporter}
}

// List godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        resolved    query  bool  false  "Filtrar por estado"
// @Param        product_id  query  int   false  "Producto"
// @Param        limit       query  int   false  "Límite"  default(50)
// @Param        offset      query  int   false  "Offset"  default(0)
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	var filter repository.AlertFilter
	if v := c.Query("resolved"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return validationError(c, "resolved debe ser true o false")
		}
		filter.Resolved = &b
	}
	if v := c.Query("product_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return validationError(c, "product_id inválido")
		}
		filter.ProductID = &id
	}
	filter.Limit, filter.Offset = pageParams(c, 50, 200)
	list, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toAlertResponses(list))
}

// Check godoc
// @Summary      Ejecutar chequeo de stock bajo
// @Description  Crea alertas para los faltantes de hoy sin duplicar alertas abiertas. Devuelve solo las nuevas.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertCheckResponse
// @Router       /api/alerts/check [post]
func (h *AlertHandler) Check(c *fiber.Ctx) error {
	created, err := h.uc.ProcessLowStockChecking(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out := toAlertResponses(created)
	return c.JSON(dto.AlertCheckResponse{Created: out, Total: len(out)})
}

// Resolve godoc
// @Summary      Resolver alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/resolve [post]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	alert, err := h.uc.Resolve(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toAlertResponse(alert))
}

// Report godoc
// @Summary      PDF de alertas abiertas
// @Tags         alerts
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Router       /api/alerts/report [get]
func (h *AlertHandler) Report(c *fiber.Ctx) error {
	data, filename, err := h.reporter.OpenAlertsPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}
