package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-planner-api/internal/application/dto"
)

// DashboardSummarizer calcula el resumen del día.
type DashboardSummarizer interface {
	GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error)
}

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc DashboardSummarizer
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc DashboardSummarizer) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve entradas y salidas de hoy, stock activo total, productos bajo el
// umbral global y alertas abiertas. El día se calcula en la zona horaria del servidor.
// @Summary      Resumen del día
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
