package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-planner-api/internal/application/dto"
	"github.com/jhoicas/stock-planner-api/internal/application/planning"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
)

// PlanService casos de uso de planes semanales.
type PlanService interface {
	Create(ctx context.Context, in planning.CreatePlanInput) (*entity.WeeklyStockPlan, error)
	GetByID(ctx context.Context, id int64) (*entity.WeeklyStockPlan, error)
	List(ctx context.Context, filter repository.PlanFilter) ([]*entity.WeeklyStockPlan, error)
	Update(ctx context.Context, id int64, in planning.UpdatePlanInput) (*entity.WeeklyStockPlan, error)
	Deactivate(ctx context.Context, id int64) (*entity.WeeklyStockPlan, error)
	CurrentWeekPlans(ctx context.Context, asOf time.Time) ([]*entity.WeeklyStockPlan, error)
	Shortfalls(ctx context.Context, asOf time.Time) ([]planning.Shortfall, error)
}

// PlanHandler endpoints de /api/plans.
type PlanHandler struct {
	uc  PlanService
	now func() time.Time
}

// NewPlanHandler construye el handler.
func NewPlanHandler(uc PlanService) *PlanHandler {
	return &PlanHandler{uc: uc, now: time.Now}
}

// Create godoc
// @Summary      Crear plan semanal
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlanRequest  true  "Plan"
// @Success      201   {object}  dto.PlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/plans [post]
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlanRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	start, err := parseDate(in.WeekStartDate)
	if err != nil {
		return validationError(c, "week_start_date debe ser YYYY-MM-DD")
	}
	end, err := parseDate(in.WeekEndDate)
	if err != nil {
		return validationError(c, "week_end_date debe ser YYYY-MM-DD")
	}
	plan, err := h.uc.Create(c.Context(), planning.CreatePlanInput{
		ProductID:       in.ProductID,
		UserID:          GetUserID(c),
		PlannedQuantity: in.PlannedQuantity,
		Unit:            in.Unit,
		WeekStartDate:   start,
		WeekEndDate:     end,
		Notes:           in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPlanResponse(plan))
}

// List godoc
// @Summary      Listar planes
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int   false  "Producto"
// @Param        active      query  bool  false  "Solo activos"  default(false)
// @Param        limit       query  int   false  "Límite"        default(50)
// @Param        offset      query  int   false  "Offset"        default(0)
// @Success      200  {array}  dto.PlanResponse
// @Router       /api/plans [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	filter := repository.PlanFilter{ActiveOnly: c.QueryBool("active", false)}
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
	return c.JSON(toPlanResponses(list))
}

// GetByID godoc
// @Summary      Obtener plan
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del plan"
// @Success      200  {object}  dto.PlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [get]
func (h *PlanHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	plan, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPlanResponse(plan))
}

// Update godoc
// @Summary      Actualizar plan activo
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del plan"
// @Param        body  body  dto.UpdatePlanRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.PlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [put]
func (h *PlanHandler) Update(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	var in dto.UpdatePlanRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	upd := planning.UpdatePlanInput{
		PlannedQuantity: in.PlannedQuantity,
		Unit:            in.Unit,
		Notes:           in.Notes,
	}
	if in.WeekStartDate != nil {
		t, err := parseDate(*in.WeekStartDate)
		if err != nil {
			return validationError(c, "week_start_date debe ser YYYY-MM-DD")
		}
		upd.WeekStartDate = &t
	}
	if in.WeekEndDate != nil {
		t, err := parseDate(*in.WeekEndDate)
		if err != nil {
			return validationError(c, "week_end_date debe ser YYYY-MM-DD")
		}
		upd.WeekEndDate = &t
	}
	plan, err := h.uc.Update(c.Context(), id, upd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPlanResponse(plan))
}

// Deactivate godoc
// @Summary      Desactivar plan
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del plan"
// @Success      200  {object}  dto.PlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [delete]
func (h *PlanHandler) Deactivate(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	plan, err := h.uc.Deactivate(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPlanResponse(plan))
}

// Current godoc
// @Summary      Planes vigentes
// @Description  Planes activos cuya semana contiene la fecha (hoy por defecto).
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD"
// @Success      200   {array}  dto.PlanResponse
// @Router       /api/plans/current [get]
func (h *PlanHandler) Current(c *fiber.Ctx) error {
	asOf, ok, err := h.asOf(c)
	if !ok {
		return err
	}
	list, err := h.uc.CurrentWeekPlans(c.Context(), asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPlanResponses(list))
}

// Shortfalls godoc
// @Summary      Faltantes frente a los planes vigentes
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD"
// @Success      200   {array}  dto.ShortfallResponse
// @Router       /api/plans/shortfalls [get]
func (h *PlanHandler) Shortfalls(c *fiber.Ctx) error {
	asOf, ok, err := h.asOf(c)
	if !ok {
		return err
	}
	list, err := h.uc.Shortfalls(c.Context(), asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toShortfallResponses(list))
}

func (h *PlanHandler) asOf(c *fiber.Ctx) (time.Time, bool, error) {
	v := c.Query("date")
	if v == "" {
		return h.now(), true, nil
	}
	t, err := parseDate(v)
	if err != nil {
		return time.Time{}, false, validationError(c, "date debe ser YYYY-MM-DD")
	}
	return t, true, nil
}

func parseDate(v string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, v, time.Local)
}

func validationError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}
