package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-planner-api/internal/application/dto"
)

// UserAdmin alta y listado de operadores.
type UserAdmin interface {
	RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, limit, offset int) ([]dto.UserResponse, error)
}

// UserHandler administración de usuarios (solo super_admin).
type UserHandler struct {
	uc UserAdmin
}

// NewUserHandler construye el handler.
func NewUserHandler(uc UserAdmin) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, password, name, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	user, err := h.uc.RegisterUser(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	requestLogger(c).Info().Int64("user_id", user.ID).Str("role", user.Role).Str("by", GetUsername(c)).Msg("usuario creado")
	return c.Status(fiber.StatusCreated).JSON(user)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c, 50, 200)
	users, err := h.uc.ListUsers(c.Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(users)
}
