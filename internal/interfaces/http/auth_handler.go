package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-planner-api/internal/application/dto"
)

// Authenticator valida credenciales y emite el token.
type Authenticator interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

// AuthHandler maneja el login. El alta de usuarios vive en UserHandler (solo super_admin).
type AuthHandler struct {
	uc Authenticator
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc Authenticator) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		status, body := errorStatus(err)
		switch status {
		case fiber.StatusNotFound, fiber.StatusUnauthorized:
			// no distinguir usuario inexistente de contraseña incorrecta
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		case fiber.StatusForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva"})
		}
		if status >= fiber.StatusInternalServerError {
			return writeError(c, err)
		}
		return c.Status(status).JSON(body)
	}
	return c.JSON(out)
}
