package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/stock-planner-api/pkg/logger"
	"github.com/rs/zerolog"
)

const (
	LocalRequestID = "request_id"
	localLogger    = "logger"
	headerReqID    = "X-Request-ID"
)

// RequestLogger asigna un request id (o respeta X-Request-ID) y registra método, ruta, status y duración.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(headerReqID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(headerReqID, reqID)
		c.Locals(LocalRequestID, reqID)
		reqLog := log.With().Str("request_id", reqID).Logger()
		c.Locals(localLogger, &reqLog)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error().Err(err)
		} else if status >= fiber.StatusBadRequest {
			ev = reqLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("user_id", GetUserID(c)).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}

// requestLogger logger del request; sin RequestLogger devuelve uno nulo.
func requestLogger(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals(localLogger).(*zerolog.Logger); ok {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}
