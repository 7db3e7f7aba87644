package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-planner-api/internal/infrastructure/realtime"
)

// RequireUpgrade deja pasar solo peticiones de upgrade WebSocket.
func RequireUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	}
}

// LiveFeed registra la conexión en el hub y la mantiene hasta que el cliente cierra.
// Los mensajes entrantes se ignoran.
func LiveFeed(hub *realtime.Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		if !hub.Join(c) {
			return
		}
		defer hub.Leave(c)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
