// Package realtime difunde eventos de stock y alertas a clientes WebSocket.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/jhoicas/stock-planner-api/internal/application/alerts"
	"github.com/jhoicas/stock-planner-api/internal/application/inventory"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/pkg/logger"
	"github.com/shopspring/decimal"
)

var (
	_ inventory.StockNotifier = (*Hub)(nil)
	_ alerts.AlertNotifier    = (*Hub)(nil)
)

const (
	broadcastBuffer = 256
	// sendBuffer mensajes pendientes por cliente; al llenarse el cliente se desconecta.
	sendBuffer = 16
	writeWait  = 10 * time.Second
)

// Client lo que el hub necesita de una conexión (*websocket.Conn lo cumple).
type Client interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Event mensaje enviado a los clientes.
type Event struct {
	Type string      `json:"type"` // stock_changed | low_stock_alerts
	At   time.Time   `json:"at"`
	Data interface{} `json:"data"`
}

// StockChange payload de stock_changed.
type StockChange struct {
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TransactionID int64           `json:"transaction_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	UserID        int64           `json:"user_id"`
}

// AlertEvent una alerta en low_stock_alerts.
type AlertEvent struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	WeeklyPlanID    int64           `json:"weekly_plan_id"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity"`
	AlertLevel      string          `json:"alert_level"`
}

// peer cola de salida de un cliente; la vacía su propia goroutine (writePump).
type peer struct {
	conn Client
	send chan []byte
}

// Hub registro de clientes con canales Register/Unregister/Broadcast; Run los atiende en una goroutine.
// Run nunca escribe en un socket: reparte cada mensaje a la cola de cada cliente.
type Hub struct {
	clients    map[Client]*peer
	Register   chan Client
	Unregister chan Client
	broadcast  chan []byte
	done       chan struct{}
	mutex      sync.Mutex
	log        *logger.Logger
}

// NewHub construye el hub. Llamar Run antes de registrar clientes.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[Client]*peer),
		Register:   make(chan Client),
		Unregister: make(chan Client),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run atiende los canales hasta que ctx se cancela; al salir cierra todas las conexiones.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for c, p := range h.clients {
				h.drop(c, p)
			}
			h.mutex.Unlock()
			return

		case c := <-h.Register:
			p := &peer{conn: c, send: make(chan []byte, sendBuffer)}
			h.mutex.Lock()
			h.clients[c] = p
			n := len(h.clients)
			h.mutex.Unlock()
			go h.writePump(p)
			h.log.Debug().Int("clients", n).Msg("cliente ws conectado")

		case c := <-h.Unregister:
			h.mutex.Lock()
			if p, ok := h.clients[c]; ok {
				h.drop(c, p)
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for c, p := range h.clients {
				select {
				case p.send <- message:
				default:
					h.log.Warn().Msg("cliente ws lento, desconectado")
					h.drop(c, p)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// drop saca al cliente del registro y cierra su cola y su conexión. Requiere h.mutex.
func (h *Hub) drop(c Client, p *peer) {
	delete(h.clients, c)
	close(p.send)
	_ = c.Close()
}

// writePump escribe la cola del cliente con un plazo por mensaje. Ante un error de escritura
// cierra la conexión y lo desregistra; termina cuando el hub cierra la cola.
func (h *Hub) writePump(p *peer) {
	for msg := range p.send {
		_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			_ = p.conn.Close()
			h.Leave(p.conn)
			return
		}
	}
}

// Join registra c; devuelve false si el hub ya se detuvo.
func (h *Hub) Join(c Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Leave desregistra c. No bloquea si el hub ya se detuvo.
func (h *Hub) Leave(c Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

// ClientCount número de clientes conectados.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish serializa y encola el evento. Si la cola está llena el evento se descarta.
func (h *Hub) Publish(eventType string, data interface{}) {
	msg, err := json.Marshal(Event{Type: eventType, At: time.Now(), Data: data})
	if err != nil {
		h.log.Error().Err(err).Str("type", eventType).Msg("evento ws no serializable")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn().Str("type", eventType).Msg("cola ws llena, evento descartado")
	}
}

// StockChanged implementa inventory.StockNotifier.
func (h *Hub) StockChanged(product *entity.Product, txn *entity.StockTransaction) {
	h.Publish("stock_changed", StockChange{
		ProductID:     product.ID,
		ProductName:   product.Name,
		TransactionID: txn.ID,
		Type:          txn.Type,
		Quantity:      txn.Quantity,
		PreviousStock: txn.PreviousStock,
		NewStock:      txn.NewStock,
		UserID:        txn.UserID,
	})
}

// AlertsCreated implementa alerts.AlertNotifier.
func (h *Hub) AlertsCreated(created []*entity.LowStockAlert) {
	if len(created) == 0 {
		return
	}
	out := make([]AlertEvent, 0, len(created))
	for _, a := range created {
		out = append(out, AlertEvent{
			ID:              a.ID,
			ProductID:       a.ProductID,
			WeeklyPlanID:    a.WeeklyPlanID,
			CurrentStock:    a.CurrentStock,
			PlannedQuantity: a.PlannedQuantity,
			AlertLevel:      a.AlertLevel,
		})
	}
	h.Publish("low_stock_alerts", out)
}
