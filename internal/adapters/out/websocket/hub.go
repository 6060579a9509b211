// Package websocket pushes notification events to connected operator clients.
//
// Delivery is fire and forget. Each connection owns a bounded send queue; a
// client whose queue is full is disconnected instead of slowing the broadcaster.
package websocket

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"takeout/internal/core/domain/model/notification"
	"takeout/internal/pkg/metrics"

	"github.com/gorilla/websocket"
)

const (
	DefaultSendBuffer = 16

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxInboundSize = 512
)

type client struct {
	sid  string
	conn *websocket.Conn
	send chan []byte
}

// Hub implements ports.Notifier.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool

	sendBuffer int
	upgrader   websocket.Upgrader
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewHub(sendBuffer int, logger *slog.Logger, m *metrics.Metrics) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}
	return &Hub{
		clients:    make(map[*client]struct{}),
		sendBuffer: sendBuffer,
		upgrader: websocket.Upgrader{
			// Operator consoles are served from other origins; access is gated by the admin token.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger:  logger.With("component", "WebSocketHub"),
		metrics: m,
	}
}

// Serve upgrades the request and keeps the connection registered until it
// fails, the peer goes away or the hub is closed. sid names the client in logs.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, sid string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{sid: sid, conn: conn, send: make(chan []byte, h.sendBuffer)}
	if !h.register(c) {
		_ = conn.Close()
		return nil
	}
	h.logger.Info("client connected", "sid", sid)

	go h.writePump(c)
	h.readPump(c)
	return nil
}

// Broadcast encodes the event once and queues it for every client without blocking.
func (h *Hub) Broadcast(event notification.Event) {
	msg, err := event.Text()
	if err != nil {
		h.logger.Error("encode event", "type", event.Type.String(), "order_id", event.OrderID, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("send queue full, dropping client", "sid", c.sid)
			h.metrics.WSDropped.Inc()
			h.removeLocked(c)
		}
	}
}

// Len reports how many clients are connected.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.metrics.WSClients.Set(float64(len(h.clients)))
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked closes the send queue once; the write pump then closes the socket.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.metrics.WSClients.Set(float64(len(h.clients)))
}

// readPump only serves control frames; inbound payloads are discarded.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
		h.logger.Info("client disconnected", "sid", c.sid)
	}()

	c.conn.SetReadLimit(maxInboundSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Warn("write failed, dropping client", "sid", c.sid, "error", err)
				h.metrics.WSDropped.Inc()
				h.unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(c)
				return
			}
		}
	}
}
