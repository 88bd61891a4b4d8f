package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	domainUser "foodnest/internal/domain/user"
	"foodnest/internal/logger"
)

// Event is one message pushed to connected clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// client is one websocket subscriber. Cooks only receive events addressed to
// them; supervisors and superadmins see everything.
type client struct {
	conn   *websocket.Conn
	userID uuid.UUID
	role   string
	send   chan Event
}

// Hub fans prep-queue events out to websocket subscribers.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
	}
}

// Subscribe registers a connection and starts its writer goroutine. The
// returned func unregisters and closes the connection.
func (h *Hub) Subscribe(conn *websocket.Conn, userID uuid.UUID, role string) func() {
	c := &client{
		conn:   conn,
		userID: userID,
		role:   role,
		send:   make(chan Event, 16),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writeLoop()

	logger.Debug("Realtime client subscribed",
		zap.String("user_id", userID.String()),
		zap.String("role", role),
	)

	return func() {
		h.mu.Lock()
		if _, ok := h.clients[c]; ok {
			delete(h.clients, c)
			close(c.send)
		}
		h.mu.Unlock()
	}
}

// PublishPrepEvent delivers an event about a prep request owned by cookID.
func (h *Hub) PublishPrepEvent(eventType string, cookID uuid.UUID, payload interface{}) {
	event := Event{Type: eventType, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if !c.wants(cookID) {
			continue
		}
		select {
		case c.send <- event:
		default:
			// Slow consumer; drop the event rather than block the publisher.
			logger.Warn("Realtime client send buffer full, dropping event",
				zap.String("user_id", c.userID.String()),
				zap.String("event_type", eventType),
			)
		}
	}
}

func (c *client) wants(cookID uuid.UUID) bool {
	switch c.role {
	case domainUser.RoleSupervisor, domainUser.RoleSuperadmin:
		return true
	default:
		return c.userID == cookID
	}
}

func (c *client) writeLoop() {
	defer func() {
		_ = c.conn.Close()
	}()

	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			return
		}
	}

	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
