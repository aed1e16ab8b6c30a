package websocket

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"ai-sportscast-be/internal/model"
	"ai-sportscast-be/internal/pkg/logger"
)

// Hub tracks live viewer connections and delivers events to them.
// Delivery is best effort, at most once per connection per call; a
// connection whose send buffer is full is treated as dead and pruned.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Lock for safe map access
	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*Client),
		logger:  log,
	}
}

// Register adds a connection to the registry.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("Hub", "Client registered", map[string]interface{}{
		"client_id": client.ID,
		"total":     total,
	})
}

// Unregister removes a connection and closes its send channel. Safe to
// call more than once for the same client.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(client.Send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("Hub", "Client unregistered", map[string]interface{}{
		"client_id": client.ID,
		"total":     total,
	})
}

// Count returns the number of registered connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SendTo delivers one event to one connection. A full buffer counts as
// a failed delivery and prunes the connection. The send runs under the
// read lock: Unregister closes the send channel under the write lock,
// so a membership check alone would leave a window where a concurrent
// prune closes the channel mid-send.
func (h *Hub) SendTo(client *Client, event model.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.RLock()
	_, registered := h.clients[client.ID]
	sent := false
	if registered {
		select {
		case client.Send <- data:
			sent = true
		default:
		}
	}
	h.mu.RUnlock()

	if !registered {
		return ErrClientGone
	}
	if !sent {
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{
			"client_id": client.ID,
		})
		h.Unregister(client)
		return ErrClientGone
	}
	return nil
}

// Broadcast attempts delivery to every registered connection and
// returns how many were reached. Failed connections are pruned as a
// side effect; one bad connection never blocks the rest.
func (h *Hub) Broadcast(event model.Event) int {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal broadcast event", map[string]interface{}{
			"error": err.Error(),
			"type":  event.Type,
		})
		return 0
	}

	h.mu.RLock()
	var failed []*Client
	delivered := 0
	for _, client := range h.clients {
		select {
		case client.Send <- data:
			delivered++
		default:
			failed = append(failed, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range failed {
		h.logger.Warn("Hub", "Broadcast delivery failed, pruning client", map[string]interface{}{
			"client_id": client.ID,
			"type":      event.Type,
		})
		h.Unregister(client)
	}

	return delivered
}
