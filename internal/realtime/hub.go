// internal/realtime/hub.go
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Event represents a server-sent change notification. Clients are expected
// to re-fetch the affected list on receipt rather than patch local state.
type Event struct {
	EventType string `json:"event"`
	Data      string `json:"data"`
}

// ChangePayload identifies a changed record
type ChangePayload struct {
	Table  string `json:"table"`
	Action string `json:"action"` // insert, update, delete
	ID     uint   `json:"id"`
}

// Client represents a connected SSE client
type Client struct {
	ID     string
	UserID uint
	Events chan Event
}

// Hub manages all SSE client connections
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new SSE hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a new client to the hub
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	logrus.WithFields(logrus.Fields{
		"client_id": client.ID,
		"user_id":   client.UserID,
		"total":     len(h.clients),
	}).Debug("sse client registered")
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
		logrus.WithFields(logrus.Fields{
			"client_id": clientID,
			"total":     len(h.clients),
		}).Debug("sse client unregistered")
	}
}

// Broadcast sends an event to all connected clients. Clients with a full
// buffer are skipped rather than blocked on.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Events <- event:
		default:
			logrus.WithField("client_id", client.ID).Warn("sse client buffer full, skipping event")
		}
	}
}

// SendToUser sends an event to every connection of one user
func (h *Hub) SendToUser(userID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.UserID == userID {
			select {
			case client.Events <- event:
			default:
				logrus.WithField("client_id", client.ID).Warn("sse client buffer full, skipping user event")
			}
		}
	}
}

// PublishChange broadcasts a table change so subscribed screens can re-fetch
func (h *Hub) PublishChange(table, action string, id uint) {
	payload, err := json.Marshal(ChangePayload{Table: table, Action: action, ID: id})
	if err != nil {
		return
	}
	h.Broadcast(Event{
		EventType: "change",
		Data:      string(payload),
	})
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
