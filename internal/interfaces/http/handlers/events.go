// internal/interfaces/http/handlers/events.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cafe-backend/internal/interfaces/http/middleware"
	"github.com/your-org/cafe-backend/internal/realtime"
)

// EventsHandler handles server-sent event streams
type EventsHandler struct {
	hub *realtime.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *realtime.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles GET /events. Holds the connection open and forwards hub
// events until the client disconnects.
func (h *EventsHandler) Stream(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	clientID := fmt.Sprintf("%d_%d", userID, time.Now().UnixNano())

	client := &realtime.Client{
		ID:     clientID,
		UserID: userID,
		Events: make(chan realtime.Event, 64),
	}

	h.hub.Register(client)

	// The server's write timeout would cut the stream off, clear the
	// deadlines for the life of this connection
	rc := http.NewResponseController(c.Writer)
	rc.SetWriteDeadline(time.Time{})
	rc.SetReadDeadline(time.Time{})

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.Writer.WriteString("event: connected\ndata: {\"client_id\":\"" + clientID + "\"}\n\n")
	c.Writer.Flush()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	clientGone := c.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			h.hub.Unregister(clientID)
			return
		case event, ok := <-client.Events:
			if !ok {
				return
			}
			c.Writer.WriteString(fmt.Sprintf("event: %s\ndata: %s\n\n", event.EventType, event.Data))
			c.Writer.Flush()
		case <-heartbeat.C:
			c.Writer.WriteString(": keepalive\n\n")
			c.Writer.Flush()
		}
	}
}
