// internal/interfaces/http/handlers/events_test.go
package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cafe-backend/internal/realtime"
)

func TestStreamForwardsHubEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := realtime.NewHub()
	handler := NewEventsHandler(hub)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ctx, cancel := context.WithCancel(context.Background())
	c.Request = httptest.NewRequest("GET", "/api/v1/events", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		handler.Stream(c)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Stream never registered its client with the hub")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Broadcast(realtime.Event{EventType: "orders_change", Data: `{"id":1}`})
	time.Sleep(200 * time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stream did not return after the client disconnected")
	}

	body := w.Body.String()
	if !strings.Contains(body, "event: connected") {
		t.Error("Expected an initial connected event")
	}
	if !strings.Contains(body, "event: orders_change") {
		t.Errorf("Expected the broadcast event in the stream, got %q", body)
	}
	if hub.ClientCount() != 0 {
		t.Errorf("Expected client unregistered on disconnect, got %d", hub.ClientCount())
	}
}
