// internal/realtime/hub_test.go
package realtime

import (
	"encoding/json"
	"testing"
)

func newTestClient(id string, userID uint, buffer int) *Client {
	return &Client{
		ID:     id,
		UserID: userID,
		Events: make(chan Event, buffer),
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub()

	client := newTestClient("c1", 1, 4)
	hub.Register(client)

	if hub.ClientCount() != 1 {
		t.Fatalf("Expected 1 client, got %d", hub.ClientCount())
	}

	hub.Unregister("c1")
	if hub.ClientCount() != 0 {
		t.Errorf("Expected 0 clients after unregister, got %d", hub.ClientCount())
	}

	// Channel is closed on unregister so the SSE loop can exit
	if _, ok := <-client.Events; ok {
		t.Error("Expected events channel to be closed")
	}

	// Unregistering an unknown client is a no-op
	hub.Unregister("missing")
}

func TestBroadcast(t *testing.T) {
	hub := NewHub()

	c1 := newTestClient("c1", 1, 4)
	c2 := newTestClient("c2", 2, 4)
	hub.Register(c1)
	hub.Register(c2)

	hub.Broadcast(Event{EventType: "change", Data: "{}"})

	for _, client := range []*Client{c1, c2} {
		select {
		case event := <-client.Events:
			if event.EventType != "change" {
				t.Errorf("Expected change event, got %s", event.EventType)
			}
		default:
			t.Errorf("Client %s received no event", client.ID)
		}
	}
}

func TestBroadcastSkipsFullBuffer(t *testing.T) {
	hub := NewHub()

	full := newTestClient("full", 1, 1)
	full.Events <- Event{EventType: "filler"}
	hub.Register(full)

	// Must not block even though the client cannot take the event
	hub.Broadcast(Event{EventType: "change", Data: "{}"})

	if event := <-full.Events; event.EventType != "filler" {
		t.Errorf("Expected original buffered event, got %s", event.EventType)
	}
	select {
	case event := <-full.Events:
		t.Errorf("Expected dropped event, got %s", event.EventType)
	default:
	}
}

func TestSendToUser(t *testing.T) {
	hub := NewHub()

	// Two connections for user 1, one for user 2
	c1a := newTestClient("c1a", 1, 4)
	c1b := newTestClient("c1b", 1, 4)
	c2 := newTestClient("c2", 2, 4)
	hub.Register(c1a)
	hub.Register(c1b)
	hub.Register(c2)

	hub.SendToUser(1, Event{EventType: "notification", Data: "{}"})

	for _, client := range []*Client{c1a, c1b} {
		select {
		case <-client.Events:
		default:
			t.Errorf("Client %s of user 1 received no event", client.ID)
		}
	}

	select {
	case <-c2.Events:
		t.Error("User 2 should not have received the event")
	default:
	}
}

func TestPublishChange(t *testing.T) {
	hub := NewHub()

	client := newTestClient("c1", 1, 4)
	hub.Register(client)

	hub.PublishChange("orders", "update", 7)

	event := <-client.Events
	if event.EventType != "change" {
		t.Fatalf("Expected change event, got %s", event.EventType)
	}

	var payload ChangePayload
	if err := json.Unmarshal([]byte(event.Data), &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if payload.Table != "orders" || payload.Action != "update" || payload.ID != 7 {
		t.Errorf("Unexpected payload: %+v", payload)
	}
}
