// internal/domain/order/service_test.go
package order_test

import (
	"fmt"
	"testing"

	"github.com/your-org/cafe-backend/internal/domain/menu"
	"github.com/your-org/cafe-backend/internal/domain/order"
	"github.com/your-org/cafe-backend/internal/realtime"
	"github.com/your-org/cafe-backend/internal/testutil"
	"gorm.io/gorm"
)

type orderTestEnv struct {
	db        *gorm.DB
	service   *order.Service
	hub       *realtime.Hub
	outletID  uint
	latte     *menu.MenuItem
	croissant *menu.MenuItem
}

func setupOrderTest(t *testing.T) *orderTestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	hub := realtime.NewHub()

	outlet := testutil.SeedOutlet(t, db, "Main", fmt.Sprintf("T%d", testutil.UniqueID()))

	latte := &menu.MenuItem{Name: "Latte", Category: "Drinks", Price: 450, IsAvailable: true}
	croissant := &menu.MenuItem{Name: "Croissant", Category: "Food", Price: 350, IsAvailable: true}
	for _, item := range []*menu.MenuItem{latte, croissant} {
		if err := db.Create(item).Error; err != nil {
			t.Fatalf("Failed to seed menu item: %v", err)
		}
	}

	menuService := menu.NewService(db, cfg)
	return &orderTestEnv{
		db:        db,
		service:   order.NewService(db, cfg, menuService, hub),
		hub:       hub,
		outletID:  outlet.ID,
		latte:     latte,
		croissant: croissant,
	}
}

func TestCreateOrder(t *testing.T) {
	env := setupOrderTest(t)

	// A connected client sees the new order announced
	client := &realtime.Client{ID: "test", UserID: 1, Events: make(chan realtime.Event, 4)}
	env.hub.Register(client)

	customerID := testutil.UniqueID()
	o, err := env.service.CreateOrder(&customerID, &order.CreateOrderRequest{
		OutletID: env.outletID,
		Items: []order.OrderLineRequest{
			{MenuItemID: env.latte.ID, Quantity: 2},
			{MenuItemID: env.croissant.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	// Totals come from menu prices, never the client
	if o.TotalAmount != 2*450+350 {
		t.Errorf("Expected total 1250, got %d", o.TotalAmount)
	}
	if o.Status != order.OrderStatusPending {
		t.Errorf("Expected pending status, got %s", o.Status)
	}
	if o.OrderNumber == "" {
		t.Error("Expected an order number")
	}
	if len(o.Items) != 2 {
		t.Errorf("Expected 2 order items, got %d", len(o.Items))
	}
	// Name snapshot survives later menu edits
	if o.Items[0].Name != "Latte" {
		t.Errorf("Expected item name snapshot, got %s", o.Items[0].Name)
	}

	select {
	case event := <-client.Events:
		if event.EventType != "change" {
			t.Errorf("Expected change event, got %s", event.EventType)
		}
	default:
		t.Error("Expected an order insert to be broadcast")
	}
}

func TestCreateOrderUnavailableItem(t *testing.T) {
	env := setupOrderTest(t)

	env.db.Model(env.latte).Update("is_available", false)

	_, err := env.service.CreateOrder(nil, &order.CreateOrderRequest{
		OutletID: env.outletID,
		Items:    []order.OrderLineRequest{{MenuItemID: env.latte.ID, Quantity: 1}},
	})
	if err == nil {
		t.Error("Expected unavailable item to be rejected")
	}

	var count int64
	env.db.Model(&order.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no orders after rollback, got %d", count)
	}
}

func TestUpdateStatus(t *testing.T) {
	env := setupOrderTest(t)

	o, err := env.service.CreateOrder(nil, &order.CreateOrderRequest{
		OutletID: env.outletID,
		Items:    []order.OrderLineRequest{{MenuItemID: env.latte.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	// Walk the full lifecycle
	for _, status := range []order.OrderStatus{
		order.OrderStatusPreparing,
		order.OrderStatusReady,
		order.OrderStatusCompleted,
	} {
		if _, err := env.service.UpdateStatus(o.ID, status); err != nil {
			t.Fatalf("Failed to move order to %s: %v", status, err)
		}
	}

	completed, err := env.service.Get(o.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if completed.CompletedAt == nil {
		t.Error("Expected completed_at to be stamped")
	}

	// Terminal orders reject further transitions
	if _, err := env.service.UpdateStatus(o.ID, order.OrderStatusPending); err == nil {
		t.Error("Expected transition out of completed to fail")
	}
}

func TestCancel(t *testing.T) {
	env := setupOrderTest(t)

	customerID := testutil.UniqueID()
	o, err := env.service.CreateOrder(&customerID, &order.CreateOrderRequest{
		OutletID: env.outletID,
		Items:    []order.OrderLineRequest{{MenuItemID: env.latte.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	// Another customer cannot cancel it
	other := customerID + 1
	if _, err := env.service.Cancel(o.ID, &other); err == nil {
		t.Error("Expected cancellation by another customer to fail")
	}

	cancelled, err := env.service.Cancel(o.ID, &customerID)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.Status != order.OrderStatusCancelled {
		t.Errorf("Expected cancelled status, got %s", cancelled.Status)
	}

	// Ready orders can no longer be cancelled
	o2, err := env.service.CreateOrder(&customerID, &order.CreateOrderRequest{
		OutletID: env.outletID,
		Items:    []order.OrderLineRequest{{MenuItemID: env.latte.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	env.service.UpdateStatus(o2.ID, order.OrderStatusPreparing)
	env.service.UpdateStatus(o2.ID, order.OrderStatusReady)
	if _, err := env.service.Cancel(o2.ID, &customerID); err == nil {
		t.Error("Expected cancellation of a ready order to fail")
	}
}

func TestListOpenOnly(t *testing.T) {
	env := setupOrderTest(t)

	o1, _ := env.service.CreateOrder(nil, &order.CreateOrderRequest{
		OutletID: env.outletID,
		Items:    []order.OrderLineRequest{{MenuItemID: env.latte.ID, Quantity: 1}},
	})
	o2, _ := env.service.CreateOrder(nil, &order.CreateOrderRequest{
		OutletID: env.outletID,
		Items:    []order.OrderLineRequest{{MenuItemID: env.latte.ID, Quantity: 1}},
	})
	env.service.UpdateStatus(o2.ID, order.OrderStatusPreparing)
	env.service.UpdateStatus(o2.ID, order.OrderStatusReady)
	env.service.UpdateStatus(o2.ID, order.OrderStatusCompleted)

	open, err := env.service.List(&order.OrderListQuery{OpenOnly: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(open) != 1 || open[0].ID != o1.ID {
		t.Errorf("Expected only the pending order, got %d orders", len(open))
	}
}
