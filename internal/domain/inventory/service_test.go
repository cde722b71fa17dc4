// internal/domain/inventory/service_test.go
package inventory_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/your-org/cafe-backend/internal/domain/inventory"
	"github.com/your-org/cafe-backend/internal/domain/notification"
	"github.com/your-org/cafe-backend/internal/domain/staff"
	"github.com/your-org/cafe-backend/internal/testutil"
	"gorm.io/gorm"
)

func setupInventoryTest(t *testing.T) (*inventory.Service, *gorm.DB, uint) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()
	outlet := testutil.SeedOutlet(t, db, "Main", fmt.Sprintf("T%d", testutil.UniqueID()))
	return inventory.NewService(db, cfg, notification.NewService(db, nil)), db, outlet.ID
}

func TestCreateItem(t *testing.T) {
	service, _, outletID := setupInventoryTest(t)

	item, err := service.CreateItem(&inventory.CreateItemRequest{
		OutletID:     outletID,
		Name:         "Oat Milk",
		Quantity:     20,
		ReorderLevel: 10,
	})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if item.Unit != "pcs" {
		t.Errorf("Expected default unit pcs, got %s", item.Unit)
	}

	// Duplicate name per outlet is rejected
	if _, err := service.CreateItem(&inventory.CreateItemRequest{
		OutletID: outletID,
		Name:     "Oat Milk",
	}); err == nil {
		t.Error("Expected duplicate item to be rejected")
	}
}

func TestUpdateQuantityRejectsNegative(t *testing.T) {
	service, db, outletID := setupInventoryTest(t)
	item := testutil.SeedInventoryItem(t, db, outletID, "Coffee Beans", 20, 10)

	if _, err := service.UpdateQuantity(item.ID, -1); err == nil {
		t.Error("Expected negative quantity to be rejected")
	}

	// Stored state untouched after the rejection
	var stored inventory.InventoryItem
	db.First(&stored, item.ID)
	if stored.Quantity != 20 {
		t.Errorf("Expected quantity unchanged at 20, got %d", stored.Quantity)
	}
}

func TestUpdateQuantityCreatesLowStockAlert(t *testing.T) {
	service, db, outletID := setupInventoryTest(t)
	item := testutil.SeedInventoryItem(t, db, outletID, "Coffee Beans", 20, 10)

	if _, err := service.UpdateQuantity(item.ID, 8); err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}

	alerts, err := service.ListAlerts()
	if err != nil {
		t.Fatalf("ListAlerts failed: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("Expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].AlertType != "low_stock" {
		t.Errorf("Expected low_stock alert, got %s", alerts[0].AlertType)
	}

	// A second drop does not stack another alert on the open one
	if _, err := service.UpdateQuantity(item.ID, 4); err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	alerts, _ = service.ListAlerts()
	if len(alerts) != 1 {
		t.Errorf("Expected still 1 unresolved alert, got %d", len(alerts))
	}

	var count int64
	db.Model(&inventory.StockAlert{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 alert row, got %d", count)
	}
}

func TestStockAlertNotifiesOutletStaff(t *testing.T) {
	service, db, outletID := setupInventoryTest(t)
	item := testutil.SeedInventoryItem(t, db, outletID, "Coffee Beans", 20, 10)

	staffUserID := testutil.UniqueID()
	member := staff.Staff{
		UserID:   staffUserID,
		OutletID: outletID,
		Position: "barista",
		IsActive: true,
	}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("Failed to seed staff member: %v", err)
	}

	if _, err := service.UpdateQuantity(item.ID, 8); err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}

	var rows []notification.Notification
	if err := db.Where("user_id = ? AND type = ?", staffUserID, notification.TypeStockAlert).
		Find(&rows).Error; err != nil {
		t.Fatalf("Failed to load notifications: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 stock alert notification, got %d", len(rows))
	}
	if !strings.Contains(rows[0].Message, "Coffee Beans") {
		t.Errorf("Expected message to name the item, got %q", rows[0].Message)
	}

	// The suppressed follow-up alert must not notify again
	if _, err := service.UpdateQuantity(item.ID, 4); err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	var count int64
	db.Model(&notification.Notification{}).
		Where("user_id = ? AND type = ?", staffUserID, notification.TypeStockAlert).
		Count(&count)
	if count != 1 {
		t.Errorf("Expected still 1 notification, got %d", count)
	}
}

func TestOutOfStockAlertAfterResolve(t *testing.T) {
	service, db, outletID := setupInventoryTest(t)
	item := testutil.SeedInventoryItem(t, db, outletID, "Coffee Beans", 20, 10)

	if _, err := service.UpdateQuantity(item.ID, 5); err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	alerts, _ := service.ListAlerts()
	if len(alerts) != 1 {
		t.Fatalf("Expected 1 alert, got %d", len(alerts))
	}

	if err := service.ResolveAlert(alerts[0].ID); err != nil {
		t.Fatalf("ResolveAlert failed: %v", err)
	}
	if alerts, _ = service.ListAlerts(); len(alerts) != 0 {
		t.Fatalf("Expected no unresolved alerts, got %d", len(alerts))
	}

	if _, err := service.UpdateQuantity(item.ID, 0); err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	alerts, _ = service.ListAlerts()
	if len(alerts) != 1 {
		t.Fatalf("Expected 1 new alert, got %d", len(alerts))
	}
	if alerts[0].AlertType != "out_of_stock" {
		t.Errorf("Expected out_of_stock alert, got %s", alerts[0].AlertType)
	}
}
