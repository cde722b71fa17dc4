// internal/domain/procurement/service_test.go
package procurement_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/your-org/cafe-backend/internal/domain/inventory"
	"github.com/your-org/cafe-backend/internal/domain/notification"
	"github.com/your-org/cafe-backend/internal/domain/procurement"
	"github.com/your-org/cafe-backend/internal/domain/request"
	"github.com/your-org/cafe-backend/internal/domain/staff"
	"github.com/your-org/cafe-backend/internal/testutil"
	"gorm.io/gorm"
)

type procurementTestEnv struct {
	db       *gorm.DB
	service  *procurement.Service
	outletID uint
	vendorID uint
	itemID   uint
}

func setupProcurementTest(t *testing.T) *procurementTestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	rdb := testutil.SetupTestRedis(t)
	cfg := testutil.TestConfig()

	outlet := testutil.SeedOutlet(t, db, "Main", fmt.Sprintf("T%d", testutil.UniqueID()))
	v := testutil.SeedVendor(t, db, "Acme Supplies")
	item := testutil.SeedInventoryItem(t, db, outlet.ID, "Coffee Beans", 5, 10)

	notifier := notification.NewService(db, nil)
	requestService := request.NewService(db, rdb, cfg, notifier)
	inventoryService := inventory.NewService(db, cfg, notifier)

	return &procurementTestEnv{
		db:       db,
		service:  procurement.NewService(db, cfg, requestService, inventoryService, notifier),
		outletID: outlet.ID,
		vendorID: v.ID,
		itemID:   item.ID,
	}
}

func (env *procurementTestEnv) createPO(t *testing.T, quantity int, unitPrice int64) *procurement.PurchaseOrder {
	t.Helper()
	po, err := env.service.CreatePurchaseOrder(1, &procurement.CreatePORequest{
		OutletID:    env.outletID,
		VendorID:    env.vendorID,
		TotalAmount: int64(quantity) * unitPrice,
		Items: []procurement.POItemRequest{
			{InventoryItemID: env.itemID, Quantity: quantity, UnitPrice: unitPrice},
		},
	})
	if err != nil {
		t.Fatalf("CreatePurchaseOrder failed: %v", err)
	}
	return po
}

// confirmPO walks a fresh purchase order to confirmed so deliveries can be scheduled
func (env *procurementTestEnv) confirmPO(t *testing.T, poID uint) {
	t.Helper()
	if _, err := env.service.UpdatePOStatus(poID, procurement.POStatusSent); err != nil {
		t.Fatalf("Failed to mark PO sent: %v", err)
	}
	if _, err := env.service.UpdatePOStatus(poID, procurement.POStatusConfirmed); err != nil {
		t.Fatalf("Failed to mark PO confirmed: %v", err)
	}
}

func TestPONumberSequence(t *testing.T) {
	env := setupProcurementTest(t)

	year := time.Now().UTC().Year()
	first := env.createPO(t, 10, 500)
	if expected := fmt.Sprintf("PO-%d-001", year); first.PONumber != expected {
		t.Errorf("Expected %s, got %s", expected, first.PONumber)
	}

	second := env.createPO(t, 5, 500)
	if expected := fmt.Sprintf("PO-%d-002", year); second.PONumber != expected {
		t.Errorf("Expected %s, got %s", expected, second.PONumber)
	}
}

func TestCreatePurchaseOrderTotalMismatch(t *testing.T) {
	env := setupProcurementTest(t)

	_, err := env.service.CreatePurchaseOrder(1, &procurement.CreatePORequest{
		OutletID:    env.outletID,
		VendorID:    env.vendorID,
		TotalAmount: 999,
		Items: []procurement.POItemRequest{
			{InventoryItemID: env.itemID, Quantity: 10, UnitPrice: 500},
		},
	})
	if err == nil {
		t.Error("Expected total mismatch to be rejected")
	}
}

func TestCreatePurchaseOrderConvertsRequests(t *testing.T) {
	env := setupProcurementTest(t)

	approved := request.InventoryRequest{
		InventoryItemID:   env.itemID,
		StaffID:           1,
		RequestedQuantity: 10,
		Status:            request.RequestStatusApproved,
	}
	if err := env.db.Create(&approved).Error; err != nil {
		t.Fatalf("Failed to seed request: %v", err)
	}

	po, err := env.service.CreatePurchaseOrder(1, &procurement.CreatePORequest{
		OutletID:    env.outletID,
		VendorID:    env.vendorID,
		TotalAmount: 5000,
		Items: []procurement.POItemRequest{
			{InventoryItemID: env.itemID, Quantity: 10, UnitPrice: 500},
		},
		RequestIDs: []uint{approved.ID},
	})
	if err != nil {
		t.Fatalf("CreatePurchaseOrder failed: %v", err)
	}

	var converted request.InventoryRequest
	env.db.First(&converted, approved.ID)
	if converted.Status != request.RequestStatusConvertedToPO {
		t.Errorf("Expected converted_to_po, got %s", converted.Status)
	}
	if converted.PurchaseOrderID == nil || *converted.PurchaseOrderID != po.ID {
		t.Error("Expected request linked to the purchase order")
	}
}

func TestCreatePurchaseOrderRejectsPendingRequest(t *testing.T) {
	env := setupProcurementTest(t)

	pending := request.InventoryRequest{
		InventoryItemID:   env.itemID,
		StaffID:           1,
		RequestedQuantity: 10,
		Status:            request.RequestStatusPending,
	}
	if err := env.db.Create(&pending).Error; err != nil {
		t.Fatalf("Failed to seed request: %v", err)
	}

	_, err := env.service.CreatePurchaseOrder(1, &procurement.CreatePORequest{
		OutletID:    env.outletID,
		VendorID:    env.vendorID,
		TotalAmount: 5000,
		Items: []procurement.POItemRequest{
			{InventoryItemID: env.itemID, Quantity: 10, UnitPrice: 500},
		},
		RequestIDs: []uint{pending.ID},
	})
	if err == nil {
		t.Fatal("Expected conversion of a pending request to fail")
	}

	// The whole creation rolls back
	var count int64
	env.db.Model(&procurement.PurchaseOrder{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no purchase orders after rollback, got %d", count)
	}
}

func TestCreateDelivery(t *testing.T) {
	env := setupProcurementTest(t)
	po := env.createPO(t, 10, 500)

	// No deliveries for a PO the vendor has not seen yet
	if _, err := env.service.CreateDelivery(po.ID, &procurement.CreateDeliveryRequest{}); err == nil {
		t.Error("Expected delivery on a pending PO to be rejected")
	}

	env.confirmPO(t, po.ID)

	delivery, err := env.service.CreateDelivery(po.ID, &procurement.CreateDeliveryRequest{})
	if err != nil {
		t.Fatalf("CreateDelivery failed: %v", err)
	}
	if delivery.Status != procurement.DeliveryStatusScheduled {
		t.Errorf("Expected scheduled status, got %s", delivery.Status)
	}
	if len(delivery.Items) != 1 {
		t.Fatalf("Expected 1 delivery item copied from the PO, got %d", len(delivery.Items))
	}
	if delivery.Items[0].OrderedQuantity != 10 {
		t.Errorf("Expected ordered quantity 10, got %d", delivery.Items[0].OrderedQuantity)
	}
	if delivery.DeliveryNumber == "" {
		t.Error("Expected a delivery number")
	}
}

func TestDeliveryStatusUpdateNotifiesOutletStaff(t *testing.T) {
	env := setupProcurementTest(t)

	staffUserID := testutil.UniqueID()
	member := staff.Staff{
		UserID:   staffUserID,
		OutletID: env.outletID,
		Position: "barista",
		IsActive: true,
	}
	if err := env.db.Create(&member).Error; err != nil {
		t.Fatalf("Failed to seed staff member: %v", err)
	}

	po := env.createPO(t, 10, 500)
	env.confirmPO(t, po.ID)
	delivery, err := env.service.CreateDelivery(po.ID, &procurement.CreateDeliveryRequest{})
	if err != nil {
		t.Fatalf("CreateDelivery failed: %v", err)
	}

	if _, err := env.service.UpdateDeliveryStatus(delivery.ID, procurement.DeliveryStatusInTransit); err != nil {
		t.Fatalf("UpdateDeliveryStatus failed: %v", err)
	}

	var rows []notification.Notification
	if err := env.db.Where("user_id = ? AND type = ?", staffUserID, notification.TypeDeliveryUpdate).
		Find(&rows).Error; err != nil {
		t.Fatalf("Failed to load notifications: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 delivery notification, got %d", len(rows))
	}
	if !strings.Contains(rows[0].Message, delivery.DeliveryNumber) {
		t.Errorf("Expected message to name delivery %s, got %q", delivery.DeliveryNumber, rows[0].Message)
	}
	if !strings.Contains(rows[0].Message, string(procurement.DeliveryStatusInTransit)) {
		t.Errorf("Expected message to carry the new status, got %q", rows[0].Message)
	}
}

func TestReceivedDoesNotTouchInventory(t *testing.T) {
	env := setupProcurementTest(t)
	po := env.createPO(t, 10, 500)
	env.confirmPO(t, po.ID)

	delivery, err := env.service.CreateDelivery(po.ID, &procurement.CreateDeliveryRequest{})
	if err != nil {
		t.Fatalf("CreateDelivery failed: %v", err)
	}

	for _, status := range []procurement.DeliveryStatus{
		procurement.DeliveryStatusInTransit,
		procurement.DeliveryStatusDelivered,
		procurement.DeliveryStatusReceived,
	} {
		if _, err := env.service.UpdateDeliveryStatus(delivery.ID, status); err != nil {
			t.Fatalf("Failed to move delivery to %s: %v", status, err)
		}
	}

	received, err := env.service.GetDelivery(delivery.ID)
	if err != nil {
		t.Fatalf("GetDelivery failed: %v", err)
	}
	if received.ReceivedDate == nil {
		t.Error("Expected received_date to be stamped")
	}

	// Stock only moves at reconciliation
	var item inventory.InventoryItem
	env.db.First(&item, env.itemID)
	if item.Quantity != 5 {
		t.Errorf("Expected inventory untouched at 5, got %d", item.Quantity)
	}
}

func TestReconcileDelivery(t *testing.T) {
	env := setupProcurementTest(t)
	po := env.createPO(t, 10, 500)
	env.confirmPO(t, po.ID)

	delivery, err := env.service.CreateDelivery(po.ID, &procurement.CreateDeliveryRequest{})
	if err != nil {
		t.Fatalf("CreateDelivery failed: %v", err)
	}

	// Reconciliation requires a received delivery
	if _, err := env.service.ReconcileDelivery(delivery.ID, &procurement.ReconcileRequest{}); err == nil {
		t.Error("Expected reconciliation of a scheduled delivery to fail")
	}

	for _, status := range []procurement.DeliveryStatus{
		procurement.DeliveryStatusInTransit,
		procurement.DeliveryStatusDelivered,
		procurement.DeliveryStatusReceived,
	} {
		if _, err := env.service.UpdateDeliveryStatus(delivery.ID, status); err != nil {
			t.Fatalf("Failed to move delivery to %s: %v", status, err)
		}
	}

	if _, err := env.service.RecordDeliveredQuantities(delivery.ID, map[uint]int{delivery.Items[0].ID: 10}); err != nil {
		t.Fatalf("RecordDeliveredQuantities failed: %v", err)
	}

	// Counted 8 of the 10 ordered; the discrepancy stays for manual review
	reconciled, err := env.service.ReconcileDelivery(delivery.ID, &procurement.ReconcileRequest{
		ReceivedQuantities: map[uint]int{delivery.Items[0].ID: 8},
	})
	if err != nil {
		t.Fatalf("ReconcileDelivery failed: %v", err)
	}
	if reconciled.ReconciledAt == nil {
		t.Error("Expected reconciled_at to be stamped")
	}

	var item inventory.InventoryItem
	env.db.First(&item, env.itemID)
	if item.Quantity != 13 {
		t.Errorf("Expected inventory 5+8=13, got %d", item.Quantity)
	}

	// A delivery reconciles at most once
	if _, err := env.service.ReconcileDelivery(delivery.ID, &procurement.ReconcileRequest{
		ReceivedQuantities: map[uint]int{delivery.Items[0].ID: 8},
	}); err == nil {
		t.Error("Expected second reconciliation to fail")
	}
	env.db.First(&item, env.itemID)
	if item.Quantity != 13 {
		t.Errorf("Expected inventory unchanged at 13, got %d", item.Quantity)
	}
}

func TestReconcileRequiresAllQuantities(t *testing.T) {
	env := setupProcurementTest(t)
	po := env.createPO(t, 10, 500)
	env.confirmPO(t, po.ID)

	delivery, err := env.service.CreateDelivery(po.ID, &procurement.CreateDeliveryRequest{})
	if err != nil {
		t.Fatalf("CreateDelivery failed: %v", err)
	}
	for _, status := range []procurement.DeliveryStatus{
		procurement.DeliveryStatusInTransit,
		procurement.DeliveryStatusDelivered,
		procurement.DeliveryStatusReceived,
	} {
		if _, err := env.service.UpdateDeliveryStatus(delivery.ID, status); err != nil {
			t.Fatalf("Failed to move delivery to %s: %v", status, err)
		}
	}

	if _, err := env.service.ReconcileDelivery(delivery.ID, &procurement.ReconcileRequest{
		ReceivedQuantities: map[uint]int{},
	}); err == nil {
		t.Error("Expected reconciliation without counts to fail")
	}

	var item inventory.InventoryItem
	env.db.First(&item, env.itemID)
	if item.Quantity != 5 {
		t.Errorf("Expected inventory untouched at 5, got %d", item.Quantity)
	}
}
