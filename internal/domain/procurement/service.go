// internal/domain/procurement/service.go
package procurement

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/inventory"
	"github.com/your-org/cafe-backend/internal/domain/notification"
	"github.com/your-org/cafe-backend/internal/domain/request"
	"gorm.io/gorm"
)

// Service handles purchase order and delivery business logic
type Service struct {
	db               *gorm.DB
	config           *config.Config
	requestService   *request.Service
	inventoryService *inventory.Service
	notifier         *notification.Service
}

// NewService creates a new procurement service
func NewService(db *gorm.DB, cfg *config.Config, requestService *request.Service, inventoryService *inventory.Service, notifier *notification.Service) *Service {
	return &Service{
		db:               db,
		config:           cfg,
		requestService:   requestService,
		inventoryService: inventoryService,
		notifier:         notifier,
	}
}

// POItemRequest represents one purchase order line in a creation request
type POItemRequest struct {
	InventoryItemID uint  `json:"inventory_item_id" binding:"required"`
	Quantity        int   `json:"quantity" binding:"required,min=1"`
	UnitPrice       int64 `json:"unit_price" binding:"min=0"` // In cents
}

// CreatePORequest represents purchase order creation data
type CreatePORequest struct {
	OutletID             uint            `json:"outlet_id" binding:"required"`
	VendorID             uint            `json:"vendor_id" binding:"required"`
	TotalAmount          int64           `json:"total_amount" binding:"required"` // In cents, supplied by caller
	ExpectedDeliveryDate *time.Time      `json:"expected_delivery_date"`
	Notes                string          `json:"notes"`
	Items                []POItemRequest `json:"items" binding:"required,min=1,dive"`
	RequestIDs           []uint          `json:"request_ids"` // Approved requests this PO converts
}

// POListQuery represents purchase order list filters
type POListQuery struct {
	Status   POStatus `form:"status"`
	OutletID uint     `form:"outlet_id"`
	VendorID uint     `form:"vendor_id"`
}

// UpdateStatusRequest carries a target status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateDeliveryRequest represents delivery creation data
type CreateDeliveryRequest struct {
	DeliveryDate *time.Time `json:"delivery_date"`
}

// ReconcileRequest carries received quantities keyed by delivery item ID
type ReconcileRequest struct {
	ReceivedQuantities map[uint]int `json:"received_quantities" binding:"required"`
}

// generatePONumber builds the next PO number for the current year.
// Format: PO-<year>-<sequence>, zero-padded to 3 digits. The sequence is
// derived from the count of existing orders, which is not unique under
// concurrent creation.
func (s *Service) generatePONumber(tx *gorm.DB, now time.Time) (string, error) {
	year := now.UTC().Year()
	var count int64
	if err := tx.Model(&PurchaseOrder{}).Where("po_number LIKE ?", fmt.Sprintf("PO-%d-%%", year)).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to count purchase orders: %w", err)
	}
	return fmt.Sprintf("PO-%d-%03d", year, count+1), nil
}

// CreatePurchaseOrder creates a purchase order, optionally converting approved
// inventory requests. The caller supplies total_amount; it is validated
// against the sum of the line totals.
func (s *Service) CreatePurchaseOrder(createdBy uint, req *CreatePORequest) (*PurchaseOrder, error) {
	var lineTotal int64
	items := make([]PurchaseOrderItem, len(req.Items))
	for i, item := range req.Items {
		total := int64(item.Quantity) * item.UnitPrice
		items[i] = PurchaseOrderItem{
			InventoryItemID: item.InventoryItemID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			TotalPrice:      total,
		}
		lineTotal += total
	}

	if req.TotalAmount != lineTotal {
		return nil, fmt.Errorf("total_amount %d does not match sum of line totals %d", req.TotalAmount, lineTotal)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	poNumber, err := s.generatePONumber(tx, now)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	po := &PurchaseOrder{
		PONumber:             poNumber,
		OutletID:             req.OutletID,
		VendorID:             req.VendorID,
		Status:               POStatusPending,
		TotalAmount:          req.TotalAmount,
		OrderDate:            now,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		Notes:                req.Notes,
		CreatedBy:            createdBy,
		Items:                items,
	}

	if err := tx.Create(po).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create purchase order: %w", err)
	}

	if len(req.RequestIDs) > 0 {
		if err := s.requestService.MarkConverted(tx, req.RequestIDs, po.ID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	tx.Commit()
	return po, nil
}

// ListPurchaseOrders retrieves purchase orders with optional filters
func (s *Service) ListPurchaseOrders(query *POListQuery) ([]PurchaseOrder, error) {
	var orders []PurchaseOrder
	q := s.db.Preload("Items").Order("created_at DESC")
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.OutletID != 0 {
		q = q.Where("outlet_id = ?", query.OutletID)
	}
	if query.VendorID != 0 {
		q = q.Where("vendor_id = ?", query.VendorID)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve purchase orders: %w", err)
	}
	return orders, nil
}

// GetPurchaseOrder retrieves one purchase order with items and deliveries
func (s *Service) GetPurchaseOrder(poID uint) (*PurchaseOrder, error) {
	var po PurchaseOrder
	if err := s.db.Preload("Items").Preload("Deliveries").Preload("Deliveries.Items").Where("id = ?", poID).First(&po).Error; err != nil {
		return nil, fmt.Errorf("purchase order not found")
	}
	return &po, nil
}

// UpdatePOStatus applies a validated status transition
func (s *Service) UpdatePOStatus(poID uint, status POStatus) (*PurchaseOrder, error) {
	var po PurchaseOrder
	if err := s.db.Where("id = ?", poID).First(&po).Error; err != nil {
		return nil, fmt.Errorf("purchase order not found")
	}

	if err := ValidatePOTransition(po.Status, status); err != nil {
		return nil, err
	}

	po.Status = status
	if err := s.db.Save(&po).Error; err != nil {
		return nil, fmt.Errorf("failed to update purchase order status: %w", err)
	}

	return &po, nil
}

// CreateDelivery schedules a delivery for a purchase order, copying its lines
// as ordered quantities
func (s *Service) CreateDelivery(poID uint, req *CreateDeliveryRequest) (*Delivery, error) {
	var po PurchaseOrder
	if err := s.db.Preload("Items").Where("id = ?", poID).First(&po).Error; err != nil {
		return nil, fmt.Errorf("purchase order not found")
	}

	if po.Status == POStatusPending || po.Status == POStatusCancelled {
		return nil, fmt.Errorf("cannot schedule a delivery for a %s purchase order", po.Status)
	}

	items := make([]DeliveryItem, len(po.Items))
	for i, item := range po.Items {
		items[i] = DeliveryItem{
			InventoryItemID: item.InventoryItemID,
			OrderedQuantity: item.Quantity,
			UnitPrice:       item.UnitPrice,
		}
	}

	delivery := &Delivery{
		DeliveryNumber:  fmt.Sprintf("DLV-%s", strings.ToUpper(uuid.NewString()[:8])),
		PurchaseOrderID: po.ID,
		VendorID:        po.VendorID,
		OutletID:        po.OutletID,
		Status:          DeliveryStatusScheduled,
		DeliveryDate:    req.DeliveryDate,
		Items:           items,
	}

	if err := s.db.Create(delivery).Error; err != nil {
		return nil, fmt.Errorf("failed to create delivery: %w", err)
	}

	return delivery, nil
}

// ListDeliveries retrieves deliveries newest first
func (s *Service) ListDeliveries() ([]Delivery, error) {
	var deliveries []Delivery
	if err := s.db.Preload("Items").Preload("PurchaseOrder").Order("created_at DESC").Find(&deliveries).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve deliveries: %w", err)
	}
	return deliveries, nil
}

// GetDelivery retrieves one delivery with its items and purchase order
func (s *Service) GetDelivery(deliveryID uint) (*Delivery, error) {
	var delivery Delivery
	if err := s.db.Preload("Items").Preload("PurchaseOrder").Where("id = ?", deliveryID).First(&delivery).Error; err != nil {
		return nil, fmt.Errorf("delivery not found")
	}
	return &delivery, nil
}

// UpdateDeliveryStatus applies a validated status transition. A transition to
// received stamps received_date; inventory quantities are NOT touched here,
// reconciliation is a separate manual step.
func (s *Service) UpdateDeliveryStatus(deliveryID uint, status DeliveryStatus) (*Delivery, error) {
	var delivery Delivery
	if err := s.db.Where("id = ?", deliveryID).First(&delivery).Error; err != nil {
		return nil, fmt.Errorf("delivery not found")
	}

	if err := ValidateDeliveryTransition(delivery.Status, status); err != nil {
		return nil, err
	}

	delivery.Status = status
	if status == DeliveryStatusReceived {
		now := time.Now().UTC()
		delivery.ReceivedDate = &now
	}

	if err := s.db.Save(&delivery).Error; err != nil {
		return nil, fmt.Errorf("failed to update delivery status: %w", err)
	}

	if s.notifier != nil {
		message := fmt.Sprintf("Delivery %s is now %s", delivery.DeliveryNumber, delivery.Status)
		if err := s.notifier.NotifyOutletStaff(delivery.OutletID, notification.TypeDeliveryUpdate, "Delivery update", message); err != nil {
			logrus.WithError(err).WithField("delivery_id", delivery.ID).Warn("failed to notify outlet staff of delivery update")
		}
	}

	return &delivery, nil
}

// ReconcileDelivery records the counted received quantities for a received
// delivery and increments inventory accordingly, in one transaction.
// Discrepancies between ordered, delivered and received are recorded for
// manual review, never auto-resolved. A delivery reconciles at most once.
func (s *Service) ReconcileDelivery(deliveryID uint, req *ReconcileRequest) (*Delivery, error) {
	var delivery Delivery
	if err := s.db.Preload("Items").Where("id = ?", deliveryID).First(&delivery).Error; err != nil {
		return nil, fmt.Errorf("delivery not found")
	}

	if delivery.Status != DeliveryStatusReceived {
		return nil, fmt.Errorf("delivery is %s, only received deliveries can be reconciled", delivery.Status)
	}
	if delivery.ReconciledAt != nil {
		return nil, fmt.Errorf("delivery has already been reconciled")
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for i := range delivery.Items {
		item := &delivery.Items[i]
		received, ok := req.ReceivedQuantities[item.ID]
		if !ok {
			tx.Rollback()
			return nil, fmt.Errorf("missing received quantity for delivery item %d", item.ID)
		}
		if received < 0 {
			tx.Rollback()
			return nil, fmt.Errorf("received quantity cannot be negative")
		}

		item.ReceivedQuantity = received
		if err := tx.Save(item).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to record received quantity: %w", err)
		}

		if received > 0 {
			if err := s.inventoryService.AdjustQuantity(tx, item.InventoryItemID, received); err != nil {
				tx.Rollback()
				return nil, err
			}
		}

		if item.HasDiscrepancy() {
			logrus.WithFields(logrus.Fields{
				"delivery_id": delivery.ID,
				"item_id":     item.InventoryItemID,
				"ordered":     item.OrderedQuantity,
				"delivered":   item.DeliveredQuantity,
				"received":    item.ReceivedQuantity,
			}).Warn("delivery quantity discrepancy left for manual review")
		}
	}

	now := time.Now().UTC()
	delivery.ReconciledAt = &now
	if err := tx.Save(&delivery).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to mark delivery reconciled: %w", err)
	}

	tx.Commit()
	return &delivery, nil
}

// RecordDeliveredQuantities captures the vendor-declared delivered quantities
// ahead of receipt, typically from the delivery note
func (s *Service) RecordDeliveredQuantities(deliveryID uint, quantities map[uint]int) (*Delivery, error) {
	var delivery Delivery
	if err := s.db.Preload("Items").Where("id = ?", deliveryID).First(&delivery).Error; err != nil {
		return nil, fmt.Errorf("delivery not found")
	}

	if delivery.IsTerminal() {
		return nil, fmt.Errorf("delivery is %s and can no longer be amended", delivery.Status)
	}

	for i := range delivery.Items {
		item := &delivery.Items[i]
		if qty, ok := quantities[item.ID]; ok {
			if qty < 0 {
				return nil, fmt.Errorf("delivered quantity cannot be negative")
			}
			item.DeliveredQuantity = qty
			if err := s.db.Save(item).Error; err != nil {
				return nil, fmt.Errorf("failed to record delivered quantity: %w", err)
			}
		}
	}

	return &delivery, nil
}
