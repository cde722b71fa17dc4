// internal/domain/inventory/service.go
package inventory

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/notification"
	"gorm.io/gorm"
)

// Service handles inventory business logic
type Service struct {
	db       *gorm.DB
	config   *config.Config
	notifier *notification.Service
}

// NewService creates a new inventory service
func NewService(db *gorm.DB, cfg *config.Config, notifier *notification.Service) *Service {
	return &Service{
		db:       db,
		config:   cfg,
		notifier: notifier,
	}
}

// CreateItemRequest represents inventory item creation data
type CreateItemRequest struct {
	OutletID     uint   `json:"outlet_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	Unit         string `json:"unit"`
	Quantity     int    `json:"quantity" binding:"min=0"`
	ReorderLevel int    `json:"reorder_level" binding:"min=0"`
	PricePerUnit int64  `json:"price_per_unit"` // In cents
}

// UpdateQuantityRequest represents an absolute quantity update
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// List retrieves all inventory items for an outlet ordered by name
func (s *Service) List(outletID uint) ([]InventoryItem, error) {
	var items []InventoryItem
	query := s.db.Order("name ASC")
	if outletID != 0 {
		query = query.Where("outlet_id = ?", outletID)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve inventory: %w", err)
	}
	return items, nil
}

// GetItem retrieves a single inventory item
func (s *Service) GetItem(itemID uint) (*InventoryItem, error) {
	var item InventoryItem
	if err := s.db.Where("id = ?", itemID).First(&item).Error; err != nil {
		return nil, fmt.Errorf("inventory item not found")
	}
	return &item, nil
}

// CreateItem creates a new inventory item
func (s *Service) CreateItem(req *CreateItemRequest) (*InventoryItem, error) {
	// Reject duplicates per outlet by name
	var existing InventoryItem
	if err := s.db.Where("outlet_id = ? AND name = ?", req.OutletID, req.Name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("inventory item '%s' already exists for this outlet", req.Name)
	}

	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}

	item := &InventoryItem{
		OutletID:     req.OutletID,
		Name:         req.Name,
		Category:     req.Category,
		Unit:         unit,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		PricePerUnit: req.PricePerUnit,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	return item, nil
}

// UpdateQuantity sets an absolute stock quantity and stamps the update time.
// On failure the stored state is left unchanged and the error reported.
func (s *Service) UpdateQuantity(itemID uint, newQuantity int) (*InventoryItem, error) {
	if newQuantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	var item InventoryItem
	if err := s.db.Where("id = ?", itemID).First(&item).Error; err != nil {
		return nil, fmt.Errorf("inventory item not found")
	}

	item.Quantity = newQuantity
	item.UpdatedAt = time.Now().UTC()

	if err := s.db.Save(&item).Error; err != nil {
		logrus.WithError(err).WithField("item_id", itemID).Error("failed to update inventory quantity")
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	s.checkAndCreateAlerts(item.ID)

	return &item, nil
}

// AdjustQuantity increments (or decrements) stock inside an existing transaction.
// Used by delivery reconciliation; the resulting quantity is floored at zero.
func (s *Service) AdjustQuantity(tx *gorm.DB, itemID uint, delta int) error {
	var item InventoryItem
	if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
		return fmt.Errorf("inventory item not found")
	}

	item.Quantity += delta
	if item.Quantity < 0 {
		item.Quantity = 0
	}

	if err := tx.Save(&item).Error; err != nil {
		return fmt.Errorf("failed to adjust inventory: %w", err)
	}

	return nil
}

// ListAlerts retrieves unresolved stock alerts
func (s *Service) ListAlerts() ([]StockAlert, error) {
	var alerts []StockAlert
	if err := s.db.Preload("InventoryItem").Where("is_resolved = ?", false).Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stock alerts: %w", err)
	}
	return alerts, nil
}

// ResolveAlert marks a stock alert as resolved
func (s *Service) ResolveAlert(alertID uint) error {
	var alert StockAlert
	if err := s.db.Where("id = ?", alertID).First(&alert).Error; err != nil {
		return fmt.Errorf("stock alert not found")
	}

	now := time.Now().UTC()
	alert.IsResolved = true
	alert.ResolvedAt = &now

	if err := s.db.Save(&alert).Error; err != nil {
		return fmt.Errorf("failed to resolve alert: %w", err)
	}

	return nil
}

// checkAndCreateAlerts checks for low stock and creates alerts
func (s *Service) checkAndCreateAlerts(itemID uint) {
	var item InventoryItem
	if err := s.db.Where("id = ?", itemID).First(&item).Error; err != nil {
		return
	}

	// Check for existing unresolved alerts
	var existingAlert StockAlert
	hasExisting := s.db.Where("inventory_item_id = ? AND is_resolved = ?", itemID, false).First(&existingAlert).Error == nil

	if item.IsOutOfStock() && !hasExisting {
		alert := StockAlert{
			InventoryItemID: itemID,
			AlertType:       "out_of_stock",
			Message:         fmt.Sprintf("%s is out of stock", item.Name),
		}
		s.db.Create(&alert)
		s.notifyAlert(&item, &alert)
	} else if item.NeedsReorder() && !hasExisting {
		alert := StockAlert{
			InventoryItemID: itemID,
			AlertType:       "low_stock",
			Message:         fmt.Sprintf("%s is running low (Quantity: %d, Reorder Level: %d)", item.Name, item.Quantity, item.ReorderLevel),
		}
		s.db.Create(&alert)
		s.notifyAlert(&item, &alert)
	}
}

// notifyAlert pushes a freshly created stock alert to the outlet's staff.
// Notification failures are logged, the alert itself stands.
func (s *Service) notifyAlert(item *InventoryItem, alert *StockAlert) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyOutletStaff(item.OutletID, notification.TypeStockAlert, "Stock alert", alert.Message); err != nil {
		logrus.WithError(err).WithField("item_id", item.ID).Warn("failed to notify outlet staff of stock alert")
	}
}
