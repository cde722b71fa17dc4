// internal/domain/procurement/entity.go
package procurement

import (
	"time"

	"gorm.io/gorm"
)

// POStatus represents the purchase order status
type POStatus string

const (
	POStatusPending            POStatus = "pending"
	POStatusSent               POStatus = "sent"
	POStatusConfirmed          POStatus = "confirmed"
	POStatusPartiallyDelivered POStatus = "partially_delivered"
	POStatusDelivered          POStatus = "delivered"
	POStatusCancelled          POStatus = "cancelled"
)

// DeliveryStatus represents the delivery status
type DeliveryStatus string

const (
	DeliveryStatusScheduled DeliveryStatus = "scheduled"
	DeliveryStatusInTransit DeliveryStatus = "in_transit"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusReceived  DeliveryStatus = "received"
	DeliveryStatusCancelled DeliveryStatus = "cancelled"
)

// PurchaseOrder represents a vendor-facing commitment to buy items
type PurchaseOrder struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	PONumber             string         `gorm:"uniqueIndex;not null;size:50" json:"po_number"`
	OutletID             uint           `gorm:"not null;index" json:"outlet_id"`
	VendorID             uint           `gorm:"not null;index" json:"vendor_id"`
	Status               POStatus       `gorm:"not null;default:'pending';index" json:"status"`
	TotalAmount          int64          `gorm:"not null" json:"total_amount"` // In cents
	OrderDate            time.Time      `json:"order_date"`
	ExpectedDeliveryDate *time.Time     `json:"expected_delivery_date,omitempty"`
	Notes                string         `gorm:"type:text" json:"notes"`
	CreatedBy            uint           `gorm:"index" json:"created_by"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items      []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	Deliveries []Delivery          `gorm:"foreignKey:PurchaseOrderID" json:"deliveries,omitempty"`
}

// PurchaseOrderItem represents one line of a purchase order
type PurchaseOrderItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uint      `gorm:"not null;index" json:"purchase_order_id"`
	InventoryItemID uint      `gorm:"not null;index" json:"inventory_item_id"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	UnitPrice       int64     `gorm:"not null" json:"unit_price"`  // In cents
	TotalPrice      int64     `gorm:"not null" json:"total_price"` // Quantity * UnitPrice
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Delivery represents the physical fulfillment record for a purchase order
type Delivery struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	DeliveryNumber  string         `gorm:"uniqueIndex;not null;size:50" json:"delivery_number"`
	PurchaseOrderID uint           `gorm:"not null;index" json:"purchase_order_id"`
	VendorID        uint           `gorm:"not null;index" json:"vendor_id"`
	OutletID        uint           `gorm:"not null;index" json:"outlet_id"`
	Status          DeliveryStatus `gorm:"not null;default:'scheduled';index" json:"status"`
	DeliveryDate    *time.Time     `json:"delivery_date,omitempty"`
	ReceivedDate    *time.Time     `json:"received_date,omitempty"` // Stamped when status becomes received
	ReconciledAt    *time.Time     `json:"reconciled_at,omitempty"` // Stamped by manual reconciliation
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items         []DeliveryItem `gorm:"foreignKey:DeliveryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	PurchaseOrder PurchaseOrder  `gorm:"foreignKey:PurchaseOrderID" json:"purchase_order,omitempty"`
}

// DeliveryItem tracks ordered vs delivered vs received quantities per item.
// Discrepancies are recorded, not auto-resolved; reconciliation is a manual
// review step.
type DeliveryItem struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	DeliveryID        uint      `gorm:"not null;index" json:"delivery_id"`
	InventoryItemID   uint      `gorm:"not null;index" json:"inventory_item_id"`
	OrderedQuantity   int       `gorm:"not null" json:"ordered_quantity"`
	DeliveredQuantity int       `gorm:"default:0" json:"delivered_quantity"`
	ReceivedQuantity  int       `gorm:"default:0" json:"received_quantity"`
	UnitPrice         int64     `gorm:"not null" json:"unit_price"` // In cents
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName overrides
func (PurchaseOrder) TableName() string     { return "purchase_orders" }
func (PurchaseOrderItem) TableName() string { return "purchase_order_items" }
func (Delivery) TableName() string          { return "deliveries" }
func (DeliveryItem) TableName() string      { return "delivery_items" }

// IsTerminal reports whether the purchase order can no longer change state
func (po *PurchaseOrder) IsTerminal() bool {
	return po.Status == POStatusDelivered || po.Status == POStatusCancelled
}

// IsTerminal reports whether the delivery can no longer change state
func (d *Delivery) IsTerminal() bool {
	return d.Status == DeliveryStatusReceived || d.Status == DeliveryStatusCancelled
}

// HasDiscrepancy reports whether ordered, delivered and received disagree
func (di *DeliveryItem) HasDiscrepancy() bool {
	return di.OrderedQuantity != di.DeliveredQuantity || di.DeliveredQuantity != di.ReceivedQuantity
}
