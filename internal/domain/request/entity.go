// internal/domain/request/entity.go
package request

import (
	"errors"
	"time"

	"github.com/your-org/cafe-backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// RequestStatus represents the lifecycle state of an inventory request
type RequestStatus string

const (
	RequestStatusPending       RequestStatus = "pending"
	RequestStatusApproved      RequestStatus = "approved"
	RequestStatusRejected      RequestStatus = "rejected"
	RequestStatusConvertedToPO RequestStatus = "converted_to_po"
)

// Builder errors surfaced inline to the caller, before any persistence
var (
	ErrQuantityCapped   = errors.New("requested quantity is at the maximum for this item")
	ErrInvalidQuantity  = errors.New("requested quantity must be at least 1")
	ErrLineNotFound     = errors.New("no request line open for this item")
	ErrEmptyRequestCart = errors.New("request cart is empty")
)

// InventoryRequest represents a persisted replenishment request for one item
type InventoryRequest struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	InventoryItemID      uint           `gorm:"not null;index" json:"inventory_item_id"`
	StaffID              uint           `gorm:"not null;index" json:"staff_id"`
	StaffEnteredQuantity int            `gorm:"not null" json:"staff_entered_quantity"` // On-hand snapshot at request time
	RequestedQuantity    int            `gorm:"not null" json:"requested_quantity"`
	Notes                string         `gorm:"type:text" json:"notes"`
	Status               RequestStatus  `gorm:"not null;default:'pending';index" json:"status"`
	RejectedReason       string         `gorm:"type:text" json:"rejected_reason,omitempty"`
	ApprovedAt           *time.Time     `json:"approved_at,omitempty"`
	ApprovedByUserID     *uint          `gorm:"index" json:"approved_by_user_id,omitempty"`
	PurchaseOrderID      *uint          `gorm:"index" json:"purchase_order_id,omitempty"`
	IdempotencyKey       string         `gorm:"size:64;index" json:"-"`
	EstimatedDelivery    *time.Time     `json:"estimated_delivery,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Item inventory.InventoryItem `gorm:"foreignKey:InventoryItemID" json:"item,omitempty"`
}

// TableName overrides the table name
func (InventoryRequest) TableName() string {
	return "inventory_requests"
}

// IsTerminal reports whether the request can no longer change state
func (r *InventoryRequest) IsTerminal() bool {
	return r.Status == RequestStatusRejected || r.Status == RequestStatusConvertedToPO
}

// RequestLine is a transient accumulated line held in the request cart.
// Not persisted until submission.
type RequestLine struct {
	InventoryItemID uint      `json:"inventory_item_id"`
	Quantity        int       `json:"quantity"`
	AddedAt         time.Time `json:"added_at"`
}

// RequestCart represents a staff member's accumulated request lines (stored in Redis)
type RequestCart struct {
	StaffID   uint          `json:"staff_id"`
	Lines     []RequestLine `json:"lines"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// FindLine returns the line for an item, or nil
func (c *RequestCart) FindLine(itemID uint) *RequestLine {
	for i := range c.Lines {
		if c.Lines[i].InventoryItemID == itemID {
			return &c.Lines[i]
		}
	}
	return nil
}

// RemoveLine drops the line for an item if present
func (c *RequestCart) RemoveLine(itemID uint) {
	for i := range c.Lines {
		if c.Lines[i].InventoryItemID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}
