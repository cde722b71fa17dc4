// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents a customer order at an outlet
type Order struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderNumber string         `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	CustomerID  *uint          `gorm:"index" json:"customer_id"` // Nullable for walk-in orders
	OutletID    uint           `gorm:"not null;index" json:"outlet_id"`
	Status      OrderStatus    `gorm:"not null;default:'pending';index" json:"status"`
	TotalAmount int64          `gorm:"not null" json:"total_amount"` // In cents
	Notes       string         `gorm:"type:text" json:"notes"`
	PlacedAt    time.Time      `json:"placed_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem represents a line in a customer order
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	MenuItemID uint      `gorm:"not null;index" json:"menu_item_id"`
	Name       string    `gorm:"not null;size:255" json:"name"` // Snapshot at order time
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      int64     `gorm:"not null" json:"price"`       // Price per unit in cents
	TotalPrice int64     `gorm:"not null" json:"total_price"` // Quantity * Price
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// GenerateOrderNumber generates a unique order number.
// Format: ORD-YYYYMMDD-XXXXX
func (o *Order) GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), o.ID)
}

// CanBeCancelled checks if order can still be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusPreparing
}

// IsOpen reports whether the order still needs staff attention
func (o *Order) IsOpen() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusPreparing || o.Status == OrderStatusReady
}

// Status transitions are validated against an explicit table; anything not
// listed is rejected.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusCompleted},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// ValidateTransition checks an order status change
func ValidateTransition(from, to OrderStatus) error {
	allowed, ok := orderTransitions[from]
	if !ok {
		return fmt.Errorf("unknown order status: %s", from)
	}
	for _, next := range allowed {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("invalid order transition: %s -> %s", from, to)
}
