// internal/domain/notification/entity.go
package notification

import (
	"time"
)

// Notification types
const (
	TypeStockAlert      = "stock_alert"
	TypeRequestDecision = "request_decision"
	TypeDeliveryUpdate  = "delivery_update"
	TypeOrderUpdate     = "order_update"
	TypeSystem          = "system"
)

// Notification represents a persisted message for a user
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Type      string     `gorm:"not null;size:50" json:"type"`
	Title     string     `gorm:"not null;size:255" json:"title"`
	Message   string     `gorm:"type:text" json:"message"`
	IsRead    bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName overrides the table name
func (Notification) TableName() string {
	return "notifications"
}
