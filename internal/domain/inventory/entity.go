// internal/domain/inventory/entity.go
package inventory

import (
	"time"

	"gorm.io/gorm"
)

// InventoryItem represents stock levels for an ingredient at an outlet
type InventoryItem struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	OutletID     uint           `gorm:"not null;index" json:"outlet_id"`
	Name         string         `gorm:"not null;size:255;index" json:"name"`
	Category     string         `gorm:"size:100" json:"category"`
	Unit         string         `gorm:"size:20;default:'pcs'" json:"unit"`
	Quantity     int            `gorm:"not null;default:0" json:"quantity"`
	ReorderLevel int            `gorm:"not null;default:10" json:"reorder_level"`
	PricePerUnit int64          `gorm:"default:0" json:"price_per_unit"` // In cents
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// StockAlert represents low stock alerts
type StockAlert struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	InventoryItemID uint       `gorm:"not null;index" json:"inventory_item_id"`
	AlertType       string     `gorm:"not null" json:"alert_type"` // "low_stock", "out_of_stock"
	Message         string     `gorm:"type:text" json:"message"`
	IsResolved      bool       `gorm:"default:false" json:"is_resolved"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relationships
	InventoryItem InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
}

// TableName overrides
func (InventoryItem) TableName() string { return "inventory" }
func (StockAlert) TableName() string    { return "stock_alerts" }

// NeedsReorder checks if the item is at or below its reorder level
func (ii *InventoryItem) NeedsReorder() bool {
	return ii.Quantity <= ii.ReorderLevel
}

// IsOutOfStock checks if the item has no stock left
func (ii *InventoryItem) IsOutOfStock() bool {
	return ii.Quantity <= 0
}

// StockPercentage returns a display fill ratio clamped to [0, 100].
// Full is defined as twice the reorder level.
func (ii *InventoryItem) StockPercentage() int {
	if ii.ReorderLevel <= 0 {
		if ii.Quantity > 0 {
			return 100
		}
		return 0
	}

	pct := ii.Quantity * 100 / (ii.ReorderLevel * 2)
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// MaxRequestQuantity returns the replenishment request ceiling for this item.
// Requests above this are rejected outright, not truncated.
func (ii *InventoryItem) MaxRequestQuantity(multiplier int) int {
	return ii.ReorderLevel * multiplier
}
