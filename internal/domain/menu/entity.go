// internal/domain/menu/entity.go
package menu

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem represents a sellable item on the cafe menu
type MenuItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:100;index" json:"category"`
	Price       int64          `gorm:"not null" json:"price"` // In cents
	ImageURL    string         `gorm:"size:500" json:"image_url"`
	IsAvailable bool           `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (MenuItem) TableName() string {
	return "menu_items"
}

// GetFormattedPrice returns the price as a float in major units
func (m *MenuItem) GetFormattedPrice() float64 {
	return float64(m.Price) / 100
}
