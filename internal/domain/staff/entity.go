// internal/domain/staff/entity.go
package staff

import (
	"time"

	"gorm.io/gorm"
)

// Outlet represents a cafe location
type Outlet struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Code      string         `gorm:"uniqueIndex;not null;size:20" json:"code"`
	Address   string         `gorm:"type:text" json:"address"`
	Phone     string         `gorm:"size:20" json:"phone"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Staff links a user account to an outlet
type Staff struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	OutletID  uint           `gorm:"not null;index" json:"outlet_id"`
	Position  string         `gorm:"size:100" json:"position"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Outlet Outlet `gorm:"foreignKey:OutletID" json:"outlet,omitempty"`
}

// StaffPerformance aggregates fulfillment statistics per staff member
type StaffPerformance struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	StaffID               uint      `gorm:"not null;index" json:"staff_id"`
	PeriodStart           time.Time `gorm:"not null;index" json:"period_start"`
	OrdersHandled         int       `gorm:"default:0" json:"orders_handled"`
	AvgFulfillmentSeconds int       `gorm:"default:0" json:"avg_fulfillment_seconds"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	// Relationships
	Staff Staff `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

// TableName overrides
func (Outlet) TableName() string           { return "outlets" }
func (Staff) TableName() string            { return "staff" }
func (StaffPerformance) TableName() string { return "staff_performance" }
