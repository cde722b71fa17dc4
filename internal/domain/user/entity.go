// internal/domain/user/entity.go
package user

import (
	"time"

	"gorm.io/gorm"
)

// Role values for user accounts
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// ValidRole reports whether the given role is one of the known roles
func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// User represents a user account
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Email       string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password    string         `gorm:"not null;size:255" json:"-"`
	FirstName   string         `gorm:"size:100" json:"first_name"`
	LastName    string         `gorm:"size:100" json:"last_name"`
	Phone       string         `gorm:"size:20" json:"phone"`
	Role        string         `gorm:"not null;default:'customer';size:20" json:"role"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// FullName returns the user's full name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsStaffOrAdmin reports whether the user can access staff surfaces
func (u *User) IsStaffOrAdmin() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}
