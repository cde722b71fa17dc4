// internal/domain/menu/service.go
package menu

import (
	"fmt"

	"github.com/your-org/cafe-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles menu business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new menu service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateMenuItemRequest represents menu item creation data
type CreateMenuItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Price       int64  `json:"price" binding:"required,min=0"` // In cents
	ImageURL    string `json:"image_url"`
	IsAvailable *bool  `json:"is_available"`
}

// UpdateMenuItemRequest represents menu item update data
type UpdateMenuItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Price       *int64  `json:"price"`
	ImageURL    *string `json:"image_url"`
	IsAvailable *bool   `json:"is_available"`
}

// ListAvailable retrieves available menu items grouped-ready by category
func (s *Service) ListAvailable() ([]MenuItem, error) {
	var items []MenuItem
	if err := s.db.Where("is_available = ?", true).Order("category ASC, name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve menu: %w", err)
	}
	return items, nil
}

// ListAll retrieves every menu item including unavailable ones
func (s *Service) ListAll() ([]MenuItem, error) {
	var items []MenuItem
	if err := s.db.Order("category ASC, name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve menu items: %w", err)
	}
	return items, nil
}

// GetItem retrieves one menu item
func (s *Service) GetItem(itemID uint) (*MenuItem, error) {
	var item MenuItem
	if err := s.db.Where("id = ?", itemID).First(&item).Error; err != nil {
		return nil, fmt.Errorf("menu item not found")
	}
	return &item, nil
}

// CreateItem creates a new menu item
func (s *Service) CreateItem(req *CreateMenuItemRequest) (*MenuItem, error) {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	item := &MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsAvailable: available,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	return item, nil
}

// UpdateItem applies a partial update to a menu item
func (s *Service) UpdateItem(itemID uint, req *UpdateMenuItemRequest) (*MenuItem, error) {
	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative")
		}
		item.Price = *req.Price
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	return item, nil
}

// DeleteItem soft-deletes a menu item
func (s *Service) DeleteItem(itemID uint) error {
	item, err := s.GetItem(itemID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(item).Error; err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	return nil
}
