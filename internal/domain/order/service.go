// internal/domain/order/service.go
package order

import (
	"fmt"
	"time"

	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/menu"
	"github.com/your-org/cafe-backend/internal/realtime"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	menuService *menu.Service
	hub         *realtime.Hub
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, menuService *menu.Service, hub *realtime.Hub) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		menuService: menuService,
		hub:         hub,
	}
}

// OrderLineRequest represents one requested menu item
type OrderLineRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest represents order creation data
type CreateOrderRequest struct {
	OutletID uint               `json:"outlet_id" binding:"required"`
	Notes    string             `json:"notes"`
	Items    []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderListQuery represents order list filters
type OrderListQuery struct {
	Status   OrderStatus `form:"status"`
	OutletID uint        `form:"outlet_id"`
	OpenOnly bool        `form:"open_only"`
}

// CreateOrder creates a new order. Prices are taken from the menu
// server-side; the total is never trusted from the client.
func (s *Service) CreateOrder(customerID *uint, req *CreateOrderRequest) (*Order, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var total int64
	items := make([]OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		menuItem, err := s.menuService.GetItem(line.MenuItemID)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("menu item %d not found", line.MenuItemID)
		}
		if !menuItem.IsAvailable {
			tx.Rollback()
			return nil, fmt.Errorf("%s is currently unavailable", menuItem.Name)
		}

		lineTotal := int64(line.Quantity) * menuItem.Price
		items = append(items, OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   line.Quantity,
			Price:      menuItem.Price,
			TotalPrice: lineTotal,
		})
		total += lineTotal
	}

	order := &Order{
		CustomerID:  customerID,
		OutletID:    req.OutletID,
		Status:      OrderStatusPending,
		TotalAmount: total,
		Notes:       req.Notes,
		PlacedAt:    time.Now().UTC(),
		Items:       items,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Order number needs the generated ID
	order.OrderNumber = order.GenerateOrderNumber()
	if err := tx.Model(order).Update("order_number", order.OrderNumber).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to assign order number: %w", err)
	}

	tx.Commit()

	s.hub.PublishChange("orders", "insert", order.ID)
	return order, nil
}

// List retrieves orders with optional filters, newest first
func (s *Service) List(query *OrderListQuery) ([]Order, error) {
	var orders []Order
	q := s.db.Preload("Items").Order("created_at DESC")
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.OutletID != 0 {
		q = q.Where("outlet_id = ?", query.OutletID)
	}
	if query.OpenOnly {
		q = q.Where("status IN ?", []OrderStatus{OrderStatusPending, OrderStatusPreparing, OrderStatusReady})
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// ListByCustomer retrieves a customer's own orders
func (s *Service) ListByCustomer(customerID uint) ([]Order, error) {
	var orders []Order
	if err := s.db.Preload("Items").Where("customer_id = ?", customerID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// Get retrieves one order with its items
func (s *Service) Get(orderID uint) (*Order, error) {
	var order Order
	if err := s.db.Preload("Items").Where("id = ?", orderID).First(&order).Error; err != nil {
		return nil, fmt.Errorf("order not found")
	}
	return &order, nil
}

// UpdateStatus applies a validated status transition and broadcasts the change
func (s *Service) UpdateStatus(orderID uint, status OrderStatus) (*Order, error) {
	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransition(order.Status, status); err != nil {
		return nil, err
	}

	order.Status = status
	if status == OrderStatusCompleted {
		now := time.Now().UTC()
		order.CompletedAt = &now
	}

	if err := s.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.hub.PublishChange("orders", "update", order.ID)
	return order, nil
}

// Cancel cancels an order if it has not progressed past preparation
func (s *Service) Cancel(orderID uint, customerID *uint) (*Order, error) {
	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}

	if customerID != nil && (order.CustomerID == nil || *order.CustomerID != *customerID) {
		return nil, fmt.Errorf("order does not belong to this customer")
	}

	if !order.CanBeCancelled() {
		return nil, fmt.Errorf("order is %s and can no longer be cancelled", order.Status)
	}

	order.Status = OrderStatusCancelled
	if err := s.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	s.hub.PublishChange("orders", "update", order.ID)
	return order, nil
}
