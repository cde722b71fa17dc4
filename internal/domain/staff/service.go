// internal/domain/staff/service.go
package staff

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/inventory"
	"github.com/your-org/cafe-backend/internal/domain/order"
	"github.com/your-org/cafe-backend/internal/domain/procurement"
	"github.com/your-org/cafe-backend/internal/domain/request"
)

// Service handles staff and outlet business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new staff service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// DashboardSummary is the staff dashboard snapshot for a single outlet
type DashboardSummary struct {
	PendingOrders    int64 `json:"pending_orders"`
	PreparingOrders  int64 `json:"preparing_orders"`
	LowStockItems    int64 `json:"low_stock_items"`
	OutOfStockItems  int64 `json:"out_of_stock_items"`
	OpenRequests     int64 `json:"open_requests"`
	UndeliveredPOs   int64 `json:"undelivered_pos"`
	UnresolvedAlerts int64 `json:"unresolved_alerts"`
}

// ListOutlets returns all active outlets
func (s *Service) ListOutlets() ([]Outlet, error) {
	var outlets []Outlet
	if err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&outlets).Error; err != nil {
		return nil, fmt.Errorf("failed to list outlets: %w", err)
	}
	return outlets, nil
}

// GetOutlet retrieves an outlet by ID
func (s *Service) GetOutlet(outletID uint) (*Outlet, error) {
	var outlet Outlet
	if err := s.db.First(&outlet, outletID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("outlet not found")
		}
		return nil, fmt.Errorf("failed to get outlet: %w", err)
	}
	return &outlet, nil
}

// CreateOutlet creates a new outlet
func (s *Service) CreateOutlet(outlet *Outlet) error {
	var count int64
	s.db.Model(&Outlet{}).Where("code = ?", outlet.Code).Count(&count)
	if count > 0 {
		return fmt.Errorf("outlet with code %s already exists", outlet.Code)
	}
	if err := s.db.Create(outlet).Error; err != nil {
		return fmt.Errorf("failed to create outlet: %w", err)
	}
	return nil
}

// GetStaffByUser returns the staff record for a user account
func (s *Service) GetStaffByUser(userID uint) (*Staff, error) {
	var member Staff
	if err := s.db.Preload("Outlet").Where("user_id = ?", userID).First(&member).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("staff record not found")
		}
		return nil, fmt.Errorf("failed to get staff record: %w", err)
	}
	return &member, nil
}

// AssignStaff links a user to an outlet, updating the assignment if one exists
func (s *Service) AssignStaff(userID, outletID uint, position string) (*Staff, error) {
	if _, err := s.GetOutlet(outletID); err != nil {
		return nil, err
	}

	var member Staff
	err := s.db.Where("user_id = ?", userID).First(&member).Error
	if err == gorm.ErrRecordNotFound {
		member = Staff{
			UserID:   userID,
			OutletID: outletID,
			Position: position,
			IsActive: true,
		}
		if err := s.db.Create(&member).Error; err != nil {
			return nil, fmt.Errorf("failed to create staff record: %w", err)
		}
		return &member, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up staff record: %w", err)
	}

	member.OutletID = outletID
	member.Position = position
	member.IsActive = true
	if err := s.db.Save(&member).Error; err != nil {
		return nil, fmt.Errorf("failed to update staff record: %w", err)
	}
	return &member, nil
}

// GetDashboard builds the operational summary for an outlet
func (s *Service) GetDashboard(outletID uint) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	if err := s.db.Model(&order.Order{}).
		Where("outlet_id = ? AND status = ?", outletID, order.OrderStatusPending).
		Count(&summary.PendingOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}

	if err := s.db.Model(&order.Order{}).
		Where("outlet_id = ? AND status = ?", outletID, order.OrderStatusPreparing).
		Count(&summary.PreparingOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count preparing orders: %w", err)
	}

	if err := s.db.Model(&inventory.InventoryItem{}).
		Where("outlet_id = ? AND quantity <= reorder_level AND quantity > 0", outletID).
		Count(&summary.LowStockItems).Error; err != nil {
		return nil, fmt.Errorf("failed to count low stock items: %w", err)
	}

	if err := s.db.Model(&inventory.InventoryItem{}).
		Where("outlet_id = ? AND quantity = 0", outletID).
		Count(&summary.OutOfStockItems).Error; err != nil {
		return nil, fmt.Errorf("failed to count out of stock items: %w", err)
	}

	if err := s.db.Model(&request.InventoryRequest{}).
		Where("outlet_id = ? AND status IN ?", outletID,
			[]string{string(request.RequestStatusPending), string(request.RequestStatusApproved)}).
		Count(&summary.OpenRequests).Error; err != nil {
		return nil, fmt.Errorf("failed to count open requests: %w", err)
	}

	if err := s.db.Model(&procurement.PurchaseOrder{}).
		Where("outlet_id = ? AND status NOT IN ?", outletID,
			[]string{string(procurement.POStatusDelivered), string(procurement.POStatusCancelled)}).
		Count(&summary.UndeliveredPOs).Error; err != nil {
		return nil, fmt.Errorf("failed to count undelivered purchase orders: %w", err)
	}

	if err := s.db.Model(&inventory.StockAlert{}).
		Joins("JOIN inventory ON inventory.id = stock_alerts.inventory_item_id").
		Where("inventory.outlet_id = ? AND stock_alerts.is_resolved = ?", outletID, false).
		Count(&summary.UnresolvedAlerts).Error; err != nil {
		return nil, fmt.Errorf("failed to count unresolved alerts: %w", err)
	}

	return summary, nil
}

// RecordPerformance upserts a performance row for a staff member and period
func (s *Service) RecordPerformance(staffID uint, perf *StaffPerformance) error {
	var existing StaffPerformance
	err := s.db.Where("staff_id = ? AND period_start = ?", staffID, perf.PeriodStart).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		perf.StaffID = staffID
		if err := s.db.Create(perf).Error; err != nil {
			return fmt.Errorf("failed to create performance record: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up performance record: %w", err)
	}

	existing.OrdersHandled = perf.OrdersHandled
	existing.AvgFulfillmentSeconds = perf.AvgFulfillmentSeconds
	if err := s.db.Save(&existing).Error; err != nil {
		return fmt.Errorf("failed to update performance record: %w", err)
	}
	return nil
}

// ListPerformance returns performance rows for an outlet's staff, newest period first
func (s *Service) ListPerformance(outletID uint) ([]StaffPerformance, error) {
	var rows []StaffPerformance
	if err := s.db.Preload("Staff").
		Joins("JOIN staff ON staff.id = staff_performance.staff_id").
		Where("staff.outlet_id = ?", outletID).
		Order("staff_performance.period_start DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list performance records: %w", err)
	}
	return rows, nil
}
