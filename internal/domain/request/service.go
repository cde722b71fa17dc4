// internal/domain/request/service.go
package request

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/inventory"
	"github.com/your-org/cafe-backend/internal/domain/notification"
	"gorm.io/gorm"
)

// Service handles inventory request submission and approval
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	builder     *Builder
	notifier    *notification.Service
}

// NewService creates a new request service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, notifier *notification.Service) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
		builder:     NewBuilder(db, redisClient, cfg),
		notifier:    notifier,
	}
}

// GetBuilder returns the request builder backing this service
func (s *Service) GetBuilder() *Builder {
	return s.builder
}

// SubmitResult reports the outcome of a cart submission
type SubmitResult struct {
	Submitted         int                `json:"submitted"`
	Duplicates        int                `json:"duplicates"`
	EstimatedDelivery time.Time          `json:"estimated_delivery"`
	Requests          []InventoryRequest `json:"requests"`
}

// RequestListQuery represents request list filters
type RequestListQuery struct {
	Status  RequestStatus `form:"status"`
	StaffID uint          `form:"staff_id"`
}

// RejectRequest carries the rejection reason
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// idempotencyKey derives a duplicate-suppression key for one submission line.
// Two submissions of the same item and quantity by the same staff member
// within the configured window map to the same key.
func (s *Service) idempotencyKey(staffID, itemID uint, quantity int, now time.Time) string {
	bucket := now.UTC().Truncate(s.config.Procurement.IdempotencyWindow).Unix()
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%d|%d|%d", staffID, itemID, quantity, bucket)))
	return hex.EncodeToString(sum[:])
}

// SubmitAll persists one InventoryRequest per accumulated cart line.
// Lines are written sequentially and independently: the first failure aborts
// the remaining lines but rows already written stand; there is no
// compensating rollback. On full success the cart is cleared.
func (s *Service) SubmitAll(ctx context.Context, staffID uint, notes string) (*SubmitResult, error) {
	cart, err := s.builder.GetCart(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, ErrEmptyRequestCart
	}

	now := time.Now().UTC()
	estimated := EstimatedDeliveryDate(now, s.config.Procurement.EstimatedDeliveryDays)

	result := &SubmitResult{EstimatedDelivery: estimated}

	for _, line := range cart.Lines {
		var item inventory.InventoryItem
		if err := s.db.Where("id = ?", line.InventoryItemID).First(&item).Error; err != nil {
			return result, fmt.Errorf("inventory item %d not found: %w", line.InventoryItemID, err)
		}

		max := item.MaxRequestQuantity(s.config.Procurement.QuantityCapMultiplier)
		if line.Quantity < 1 {
			return result, fmt.Errorf("item %s: %w", item.Name, ErrInvalidQuantity)
		}
		if line.Quantity > max {
			return result, fmt.Errorf("item %s: requested %d exceeds maximum %d", item.Name, line.Quantity, max)
		}

		// Suppress duplicate submissions from double-clicks within the window
		key := s.idempotencyKey(staffID, line.InventoryItemID, line.Quantity, now)
		fresh, err := s.redisClient.SetNX(ctx, "request_submit:"+key, 1, s.config.Procurement.IdempotencyWindow).Result()
		if err != nil {
			// Redis being down must not block submissions
			logrus.WithError(err).Warn("idempotency check unavailable, submitting without it")
			fresh = true
		}
		if !fresh {
			result.Duplicates++
			continue
		}

		req := InventoryRequest{
			InventoryItemID:      line.InventoryItemID,
			StaffID:              staffID,
			StaffEnteredQuantity: item.Quantity,
			RequestedQuantity:    line.Quantity,
			Notes:                notes,
			Status:               RequestStatusPending,
			IdempotencyKey:       key,
			EstimatedDelivery:    &estimated,
		}

		if err := s.db.Create(&req).Error; err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"staff_id": staffID,
				"item_id":  line.InventoryItemID,
			}).Error("request submission aborted mid-batch")
			return result, fmt.Errorf("failed to submit request for %s: %w", item.Name, err)
		}

		result.Submitted++
		result.Requests = append(result.Requests, req)
	}

	if err := s.builder.Clear(ctx, staffID); err != nil {
		return result, err
	}

	return result, nil
}

// List retrieves requests with optional status and staff filters
func (s *Service) List(query *RequestListQuery) ([]InventoryRequest, error) {
	var requests []InventoryRequest
	q := s.db.Preload("Item").Order("created_at DESC")
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.StaffID != 0 {
		q = q.Where("staff_id = ?", query.StaffID)
	}
	if err := q.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve requests: %w", err)
	}
	return requests, nil
}

// Get retrieves a single request
func (s *Service) Get(requestID uint) (*InventoryRequest, error) {
	var req InventoryRequest
	if err := s.db.Preload("Item").Where("id = ?", requestID).First(&req).Error; err != nil {
		return nil, fmt.Errorf("inventory request not found")
	}
	return &req, nil
}

// Approve marks a pending request as approved
func (s *Service) Approve(requestID, approverID uint) (*InventoryRequest, error) {
	var req InventoryRequest
	if err := s.db.Where("id = ?", requestID).First(&req).Error; err != nil {
		return nil, fmt.Errorf("inventory request not found")
	}

	if req.Status != RequestStatusPending {
		return nil, fmt.Errorf("request is %s, only pending requests can be approved", req.Status)
	}

	now := time.Now().UTC()
	req.Status = RequestStatusApproved
	req.ApprovedAt = &now
	req.ApprovedByUserID = &approverID

	if err := s.db.Save(&req).Error; err != nil {
		return nil, fmt.Errorf("failed to approve request: %w", err)
	}

	s.notifyDecision(&req, "Request approved",
		fmt.Sprintf("Your replenishment request #%d was approved", req.ID))

	return &req, nil
}

// Reject marks a pending request as rejected with a reason
func (s *Service) Reject(requestID uint, reason string) (*InventoryRequest, error) {
	var req InventoryRequest
	if err := s.db.Where("id = ?", requestID).First(&req).Error; err != nil {
		return nil, fmt.Errorf("inventory request not found")
	}

	if req.Status != RequestStatusPending {
		return nil, fmt.Errorf("request is %s, only pending requests can be rejected", req.Status)
	}

	req.Status = RequestStatusRejected
	req.RejectedReason = reason

	if err := s.db.Save(&req).Error; err != nil {
		return nil, fmt.Errorf("failed to reject request: %w", err)
	}

	s.notifyDecision(&req, "Request rejected",
		fmt.Sprintf("Your replenishment request #%d was rejected: %s", req.ID, reason))

	return &req, nil
}

// notifyDecision tells the submitting staff member about an approval or
// rejection. Notification failures are logged, the decision itself stands.
func (s *Service) notifyDecision(req *InventoryRequest, title, message string) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Notify(req.StaffID, notification.TypeRequestDecision, title, message); err != nil {
		logrus.WithError(err).WithField("request_id", req.ID).Warn("failed to notify requester")
	}
}

// MarkConverted links approved requests to a purchase order inside a transaction
func (s *Service) MarkConverted(tx *gorm.DB, requestIDs []uint, purchaseOrderID uint) error {
	for _, id := range requestIDs {
		var req InventoryRequest
		if err := tx.Where("id = ?", id).First(&req).Error; err != nil {
			return fmt.Errorf("inventory request %d not found", id)
		}
		if req.Status != RequestStatusApproved {
			return fmt.Errorf("request %d is %s, only approved requests can convert to a purchase order", id, req.Status)
		}

		req.Status = RequestStatusConvertedToPO
		req.PurchaseOrderID = &purchaseOrderID
		if err := tx.Save(&req).Error; err != nil {
			return fmt.Errorf("failed to convert request %d: %w", id, err)
		}
	}
	return nil
}
