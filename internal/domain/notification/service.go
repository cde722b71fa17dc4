// internal/domain/notification/service.go
package notification

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/cafe-backend/internal/realtime"
)

// Service handles notification business logic
type Service struct {
	db  *gorm.DB
	hub *realtime.Hub
}

// NewService creates a new notification service
func NewService(db *gorm.DB, hub *realtime.Hub) *Service {
	return &Service{
		db:  db,
		hub: hub,
	}
}

// Notify persists a notification and pushes it to the user's live connections
func (s *Service) Notify(userID uint, notifType, title, message string) (*Notification, error) {
	n := &Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}
	if err := s.db.Create(n).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if s.hub != nil {
		payload, err := json.Marshal(n)
		if err == nil {
			s.hub.SendToUser(userID, realtime.Event{
				EventType: "notification",
				Data:      string(payload),
			})
		}
	}

	return n, nil
}

// NotifyOutletStaff fans a notification out to every active staff member
// assigned to an outlet
func (s *Service) NotifyOutletStaff(outletID uint, notifType, title, message string) error {
	var userIDs []uint
	if err := s.db.Table("staff").
		Where("outlet_id = ? AND is_active = ?", outletID, true).
		Pluck("user_id", &userIDs).Error; err != nil {
		return fmt.Errorf("failed to look up outlet staff: %w", err)
	}

	for _, userID := range userIDs {
		if _, err := s.Notify(userID, notifType, title, message); err != nil {
			return err
		}
	}
	return nil
}

// List returns a user's notifications, newest first
func (s *Service) List(userID uint, unreadOnly bool, limit int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []Notification
	if err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for a user
func (s *Service) UnreadCount(userID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks a single notification as read. The notification must
// belong to the given user.
func (s *Service) MarkRead(userID, notificationID uint) error {
	var n Notification
	if err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).
		First(&n).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("notification not found")
		}
		return fmt.Errorf("failed to get notification: %w", err)
	}

	if n.IsRead {
		return nil
	}

	now := time.Now()
	if err := s.db.Model(&n).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": now,
	}).Error; err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification for a user as read
func (s *Service) MarkAllRead(userID uint) error {
	now := time.Now()
	if err := s.db.Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		}).Error; err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
