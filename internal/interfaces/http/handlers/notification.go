// internal/interfaces/http/handlers/notification.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/notification"
	"github.com/your-org/cafe-backend/internal/interfaces/http/middleware"
	"github.com/your-org/cafe-backend/internal/realtime"
	"gorm.io/gorm"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationService *notification.Service
	config              *config.Config
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(db *gorm.DB, cfg *config.Config, hub *realtime.Hub) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notification.NewService(db, hub),
		config:              cfg,
	}
}

// ListNotifications handles GET /notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	unreadOnly := c.Query("unread") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.notificationService.List(userID, unreadOnly, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve notifications",
		})
		return
	}

	unread, err := h.notificationService.UnreadCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count notifications",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notifications retrieved successfully",
		"data": gin.H{
			"notifications": notifications,
			"unread_count":  unread,
		},
	})
}

// MarkRead handles PUT /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid notification ID",
		})
		return
	}

	if err := h.notificationService.MarkRead(userID, uint(notificationID)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification marked as read",
	})
}

// MarkAllRead handles PUT /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to mark notifications read",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "All notifications marked as read",
	})
}
