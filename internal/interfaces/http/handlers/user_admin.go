// internal/interfaces/http/handlers/user_admin.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/user"
	"gorm.io/gorm"
)

// UserAdminHandler handles admin user management endpoints
type UserAdminHandler struct {
	userService *user.Service
	config      *config.Config
}

// NewUserAdminHandler creates a new user admin handler
func NewUserAdminHandler(db *gorm.DB, cfg *config.Config) *UserAdminHandler {
	return &UserAdminHandler{
		userService: user.NewService(db, cfg),
		config:      cfg,
	}
}

// ListUsers handles GET /admin/users
func (h *UserAdminHandler) ListUsers(c *gin.Context) {
	role := c.Query("role")
	if role != "" && !user.ValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid role filter",
		})
		return
	}

	users, err := h.userService.ListUsers(role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve users",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users retrieved successfully",
		"data":    users,
	})
}

// SetRole handles PUT /admin/users/:id/role
func (h *UserAdminHandler) SetRole(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID",
		})
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Role required",
		})
		return
	}

	updated, err := h.userService.SetRole(uint(userID), req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Role updated successfully",
		"data":    updated,
	})
}

// SetActive handles PUT /admin/users/:id/active
func (h *UserAdminHandler) SetActive(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID",
		})
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "is_active required",
		})
		return
	}

	if err := h.userService.SetActive(uint(userID), *req.IsActive); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account status updated successfully",
	})
}
