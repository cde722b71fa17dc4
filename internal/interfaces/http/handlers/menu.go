// internal/interfaces/http/handlers/menu.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/menu"
	"github.com/your-org/cafe-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// MenuHandler handles menu endpoints
type MenuHandler struct {
	menuService *menu.Service
	config      *config.Config
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(db *gorm.DB, cfg *config.Config) *MenuHandler {
	return &MenuHandler{
		menuService: menu.NewService(db, cfg),
		config:      cfg,
	}
}

// ListMenu handles GET /menu. Customers see available items only;
// staff see everything.
func (h *MenuHandler) ListMenu(c *gin.Context) {
	var (
		items []menu.MenuItem
		err   error
	)
	if middleware.IsStaffFromContext(c) && c.Query("all") == "true" {
		items, err = h.menuService.ListAll()
	} else {
		items, err = h.menuService.ListAvailable()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve menu",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu retrieved successfully",
		"data":    items,
	})
}

// GetMenuItem handles GET /menu/:id
func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid menu item ID",
		})
		return
	}

	item, err := h.menuService.GetItem(uint(itemID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item retrieved successfully",
		"data":    item,
	})
}

// CreateMenuItem handles POST /menu (admin)
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req menu.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.menuService.CreateItem(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Menu item created successfully",
		"data":    item,
	})
}

// UpdateMenuItem handles PUT /menu/:id (admin)
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid menu item ID",
		})
		return
	}

	var req menu.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.menuService.UpdateItem(uint(itemID), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item updated successfully",
		"data":    item,
	})
}

// DeleteMenuItem handles DELETE /menu/:id (admin)
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid menu item ID",
		})
		return
	}

	if err := h.menuService.DeleteItem(uint(itemID)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item deleted successfully",
	})
}
