// internal/interfaces/http/handlers/inventory.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/inventory"
	"github.com/your-org/cafe-backend/internal/domain/notification"
	"github.com/your-org/cafe-backend/internal/realtime"
	"gorm.io/gorm"
)

// InventoryHandler handles inventory endpoints
type InventoryHandler struct {
	inventoryService *inventory.Service
	config           *config.Config
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(db *gorm.DB, cfg *config.Config, hub *realtime.Hub) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventory.NewService(db, cfg, notification.NewService(db, hub)),
		config:           cfg,
	}
}

// itemView decorates an inventory item with derived stock fields
type itemView struct {
	inventory.InventoryItem
	StockPercentage    int  `json:"stock_percentage"`
	NeedsReorder       bool `json:"needs_reorder"`
	MaxRequestQuantity int  `json:"max_request_quantity"`
}

func (h *InventoryHandler) toView(item inventory.InventoryItem) itemView {
	return itemView{
		InventoryItem:      item,
		StockPercentage:    item.StockPercentage(),
		NeedsReorder:       item.NeedsReorder(),
		MaxRequestQuantity: item.MaxRequestQuantity(h.config.Procurement.QuantityCapMultiplier),
	}
}

// ListInventory handles GET /inventory
func (h *InventoryHandler) ListInventory(c *gin.Context) {
	var outletID uint
	if param := c.Query("outlet_id"); param != "" {
		id, err := strconv.ParseUint(param, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid outlet ID",
			})
			return
		}
		outletID = uint(id)
	}

	items, err := h.inventoryService.List(outletID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve inventory",
		})
		return
	}

	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, h.toView(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory retrieved successfully",
		"data":    views,
	})
}

// GetInventoryItem handles GET /inventory/:id
func (h *InventoryHandler) GetInventoryItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid inventory item ID",
		})
		return
	}

	item, err := h.inventoryService.GetItem(uint(itemID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory item retrieved successfully",
		"data":    h.toView(*item),
	})
}

// CreateInventoryItem handles POST /inventory (admin)
func (h *InventoryHandler) CreateInventoryItem(c *gin.Context) {
	var req inventory.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.inventoryService.CreateItem(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Inventory item created successfully",
		"data":    h.toView(*item),
	})
}

// UpdateQuantity handles PUT /inventory/:id/quantity (staff)
func (h *InventoryHandler) UpdateQuantity(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid inventory item ID",
		})
		return
	}

	var req inventory.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.inventoryService.UpdateQuantity(uint(itemID), req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quantity updated successfully",
		"data":    h.toView(*item),
	})
}

// ListAlerts handles GET /inventory/alerts (staff)
func (h *InventoryHandler) ListAlerts(c *gin.Context) {
	alerts, err := h.inventoryService.ListAlerts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve alerts",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Alerts retrieved successfully",
		"data":    alerts,
	})
}

// ResolveAlert handles PUT /inventory/alerts/:id/resolve (staff)
func (h *InventoryHandler) ResolveAlert(c *gin.Context) {
	alertID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid alert ID",
		})
		return
	}

	if err := h.inventoryService.ResolveAlert(uint(alertID)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Alert resolved successfully",
	})
}
