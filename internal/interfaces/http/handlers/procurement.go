// internal/interfaces/http/handlers/procurement.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/inventory"
	"github.com/your-org/cafe-backend/internal/domain/notification"
	"github.com/your-org/cafe-backend/internal/domain/procurement"
	"github.com/your-org/cafe-backend/internal/domain/request"
	"github.com/your-org/cafe-backend/internal/interfaces/http/middleware"
	"github.com/your-org/cafe-backend/internal/realtime"
	"gorm.io/gorm"
)

// ProcurementHandler handles purchase order and delivery endpoints
type ProcurementHandler struct {
	procurementService *procurement.Service
	config             *config.Config
}

// NewProcurementHandler creates a new procurement handler
func NewProcurementHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, hub *realtime.Hub) *ProcurementHandler {
	notifier := notification.NewService(db, hub)
	requestService := request.NewService(db, redisClient, cfg, notifier)
	inventoryService := inventory.NewService(db, cfg, notifier)
	return &ProcurementHandler{
		procurementService: procurement.NewService(db, cfg, requestService, inventoryService, notifier),
		config:             cfg,
	}
}

// CreatePurchaseOrder handles POST /purchase-orders (admin)
func (h *ProcurementHandler) CreatePurchaseOrder(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req procurement.CreatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	po, err := h.procurementService.CreatePurchaseOrder(userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Purchase order created successfully",
		"data":    po,
	})
}

// ListPurchaseOrders handles GET /purchase-orders
func (h *ProcurementHandler) ListPurchaseOrders(c *gin.Context) {
	var query procurement.POListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	orders, err := h.procurementService.ListPurchaseOrders(&query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve purchase orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase orders retrieved successfully",
		"data":    orders,
	})
}

// GetPurchaseOrder handles GET /purchase-orders/:id
func (h *ProcurementHandler) GetPurchaseOrder(c *gin.Context) {
	poID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid purchase order ID",
		})
		return
	}

	po, err := h.procurementService.GetPurchaseOrder(uint(poID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase order retrieved successfully",
		"data":    po,
	})
}

// UpdatePOStatus handles PUT /purchase-orders/:id/status (admin)
func (h *ProcurementHandler) UpdatePOStatus(c *gin.Context) {
	poID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid purchase order ID",
		})
		return
	}

	var req procurement.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Status required",
		})
		return
	}

	po, err := h.procurementService.UpdatePOStatus(uint(poID), procurement.POStatus(req.Status))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase order status updated successfully",
		"data":    po,
	})
}

// CreateDelivery handles POST /purchase-orders/:id/deliveries (staff)
func (h *ProcurementHandler) CreateDelivery(c *gin.Context) {
	poID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid purchase order ID",
		})
		return
	}

	var req procurement.CreateDeliveryRequest
	// Body is optional
	_ = c.ShouldBindJSON(&req)

	delivery, err := h.procurementService.CreateDelivery(uint(poID), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Delivery created successfully",
		"data":    delivery,
	})
}

// ListDeliveries handles GET /deliveries (staff)
func (h *ProcurementHandler) ListDeliveries(c *gin.Context) {
	deliveries, err := h.procurementService.ListDeliveries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve deliveries",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deliveries retrieved successfully",
		"data":    deliveries,
	})
}

// GetDelivery handles GET /deliveries/:id (staff)
func (h *ProcurementHandler) GetDelivery(c *gin.Context) {
	deliveryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid delivery ID",
		})
		return
	}

	delivery, err := h.procurementService.GetDelivery(uint(deliveryID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery retrieved successfully",
		"data":    delivery,
	})
}

// UpdateDeliveryStatus handles PUT /deliveries/:id/status (staff)
func (h *ProcurementHandler) UpdateDeliveryStatus(c *gin.Context) {
	deliveryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid delivery ID",
		})
		return
	}

	var req procurement.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Status required",
		})
		return
	}

	delivery, err := h.procurementService.UpdateDeliveryStatus(uint(deliveryID), procurement.DeliveryStatus(req.Status))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery status updated successfully",
		"data":    delivery,
	})
}

// RecordDeliveredQuantities handles PUT /deliveries/:id/quantities (staff)
func (h *ProcurementHandler) RecordDeliveredQuantities(c *gin.Context) {
	deliveryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid delivery ID",
		})
		return
	}

	var req struct {
		Quantities map[uint]int `json:"quantities" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Quantities required",
		})
		return
	}

	delivery, err := h.procurementService.RecordDeliveredQuantities(uint(deliveryID), req.Quantities)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivered quantities recorded successfully",
		"data":    delivery,
	})
}

// ReconcileDelivery handles POST /deliveries/:id/reconcile (staff)
func (h *ProcurementHandler) ReconcileDelivery(c *gin.Context) {
	deliveryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid delivery ID",
		})
		return
	}

	var req procurement.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	delivery, err := h.procurementService.ReconcileDelivery(uint(deliveryID), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery reconciled successfully",
		"data":    delivery,
	})
}
