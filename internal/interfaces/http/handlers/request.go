// internal/interfaces/http/handlers/request.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/notification"
	"github.com/your-org/cafe-backend/internal/domain/request"
	"github.com/your-org/cafe-backend/internal/interfaces/http/middleware"
	"github.com/your-org/cafe-backend/internal/realtime"
	"gorm.io/gorm"
)

// RequestHandler handles replenishment request endpoints
type RequestHandler struct {
	requestService *request.Service
	config         *config.Config
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, hub *realtime.Hub) *RequestHandler {
	return &RequestHandler{
		requestService: request.NewService(db, redisClient, cfg, notification.NewService(db, hub)),
		config:         cfg,
	}
}

// GetCart handles GET /requests/cart
func (h *RequestHandler) GetCart(c *gin.Context) {
	staffID, _ := middleware.GetUserIDFromContext(c)

	cart, err := h.requestService.GetBuilder().GetCart(c.Request.Context(), staffID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve request cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Request cart retrieved successfully",
		"data":    cart,
	})
}

// OpenLine handles POST /requests/cart/items
func (h *RequestHandler) OpenLine(c *gin.Context) {
	staffID, _ := middleware.GetUserIDFromContext(c)

	var req struct {
		InventoryItemID uint `json:"inventory_item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cart, err := h.requestService.GetBuilder().OpenLine(c.Request.Context(), staffID, req.InventoryItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Request line opened successfully",
		"data":    cart,
	})
}

// IncrementLine handles PUT /requests/cart/items/:itemId/increment
func (h *RequestHandler) IncrementLine(c *gin.Context) {
	staffID, _ := middleware.GetUserIDFromContext(c)

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid inventory item ID",
		})
		return
	}

	cart, err := h.requestService.GetBuilder().Increment(c.Request.Context(), staffID, uint(itemID))
	if err != nil {
		if errors.Is(err, request.ErrQuantityCapped) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
				"data":  cart,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quantity incremented successfully",
		"data":    cart,
	})
}

// DecrementLine handles PUT /requests/cart/items/:itemId/decrement
func (h *RequestHandler) DecrementLine(c *gin.Context) {
	staffID, _ := middleware.GetUserIDFromContext(c)

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid inventory item ID",
		})
		return
	}

	cart, err := h.requestService.GetBuilder().Decrement(c.Request.Context(), staffID, uint(itemID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quantity decremented successfully",
		"data":    cart,
	})
}

// ConfirmLine handles PUT /requests/cart/items/:itemId
func (h *RequestHandler) ConfirmLine(c *gin.Context) {
	staffID, _ := middleware.GetUserIDFromContext(c)

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid inventory item ID",
		})
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cart, err := h.requestService.GetBuilder().ConfirmLine(c.Request.Context(), staffID, uint(itemID), req.Quantity)
	if err != nil {
		if errors.Is(err, request.ErrQuantityCapped) || errors.Is(err, request.ErrInvalidQuantity) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
				"data":  cart,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Request line confirmed successfully",
		"data":    cart,
	})
}

// RemoveLine handles DELETE /requests/cart/items/:itemId
func (h *RequestHandler) RemoveLine(c *gin.Context) {
	staffID, _ := middleware.GetUserIDFromContext(c)

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid inventory item ID",
		})
		return
	}

	cart, err := h.requestService.GetBuilder().RemoveLine(c.Request.Context(), staffID, uint(itemID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Request line removed successfully",
		"data":    cart,
	})
}

// ClearCart handles DELETE /requests/cart
func (h *RequestHandler) ClearCart(c *gin.Context) {
	staffID, _ := middleware.GetUserIDFromContext(c)

	if err := h.requestService.GetBuilder().Clear(c.Request.Context(), staffID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear request cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Request cart cleared successfully",
	})
}

// SubmitRequests handles POST /requests/submit. A partial failure returns
// 207 with the rows that were written before the failure.
func (h *RequestHandler) SubmitRequests(c *gin.Context) {
	staffID, _ := middleware.GetUserIDFromContext(c)

	var req struct {
		Notes string `json:"notes"`
	}
	// Body is optional
	_ = c.ShouldBindJSON(&req)

	result, err := h.requestService.SubmitAll(c.Request.Context(), staffID, req.Notes)
	if err != nil {
		if errors.Is(err, request.ErrEmptyRequestCart) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		if result != nil && result.Submitted > 0 {
			c.JSON(http.StatusMultiStatus, gin.H{
				"error": err.Error(),
				"data":  result,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Requests submitted successfully",
		"data":    result,
	})
}

// ListRequests handles GET /requests
func (h *RequestHandler) ListRequests(c *gin.Context) {
	var query request.RequestListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	requests, err := h.requestService.List(&query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve requests",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Requests retrieved successfully",
		"data":    requests,
	})
}

// GetRequest handles GET /requests/:id
func (h *RequestHandler) GetRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID",
		})
		return
	}

	found, err := h.requestService.Get(uint(requestID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Request retrieved successfully",
		"data":    found,
	})
}

// ApproveRequest handles PUT /requests/:id/approve (admin)
func (h *RequestHandler) ApproveRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID",
		})
		return
	}

	approverID, _ := middleware.GetUserIDFromContext(c)

	approved, err := h.requestService.Approve(uint(requestID), approverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Request approved successfully",
		"data":    approved,
	})
}

// RejectRequest handles PUT /requests/:id/reject (admin)
func (h *RequestHandler) RejectRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID",
		})
		return
	}

	var req request.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Rejection reason required",
		})
		return
	}

	rejected, err := h.requestService.Reject(uint(requestID), req.Reason)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Request rejected successfully",
		"data":    rejected,
	})
}
