// internal/interfaces/http/handlers/vendor.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/vendor"
	"gorm.io/gorm"
)

// VendorHandler handles vendor directory endpoints
type VendorHandler struct {
	vendorService *vendor.Service
	config        *config.Config
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(db *gorm.DB, cfg *config.Config) *VendorHandler {
	return &VendorHandler{
		vendorService: vendor.NewService(db, cfg),
		config:        cfg,
	}
}

// ListVendors handles GET /vendors (staff)
func (h *VendorHandler) ListVendors(c *gin.Context) {
	vendors, err := h.vendorService.ListVendors()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve vendors",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vendors retrieved successfully",
		"data":    vendors,
	})
}

// GetVendor handles GET /vendors/:id (staff)
func (h *VendorHandler) GetVendor(c *gin.Context) {
	vendorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vendor ID",
		})
		return
	}

	v, err := h.vendorService.GetVendor(uint(vendorID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vendor retrieved successfully",
		"data":    v,
	})
}

// CreateVendor handles POST /vendors (admin)
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var req vendor.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	v, err := h.vendorService.CreateVendor(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Vendor created successfully",
		"data":    v,
	})
}

// UpdateVendor handles PUT /vendors/:id (admin)
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	vendorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vendor ID",
		})
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	v, err := h.vendorService.UpdateVendor(uint(vendorID), fields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vendor updated successfully",
		"data":    v,
	})
}

// GetVendorsByProduct handles GET /vendors/offers/:itemId (staff).
// Offers are returned cheapest first.
func (h *VendorHandler) GetVendorsByProduct(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid inventory item ID",
		})
		return
	}

	offers, err := h.vendorService.GetVendorsByProduct(uint(itemID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve vendor offers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vendor offers retrieved successfully",
		"data":    offers,
	})
}

// UpsertProduct handles PUT /vendors/offers (admin)
func (h *VendorHandler) UpsertProduct(c *gin.Context) {
	var req vendor.UpsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	offer, err := h.vendorService.UpsertProduct(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vendor offer saved successfully",
		"data":    offer,
	})
}
