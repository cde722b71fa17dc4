// internal/interfaces/http/handlers/dashboard.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/staff"
	"github.com/your-org/cafe-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// DashboardHandler handles staff dashboard and outlet endpoints
type DashboardHandler struct {
	staffService *staff.Service
	config       *config.Config
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *gorm.DB, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{
		staffService: staff.NewService(db, cfg),
		config:       cfg,
	}
}

// GetDashboard handles GET /dashboard (staff). The outlet defaults to the
// staff member's own assignment; admins may pass outlet_id explicitly.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
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
	} else {
		userID, _ := middleware.GetUserIDFromContext(c)
		member, err := h.staffService.GetStaffByUser(userID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "No outlet assignment; pass outlet_id explicitly",
			})
			return
		}
		outletID = member.OutletID
	}

	summary, err := h.staffService.GetDashboard(outletID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build dashboard",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dashboard retrieved successfully",
		"data":    summary,
	})
}

// ListOutlets handles GET /outlets
func (h *DashboardHandler) ListOutlets(c *gin.Context) {
	outlets, err := h.staffService.ListOutlets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve outlets",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Outlets retrieved successfully",
		"data":    outlets,
	})
}

// CreateOutlet handles POST /outlets (admin)
func (h *DashboardHandler) CreateOutlet(c *gin.Context) {
	var outlet staff.Outlet
	if err := c.ShouldBindJSON(&outlet); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if outlet.Name == "" || outlet.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Name and code are required",
		})
		return
	}

	outlet.IsActive = true
	if err := h.staffService.CreateOutlet(&outlet); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Outlet created successfully",
		"data":    outlet,
	})
}

// AssignStaff handles POST /outlets/:id/staff (admin)
func (h *DashboardHandler) AssignStaff(c *gin.Context) {
	outletID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid outlet ID",
		})
		return
	}

	var req struct {
		UserID   uint   `json:"user_id" binding:"required"`
		Position string `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	member, err := h.staffService.AssignStaff(req.UserID, uint(outletID), req.Position)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Staff assigned successfully",
		"data":    member,
	})
}

// ListPerformance handles GET /outlets/:id/performance (admin)
func (h *DashboardHandler) ListPerformance(c *gin.Context) {
	outletID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid outlet ID",
		})
		return
	}

	rows, err := h.staffService.ListPerformance(uint(outletID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve performance records",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Performance records retrieved successfully",
		"data":    rows,
	})
}
