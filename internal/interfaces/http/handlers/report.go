// internal/interfaces/http/handlers/report.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/report"
	"gorm.io/gorm"
)

// ReportHandler handles report export endpoints
type ReportHandler struct {
	reportService *report.Service
	config        *config.Config
}

// NewReportHandler creates a new report handler
func NewReportHandler(db *gorm.DB, cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		reportService: report.NewService(db),
		config:        cfg,
	}
}

// ExportInventoryReport handles GET /reports/inventory (staff).
// Responds with an .xlsx attachment.
func (h *ReportHandler) ExportInventoryReport(c *gin.Context) {
	outletID, err := strconv.ParseUint(c.DefaultQuery("outlet_id", "0"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid outlet ID",
		})
		return
	}

	f, filename, err := h.reportService.ExportInventoryReport(uint(outletID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build report",
		})
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
}
