// internal/domain/report/service.go
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/your-org/cafe-backend/internal/domain/inventory"
	"github.com/your-org/cafe-backend/internal/domain/procurement"
)

// Service produces exportable reports
type Service struct {
	db *gorm.DB
}

// NewService creates a new report service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

var inventoryHeaders = []string{
	"ID", "Name", "Category", "Unit", "Quantity", "Reorder Level",
	"Stock %", "Price Per Unit", "Needs Reorder",
}

var purchaseOrderHeaders = []string{
	"PO Number", "Vendor ID", "Status", "Total Amount",
	"Order Date", "Expected Delivery",
}

// ExportInventoryReport builds an .xlsx workbook with the outlet's current
// stock levels and open purchase orders.
func (s *Service) ExportInventoryReport(outletID uint) (*excelize.File, string, error) {
	var items []inventory.InventoryItem
	if err := s.db.Where("outlet_id = ?", outletID).
		Order("name ASC").Find(&items).Error; err != nil {
		return nil, "", fmt.Errorf("failed to load inventory: %w", err)
	}

	var pos []procurement.PurchaseOrder
	if err := s.db.Where("outlet_id = ?", outletID).
		Order("order_date DESC").Find(&pos).Error; err != nil {
		return nil, "", fmt.Errorf("failed to load purchase orders: %w", err)
	}

	f := excelize.NewFile()
	invSheet := "Inventory"
	f.SetSheetName("Sheet1", invSheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range inventoryHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(invSheet, cell, h)
		f.SetCellStyle(invSheet, cell, cell, boldStyle)
	}

	lowStock := 0
	for rowIdx, item := range items {
		row := rowIdx + 2
		f.SetCellValue(invSheet, fmt.Sprintf("A%d", row), item.ID)
		f.SetCellValue(invSheet, fmt.Sprintf("B%d", row), item.Name)
		f.SetCellValue(invSheet, fmt.Sprintf("C%d", row), item.Category)
		f.SetCellValue(invSheet, fmt.Sprintf("D%d", row), item.Unit)
		f.SetCellValue(invSheet, fmt.Sprintf("E%d", row), item.Quantity)
		f.SetCellValue(invSheet, fmt.Sprintf("F%d", row), item.ReorderLevel)
		f.SetCellValue(invSheet, fmt.Sprintf("G%d", row), item.StockPercentage())
		f.SetCellValue(invSheet, fmt.Sprintf("H%d", row), float64(item.PricePerUnit)/100)
		needsReorder := "No"
		if item.NeedsReorder() {
			needsReorder = "Yes"
			lowStock++
		}
		f.SetCellValue(invSheet, fmt.Sprintf("I%d", row), needsReorder)
	}

	summaryRow := len(items) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(invSheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(invSheet, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("%d items", len(items)))
	f.SetCellValue(invSheet, fmt.Sprintf("I%d", summaryRow), fmt.Sprintf("%d need reorder", lowStock))
	f.SetCellStyle(invSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("I%d", summaryRow), summaryStyle)

	invWidths := []float64{6, 24, 14, 8, 10, 14, 8, 14, 14}
	for i, w := range invWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(invSheet, col, col, w)
	}

	poSheet := "Purchase Orders"
	f.NewSheet(poSheet)

	for i, h := range purchaseOrderHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(poSheet, cell, h)
		f.SetCellStyle(poSheet, cell, cell, boldStyle)
	}

	for rowIdx, po := range pos {
		row := rowIdx + 2
		f.SetCellValue(poSheet, fmt.Sprintf("A%d", row), po.PONumber)
		f.SetCellValue(poSheet, fmt.Sprintf("B%d", row), po.VendorID)
		f.SetCellValue(poSheet, fmt.Sprintf("C%d", row), string(po.Status))
		f.SetCellValue(poSheet, fmt.Sprintf("D%d", row), float64(po.TotalAmount)/100)
		f.SetCellValue(poSheet, fmt.Sprintf("E%d", row), po.OrderDate.Format("2006-01-02"))
		if po.ExpectedDeliveryDate != nil {
			f.SetCellValue(poSheet, fmt.Sprintf("F%d", row), po.ExpectedDeliveryDate.Format("2006-01-02"))
		}
	}

	poWidths := []float64{14, 10, 18, 14, 12, 16}
	for i, w := range poWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(poSheet, col, col, w)
	}

	filename := fmt.Sprintf("inventory_report_outlet%d_%s.xlsx",
		outletID, time.Now().Format("20060102"))
	return f, filename, nil
}
