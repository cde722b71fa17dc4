// internal/domain/inventory/entity_test.go
package inventory

import "testing"

func TestStockPercentage(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int
		reorderLevel int
		expected     int
	}{
		{"empty", 0, 10, 0},
		{"at reorder level is half full", 10, 10, 50},
		{"full at twice reorder level", 20, 10, 100},
		{"clamped above full", 50, 10, 100},
		{"below reorder level", 5, 10, 25},
		{"zero reorder level with stock", 7, 0, 100},
		{"zero reorder level without stock", 0, 0, 0},
		{"negative reorder level with stock", 3, -5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &InventoryItem{Quantity: tt.quantity, ReorderLevel: tt.reorderLevel}
			if got := item.StockPercentage(); got != tt.expected {
				t.Errorf("Expected %d%%, got %d%%", tt.expected, got)
			}
		})
	}
}

func TestNeedsReorder(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int
		reorderLevel int
		expected     bool
	}{
		{"above reorder level", 11, 10, false},
		{"exactly at reorder level", 10, 10, true},
		{"below reorder level", 9, 10, true},
		{"out of stock", 0, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &InventoryItem{Quantity: tt.quantity, ReorderLevel: tt.reorderLevel}
			if got := item.NeedsReorder(); got != tt.expected {
				t.Errorf("Expected NeedsReorder=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestIsOutOfStock(t *testing.T) {
	item := &InventoryItem{Quantity: 0}
	if !item.IsOutOfStock() {
		t.Error("Expected zero quantity to be out of stock")
	}

	item.Quantity = 1
	if item.IsOutOfStock() {
		t.Error("Expected positive quantity to be in stock")
	}
}

func TestMaxRequestQuantity(t *testing.T) {
	item := &InventoryItem{ReorderLevel: 10}
	if got := item.MaxRequestQuantity(3); got != 30 {
		t.Errorf("Expected cap 30, got %d", got)
	}

	item.ReorderLevel = 0
	if got := item.MaxRequestQuantity(3); got != 0 {
		t.Errorf("Expected cap 0 for zero reorder level, got %d", got)
	}
}
