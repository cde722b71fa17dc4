// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/cafe-backend/internal/domain/inventory"
	"github.com/your-org/cafe-backend/internal/domain/menu"
	"github.com/your-org/cafe-backend/internal/domain/notification"
	"github.com/your-org/cafe-backend/internal/domain/order"
	"github.com/your-org/cafe-backend/internal/domain/procurement"
	"github.com/your-org/cafe-backend/internal/domain/request"
	"github.com/your-org/cafe-backend/internal/domain/staff"
	"github.com/your-org/cafe-backend/internal/domain/user"
	"github.com/your-org/cafe-backend/internal/domain/vendor"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// Base tables
		&user.User{},
		&staff.Outlet{},
		&staff.Staff{},
		&staff.StaffPerformance{},

		// Menu and ordering
		&menu.MenuItem{},
		&order.Order{},
		&order.OrderItem{},

		// Inventory
		&inventory.InventoryItem{},
		&inventory.StockAlert{},

		// Vendors
		&vendor.Vendor{},
		&vendor.VendorProduct{},

		// Replenishment
		&request.InventoryRequest{},
		&procurement.PurchaseOrder{},
		&procurement.PurchaseOrderItem{},
		&procurement.Delivery{},
		&procurement.DeliveryItem{},

		// Notifications
		&notification.Notification{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_outlet_status ON orders(outlet_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",

		// Inventory indexes
		"CREATE INDEX IF NOT EXISTS idx_inventory_outlet_name ON inventory(outlet_id, name)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_low_stock ON inventory(outlet_id) WHERE quantity <= reorder_level",
		"CREATE INDEX IF NOT EXISTS idx_stock_alerts_unresolved ON stock_alerts(inventory_item_id) WHERE is_resolved = false",

		// Request indexes
		"CREATE INDEX IF NOT EXISTS idx_inventory_requests_status_created ON inventory_requests(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_requests_staff ON inventory_requests(staff_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_requests_idempotency ON inventory_requests(idempotency_key)",

		// Procurement indexes
		"CREATE INDEX IF NOT EXISTS idx_purchase_orders_number ON purchase_orders(po_number)",
		"CREATE INDEX IF NOT EXISTS idx_purchase_orders_outlet_status ON purchase_orders(outlet_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_purchase_orders_vendor ON purchase_orders(vendor_id)",
		"CREATE INDEX IF NOT EXISTS idx_deliveries_po ON deliveries(purchase_order_id)",
		"CREATE INDEX IF NOT EXISTS idx_delivery_items_delivery ON delivery_items(delivery_id)",

		// Vendor indexes
		"CREATE INDEX IF NOT EXISTS idx_vendor_products_item ON vendor_products(inventory_item_id, is_available)",
		"CREATE INDEX IF NOT EXISTS idx_vendor_products_vendor_item ON vendor_products(vendor_id, inventory_item_id)",

		// Notification indexes
		"CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON notifications(user_id, is_read, created_at DESC)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			log.Printf("Warning: failed to create index: %v", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// SeedInitialData seeds a development database with a usable starting set
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedOutlet(); err != nil {
		return fmt.Errorf("failed to seed outlet: %w", err)
	}

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedStaffUser(); err != nil {
		return fmt.Errorf("failed to seed staff user: %w", err)
	}

	if err := m.seedMenuItems(); err != nil {
		return fmt.Errorf("failed to seed menu items: %w", err)
	}

	if err := m.seedInventory(); err != nil {
		return fmt.Errorf("failed to seed inventory: %w", err)
	}

	if err := m.seedVendors(); err != nil {
		return fmt.Errorf("failed to seed vendors: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedOutlet() error {
	var existing staff.Outlet
	result := m.db.Where("code = ?", "MAIN").First(&existing)
	if result.Error != nil {
		outlet := staff.Outlet{
			Name:     "Main Street Cafe",
			Code:     "MAIN",
			Address:  "1 Main Street",
			IsActive: true,
		}
		if err := m.db.Create(&outlet).Error; err != nil {
			return err
		}
		log.Println("✅ Created outlet: Main Street Cafe")
	} else {
		log.Println("⏭️ Outlet already exists")
	}
	return nil
}

func (m *Migration) seedAdminUser() error {
	var existing user.User
	result := m.db.Where("email = ?", "admin@example.com").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		adminUser := user.User{
			Email:     "admin@example.com",
			Password:  string(hashedPassword),
			FirstName: "Admin",
			LastName:  "User",
			Role:      user.RoleAdmin,
			IsActive:  true,
		}
		if err := m.db.Create(&adminUser).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		log.Println("✅ Created admin user: admin@example.com (password: admin123)")
	} else {
		log.Printf("⏭️ Admin user already exists with ID: %d", existing.ID)
	}
	return nil
}

func (m *Migration) seedStaffUser() error {
	var existing user.User
	result := m.db.Where("email = ?", "staff@example.com").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("staff123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		staffUser := user.User{
			Email:     "staff@example.com",
			Password:  string(hashedPassword),
			FirstName: "Staff",
			LastName:  "User",
			Role:      user.RoleStaff,
			IsActive:  true,
		}
		if err := m.db.Create(&staffUser).Error; err != nil {
			return err
		}

		var outlet staff.Outlet
		if err := m.db.Where("code = ?", "MAIN").First(&outlet).Error; err == nil {
			assignment := staff.Staff{
				UserID:   staffUser.ID,
				OutletID: outlet.ID,
				Position: "Barista",
				IsActive: true,
			}
			if err := m.db.Create(&assignment).Error; err != nil {
				return err
			}
		}

		log.Println("✅ Created staff user: staff@example.com (password: staff123)")
	} else {
		log.Println("⏭️ Staff user already exists")
	}
	return nil
}

func (m *Migration) seedMenuItems() error {
	items := []menu.MenuItem{
		{Name: "Espresso", Category: "Coffee", Price: 300, IsAvailable: true},
		{Name: "Cappuccino", Category: "Coffee", Price: 450, IsAvailable: true},
		{Name: "Flat White", Category: "Coffee", Price: 475, IsAvailable: true},
		{Name: "Croissant", Category: "Pastry", Price: 350, IsAvailable: true},
		{Name: "Banana Bread", Category: "Pastry", Price: 400, IsAvailable: true},
	}

	for _, item := range items {
		var existing menu.MenuItem
		result := m.db.Where("name = ?", item.Name).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&item).Error; err != nil {
				return err
			}
			log.Printf("✅ Created menu item: %s", item.Name)
		}
	}
	return nil
}

func (m *Migration) seedInventory() error {
	var outlet staff.Outlet
	if err := m.db.Where("code = ?", "MAIN").First(&outlet).Error; err != nil {
		return nil
	}

	items := []inventory.InventoryItem{
		{OutletID: outlet.ID, Name: "Coffee Beans", Category: "Ingredients", Unit: "kg", Quantity: 12, ReorderLevel: 5, PricePerUnit: 1800},
		{OutletID: outlet.ID, Name: "Whole Milk", Category: "Dairy", Unit: "l", Quantity: 20, ReorderLevel: 10, PricePerUnit: 120},
		{OutletID: outlet.ID, Name: "Oat Milk", Category: "Dairy", Unit: "l", Quantity: 6, ReorderLevel: 8, PricePerUnit: 250},
		{OutletID: outlet.ID, Name: "Paper Cups 12oz", Category: "Supplies", Unit: "pcs", Quantity: 400, ReorderLevel: 200, PricePerUnit: 8},
		{OutletID: outlet.ID, Name: "Sugar", Category: "Ingredients", Unit: "kg", Quantity: 9, ReorderLevel: 3, PricePerUnit: 150},
	}

	for _, item := range items {
		var existing inventory.InventoryItem
		result := m.db.Where("outlet_id = ? AND name = ?", item.OutletID, item.Name).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&item).Error; err != nil {
				return err
			}
			log.Printf("✅ Created inventory item: %s", item.Name)
		}
	}
	return nil
}

func (m *Migration) seedVendors() error {
	vendors := []vendor.Vendor{
		{Name: "Bean Supply Co", ContactEmail: "orders@beansupply.example", Phone: "+1-555-0100", IsActive: true},
		{Name: "Dairy Direct", ContactEmail: "sales@dairydirect.example", Phone: "+1-555-0101", IsActive: true},
	}

	for _, v := range vendors {
		var existing vendor.Vendor
		result := m.db.Where("name = ?", v.Name).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&v).Error; err != nil {
				return err
			}
			log.Printf("✅ Created vendor: %s", v.Name)
		}
	}
	return nil
}

// GetTableInfo logs row counts for the main tables
func (m *Migration) GetTableInfo() error {
	tables := []string{
		"users", "outlets", "staff", "menu_items", "orders", "order_items",
		"inventory", "stock_alerts", "vendors", "vendor_products",
		"inventory_requests", "purchase_orders", "deliveries", "notifications",
	}

	log.Println("📊 Table row counts:")
	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("  %s: error (%v)", table, err)
			continue
		}
		log.Printf("  %s: %d", table, count)
	}
	return nil
}

// DropAllTables drops every application table. Used by tests only.
func (m *Migration) DropAllTables() error {
	tables := []string{
		"notifications", "delivery_items", "deliveries",
		"purchase_order_items", "purchase_orders", "inventory_requests",
		"vendor_products", "vendors", "stock_alerts", "inventory",
		"order_items", "orders", "menu_items",
		"staff_performance", "staff", "outlets", "users",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
