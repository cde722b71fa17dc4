// internal/testutil/testutil.go
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/inventory"
	"github.com/your-org/cafe-backend/internal/domain/menu"
	"github.com/your-org/cafe-backend/internal/domain/notification"
	"github.com/your-org/cafe-backend/internal/domain/order"
	"github.com/your-org/cafe-backend/internal/domain/procurement"
	"github.com/your-org/cafe-backend/internal/domain/request"
	"github.com/your-org/cafe-backend/internal/domain/staff"
	"github.com/your-org/cafe-backend/internal/domain/user"
	"github.com/your-org/cafe-backend/internal/domain/vendor"
	"github.com/your-org/cafe-backend/internal/pkg/auth"
)

const (
	TestSchema = "test_cafe"
	JWTSecret  = "cafe-backend-test-jwt-secret-key-0000"
)

// projectRoot returns the project root directory by looking for go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// loadEnv loads .env from the project root
func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

// TestConfig returns a config suitable for tests
func TestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Cafe Backend Test"
	cfg.App.Environment = "test"
	cfg.JWT.Secret = JWTSecret
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.JWT.RefreshTokenExpiry = 24 * time.Hour
	cfg.Security.BcryptCost = 4
	cfg.Procurement.RequestCartTTL = time.Hour
	cfg.Procurement.IdempotencyWindow = 15 * time.Minute
	cfg.Procurement.EstimatedDeliveryDays = 2
	cfg.Procurement.QuantityCapMultiplier = 3
	cfg.Logging.Level = "error"
	return cfg
}

// SetupTestDB creates a test database connection using a dedicated test schema.
// Each test gets an isolated schema that is cleaned up after the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "cafe_user")
	password := getEnv("DB_PASSWORD", "cafe_password")
	dbname := getEnv("DB_NAME", "cafe_db")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, dbUser, password, dbname)

	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database for schema setup: %v", err)
	}
	setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName))
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// The search_path in the DSN makes all pooled connections use the schema
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&user.User{},
		&staff.Outlet{},
		&staff.Staff{},
		&staff.StaffPerformance{},
		&menu.MenuItem{},
		&order.Order{},
		&order.OrderItem{},
		&inventory.InventoryItem{},
		&inventory.StockAlert{},
		&vendor.Vendor{},
		&vendor.VendorProduct{},
		&request.InventoryRequest{},
		&procurement.PurchaseOrder{},
		&procurement.PurchaseOrderItem{},
		&procurement.Delivery{},
		&procurement.DeliveryItem{},
		&notification.Notification{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupTestRedis returns a client against the local Redis using the dedicated
// test database. Keys are isolated per test by unique entity IDs, not by
// flushing.
func SetupTestRedis(t *testing.T) *goredis.Client {
	t.Helper()
	loadEnv()

	client := goredis.NewClient(&goredis.Options{
		Addr: fmt.Sprintf("%s:%s", getEnv("REDIS_HOST", "127.0.0.1"), getEnv("REDIS_PORT", "6379")),
		DB:   15,
	})

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// GenerateTestToken creates a valid access token for testing
func GenerateTestToken(t *testing.T, userID uint, email, role string) string {
	t.Helper()
	jwtManager := auth.NewJWTManager(TestConfig())
	token, err := jwtManager.GenerateAccessToken(userID, email, role)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return token
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedUser creates a user row with the given role
func SeedUser(t *testing.T, db *gorm.DB, email, role string) *user.User {
	t.Helper()
	u := &user.User{
		Email:     email,
		Password:  "not-a-real-hash",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("Failed to seed test user: %v", err)
	}
	return u
}

// SeedOutlet creates an outlet row
func SeedOutlet(t *testing.T, db *gorm.DB, name, code string) *staff.Outlet {
	t.Helper()
	o := &staff.Outlet{
		Name:     name,
		Code:     code,
		IsActive: true,
	}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("Failed to seed test outlet: %v", err)
	}
	return o
}

// SeedInventoryItem creates an inventory item row
func SeedInventoryItem(t *testing.T, db *gorm.DB, outletID uint, name string, quantity, reorderLevel int) *inventory.InventoryItem {
	t.Helper()
	item := &inventory.InventoryItem{
		OutletID:     outletID,
		Name:         name,
		Category:     "Ingredients",
		Unit:         "kg",
		Quantity:     quantity,
		ReorderLevel: reorderLevel,
		PricePerUnit: 1000,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("Failed to seed inventory item: %v", err)
	}
	return item
}

// SeedVendor creates a vendor row
func SeedVendor(t *testing.T, db *gorm.DB, name string) *vendor.Vendor {
	t.Helper()
	v := &vendor.Vendor{
		Name:     name,
		IsActive: true,
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("Failed to seed vendor: %v", err)
	}
	return v
}

// UniqueID returns an ID unlikely to collide across parallel tests
func UniqueID() uint {
	return uint(time.Now().UnixNano() % 1_000_000_000)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
