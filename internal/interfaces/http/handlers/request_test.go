// internal/interfaces/http/handlers/request_test.go
package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cafe-backend/internal/interfaces/http/middleware"
	"github.com/your-org/cafe-backend/internal/realtime"
	"github.com/your-org/cafe-backend/internal/testutil"
	"gorm.io/gorm"
)

func setupRequestTest(t *testing.T) (*gin.Engine, *gorm.DB, string, uint) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	rdb := testutil.SetupTestRedis(t)
	cfg := testutil.TestConfig()

	outlet := testutil.SeedOutlet(t, db, "Main", fmt.Sprintf("T%d", testutil.UniqueID()))
	// Reorder level 10 caps requests at 30
	item := testutil.SeedInventoryItem(t, db, outlet.ID, "Coffee Beans", 5, 10)

	router := testutil.SetupRouter()
	requestHandler := NewRequestHandler(db, rdb, cfg, realtime.NewHub())

	requests := router.Group("/api/v1/requests")
	requests.Use(middleware.AuthMiddleware(cfg), middleware.StaffMiddleware())
	{
		requests.GET("/cart", requestHandler.GetCart)
		requests.POST("/cart/items", requestHandler.OpenLine)
		requests.PUT("/cart/items/:itemId", requestHandler.ConfirmLine)
		requests.PUT("/cart/items/:itemId/increment", requestHandler.IncrementLine)
		requests.PUT("/cart/items/:itemId/decrement", requestHandler.DecrementLine)
		requests.DELETE("/cart/items/:itemId", requestHandler.RemoveLine)
		requests.POST("/submit", requestHandler.SubmitRequests)
		requests.GET("", requestHandler.ListRequests)
	}

	token := testutil.GenerateTestToken(t, testutil.UniqueID(), "staff@example.com", "staff")
	return router, db, token, item.ID
}

func cartLines(t *testing.T, resp map[string]interface{}) []interface{} {
	t.Helper()
	cart, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected cart in response, got %v", resp)
	}
	lines, _ := cart["lines"].([]interface{})
	return lines
}

func TestRequestCartFlow(t *testing.T) {
	router, _, token, itemID := setupRequestTest(t)

	// Open a line, default quantity 1
	w := testutil.DoRequest(router, "POST", "/api/v1/requests/cart/items", map[string]uint{
		"inventory_item_id": itemID,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	lines := cartLines(t, testutil.ParseResponse(w))
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if qty := lines[0].(map[string]interface{})["quantity"].(float64); qty != 1 {
		t.Errorf("Expected default quantity 1, got %v", qty)
	}

	// Confirm an explicit quantity
	w = testutil.DoRequest(router, "PUT", fmt.Sprintf("/api/v1/requests/cart/items/%d", itemID), map[string]int{
		"quantity": 30,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Increment beyond the cap is rejected, not truncated
	w = testutil.DoRequest(router, "PUT", fmt.Sprintf("/api/v1/requests/cart/items/%d/increment", itemID), nil, token)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422 at the cap, got %d: %s", w.Code, w.Body.String())
	}

	// Stored quantity is unchanged
	w = testutil.DoRequest(router, "GET", "/api/v1/requests/cart", nil, token)
	lines = cartLines(t, testutil.ParseResponse(w))
	if qty := lines[0].(map[string]interface{})["quantity"].(float64); qty != 30 {
		t.Errorf("Expected quantity still 30, got %v", qty)
	}
}

func TestConfirmLineOverCap(t *testing.T) {
	router, _, token, itemID := setupRequestTest(t)

	w := testutil.DoRequest(router, "PUT", fmt.Sprintf("/api/v1/requests/cart/items/%d", itemID), map[string]int{
		"quantity": 31,
	}, token)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 over the cap, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSubmitRequestsEndpoint(t *testing.T) {
	router, _, token, itemID := setupRequestTest(t)

	// Submitting an empty cart fails
	w := testutil.DoRequest(router, "POST", "/api/v1/requests/submit", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an empty cart, got %d", w.Code)
	}

	w = testutil.DoRequest(router, "PUT", fmt.Sprintf("/api/v1/requests/cart/items/%d", itemID), map[string]int{
		"quantity": 12,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/requests/submit", map[string]string{
		"notes": "weekly restock",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	result := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if submitted := result["submitted"].(float64); submitted != 1 {
		t.Errorf("Expected 1 submitted, got %v", submitted)
	}

	// The submitted request shows up in the list
	w = testutil.DoRequest(router, "GET", "/api/v1/requests?status=pending", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequestRoutesRequireStaff(t *testing.T) {
	router, _, _, _ := setupRequestTest(t)

	customerToken := testutil.GenerateTestToken(t, testutil.UniqueID(), "customer@example.com", "customer")
	w := testutil.DoRequest(router, "GET", "/api/v1/requests/cart", nil, customerToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for a customer, got %d", w.Code)
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/requests/cart", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a token, got %d", w.Code)
	}
}
