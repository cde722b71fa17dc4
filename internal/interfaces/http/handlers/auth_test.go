// internal/interfaces/http/handlers/auth_test.go
package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cafe-backend/internal/interfaces/http/middleware"
	"github.com/your-org/cafe-backend/internal/testutil"
)

func setupAuthTest(t *testing.T) *gin.Engine {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := testutil.TestConfig()

	router := testutil.SetupRouter()
	authHandler := NewAuthHandler(db, cfg)

	auth := router.Group("/api/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	me := auth.Group("/me")
	me.Use(middleware.AuthMiddleware(cfg))
	me.GET("", authHandler.GetProfile)

	staffOnly := router.Group("/api/v1/staff-area")
	staffOnly.Use(middleware.AuthMiddleware(cfg), middleware.StaffMiddleware())
	staffOnly.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	return router
}

func registerUser(t *testing.T, router *gin.Engine, email string) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(router, "POST", "/api/v1/auth/register", map[string]string{
		"email":      email,
		"password":   "Password123",
		"first_name": "Test",
		"last_name":  "User",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})
}

func TestRegister(t *testing.T) {
	router := setupAuthTest(t)
	email := fmt.Sprintf("user%d@example.com", testutil.UniqueID())

	data := registerUser(t, router, email)

	if data["access_token"] == nil || data["access_token"] == "" {
		t.Error("Expected an access token")
	}
	u := data["user"].(map[string]interface{})
	if u["role"] != "customer" {
		t.Errorf("Expected new users to default to customer, got %v", u["role"])
	}

	// Duplicate registration is rejected
	w := testutil.DoRequest(router, "POST", "/api/v1/auth/register", map[string]string{
		"email":      email,
		"password":   "Password123",
		"first_name": "Test",
		"last_name":  "User",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for duplicate email, got %d", w.Code)
	}
}

func TestLogin(t *testing.T) {
	router := setupAuthTest(t)
	email := fmt.Sprintf("user%d@example.com", testutil.UniqueID())
	registerUser(t, router, email)

	w := testutil.DoRequest(router, "POST", "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": "Password123",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": "WrongPassword1",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong password, got %d", w.Code)
	}
}

func TestRefreshToken(t *testing.T) {
	router := setupAuthTest(t)
	email := fmt.Sprintf("user%d@example.com", testutil.UniqueID())
	data := registerUser(t, router, email)

	w := testutil.DoRequest(router, "POST", "/api/v1/auth/refresh", map[string]string{
		"refresh_token": data["refresh_token"].(string),
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	refreshed := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if refreshed["access_token"] == nil || refreshed["access_token"] == "" {
		t.Error("Expected a fresh access token")
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/auth/refresh", map[string]string{
		"refresh_token": "not-a-token",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for a bad refresh token, got %d", w.Code)
	}
}

func TestGetProfile(t *testing.T) {
	router := setupAuthTest(t)
	email := fmt.Sprintf("user%d@example.com", testutil.UniqueID())
	data := registerUser(t, router, email)
	token := data["access_token"].(string)

	w := testutil.DoRequest(router, "GET", "/api/v1/auth/me", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	profile := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if profile["email"] != email {
		t.Errorf("Expected profile for %s, got %v", email, profile["email"])
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/auth/me", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a token, got %d", w.Code)
	}
}

func TestStaffGate(t *testing.T) {
	router := setupAuthTest(t)

	customerToken := testutil.GenerateTestToken(t, testutil.UniqueID(), "customer@example.com", "customer")
	w := testutil.DoRequest(router, "GET", "/api/v1/staff-area", nil, customerToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for a customer, got %d", w.Code)
	}

	staffToken := testutil.GenerateTestToken(t, testutil.UniqueID(), "staff@example.com", "staff")
	w = testutil.DoRequest(router, "GET", "/api/v1/staff-area", nil, staffToken)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for staff, got %d", w.Code)
	}

	adminToken := testutil.GenerateTestToken(t, testutil.UniqueID(), "admin@example.com", "admin")
	w = testutil.DoRequest(router, "GET", "/api/v1/staff-area", nil, adminToken)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin, got %d", w.Code)
	}
}
