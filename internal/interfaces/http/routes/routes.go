// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/interfaces/http/handlers"
	"github.com/your-org/cafe-backend/internal/interfaces/http/middleware"
	"github.com/your-org/cafe-backend/internal/realtime"
	"gorm.io/gorm"
)

// SetupRoutes wires every route group onto the API router group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, hub *realtime.Hub) {
	SetupAuthRoutes(rg, db, cfg)
	SetupMenuRoutes(rg, db, cfg)
	SetupOrderRoutes(rg, db, cfg, hub)
	SetupInventoryRoutes(rg, db, cfg, hub)
	SetupRequestRoutes(rg, db, redisClient, cfg, hub)
	SetupProcurementRoutes(rg, db, redisClient, cfg, hub)
	SetupVendorRoutes(rg, db, cfg)
	SetupDashboardRoutes(rg, db, cfg)
	SetupNotificationRoutes(rg, db, cfg, hub)
	SetupReportRoutes(rg, db, cfg)
	SetupEventRoutes(rg, cfg, hub)
	SetupAdminRoutes(rg, db, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/me", authHandler.GetProfile)
			protected.PUT("/me", authHandler.UpdateProfile)
			protected.PUT("/me/password", authHandler.ChangePassword)
		}
	}
}

// SetupMenuRoutes sets up menu related routes
func SetupMenuRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	menuHandler := handlers.NewMenuHandler(db, cfg)

	menu := rg.Group("/menu")
	menu.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		menu.GET("", menuHandler.ListMenu)
		menu.GET("/:id", menuHandler.GetMenuItem)
	}

	admin := rg.Group("/menu")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.POST("", menuHandler.CreateMenuItem)
		admin.PUT("/:id", menuHandler.UpdateMenuItem)
		admin.DELETE("/:id", menuHandler.DeleteMenuItem)
	}
}

// SetupOrderRoutes sets up order related routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, hub *realtime.Hub) {
	orderHandler := handlers.NewOrderHandler(db, cfg, hub)

	orders := rg.Group("/orders")
	orders.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		orders.POST("", orderHandler.CreateOrder)
	}

	authed := rg.Group("/orders")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		authed.GET("/mine", orderHandler.ListMyOrders)
		authed.GET("/:id", orderHandler.GetOrder)
		authed.POST("/:id/cancel", orderHandler.CancelOrder)
	}

	staff := rg.Group("/orders")
	staff.Use(middleware.AuthMiddleware(cfg), middleware.StaffMiddleware())
	{
		staff.GET("", orderHandler.ListOrders)
		staff.PUT("/:id/status", orderHandler.UpdateOrderStatus)
	}
}

// SetupInventoryRoutes sets up inventory related routes
func SetupInventoryRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, hub *realtime.Hub) {
	inventoryHandler := handlers.NewInventoryHandler(db, cfg, hub)

	inv := rg.Group("/inventory")
	inv.Use(middleware.AuthMiddleware(cfg), middleware.StaffMiddleware())
	{
		inv.GET("", inventoryHandler.ListInventory)
		inv.GET("/alerts", inventoryHandler.ListAlerts)
		inv.PUT("/alerts/:id/resolve", inventoryHandler.ResolveAlert)
		inv.GET("/:id", inventoryHandler.GetInventoryItem)
		inv.PUT("/:id/quantity", inventoryHandler.UpdateQuantity)
	}

	admin := rg.Group("/inventory")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.POST("", inventoryHandler.CreateInventoryItem)
	}
}

// SetupRequestRoutes sets up replenishment request routes
func SetupRequestRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, hub *realtime.Hub) {
	requestHandler := handlers.NewRequestHandler(db, redisClient, cfg, hub)

	requests := rg.Group("/requests")
	requests.Use(middleware.AuthMiddleware(cfg), middleware.StaffMiddleware())
	{
		requests.GET("/cart", requestHandler.GetCart)
		requests.POST("/cart/items", requestHandler.OpenLine)
		requests.PUT("/cart/items/:itemId", requestHandler.ConfirmLine)
		requests.PUT("/cart/items/:itemId/increment", requestHandler.IncrementLine)
		requests.PUT("/cart/items/:itemId/decrement", requestHandler.DecrementLine)
		requests.DELETE("/cart/items/:itemId", requestHandler.RemoveLine)
		requests.DELETE("/cart", requestHandler.ClearCart)
		requests.POST("/submit", requestHandler.SubmitRequests)

		requests.GET("", requestHandler.ListRequests)
		requests.GET("/:id", requestHandler.GetRequest)
	}

	admin := rg.Group("/requests")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.PUT("/:id/approve", requestHandler.ApproveRequest)
		admin.PUT("/:id/reject", requestHandler.RejectRequest)
	}
}

// SetupProcurementRoutes sets up purchase order and delivery routes
func SetupProcurementRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, hub *realtime.Hub) {
	procurementHandler := handlers.NewProcurementHandler(db, redisClient, cfg, hub)

	pos := rg.Group("/purchase-orders")
	pos.Use(middleware.AuthMiddleware(cfg), middleware.StaffMiddleware())
	{
		pos.GET("", procurementHandler.ListPurchaseOrders)
		pos.GET("/:id", procurementHandler.GetPurchaseOrder)
		pos.POST("/:id/deliveries", procurementHandler.CreateDelivery)
	}

	posAdmin := rg.Group("/purchase-orders")
	posAdmin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		posAdmin.POST("", procurementHandler.CreatePurchaseOrder)
		posAdmin.PUT("/:id/status", procurementHandler.UpdatePOStatus)
	}

	deliveries := rg.Group("/deliveries")
	deliveries.Use(middleware.AuthMiddleware(cfg), middleware.StaffMiddleware())
	{
		deliveries.GET("", procurementHandler.ListDeliveries)
		deliveries.GET("/:id", procurementHandler.GetDelivery)
		deliveries.PUT("/:id/status", procurementHandler.UpdateDeliveryStatus)
		deliveries.PUT("/:id/quantities", procurementHandler.RecordDeliveredQuantities)
		deliveries.POST("/:id/reconcile", procurementHandler.ReconcileDelivery)
	}
}

// SetupVendorRoutes sets up vendor directory routes
func SetupVendorRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	vendorHandler := handlers.NewVendorHandler(db, cfg)

	vendors := rg.Group("/vendors")
	vendors.Use(middleware.AuthMiddleware(cfg), middleware.StaffMiddleware())
	{
		vendors.GET("", vendorHandler.ListVendors)
		vendors.GET("/offers/:itemId", vendorHandler.GetVendorsByProduct)
		vendors.GET("/:id", vendorHandler.GetVendor)
	}

	admin := rg.Group("/vendors")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.POST("", vendorHandler.CreateVendor)
		admin.PUT("/offers", vendorHandler.UpsertProduct)
		admin.PUT("/:id", vendorHandler.UpdateVendor)
	}
}

// SetupDashboardRoutes sets up staff dashboard and outlet routes
func SetupDashboardRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	dashboardHandler := handlers.NewDashboardHandler(db, cfg)

	staff := rg.Group("")
	staff.Use(middleware.AuthMiddleware(cfg), middleware.StaffMiddleware())
	{
		staff.GET("/dashboard", dashboardHandler.GetDashboard)
		staff.GET("/outlets", dashboardHandler.ListOutlets)
	}

	admin := rg.Group("/outlets")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.POST("", dashboardHandler.CreateOutlet)
		admin.POST("/:id/staff", dashboardHandler.AssignStaff)
		admin.GET("/:id/performance", dashboardHandler.ListPerformance)
	}
}

// SetupNotificationRoutes sets up notification routes
func SetupNotificationRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, hub *realtime.Hub) {
	notificationHandler := handlers.NewNotificationHandler(db, cfg, hub)

	notifications := rg.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(cfg))
	{
		notifications.GET("", notificationHandler.ListNotifications)
		notifications.PUT("/read-all", notificationHandler.MarkAllRead)
		notifications.PUT("/:id/read", notificationHandler.MarkRead)
	}
}

// SetupReportRoutes sets up report export routes
func SetupReportRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	reportHandler := handlers.NewReportHandler(db, cfg)

	reports := rg.Group("/reports")
	reports.Use(middleware.AuthMiddleware(cfg), middleware.StaffMiddleware())
	{
		reports.GET("/inventory", reportHandler.ExportInventoryReport)
	}
}

// SetupEventRoutes sets up the server-sent events stream
func SetupEventRoutes(rg *gin.RouterGroup, cfg *config.Config, hub *realtime.Hub) {
	eventsHandler := handlers.NewEventsHandler(hub)

	events := rg.Group("/events")
	events.Use(middleware.AuthMiddleware(cfg))
	{
		events.GET("", eventsHandler.Stream)
	}
}

// SetupAdminRoutes sets up admin user management routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	userAdminHandler := handlers.NewUserAdminHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.GET("/users", userAdminHandler.ListUsers)
		admin.PUT("/users/:id/role", userAdminHandler.SetRole)
		admin.PUT("/users/:id/active", userAdminHandler.SetActive)
	}
}
