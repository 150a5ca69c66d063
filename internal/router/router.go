package router

import (
	"time"

	"carhub/internal/config"
	"carhub/internal/handler"
	"carhub/internal/middleware"
	"carhub/internal/repository"
	"carhub/internal/service"
	"carhub/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	adminRepo := repository.NewAdminRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	clientRepo := repository.NewClientRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(adminRepo, cfg)
	settingsSvc := service.NewSettingsService(settingRepo)
	inventorySvc := service.NewInventoryService(vehicleRepo, saleRepo, cfg.StrictLookups)
	clientSvc := service.NewClientService(clientRepo)

	// Worker dispatcher — injected into the sale flow for async confirmation mail
	dispatcher := worker.NewDispatcher(rdb)

	saleSvc := service.NewSaleService(saleRepo, vehicleRepo, clientRepo, inventorySvc, settingsSvc, dispatcher, cfg.StrictLookups)
	analyticsSvc := service.NewAnalyticsService(saleRepo, vehicleRepo, clientRepo, settingsSvc, rdb, cfg.AgedInventoryDays)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	adminsH := handler.NewAdminsHandler(authSvc)
	vehiclesH := handler.NewVehiclesHandler(inventorySvc, cfg.AgedInventoryDays)
	clientsH := handler.NewClientsHandler(clientSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	reportsH := handler.NewReportsHandler(saleSvc, inventorySvc, settingsSvc, cfg.PDFStoragePath)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: sales, manager, admin — declared per-endpoint

		// Vehicles — everyone reads, manager+ writes, admin deletes
		v1.GET("/vehicles", middleware.RequireRole("sales", "manager", "admin"), vehiclesH.List)
		v1.GET("/vehicles/aged", middleware.RequireRole("sales", "manager", "admin"), vehiclesH.Aged)
		v1.GET("/vehicles/brands", middleware.RequireRole("sales", "manager", "admin"), vehiclesH.CountByBrand)
		v1.GET("/vehicles/:id", middleware.RequireRole("sales", "manager", "admin"), vehiclesH.GetByID)
		v1.POST("/vehicles", middleware.RequireRole("manager", "admin"), vehiclesH.Create)
		v1.PUT("/vehicles/:id", middleware.RequireRole("manager", "admin"), vehiclesH.Update)
		v1.DELETE("/vehicles/:id", middleware.RequireRole("admin"), vehiclesH.Delete)

		// Clients
		v1.GET("/clients", middleware.RequireRole("sales", "manager", "admin"), clientsH.List)
		v1.GET("/clients/:id", middleware.RequireRole("sales", "manager", "admin"), clientsH.GetByID)
		v1.POST("/clients", middleware.RequireRole("sales", "manager", "admin"), clientsH.Create)
		v1.PUT("/clients/:id", middleware.RequireRole("sales", "manager", "admin"), clientsH.Update)
		v1.DELETE("/clients/:id", middleware.RequireRole("admin"), clientsH.Delete)

		// Sales — sale deletion reverses inventory, manager+ only
		v1.POST("/sales", middleware.RequireRole("sales", "manager", "admin"), salesH.Create)
		v1.GET("/sales", middleware.RequireRole("sales", "manager", "admin"), salesH.List)
		v1.GET("/sales/invoice-available", middleware.RequireRole("sales", "manager", "admin"), salesH.InvoiceAvailable)
		v1.GET("/sales/invoice/:number", middleware.RequireRole("sales", "manager", "admin"), salesH.GetByInvoiceNumber)
		v1.GET("/sales/:id", middleware.RequireRole("sales", "manager", "admin"), salesH.GetByID)
		v1.PUT("/sales/:id", middleware.RequireRole("manager", "admin"), salesH.Update)
		v1.DELETE("/sales/:id", middleware.RequireRole("manager", "admin"), salesH.Delete)

		// Analytics
		analytics := v1.Group("/analytics", middleware.RequireRole("sales", "manager", "admin"))
		{
			analytics.GET("/dashboard", analyticsH.Dashboard)
			analytics.GET("/revenue", analyticsH.Revenue)
			analytics.GET("/monthly-revenue", analyticsH.MonthlyRevenue)
			analytics.GET("/recent-sales", analyticsH.RecentSales)
			analytics.GET("/payment-methods", analyticsH.PaymentMethods)
		}

		// Reports (PDF)
		reports := v1.Group("/reports", middleware.RequireRole("manager", "admin"))
		{
			reports.GET("/invoice/:id", reportsH.Invoice)
			reports.GET("/inventory", reportsH.Inventory)
			reports.GET("/sales", reportsH.Sales)
		}

		// Settings — everyone reads, admin writes
		v1.GET("/settings", middleware.RequireRole("sales", "manager", "admin"), settingsH.List)
		v1.GET("/settings/:key", middleware.RequireRole("sales", "manager", "admin"), settingsH.Get)
		v1.PUT("/settings/:key", middleware.RequireRole("admin"), settingsH.Update)

		// Admin accounts
		admins := v1.Group("/admins", middleware.RequireRole("admin"))
		{
			admins.POST("", adminsH.Create)
			admins.GET("", adminsH.List)
			admins.PUT("/:id", adminsH.Update)
			admins.DELETE("/:id", adminsH.Deactivate)
			admins.PATCH("/:id/reactivate", adminsH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
