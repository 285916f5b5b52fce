package router

import (
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/config"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/handler"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/middleware"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/storage"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// New returns a configured Gin engine over the given services.
// Dependency graph: Handler ← Service ← Repository ← Storage
func New(cfg *config.Config, st storage.Storage, rdb *redis.Client, svcs *Services) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(svcs.Auth)
	inventoryH := handler.NewInventoryHandler(svcs.Inventory)
	ordersH := handler.NewOrderHandler(svcs.Orders)
	vendorsH := handler.NewVendorHandler(svcs.Vendors)

	adminOnly := middleware.RequireRole(model.RoleAdmin)
	salesmanOnly := middleware.RequireRole(model.RoleSalesman)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(st, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	loginLimit := middleware.LoginRateLimiter()
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", loginLimit, authH.Register)
		auth.POST("/login", loginLimit, authH.Login)
	}

	// Protected routes; both roles unless declared per-endpoint
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret, svcs.Auth))
	{
		v1.POST("/auth/logout", authH.Logout)
		v1.GET("/auth/session", authH.Session)

		inv := v1.Group("/inventory")
		{
			inv.GET("", inventoryH.ListItems)
			inv.POST("", adminOnly, inventoryH.CreateItem)
			inv.GET("/summary", inventoryH.Summary)
			inv.GET("/movements", inventoryH.ListMovements)
			inv.GET("/export", adminOnly, inventoryH.Export)
			inv.GET("/:id", inventoryH.GetItem)
			inv.DELETE("/:id", adminOnly, inventoryH.RemoveItem)
			inv.POST("/:id/stock", adminOnly, inventoryH.UpdateStock)
		}

		v1.GET("/transfers", inventoryH.ListTransfers)
		v1.POST("/transfers", inventoryH.CreateTransfer)
		v1.PATCH("/transfers/:id/status", adminOnly, inventoryH.UpdateTransferStatus)

		v1.GET("/alerts", inventoryH.ListAlerts)
		v1.POST("/alerts/:id/acknowledge", adminOnly, inventoryH.AcknowledgeAlert)

		orders := v1.Group("/orders")
		{
			orders.GET("", ordersH.List)
			orders.POST("", salesmanOnly, ordersH.Create)
			orders.GET("/:id", ordersH.Get)
			orders.PUT("/:id/pricing", adminOnly, ordersH.SetPricing)
			orders.PUT("/:id/adjustment", salesmanOnly, ordersH.Adjust)
			orders.POST("/:id/approve", adminOnly, ordersH.Approve)
			orders.POST("/:id/reject", adminOnly, ordersH.Reject)
		}

		vendors := v1.Group("/vendors")
		{
			vendors.GET("", vendorsH.List)
			vendors.POST("", vendorsH.Create)
			vendors.GET("/:id", vendorsH.Get)
		}
	}

	// Swagger UI, outside production only
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
