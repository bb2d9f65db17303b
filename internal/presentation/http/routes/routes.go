package routes

import (
	"time"

	"github.com/ancarat/orderdesk/internal/config"
	domainRepo "github.com/ancarat/orderdesk/internal/domain/repository"
	"github.com/ancarat/orderdesk/internal/presentation/http/handler"
	"github.com/ancarat/orderdesk/internal/presentation/http/middleware"
	"github.com/ancarat/orderdesk/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Order    *handler.OrderHandler
	Catalog  *handler.CatalogHandler
	User     *handler.UserHandler
	Settings *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)

	// Catalog and reference data
	catalog := protected.Group("/catalog")
	{
		catalog.GET("/products", h.Catalog.ListProducts)
		catalog.GET("/agents", h.Catalog.ListAgents)
	}

	// Order submission requires an idempotency key so a retried request
	// replays the response instead of appending a second ledger row.
	idem := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})
	orders := protected.Group("/orders")
	{
		orders.POST("/sell", idem, h.Order.SubmitSell)
		orders.POST("/buyback", idem, h.Order.SubmitBuyBack)
	}

	// Admin routes
	admin := protected.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		users := admin.Group("/users")
		{
			users.GET("", h.User.List)
			users.POST("", h.User.Create)
			users.DELETE("/:id", h.User.Delete)
		}

		admin.GET("/settings", h.Settings.Get)
		admin.PUT("/settings", h.Settings.Update)
	}
}
