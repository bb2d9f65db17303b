package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ancarat/orderdesk/internal/application/service"
	"github.com/ancarat/orderdesk/internal/config"
	"github.com/ancarat/orderdesk/internal/domain/ledger"
	"github.com/ancarat/orderdesk/internal/domain/repository"
	"github.com/ancarat/orderdesk/internal/infrastructure/database"
	"github.com/ancarat/orderdesk/internal/infrastructure/feed"
	infraRepo "github.com/ancarat/orderdesk/internal/infrastructure/repository"
	"github.com/ancarat/orderdesk/internal/infrastructure/sheets"
	"github.com/ancarat/orderdesk/internal/infrastructure/workbook"
	"github.com/ancarat/orderdesk/internal/presentation/http/handler"
	"github.com/ancarat/orderdesk/internal/presentation/http/routes"
	"github.com/ancarat/orderdesk/pkg/notify"
	"github.com/ancarat/orderdesk/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the default admin account
	if err := database.SeedDefaultAdmin(db, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Printf("Warning: Failed to seed default admin: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := infraRepo.NewUserRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)

	// Expired idempotency keys only waste table space; sweep them hourly.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Failed to clean up idempotency keys: %v", err)
			}
		}
	}()

	// Runtime settings: hot-swappable outside production
	settingsService := service.NewSettingsService(cfg.Ledger.Settings, cfg.App.Env)
	settingsFn := func() config.Settings { return settingsService.Current() }

	// Ledger schema and backend
	schema, err := ledger.ForVariant(ledger.Variant(cfg.Ledger.SchemaVariant))
	if err != nil {
		log.Fatalf("Invalid LEDGER_SCHEMA: %v", err)
	}

	var store repository.TabularStore
	var refStore repository.ReferenceStore

	switch cfg.Ledger.Backend {
	case "workbook":
		log.Printf("Using workbook ledger backend at %s", cfg.Ledger.WorkbookPath)
		store = workbook.NewStore(cfg.Ledger.WorkbookPath)
		// No reference store: agents degrade to walk-in, delivery dates stay blank.
	default:
		client, err := sheets.NewClient(context.Background(), cfg.Ledger.CredentialsJSON, settingsFn)
		if err != nil {
			log.Fatalf("Failed to initialize spreadsheet client: %v", err)
		}
		store = client
		refStore = client
	}

	// Price feed
	priceFeed := feed.NewHTTPFeed(func() string { return settingsService.Current().ProductFeedURL })

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(priceFeed, cfg.Ledger.CatalogCacheTTL)
	agentService := service.NewAgentService(refStore, settingsFn)
	deliveryService := service.NewDeliveryService(refStore, settingsFn)
	resolver := service.NewSegmentResolver(store, schema)
	orderService := service.NewOrderService(
		agentService,
		catalogService,
		deliveryService,
		resolver,
		store,
		schema,
		cfg.Ledger.Location(),
	)

	// Discord notifier (best effort)
	notifier := notify.NewDiscordNotifier(cfg.Notify.DiscordWebhookURL)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Order:    handler.NewOrderHandler(orderService, notifier),
		Catalog:  handler.NewCatalogHandler(catalogService, agentService),
		User:     handler.NewUserHandler(userService),
		Settings: handler.NewSettingsHandler(settingsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
