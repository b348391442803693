package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/niorc/backend/internal/application/billing"
	catalogapp "github.com/niorc/backend/internal/application/catalog"
	crmapp "github.com/niorc/backend/internal/application/crm"
	identityapp "github.com/niorc/backend/internal/application/identity"
	inventoryapp "github.com/niorc/backend/internal/application/inventory"
	loyaltyapp "github.com/niorc/backend/internal/application/loyalty"
	notifyapp "github.com/niorc/backend/internal/application/notify"
	opsapp "github.com/niorc/backend/internal/application/ops"
	reportapp "github.com/niorc/backend/internal/application/report"
	"github.com/niorc/backend/internal/domain/billing"
	"github.com/niorc/backend/internal/domain/catalog"
	"github.com/niorc/backend/internal/domain/notify"
	"github.com/niorc/backend/internal/infrastructure/auth"
	"github.com/niorc/backend/internal/infrastructure/cache"
	"github.com/niorc/backend/internal/infrastructure/config"
	"github.com/niorc/backend/internal/infrastructure/external"
	"github.com/niorc/backend/internal/infrastructure/logger"
	"github.com/niorc/backend/internal/infrastructure/persistence"
	"github.com/niorc/backend/internal/infrastructure/persistence/vendorscope"
	"github.com/niorc/backend/internal/interfaces/http/handler"
	"github.com/niorc/backend/internal/interfaces/http/middleware"
	"github.com/niorc/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting vendor backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := persistence.AutoMigrate(db.DB); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	vendorscope.RegisterCallbacks(db.DB, persistence.OwnedTables()...)
	log.Info("Database ready")

	// Repositories
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	menuItemRepo := persistence.NewGormMenuItemRepository(db.DB)
	stockRepo := persistence.NewGormInventoryRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	rewardRepo := persistence.NewGormRewardRepository(db.DB)
	pointRepo := persistence.NewGormPointRepository(db.DB)
	tableRepo := persistence.NewGormTableRepository(db.DB)
	staffRepo := persistence.NewGormStaffRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	txManager := persistence.NewTxManager(db)

	// Feature flag cache, Redis-backed when configured
	var flagCache cache.FlagCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisFlagCache(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		flagCache = redisCache
		log.Info("Redis flag cache enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		flagCache = cache.NewInMemoryFlagCache()
	}

	// Outbound collaborators stay nil when not configured; services
	// answer with an unavailable error in that case.
	var renderer billing.Renderer
	if cfg.External.RendererURL != "" {
		renderer = external.NewHTTPRenderer(cfg.External.RendererURL)
	}
	var messenger notify.Messenger
	if cfg.External.MessengerURL != "" {
		messenger = external.NewHTTPMessenger(cfg.External.MessengerURL, cfg.External.MessengerKey)
	}
	var extractor catalog.MenuExtractor
	if cfg.External.ExtractorURL != "" {
		extractor = external.NewHTTPExtractor(cfg.External.ExtractorURL, cfg.External.ExtractorKey)
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(profileRepo, jwtService, log)
	onboardingService := identityapp.NewOnboardingService(profileRepo, notificationRepo, log)
	profileService := identityapp.NewProfileService(profileRepo, flagCache, log)
	customerService := crmapp.NewCustomerService(customerRepo, log)
	menuService := catalogapp.NewMenuService(menuItemRepo, stockRepo, extractor, log)
	inventoryService := inventoryapp.NewInventoryService(stockRepo, notificationRepo, txManager, log)
	billingService := billingapp.NewBillingService(billRepo, menuItemRepo, stockRepo, customerRepo, pointRepo, renderer, txManager, log)
	loyaltyService := loyaltyapp.NewLoyaltyService(rewardRepo, pointRepo, customerRepo, txManager, log)
	opsService := opsapp.NewOpsService(tableRepo, staffRepo, expenseRepo, log)
	notificationService := notifyapp.NewNotificationService(notificationRepo, messenger, log)
	reportService := reportapp.NewReportService(billRepo, customerRepo, expenseRepo, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	adminHandler := handler.NewAdminHandler(onboardingService, profileService)
	customerHandler := handler.NewCustomerHandler(customerService)
	menuHandler := handler.NewMenuHandler(menuService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	billHandler := handler.NewBillHandler(billingService)
	loyaltyHandler := handler.NewLoyaltyHandler(loyaltyService)
	opsHandler := handler.NewOpsHandler(opsService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(logger.GinRequestID(log))
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithOrigins(cfg.HTTP.CORSAllowOrigins))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine,
		middleware.JWTAuth(jwtService),
		middleware.RequireApproved(profileRepo),
		middleware.RequireAdmin(profileRepo),
		router.WithAPIVersion("v1"),
	)
	r.Public(authHandler, systemHandler)
	r.Secured(router.RegistrarFunc(authHandler.RegisterSecuredRoutes), profileHandler)
	r.Approved(
		customerHandler,
		menuHandler,
		inventoryHandler,
		billHandler,
		loyaltyHandler,
		opsHandler,
		notificationHandler,
		reportHandler,
	)
	r.Admin(adminHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
