package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myStorefront/app/echo-server/router"
	"myStorefront/business/category"
	"myStorefront/business/compare"
	"myStorefront/business/personalization"
	"myStorefront/business/product"
	"myStorefront/business/recommendation"
	"myStorefront/internal/middleware"
	memoryRepo "myStorefront/internal/repository/memory"
	psqlRepo "myStorefront/internal/repository/postgres"
	redisRepo "myStorefront/internal/repository/redis"
	"myStorefront/internal/rest"
	"myStorefront/pkg/config"
	"myStorefront/pkg/database"
	redisClient "myStorefront/pkg/database/redis"
	"myStorefront/pkg/logger"
	"myStorefront/pkg/metrics"
	"myStorefront/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting storefront personalization", "version", cfg.App.Version)

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	logger.Info("Database connected successfully")

	var rdb *redis.Client
	if cfg.Personalization.SnapshotBackend == config.SnapshotBackendRedis {
		rdb, err = redisClient.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", err)
		}
		defer redisClient.CloseRedisClient(rdb)
		logger.Info("Redis connected successfully")
	}

	// Init repo
	productsRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)

	var (
		snapshotStore personalization.SnapshotStore
		compareRepo   compare.CompareRepository
	)
	switch cfg.Personalization.SnapshotBackend {
	case config.SnapshotBackendRedis:
		snapshotStore = redisRepo.NewSessionRepository(rdb, cfg.Personalization.SessionTTL)
		compareRepo = redisRepo.NewCompareRepository(rdb)
	case config.SnapshotBackendPostgres:
		snapshotStore = psqlRepo.NewSessionRepository(db)
		compareRepo = psqlRepo.NewCompareRepository(db)
	default:
		snapshotStore = memoryRepo.NewSessionRepository(cfg.Personalization.SessionTTL)
		compareRepo = memoryRepo.NewCompareRepository()
	}
	logger.Info("Session store selected", "backend", cfg.Personalization.SnapshotBackend)

	// Init service
	persCfg := personalization.DefaultConfig()
	persCfg.Retention = personalization.RetentionPolicy{
		MaxAge:    cfg.Personalization.RetentionMaxAge,
		MaxEvents: cfg.Personalization.RetentionMaxEvents,
	}
	persCfg.MaxLiveSessions = cfg.Personalization.MaxLiveSessions

	productService := product.NewProductService(productsRepo, categoryRepo)
	categoryService := category.NewCategoryService(categoryRepo)
	compareService := compare.NewCompareService(compareRepo, productsRepo, cfg.Personalization.CompareLimit)
	recommendationService := recommendation.NewService(productsRepo, compareRepo, recommendation.NoopEligibilityChecker{}, cfg.Personalization.DefaultTopN)
	personalizationService := personalization.NewService(snapshotStore, persCfg, time.Now)

	// Init handler
	productHandler := rest.NewProductHandler(productService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	compareHandler := rest.NewCompareHandler(compareService)
	recommendationHandler := rest.NewRecommendationHandler(recommendationService)
	personalizationHandler := rest.NewPersonalizationHandler(personalizationService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.HeaderTraceID, "X-Page"},
		ExposeHeaders: []string{middleware.HeaderTraceID},
	}))

	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	router.SetupOpsRoutes(e)
	api := e.Group("/api/v1")
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupCategoryRoutes(api, categoryHandler, authRequired)
	router.SetCompareRoutes(api, compareHandler, authRequired)
	router.SetRecommendationRoutes(api, recommendationHandler, authRequired)
	router.SetPersonalizationRoutes(api, personalizationHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}
