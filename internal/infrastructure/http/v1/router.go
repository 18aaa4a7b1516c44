// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"estoque/internal/domain/category"
	"estoque/internal/domain/ledger"
	"estoque/internal/domain/product"
	"estoque/internal/domain/report"
	"estoque/internal/infrastructure/http/v1/handlers"
	"estoque/internal/infrastructure/http/v1/middleware"
	"estoque/internal/infrastructure/storage/postgres"
	"estoque/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// Services
	Products   *product.Service
	Categories *category.Service
	Ledger     *ledger.Service
	Reports    *report.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	api := router.Group("/api/v1")
	{
		baseHandler := handlers.NewBaseHandler()

		categoryHandler := handlers.NewCategoryHandler(baseHandler, cfg.Categories)
		categoryHandler.RegisterRoutes(api.Group("/categories"))

		products := api.Group("/products")
		productHandler := handlers.NewProductHandler(baseHandler, cfg.Products)
		productHandler.RegisterRoutes(products)

		// Stock mutations and movement history live under /products too
		stockHandler := handlers.NewStockHandler(baseHandler, cfg.Ledger)
		stockHandler.RegisterRoutes(products)

		reportHandler := handlers.NewReportHandler(baseHandler, cfg.Reports)
		reportHandler.RegisterRoutes(api.Group("/reports"))
	}

	return router
}
