// Package main is the entry point for the estoque API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estoque/internal/config"
	"estoque/internal/domain/category"
	"estoque/internal/domain/ledger"
	"estoque/internal/domain/product"
	"estoque/internal/domain/report"
	v1 "estoque/internal/infrastructure/http/v1"
	"estoque/internal/infrastructure/storage/postgres"
	"estoque/internal/infrastructure/storage/postgres/category_repo"
	"estoque/internal/infrastructure/storage/postgres/ledger_repo"
	"estoque/internal/infrastructure/storage/postgres/product_repo"
	"estoque/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting estoque server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.URL)
	poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	poolCfg.MinConns = int32(cfg.Database.MinConns)

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Audit trail ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Repositories ---
	productRepo := product_repo.NewRepo(txManager)
	categoryRepo := category_repo.NewRepo(txManager)
	movementRepo := ledger_repo.NewRepo(txManager)

	// --- Services ---
	productService := product.NewService(productRepo, txManager, auditService)
	categoryService := category.NewService(categoryRepo, productRepo, txManager, auditService)
	ledgerService := ledger.NewService(productRepo, movementRepo, txManager)
	reportService := report.NewService(productRepo, categoryRepo)

	// Optional CEL alert rule, e.g. ALERT_RULE='stock < min_stock * 2'
	if expr := os.Getenv("ALERT_RULE"); expr != "" {
		rule, err := product.NewRuleNotifier("env_rule", expr)
		if err != nil {
			log.Fatalw("invalid ALERT_RULE expression", "rule", expr, "error", err)
		}
		ledgerService.RegisterObserver(rule)
		log.Infow("alert rule registered", "rule", expr)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:       pool,
		Logger:     log,
		Products:   productService,
		Categories: categoryService,
		Ledger:     ledgerService,
		Reports:    reportService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
