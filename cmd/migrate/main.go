// Package main applies database migrations.
package main

import (
	"context"
	"fmt"
	"os"

	"estoque/internal/config"
	"estoque/internal/infrastructure/storage/postgres"
	"estoque/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running migrate: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.URL))
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if len(os.Args) > 1 && os.Args[1] == "status" {
		return postgres.MigrateStatus(pool.Unwrap())
	}

	log.Info("starting database migration")

	if err := postgres.Migrate(pool.Unwrap()); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.Info("database migration completed successfully")

	return nil
}
