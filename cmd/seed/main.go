// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"estoque/internal/domain/category"
	"estoque/internal/domain/ledger"
	"estoque/internal/domain/product"
	"estoque/internal/infrastructure/storage/postgres"
	"estoque/internal/infrastructure/storage/postgres/category_repo"
	"estoque/internal/infrastructure/storage/postgres/ledger_repo"
	"estoque/internal/infrastructure/storage/postgres/product_repo"
	"estoque/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	productRepo := product_repo.NewRepo(txManager)
	categoryRepo := category_repo.NewRepo(txManager)
	movementRepo := ledger_repo.NewRepo(txManager)

	categoryService := category.NewService(categoryRepo, productRepo, txManager, nil)
	productService := product.NewService(productRepo, txManager, nil)
	ledgerService := ledger.NewService(productRepo, movementRepo, txManager)

	if err := seedDemoData(ctx, categoryService, productService, ledgerService, log); err != nil {
		log.Fatalw("failed to seed demo data", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedDemoData(
	ctx context.Context,
	categories *category.Service,
	products *product.Service,
	stock *ledger.Service,
	log *logger.Logger,
) error {
	drinks, err := categories.Create(ctx, "Bebidas", "Drinks and beverages")
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	food, err := categories.Create(ctx, "Alimentos", "Food products")
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	log.Infow("categories created", "count", 2)

	seedProducts := []product.CreateInput{
		{
			Name:       "Coffee 500g",
			Price:      decimal.NewFromFloat(12.90),
			Stock:      40,
			MinStock:   10,
			CategoryID: &drinks.ID,
			Type:       product.TypeRegular,
		},
		{
			Name:       "Orange Juice 1L",
			Price:      decimal.NewFromFloat(6.50),
			Stock:      8,
			MinStock:   12,
			CategoryID: &drinks.ID,
			Type:       product.TypePerishable,
		},
		{
			Name:       "Rice 5kg",
			Price:      decimal.NewFromFloat(22.00),
			Stock:      0,
			MinStock:   5,
			CategoryID: &food.ID,
			Type:       product.TypeRegular,
		},
	}

	for _, in := range seedProducts {
		created, err := products.Create(ctx, in)
		if err != nil {
			return fmt.Errorf("create product %q: %w", in.Name, err)
		}

		// A small movement history so reports have something to show
		if created.Stock > 0 {
			if _, err := stock.RemoveStock(ctx, created.ID, 1, "seed: initial sale"); err != nil {
				return fmt.Errorf("seed movement for %q: %w", in.Name, err)
			}
		}
	}

	log.Infow("products created", "count", len(seedProducts))

	return nil
}
