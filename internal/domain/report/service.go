// Package report builds read-only snapshots for dashboards and exports.
// It imposes no contract back onto the core beyond read access.
package report

import (
	"context"
	"fmt"

	"estoque/internal/domain/category"
	"estoque/internal/domain/product"
)

// DashboardData summarizes the inventory for the dashboard view.
type DashboardData struct {
	TotalProducts      int                `json:"totalProducts"`
	TotalCategories    int                `json:"totalCategories"`
	LowStockCount      int                `json:"lowStockCount"`
	OutOfStockCount    int                `json:"outOfStockCount"`
	LowStockProducts   []*product.Product `json:"lowStockProducts"`
	OutOfStockProducts []*product.Product `json:"outOfStockProducts"`
}

// StockReport buckets all products by stock status. The buckets partition
// the products: no overlap, no gap.
type StockReport struct {
	Normal     []*product.Product `json:"normal"`
	LowStock   []*product.Product `json:"lowStock"`
	OutOfStock []*product.Product `json:"outOfStock"`
}

// CategoryHealth pairs a category with its derived stock-health counts.
type CategoryHealth struct {
	Category *category.Category `json:"category"`
	Health   category.Health    `json:"health"`
}

// Service derives report snapshots by scanning the catalog.
type Service struct {
	products   product.Repository
	categories category.Repository
}

// NewService creates a new report service.
func NewService(products product.Repository, categories category.Repository) *Service {
	return &Service{
		products:   products,
		categories: categories,
	}
}

// GetDashboard builds the dashboard summary.
func (s *Service) GetDashboard(ctx context.Context) (*DashboardData, error) {
	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	totalCategories, err := s.categories.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	all, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	data := &DashboardData{
		TotalProducts:      totalProducts,
		TotalCategories:    totalCategories,
		LowStockProducts:   []*product.Product{},
		OutOfStockProducts: []*product.Product{},
	}
	for _, p := range all {
		if p.Stock == 0 {
			data.OutOfStockProducts = append(data.OutOfStockProducts, p)
		}
		if p.LowStock() {
			// Includes the zero case, matching the low-stock listing.
			data.LowStockProducts = append(data.LowStockProducts, p)
		}
	}
	data.LowStockCount = len(data.LowStockProducts)
	data.OutOfStockCount = len(data.OutOfStockProducts)

	return data, nil
}

// GetStockReport buckets every product into exactly one status group.
func (s *Service) GetStockReport(ctx context.Context) (*StockReport, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	report := &StockReport{
		Normal:     []*product.Product{},
		LowStock:   []*product.Product{},
		OutOfStock: []*product.Product{},
	}
	for _, p := range all {
		switch p.Status() {
		case product.StatusOutOfStock:
			report.OutOfStock = append(report.OutOfStock, p)
		case product.StatusLowStock:
			report.LowStock = append(report.LowStock, p)
		default:
			report.Normal = append(report.Normal, p)
		}
	}

	return report, nil
}

// GetCategoryHealth derives per-category stock-health rows.
func (s *Service) GetCategoryHealth(ctx context.Context) ([]CategoryHealth, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	rows := make([]CategoryHealth, 0, len(categories))
	for _, c := range categories {
		owned, err := s.products.ListByCategory(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("list products for category %s: %w", c.ID, err)
		}
		rows = append(rows, CategoryHealth{
			Category: c,
			Health:   category.CountHealth(owned),
		})
	}

	return rows, nil
}
