package dto

import (
	"estoque/internal/domain/report"
)

// DashboardResponse summarizes the inventory.
type DashboardResponse struct {
	TotalProducts      int               `json:"totalProducts"`
	TotalCategories    int               `json:"totalCategories"`
	LowStockCount      int               `json:"lowStockCount"`
	OutOfStockCount    int               `json:"outOfStockCount"`
	LowStockProducts   []ProductResponse `json:"lowStockProducts"`
	OutOfStockProducts []ProductResponse `json:"outOfStockProducts"`
}

// FromDashboard creates DashboardResponse.
func FromDashboard(d *report.DashboardData) DashboardResponse {
	return DashboardResponse{
		TotalProducts:      d.TotalProducts,
		TotalCategories:    d.TotalCategories,
		LowStockCount:      d.LowStockCount,
		OutOfStockCount:    d.OutOfStockCount,
		LowStockProducts:   FromProducts(d.LowStockProducts),
		OutOfStockProducts: FromProducts(d.OutOfStockProducts),
	}
}

// StockReportResponse buckets all products by stock status.
type StockReportResponse struct {
	Normal     []ProductResponse `json:"normal"`
	LowStock   []ProductResponse `json:"lowStock"`
	OutOfStock []ProductResponse `json:"outOfStock"`
}

// FromStockReport creates StockReportResponse.
func FromStockReport(r *report.StockReport) StockReportResponse {
	return StockReportResponse{
		Normal:     FromProducts(r.Normal),
		LowStock:   FromProducts(r.LowStock),
		OutOfStock: FromProducts(r.OutOfStock),
	}
}

// CategoryHealthRow pairs a category with its health counts.
type CategoryHealthRow struct {
	Category CategoryResponse    `json:"category"`
	Health   StockHealthResponse `json:"health"`
}

// FromCategoryHealth creates the per-category health rows.
func FromCategoryHealth(rows []report.CategoryHealth) []CategoryHealthRow {
	out := make([]CategoryHealthRow, len(rows))
	for i, row := range rows {
		out[i] = CategoryHealthRow{
			Category: FromCategory(row.Category),
			Health:   FromHealth(row.Category.ID.String(), row.Health),
		}
	}
	return out
}
