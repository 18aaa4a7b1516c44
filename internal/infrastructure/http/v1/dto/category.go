package dto

import (
	"time"

	"estoque/internal/domain/category"
)

// CategoryResponse contains category fields.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromCategory creates CategoryResponse from the aggregate.
func FromCategory(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Version:     c.Version,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateCategoryRequest for creating categories.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest for updating categories. Nil fields stay unchanged.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// StockHealthResponse carries the derived per-category health counts.
type StockHealthResponse struct {
	CategoryID string `json:"categoryId"`
	LowStock   int    `json:"lowStock"`
	OutOfStock int    `json:"outOfStock"`
	Normal     int    `json:"normal"`
}

// FromHealth creates StockHealthResponse.
func FromHealth(categoryID string, h category.Health) StockHealthResponse {
	return StockHealthResponse{
		CategoryID: categoryID,
		LowStock:   h.LowStock,
		OutOfStock: h.OutOfStock,
		Normal:     h.Normal,
	}
}
