// Package category provides the Category aggregate: a named grouping of
// products with derived stock-health counts.
package category

import (
	"context"

	"estoque/internal/core/apperror"
	"estoque/internal/core/entity"
	"estoque/internal/domain/product"
)

// Category groups products. Name is unique case-insensitively.
type Category struct {
	entity.Base

	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}

// New creates a Category with required fields.
func New(name, description string) *Category {
	return &Category{
		Base:        entity.NewBase(),
		Name:        name,
		Description: description,
	}
}

// Validate implements entity.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewInvalidCategoryData("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Health holds the derived stock-health counts for a category's products.
// The three buckets partition the products: every product falls in exactly
// one, low stock excludes the out-of-stock case.
type Health struct {
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
	Normal     int `json:"normal"`
}

// CountHealth buckets the owned products by stock status.
func CountHealth(products []*product.Product) Health {
	var h Health
	for _, p := range products {
		switch p.Status() {
		case product.StatusOutOfStock:
			h.OutOfStock++
		case product.StatusLowStock:
			h.LowStock++
		default:
			h.Normal++
		}
	}
	return h
}
