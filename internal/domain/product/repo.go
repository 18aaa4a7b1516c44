package product

import (
	"context"

	"estoque/internal/core/id"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	// Create inserts a new product.
	Create(ctx context.Context, p *Product) error

	// Update modifies an existing product with optimistic locking.
	Update(ctx context.Context, p *Product) error

	// Delete removes a product.
	Delete(ctx context.Context, productID id.ID) error

	// GetByID retrieves a product by ID.
	GetByID(ctx context.Context, productID id.ID) (*Product, error)

	// GetForUpdate retrieves a product with a row lock. Must be called inside
	// a transaction; serializes concurrent mutations of the same product.
	GetForUpdate(ctx context.Context, productID id.ID) (*Product, error)

	// List retrieves all products ordered by name.
	List(ctx context.Context) ([]*Product, error)

	// ListByCategory retrieves the products owned by a category.
	ListByCategory(ctx context.Context, categoryID id.ID) ([]*Product, error)

	// ListLowStock retrieves products where stock <= min_stock.
	ListLowStock(ctx context.Context) ([]*Product, error)

	// ExistsByName checks the case-insensitive (name, category) uniqueness
	// invariant, ignoring excludeID (pass id.Nil() for creation).
	ExistsByName(ctx context.Context, name string, categoryID *id.ID, excludeID id.ID) (bool, error)

	// CountByCategory counts products owned by a category.
	CountByCategory(ctx context.Context, categoryID id.ID) (int, error)

	// Count counts all products.
	Count(ctx context.Context) (int, error)
}
