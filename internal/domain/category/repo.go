package category

import (
	"context"

	"estoque/internal/core/id"
)

// Repository defines the interface for Category persistence.
type Repository interface {
	// Create inserts a new category.
	Create(ctx context.Context, c *Category) error

	// Update modifies an existing category with optimistic locking.
	Update(ctx context.Context, c *Category) error

	// Delete removes a category. The schema cascades to owned products, so
	// callers must run the empty-category guard first.
	Delete(ctx context.Context, categoryID id.ID) error

	// GetByID retrieves a category by ID.
	GetByID(ctx context.Context, categoryID id.ID) (*Category, error)

	// GetForUpdate retrieves a category with a row lock.
	GetForUpdate(ctx context.Context, categoryID id.ID) (*Category, error)

	// List retrieves all categories ordered by name.
	List(ctx context.Context) ([]*Category, error)

	// ExistsByName checks the case-insensitive name uniqueness invariant,
	// ignoring excludeID (pass id.Nil() for creation).
	ExistsByName(ctx context.Context, name string, excludeID id.ID) (bool, error)

	// Count counts all categories.
	Count(ctx context.Context) (int, error)
}
