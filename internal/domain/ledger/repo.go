package ledger

import (
	"context"

	"estoque/internal/core/id"
)

// Repository defines persistence for the append-only movement ledger.
// There are deliberately no update or delete operations.
type Repository interface {
	// Create appends one movement. Must run inside the same transaction as
	// the product stock update.
	Create(ctx context.Context, m *Movement) error

	// ListByProduct retrieves a product's movements, newest first.
	ListByProduct(ctx context.Context, productID id.ID) ([]*Movement, error)
}
