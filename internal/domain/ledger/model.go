// Package ledger provides the immutable stock-movement ledger and the
// transactional stock mutation engine.
package ledger

import (
	"time"

	"estoque/internal/core/id"
	"estoque/internal/domain/product"
)

// Movement is one immutable ledger entry: a stock change with its before and
// after snapshot. Entries are created exactly once per successful mutation,
// atomically with the product's stock update, and are never modified or
// deleted afterwards.
type Movement struct {
	// ID is the primary key (UUIDv7, time-ordered)
	ID id.ID `db:"id" json:"id"`

	// ProductID references the mutated product
	ProductID id.ID `db:"product_id" json:"productId"`

	// Type is the movement kind (IN, OUT, ADJUSTMENT)
	Type product.MovementType `db:"movement_type" json:"movementType"`

	// Quantity is the absolute magnitude of the change
	Quantity int `db:"quantity" json:"quantity"`

	// PreviousStock is the stock level before the mutation
	PreviousStock int `db:"previous_stock" json:"previousStock"`

	// NewStock is the stock level after the mutation
	NewStock int `db:"new_stock" json:"newStock"`

	// Reason is free text, may be empty
	Reason string `db:"reason" json:"reason"`

	// CreatedBy is an optional actor reference (nulled when the actor is removed)
	CreatedBy *id.ID `db:"created_by" json:"createdBy,omitempty"`

	// CreatedAt is the ledger timestamp
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewMovement builds the ledger entry for an applied stock change.
func NewMovement(productID id.ID, change product.StockChange, reason string, createdBy *id.ID) *Movement {
	return &Movement{
		ID:            id.New(),
		ProductID:     productID,
		Type:          change.Type,
		Quantity:      change.Quantity,
		PreviousStock: change.Previous,
		NewStock:      change.New,
		Reason:        reason,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now().UTC(),
	}
}
