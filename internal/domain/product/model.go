// Package product provides the Product aggregate: stock ownership, the
// mutation protocol for stock changes, and observer notification.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"estoque/internal/core/apperror"
	"estoque/internal/core/entity"
	"estoque/internal/core/id"
)

// StockStatus classifies a product's stock health.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out_of_stock" // stock == 0
	StatusLowStock   StockStatus = "low_stock"    // 0 < stock <= min_stock
	StatusNormal     StockStatus = "normal"       // stock > min_stock
)

// MovementType defines how a stock change is interpreted.
type MovementType string

const (
	// MovementIn adds quantity to current stock.
	MovementIn MovementType = "IN"

	// MovementOut subtracts quantity from current stock.
	MovementOut MovementType = "OUT"

	// MovementAdjustment sets stock to the quantity as an absolute target level.
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// Product is the aggregate owning current stock and its mutation rules.
type Product struct {
	entity.Base

	// Name is the display name (unique per category, case-insensitive)
	Name string `db:"name" json:"name"`

	// Description is free text
	Description string `db:"description" json:"description"`

	// Price is the unit price, must be positive
	Price decimal.Decimal `db:"price" json:"price"`

	// Stock is the current on-hand quantity, never negative
	Stock int `db:"stock" json:"stock"`

	// MinStock is the low-stock threshold
	MinStock int `db:"min_stock" json:"minStock"`

	// CategoryID is an optional reference to the owning category
	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`

	// observers is the per-instance notification registry. It is transient
	// state owned by this value (never shared between instances) and is not
	// persisted.
	observers []Observer
}

// New creates a Product with required fields. Callers usually go through the
// factory (CreateProduct) which applies type-specific defaults.
func New(name, description string, price decimal.Decimal) *Product {
	return &Product{
		Base:        entity.NewBase(),
		Name:        name,
		Description: description,
		Price:       price,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewInvalidProductData("name is required").
			WithDetail("field", "name")
	}
	if !p.Price.IsPositive() {
		return apperror.NewInvalidProductData("price must be positive").
			WithDetail("field", "price").
			WithDetail("value", p.Price.String())
	}
	if p.Stock < 0 {
		return apperror.NewInvalidProductData("stock cannot be negative").
			WithDetail("field", "stock")
	}
	if p.MinStock < 0 {
		return apperror.NewInvalidProductData("min stock cannot be negative").
			WithDetail("field", "minStock")
	}
	return nil
}

// LowStock reports whether current stock is at or below the threshold.
// The zero case counts as low stock too.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// Status derives the stock-health bucket. Exactly one of the three statuses
// applies to any product.
func (p *Product) Status() StockStatus {
	switch {
	case p.Stock == 0:
		return StatusOutOfStock
	case p.Stock <= p.MinStock:
		return StatusLowStock
	default:
		return StatusNormal
	}
}

// StockChange describes one applied stock mutation: the before/after snapshot
// and the magnitude recorded in the ledger.
type StockChange struct {
	Type     MovementType
	Quantity int // absolute magnitude of the change
	Previous int
	New      int
}

// ApplyStockChange validates and applies a stock mutation in memory.
//
// Semantics by movement type:
//   - IN: quantity is a non-negative delta added to stock.
//   - OUT: quantity is a non-negative delta subtracted from stock; fails with
//     InsufficientStock if the result would go negative.
//   - ADJUSTMENT: quantity is the target absolute stock level.
//
// On failure the product is left untouched. The returned StockChange records
// the actual magnitude of the change; for ADJUSTMENT that is the distance
// between the previous and the target level, not the raw target.
func (p *Product) ApplyStockChange(movementType MovementType, quantity int) (StockChange, error) {
	previous := p.Stock

	var newStock int
	switch movementType {
	case MovementIn:
		if quantity < 0 {
			return StockChange{}, apperror.NewInvalidMovementData("quantity must be non-negative").
				WithDetail("quantity", quantity)
		}
		newStock = previous + quantity

	case MovementOut:
		if quantity < 0 {
			return StockChange{}, apperror.NewInvalidMovementData("quantity must be non-negative").
				WithDetail("quantity", quantity)
		}
		if previous-quantity < 0 {
			return StockChange{}, apperror.NewInsufficientStock(p.ID.String(), quantity, previous)
		}
		newStock = previous - quantity

	case MovementAdjustment:
		if quantity < 0 {
			return StockChange{}, apperror.NewInvalidMovementData("target stock level must be non-negative").
				WithDetail("quantity", quantity)
		}
		newStock = quantity

	default:
		return StockChange{}, apperror.NewInvalidMovementType(string(movementType))
	}

	p.Stock = newStock

	magnitude := newStock - previous
	if magnitude < 0 {
		magnitude = -magnitude
	}
	if movementType != MovementAdjustment {
		magnitude = quantity
	}

	return StockChange{
		Type:     movementType,
		Quantity: magnitude,
		Previous: previous,
		New:      newStock,
	}, nil
}
