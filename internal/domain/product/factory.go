package product

import (
	"github.com/shopspring/decimal"

	"estoque/internal/core/apperror"
	"estoque/internal/core/id"
)

// Type selects the creation policy applied to a new product.
type Type string

const (
	TypeRegular    Type = "regular"
	TypePerishable Type = "perishable"
	TypeDigital    Type = "digital"
)

const (
	// DefaultPerishableMinStock is applied when a perishable product is
	// created without an explicit minimum threshold.
	DefaultPerishableMinStock = 5

	// DigitalStock is the fixed stock level for digital products, which are
	// treated as unconstrained supply.
	DigitalStock = 999999
)

// CreateInput carries the caller-supplied fields for product creation.
type CreateInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	MinStock    int
	CategoryID  *id.ID
	Type        Type
}

// Create builds a new Product applying the type-specific defaulting rules:
//
//   - perishable: a zero MinStock (caller did not override) becomes
//     DefaultPerishableMinStock.
//   - digital: stock and threshold are forced regardless of caller input.
//   - regular (the default): fields are taken as given.
//
// The two default notifiers are registered on the returned instance.
func Create(in CreateInput) (*Product, error) {
	if in.Name == "" || !in.Price.IsPositive() {
		return nil, apperror.NewInvalidProductData("invalid data for product creation").
			WithDetail("name", in.Name).
			WithDetail("price", in.Price.String())
	}

	p := New(in.Name, in.Description, in.Price)
	p.Stock = in.Stock
	p.MinStock = in.MinStock
	p.CategoryID = in.CategoryID

	switch in.Type {
	case TypePerishable:
		if p.MinStock == 0 {
			p.MinStock = DefaultPerishableMinStock
		}
	case TypeDigital:
		p.Stock = DigitalStock
		p.MinStock = 0
	default:
		// regular: no overrides
	}

	p.AddObserver(NewLowStockNotifier())
	p.AddObserver(NewOutOfStockNotifier())

	return p, nil
}
