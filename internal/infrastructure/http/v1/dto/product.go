package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"estoque/internal/core/id"
	"estoque/internal/domain/product"
)

// ProductResponse contains product fields plus the derived stock status.
type ProductResponse struct {
	ID          string          `json:"id"`
	Version     int             `json:"version"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"minStock"`
	CategoryID  *string         `json:"categoryId,omitempty"`
	Status      string          `json:"status"`
	LowStock    bool            `json:"lowStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// FromProduct creates ProductResponse from the aggregate.
func FromProduct(p *product.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID.String(),
		Version:     p.Version,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Status:      string(p.Status()),
		LowStock:    p.LowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.CategoryID != nil {
		s := p.CategoryID.String()
		resp.CategoryID = &s
	}
	return resp
}

// FromProducts maps a product slice.
func FromProducts(products []*product.Product) []ProductResponse {
	items := make([]ProductResponse, len(products))
	for i, p := range products {
		items[i] = FromProduct(p)
	}
	return items
}

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"min=0"`
	MinStock    int             `json:"minStock" binding:"min=0"`
	CategoryID  *string         `json:"categoryId"`
	Type        string          `json:"type"`
}

// ToCreateInput converts the request to the factory input.
func (r CreateProductRequest) ToCreateInput() (product.CreateInput, error) {
	in := product.CreateInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		MinStock:    r.MinStock,
		Type:        product.Type(r.Type),
	}
	if r.Type == "" {
		in.Type = product.TypeRegular
	}
	if r.CategoryID != nil && *r.CategoryID != "" {
		parsed, err := id.Parse(*r.CategoryID)
		if err != nil {
			return in, err
		}
		in.CategoryID = &parsed
	}
	return in, nil
}

// UpdateProductRequest for updating products. Nil fields stay unchanged.
// Stock is deliberately absent: stock changes go through the ledger.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	MinStock      *int             `json:"minStock"`
	CategoryID    *string          `json:"categoryId"`
	ClearCategory bool             `json:"clearCategory"`
}
