package report

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoque/internal/core/id"
	"estoque/internal/domain/category"
	"estoque/internal/domain/product"
)

type fakeProductRepo struct {
	product.Repository

	products []*product.Product
}

func (r *fakeProductRepo) List(ctx context.Context) ([]*product.Product, error) {
	return r.products, nil
}

func (r *fakeProductRepo) ListByCategory(ctx context.Context, categoryID id.ID) ([]*product.Product, error) {
	var out []*product.Product
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Count(ctx context.Context) (int, error) {
	return len(r.products), nil
}

type fakeCategoryRepo struct {
	category.Repository

	categories []*category.Category
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]*category.Category, error) {
	return r.categories, nil
}

func (r *fakeCategoryRepo) Count(ctx context.Context) (int, error) {
	return len(r.categories), nil
}

func testProduct(name string, stock, minStock int, categoryID *id.ID) *product.Product {
	p := product.New(name, "", decimal.NewFromInt(1))
	p.Stock = stock
	p.MinStock = minStock
	p.CategoryID = categoryID
	return p
}

func TestGetDashboard(t *testing.T) {
	products := &fakeProductRepo{products: []*product.Product{
		testProduct("empty", 0, 5, nil),
		testProduct("low", 3, 5, nil),
		testProduct("boundary", 5, 5, nil),
		testProduct("fine", 20, 5, nil),
	}}
	categories := &fakeCategoryRepo{categories: []*category.Category{
		category.New("Bebidas", ""),
	}}
	svc := NewService(products, categories)

	d, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, d.TotalProducts)
	assert.Equal(t, 1, d.TotalCategories)
	// Zero-stock products appear in both listings
	assert.Equal(t, 3, d.LowStockCount)
	assert.Equal(t, 1, d.OutOfStockCount)
	assert.Len(t, d.LowStockProducts, 3)
	assert.Len(t, d.OutOfStockProducts, 1)
	assert.Equal(t, "empty", d.OutOfStockProducts[0].Name)
}

func TestGetDashboard_Empty(t *testing.T) {
	svc := NewService(&fakeProductRepo{}, &fakeCategoryRepo{})

	d, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, d.TotalProducts)
	assert.NotNil(t, d.LowStockProducts)
	assert.NotNil(t, d.OutOfStockProducts)
}

func TestGetStockReport_Partition(t *testing.T) {
	products := &fakeProductRepo{products: []*product.Product{
		testProduct("empty", 0, 5, nil),
		testProduct("low", 5, 5, nil),
		testProduct("fine", 20, 5, nil),
	}}
	svc := NewService(products, &fakeCategoryRepo{})

	r, err := svc.GetStockReport(context.Background())
	require.NoError(t, err)

	require.Len(t, r.OutOfStock, 1)
	require.Len(t, r.LowStock, 1)
	require.Len(t, r.Normal, 1)
	assert.Equal(t, "empty", r.OutOfStock[0].Name)
	assert.Equal(t, "low", r.LowStock[0].Name)
	assert.Equal(t, "fine", r.Normal[0].Name)
}

func TestGetCategoryHealth(t *testing.T) {
	bebidas := category.New("Bebidas", "")
	alimentos := category.New("Alimentos", "")
	products := &fakeProductRepo{products: []*product.Product{
		testProduct("juice", 0, 5, &bebidas.ID),
		testProduct("water", 30, 5, &bebidas.ID),
		testProduct("rice", 4, 5, &alimentos.ID),
		testProduct("loose", 10, 5, nil),
	}}
	categories := &fakeCategoryRepo{categories: []*category.Category{bebidas, alimentos}}
	svc := NewService(products, categories)

	rows, err := svc.GetCategoryHealth(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Bebidas", rows[0].Category.Name)
	assert.Equal(t, category.Health{OutOfStock: 1, Normal: 1}, rows[0].Health)
	assert.Equal(t, category.Health{LowStock: 1}, rows[1].Health)
}
