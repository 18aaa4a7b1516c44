package category

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoque/internal/core/apperror"
	"estoque/internal/core/id"
	"estoque/internal/core/tx"
	"estoque/internal/domain/product"
)

// --- In-memory fakes ---

type fakeCategoryRepo struct {
	categories map[id.ID]*Category
	deletes    int
}

func newFakeCategoryRepo(categories ...*Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: make(map[id.ID]*Category)}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c *Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, categoryID id.ID) error {
	delete(r.categories, categoryID)
	r.deletes++
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, categoryID id.ID) (*Category, error) {
	c, ok := r.categories[categoryID]
	if !ok {
		return nil, apperror.NewNotFound("category", categoryID.String())
	}
	return c, nil
}

func (r *fakeCategoryRepo) GetForUpdate(ctx context.Context, categoryID id.ID) (*Category, error) {
	return r.GetByID(ctx, categoryID)
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]*Category, error) {
	out := make([]*Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) ExistsByName(ctx context.Context, name string, excludeID id.ID) (bool, error) {
	for _, c := range r.categories {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) Count(ctx context.Context) (int, error) {
	return len(r.categories), nil
}

// fakeProductRepo only implements what the category service touches.
type fakeProductRepo struct {
	product.Repository

	byCategory map[id.ID][]*product.Product
}

func (r *fakeProductRepo) CountByCategory(ctx context.Context, categoryID id.ID) (int, error) {
	return len(r.byCategory[categoryID]), nil
}

func (r *fakeProductRepo) ListByCategory(ctx context.Context, categoryID id.ID) ([]*product.Product, error) {
	return r.byCategory[categoryID], nil
}

func newService(repo *fakeCategoryRepo, products *fakeProductRepo) *Service {
	if products == nil {
		products = &fakeProductRepo{}
	}
	return NewService(repo, products, &tx.Mock{}, nil)
}

func productWithStock(stock, minStock int) *product.Product {
	p := product.New("p", "", decimal.NewFromInt(1))
	p.Stock = stock
	p.MinStock = minStock
	return p
}

// --- Tests ---

func TestCreate(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := newService(repo, nil)

	c, err := svc.Create(context.Background(), "Bebidas", "drinks")
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", c.Name)
	assert.Len(t, repo.categories, 1)
}

func TestCreate_EmptyName(t *testing.T) {
	svc := newService(newFakeCategoryRepo(), nil)

	_, err := svc.Create(context.Background(), "", "")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidCategoryData))
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := newFakeCategoryRepo(New("Bebidas", ""))
	svc := newService(repo, nil)

	_, err := svc.Create(context.Background(), "bebidas", "")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidCategoryData))
	assert.Len(t, repo.categories, 1)
}

func TestUpdate(t *testing.T) {
	c := New("Bebidas", "old")
	repo := newFakeCategoryRepo(c)
	svc := newService(repo, nil)

	name := "Alimentos"
	err := svc.Update(context.Background(), c.ID, UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alimentos", repo.categories[c.ID].Name)
	assert.Equal(t, "old", repo.categories[c.ID].Description)
}

func TestUpdate_DuplicateName(t *testing.T) {
	a := New("Bebidas", "")
	b := New("Alimentos", "")
	svc := newService(newFakeCategoryRepo(a, b), nil)

	name := "ALIMENTOS"
	err := svc.Update(context.Background(), a.ID, UpdateInput{Name: &name})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidCategoryData))
}

func TestUpdate_KeepingOwnNameIsAllowed(t *testing.T) {
	c := New("Bebidas", "")
	svc := newService(newFakeCategoryRepo(c), nil)

	desc := "cold drinks"
	err := svc.Update(context.Background(), c.ID, UpdateInput{Description: &desc})
	require.NoError(t, err)
}

func TestDelete_Empty(t *testing.T) {
	c := New("Bebidas", "")
	repo := newFakeCategoryRepo(c)
	svc := newService(repo, nil)

	err := svc.Delete(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.categories)
}

func TestDelete_WithProductsRejected(t *testing.T) {
	c := New("Bebidas", "")
	repo := newFakeCategoryRepo(c)
	products := &fakeProductRepo{byCategory: map[id.ID][]*product.Product{
		c.ID: {productWithStock(1, 1), productWithStock(2, 1)},
	}}
	svc := newService(repo, products)

	err := svc.Delete(context.Background(), c.ID)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeCategoryHasProducts, appErr.Code)
	assert.Equal(t, 2, appErr.Details["product_count"])
	assert.Equal(t, 0, repo.deletes)
}

func TestDelete_Unknown(t *testing.T) {
	svc := newService(newFakeCategoryRepo(), nil)

	err := svc.Delete(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetStockHealth(t *testing.T) {
	c := New("Bebidas", "")
	repo := newFakeCategoryRepo(c)
	products := &fakeProductRepo{byCategory: map[id.ID][]*product.Product{
		c.ID: {
			productWithStock(0, 5),  // out of stock
			productWithStock(3, 5),  // low
			productWithStock(5, 5),  // low (boundary)
			productWithStock(10, 5), // normal
		},
	}}
	svc := newService(repo, products)

	h, err := svc.GetStockHealth(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, Health{LowStock: 2, OutOfStock: 1, Normal: 1}, h)
}

func TestGetStockHealth_UnknownCategory(t *testing.T) {
	svc := newService(newFakeCategoryRepo(), nil)

	_, err := svc.GetStockHealth(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
