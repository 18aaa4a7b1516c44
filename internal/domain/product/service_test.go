package product

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
)

type fakeRepo struct {
	products map[id.ID]*Product
}

func newFakeRepo(products ...*Product) *fakeRepo {
	r := &fakeRepo{products: make(map[id.ID]*Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeRepo) Create(ctx context.Context, p *Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, p *Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, productID id.ID) error {
	delete(r.products, productID)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, productID id.ID) (*Product, error) {
	return r.GetByID(ctx, productID)
}

func (r *fakeRepo) List(ctx context.Context) ([]*Product, error) {
	out := make([]*Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) ListByCategory(ctx context.Context, categoryID id.ID) ([]*Product, error) {
	var out []*Product
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListLowStock(ctx context.Context) ([]*Product, error) {
	var out []*Product
	for _, p := range r.products {
		if p.Stock <= p.MinStock {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) ExistsByName(ctx context.Context, name string, categoryID *id.ID, excludeID id.ID) (bool, error) {
	for _, p := range r.products {
		if p.ID == excludeID || !strings.EqualFold(p.Name, name) {
			continue
		}
		switch {
		case p.CategoryID == nil && categoryID == nil:
			return true, nil
		case p.CategoryID != nil && categoryID != nil && *p.CategoryID == *categoryID:
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CountByCategory(ctx context.Context, categoryID id.ID) (int, error) {
	list, _ := r.ListByCategory(ctx, categoryID)
	return len(list), nil
}

func (r *fakeRepo) Count(ctx context.Context) (int, error) {
	return len(r.products), nil
}

func TestServiceCreate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &tx.Mock{}, nil)

	p, err := svc.Create(context.Background(), CreateInput{
		Name:  "Coffee 500g",
		Price: decimal.NewFromFloat(12.90),
		Stock: 10,
		Type:  TypeRegular,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
	assert.Len(t, repo.products, 1)
}

func TestServiceCreate_DuplicateName(t *testing.T) {
	existing := New("Coffee 500g", "", decimal.NewFromInt(10))
	repo := newFakeRepo(existing)
	svc := NewService(repo, &tx.Mock{}, nil)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:  "coffee 500g",
		Price: decimal.NewFromInt(12),
		Type:  TypeRegular,
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeDuplicate))
	assert.Len(t, repo.products, 1)
}

func TestServiceCreate_SameNameDifferentCategory(t *testing.T) {
	catA, catB := id.New(), id.New()
	existing := New("Coffee 500g", "", decimal.NewFromInt(10))
	existing.CategoryID = &catA
	repo := newFakeRepo(existing)
	svc := NewService(repo, &tx.Mock{}, nil)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:       "Coffee 500g",
		Price:      decimal.NewFromInt(12),
		CategoryID: &catB,
		Type:       TypeRegular,
	})
	require.NoError(t, err)
}

func TestServiceUpdate(t *testing.T) {
	p := New("Coffee 500g", "", decimal.NewFromInt(10))
	p.Stock = 7
	repo := newFakeRepo(p)
	svc := NewService(repo, &tx.Mock{}, nil)

	price := decimal.NewFromFloat(14.50)
	minStock := 3
	err := svc.Update(context.Background(), p.ID, UpdateInput{Price: &price, MinStock: &minStock})
	require.NoError(t, err)

	got := repo.products[p.ID]
	assert.True(t, got.Price.Equal(price))
	assert.Equal(t, 3, got.MinStock)
	// Stock is untouched by catalog updates
	assert.Equal(t, 7, got.Stock)
}

func TestServiceUpdate_ClearCategory(t *testing.T) {
	catID := id.New()
	p := New("Coffee 500g", "", decimal.NewFromInt(10))
	p.CategoryID = &catID
	repo := newFakeRepo(p)
	svc := NewService(repo, &tx.Mock{}, nil)

	err := svc.Update(context.Background(), p.ID, UpdateInput{ClearCategory: true})
	require.NoError(t, err)
	assert.Nil(t, repo.products[p.ID].CategoryID)
}

func TestServiceUpdate_InvalidPrice(t *testing.T) {
	p := New("Coffee 500g", "", decimal.NewFromInt(10))
	svc := NewService(newFakeRepo(p), &tx.Mock{}, nil)

	price := decimal.Zero
	err := svc.Update(context.Background(), p.ID, UpdateInput{Price: &price})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidProductData))
}

func TestServiceDelete(t *testing.T) {
	p := New("Coffee 500g", "", decimal.NewFromInt(10))
	repo := newFakeRepo(p)
	svc := NewService(repo, &tx.Mock{}, nil)

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	assert.Empty(t, repo.products)

	err := svc.Delete(context.Background(), p.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestServiceGetLowStock(t *testing.T) {
	low := New("Low", "", decimal.NewFromInt(1))
	low.Stock, low.MinStock = 2, 5
	ok := New("Ok", "", decimal.NewFromInt(1))
	ok.Stock, ok.MinStock = 9, 5
	svc := NewService(newFakeRepo(low, ok), &tx.Mock{}, nil)

	got, err := svc.GetLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Low", got[0].Name)
}
