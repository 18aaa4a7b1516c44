package product

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoque/internal/core/apperror"
)

func newTestProduct(stock, minStock int) *Product {
	p := New("Coffee 500g", "", decimal.NewFromFloat(12.90))
	p.Stock = stock
	p.MinStock = minStock
	return p
}

func TestStatus_Partition(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		minStock int
		want     StockStatus
	}{
		{"zero stock is out of stock", 0, 10, StatusOutOfStock},
		{"zero stock with zero threshold is out of stock", 0, 0, StatusOutOfStock},
		{"at threshold is low stock", 10, 10, StatusLowStock},
		{"below threshold is low stock", 3, 10, StatusLowStock},
		{"above threshold is normal", 11, 10, StatusNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProduct(tt.stock, tt.minStock)
			assert.Equal(t, tt.want, p.Status())
		})
	}
}

func TestLowStock_IncludesZero(t *testing.T) {
	assert.True(t, newTestProduct(0, 5).LowStock())
	assert.True(t, newTestProduct(5, 5).LowStock())
	assert.False(t, newTestProduct(6, 5).LowStock())
}

func TestApplyStockChange_In(t *testing.T) {
	p := newTestProduct(10, 5)

	change, err := p.ApplyStockChange(MovementIn, 7)
	require.NoError(t, err)

	assert.Equal(t, 17, p.Stock)
	assert.Equal(t, MovementIn, change.Type)
	assert.Equal(t, 7, change.Quantity)
	assert.Equal(t, 10, change.Previous)
	assert.Equal(t, 17, change.New)
}

func TestApplyStockChange_Out(t *testing.T) {
	p := newTestProduct(10, 5)

	change, err := p.ApplyStockChange(MovementOut, 10)
	require.NoError(t, err)

	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, 10, change.Quantity)
	assert.Equal(t, 10, change.Previous)
	assert.Equal(t, 0, change.New)
}

func TestApplyStockChange_OutInsufficient(t *testing.T) {
	p := newTestProduct(3, 5)

	_, err := p.ApplyStockChange(MovementOut, 4)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, 4, appErr.Details["requested"])
	assert.Equal(t, 3, appErr.Details["available"])

	// Failed mutation must leave stock untouched
	assert.Equal(t, 3, p.Stock)
}

func TestApplyStockChange_Adjustment(t *testing.T) {
	tests := []struct {
		name         string
		stock        int
		target       int
		wantQuantity int
	}{
		{"adjust up records delta", 10, 25, 15},
		{"adjust down records delta", 25, 10, 15},
		{"adjust to same level records zero", 10, 10, 0},
		{"adjust to zero", 10, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProduct(tt.stock, 5)

			change, err := p.ApplyStockChange(MovementAdjustment, tt.target)
			require.NoError(t, err)

			assert.Equal(t, tt.target, p.Stock)
			assert.Equal(t, tt.wantQuantity, change.Quantity)
			assert.Equal(t, tt.stock, change.Previous)
			assert.Equal(t, tt.target, change.New)
		})
	}
}

func TestApplyStockChange_NegativeQuantity(t *testing.T) {
	for _, mt := range []MovementType{MovementIn, MovementOut, MovementAdjustment} {
		t.Run(string(mt), func(t *testing.T) {
			p := newTestProduct(10, 5)

			_, err := p.ApplyStockChange(mt, -1)
			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, apperror.CodeInvalidMovementData))
			assert.Equal(t, 10, p.Stock)
		})
	}
}

func TestApplyStockChange_UnknownType(t *testing.T) {
	p := newTestProduct(10, 5)

	_, err := p.ApplyStockChange(MovementType("TRANSFER"), 1)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidMovementType))
	assert.Equal(t, 10, p.Stock)
}

func TestValidate(t *testing.T) {
	t.Run("valid product", func(t *testing.T) {
		p := newTestProduct(10, 5)
		assert.NoError(t, p.Validate(context.Background()))
	})

	t.Run("empty name", func(t *testing.T) {
		p := newTestProduct(10, 5)
		p.Name = ""
		err := p.Validate(context.Background())
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidProductData))
	})

	t.Run("non-positive price", func(t *testing.T) {
		p := newTestProduct(10, 5)
		p.Price = decimal.Zero
		err := p.Validate(context.Background())
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidProductData))
	})

	t.Run("negative min stock", func(t *testing.T) {
		p := newTestProduct(10, -1)
		err := p.Validate(context.Background())
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidProductData))
	})
}

// --- Observer registry ---

type recordingObserver struct {
	name  string
	calls []string
	fail  error
	panic bool
}

func (o *recordingObserver) Update(ctx context.Context, p *Product) error {
	o.calls = append(o.calls, p.Name)
	if o.panic {
		panic("observer exploded")
	}
	return o.fail
}

func TestAddObserver_IdempotentAndOrdered(t *testing.T) {
	p := newTestProduct(10, 5)
	first := &recordingObserver{name: "first"}
	second := &recordingObserver{name: "second"}

	p.AddObserver(first)
	p.AddObserver(second)
	p.AddObserver(first) // duplicate registration is a no-op

	require.Len(t, p.Observers(), 2)

	p.NotifyObservers(context.Background())
	assert.Len(t, first.calls, 1)
	assert.Len(t, second.calls, 1)
}

func TestRemoveObserver(t *testing.T) {
	p := newTestProduct(10, 5)
	o := &recordingObserver{}

	p.AddObserver(o)
	p.RemoveObserver(o)
	p.RemoveObserver(o) // removing twice is a no-op

	assert.Empty(t, p.Observers())

	p.NotifyObservers(context.Background())
	assert.Empty(t, o.calls)
}

func TestNotifyObservers_FailureIsolation(t *testing.T) {
	p := newTestProduct(10, 5)
	failing := &recordingObserver{fail: errors.New("delivery failed")}
	panicking := &recordingObserver{panic: true}
	healthy := &recordingObserver{}

	p.AddObserver(failing)
	p.AddObserver(panicking)
	p.AddObserver(healthy)

	// Must not panic, and every observer must still be reached
	p.NotifyObservers(context.Background())

	assert.Len(t, failing.calls, 1)
	assert.Len(t, panicking.calls, 1)
	assert.Len(t, healthy.calls, 1)
}
