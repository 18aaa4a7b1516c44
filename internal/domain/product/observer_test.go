package product

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoque/internal/metrics"
)

type alertFunc func(ctx context.Context, p *Product) error

func (f alertFunc) Update(ctx context.Context, p *Product) error {
	return f(ctx, p)
}

func TestAddObserver_FuncTypedIdempotent(t *testing.T) {
	p := newTestProduct(10, 5)
	before := len(p.Observers())

	o := alertFunc(func(ctx context.Context, p *Product) error { return nil })
	p.AddObserver(o)
	p.AddObserver(o)

	assert.Len(t, p.Observers(), before+1)
}

func TestRemoveObserver_FuncTyped(t *testing.T) {
	p := newTestProduct(10, 5)
	before := len(p.Observers())

	o := alertFunc(func(ctx context.Context, p *Product) error { return nil })
	p.AddObserver(o)
	p.RemoveObserver(o)

	assert.Len(t, p.Observers(), before)
}

func TestSameObserver(t *testing.T) {
	a := &recordingObserver{}
	b := &recordingObserver{}
	f := alertFunc(func(ctx context.Context, p *Product) error { return nil })
	g := alertFunc(func(ctx context.Context, p *Product) error { return nil })

	assert.True(t, SameObserver(a, a))
	assert.False(t, SameObserver(a, b))
	assert.True(t, SameObserver(f, f))
	assert.False(t, SameObserver(f, g))
	assert.False(t, SameObserver(a, f))
	assert.True(t, SameObserver(nil, nil))
	assert.False(t, SameObserver(a, nil))
}

func alertCount(kind string) float64 {
	return testutil.ToFloat64(metrics.StockAlertsTotal.WithLabelValues(kind))
}

func TestNotifiers_LowStockFiresAlone(t *testing.T) {
	p := newTestProduct(3, 5)
	p.AddObserver(NewLowStockNotifier())
	p.AddObserver(NewOutOfStockNotifier())

	lowBefore := alertCount("low_stock")
	outBefore := alertCount("out_of_stock")

	p.NotifyObservers(context.Background())

	assert.Equal(t, lowBefore+1, alertCount("low_stock"))
	assert.Equal(t, outBefore, alertCount("out_of_stock"))
}

func TestNotifiers_ZeroStockFiresBoth(t *testing.T) {
	p := newTestProduct(0, 5)
	p.AddObserver(NewLowStockNotifier())
	p.AddObserver(NewOutOfStockNotifier())

	lowBefore := alertCount("low_stock")
	outBefore := alertCount("out_of_stock")

	p.NotifyObservers(context.Background())

	assert.Equal(t, lowBefore+1, alertCount("low_stock"))
	assert.Equal(t, outBefore+1, alertCount("out_of_stock"))
}

func TestNotifiers_HealthyStockSilent(t *testing.T) {
	p := newTestProduct(20, 5)
	p.AddObserver(NewLowStockNotifier())
	p.AddObserver(NewOutOfStockNotifier())

	lowBefore := alertCount("low_stock")
	outBefore := alertCount("out_of_stock")

	p.NotifyObservers(context.Background())

	assert.Equal(t, lowBefore, alertCount("low_stock"))
	assert.Equal(t, outBefore, alertCount("out_of_stock"))
}

func TestNotifiers_NeverReturnError(t *testing.T) {
	p := newTestProduct(0, 5)

	require.NoError(t, NewLowStockNotifier().Update(context.Background(), p))
	require.NoError(t, NewOutOfStockNotifier().Update(context.Background(), p))
}
