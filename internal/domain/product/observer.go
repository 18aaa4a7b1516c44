package product

import (
	"context"
	"fmt"
	"reflect"

	"estoque/internal/metrics"
	"estoque/pkg/logger"
)

// Observer is notified with the post-mutation product snapshot after every
// successful stock change. Observers are policy objects: they decide from the
// current state alone whether to act, they are not told what changed.
type Observer interface {
	Update(ctx context.Context, p *Product) error
}

// SameObserver reports whether a and b count as one registration identity.
// Comparable dynamic types use interface equality; non-comparable ones
// (func types, structs holding maps or slices) fall back to pointer
// identity, so the check never panics.
func SameObserver(a, b Observer) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	switch ta.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	// Non-comparable struct or array values carry no usable identity;
	// treat each registration as distinct.
	return false
}

// AddObserver registers o. Registration is idempotent: adding the same
// observer instance twice leaves a single registration. Order of first
// registration is preserved for notification.
func (p *Product) AddObserver(o Observer) {
	if o == nil {
		return
	}
	for _, existing := range p.observers {
		if SameObserver(existing, o) {
			return
		}
	}
	p.observers = append(p.observers, o)
}

// RemoveObserver deregisters o. Removing an unknown observer is a no-op.
func (p *Product) RemoveObserver(o Observer) {
	for i, existing := range p.observers {
		if SameObserver(existing, o) {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			return
		}
	}
}

// Observers returns the registered observers in notification order.
func (p *Product) Observers() []Observer {
	out := make([]Observer, len(p.observers))
	copy(out, p.observers)
	return out
}

// NotifyObservers invokes every registered observer in registration order.
// A failing or panicking observer is logged and must not stop the remaining
// observers, nor surface to the caller of the stock mutation.
func (p *Product) NotifyObservers(ctx context.Context) {
	for _, o := range p.observers {
		p.notifyOne(ctx, o)
	}
}

func (p *Product) notifyOne(ctx context.Context, o Observer) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "observer panicked",
				"product_id", p.ID,
				"observer", fmt.Sprintf("%T", o),
				"panic", r,
			)
		}
	}()

	if err := o.Update(ctx, p); err != nil {
		logger.Error(ctx, "observer failed",
			"product_id", p.ID,
			"observer", fmt.Sprintf("%T", o),
			"error", err,
		)
	}
}

// LowStockNotifier emits a warning-level alert when stock is at or below the
// minimum threshold (the zero case included).
type LowStockNotifier struct{}

// NewLowStockNotifier creates the default low-stock alert policy.
func NewLowStockNotifier() *LowStockNotifier {
	return &LowStockNotifier{}
}

func (n *LowStockNotifier) Update(ctx context.Context, p *Product) error {
	if !p.LowStock() {
		return nil
	}
	logger.Warn(ctx, "low stock alert",
		"product", p.Name,
		"stock", p.Stock,
		"min_stock", p.MinStock,
	)
	metrics.StockAlertsTotal.WithLabelValues("low_stock").Inc()
	return nil
}

// OutOfStockNotifier emits an error-level alert when stock hits zero.
type OutOfStockNotifier struct{}

// NewOutOfStockNotifier creates the default out-of-stock alert policy.
func NewOutOfStockNotifier() *OutOfStockNotifier {
	return &OutOfStockNotifier{}
}

func (n *OutOfStockNotifier) Update(ctx context.Context, p *Product) error {
	if p.Stock != 0 {
		return nil
	}
	logger.Error(ctx, "out of stock alert",
		"product", p.Name,
	)
	metrics.StockAlertsTotal.WithLabelValues("out_of_stock").Inc()
	return nil
}
