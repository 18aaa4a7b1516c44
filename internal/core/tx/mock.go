package tx

import (
	"context"
)

// Mock is a no-op Manager for tests. It invokes fn directly and counts calls,
// so service tests can assert transactional boundaries without a database.
type Mock struct {
	// Calls counts RunInTransaction invocations.
	Calls int

	// FailWith, when set, is returned instead of executing fn.
	FailWith error
}

var _ Manager = (*Mock)(nil)

// RunInTransaction executes fn directly (no real transaction).
func (m *Mock) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.FailWith != nil {
		return m.FailWith
	}
	return fn(ctx)
}

// ReadOnly executes fn directly.
func (m *Mock) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTransaction(ctx, fn)
}
