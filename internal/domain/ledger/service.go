package ledger

import (
	"context"
	"fmt"

	"estoque/internal/core/apperror"
	appctx "estoque/internal/core/context"
	"estoque/internal/core/id"
	"estoque/internal/core/tx"
	"estoque/internal/domain/product"
	"estoque/internal/metrics"
	"estoque/pkg/logger"
)

// Service is the stock mutation engine. Every stock change runs as one
// transaction: the product row is locked, mutated through the aggregate,
// persisted, and the ledger entry appended. Either all of it becomes
// visible or none. Observers are notified after the transaction commits.
type Service struct {
	products  product.Repository
	movements Repository
	txManager tx.Manager

	// observers are attached to every product loaded for mutation. Loaded
	// aggregates come out of storage without their transient registry, so the
	// engine owns the process-lifetime set of notification policies.
	observers []product.Observer
}

// NewService creates the stock mutation engine with the default notifiers.
func NewService(products product.Repository, movements Repository, txManager tx.Manager) *Service {
	return &Service{
		products:  products,
		movements: movements,
		txManager: txManager,
		observers: []product.Observer{
			product.NewLowStockNotifier(),
			product.NewOutOfStockNotifier(),
		},
	}
}

// RegisterObserver adds a notification policy applied to all future stock
// mutations (e.g. a configured RuleNotifier). Idempotent per instance.
func (s *Service) RegisterObserver(o product.Observer) {
	for _, existing := range s.observers {
		if product.SameObserver(existing, o) {
			return
		}
	}
	s.observers = append(s.observers, o)
}

// AddStock records an IN movement: stock increases by quantity.
func (s *Service) AddStock(ctx context.Context, productID id.ID, quantity int, reason string) (*product.Product, error) {
	return s.UpdateStock(ctx, productID, product.MovementIn, quantity, reason)
}

// RemoveStock records an OUT movement: stock decreases by quantity, failing
// with InsufficientStock when it would go negative.
func (s *Service) RemoveStock(ctx context.Context, productID id.ID, quantity int, reason string) (*product.Product, error) {
	return s.UpdateStock(ctx, productID, product.MovementOut, quantity, reason)
}

// AdjustStock records an ADJUSTMENT movement: stock is set to quantity as an
// absolute target level.
func (s *Service) AdjustStock(ctx context.Context, productID id.ID, quantity int, reason string) (*product.Product, error) {
	return s.UpdateStock(ctx, productID, product.MovementAdjustment, quantity, reason)
}

// UpdateStock applies one stock mutation and appends the matching ledger
// entry atomically. On any failure the product and the ledger are left
// untouched. Returns the post-mutation product snapshot.
func (s *Service) UpdateStock(ctx context.Context, productID id.ID, movementType product.MovementType, quantity int, reason string) (*product.Product, error) {
	var (
		p        *product.Product
		movement *Movement
	)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		change, err := p.ApplyStockChange(movementType, quantity)
		if err != nil {
			return err
		}

		if err := s.products.Update(ctx, p); err != nil {
			return fmt.Errorf("update product stock: %w", err)
		}

		movement = NewMovement(p.ID, change, reason, actorRef(ctx))
		if err := s.movements.Create(ctx, movement); err != nil {
			return fmt.Errorf("append movement: %w", err)
		}

		return nil
	})
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok {
			metrics.StockMovementsFailed.WithLabelValues(appErr.Code).Inc()
		} else {
			metrics.StockMovementsFailed.WithLabelValues(apperror.CodeInternal).Inc()
		}
		logger.Error(ctx, "stock mutation failed",
			"product_id", productID,
			"movement_type", string(movementType),
			"quantity", quantity,
			"error", err,
		)
		return nil, err
	}

	metrics.StockMovementsTotal.WithLabelValues(string(movementType)).Inc()
	logger.Info(ctx, "stock movement recorded",
		"product_id", p.ID,
		"movement_type", string(movementType),
		"previous_stock", movement.PreviousStock,
		"new_stock", movement.NewStock,
	)

	// Notification runs after commit with the post-mutation snapshot.
	// Observer failures are logged inside NotifyObservers and never surface.
	for _, o := range s.observers {
		p.AddObserver(o)
	}
	p.NotifyObservers(ctx)

	return p, nil
}

// GetMovements returns a product's ledger entries, newest first.
func (s *Service) GetMovements(ctx context.Context, productID id.ID) ([]*Movement, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.movements.ListByProduct(ctx, productID)
}

// actorRef resolves the optional created_by reference from context.
func actorRef(ctx context.Context) *id.ID {
	actorID := appctx.GetActorID(ctx)
	if actorID == "" {
		return nil
	}
	parsed, err := id.Parse(actorID)
	if err != nil {
		return nil
	}
	return &parsed
}
