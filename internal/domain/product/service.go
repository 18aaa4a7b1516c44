package product

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"estoque/internal/core/apperror"
	appctx "estoque/internal/core/context"
	"estoque/internal/core/id"
	"estoque/internal/core/tx"
	"estoque/internal/domain/audit"
	"estoque/internal/metrics"
	"estoque/pkg/logger"
)

// Service provides business operations for the product catalog.
// Stock quantities are not mutable through this service; every stock change
// goes through the ledger so that the movement history stays complete.
type Service struct {
	repo      Repository
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a new product service.
func NewService(repo Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{
		repo:      repo,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Create builds a product via the creation policy and persists it atomically.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Product, error) {
	p, err := Create(in)
	if err != nil {
		return nil, err
	}

	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByName(ctx, p.Name, p.CategoryID, id.Nil())
		if err != nil {
			return fmt.Errorf("check name uniqueness: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("product", "name", p.Name)
		}

		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error(ctx, "product creation failed", "name", in.Name, "error", err)
		return nil, err
	}

	s.auditor.Record(ctx, audit.Entry{
		EntityType: "product",
		EntityID:   p.ID,
		Action:     audit.ActionCreate,
		ActorID:    appctx.GetActorID(ctx),
		Changes:    p,
	})
	metrics.ProductsCreatedTotal.Inc()

	logger.Info(ctx, "product created",
		"id", p.ID,
		"name", p.Name,
		"type", string(in.Type),
	)
	return p, nil
}

// UpdateInput carries the updatable product fields. Nil pointers leave the
// field unchanged. Stock is deliberately absent: use the ledger service.
type UpdateInput struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	MinStock      *int
	CategoryID    *id.ID
	ClearCategory bool
}

// Update applies field changes to an existing product atomically.
func (s *Service) Update(ctx context.Context, productID id.ID, in UpdateInput) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.Price != nil {
			p.Price = *in.Price
		}
		if in.MinStock != nil {
			p.MinStock = *in.MinStock
		}
		if in.ClearCategory {
			p.CategoryID = nil
		} else if in.CategoryID != nil {
			p.CategoryID = in.CategoryID
		}

		if err := p.Validate(ctx); err != nil {
			return err
		}

		exists, err := s.repo.ExistsByName(ctx, p.Name, p.CategoryID, p.ID)
		if err != nil {
			return fmt.Errorf("check name uniqueness: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("product", "name", p.Name)
		}

		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("update product: %w", err)
		}

		s.auditor.Record(ctx, audit.Entry{
			EntityType: "product",
			EntityID:   p.ID,
			Action:     audit.ActionUpdate,
			ActorID:    appctx.GetActorID(ctx),
			Changes:    p,
		})
		return nil
	})
	if err != nil {
		logger.Error(ctx, "product update failed", "product_id", productID, "error", err)
		return err
	}

	logger.Info(ctx, "product updated", "product_id", productID)
	return nil
}

// Delete removes a product. Its movement history is removed with it.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, productID)
		if err != nil {
			return err
		}

		if err := s.repo.Delete(ctx, productID); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}

		s.auditor.Record(ctx, audit.Entry{
			EntityType: "product",
			EntityID:   p.ID,
			Action:     audit.ActionDelete,
			ActorID:    appctx.GetActorID(ctx),
			Changes:    map[string]any{"name": p.Name},
		})
		return nil
	})
	if err != nil {
		logger.Error(ctx, "product deletion failed", "product_id", productID, "error", err)
		return err
	}

	logger.Info(ctx, "product deleted", "product_id", productID)
	return nil
}

// GetByID retrieves a product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// GetAll retrieves all products.
func (s *Service) GetAll(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

// GetByCategory retrieves the products owned by a category.
func (s *Service) GetByCategory(ctx context.Context, categoryID id.ID) ([]*Product, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}

// GetLowStock retrieves products at or below their minimum threshold.
func (s *Service) GetLowStock(ctx context.Context) ([]*Product, error) {
	return s.repo.ListLowStock(ctx)
}
