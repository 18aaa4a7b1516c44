package category

import (
	"context"
	"fmt"

	"estoque/internal/core/apperror"
	appctx "estoque/internal/core/context"
	"estoque/internal/core/id"
	"estoque/internal/core/tx"
	"estoque/internal/domain/audit"
	"estoque/internal/domain/product"
	"estoque/pkg/logger"
)

// Service provides business operations for the category catalog.
type Service struct {
	repo      Repository
	products  product.Repository
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a new category service.
func NewService(repo Repository, products product.Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{
		repo:      repo,
		products:  products,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Create persists a new category after the name uniqueness check.
func (s *Service) Create(ctx context.Context, name, description string) (*Category, error) {
	c := New(name, description)
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByName(ctx, c.Name, id.Nil())
		if err != nil {
			return fmt.Errorf("check name uniqueness: %w", err)
		}
		if exists {
			return apperror.NewInvalidCategoryData("category with this name already exists").
				WithDetail("name", c.Name)
		}

		if err := s.repo.Create(ctx, c); err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error(ctx, "category creation failed", "name", name, "error", err)
		return nil, err
	}

	s.auditor.Record(ctx, audit.Entry{
		EntityType: "category",
		EntityID:   c.ID,
		Action:     audit.ActionCreate,
		ActorID:    appctx.GetActorID(ctx),
		Changes:    c,
	})

	logger.Info(ctx, "category created", "id", c.ID, "name", c.Name)
	return c, nil
}

// UpdateInput carries the updatable category fields.
type UpdateInput struct {
	Name        *string
	Description *string
}

// Update applies field changes to an existing category atomically.
func (s *Service) Update(ctx context.Context, categoryID id.ID, in UpdateInput) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetForUpdate(ctx, categoryID)
		if err != nil {
			return err
		}

		if in.Name != nil {
			c.Name = *in.Name
		}
		if in.Description != nil {
			c.Description = *in.Description
		}

		if err := c.Validate(ctx); err != nil {
			return err
		}

		exists, err := s.repo.ExistsByName(ctx, c.Name, c.ID)
		if err != nil {
			return fmt.Errorf("check name uniqueness: %w", err)
		}
		if exists {
			return apperror.NewInvalidCategoryData("category with this name already exists").
				WithDetail("name", c.Name)
		}

		if err := s.repo.Update(ctx, c); err != nil {
			return fmt.Errorf("update category: %w", err)
		}

		s.auditor.Record(ctx, audit.Entry{
			EntityType: "category",
			EntityID:   c.ID,
			Action:     audit.ActionUpdate,
			ActorID:    appctx.GetActorID(ctx),
			Changes:    c,
		})
		return nil
	})
	if err != nil {
		logger.Error(ctx, "category update failed", "category_id", categoryID, "error", err)
		return err
	}

	logger.Info(ctx, "category updated", "category_id", categoryID)
	return nil
}

// Delete removes a category. Deletion is rejected while the category still
// owns products. The existence check and the delete run in one transaction;
// the row lock plus the FK from products make the pair atomic.
func (s *Service) Delete(ctx context.Context, categoryID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetForUpdate(ctx, categoryID)
		if err != nil {
			return err
		}

		count, err := s.products.CountByCategory(ctx, categoryID)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		if count > 0 {
			return apperror.NewCategoryHasProducts(categoryID.String(), count)
		}

		if err := s.repo.Delete(ctx, categoryID); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}

		s.auditor.Record(ctx, audit.Entry{
			EntityType: "category",
			EntityID:   c.ID,
			Action:     audit.ActionDelete,
			ActorID:    appctx.GetActorID(ctx),
			Changes:    map[string]any{"name": c.Name},
		})
		return nil
	})
	if err != nil {
		logger.Error(ctx, "category deletion failed", "category_id", categoryID, "error", err)
		return err
	}

	logger.Info(ctx, "category deleted", "category_id", categoryID)
	return nil
}

// GetByID retrieves a category.
func (s *Service) GetByID(ctx context.Context, categoryID id.ID) (*Category, error) {
	return s.repo.GetByID(ctx, categoryID)
}

// GetAll retrieves all categories.
func (s *Service) GetAll(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

// GetStockHealth derives the stock-health counts for a category by scanning
// its owned products.
func (s *Service) GetStockHealth(ctx context.Context, categoryID id.ID) (Health, error) {
	if _, err := s.repo.GetByID(ctx, categoryID); err != nil {
		return Health{}, err
	}

	products, err := s.products.ListByCategory(ctx, categoryID)
	if err != nil {
		return Health{}, fmt.Errorf("list products: %w", err)
	}

	return CountHealth(products), nil
}
