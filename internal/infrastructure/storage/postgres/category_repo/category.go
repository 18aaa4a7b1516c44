// Package category_repo provides the PostgreSQL implementation of the
// category repository.
package category_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"estoque/internal/core/apperror"
	"estoque/internal/core/id"
	"estoque/internal/domain/category"
	"estoque/internal/infrastructure/storage/postgres"
)

const tableName = "categories"

// Compile-time check.
var _ category.Repository = (*Repo)(nil)

// Repo implements category.Repository on PostgreSQL.
type Repo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewRepo creates a new category repository.
func NewRepo(txManager *postgres.TxManager) *Repo {
	return &Repo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[category.Category](),
	}
}

func (r *Repo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *Repo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(r.selectCols...).
		From(tableName)
}

// Create inserts a new category.
func (r *Repo) Create(ctx context.Context, c *category.Category) error {
	data := postgres.StructToMap(c)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in category")
	}

	q := r.builder().
		Insert(tableName).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("category", "name", c.Name)
		}
		return fmt.Errorf("insert category: %w", err)
	}

	return nil
}

// Update modifies an existing category with optimistic locking.
func (r *Repo) Update(ctx context.Context, c *category.Category) error {
	data := postgres.StructToMap(c)

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("category has no version field")
	}

	delete(data, "id")
	delete(data, "version")

	q := r.builder().
		Update(tableName).
		SetMap(data).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": c.ID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("category", "name", c.Name)
		}
		return fmt.Errorf("update category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("category", c.ID.String())
	}
	c.SetVersion(version + 1)

	return nil
}

// Delete performs physical removal. Owned products cascade at the schema
// level; the service guards against deleting non-empty categories first.
func (r *Repo) Delete(ctx context.Context, categoryID id.ID) error {
	q := r.builder().
		Delete(tableName).
		Where(squirrel.Eq{"id": categoryID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("category", categoryID.String())
	}

	return nil
}

// GetByID retrieves a category by ID.
func (r *Repo) GetByID(ctx context.Context, categoryID id.ID) (*category.Category, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": categoryID}).
		Limit(1)

	return r.getOne(ctx, q, categoryID.String())
}

// GetForUpdate retrieves a category with a row lock.
func (r *Repo) GetForUpdate(ctx context.Context, categoryID id.ID) (*category.Category, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": categoryID}).
		Suffix("FOR UPDATE")

	return r.getOne(ctx, q, categoryID.String())
}

func (r *Repo) getOne(ctx context.Context, q squirrel.SelectBuilder, key string) (*category.Category, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	c := &category.Category{}
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("category", key)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	return c, nil
}

// List retrieves all categories ordered by name.
func (r *Repo) List(ctx context.Context) ([]*category.Category, error) {
	q := r.baseSelect().OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*category.Category
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return items, nil
}

// ExistsByName checks the case-insensitive name uniqueness invariant.
func (r *Repo) ExistsByName(ctx context.Context, name string, excludeID id.ID) (bool, error) {
	q := r.builder().
		Select("1").
		From(tableName).
		Where(squirrel.Expr("lower(name) = lower(?)", name)).
		Limit(1)

	if !id.IsNil(excludeID) {
		q = q.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by name: %w", err)
	}

	return true, nil
}

// Count counts all categories.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := r.builder().
		Select("COUNT(*)").
		From(tableName)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}

	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
