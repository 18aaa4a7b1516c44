// Package product_repo provides the PostgreSQL implementation of the
// product repository.
package product_repo

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
	"estoque/internal/domain/product"
	"estoque/internal/infrastructure/storage/postgres"
)

const tableName = "products"

// Compile-time check.
var _ product.Repository = (*Repo)(nil)

// Repo implements product.Repository on PostgreSQL.
type Repo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewRepo creates a new product repository.
func NewRepo(txManager *postgres.TxManager) *Repo {
	return &Repo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[product.Product](),
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

// Create inserts a new product using its "db" tags.
func (r *Repo) Create(ctx context.Context, p *product.Product) error {
	data := postgres.StructToMap(p)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in product")
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
			return apperror.NewDuplicate("product", "name", p.Name)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// Update modifies an existing product with optimistic locking.
func (r *Repo) Update(ctx context.Context, p *product.Product) error {
	data := postgres.StructToMap(p)

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("product has no version field")
	}

	// id never changes; version is managed here (optimistic locking)
	delete(data, "id")
	delete(data, "version")

	q := r.builder().
		Update(tableName).
		SetMap(data).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": p.ID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("product", "name", p.Name)
		}
		return fmt.Errorf("update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("product", p.ID.String())
	}
	p.SetVersion(version + 1)

	return nil
}

// Delete performs physical removal. The schema cascades the product's
// movements.
func (r *Repo) Delete(ctx context.Context, productID id.ID) error {
	q := r.builder().
		Delete(tableName).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}

	return nil
}

// GetByID retrieves a product by ID.
func (r *Repo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": productID}).
		Limit(1)

	return r.getOne(ctx, q, productID.String())
}

// GetForUpdate retrieves a product with a row lock. Must run inside a
// transaction.
func (r *Repo) GetForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": productID}).
		Suffix("FOR UPDATE")

	return r.getOne(ctx, q, productID.String())
}

func (r *Repo) getOne(ctx context.Context, q squirrel.SelectBuilder, key string) (*product.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	p := &product.Product{}
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", key)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

// List retrieves all products ordered by name.
func (r *Repo) List(ctx context.Context) ([]*product.Product, error) {
	return r.selectMany(ctx, r.baseSelect().OrderBy("name ASC"))
}

// ListByCategory retrieves the products owned by a category.
func (r *Repo) ListByCategory(ctx context.Context, categoryID id.ID) ([]*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"category_id": categoryID}).
		OrderBy("name ASC")
	return r.selectMany(ctx, q)
}

// ListLowStock retrieves products at or below their minimum stock level.
func (r *Repo) ListLowStock(ctx context.Context) ([]*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Expr("stock <= min_stock")).
		OrderBy("name ASC")
	return r.selectMany(ctx, q)
}

func (r *Repo) selectMany(ctx context.Context, q squirrel.SelectBuilder) ([]*product.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*product.Product
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return items, nil
}

// ExistsByName checks the case-insensitive (name, category) uniqueness
// invariant.
func (r *Repo) ExistsByName(ctx context.Context, name string, categoryID *id.ID, excludeID id.ID) (bool, error) {
	q := r.builder().
		Select("1").
		From(tableName).
		Where(squirrel.Expr("lower(name) = lower(?)", name)).
		Limit(1)

	if categoryID != nil {
		q = q.Where(squirrel.Eq{"category_id": *categoryID})
	} else {
		q = q.Where(squirrel.Eq{"category_id": nil})
	}

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

// CountByCategory counts products owned by a category.
func (r *Repo) CountByCategory(ctx context.Context, categoryID id.ID) (int, error) {
	return r.count(ctx, squirrel.Eq{"category_id": categoryID})
}

// Count counts all products.
func (r *Repo) Count(ctx context.Context) (int, error) {
	return r.count(ctx, nil)
}

func (r *Repo) count(ctx context.Context, where any) (int, error) {
	q := r.builder().
		Select("COUNT(*)").
		From(tableName)
	if where != nil {
		q = q.Where(where)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
