// Package ledger_repo provides the PostgreSQL implementation of the
// append-only stock movement ledger.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"estoque/internal/core/id"
	"estoque/internal/domain/ledger"
	"estoque/internal/infrastructure/storage/postgres"
)

const tableName = "stock_movements"

// Compile-time check.
var _ ledger.Repository = (*Repo)(nil)

// Repo implements ledger.Repository on PostgreSQL. The table carries no
// UPDATE or DELETE path; rows only ever get appended.
type Repo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewRepo creates a new movement repository.
func NewRepo(txManager *postgres.TxManager) *Repo {
	return &Repo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[ledger.Movement](),
	}
}

func (r *Repo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create appends one movement. Must run inside the same transaction as the
// product stock update.
func (r *Repo) Create(ctx context.Context, m *ledger.Movement) error {
	data := postgres.StructToMap(m)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in movement")
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
		return fmt.Errorf("insert movement: %w", err)
	}

	return nil
}

// ListByProduct retrieves a product's movements, newest first.
func (r *Repo) ListByProduct(ctx context.Context, productID id.ID) ([]*ledger.Movement, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(tableName).
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*ledger.Movement
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}

	return items, nil
}
