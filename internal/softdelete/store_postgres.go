// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package softdelete

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yomira-press/internal/platform/postgres"
)

// PostgresStore implements [Store] over a pgx pool.
type PostgresStore struct {
	db postgres.TxBeginner
}

// NewPostgresStore creates a soft-delete store. [*pgxpool.Pool] satisfies db.
func NewPostgresStore(db postgres.TxBeginner) *PostgresStore {
	return &PostgresStore{db: db}
}

// WithinTx runs fn inside [postgres.WithTx].
func (store *PostgresStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return postgres.WithTx(ctx, store.db, func(ctx context.Context, transaction pgx.Tx) error {
		return fn(ctx, &postgresTx{db: transaction})
	})
}

// postgresTx issues the UPDATE statements on one open transaction.
type postgresTx struct {
	db postgres.DBTX
}

func (tx *postgresTx) Deactivate(ctx context.Context, entity Entity, id string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, nil
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = FALSE WHERE %s = $1 AND %s = TRUE`,
		postgres.QuoteTable(entity.Table),
		postgres.QuoteColumn(entity.ActiveColumn),
		postgres.QuoteColumn(entity.IDColumn),
		postgres.QuoteColumn(entity.ActiveColumn),
	)

	tag, err := tx.db.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("deactivate %s: %w", entity.Table, err)
	}
	return tag.RowsAffected(), nil
}

func (tx *postgresTx) DeactivateDependents(ctx context.Context, edge Edge, parentID string) (int64, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = FALSE WHERE %s = $1 AND %s = TRUE`,
		postgres.QuoteTable(edge.Child.Table),
		postgres.QuoteColumn(edge.Child.ActiveColumn),
		postgres.QuoteColumn(edge.ForeignKey),
		postgres.QuoteColumn(edge.Child.ActiveColumn),
	)

	tag, err := tx.db.Exec(ctx, query, parentID)
	if err != nil {
		return 0, fmt.Errorf("deactivate %s by %s: %w", edge.Child.Table, edge.ForeignKey, err)
	}
	return tag.RowsAffected(), nil
}
