// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/postgres"
)

// PostgresStore implements [Store] with a single parameterized SELECT.
type PostgresStore struct {
	db postgres.DBTX
}

// NewPostgresStore creates a new PostgreSQL ownership store.
func NewPostgresStore(db postgres.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// IsOwnedActive runs `SELECT 1 ... WHERE id = $1 AND owner = $2 AND active`.
//
// Identifiers come from [Resource] descriptors declared in code and are quoted
// with pgx.Identifier; only id and ownerID are user-supplied, and they are bound.
func (store *PostgresStore) IsOwnedActive(ctx context.Context, resource Resource, id, ownerID string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		// A malformed id cannot match any row.
		return false, nil
	}

	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 AND %s = $2 AND %s = TRUE`,
		postgres.QuoteTable(resource.Table),
		postgres.QuoteColumn(resource.IDColumn),
		postgres.QuoteColumn(resource.OwnerColumn),
		postgres.QuoteColumn(resource.ActiveColumn),
	)

	var one int
	err := store.db.QueryRow(ctx, query, id, ownerID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperr.StoreUnavailable(fmt.Errorf("access_is_owned_active_failed: %w", err))
	}
	return true, nil
}
