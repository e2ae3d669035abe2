// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx used by repositories.
// Both [*pgxpool.Pool] and [pgx.Tx] satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner starts transactions. [*pgxpool.Pool] satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Pool is needed by repositories that run both single statements and their
// own transactions. [*pgxpool.Pool] satisfies it.
type Pool interface {
	DBTX
	TxBeginner
}

// WithTx begins a transaction, runs fn with it, and then commits on success or
// rolls back on error or panic. Panics are rethrown after the rollback.
//
//	err := postgres.WithTx(ctx, pool, func(ctx context.Context, tx pgx.Tx) error {
//	    _, err := tx.Exec(ctx, "UPDATE ...")
//	    return err
//	})
func WithTx(ctx context.Context, db TxBeginner, fn func(ctx context.Context, tx pgx.Tx) error) (err error) {
	transaction, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			_ = transaction.Rollback(ctx)
			panic(recovered)
		}
		if err != nil {
			_ = transaction.Rollback(ctx)
			return
		}
		if commitErr := transaction.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("postgres: failed to commit transaction: %w", commitErr)
		}
	}()

	err = fn(ctx, transaction)
	return err
}
