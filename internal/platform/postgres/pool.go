// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres owns the pgx connection pool and the transaction helper
// shared by repositories.
//
// Every connection is tagged with the application name and carries a
// statement and lock timeout, so a writer stuck behind the row lock taken by
// a comment insert or a soft-delete cascade fails as STORE_UNAVAILABLE
// instead of hanging the request.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-press/internal/platform/constants"
)

const (
	maxConnLifetime   = time.Hour
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second

	// connectAttempts covers a database container that starts after the API.
	connectAttempts = 5
	connectBackoff  = time.Second
)

// PoolOptions tunes the pool. Zero values keep pgx defaults.
type PoolOptions struct {
	MaxConns    int32
	MinConns    int32
	LockTimeout time.Duration
}

// Pinger is satisfied by [*pgxpool.Pool].
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewPool connects to dsn, retrying with a linear backoff while ctx allows.
func NewPool(ctx context.Context, dsn string, opts PoolOptions, logger *slog.Logger) (*pgxpool.Pool, error) {
	config, err := poolConfig(dsn, opts)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	for attempt := 1; ; attempt++ {
		err = Ping(ctx, pool)
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			pool.Close()
			return nil, err
		}
		logger.Warn("postgres_connect_retry", slog.Int("attempt", attempt), slog.Any("error", err))
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, fmt.Errorf("postgres: gave up connecting: %w", ctx.Err())
		case <-time.After(time.Duration(attempt) * connectBackoff):
		}
	}

	logger.Info("postgres_pool_connected",
		slog.String("host", config.ConnConfig.Host),
		slog.String("database", config.ConnConfig.Database),
		slog.Int("max_conns", int(config.MaxConns)),
	)
	return pool, nil
}

// Ping checks the database answers within a short deadline.
func Ping(ctx context.Context, db Pinger) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}
	return nil
}

func poolConfig(dsn string, opts PoolOptions) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		config.MinConns = min(opts.MinConns, config.MaxConns)
	}
	config.MaxConnLifetime = maxConnLifetime
	config.MaxConnIdleTime = maxConnIdleTime
	config.HealthCheckPeriod = healthCheckPeriod
	config.ConnConfig.ConnectTimeout = connectTimeout

	params := config.ConnConfig.RuntimeParams
	params["application_name"] = constants.AppName
	params["statement_timeout"] = milliseconds(constants.GlobalRequestTimeout)
	if opts.LockTimeout > 0 {
		params["lock_timeout"] = milliseconds(opts.LockTimeout)
	}
	return config, nil
}

func milliseconds(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}
