// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the users and content schema with golang-migrate
// before the API starts serving.
//
// Migrations come from the copy embedded in the binary unless a directory is
// given, which lets operators test a new migration without rebuilding.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers pgx5://
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file" // registers file://
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/taibuivan/yomira-press/data/migrations"
)

// RunUp migrates dsn to the latest version. A dirty database is refused
// rather than forced.
func RunUp(dsn, dir string, logger *slog.Logger) error {
	migrator, err := newMigrator(dsn, dir)
	if err != nil {
		return err
	}
	defer func() {
		if sourceErr, dbErr := migrator.Close(); sourceErr != nil || dbErr != nil {
			logger.Warn("migration_close_failed", slog.Any("source_error", sourceErr), slog.Any("db_error", dbErr))
		}
	}()
	migrator.Log = migrateLogger{logger: logger}

	from, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		from = 0
	case err != nil:
		return fmt.Errorf("migration: read version: %w", err)
	case dirty:
		return fmt.Errorf("migration: version %d is dirty, fix it by hand and run `migrate force`", from)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration: up from version %d: %w", from, err)
	}

	to, _, _ := migrator.Version()
	logger.Info("migration_complete",
		slog.String("source", sourceName(dir)),
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)
	return nil
}

func newMigrator(dsn, dir string) (*migrate.Migrate, error) {
	databaseURL := pgx5URL(dsn)
	if dir != "" {
		migrator, err := migrate.New("file://"+dir, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("migration: open %s: %w", dir, err)
		}
		return migrator, nil
	}

	embedded, err := embeddedSource()
	if err != nil {
		return nil, err
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", embedded, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("migration: open embedded source: %w", err)
	}
	return migrator, nil
}

func embeddedSource() (source.Driver, error) {
	driver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("migration: read embedded migrations: %w", err)
	}
	return driver, nil
}

func sourceName(dir string) string {
	if dir == "" {
		return "embedded"
	}
	return dir
}

// pgx5URL rewrites postgres:// and postgresql:// to the pgx5:// scheme of the
// golang-migrate pgx/v5 driver. Other inputs pass through.
func pgx5URL(dsn string) string {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger forwards golang-migrate output to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (l migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)), slog.String("component", "migrate"))
}

func (l migrateLogger) Verbose() bool {
	return l.logger.Enabled(context.Background(), slog.LevelDebug)
}
