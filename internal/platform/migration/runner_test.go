// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgx5URL(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"postgres scheme", "postgres://u:p@db:5432/press", "pgx5://u:p@db:5432/press"},
		{"postgresql scheme", "postgresql://u:p@db/press?sslmode=disable", "pgx5://u:p@db/press?sslmode=disable"},
		{"already pgx5", "pgx5://u:p@db/press", "pgx5://u:p@db/press"},
		{"keyword dsn untouched", "host=db user=u dbname=press", "host=db user=u dbname=press"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pgx5URL(tt.dsn))
		})
	}
}

func TestEmbeddedSource_HasInitMigration(t *testing.T) {
	driver, err := embeddedSource()
	require.NoError(t, err)
	defer driver.Close()

	first, err := driver.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, identifier, err := driver.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "init", identifier)

	schema, err := io.ReadAll(up)
	require.NoError(t, err)
	assert.Contains(t, string(schema), "CREATE TABLE content.comment")
	assert.Contains(t, string(schema), "CREATE TABLE users.account")

	down, _, err := driver.ReadDown(first)
	require.NoError(t, err)
	require.NoError(t, down.Close())
}

func TestMigrateLogger(t *testing.T) {
	var buf bytes.Buffer
	quiet := migrateLogger{logger: slog.New(slog.NewTextHandler(&buf, nil))}
	assert.False(t, quiet.Verbose())

	verbose := migrateLogger{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	assert.True(t, verbose.Verbose())
	verbose.Printf("Start buffering %d/u %s\n", 1, "init")
	assert.Contains(t, buf.String(), "Start buffering 1/u init")
}
