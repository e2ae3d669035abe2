// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"

	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/internal/platform/postgres"
)

var tagTable = schema.ContentTag

type PostgresRepository struct {
	db postgres.DBTX
}

func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListActive(ctx context.Context) ([]*Tag, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, COALESCE(%s, ''), %s FROM %s WHERE %s = TRUE ORDER BY %s ASC`,
		tagTable.ID, tagTable.Name, tagTable.Slug, tagTable.Description, tagTable.CreatedAt,
		tagTable.Table, tagTable.IsActive, tagTable.Name)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Tag", "list_tags")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "Tag", "scan_tag")
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Tag", "list_tags")
	}
	return tags, nil
}

// Create inserts the tag. A duplicate slug surfaces as CONFLICT.
func (repository *PostgresRepository) Create(ctx context.Context, tag *Tag) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, NULLIF($4, ''), TRUE) RETURNING %s`,
		tagTable.Table, tagTable.ID, tagTable.Name, tagTable.Slug, tagTable.Description, tagTable.IsActive,
		tagTable.CreatedAt)

	err := repository.db.QueryRow(ctx, query, tag.ID, tag.Name, tag.Slug, tag.Description).Scan(&tag.CreatedAt)
	return dberr.Wrap(err, "Tag", "create_tag")
}
