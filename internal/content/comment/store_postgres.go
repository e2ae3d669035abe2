// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/internal/platform/postgres"
)

const resourceName = "Comment"

var (
	commentTable = schema.ContentComment
	accountTable = schema.UserAccount
	postTable    = schema.ContentPost
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DBTX
}

// NewPostgresRepository creates a new comment repository.
func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByPost(ctx context.Context, postID string, limit, offset int) ([]*Comment, int, error) {
	where := fmt.Sprintf(" WHERE c.%s = $1 AND c.%s = TRUE", commentTable.PostID, commentTable.IsActive)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s c", commentTable.Table) + where
	if err := repository.db.QueryRow(ctx, countQuery, postID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "comment_count")
	}

	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s, c.%s
		FROM %s c
		JOIN %s a ON a.%s = c.%s`,
		commentTable.ID, commentTable.PostID, commentTable.UserID, accountTable.Username,
		commentTable.Body, commentTable.CreatedAt, commentTable.UpdatedAt,
		commentTable.Table, accountTable.Table, accountTable.ID, commentTable.UserID,
	) + where + fmt.Sprintf(" ORDER BY c.%s ASC LIMIT $2 OFFSET $3", commentTable.CreatedAt)

	rows, err := repository.db.Query(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "comment_list")
	}
	defer rows.Close()

	comments := make([]*Comment, 0, limit)
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.UserID,
			&comment.Author,
			&comment.Body,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, resourceName, "comment_scan")
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "comment_list")
	}

	return comments, total, nil
}

// Create inserts the comment only while its post is active. The post row is
// share-locked so a concurrent soft delete cannot commit between the check and
// the insert; its cascade waits and then sees the new comment.
func (repository *PostgresRepository) Create(ctx context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		SELECT $1, p.%s, $3, $4, TRUE
		FROM %s p
		WHERE p.%s = $2 AND p.%s = TRUE
		FOR SHARE OF p
		RETURNING %s, %s`,
		commentTable.Table,
		commentTable.ID, commentTable.PostID, commentTable.UserID, commentTable.Body, commentTable.IsActive,
		postTable.ID,
		postTable.Table,
		postTable.ID, postTable.IsActive,
		commentTable.CreatedAt, commentTable.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, comment.ID, comment.PostID, comment.UserID, comment.Body).
		Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Post")
	}
	return dberr.Wrap(err, resourceName, "comment_create")
}

func (repository *PostgresRepository) PostActive(ctx context.Context, postID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = TRUE)`,
		postTable.Table, postTable.ID, postTable.IsActive)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, postID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "Post", "comment_post_active")
	}
	return exists, nil
}
