// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/internal/platform/postgres"
	"github.com/taibuivan/yomira-press/pkg/slice"
)

const resourceName = "Post"

var (
	postTable    = schema.ContentPost
	accountTable = schema.UserAccount
	tagTable     = schema.ContentTag
	postTagTable = schema.ContentPostTag

	// selectPost joins the author so listings can show a username.
	selectPost = fmt.Sprintf(`
		SELECT p.%s, p.%s, a.%s, p.%s, p.%s, p.%s, p.%s, p.%s
		FROM %s p
		JOIN %s a ON a.%s = p.%s`,
		postTable.ID, postTable.UserID, accountTable.Username, postTable.Title, postTable.Body,
		postTable.Status, postTable.CreatedAt, postTable.UpdatedAt,
		postTable.Table, accountTable.Table, accountTable.ID, postTable.UserID,
	)
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Pool
}

// NewPostgresRepository creates a new post repository.
func NewPostgresRepository(db postgres.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	conditions := []string{fmt.Sprintf("p.%s = TRUE", postTable.IsActive)}
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("p.%s = $%d", postTable.Status, len(args)))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("p.%s = $%d", postTable.UserID, len(args)))
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s p%s", postTable.Table, where)
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "post_count")
	}

	pageQuery := selectPost + where + fmt.Sprintf(" ORDER BY p.%s DESC LIMIT $%d OFFSET $%d",
		postTable.CreatedAt, len(args)+1, len(args)+2)

	rows, err := repository.db.Query(ctx, pageQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "post_list")
	}
	defer rows.Close()

	posts := make([]*Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceName, "post_scan")
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "post_list")
	}

	if err := repository.attachTags(ctx, posts); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Post, error) {
	query := selectPost + fmt.Sprintf(" WHERE p.%s = $1 AND p.%s = TRUE", postTable.ID, postTable.IsActive)

	post, err := scanPost(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "post_find_by_id")
	}

	if err := repository.attachTags(ctx, []*Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, post *Post, tagIDs []string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING %s, %s`,
		postTable.Table,
		postTable.ID, postTable.UserID, postTable.Title, postTable.Body, postTable.Status, postTable.IsActive,
		postTable.CreatedAt, postTable.UpdatedAt,
	)

	return postgres.WithTx(ctx, repository.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query, post.ID, post.UserID, post.Title, post.Body, post.Status).
			Scan(&post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, resourceName, "post_create")
		}
		return linkTags(ctx, tx, post.ID, tagIDs)
	})
}

func (repository *PostgresRepository) Update(ctx context.Context, post *Post, tagIDs []string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s = TRUE
		RETURNING %s`,
		postTable.Table,
		postTable.Title, postTable.Body, postTable.Status, postTable.UpdatedAt,
		postTable.ID, postTable.IsActive,
		postTable.UpdatedAt,
	)

	return postgres.WithTx(ctx, repository.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query, post.ID, post.Title, post.Body, post.Status).Scan(&post.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, resourceName, "post_update")
		}

		if tagIDs == nil {
			return nil
		}

		unlink := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, postTagTable.Table, postTagTable.PostID)
		if _, err := tx.Exec(ctx, unlink, post.ID); err != nil {
			return dberr.Wrap(err, resourceName, "post_unlink_tags")
		}
		return linkTags(ctx, tx, post.ID, tagIDs)
	})
}

func (repository *PostgresRepository) CountActiveTags(ctx context.Context, ids []string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ANY($1::uuid[]) AND %s = TRUE`,
		tagTable.Table, tagTable.ID, tagTable.IsActive)

	var count int
	if err := repository.db.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "Tag", "post_count_active_tags")
	}
	return count, nil
}

// linkTags inserts the post-tag rows inside the caller's transaction.
func linkTags(ctx context.Context, tx pgx.Tx, postID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) SELECT $1, UNNEST($2::uuid[])`,
		postTagTable.Table, postTagTable.PostID, postTagTable.TagID)

	if _, err := tx.Exec(ctx, query, postID, tagIDs); err != nil {
		return dberr.Wrap(err, resourceName, "post_link_tags")
	}
	return nil
}

// attachTags loads the active tags of every post in one query.
func (repository *PostgresRepository) attachTags(ctx context.Context, posts []*Post) error {
	if len(posts) == 0 {
		return nil
	}

	byID := make(map[string]*Post, len(posts))
	for _, post := range posts {
		post.Tags = []TagRef{}
		byID[post.ID] = post
	}
	ids := slice.Map(posts, func(post *Post) string { return post.ID })

	query := fmt.Sprintf(`
		SELECT pt.%s, t.%s, t.%s, t.%s
		FROM %s pt
		JOIN %s t ON t.%s = pt.%s
		WHERE pt.%s = ANY($1::uuid[]) AND t.%s = TRUE
		ORDER BY t.%s`,
		postTagTable.PostID, tagTable.ID, tagTable.Name, tagTable.Slug,
		postTagTable.Table,
		tagTable.Table, tagTable.ID, postTagTable.TagID,
		postTagTable.PostID, tagTable.IsActive,
		tagTable.Name,
	)

	rows, err := repository.db.Query(ctx, query, ids)
	if err != nil {
		return dberr.Wrap(err, resourceName, "post_load_tags")
	}
	defer rows.Close()

	for rows.Next() {
		var postID string
		var tag TagRef
		if err := rows.Scan(&postID, &tag.ID, &tag.Name, &tag.Slug); err != nil {
			return dberr.Wrap(err, resourceName, "post_scan_tag")
		}
		if post, ok := byID[postID]; ok {
			post.Tags = append(post.Tags, tag)
		}
	}
	return dberr.Wrap(rows.Err(), resourceName, "post_load_tags")
}

// scanPost hydrates a [Post] in selectPost column order.
func scanPost(row pgx.Row) (*Post, error) {
	post := &Post{}
	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Author,
		&post.Title,
		&post.Body,
		&post.Status,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}
