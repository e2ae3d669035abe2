// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package content declares the content tables to the ownership and
// soft-delete machinery.
//
// Post and Comment share one ownership implementation through their
// [access.Resource] descriptors. The soft-delete edge table lists every
// parent-child relationship that must be deactivated together.
package content

import (
	"github.com/google/uuid"

	"github.com/taibuivan/yomira-press/internal/access"
	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/softdelete"
)

// # Ownership Descriptors

var (
	// PostResource is owned through content.post.user_id.
	PostResource = access.Resource{
		Name:         "post",
		Table:        schema.ContentPost.Table,
		IDColumn:     schema.ContentPost.ID,
		OwnerColumn:  schema.ContentPost.UserID,
		ActiveColumn: schema.ContentPost.IsActive,
	}

	// CommentResource is owned through content.comment.user_id.
	CommentResource = access.Resource{
		Name:         "comment",
		Table:        schema.ContentComment.Table,
		IDColumn:     schema.ContentComment.ID,
		OwnerColumn:  schema.ContentComment.UserID,
		ActiveColumn: schema.ContentComment.IsActive,
	}
)

// # Soft-Delete Entities

var (
	PostEntity = softdelete.Entity{
		Name:         "Post",
		Table:        schema.ContentPost.Table,
		IDColumn:     schema.ContentPost.ID,
		ActiveColumn: schema.ContentPost.IsActive,
	}

	CommentEntity = softdelete.Entity{
		Name:         "Comment",
		Table:        schema.ContentComment.Table,
		IDColumn:     schema.ContentComment.ID,
		ActiveColumn: schema.ContentComment.IsActive,
	}

	TagEntity = softdelete.Entity{
		Name:         "Tag",
		Table:        schema.ContentTag.Table,
		IDColumn:     schema.ContentTag.ID,
		ActiveColumn: schema.ContentTag.IsActive,
	}
)

// Edges is the declared dependency table. Deleting a post deactivates its
// comments in the same transaction.
func Edges() []softdelete.Edge {
	return []softdelete.Edge{
		{Parent: PostEntity, Child: CommentEntity, ForeignKey: schema.ContentComment.PostID},
	}
}

// ValidID reports whether id can name a content row. Malformed ids are
// answered with NOT_FOUND before reaching the database.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
