// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import "context"

// Repository defines the data access contract for posts.
//
// Every read filters on the active flag; an inactive post is NOT_FOUND.
type Repository interface {
	// List returns one page of active posts and the total matching count.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Post, int, error)

	// FindByID returns an active post with its active tags.
	FindByID(ctx context.Context, id string) (*Post, error)

	// Create inserts the post and its tag links in one transaction.
	Create(ctx context.Context, post *Post, tagIDs []string) error

	// Update persists title, body and status. A non-nil tagIDs replaces the
	// tag links in the same transaction.
	Update(ctx context.Context, post *Post, tagIDs []string) error

	// CountActiveTags returns how many of ids are active tags.
	CountActiveTags(ctx context.Context, ids []string) (int, error)
}
