// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository defines the data access contract for comments.
type Repository interface {
	// ListByPost returns one page of active comments, oldest first.
	ListByPost(ctx context.Context, postID string, limit, offset int) ([]*Comment, int, error)

	// Create inserts the comment if its post is active, else NOT_FOUND for
	// the post. Timestamps are filled in.
	Create(ctx context.Context, comment *Comment) error

	// PostActive reports whether the post exists and is active.
	PostActive(ctx context.Context, postID string) (bool, error)
}
