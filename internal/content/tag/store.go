// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import "context"

type Repository interface {
	ListActive(ctx context.Context) ([]*Tag, error)
	Create(ctx context.Context, tag *Tag) error
}
