// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import "time"

type Tag struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	NameMinLength        = 2
	NameMaxLength        = 30
	DescriptionMaxLength = 200

	FieldName        = "name"
	FieldSlug        = "slug"
	FieldDescription = "description"
)
