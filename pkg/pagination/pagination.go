// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination reads ?page= and ?limit= from list requests and builds
// the "meta" block that accompanies every list response.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit applies when ?limit= is absent or unreadable.
	DefaultLimit = 20

	// MaxLimit caps ?limit=. Larger values are clamped, not rejected.
	MaxLimit = 100
)

// Params is a 1-based page request.
type Params struct {
	Page  int
	Limit int
}

// Meta describes where a page sits in the full result set.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// FromRequest parses the page parameters of r. Missing, non-numeric or
// non-positive values fall back to page 1 and [DefaultLimit].
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	params := Params{
		Page:  positiveInt(query.Get("page"), 1),
		Limit: positiveInt(query.Get("limit"), DefaultLimit),
	}
	params.Limit = min(params.Limit, MaxLimit)
	return params
}

// Offset is the number of rows to skip for this page.
func (p Params) Offset() int {
	return (max(p.Page, 1) - 1) * p.Limit
}

// Meta builds the response metadata for a result set of total rows.
func (p Params) Meta(total int) Meta {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    p.Page < pages,
	}
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
