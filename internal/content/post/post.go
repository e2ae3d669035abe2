// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package post manages blog posts.

Reads only ever see active posts. Creation records the caller as owner;
updates and deletes are limited to the owner or an admin by the ownership
middleware, and the owner never changes. Deleting a post is a soft delete
that also deactivates its comments.
*/
package post

import "time"

// Status is the publication state of a post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// statusNames lists the accepted status values, in display order.
var statusNames = []string{string(StatusDraft), string(StatusPublished), string(StatusArchived)}

// Post is an authored article.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Status    Status    `json:"status"`
	Tags      []TagRef  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagRef is the tag summary embedded in a post.
type TagRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Filter narrows a post listing.
type Filter struct {
	Status Status
	UserID string
}

// Length limits for post fields.
const (
	TitleMinLength = 3
	TitleMaxLength = 200
	BodyMinLength  = 10
	BodyMaxLength  = 10000
)

// Field names used in validation errors.
const (
	FieldTitle  = "title"
	FieldBody   = "body"
	FieldStatus = "status"
	FieldTagIDs = "tag_ids"
)
