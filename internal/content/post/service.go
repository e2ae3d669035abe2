// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yomira-press/internal/content"
	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
	"github.com/taibuivan/yomira-press/internal/softdelete"
	"github.com/taibuivan/yomira-press/pkg/slice"
	"github.com/taibuivan/yomira-press/pkg/uuid"
)

// Deleter performs the cascading soft delete. [*softdelete.Manager] satisfies it.
type Deleter interface {
	SoftDelete(ctx context.Context, entity softdelete.Entity, id string) (*softdelete.Result, error)
}

// Service implements post use cases.
type Service struct {
	repo    Repository
	deleter Deleter
	logger  *slog.Logger
}

// NewService constructs a post [Service].
func NewService(repo Repository, deleter Deleter, logger *slog.Logger) *Service {
	return &Service{repo: repo, deleter: deleter, logger: logger}
}

// CreateInput is the payload of a new post.
type CreateInput struct {
	Title  string
	Body   string
	Status Status
	TagIDs []string
}

// UpdateInput carries the fields to change. Nil fields are left as they are.
type UpdateInput struct {
	Title  *string
	Body   *string
	Status *Status
	TagIDs []string // nil keeps the current tags, empty clears them
}

func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	v := &validate.Validator{}
	if filter.Status != "" {
		v.OneOf(FieldStatus, string(filter.Status), statusNames...)
	}
	if filter.UserID != "" {
		v.UUID("user_id", filter.UserID)
	}
	if err := v.Err(); err != nil {
		return nil, 0, err
	}
	return service.repo.List(ctx, filter, limit, offset)
}

func (service *Service) Get(ctx context.Context, id string) (*Post, error) {
	if !content.ValidID(id) {
		return nil, apperr.NotFound(resourceName)
	}
	return service.repo.FindByID(ctx, id)
}

/*
Create persists a post owned by the caller.

The owner is always the authenticated identity; any owner in the payload
is ignored by the transport layer.
*/
func (service *Service) Create(ctx context.Context, owner *sec.Identity, input CreateInput) (*Post, error) {
	if input.Status == "" {
		input.Status = StatusDraft
	}

	post := &Post{
		ID:     uuid.New(),
		UserID: owner.ID,
		Author: owner.Username,
		Title:  strings.TrimSpace(input.Title),
		Body:   input.Body,
		Status: input.Status,
	}

	tagIDs := slice.Unique(input.TagIDs)
	if err := service.validate(ctx, post, tagIDs); err != nil {
		return nil, err
	}

	if err := service.repo.Create(ctx, post, tagIDs); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "post_created",
		slog.String("post_id", post.ID),
		slog.String("user_id", owner.ID),
	)

	// Reload so the response carries tag names.
	return service.repo.FindByID(ctx, post.ID)
}

// Update applies a partial change. Ownership is checked before this call.
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Post, error) {
	post, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = strings.TrimSpace(*input.Title)
	}
	if input.Body != nil {
		post.Body = *input.Body
	}
	if input.Status != nil {
		post.Status = *input.Status
	}

	var tagIDs []string
	if input.TagIDs != nil {
		tagIDs = slice.Unique(input.TagIDs)
	}
	if err := service.validate(ctx, post, tagIDs); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, post, tagIDs); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "post_updated", slog.String("post_id", post.ID))
	return service.repo.FindByID(ctx, post.ID)
}

// Delete soft-deletes the post and its comments in one transaction.
func (service *Service) Delete(ctx context.Context, id string) (*softdelete.Result, error) {
	if !content.ValidID(id) {
		return nil, apperr.NotFound(resourceName)
	}

	result, err := service.deleter.SoftDelete(ctx, content.PostEntity, id)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "post_soft_deleted",
		slog.String("post_id", id),
		slog.Int64("comments_deactivated", result.Dependents[content.CommentEntity.Name]),
	)
	return result, nil
}

// validate checks field rules and that every referenced tag is active.
func (service *Service) validate(ctx context.Context, post *Post, tagIDs []string) error {
	v := &validate.Validator{}
	v.Required(FieldTitle, post.Title).
		MinLen(FieldTitle, post.Title, TitleMinLength).
		MaxLen(FieldTitle, post.Title, TitleMaxLength).
		Required(FieldBody, post.Body).
		MinLen(FieldBody, post.Body, BodyMinLength).
		MaxLen(FieldBody, post.Body, BodyMaxLength).
		OneOf(FieldStatus, string(post.Status), statusNames...)

	malformed := slice.Filter(tagIDs, func(id string) bool { return !content.ValidID(id) })
	v.Custom(FieldTagIDs, len(malformed) > 0, "Every tag id must be a valid UUID")
	if err := v.Err(); err != nil {
		return err
	}

	if len(tagIDs) == 0 {
		return nil
	}

	count, err := service.repo.CountActiveTags(ctx, tagIDs)
	if err != nil {
		return err
	}
	if count != len(tagIDs) {
		return validate.RequiredError(FieldTagIDs, "Some tags do not exist or are inactive")
	}
	return nil
}
