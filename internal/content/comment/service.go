// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yomira-press/internal/content"
	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
	"github.com/taibuivan/yomira-press/internal/softdelete"
	"github.com/taibuivan/yomira-press/pkg/uuid"
)

// Deleter performs the soft delete. [*softdelete.Manager] satisfies it.
type Deleter interface {
	SoftDelete(ctx context.Context, entity softdelete.Entity, id string) (*softdelete.Result, error)
}

// Service implements comment use cases.
type Service struct {
	repo    Repository
	deleter Deleter
	logger  *slog.Logger
}

// NewService constructs a comment [Service].
func NewService(repo Repository, deleter Deleter, logger *slog.Logger) *Service {
	return &Service{repo: repo, deleter: deleter, logger: logger}
}

// List returns active comments of an active post.
func (service *Service) List(ctx context.Context, postID string, limit, offset int) ([]*Comment, int, error) {
	if err := service.requirePost(ctx, postID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByPost(ctx, postID, limit, offset)
}

// Create adds a comment by author to an active post.
func (service *Service) Create(ctx context.Context, author *sec.Identity, postID, body string) (*Comment, error) {
	body = strings.TrimSpace(body)

	v := &validate.Validator{}
	v.Required(FieldBody, body).
		MinLen(FieldBody, body, BodyMinLength).
		MaxLen(FieldBody, body, BodyMaxLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if !content.ValidID(postID) {
		return nil, apperr.NotFound("Post")
	}

	comment := &Comment{
		ID:     uuid.New(),
		PostID: postID,
		UserID: author.ID,
		Author: author.Username,
		Body:   body,
	}
	if err := service.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", postID),
	)
	return comment, nil
}

// Delete soft-deletes a comment. Ownership is checked before this call.
func (service *Service) Delete(ctx context.Context, id string) error {
	if !content.ValidID(id) {
		return apperr.NotFound(resourceName)
	}
	_, err := service.deleter.SoftDelete(ctx, content.CommentEntity, id)
	return err
}

func (service *Service) requirePost(ctx context.Context, postID string) error {
	if !content.ValidID(postID) {
		return apperr.NotFound("Post")
	}
	active, err := service.repo.PostActive(ctx, postID)
	if err != nil {
		return err
	}
	if !active {
		return apperr.NotFound("Post")
	}
	return nil
}
