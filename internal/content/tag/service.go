// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yomira-press/internal/content"
	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
	"github.com/taibuivan/yomira-press/internal/softdelete"
	"github.com/taibuivan/yomira-press/pkg/slug"
	"github.com/taibuivan/yomira-press/pkg/uuid"
)

type Deleter interface {
	SoftDelete(ctx context.Context, entity softdelete.Entity, id string) (*softdelete.Result, error)
}

type Service struct {
	repo    Repository
	deleter Deleter
	logger  *slog.Logger
}

func NewService(repo Repository, deleter Deleter, logger *slog.Logger) *Service {
	return &Service{repo: repo, deleter: deleter, logger: logger}
}

func (service *Service) ListTags(ctx context.Context) ([]*Tag, error) {
	return service.repo.ListActive(ctx)
}

// CreateTag derives the slug from the name.
func (service *Service) CreateTag(ctx context.Context, name, description string) (*Tag, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	tagSlug := slug.From(name)

	v := &validate.Validator{}
	v.Required(FieldName, name).
		MinLen(FieldName, name, NameMinLength).
		MaxLen(FieldName, name, NameMaxLength).
		MaxLen(FieldDescription, description, DescriptionMaxLength)
	if name != "" {
		v.Slug(FieldSlug, tagSlug)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	tag := &Tag{ID: uuid.New(), Name: name, Slug: tagSlug, Description: description}
	if err := service.repo.Create(ctx, tag); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "tag_created", slog.String("tag_id", tag.ID), slog.String("slug", tag.Slug))
	return tag, nil
}

func (service *Service) DeleteTag(ctx context.Context, id string) error {
	if !content.ValidID(id) {
		return apperr.NotFound("Tag")
	}
	_, err := service.deleter.SoftDelete(ctx, content.TagEntity, id)
	return err
}
