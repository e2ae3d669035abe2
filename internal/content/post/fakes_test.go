// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/taibuivan/yomira-press/internal/content/post"
	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/softdelete"
	"github.com/taibuivan/yomira-press/pkg/uuid"
)

var (
	alice = &sec.Identity{ID: uuid.New(), Username: "alice", Role: sec.RoleUser, IsActive: true}
	bob   = &sec.Identity{ID: uuid.New(), Username: "bob", Role: sec.RoleUser, IsActive: true}

	goTag   = post.TagRef{ID: uuid.New(), Name: "Go", Slug: "go"}
	deadTag = uuid.New()
)

// memRepo stores posts in insertion order. Only goTag is an active tag.
type memRepo struct {
	posts   []*post.Post
	links   map[string][]string
	updates int
}

func newMemRepo() *memRepo {
	return &memRepo{links: map[string][]string{}}
}

func (repo *memRepo) List(_ context.Context, filter post.Filter, limit, offset int) ([]*post.Post, int, error) {
	var matched []*post.Post
	for _, p := range repo.posts {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.UserID != "" && p.UserID != filter.UserID {
			continue
		}
		matched = append(matched, repo.hydrate(p))
	}
	total := len(matched)
	if offset >= total {
		return []*post.Post{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (repo *memRepo) FindByID(_ context.Context, id string) (*post.Post, error) {
	for _, p := range repo.posts {
		if p.ID == id {
			return repo.hydrate(p), nil
		}
	}
	return nil, apperr.NotFound("Post")
}

func (repo *memRepo) Create(_ context.Context, p *post.Post, tagIDs []string) error {
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	stored := *p
	repo.posts = append(repo.posts, &stored)
	repo.links[p.ID] = slices.Clone(tagIDs)
	return nil
}

func (repo *memRepo) Update(_ context.Context, p *post.Post, tagIDs []string) error {
	repo.updates++
	for i, existing := range repo.posts {
		if existing.ID == p.ID {
			stored := *p
			repo.posts[i] = &stored
			if tagIDs != nil {
				repo.links[p.ID] = slices.Clone(tagIDs)
			}
			return nil
		}
	}
	return apperr.NotFound("Post")
}

func (repo *memRepo) CountActiveTags(_ context.Context, ids []string) (int, error) {
	count := 0
	for _, id := range ids {
		if id == goTag.ID {
			count++
		}
	}
	return count, nil
}

func (repo *memRepo) hydrate(p *post.Post) *post.Post {
	copied := *p
	copied.Tags = []post.TagRef{}
	for _, id := range repo.links[p.ID] {
		if id == goTag.ID {
			copied.Tags = append(copied.Tags, goTag)
		}
	}
	return &copied
}

// memDeleter removes the post from the repo and reports a fixed comment count.
type memDeleter struct {
	repo     *memRepo
	entities []softdelete.Entity
}

func (deleter *memDeleter) SoftDelete(_ context.Context, entity softdelete.Entity, id string) (*softdelete.Result, error) {
	deleter.entities = append(deleter.entities, entity)
	for i, p := range deleter.repo.posts {
		if p.ID == id {
			deleter.repo.posts = slices.Delete(deleter.repo.posts, i, i+1)
			return &softdelete.Result{Entity: entity.Name, ID: id, Dependents: map[string]int64{"Comment": 2}}, nil
		}
	}
	return nil, apperr.NotFound(entity.Name)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService() (*post.Service, *memRepo, *memDeleter) {
	repo := newMemRepo()
	deleter := &memDeleter{repo: repo}
	return post.NewService(repo, deleter, discardLogger()), repo, deleter
}

// headerAuthenticator maps the X-User header to a fixed identity.
type headerAuthenticator map[string]*sec.Identity

func (users headerAuthenticator) Authenticate(request *http.Request) (*sec.Identity, error) {
	identity, ok := users[request.Header.Get("X-User")]
	if !ok {
		return nil, apperr.Rejected(apperr.CodeTokenMissing, "Authentication required")
	}
	return identity, nil
}

// repoGuard checks ownership against the in-memory repo.
type repoGuard struct{ repo *memRepo }

func (guard repoGuard) Authorize(ctx context.Context, identity *sec.Identity, id string) error {
	if identity.IsAdmin() {
		return nil
	}
	p, err := guard.repo.FindByID(ctx, id)
	if err != nil || p.UserID != identity.ID {
		return apperr.Forbidden("You do not own this post")
	}
	return nil
}

func ref[T any](v T) *T { return &v }
