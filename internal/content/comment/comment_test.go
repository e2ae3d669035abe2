// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/content"
	"github.com/taibuivan/yomira-press/internal/content/comment"
	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/softdelete"
	"github.com/taibuivan/yomira-press/pkg/uuid"
)

var (
	alice = &sec.Identity{ID: uuid.New(), Username: "alice", Role: sec.RoleUser, IsActive: true}
	bob   = &sec.Identity{ID: uuid.New(), Username: "bob", Role: sec.RoleUser, IsActive: true}
)

type memRepo struct {
	posts    map[string]bool // post id -> active
	comments []*comment.Comment
	failWith error
}

func (repo *memRepo) ListByPost(_ context.Context, postID string, limit, offset int) ([]*comment.Comment, int, error) {
	var matched []*comment.Comment
	for _, c := range repo.comments {
		if c.PostID == postID {
			matched = append(matched, c)
		}
	}
	if offset >= len(matched) {
		return []*comment.Comment{}, len(matched), nil
	}
	return matched[offset:min(offset+limit, len(matched))], len(matched), nil
}

func (repo *memRepo) Create(_ context.Context, c *comment.Comment) error {
	if !repo.posts[c.PostID] {
		return apperr.NotFound("Post")
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	repo.comments = append(repo.comments, c)
	return nil
}

func (repo *memRepo) PostActive(_ context.Context, postID string) (bool, error) {
	if repo.failWith != nil {
		return false, repo.failWith
	}
	return repo.posts[postID], nil
}

type memDeleter struct {
	repo *memRepo
	seen []softdelete.Entity
}

func (deleter *memDeleter) SoftDelete(_ context.Context, entity softdelete.Entity, id string) (*softdelete.Result, error) {
	deleter.seen = append(deleter.seen, entity)
	for i, c := range deleter.repo.comments {
		if c.ID == id {
			deleter.repo.comments = append(deleter.repo.comments[:i], deleter.repo.comments[i+1:]...)
			return &softdelete.Result{Entity: entity.Name, ID: id}, nil
		}
	}
	return nil, apperr.NotFound(entity.Name)
}

func newFixture() (*comment.Service, *memRepo, *memDeleter, string) {
	livePost, deadPost := uuid.New(), uuid.New()
	repo := &memRepo{posts: map[string]bool{livePost: true, deadPost: false}}
	deleter := &memDeleter{repo: repo}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return comment.NewService(repo, deleter, logger), repo, deleter, livePost
}

func TestService_Create(t *testing.T) {
	service, repo, _, postID := newFixture()

	created, err := service.Create(context.Background(), alice, postID, "  Nice post  ")

	require.NoError(t, err)
	assert.Equal(t, "Nice post", created.Body)
	assert.Equal(t, alice.ID, created.UserID)
	assert.Len(t, repo.comments, 1)
}

func TestService_Create_Rejects(t *testing.T) {
	service, repo, _, postID := newFixture()
	var deadPost string
	for id, active := range repo.posts {
		if !active {
			deadPost = id
		}
	}

	tests := []struct {
		name   string
		postID string
		body   string
		code   string
	}{
		{"empty body", postID, "   ", "VALIDATION_ERROR"},
		{"long body", postID, strings.Repeat("x", comment.BodyMaxLength+1), "VALIDATION_ERROR"},
		{"inactive post", deadPost, "hello", apperr.CodeNotFound},
		{"missing post", uuid.New(), "hello", apperr.CodeNotFound},
		{"malformed post id", "42", "hello", apperr.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), alice, tt.postID, tt.body)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
		})
	}
	assert.Empty(t, repo.comments)
}

func TestService_List_StoreFailure(t *testing.T) {
	service, repo, _, postID := newFixture()
	repo.failWith = apperr.StoreUnavailable(io.ErrUnexpectedEOF)

	_, _, err := service.List(context.Background(), postID, 20, 0)

	assert.True(t, apperr.HasCode(err, apperr.CodeStoreUnavailable))
}

func TestService_Delete(t *testing.T) {
	service, _, deleter, postID := newFixture()
	created, err := service.Create(context.Background(), bob, postID, "hello")
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	assert.Equal(t, []softdelete.Entity{content.CommentEntity}, deleter.seen)

	assert.True(t, apperr.HasCode(service.Delete(context.Background(), created.ID), apperr.CodeNotFound))
	assert.True(t, apperr.HasCode(service.Delete(context.Background(), "bad"), apperr.CodeNotFound))
}

type headerAuthenticator map[string]*sec.Identity

func (users headerAuthenticator) Authenticate(request *http.Request) (*sec.Identity, error) {
	if identity, ok := users[request.Header.Get("X-User")]; ok {
		return identity, nil
	}
	return nil, apperr.Rejected(apperr.CodeTokenMissing, "Authentication required")
}

type repoGuard struct{ repo *memRepo }

func (guard repoGuard) Authorize(_ context.Context, identity *sec.Identity, id string) error {
	for _, c := range guard.repo.comments {
		if c.ID == id && c.UserID == identity.ID {
			return nil
		}
	}
	return apperr.Forbidden("You do not own this comment")
}

func TestHandler_CommentLifecycle(t *testing.T) {
	service, repo, _, postID := newFixture()
	handler := comment.NewHandler(service, headerAuthenticator{"alice": alice, "bob": bob}, repoGuard{repo: repo})

	router := chi.NewRouter()
	router.Route("/posts/{id}/comments", handler.RegisterPostRoutes)
	router.Route("/comments", handler.RegisterRoutes)

	send := func(method, path, user, body string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, path, strings.NewReader(body))
		if user != "" {
			request.Header.Set("X-User", user)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusUnauthorized, send(http.MethodPost, "/posts/"+postID+"/comments", "", `{"body":"hi"}`).Code)

	created := send(http.MethodPost, "/posts/"+postID+"/comments", "alice", `{"body":"hi"}`)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var payload struct {
		Data comment.Comment `json:"data"`
	}
	require.NoError(t, json.NewDecoder(created.Body).Decode(&payload))

	listed := send(http.MethodGet, "/posts/"+postID+"/comments", "", "")
	require.Equal(t, http.StatusOK, listed.Code)
	assert.Contains(t, listed.Body.String(), `"body":"hi"`)

	assert.Equal(t, http.StatusForbidden, send(http.MethodDelete, "/comments/"+payload.Data.ID, "bob", "").Code)
	assert.Equal(t, http.StatusNoContent, send(http.MethodDelete, "/comments/"+payload.Data.ID, "alice", "").Code)
	assert.Empty(t, repo.comments)
}
