// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/access"
	"github.com/taibuivan/yomira-press/internal/api"
	"github.com/taibuivan/yomira-press/internal/content"
	"github.com/taibuivan/yomira-press/internal/content/comment"
	"github.com/taibuivan/yomira-press/internal/content/post"
	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/config"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/softdelete"
	"github.com/taibuivan/yomira-press/internal/users/account"
	"github.com/taibuivan/yomira-press/internal/users/auth"
)

// world is a single in-memory database shared by every store the server uses.
type world struct {
	users    map[string]*auth.User
	posts    map[string]*post.Post
	comments map[string]*comment.Comment
	inactive map[string]bool // row id -> soft deleted
}

func newWorld() *world {
	return &world{
		users:    map[string]*auth.User{},
		posts:    map[string]*post.Post{},
		comments: map[string]*comment.Comment{},
		inactive: map[string]bool{},
	}
}

// # Users

func (w *world) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := w.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (w *world) findBy(match func(*auth.User) bool) (*auth.User, error) {
	for _, user := range w.users {
		if match(user) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (w *world) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return w.findBy(func(user *auth.User) bool { return strings.EqualFold(user.Email, email) })
}

func (w *world) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return w.findBy(func(user *auth.User) bool { return strings.EqualFold(user.Username, username) })
}

func (w *world) Create(_ context.Context, user *auth.User) error {
	copied := *user
	w.users[user.ID] = &copied
	return nil
}

func (w *world) UpdatePassword(_ context.Context, userID, newHash string) error {
	w.users[userID].PasswordHash = newHash
	return nil
}

func (w *world) TouchLastLogin(_ context.Context, userID string, at time.Time) error {
	w.users[userID].LastLoginAt = &at
	return nil
}

func (w *world) List(context.Context, int, int) ([]*auth.User, int, error) {
	return nil, 0, nil
}

func (w *world) SetActive(_ context.Context, userID string, active bool) error {
	w.users[userID].IsActive = active
	return nil
}

func (w *world) SetRole(_ context.Context, userID string, role sec.UserRole) error {
	w.users[userID].Role = role
	return nil
}

// # Ownership and soft delete

func (w *world) IsOwnedActive(_ context.Context, resource access.Resource, id, ownerID string) (bool, error) {
	if w.inactive[id] {
		return false, nil
	}
	switch resource.Table {
	case content.PostResource.Table:
		p, ok := w.posts[id]
		return ok && p.UserID == ownerID, nil
	case content.CommentResource.Table:
		c, ok := w.comments[id]
		return ok && c.UserID == ownerID, nil
	}
	return false, nil
}

func (w *world) WithinTx(ctx context.Context, fn func(context.Context, softdelete.Tx) error) error {
	return fn(ctx, w)
}

func (w *world) Deactivate(_ context.Context, entity softdelete.Entity, id string) (int64, error) {
	_, isPost := w.posts[id]
	_, isComment := w.comments[id]
	exists := (entity.Table == content.PostEntity.Table && isPost) ||
		(entity.Table == content.CommentEntity.Table && isComment)
	if !exists || w.inactive[id] {
		return 0, nil
	}
	w.inactive[id] = true
	return 1, nil
}

func (w *world) DeactivateDependents(_ context.Context, _ softdelete.Edge, parentID string) (int64, error) {
	var count int64
	for id, c := range w.comments {
		if c.PostID == parentID && !w.inactive[id] {
			w.inactive[id] = true
			count++
		}
	}
	return count, nil
}

// postRepo and commentRepo read the world through the active filter.
type postRepo struct{ *world }

func (r postRepo) List(context.Context, post.Filter, int, int) ([]*post.Post, int, error) {
	var posts []*post.Post
	for id, p := range r.posts {
		if !r.inactive[id] {
			posts = append(posts, p)
		}
	}
	return posts, len(posts), nil
}

func (r postRepo) FindByID(_ context.Context, id string) (*post.Post, error) {
	p, ok := r.posts[id]
	if !ok || r.inactive[id] {
		return nil, apperr.NotFound("Post")
	}
	copied := *p
	copied.Tags = []post.TagRef{}
	return &copied, nil
}

func (r postRepo) Create(_ context.Context, p *post.Post, _ []string) error {
	copied := *p
	r.posts[p.ID] = &copied
	return nil
}

func (r postRepo) Update(_ context.Context, p *post.Post, _ []string) error {
	copied := *p
	r.posts[p.ID] = &copied
	return nil
}

func (r postRepo) CountActiveTags(_ context.Context, ids []string) (int, error) {
	return 0, nil
}

type commentRepo struct{ *world }

func (r commentRepo) ListByPost(_ context.Context, postID string, _, _ int) ([]*comment.Comment, int, error) {
	var comments []*comment.Comment
	for id, c := range r.comments {
		if c.PostID == postID && !r.inactive[id] {
			comments = append(comments, c)
		}
	}
	return comments, len(comments), nil
}

func (r commentRepo) Create(_ context.Context, c *comment.Comment) error {
	if _, ok := r.posts[c.PostID]; !ok || r.inactive[c.PostID] {
		return apperr.NotFound("Post")
	}
	r.comments[c.ID] = c
	return nil
}

func (r commentRepo) PostActive(_ context.Context, postID string) (bool, error) {
	_, ok := r.posts[postID]
	return ok && !r.inactive[postID], nil
}

type noResets struct{}

func (noResets) Set(context.Context, string, string, time.Duration) error { return nil }
func (noResets) Consume(context.Context, string) (string, error)          { return "", apperr.NotFound("Reset token") }

// # Harness

func newTestServer(t *testing.T) (http.Handler, *world) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := newWorld()

	tokens := sec.NewTokenService(sec.TokenConfig{AccessSecret: "e2e-secret", Issuer: "blog-api"})
	authenticator := auth.NewAuthenticator(tokens, db)
	authorizer := access.NewAuthorizer(db)
	deleter := softdelete.NewManager(db, content.Edges()...)

	authService := auth.NewService(db, noResets{}, sec.NewHasher(4), tokens, logger)
	postService := post.NewService(postRepo{db}, deleter, logger)
	commentService := comment.NewService(commentRepo{db}, deleter, logger)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger)
	serverCtx, cancelServer := context.WithCancel(context.Background())
	t.Cleanup(cancelServer)
	server := api.NewServer(serverCtx, &config.Config{ServerPort: "0", Environment: "development"}, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, authenticator, false),
		Accounts:  account.NewHandler(account.NewService(db, logger), authenticator),
		Posts:     post.NewHandler(postService, authenticator, authorizer.For(content.PostResource)),
		Comments:  comment.NewHandler(commentService, authenticator, authorizer.For(content.CommentResource)),
	})
	return server.Handler(), db
}

func send(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func dataField(t *testing.T, recorder *httptest.ResponseRecorder, field string) string {
	t.Helper()
	var payload struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&payload), recorder.Body.String())
	value, _ := payload.Data[field].(string)
	return value
}

func signUp(t *testing.T, handler http.Handler, username string) string {
	t.Helper()
	registered := send(t, handler, http.MethodPost, "/api/v1/auth/register", "",
		`{"username":"`+username+`","email":"`+username+`@press.test","password":"secret-pw"}`)
	require.Equal(t, http.StatusCreated, registered.Code, registered.Body.String())

	loggedIn := send(t, handler, http.MethodPost, "/api/v1/auth/login", "",
		`{"login":"`+username+`","password":"secret-pw"}`)
	require.Equal(t, http.StatusOK, loggedIn.Code, loggedIn.Body.String())
	return dataField(t, loggedIn, "access_token")
}

// # Scenarios

func TestServer_OwnershipAndCascade(t *testing.T) {
	handler, db := newTestServer(t)
	alice := signUp(t, handler, "alice")
	bob := signUp(t, handler, "bob")

	created := send(t, handler, http.MethodPost, "/api/v1/posts", alice,
		`{"title":"Soft deletes","body":"Flags instead of rows."}`)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	postID := dataField(t, created, "id")

	for _, token := range []string{alice, bob} {
		recorder := send(t, handler, http.MethodPost, "/api/v1/posts/"+postID+"/comments", token, `{"body":"first!"}`)
		require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	}

	// A non-owner gets 403 and nothing changes.
	forbidden := send(t, handler, http.MethodDelete, "/api/v1/posts/"+postID, bob, "")
	assert.Equal(t, http.StatusForbidden, forbidden.Code)
	assert.False(t, db.inactive[postID])

	// The owner deletes; comments go with the post.
	deleted := send(t, handler, http.MethodDelete, "/api/v1/posts/"+postID, alice, "")
	require.Equal(t, http.StatusOK, deleted.Code, deleted.Body.String())
	assert.True(t, db.inactive[postID])
	for id := range db.comments {
		assert.True(t, db.inactive[id], "comment %s still active", id)
	}

	assert.Equal(t, http.StatusNotFound, send(t, handler, http.MethodGet, "/api/v1/posts/"+postID, "", "").Code)
	assert.Equal(t, http.StatusNotFound, send(t, handler, http.MethodGet, "/api/v1/posts/"+postID+"/comments", "", "").Code)

	// Deleting again: the owner no longer owns an active row.
	assert.Equal(t, http.StatusForbidden, send(t, handler, http.MethodDelete, "/api/v1/posts/"+postID, alice, "").Code)
}

func TestServer_DisabledAccountIsRejected(t *testing.T) {
	handler, db := newTestServer(t)
	alice := signUp(t, handler, "alice")

	for _, user := range db.users {
		user.IsActive = false
	}

	recorder := send(t, handler, http.MethodPost, "/api/v1/posts", alice, `{"title":"Hello Go","body":"A body long enough."}`)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), apperr.CodeIdentityInactive)
	assert.Empty(t, db.posts)
}

func TestServer_AdminRoutesUseStoredRole(t *testing.T) {
	handler, db := newTestServer(t)
	alice := signUp(t, handler, "alice")

	assert.Equal(t, http.StatusForbidden, send(t, handler, http.MethodGet, "/api/v1/users", alice, "").Code)

	// Promotion takes effect without a new token.
	for _, user := range db.users {
		user.Role = sec.RoleAdmin
	}
	assert.Equal(t, http.StatusOK, send(t, handler, http.MethodGet, "/api/v1/users", alice, "").Code)
}

func TestServer_Health(t *testing.T) {
	handler, _ := newTestServer(t)

	assert.Equal(t, http.StatusOK, send(t, handler, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, send(t, handler, http.MethodGet, "/ready", "", "").Code)
}
