// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
)

type stubAuthenticator struct {
	identity *sec.Identity
	err      error
}

func (stub stubAuthenticator) Authenticate(*http.Request) (*sec.Identity, error) {
	return stub.identity, stub.err
}

type stubGuard struct {
	allowed map[string]string // row id -> owner id
	seenID  string
}

func (guard *stubGuard) Authorize(_ context.Context, identity *sec.Identity, id string) error {
	guard.seenID = id
	if identity.IsAdmin() || guard.allowed[id] == identity.ID {
		return nil
	}
	return apperr.Forbidden("You do not own this resource")
}

var (
	member = &sec.Identity{ID: "u-1", Username: "alice", Role: sec.RoleUser, IsActive: true}
	admin  = &sec.Identity{ID: "u-9", Username: "root", Role: sec.RoleAdmin, IsActive: true}
)

func echoIdentity(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())
	_ = json.NewEncoder(writer).Encode(identity)
}

func decodeCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	return body.Code
}

func TestRequireAuth_InjectsIdentity(t *testing.T) {
	handler := middleware.RequireAuth(stubAuthenticator{identity: member})(http.HandlerFunc(echoIdentity))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var got sec.Identity
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
	assert.Equal(t, *member, got)
}

func TestRequireAuth_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing", apperr.Rejected(apperr.CodeTokenMissing, "x"), http.StatusUnauthorized, apperr.CodeTokenMissing},
		{"expired", sec.ErrTokenExpired, http.StatusUnauthorized, apperr.CodeTokenExpired},
		{"inactive", apperr.Rejected(apperr.CodeIdentityInactive, "x"), http.StatusUnauthorized, apperr.CodeIdentityInactive},
		{"store down", apperr.StoreUnavailable(errors.New("conn refused")), http.StatusServiceUnavailable, apperr.CodeStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			handler := middleware.RequireAuth(stubAuthenticator{err: tt.err})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				reached = true
			}))

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.False(t, reached)
			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantCode, decodeCode(t, recorder))
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		identity   *sec.Identity
		wantStatus int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"member", member, http.StatusForbidden},
		{"admin", admin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.RequireRole(sec.RoleAdmin)(http.HandlerFunc(echoIdentity))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.identity != nil {
				request = request.WithContext(ctxutil.WithIdentity(request.Context(), tt.identity))
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestRequireOwnership(t *testing.T) {
	guard := &stubGuard{allowed: map[string]string{"post-1": member.ID}}

	newRouter := func(identity *sec.Identity) http.Handler {
		router := chi.NewRouter()
		router.Use(middleware.RequireAuth(stubAuthenticator{identity: identity}))
		router.With(middleware.RequireOwnership(guard, "id")).Delete("/posts/{id}", func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusNoContent)
		})
		return router
	}

	tests := []struct {
		name       string
		identity   *sec.Identity
		path       string
		wantStatus int
	}{
		{"owner", member, "/posts/post-1", http.StatusNoContent},
		{"stranger", &sec.Identity{ID: "u-2", Role: sec.RoleUser, IsActive: true}, "/posts/post-1", http.StatusForbidden},
		{"admin on any row", admin, "/posts/post-404", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			newRouter(tt.identity).ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, tt.path, nil))
			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}

	assert.Equal(t, "post-404", guard.seenID)
}
