// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/access"
	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
)

type row struct {
	owner  string
	active bool
}

// memStore keys rows by table then id.
type memStore struct {
	rows    map[string]map[string]row
	lookups int
	err     error
}

func (store *memStore) IsOwnedActive(_ context.Context, resource access.Resource, id, ownerID string) (bool, error) {
	store.lookups++
	if store.err != nil {
		return false, store.err
	}
	found, ok := store.rows[resource.Table][id]
	return ok && found.active && found.owner == ownerID, nil
}

var (
	posts    = access.Resource{Name: "post", Table: "content.post", IDColumn: "id", OwnerColumn: "user_id", ActiveColumn: "is_active"}
	comments = access.Resource{Name: "comment", Table: "content.comment", IDColumn: "id", OwnerColumn: "user_id", ActiveColumn: "is_active"}

	alice = &sec.Identity{ID: "alice", Role: sec.RoleUser, IsActive: true}
	bob   = &sec.Identity{ID: "bob", Role: sec.RoleUser, IsActive: true}
	root  = &sec.Identity{ID: "root", Role: sec.RoleAdmin, IsActive: true}
)

func newStore() *memStore {
	return &memStore{rows: map[string]map[string]row{
		"content.post": {
			"p-live": {owner: "alice", active: true},
			"p-dead": {owner: "alice", active: false},
		},
		"content.comment": {
			"c-1": {owner: "bob", active: true},
		},
	}}
}

func TestAuthorizer_Authorize(t *testing.T) {
	tests := []struct {
		name        string
		identity    *sec.Identity
		resource    access.Resource
		id          string
		wantErr     bool
		wantLookups int
	}{
		{"owner of active post", alice, posts, "p-live", false, 1},
		{"other user", bob, posts, "p-live", true, 1},
		{"owner of inactive post", alice, posts, "p-dead", true, 1},
		{"missing row is forbidden, not not-found", alice, posts, "p-missing", true, 1},
		{"admin bypasses lookup", root, posts, "p-missing", false, 0},
		{"comment owner", bob, comments, "c-1", false, 1},
		{"post owner cannot touch others' comments", alice, comments, "c-1", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore()
			err := access.NewAuthorizer(store).Authorize(context.Background(), tt.identity, tt.resource, tt.id)

			assert.Equal(t, tt.wantLookups, store.lookups)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, apperr.CodeForbidden, appError.Code)
			assert.Equal(t, http.StatusForbidden, appError.HTTPStatus)
		})
	}
}

func TestAuthorizer_StoreFailure(t *testing.T) {
	store := newStore()
	store.err = errors.New("timeout")

	err := access.NewAuthorizer(store).Authorize(context.Background(), alice, posts, "p-live")

	assert.True(t, apperr.HasCode(err, apperr.CodeStoreUnavailable))
}

func TestAuthorizer_NilIdentity(t *testing.T) {
	err := access.NewAuthorizer(newStore()).Authorize(context.Background(), nil, posts, "p-live")
	assert.True(t, apperr.HasCode(err, apperr.CodeTokenMissing))
}

func TestGuard_BindsResource(t *testing.T) {
	guard := access.NewAuthorizer(newStore()).For(comments)

	assert.NoError(t, guard.Authorize(context.Background(), bob, "c-1"))
	assert.Error(t, guard.Authorize(context.Background(), alice, "c-1"))
}
