// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access implements ownership-based authorization for mutable content.

A caller may modify a row when they are an admin, or when a single lookup
finds the row active and owned by them. Any other outcome is FORBIDDEN; a
missing row is deliberately indistinguishable from someone else's row.

One [Authorizer] serves every content type. The per-type details live in a
[Resource] descriptor.
*/
package access

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
)

// Resource describes where ownership of a content type is recorded.
type Resource struct {
	Name         string // Human name used in messages ("Post")
	Table        string
	IDColumn     string
	OwnerColumn  string
	ActiveColumn string
}

// Store answers the ownership question with one lookup.
type Store interface {
	// IsOwnedActive reports whether a row with id exists, is owned by ownerID
	// and is active. A missing row is (false, nil).
	IsOwnedActive(ctx context.Context, resource Resource, id, ownerID string) (bool, error)
}

// Authorizer grants modification rights to owners and admins.
type Authorizer struct {
	store Store
}

// NewAuthorizer creates an [Authorizer] backed by the given store.
func NewAuthorizer(store Store) *Authorizer {
	return &Authorizer{store: store}
}

/*
Authorize decides whether identity may modify the row id of resource.

Returns:
  - nil: Admin, or active owner
  - error: FORBIDDEN, TOKEN_MISSING for a nil identity, STORE_UNAVAILABLE
*/
func (authorizer *Authorizer) Authorize(ctx context.Context, identity *sec.Identity, resource Resource, id string) error {
	if identity == nil {
		return apperr.Rejected(apperr.CodeTokenMissing, "Authentication required")
	}

	// Admins skip the lookup entirely.
	if identity.IsAdmin() {
		return nil
	}

	owned, err := authorizer.store.IsOwnedActive(ctx, resource, id, identity.ID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeStoreUnavailable) {
			return err
		}
		return apperr.StoreUnavailable(err)
	}

	if !owned {
		ctxutil.GetLogger(ctx).InfoContext(ctx, "ownership_denied",
			slog.String("resource", resource.Name),
			slog.String("resource_id", id),
			slog.String("user_id", identity.ID),
		)
		return apperr.Forbidden("You do not have permission to modify this " + resource.Name)
	}

	return nil
}

// For binds the authorizer to one resource, producing a guard usable by the
// HTTP ownership middleware.
func (authorizer *Authorizer) For(resource Resource) *Guard {
	return &Guard{authorizer: authorizer, resource: resource}
}

// Guard is an [Authorizer] fixed to a single [Resource].
type Guard struct {
	authorizer *Authorizer
	resource   Resource
}

// Authorize checks identity against the guard's resource.
func (guard *Guard) Authorize(ctx context.Context, identity *sec.Identity, id string) error {
	return guard.authorizer.Authorize(ctx, identity, guard.resource, id)
}
