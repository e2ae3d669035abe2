// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
)

// Authenticator turns a request into a freshly loaded identity.
//
// # Why an interface?
//
// Defining Authenticator here decouples the middleware from the `auth`
// package, so handler tests can inject a stub identity.
type Authenticator interface {
	Authenticate(request *http.Request) (*sec.Identity, error)
}

// OwnershipGuard decides whether an identity may modify a specific row.
type OwnershipGuard interface {
	Authorize(ctx context.Context, identity *sec.Identity, id string) error
}

// RequireAuth runs the authenticator and stores the identity in the context.
//
// # Flow
//  1. Extract the token (cookie, header, query, body) and verify it.
//  2. Load the account by primary key and require it to be active.
//  3. Inject [*sec.Identity] into the request context for downstream use.
//
// Any failure aborts with the authenticator's error (401 codes or 503).
func RequireAuth(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity, err := authenticator.Authenticate(request)
			if err != nil {
				if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusUnauthorized {
					ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "auth_rejected",
						slog.String("code", appError.Code),
					)
				}
				respond.Error(writer, request, err)
				return
			}

			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole blocks requests if the authenticated identity lacks the role.
//
// # Usage
//
// Must be registered AFTER [RequireAuth]. The role checked is the stored one
// loaded by the authenticator, never the copy inside the token.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if identity == nil {
				respond.Error(writer, request, apperr.Rejected(apperr.CodeTokenMissing, "Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !identity.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireOwnership allows the request only if the identity owns the active row
// named by the URL parameter, or is an admin.
//
// Must be registered AFTER [RequireAuth].
func RequireOwnership(guard OwnershipGuard, param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())
			if identity == nil {
				respond.Error(writer, request, apperr.Rejected(apperr.CodeTokenMissing, "Authentication required"))
				return
			}

			if err := guard.Authorize(request.Context(), identity, chi.URLParam(request, param)); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
