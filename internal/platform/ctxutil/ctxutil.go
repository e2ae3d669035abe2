// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores the per-request values set by middleware: the
// request id, the request-scoped logger and the authenticated identity.
//
// Keys are unexported struct types, so no other package can read or
// overwrite these values except through the accessors below.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomira-press/internal/platform/sec"
)

type (
	requestIDKey struct{}
	loggerKey    struct{}
	identityKey  struct{}
)

// WithRequestID attaches the X-Request-ID value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns the request id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithLogger attaches the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger returns the request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithIdentity attaches the authenticated identity.
func WithIdentity(ctx context.Context, identity *sec.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity returns the authenticated identity, or nil for anonymous
// requests.
func GetIdentity(ctx context.Context) *sec.Identity {
	identity, _ := ctx.Value(identityKey{}).(*sec.Identity)
	return identity
}
