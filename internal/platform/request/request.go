// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads path parameters, JSON bodies and the
// authenticated identity from incoming requests.
package requestutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
)

// MaxBodyBytes caps JSON bodies. The largest legitimate body is a post of
// 10000 characters plus its tag ids.
const MaxBodyBytes = 1 << 20

// ErrBodyTooLarge is returned for bodies over [MaxBodyBytes].
var ErrBodyTooLarge = apperr.ValidationError("Request body too large")

// DecodeJSON decodes one JSON value from the body into target. Malformed,
// empty or oversized bodies are validation errors.
func DecodeJSON(request *http.Request, target any) error {
	body := http.MaxBytesReader(nil, request.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrBodyTooLarge
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID returns the named chi URL parameter, usually a UUID.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// RequiredIdentity returns the identity stored by RequireAuth, or a
// TOKEN_MISSING rejection when the route was reached without one.
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		return nil, apperr.Rejected(apperr.CodeTokenMissing, "Authentication required")
	}
	return identity, nil
}
