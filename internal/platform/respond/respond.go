// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond writes every HTTP response body of the API.
//
// Success bodies are {"data": ...}, list bodies add a "meta" block, and
// failures are {"error", "code", "details"} built from an [apperr.AppError].
// Rejected credentials also carry a Bearer challenge header.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-press/pkg/pagination"
)

// SuccessEnvelope wraps a single resource.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PaginatedEnvelope wraps one page of a list.
type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the body of every failed request.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// challenges maps 401 codes to the RFC 6750 error attribute of the
// WWW-Authenticate header.
var challenges = map[string]string{
	apperr.CodeTokenMissing:     `Bearer realm="api"`,
	apperr.CodeTokenMalformed:   `Bearer realm="api", error="invalid_token"`,
	apperr.CodeTokenExpired:     `Bearer realm="api", error="invalid_token", error_description="expired"`,
	apperr.CodeIdentityNotFound: `Bearer realm="api", error="invalid_token"`,
	apperr.CodeIdentityInactive: `Bearer realm="api", error="invalid_token"`,
}

// JSON writes payload with the given status.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes 200 with data.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created writes 201 with the new resource.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Paginated writes 200 with one page and its metadata.
func Paginated(writer http.ResponseWriter, data any, meta pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: meta})
}

// NoContent writes 204, used by soft deletes.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error renders err. Errors that are not an [apperr.AppError] become a 500
// whose cause is logged but never sent. Every 5xx is logged with the request
// id so a client report can be traced.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "request_failed",
			slog.String("code", appError.Code),
			slog.String("method", request.Method),
			slog.String("path", request.URL.Path),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
	}

	if challenge, ok := challenges[appError.Code]; ok {
		writer.Header().Set("WWW-Authenticate", challenge)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
