// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// TokenFieldName is the cookie, query parameter and body field carrying a token.
const TokenFieldName = "token"

// maxTokenBodyBytes bounds how much of a request body is inspected for a token.
const maxTokenBodyBytes = 1 << 20

// TokenSource names the carrier a token was found in.
type TokenSource string

const (
	SourceNone   TokenSource = ""
	SourceCookie TokenSource = "cookie"
	SourceHeader TokenSource = "header"
	SourceQuery  TokenSource = "query"
	SourceBody   TokenSource = "body"
)

// ExtractToken locates a candidate token in the request.
//
// # Priority
//  1. Cookie named "token".
//  2. Authorization: Bearer <token>.
//  3. Query parameter "token".
//  4. Body field "token" (JSON or form encoded).
//
// The first non-empty match wins. The format is not validated here. When the
// body is inspected it is restored so downstream handlers can decode it again.
func ExtractToken(request *http.Request) (string, TokenSource) {
	if cookie, err := request.Cookie(TokenFieldName); err == nil && cookie.Value != "" {
		return cookie.Value, SourceCookie
	}

	if token := bearerToken(request.Header.Get("Authorization")); token != "" {
		return token, SourceHeader
	}

	if token := request.URL.Query().Get(TokenFieldName); token != "" {
		return token, SourceQuery
	}

	if token := bodyToken(request); token != "" {
		return token, SourceBody
	}

	return "", SourceNone
}

// bearerToken returns the credential of a "Bearer <token>" header value.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// bodyToken peeks at the request body for a "token" field and restores the body.
func bodyToken(request *http.Request) string {
	if request.Body == nil || request.Body == http.NoBody {
		return ""
	}

	mediaType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))
	if mediaType != "application/json" && mediaType != "application/x-www-form-urlencoded" {
		return ""
	}

	original := request.Body
	payload, err := io.ReadAll(io.LimitReader(original, maxTokenBodyBytes))
	request.Body = restoredBody{Reader: io.MultiReader(bytes.NewReader(payload), original), Closer: original}
	if err != nil || len(payload) == 0 {
		return ""
	}

	if mediaType == "application/x-www-form-urlencoded" {
		values, err := url.ParseQuery(string(payload))
		if err != nil {
			return ""
		}
		return values.Get(TokenFieldName)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Token
}

// restoredBody replays the inspected prefix before the unread remainder.
type restoredBody struct {
	io.Reader
	io.Closer
}
