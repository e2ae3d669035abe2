// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/platform/constants"
	"github.com/taibuivan/yomira-press/internal/users/auth"
)

func newAuthServer(fixture serviceFixture) http.Handler {
	authenticator := auth.NewAuthenticator(fixture.tokens, fixture.users)
	return auth.NewHandler(fixture.service, authenticator, false).Routes()
}

func postJSON(t *testing.T, handler http.Handler, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func findCookie(recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestHandler_RegisterLoginMe(t *testing.T) {
	fixture := newServiceFixture()
	server := newAuthServer(fixture)

	registered := postJSON(t, server, "/register", `{"username":"alice","email":"alice@press.test","password":"secret-pw"}`, nil)
	require.Equal(t, http.StatusCreated, registered.Code, registered.Body.String())
	assert.NotContains(t, registered.Body.String(), "password")

	loggedIn := postJSON(t, server, "/login", `{"login":"alice","password":"secret-pw"}`, nil)
	require.Equal(t, http.StatusOK, loggedIn.Code, loggedIn.Body.String())

	var payload struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
			TokenType    string `json:"token_type"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(loggedIn.Body).Decode(&payload))
	assert.Equal(t, "Bearer", payload.Data.TokenType)

	tokenCookie := findCookie(loggedIn, constants.AccessTokenCookieName)
	require.NotNil(t, tokenCookie)
	assert.Equal(t, payload.Data.AccessToken, tokenCookie.Value)
	assert.True(t, tokenCookie.HttpOnly)

	request := httptest.NewRequest(http.MethodGet, "/me", nil)
	request.AddCookie(tokenCookie)
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"username":"alice"`)

	refreshed := postJSON(t, server, "/refresh", `{"refresh_token":"`+payload.Data.RefreshToken+`"}`, nil)
	assert.Equal(t, http.StatusOK, refreshed.Code)
}

func TestHandler_RegisterValidation(t *testing.T) {
	server := newAuthServer(newServiceFixture())

	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{"username":`},
		{"short username", `{"username":"al","email":"al@press.test","password":"secret-pw"}`},
		{"symbols in username", `{"username":"al-ice","email":"al@press.test","password":"secret-pw"}`},
		{"bad email", `{"username":"alice","email":"nope","password":"secret-pw"}`},
		{"short password", `{"username":"alice","email":"alice@press.test","password":"12345"}`},
		{"password over 72 bytes", `{"username":"alice","email":"alice@press.test","password":"` + strings.Repeat("p", 73) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, server, "/register", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestHandler_RegisterLongPassword(t *testing.T) {
	server := newAuthServer(newServiceFixture())

	accepted := postJSON(t, server, "/register", `{"username":"alice","email":"alice@press.test","password":"`+strings.Repeat("p", 72)+`"}`, nil)
	require.Equal(t, http.StatusCreated, accepted.Code, accepted.Body.String())

	loggedIn := postJSON(t, server, "/login", `{"login":"alice","password":"`+strings.Repeat("p", 72)+`"}`, nil)
	assert.Equal(t, http.StatusOK, loggedIn.Code)

	rejected := postJSON(t, server, "/register", `{"username":"bob","email":"bob@press.test","password":"`+strings.Repeat("p", 73)+`"}`, nil)
	require.Equal(t, http.StatusBadRequest, rejected.Code)
	assert.Contains(t, rejected.Body.String(), "Maximum 72 bytes")
	assert.NotContains(t, rejected.Body.String(), "at least 6")
}

func TestHandler_MeRequiresToken(t *testing.T) {
	server := newAuthServer(newServiceFixture())

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "TOKEN_MISSING")
}

func TestHandler_LogoutClearsCookies(t *testing.T) {
	server := newAuthServer(newServiceFixture())

	recorder := postJSON(t, server, "/logout", "", nil)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		cookie := findCookie(recorder, name)
		require.NotNil(t, cookie, name)
		assert.Equal(t, -1, cookie.MaxAge)
	}
}
