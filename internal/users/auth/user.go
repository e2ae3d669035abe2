// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account identity for Yomira Press.

It covers registration, credential login, token refresh and password
recovery, plus the [Authenticator] that turns an incoming request into a
freshly loaded [sec.Identity].

# Architecture

  - User: the persisted account. Its password hash never leaves this package.
  - Service: the use cases (Register, Login, Refresh, ChangePassword, reset).
  - Authenticator: the per-request pipeline used by the HTTP middleware.
  - Repositories: Postgres for accounts, Redis for reset tokens.
*/
package auth

import (
	"time"

	"github.com/taibuivan/yomira-press/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Identity projects the account into the transient request identity.
func (user *User) Identity() *sec.Identity {
	return &sec.Identity{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		IsActive: user.IsActive,
	}
}

// # Field Identifiers

// Field names shared by validation and JSON payloads.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldLogin           = "login"
	FieldToken           = "token"
	FieldRefreshToken    = "refresh_token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldMessage         = "message"
)
