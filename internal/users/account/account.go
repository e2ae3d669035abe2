// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles account administration.

Admins list accounts, enable or disable them and change roles. Accounts are
never hard deleted; disabling one makes every later authentication fail with
IDENTITY_INACTIVE because the authenticator reloads the account on each
request.

# Architecture

  - Entities: This package depends on the auth package for the User entity.
  - Storage: [*auth.PostgresUserRepository] satisfies [Repository].
*/
package account

import (
	"context"

	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/users/auth"
)

// Repository defines the persistence contract for account administration.
type Repository interface {
	FindByID(context context.Context, id string) (*auth.User, error)

	// List returns one page of accounts and the total count.
	List(context context.Context, limit, offset int) ([]*auth.User, int, error)

	// SetActive returns NOT_FOUND when no row matches.
	SetActive(context context.Context, userID string, active bool) error

	SetRole(context context.Context, userID string, role sec.UserRole) error
}

// Field names used in validation errors.
const (
	FieldRole     = "role"
	FieldIsActive = "is_active"
)
