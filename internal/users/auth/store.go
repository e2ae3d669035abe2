// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Lookups return inactive accounts too; callers decide what "inactive" means
// for their flow. A missing row is reported as apperr NOT_FOUND and any other
// failure as STORE_UNAVAILABLE.
type UserRepository interface {

	/*
		FindByID returns the account with the given primary key.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: NOT_FOUND or STORE_UNAVAILABLE
	*/
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email (case-insensitive).
	FindByEmail(context context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username (case-insensitive).
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account.

		Returns:
		  - error: CONFLICT on a duplicate username or email
	*/
	Create(context context.Context, user *User) error

	// UpdatePassword replaces only the user's password hash.
	UpdatePassword(context context.Context, userID, newHash string) error

	// TouchLastLogin stamps the account's last successful login.
	TouchLastLogin(context context.Context, userID string, at time.Time) error
}

// # Volatile Data Access

// ResetTokenRepository stores single-use password reset tokens.
type ResetTokenRepository interface {

	// Set stores a reset token for userID for the given duration.
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	/*
		Consume atomically reads and removes a reset token, so a token can be
		redeemed at most once even under concurrent requests.

		Returns:
		  - string: UserID
		  - error: NOT_FOUND when absent, expired or already used
	*/
	Consume(context context.Context, token string) (string, error)
}
