// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// ResetTokenTTL is the duration a password reset token remains valid.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32

	// Username bounds for registration.
	UsernameMinLength = 3
	UsernameMaxLength = 50

	// EmailMaxLength matches the users.account column width.
	EmailMaxLength = 100
)

// invalidCredentialsMessage is shared by every login failure so callers
// cannot tell a wrong password from an unknown or disabled account.
const invalidCredentialsMessage = "Invalid login credentials"

// timingPassword is hashed once per service; unknown logins are verified
// against it so they cost as much as a real check.
const timingPassword = "yomira-press-unknown-account"
