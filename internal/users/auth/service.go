// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/pkg/uuid"
)

// # Contracts & Types

// PasswordHasher hashes and verifies credentials. [*sec.Hasher] satisfies it.
type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
	Verify(plainTextPassword, existingHash string) (bool, error)
}

// TokenIssuer issues and verifies signed tokens. [*sec.TokenService] satisfies it.
type TokenIssuer interface {
	Issue(identity *sec.Identity, kind sec.TokenKind) (string, error)
	VerifyRefreshToken(token string) (*sec.AuthClaims, error)
	TTL(kind sec.TokenKind) time.Duration
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository       UserRepository
	resetTokenRepository ResetTokenRepository
	hasher               PasswordHasher
	tokens               TokenIssuer
	logger               *slog.Logger
	now                  func() time.Time

	// timingDigest is verified against on unknown logins.
	timingDigest string
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	resetRepo ResetTokenRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger *slog.Logger,
) *Service {
	timingDigest, err := hasher.Hash(timingPassword)
	if err != nil {
		logger.Warn("login_timing_digest_failed", slog.Any("error", err))
	}

	return &Service{
		userRepository:       userRepo,
		resetTokenRepository: resetRepo,
		hasher:               hasher,
		tokens:               tokens,
		logger:               logger,
		now:                  func() time.Time { return time.Now().UTC() },
		timingDigest:         timingDigest,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register hashes the password and persists a brand new account.

Every self-service account starts with the user role. Promotion to admin
goes through the account administration endpoints.

Returns:
  - *User: Created entity
  - err: CONFLICT (identity exists), INVALID_INPUT (password) or store errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	// Uniqueness is enforced by the database too; these checks give a precise message.
	if err := service.ensureAvailable(context, service.userRepository.FindByUsername, username, "Username is already taken"); err != nil {
		return nil, err
	}
	if err := service.ensureAvailable(context, service.userRepository.FindByEmail, email, "Email is already registered"); err != nil {
		return nil, err
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
		IsActive:     true,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// ensureAvailable returns CONFLICT when lookup finds an existing account.
func (service *Service) ensureAvailable(
	context context.Context,
	lookup func(context.Context, string) (*User, error),
	value, conflictMessage string,
) error {
	_, err := lookup(context, value)
	switch {
	case err == nil:
		return apperr.Conflict(conflictMessage)
	case apperr.HasCode(err, apperr.CodeNotFound):
		return nil
	default:
		return err
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Username or email
	Password string
}

// TokenPair is a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
	User             *User
}

/*
Login validates user credentials and issues a token pair.

Unknown accounts, disabled accounts and wrong passwords all produce the same
401 so the endpoint cannot be used to enumerate accounts.

Returns:
  - *TokenPair: Access and refresh tokens plus the account
  - err: Unauthorized, STORE_UNAVAILABLE or SIGNING_ERROR
*/
func (service *Service) Login(context context.Context, input LoginInput) (*TokenPair, error) {
	login := strings.TrimSpace(input.Login)

	lookup := service.userRepository.FindByUsername
	if strings.Contains(login, "@") {
		lookup = service.userRepository.FindByEmail
	}

	user, err := lookup(context, login)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			// Same bcrypt cost as a real account.
			_, _ = service.hasher.Verify(input.Password, service.timingDigest)
			return nil, apperr.Unauthorized(invalidCredentialsMessage)
		}
		return nil, err
	}

	matched, err := service.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil || !matched || !user.IsActive {
		service.logger.InfoContext(context, "login_rejected",
			slog.String("user_id", user.ID),
			slog.Bool("active", user.IsActive),
		)
		return nil, apperr.Unauthorized(invalidCredentialsMessage)
	}

	pair, err := service.issuePair(user)
	if err != nil {
		return nil, err
	}

	loginAt := service.now()
	if err := service.userRepository.TouchLastLogin(context, user.ID, loginAt); err != nil {
		return nil, err
	}
	user.LastLoginAt = &loginAt

	service.logger.InfoContext(context, "login_succeeded", slog.String("user_id", user.ID))
	return pair, nil
}

/*
Refresh exchanges a valid refresh token for a new token pair.

The account is reloaded so a disabled or deleted account cannot keep
refreshing.
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apperr.Rejected(apperr.CodeTokenMissing, "Refresh token required")
	}

	claims, err := service.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Rejected(apperr.CodeIdentityNotFound, "Account no longer exists")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.Rejected(apperr.CodeIdentityInactive, "Account is disabled")
	}

	return service.issuePair(user)
}

// issuePair signs an access and a refresh token for the account.
func (service *Service) issuePair(user *User) (*TokenPair, error) {
	identity := user.Identity()

	accessToken, err := service.tokens.Issue(identity, sec.TokenAccess)
	if err != nil {
		return nil, err
	}

	refreshToken, err := service.tokens.Issue(identity, sec.TokenRefresh)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresIn:  service.tokens.TTL(sec.TokenAccess),
		RefreshExpiresIn: service.tokens.TTL(sec.TokenRefresh),
		User:             user,
	}, nil
}

// Profile returns the stored account for an authenticated identity.
func (service *Service) Profile(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// # Password Management

/*
ChangePassword verifies the current password and stores a new hash.

Returns:
  - err: Unauthorized when the current password is wrong
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	matched, err := service.hasher.Verify(currentPassword, user.PasswordHash)
	if err != nil || !matched {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := service.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	service.logger.InfoContext(context, "password_changed", slog.String("user_id", userID))
	return nil
}

/*
RequestPasswordReset creates a single-use reset token for an email.

An unknown or disabled email returns ("", nil) so the endpoint does not
reveal which addresses are registered.

Returns:
  - string: The reset token (delivered out of band)
  - err: Generation or store errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	user, err := service.userRepository.FindByEmail(context, strings.TrimSpace(email))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return "", nil
		}
		return "", err
	}
	if !user.IsActive {
		return "", nil
	}

	token, err := sec.NewOpaqueToken(ResetTokenLength)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("auth_service_generate_reset_token_failed: %w", err))
	}

	if err := service.resetTokenRepository.Set(context, token, user.ID, ResetTokenTTL); err != nil {
		return "", err
	}

	service.logger.InfoContext(context, "password_reset_requested", slog.String("user_id", user.ID))
	return token, nil
}

// ResetPassword consumes a reset token and stores the new password hash.
//
// The password is hashed before the token is consumed, so a rejected password
// leaves the token usable. Once consumed, the token is gone even if the update
// fails.
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	hashedPassword, err := service.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	userID, err := service.resetTokenRepository.Consume(context, token)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return apperr.ValidationError("Reset token is invalid or expired",
				apperr.FieldError{Field: FieldToken, Message: "Invalid or expired"})
		}
		return err
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	service.logger.InfoContext(context, "password_reset_completed", slog.String("user_id", userID))
	return nil
}
