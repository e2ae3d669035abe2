// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
	"github.com/taibuivan/yomira-press/internal/users/auth"
)

// # Service Layer

// Service implements the admin account use cases.
type Service struct {
	accountRepository Repository
	logger            *slog.Logger
}

// NewService constructs a new [Service].
func NewService(accountRepo Repository, logger *slog.Logger) *Service {
	return &Service{accountRepository: accountRepo, logger: logger}
}

// ListAccounts returns one page of accounts.
func (service *Service) ListAccounts(context context.Context, limit, offset int) ([]*auth.User, int, error) {
	return service.accountRepository.List(context, limit, offset)
}

// GetAccount returns a single account. A malformed id is NOT_FOUND.
func (service *Service) GetAccount(context context.Context, userID string) (*auth.User, error) {
	if err := requireID(userID); err != nil {
		return nil, err
	}
	return service.accountRepository.FindByID(context, userID)
}

/*
SetActive enables or disables an account.

An admin cannot disable their own account, which would lock out the last
admin in a fresh deployment.

Returns:
  - *auth.User: The account after the change
  - error: NOT_FOUND, FORBIDDEN or store errors
*/
func (service *Service) SetActive(context context.Context, actor *sec.Identity, userID string, active bool) (*auth.User, error) {
	if err := requireID(userID); err != nil {
		return nil, err
	}
	if !active && actor.ID == userID {
		return nil, apperr.Forbidden("You cannot disable your own account")
	}

	if err := service.accountRepository.SetActive(context, userID, active); err != nil {
		return nil, err
	}

	service.logger.WarnContext(context, "account_active_changed",
		slog.String("user_id", userID),
		slog.Bool("active", active),
		slog.String("actor_id", actor.ID),
	)
	return service.accountRepository.FindByID(context, userID)
}

// SetRole changes an account's role. Admins cannot demote themselves.
func (service *Service) SetRole(context context.Context, actor *sec.Identity, userID string, role sec.UserRole) (*auth.User, error) {
	if err := requireID(userID); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, validate.RequiredError(FieldRole, "Must be one of: user, admin")
	}
	if actor.ID == userID && role != sec.RoleAdmin {
		return nil, apperr.Forbidden("You cannot demote your own account")
	}

	if err := service.accountRepository.SetRole(context, userID, role); err != nil {
		return nil, err
	}

	service.logger.WarnContext(context, "account_role_changed",
		slog.String("user_id", userID),
		slog.String("role", string(role)),
		slog.String("actor_id", actor.ID),
	)
	return service.accountRepository.FindByID(context, userID)
}

func requireID(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return apperr.NotFound("User")
	}
	return nil
}
