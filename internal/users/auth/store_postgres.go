// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/internal/platform/postgres"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
)

// # User Repository

const userResource = "User"

var (
	account = schema.UserAccount

	// selectUser is the shared projection used by every lookup.
	selectUser = fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s`,
		account.ID, account.Username, account.Email, account.PasswordHash, account.Role,
		account.IsActive, account.LastLoginAt, account.CreatedAt, account.UpdatedAt,
		account.Table,
	)
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// FindByID performs the single primary-key lookup used by authentication.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := selectUser + fmt.Sprintf(" WHERE %s = $1", account.ID)
	return repository.findOne(context, "user_find_by_id", query, id)
}

// FindByEmail resolves a login or reset request by email.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := selectUser + fmt.Sprintf(" WHERE LOWER(%s) = LOWER($1)", account.Email)
	return repository.findOne(context, "user_find_by_email", query, strings.TrimSpace(email))
}

// FindByUsername resolves a login request by username.
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := selectUser + fmt.Sprintf(" WHERE LOWER(%s) = LOWER($1)", account.Username)
	return repository.findOne(context, "user_find_by_username", query, strings.TrimSpace(username))
}

/*
Create persists a new user record into the users.account table.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: CONFLICT on duplicate username/email, STORE_UNAVAILABLE otherwise
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		account.Table,
		account.ID, account.Username, account.Email, account.PasswordHash,
		account.Role, account.IsActive, account.CreatedAt, account.UpdatedAt,
	)

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return dberr.Wrap(err, userResource, "user_create")
}

// UpdatePassword replaces the stored hash and bumps updated_at.
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		account.Table, account.PasswordHash, account.UpdatedAt, account.ID)

	return repository.updateOne(context, "user_update_password", query, userID, newHash)
}

// TouchLastLogin records the time of the latest successful login.
func (repository *PostgresUserRepository) TouchLastLogin(context context.Context, userID string, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		account.Table, account.LastLoginAt, account.ID)

	_, err := repository.db.Exec(context, query, userID, at)
	return dberr.Wrap(err, userResource, "user_touch_last_login")
}

// # Account Administration

// List returns one page of accounts, newest first, and the total count.
func (repository *PostgresUserRepository) List(context context.Context, limit, offset int) ([]*User, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, account.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, userResource, "user_count")
	}

	query := selectUser + fmt.Sprintf(" ORDER BY %s DESC LIMIT $1 OFFSET $2", account.CreatedAt)
	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, userResource, "user_list")
	}
	defer rows.Close()

	users := make([]*User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, userResource, "user_scan")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, userResource, "user_list")
	}
	return users, total, nil
}

// SetActive flips the account's active flag. Accounts are never hard deleted.
func (repository *PostgresUserRepository) SetActive(context context.Context, userID string, active bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		account.Table, account.IsActive, account.UpdatedAt, account.ID)
	return repository.updateOne(context, "user_set_active", query, userID, active)
}

// SetRole stores a new role for the account.
func (repository *PostgresUserRepository) SetRole(context context.Context, userID string, role sec.UserRole) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		account.Table, account.Role, account.UpdatedAt, account.ID)
	return repository.updateOne(context, "user_set_role", query, userID, role)
}

// updateOne executes a single-row update and maps zero affected rows to NOT_FOUND.
func (repository *PostgresUserRepository) updateOne(context context.Context, action, query string, args ...any) error {
	tag, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, userResource, action)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(userResource)
	}
	return nil
}

// findOne runs a single-row user query and maps the driver error.
func (repository *PostgresUserRepository) findOne(context context.Context, action, query string, args ...any) (*User, error) {
	user, err := scanUser(repository.db.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, userResource, action)
	}
	return user, nil
}

// scanUser hydrates a [User] from a row in selectUser column order.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
