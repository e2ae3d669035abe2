// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/users/auth"
)

// memUsers is an in-memory UserRepository that counts FindByID calls.
type memUsers struct {
	mu         sync.Mutex
	byID       map[string]*auth.User
	findByID   int
	failWith   error
	failUpdate error
	lastLogin  map[string]time.Time
}

func newMemUsers(users ...*auth.User) *memUsers {
	repo := &memUsers{byID: map[string]*auth.User{}, lastLogin: map[string]time.Time{}}
	for _, user := range users {
		repo.byID[user.ID] = user
	}
	return repo
}

func (repo *memUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.findByID++
	if repo.failWith != nil {
		return nil, repo.failWith
	}
	if user, ok := repo.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *memUsers) find(match func(*auth.User) bool) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.failWith != nil {
		return nil, repo.failWith
	}
	for _, user := range repo.byID {
		if match(user) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return repo.find(func(user *auth.User) bool { return strings.EqualFold(user.Email, email) })
}

func (repo *memUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return repo.find(func(user *auth.User) bool { return strings.EqualFold(user.Username, username) })
}

func (repo *memUsers) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	copied := *user
	repo.byID[user.ID] = &copied
	return nil
}

func (repo *memUsers) UpdatePassword(_ context.Context, userID, newHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.failUpdate != nil {
		return repo.failUpdate
	}
	user, ok := repo.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func (repo *memUsers) TouchLastLogin(_ context.Context, userID string, at time.Time) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.lastLogin[userID] = at
	return nil
}

// memResets is an in-memory ResetTokenRepository.
type memResets struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMemResets() *memResets { return &memResets{tokens: map[string]string{}} }

func (repo *memResets) Set(_ context.Context, token, userID string, _ time.Duration) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.tokens[token] = userID
	return nil
}

func (repo *memResets) Consume(_ context.Context, token string) (string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	userID, ok := repo.tokens[token]
	if !ok {
		return "", apperr.NotFound("Reset token")
	}
	delete(repo.tokens, token)
	return userID, nil
}

// countingHasher records how many Verify calls reach bcrypt.
type countingHasher struct {
	*sec.Hasher
	mu       sync.Mutex
	verifies int
}

func (hasher *countingHasher) Verify(plainTextPassword, existingHash string) (bool, error) {
	hasher.mu.Lock()
	hasher.verifies++
	hasher.mu.Unlock()
	return hasher.Hasher.Verify(plainTextPassword, existingHash)
}

// # Fixtures

const testSecret = "test-secret"

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTokens(now func() time.Time) *sec.TokenService {
	return sec.NewTokenService(sec.TokenConfig{AccessSecret: testSecret, Issuer: "blog-api"}, sec.WithClock(now))
}

func fixedNow() time.Time { return testNow }

// seedUser builds an account whose password is "secret-pw".
func seedUser(hasher *sec.Hasher, id, username string, role sec.UserRole, active bool) *auth.User {
	hash, err := hasher.Hash("secret-pw")
	if err != nil {
		panic(err)
	}
	return &auth.User{
		ID:           id,
		Username:     username,
		Email:        username + "@press.test",
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}
}
