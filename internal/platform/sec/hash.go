// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
)

const (
	// MinPasswordLength is the shortest plaintext, in characters, accepted by [Hasher.Hash].
	MinPasswordLength = 6

	// MaxPasswordBytes is the bcrypt input limit. Longer plaintexts are rejected
	// rather than silently truncated.
	MaxPasswordBytes = 72
)

var (
	// ErrInvalidPassword is returned when a plaintext cannot be hashed or compared.
	ErrInvalidPassword = apperr.InvalidInput("Password must be valid text of at least 6 characters")

	// ErrPasswordTooLong is returned when a plaintext exceeds [MaxPasswordBytes].
	ErrPasswordTooLong = apperr.InvalidInput("Password must be at most 72 bytes")

	// ErrInvalidDigest is returned when a stored digest is missing or unreadable.
	ErrInvalidDigest = apperr.InvalidInput("Password digest is missing or malformed")
)

// Hasher hashes and verifies passwords with bcrypt.
//
// It holds no mutable state and is safe for concurrent use.
type Hasher struct {
	cost int
}

// NewHasher returns a [Hasher] using the given bcrypt work factor.
// Out-of-range costs fall back to [bcrypt.DefaultCost].
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost returns the configured work factor.
func (hasher *Hasher) Cost() int {
	return hasher.cost
}

// Hash hashes a plain-text password. The digest embeds the algorithm and cost,
// so [Hasher.Verify] needs nothing else.
func (hasher *Hasher) Hash(plainTextPassword string) (string, error) {
	if !utf8.ValidString(plainTextPassword) || utf8.RuneCountInString(plainTextPassword) < MinPasswordLength {
		return "", ErrInvalidPassword
	}
	if len(plainTextPassword) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify compares a plain-text password with a digest produced by [Hasher.Hash].
//
// A mismatch is reported as (false, nil). Errors are reserved for missing or
// unreadable arguments.
func (hasher *Hasher) Verify(plainTextPassword, existingHash string) (bool, error) {
	if plainTextPassword == "" || !utf8.ValidString(plainTextPassword) {
		return false, ErrInvalidPassword
	}
	if existingHash == "" || !utf8.ValidString(existingHash) {
		return false, ErrInvalidDigest
	}

	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, fmt.Errorf("sec: %w: %v", ErrInvalidDigest, err)
	}
}
