// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing, token
// extraction) from the domain logic. It acts as an Infrastructure service injected
// into the Application layer through small interfaces declared by the consumers.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
)

// TokenKind distinguishes short-lived access tokens from refresh tokens.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// Default validity windows.
const (
	DefaultAccessTTL  = 7 * 24 * time.Hour
	DefaultRefreshTTL = 30 * 24 * time.Hour
)

// refreshSecretSuffix derives the refresh secret when none is configured.
const refreshSecretSuffix = "_refresh"

var (
	// ErrTokenExpired is returned when the token is well-formed but past its expiry.
	ErrTokenExpired = apperr.Rejected(apperr.CodeTokenExpired, "Token expired, please sign in again")

	// ErrTokenMalformed covers bad structure, bad signature, wrong issuer and wrong kind.
	ErrTokenMalformed = apperr.Rejected(apperr.CodeTokenMalformed, "Token is invalid")

	// errMissingSecret is the cause attached to a SIGNING_ERROR.
	errMissingSecret = errors.New("sec: signing secret is not configured")
)

// AuthClaims represents the payload embedded inside a signed token.
//
// Username and Role are informational. Authorization always uses the account
// loaded from the store, never these copies.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   string    `json:"uid"`
	Username string    `json:"unm"`
	Role     string    `json:"rol"`
	Kind     TokenKind `json:"knd"`
}

// TokenConfig carries the signing material and lifetimes.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenService issues and verifies HS256 tokens.
type TokenService struct {
	secrets map[TokenKind][]byte
	ttls    map[TokenKind]time.Duration
	issuer  string
	now     func() time.Time

	refreshSecretDerived bool
}

// Option customizes a [TokenService].
type Option func(*TokenService)

// WithClock replaces the wall clock, used by tests to simulate expiry.
func WithClock(now func() time.Time) Option {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a new TokenService.
//
// A missing refresh secret is derived from the access secret; callers can
// detect this with [TokenService.RefreshSecretDerived] and warn about it.
func NewTokenService(cfg TokenConfig, options ...Option) *TokenService {
	refreshSecret := cfg.RefreshSecret
	derived := false
	if refreshSecret == "" && cfg.AccessSecret != "" {
		refreshSecret = cfg.AccessSecret + refreshSecretSuffix
		derived = true
	}

	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}

	service := &TokenService{
		secrets: map[TokenKind][]byte{
			TokenAccess:  []byte(cfg.AccessSecret),
			TokenRefresh: []byte(refreshSecret),
		},
		ttls: map[TokenKind]time.Duration{
			TokenAccess:  accessTTL,
			TokenRefresh: refreshTTL,
		},
		issuer:               cfg.Issuer,
		now:                  time.Now,
		refreshSecretDerived: derived,
	}

	for _, option := range options {
		option(service)
	}

	return service
}

// RefreshSecretDerived reports whether the refresh secret was derived from the access secret.
func (service *TokenService) RefreshSecretDerived() bool {
	return service.refreshSecretDerived
}

// TTL returns the validity window of a token kind.
func (service *TokenService) TTL(kind TokenKind) time.Duration {
	return service.ttls[kind]
}

// Issue signs a token of the given kind for an identity.
func (service *TokenService) Issue(identity *Identity, kind TokenKind) (string, error) {
	secret, ok := service.secrets[kind]
	if !ok {
		return "", apperr.SigningError(fmt.Errorf("sec: unknown token kind %q", kind))
	}
	if len(secret) == 0 {
		return "", apperr.SigningError(errMissingSecret)
	}

	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttls[kind])),
		},
		UserID:   identity.ID,
		Username: identity.Username,
		Role:     string(identity.Role),
		Kind:     kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", apperr.SigningError(fmt.Errorf("sec: failed to sign token: %w", err))
	}

	return signedToken, nil
}

// VerifyAccessToken verifies a token that must be of kind access.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	return service.Verify(tokenString, TokenAccess)
}

// VerifyRefreshToken verifies a token that must be of kind refresh.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*AuthClaims, error) {
	return service.Verify(tokenString, TokenRefresh)
}

// Verify checks signature, issuer, expiry and kind.
//
// It returns [ErrTokenExpired] only for an otherwise valid token whose expiry
// has passed; every other failure is [ErrTokenMalformed].
func (service *TokenService) Verify(tokenString string, kind TokenKind) (*AuthClaims, error) {
	secret := service.secrets[kind]
	if len(secret) == 0 {
		return nil, apperr.SigningError(errMissingSecret)
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.Kind != kind || claims.Subject == "" || claims.Subject != claims.UserID {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
