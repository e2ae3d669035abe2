// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
)

// # Session Authentication

// Phase is the position of a request inside the authentication pipeline.
type Phase int

const (
	PhaseNoToken Phase = iota
	PhaseTokenPresent
	PhaseVerified
	PhaseIdentityLoaded
	PhaseAuthenticated
)

// String returns the phase name used in logs.
func (phase Phase) String() string {
	switch phase {
	case PhaseNoToken:
		return "no_token"
	case PhaseTokenPresent:
		return "token_present"
	case PhaseVerified:
		return "verified"
	case PhaseIdentityLoaded:
		return "identity_loaded"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// IdentityLookup loads an account by primary key.
type IdentityLookup interface {
	FindByID(context context.Context, id string) (*User, error)
}

// AccessVerifier checks an access token's signature, issuer, expiry and kind.
type AccessVerifier interface {
	VerifyAccessToken(token string) (*sec.AuthClaims, error)
}

// authState is the value threaded through the pipeline. Stages receive it by
// value and return an enriched copy, so a rejected stage leaves no partial state.
type authState struct {
	phase  Phase
	token  string
	claims *sec.AuthClaims
	user   *User
}

// stage advances the state by exactly one phase or rejects the request.
type stage func(context context.Context, state authState) (authState, error)

// Authenticator resolves a request into a freshly loaded identity.
//
// # Pipeline
//
//	NoToken -> TokenPresent -> Verified -> IdentityLoaded -> Authenticated
//
// Each arrow is one stage. The account is read exactly once, by primary key,
// and the role handed downstream is the stored one. The role embedded in the
// token is ignored.
type Authenticator struct {
	verifier AccessVerifier
	users    IdentityLookup
	stages   []stage
}

// NewAuthenticator wires the verification and lookup dependencies.
func NewAuthenticator(verifier AccessVerifier, users IdentityLookup) *Authenticator {
	authenticator := &Authenticator{verifier: verifier, users: users}
	authenticator.stages = []stage{
		authenticator.requireToken,
		authenticator.verifyToken,
		authenticator.loadIdentity,
		authenticator.requireActive,
	}
	return authenticator
}

// Authenticate extracts the token from the request and runs the pipeline.
func (authenticator *Authenticator) Authenticate(request *http.Request) (*sec.Identity, error) {
	token, _ := sec.ExtractToken(request)
	return authenticator.AuthenticateToken(request.Context(), token)
}

/*
AuthenticateToken runs the pipeline for an already extracted token.

Returns:
  - *sec.Identity: The authenticated identity (never nil on success)
  - error: A 401 rejection with a distinct code, or STORE_UNAVAILABLE
*/
func (authenticator *Authenticator) AuthenticateToken(context context.Context, token string) (*sec.Identity, error) {
	state := authState{phase: PhaseNoToken, token: token}

	for _, next := range authenticator.stages {
		advanced, err := next(context, state)
		if err != nil {
			return nil, err
		}
		state = advanced
	}

	if state.phase != PhaseAuthenticated {
		return nil, apperr.Internal(fmt.Errorf("auth: pipeline stopped at %s", state.phase))
	}

	return state.user.Identity(), nil
}

// requireToken: NoToken -> TokenPresent.
func (authenticator *Authenticator) requireToken(_ context.Context, state authState) (authState, error) {
	if state.token == "" {
		return state, apperr.Rejected(apperr.CodeTokenMissing, "Authentication required")
	}
	state.phase = PhaseTokenPresent
	return state, nil
}

// verifyToken: TokenPresent -> Verified.
func (authenticator *Authenticator) verifyToken(_ context.Context, state authState) (authState, error) {
	claims, err := authenticator.verifier.VerifyAccessToken(state.token)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeTokenExpired) {
			return state, sec.ErrTokenExpired
		}
		return state, sec.ErrTokenMalformed
	}
	state.claims = claims
	state.phase = PhaseVerified
	return state, nil
}

// loadIdentity: Verified -> IdentityLoaded.
func (authenticator *Authenticator) loadIdentity(context context.Context, state authState) (authState, error) {
	user, err := authenticator.users.FindByID(context, state.claims.UserID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return state, apperr.Rejected(apperr.CodeIdentityNotFound, "Account no longer exists")
		}
		if apperr.HasCode(err, apperr.CodeStoreUnavailable) {
			return state, err
		}
		return state, apperr.StoreUnavailable(err)
	}
	state.user = user
	state.phase = PhaseIdentityLoaded
	return state, nil
}

// requireActive: IdentityLoaded -> Authenticated.
func (authenticator *Authenticator) requireActive(_ context.Context, state authState) (authState, error) {
	if !state.user.IsActive {
		return state, apperr.Rejected(apperr.CodeIdentityInactive, "Account is disabled")
	}
	state.phase = PhaseAuthenticated
	return state, nil
}
