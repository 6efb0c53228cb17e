// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Default token lifetimes, overridable through configuration.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// dummyPasswordHash is verified when a login targets an unknown email, so
// that response time does not distinguish "no such user" from "wrong
// password". It is a syntactically valid bcrypt hash that matches no
// password used by this system.
//
//nolint:gosec // G101: intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// AuthResult carries the public identity and a fresh token pair, returned
// by Register and Login.
type AuthResult struct {
	User   Identity  `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// Service orchestrates registration, login, token refresh, logout, token
// validation, and password reset. It holds no in-process session state;
// everything lives in the credential store and the session registry.
type Service struct {
	users      UserRepository
	registry   SessionRegistry
	hasher     PasswordHasher
	codec      *TokenCodec
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

// NewService creates an auth Service with default token lifetimes.
func NewService(users UserRepository, registry SessionRegistry, hasher PasswordHasher, codec *TokenCodec) (*Service, error) {
	return NewServiceWithTTL(users, registry, hasher, codec, DefaultAccessTokenTTL, DefaultRefreshTokenTTL)
}

// NewServiceWithTTL creates an auth Service with explicit token lifetimes.
func NewServiceWithTTL(users UserRepository, registry SessionRegistry, hasher PasswordHasher, codec *TokenCodec, accessTTL, refreshTTL time.Duration) (*Service, error) {
	if users == nil {
		return nil, oops.Errorf("user repository is required")
	}
	if registry == nil {
		return nil, oops.Errorf("session registry is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if codec == nil {
		return nil, oops.Errorf("token codec is required")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, oops.Errorf("token lifetimes must be positive")
	}
	return &Service{
		users:      users,
		registry:   registry,
		hasher:     hasher,
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     slog.Default(),
	}, nil
}

// WithLogger replaces the service logger. Returns the service for chaining
// during wiring.
func (s *Service) WithLogger(logger *slog.Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Register creates a new account and logs it in, returning the public
// identity and a fresh token pair. Duplicate emails fail with
// AUTH_EMAIL_TAKEN; the credential store's unique index is the authority,
// so concurrent registrations of one email cannot both succeed.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (*AuthResult, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := ValidateName("first name", firstName); err != nil {
		return nil, err
	}
	if err := ValidateName("last name", lastName); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	now := time.Now()
	user := &User{
		ID:           ulid.Make(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user.Identity(), Tokens: tokens}, nil
}

// Login verifies credentials and mints a fresh token pair, overwriting any
// prior live refresh token for the user. Missing email and wrong password
// surface the same generic error, and a dummy hash is verified for
// unknown emails to keep response time flat.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, lookupErr := s.users.GetByEmail(ctx, email)

	targetHash := dummyPasswordHash
	userExists := false
	switch {
	case lookupErr == nil:
		targetHash = user.PasswordHash
		userExists = true
	case errors.Is(lookupErr, ErrNotFound):
		// Fall through to dummy verification.
	default:
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "get user by email").
			Wrap(lookupErr)
	}

	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil && userExists {
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}
	if !userExists || !valid {
		return nil, oops.Code(CodeInvalidCredentials).Errorf("invalid email or password")
	}

	// Re-hash on cost upgrades. Login succeeds even if this fails.
	if s.hasher.NeedsUpgrade(user.PasswordHash) {
		if newHash, hashErr := s.hasher.Hash(password); hashErr == nil {
			if err := s.users.UpdatePassword(ctx, user.ID, newHash); err != nil {
				s.logger.Warn("password cost upgrade failed", "user_id", user.ID.String(), "error", err)
			}
		}
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.logger.Warn("last login update failed", "user_id", user.ID.String(), "error", err)
	}

	tokens, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user.Identity(), Tokens: tokens}, nil
}

// Refresh rotates a refresh token: the presented token must verify against
// the refresh secret and byte-match the single live registry entry for its
// subject. The old entry is removed atomically, so of two concurrent
// rotations racing on one token at most one succeeds; the loser observes
// a registry mismatch and fails unauthorized.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.codec.Verify(refreshToken, KindRefresh)
	if err != nil {
		return nil, oops.Code(CodeInvalidToken).Errorf("invalid refresh token")
	}

	userID, err := ulid.Parse(claims.Subject)
	if err != nil {
		return nil, oops.Code(CodeInvalidToken).Errorf("invalid refresh token")
	}

	key := RefreshKey(userID)
	stored, err := s.registry.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code(CodeInvalidToken).Errorf("invalid refresh token")
		}
		return nil, oops.Code("AUTH_REFRESH_FAILED").
			With("operation", "get registry entry").
			Wrap(err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) != 1 {
		return nil, oops.Code(CodeInvalidToken).Errorf("invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code(CodeUserNotFound).Errorf("user not found")
		}
		return nil, oops.Code("AUTH_REFRESH_FAILED").
			With("operation", "get user by id").
			Wrap(err)
	}

	removed, err := s.registry.CompareAndDelete(ctx, key, refreshToken)
	if err != nil {
		return nil, oops.Code("AUTH_REFRESH_FAILED").
			With("operation", "rotate registry entry").
			Wrap(err)
	}
	if !removed {
		// A concurrent rotation won the race with this token.
		return nil, oops.Code(CodeInvalidToken).Errorf("invalid refresh token")
	}

	tokens, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Logout revokes the live refresh token for the presented token's subject.
// It is best effort and never fails: a client must always be able to clear
// its session, so verification failures are logged and swallowed.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	claims, err := s.codec.Verify(refreshToken, KindRefresh)
	if err != nil {
		s.logger.Warn("logout with invalid token", "error", err)
		return
	}

	userID, err := ulid.Parse(claims.Subject)
	if err != nil {
		s.logger.Warn("logout with invalid subject", "error", err)
		return
	}

	if _, err := s.registry.Delete(ctx, RefreshKey(userID)); err != nil {
		s.logger.Warn("logout registry delete failed", "user_id", userID.String(), "error", err)
	}
}

// ValidateToken verifies an access token and returns the minimal identity
// projection. Purely cryptographic: no registry or database I/O, so every
// authenticated request avoids a key-value round trip. All verification
// failures collapse to one generic unauthorized error.
func (s *Service) ValidateToken(_ context.Context, accessToken string) (*Principal, error) {
	claims, err := s.codec.Verify(accessToken, KindAccess)
	if err != nil {
		return nil, oops.Code(CodeInvalidToken).Errorf("unauthorized")
	}
	return &Principal{ID: claims.Subject, Email: claims.Email}, nil
}

// ForgotPassword generates a one-time reset ticket for the given email and
// records its digest in the registry with a short TTL. The plaintext
// ticket is returned for out-of-band delivery and is never stored.
// Unknown emails fail with AUTH_USER_NOT_FOUND, matching the rest of the
// API's contract; see the design notes for the enumeration tradeoff.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := ValidateEmail(email); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", oops.Code(CodeUserNotFound).Errorf("user not found")
		}
		return "", oops.Code("AUTH_FORGOT_FAILED").
			With("operation", "get user by email").
			Wrap(err)
	}

	ticket, digest, err := GenerateTicket()
	if err != nil {
		return "", oops.Code("AUTH_FORGOT_FAILED").
			With("operation", "generate ticket").
			Wrap(err)
	}

	if err := s.registry.Set(ctx, resetKeyPrefix+digest, user.ID.String(), TicketExpiry); err != nil {
		return "", oops.Code("AUTH_FORGOT_FAILED").
			With("operation", "store ticket digest").
			Wrap(err)
	}

	return ticket, nil
}

// ResetPassword consumes a reset ticket and replaces the user's password.
// The ticket is removed atomically before anything else, so a ticket can
// be consumed at most once even under concurrent attempts. Existing
// refresh-token sessions are deliberately left alive; see the design
// notes.
func (s *Service) ResetPassword(ctx context.Context, ticket, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	userIDStr, err := s.registry.GetDel(ctx, ResetKey(ticket))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code(CodeTicketInvalid).Errorf("invalid or expired password reset token")
		}
		return oops.Code("AUTH_RESET_FAILED").
			With("operation", "consume ticket").
			Wrap(err)
	}

	userID, err := ulid.Parse(userIDStr)
	if err != nil {
		return oops.Code("AUTH_RESET_FAILED").
			With("operation", "parse ticket subject").
			Wrap(err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return oops.Code("AUTH_RESET_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code(CodeUserNotFound).Errorf("user not found")
		}
		return oops.Code("AUTH_RESET_FAILED").
			With("operation", "update password").
			Wrap(err)
	}

	return nil
}

// issuePair mints an access+refresh pair and records the refresh token as
// the single live entry for the user, overwriting any previous one.
func (s *Service) issuePair(ctx context.Context, user *User) (TokenPair, error) {
	access, err := s.codec.Issue(user.ID.String(), user.Email, KindAccess, s.accessTTL)
	if err != nil {
		return TokenPair{}, oops.Code("AUTH_ISSUE_FAILED").
			With("kind", KindAccess).
			Wrap(err)
	}

	refresh, err := s.codec.Issue(user.ID.String(), user.Email, KindRefresh, s.refreshTTL)
	if err != nil {
		return TokenPair{}, oops.Code("AUTH_ISSUE_FAILED").
			With("kind", KindRefresh).
			Wrap(err)
	}

	if err := s.registry.Set(ctx, RefreshKey(user.ID), refresh, s.refreshTTL); err != nil {
		return TokenPair{}, oops.Code("AUTH_ISSUE_FAILED").
			With("operation", "store refresh token").
			Wrap(err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
