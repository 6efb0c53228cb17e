// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"
)

// TokenKind distinguishes the two token families. Each kind is signed with
// its own secret, so possession of one secret cannot forge the other kind.
type TokenKind string

// Token kinds.
const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// MinSecretLen is the minimum accepted signing secret length in bytes.
const MinSecretLen = 32

// Claims is the signed claim set carried by both token kinds.
type Claims struct {
	jwt.RegisteredClaims
	Email string    `json:"email"`
	Kind  TokenKind `json:"kind"`
}

// TokenPair bundles a short-lived access token with a long-lived refresh
// token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenCodec signs and verifies compact, self-describing tokens. It holds
// no per-request state and is safe for concurrent use.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
}

// NewTokenCodec creates a TokenCodec. Both secrets must be at least
// MinSecretLen bytes and must differ.
func NewTokenCodec(accessSecret, refreshSecret []byte) (*TokenCodec, error) {
	if len(accessSecret) < MinSecretLen {
		return nil, oops.Code("AUTH_WEAK_SECRET").
			With("kind", KindAccess).
			With("min_bytes", MinSecretLen).
			Errorf("access token secret is too short")
	}
	if len(refreshSecret) < MinSecretLen {
		return nil, oops.Code("AUTH_WEAK_SECRET").
			With("kind", KindRefresh).
			With("min_bytes", MinSecretLen).
			Errorf("refresh token secret is too short")
	}
	if string(accessSecret) == string(refreshSecret) {
		return nil, oops.Code("AUTH_WEAK_SECRET").Errorf("access and refresh secrets must differ")
	}
	return &TokenCodec{accessSecret: accessSecret, refreshSecret: refreshSecret}, nil
}

// Issue encodes {subject, email, kind, iat, exp=now+ttl} and signs it with
// the kind-specific secret.
func (c *TokenCodec) Issue(subject, email string, kind TokenKind, ttl time.Duration) (string, error) {
	secret, err := c.secretFor(kind)
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Kind:  kind,
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", oops.Code("AUTH_SIGN_FAILED").With("kind", kind).Wrap(err)
	}
	return signed, nil
}

// Verify checks structure, signature, kind, and expiry. Expired tokens
// fail with an AUTH_TOKEN_EXPIRED code; every other failure is
// AUTH_INVALID_TOKEN. Callers facing the network must collapse both into
// one generic unauthorized error.
func (c *TokenCodec) Verify(tokenString string, kind TokenKind) (*Claims, error) {
	secret, err := c.secretFor(kind)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, oops.Code("AUTH_TOKEN_EXPIRED").Errorf("token has expired")
		}
		return nil, oops.Code(CodeInvalidToken).Errorf("invalid token")
	}
	if claims.Kind != kind {
		return nil, oops.Code(CodeInvalidToken).
			With("want", kind).
			Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, oops.Code(CodeInvalidToken).Errorf("invalid token")
	}
	return claims, nil
}

func (c *TokenCodec) secretFor(kind TokenKind) ([]byte, error) {
	switch kind {
	case KindAccess:
		return c.accessSecret, nil
	case KindRefresh:
		return c.refreshSecret, nil
	default:
		return nil, oops.Code(CodeInvalidToken).With("kind", kind).Errorf("unknown token kind")
	}
}
