// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/inkwell/inkwell/internal/auth"
)

// Cookie names for the token pair.
const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

// TokenCarrier moves the token pair between requests and responses.
// Tokens ride in HttpOnly cookies; the access token is also accepted via
// an Authorization: Bearer header for non-browser clients. Tokens are
// opaque strings here, never inspected.
type TokenCarrier struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenCarrier creates a TokenCarrier. secure controls the cookies'
// Secure flag and should be true everywhere but local development.
func NewTokenCarrier(secure bool, accessTTL, refreshTTL time.Duration) *TokenCarrier {
	return &TokenCarrier{secure: secure, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// AccessToken extracts the access token from the request: cookie first,
// then Authorization: Bearer. Empty string when absent.
func (c *TokenCarrier) AccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(accessCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return ""
}

// RefreshToken extracts the refresh token cookie. Empty string when
// absent.
func (c *TokenCarrier) RefreshToken(r *http.Request) string {
	if cookie, err := r.Cookie(refreshCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// SetPair writes both tokens as HttpOnly cookies.
func (c *TokenCarrier) SetPair(w http.ResponseWriter, pair auth.TokenPair) {
	http.SetCookie(w, c.cookie(accessCookie, pair.AccessToken, c.accessTTL))
	http.SetCookie(w, c.cookie(refreshCookie, pair.RefreshToken, c.refreshTTL))
}

// Clear expires both token cookies. Called on logout and whenever a
// presented credential fails validation.
func (c *TokenCarrier) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.expired(accessCookie))
	http.SetCookie(w, c.expired(refreshCookie))
}

func (c *TokenCarrier) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(ttl.Seconds()),
	}
}

func (c *TokenCarrier) expired(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	}
}
