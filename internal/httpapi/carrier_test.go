// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell/internal/auth"
)

func TestTokenCarrier_SetPair(t *testing.T) {
	carrier := NewTokenCarrier(true, 15*time.Minute, 7*24*time.Hour)
	rec := httptest.NewRecorder()

	carrier.SetPair(rec, auth.TokenPair{AccessToken: "access-jwt", RefreshToken: "refresh-jwt"})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)

	access := cookieByName(cookies, "access_token")
	require.NotNil(t, access)
	assert.Equal(t, "access-jwt", access.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteStrictMode, access.SameSite)
	assert.Equal(t, int((15 * time.Minute).Seconds()), access.MaxAge)
	assert.Equal(t, "/", access.Path)

	refresh := cookieByName(cookies, "refresh_token")
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh-jwt", refresh.Value)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), refresh.MaxAge)
}

func TestTokenCarrier_Clear(t *testing.T) {
	carrier := NewTokenCarrier(false, time.Minute, time.Hour)
	rec := httptest.NewRecorder()

	carrier.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, cookie := range cookies {
		assert.Empty(t, cookie.Value)
		assert.Less(t, cookie.MaxAge, 0)
	}
}

func TestTokenCarrier_AccessToken(t *testing.T) {
	carrier := NewTokenCarrier(false, time.Minute, time.Hour)

	t.Run("cookie wins over header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "from-cookie"})
		req.Header.Set("Authorization", "Bearer from-header")
		assert.Equal(t, "from-cookie", carrier.AccessToken(req))
	})

	t.Run("bearer header fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer from-header")
		assert.Equal(t, "from-header", carrier.AccessToken(req))
	})

	t.Run("non-bearer scheme ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		assert.Empty(t, carrier.AccessToken(req))
	})

	t.Run("nothing present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, carrier.AccessToken(req))
	})
}

func TestTokenCarrier_RefreshToken(t *testing.T) {
	carrier := NewTokenCarrier(false, time.Minute, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, carrier.RefreshToken(req))

	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "refresh-jwt"})
	assert.Equal(t, "refresh-jwt", carrier.RefreshToken(req))
}
