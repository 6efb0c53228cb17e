// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// Registry key prefixes.
const (
	refreshKeyPrefix = "refresh_token:"
	resetKeyPrefix   = "password_reset:"
)

// RefreshKey derives the registry key tracking the single live refresh
// token for a user.
func RefreshKey(userID ulid.ULID) string {
	return refreshKeyPrefix + userID.String()
}

// ResetKey derives the registry key for a password-reset ticket. Only the
// digest of the ticket is ever used as a key; the plaintext is never
// stored.
func ResetKey(ticket string) string {
	return resetKeyPrefix + HashTicket(ticket)
}

// SessionRegistry is the expiring key-value store backing refresh-token
// tracking and one-time reset tickets. All operations must be atomic at
// the storage layer; the auth core takes no locks of its own.
type SessionRegistry interface {
	// Set stores value under key with the given TTL, replacing any
	// existing entry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get retrieves the value for key. Returns ErrNotFound if the key is
	// absent or expired.
	Get(ctx context.Context, key string) (string, error)

	// GetDel atomically retrieves and removes the value for key. Returns
	// ErrNotFound if the key is absent or expired. Used to consume reset
	// tickets exactly once.
	GetDel(ctx context.Context, key string) (string, error)

	// CompareAndDelete removes key only if its current value byte-matches
	// value, atomically. Returns true if the entry was removed. Two
	// concurrent refresh rotations racing on one token see exactly one
	// true.
	CompareAndDelete(ctx context.Context, key, value string) (bool, error)

	// Delete removes key. Returns true if the key existed.
	Delete(ctx context.Context, key string) (bool, error)

	// Increment adds one to the counter at key, creating it with the
	// given window TTL on first use, and returns the new count. Used by
	// the HTTP rate limiter.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}
