// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package redis implements the auth session registry on Redis.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/inkwell/inkwell/internal/auth"
)

// Connection probe defaults, matching the database bootstrap.
const (
	pingBaseDelay  = 500 * time.Millisecond
	pingMaxRetries = 5
)

// compareAndDeleteScript deletes key only when its value matches. Runs
// atomically inside Redis, so two rotations racing on one refresh token
// cannot both observe a match.
var compareAndDeleteScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// incrementScript increments a counter and starts its expiry window on
// first use. Atomic, so the window cannot be left without a TTL when the
// INCR and EXPIRE race a connection failure.
var incrementScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// Registry implements auth.SessionRegistry using Redis. All entries carry a
// TTL; nothing in the registry outlives its window.
type Registry struct {
	client *redis.Client
}

// Connect opens a Redis client from a redis:// URL and verifies
// connectivity with a retried ping.
func Connect(ctx context.Context, redisURL string) (*Registry, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, oops.Code("REGISTRY_CONFIG_FAILED").
			With("operation", "parse redis url").
			Wrap(err)
	}

	client := redis.NewClient(opts)

	backoff := retry.WithMaxRetries(pingMaxRetries, retry.NewExponential(pingBaseDelay))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := client.Ping(ctx).Err(); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	}); err != nil {
		_ = client.Close() //nolint:errcheck // connection failed; close error is uninteresting
		return nil, oops.Code("REGISTRY_CONNECT_FAILED").
			With("operation", "ping redis").
			Wrap(err)
	}

	return &Registry{client: client}, nil
}

// NewRegistry wraps an existing client. The caller owns the client's
// lifecycle.
func NewRegistry(client *redis.Client) *Registry {
	return &Registry{client: client}
}

// Close releases the underlying client.
func (r *Registry) Close() error {
	if err := r.client.Close(); err != nil {
		return oops.Code("REGISTRY_CLOSE_FAILED").Wrap(err)
	}
	return nil
}

// Ping probes connectivity, for health checks.
func (r *Registry) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return oops.Code("REGISTRY_UNAVAILABLE").Wrap(err)
	}
	return nil
}

// Set stores value under key with the given TTL, overwriting any existing
// entry.
func (r *Registry) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return oops.Code("REGISTRY_SET_FAILED").
			With("key", key).
			Wrap(err)
	}
	return nil
}

// Get returns the value under key, or auth.ErrNotFound when the key is
// absent or expired.
func (r *Registry) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", oops.Code("REGISTRY_ENTRY_NOT_FOUND").
			With("key", key).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return "", oops.Code("REGISTRY_GET_FAILED").
			With("key", key).
			Wrap(err)
	}
	return value, nil
}

// GetDel atomically returns and removes the value under key, or
// auth.ErrNotFound when the key is absent or expired. At most one caller
// can consume a given entry.
func (r *Registry) GetDel(ctx context.Context, key string) (string, error) {
	value, err := r.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", oops.Code("REGISTRY_ENTRY_NOT_FOUND").
			With("key", key).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return "", oops.Code("REGISTRY_GETDEL_FAILED").
			With("key", key).
			Wrap(err)
	}
	return value, nil
}

// CompareAndDelete removes key only if its current value equals value.
// Returns whether the entry was removed.
func (r *Registry) CompareAndDelete(ctx context.Context, key, value string) (bool, error) {
	removed, err := compareAndDeleteScript.Run(ctx, r.client, []string{key}, value).Int()
	if err != nil {
		return false, oops.Code("REGISTRY_CAD_FAILED").
			With("key", key).
			Wrap(err)
	}
	return removed == 1, nil
}

// Delete removes key unconditionally. Returns whether an entry existed.
func (r *Registry) Delete(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return false, oops.Code("REGISTRY_DELETE_FAILED").
			With("key", key).
			Wrap(err)
	}
	return count > 0, nil
}

// Increment bumps the fixed-window counter under key, starting the window
// on first use. Returns the count within the current window.
func (r *Registry) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := incrementScript.Run(ctx, r.client, []string{key}, window.Milliseconds()).Int64()
	if err != nil {
		return 0, oops.Code("REGISTRY_INCR_FAILED").
			With("key", key).
			Wrap(err)
	}
	return count, nil
}

// Compile-time interface check.
var _ auth.SessionRegistry = (*Registry)(nil)
