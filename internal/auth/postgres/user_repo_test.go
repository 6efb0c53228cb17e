// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/auth/postgres"
	"github.com/inkwell/inkwell/pkg/errutil"
)

// newTestUser builds a user with a unique email and registers cleanup.
func newTestUser(t *testing.T) *auth.User {
	t.Helper()
	id := ulid.Make()
	user := &auth.User{
		ID:           id,
		Email:        fmt.Sprintf("%s@test.example", id.String()),
		PasswordHash: "hash123",
		FirstName:    "Test",
		LastName:     "User",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	t.Cleanup(func() {
		_, _ = testPool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id.String())
	})
	return user
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewUserRepository(testPool)

	t.Run("creates new user", func(t *testing.T) {
		user := newTestUser(t)

		err := repo.Create(ctx, user)
		require.NoError(t, err)

		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
		assert.Equal(t, user.Email, stored.Email)
		assert.Equal(t, user.PasswordHash, stored.PasswordHash)
		assert.Equal(t, user.FirstName, stored.FirstName)
		assert.Nil(t, stored.LastLoginAt)
	})

	t.Run("fails on duplicate email", func(t *testing.T) {
		user1 := newTestUser(t)
		require.NoError(t, repo.Create(ctx, user1))

		user2 := newTestUser(t)
		user2.Email = user1.Email

		err := repo.Create(ctx, user2)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, auth.CodeEmailTaken)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewUserRepository(testPool)

	t.Run("finds user by exact email", func(t *testing.T) {
		user := newTestUser(t)
		require.NoError(t, repo.Create(ctx, user))

		stored, err := repo.GetByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})

	t.Run("lookup is case-sensitive", func(t *testing.T) {
		user := newTestUser(t)
		require.NoError(t, repo.Create(ctx, user))

		// Emails are stored as-is; a different casing does not match.
		_, err := repo.GetByEmail(ctx, "UPPER"+user.Email)
		require.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "missing@test.example")
		require.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewUserRepository(testPool)

	t.Run("updates profile fields", func(t *testing.T) {
		user := newTestUser(t)
		require.NoError(t, repo.Create(ctx, user))

		user.FirstName = "Updated"
		user.LastName = "Name"
		user.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
		require.NoError(t, repo.Update(ctx, user))

		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated", stored.FirstName)
		assert.Equal(t, "Name", stored.LastName)
	})

	t.Run("unknown user", func(t *testing.T) {
		user := newTestUser(t)
		err := repo.Update(ctx, user)
		require.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewUserRepository(testPool)

	t.Run("replaces only the hash", func(t *testing.T) {
		user := newTestUser(t)
		require.NoError(t, repo.Create(ctx, user))

		require.NoError(t, repo.UpdatePassword(ctx, user.ID, "newhash456"))

		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "newhash456", stored.PasswordHash)
		assert.Equal(t, user.FirstName, stored.FirstName)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := repo.UpdatePassword(ctx, ulid.Make(), "hash")
		require.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewUserRepository(testPool)

	user := newTestUser(t)
	require.NoError(t, repo.Create(ctx, user))

	at := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.UpdateLastLogin(ctx, user.ID, at))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
	assert.WithinDuration(t, at, *stored.LastLoginAt, time.Second)
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewUserRepository(testPool)

	t.Run("removes user", func(t *testing.T) {
		user := newTestUser(t)
		require.NoError(t, repo.Create(ctx, user))

		require.NoError(t, repo.Delete(ctx, user.ID))

		_, err := repo.GetByID(ctx, user.ID)
		require.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := repo.Delete(ctx, ulid.Make())
		require.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestUserRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewUserRepository(testPool)

	// Three users created in order; listing is newest-first.
	var created []*auth.User
	for range 3 {
		user := newTestUser(t)
		require.NoError(t, repo.Create(ctx, user))
		created = append(created, user)
		time.Sleep(2 * time.Millisecond) // distinct ULIDs and timestamps
	}

	t.Run("first page", func(t *testing.T) {
		users, err := repo.List(ctx, ulid.ULID{}, 2)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(users), 2)
		assert.Equal(t, created[2].ID, users[0].ID)
		assert.Equal(t, created[1].ID, users[1].ID)
	})

	t.Run("cursor page", func(t *testing.T) {
		users, err := repo.List(ctx, created[1].ID, 10)
		require.NoError(t, err)
		require.NotEmpty(t, users)
		assert.Equal(t, created[0].ID, users[0].ID)
	})
}
