// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/pkg/errutil"
)

func seedUsers(t *testing.T, users *memUsers, n int) []*auth.User {
	t.Helper()
	ctx := context.Background()
	var created []*auth.User
	for i := range n {
		u := &auth.User{
			ID:           ulid.Make(),
			Email:        fmt.Sprintf("user%d@x.com", i),
			PasswordHash: "hash",
			FirstName:    "User",
			LastName:     fmt.Sprintf("N%d", i),
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		require.NoError(t, users.Create(ctx, u))
		created = append(created, u)
		time.Sleep(2 * time.Millisecond) // distinct ULIDs across milliseconds
	}
	return created
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store fails not found", func(t *testing.T) {
		svc, err := auth.NewUserService(newMemUsers())
		require.NoError(t, err)

		_, err = svc.ListUsers(ctx, ulid.ULID{}, 10)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, auth.CodeUserNotFound)
	})

	t.Run("pages newest first with cursor", func(t *testing.T) {
		users := newMemUsers()
		created := seedUsers(t, users, 3)
		svc, err := auth.NewUserService(users)
		require.NoError(t, err)

		page, err := svc.ListUsers(ctx, ulid.ULID{}, 2)
		require.NoError(t, err)
		require.Len(t, page.Users, 2)
		assert.Equal(t, created[2].ID.String(), page.Users[0].ID)
		assert.Equal(t, created[1].ID.String(), page.Users[1].ID)
		require.NotNil(t, page.NextCursor)

		cursor, err := ulid.Parse(*page.NextCursor)
		require.NoError(t, err)
		next, err := svc.ListUsers(ctx, cursor, 2)
		require.NoError(t, err)
		require.Len(t, next.Users, 1)
		assert.Equal(t, created[0].ID.String(), next.Users[0].ID)
		assert.Nil(t, next.NextCursor)
	})

	t.Run("clamps page size", func(t *testing.T) {
		users := newMemUsers()
		seedUsers(t, users, 2)
		svc, err := auth.NewUserService(users)
		require.NoError(t, err)

		// A huge page size is clamped, not rejected.
		page, err := svc.ListUsers(ctx, ulid.ULID{}, 10_000)
		require.NoError(t, err)
		assert.Len(t, page.Users, 2)
	})
}

func TestUserService_GetUser(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	created := seedUsers(t, users, 1)
	svc, err := auth.NewUserService(users)
	require.NoError(t, err)

	t.Run("returns public view", func(t *testing.T) {
		view, err := svc.GetUser(ctx, created[0].ID)
		require.NoError(t, err)
		assert.Equal(t, created[0].Email, view.Email)
		assert.Equal(t, created[0].FirstName, view.FirstName)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GetUser(ctx, ulid.Make())
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, auth.CodeUserNotFound)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("applies partial update", func(t *testing.T) {
		users := newMemUsers()
		created := seedUsers(t, users, 1)
		svc, err := auth.NewUserService(users)
		require.NoError(t, err)

		first := "Renamed"
		view, err := svc.UpdateUser(ctx, created[0].ID, auth.UserUpdate{FirstName: &first})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", view.FirstName)
		assert.Equal(t, created[0].Email, view.Email, "unset fields keep their value")
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		users := newMemUsers()
		created := seedUsers(t, users, 1)
		svc, err := auth.NewUserService(users)
		require.NoError(t, err)

		bad := "nope"
		_, err = svc.UpdateUser(ctx, created[0].ID, auth.UserUpdate{Email: &bad})
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, auth.CodeValidation)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, err := auth.NewUserService(newMemUsers())
		require.NoError(t, err)

		first := "X"
		_, err = svc.UpdateUser(ctx, ulid.Make(), auth.UserUpdate{FirstName: &first})
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, auth.CodeUserNotFound)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("removes user", func(t *testing.T) {
		users := newMemUsers()
		created := seedUsers(t, users, 1)
		svc, err := auth.NewUserService(users)
		require.NoError(t, err)

		require.NoError(t, svc.DeleteUser(ctx, created[0].ID))

		_, err = svc.GetUser(ctx, created[0].ID)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, auth.CodeUserNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, err := auth.NewUserService(newMemUsers())
		require.NoError(t, err)

		err = svc.DeleteUser(ctx, ulid.Make())
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, auth.CodeUserNotFound)
	})
}
