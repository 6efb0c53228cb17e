// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Page size bounds for user listings.
const (
	defaultUserPageSize = 10
	maxUserPageSize     = 50
)

// UserView is the public user shape returned by profile endpoints.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View returns the public fields of the user.
func (u *User) View() UserView {
	return UserView{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserPage is one page of users with the cursor for the next one.
// NextCursor is nil on the last page.
type UserPage struct {
	Users      []UserView `json:"users"`
	NextCursor *string    `json:"nextCursor"`
}

// UserUpdate carries the optional fields of a profile update. Nil fields
// keep their current value.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UserService manages user profiles. Credential changes go through the
// auth Service; this one covers listing and profile maintenance.
type UserService struct {
	users UserRepository
}

// NewUserService creates a UserService.
func NewUserService(users UserRepository) (*UserService, error) {
	if users == nil {
		return nil, oops.Errorf("user repository is required")
	}
	return &UserService{users: users}, nil
}

// ListUsers returns one page of users, newest first. The page size is
// clamped into [1, 50]. An empty result fails with AUTH_USER_NOT_FOUND.
func (s *UserService) ListUsers(ctx context.Context, cursor ulid.ULID, pageSize int) (*UserPage, error) {
	size := pageSize
	if size <= 0 {
		size = defaultUserPageSize
	}
	if size > maxUserPageSize {
		size = maxUserPageSize
	}

	// Fetch one extra row to learn whether a next page exists.
	users, err := s.users.List(ctx, cursor, size+1)
	if err != nil {
		return nil, oops.Code("AUTH_LIST_USERS_FAILED").
			With("operation", "list users").
			Wrap(err)
	}
	if len(users) == 0 {
		return nil, oops.Code(CodeUserNotFound).Errorf("no users found")
	}

	page := &UserPage{}
	limited := users
	if len(users) > size {
		limited = users[:size]
		next := users[size].ID.String()
		page.NextCursor = &next
	}
	for _, u := range limited {
		page.Users = append(page.Users, u.View())
	}
	return page, nil
}

// GetUser returns a user's public view by ID.
func (s *UserService) GetUser(ctx context.Context, id ulid.ULID) (*UserView, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code(CodeUserNotFound).Errorf("user not found")
		}
		return nil, oops.Code("AUTH_GET_USER_FAILED").
			With("operation", "get user").
			With("id", id.String()).
			Wrap(err)
	}
	view := user.View()
	return &view, nil
}

// UpdateUser applies the non-nil fields of update to a user's profile. A
// conflicting email fails with AUTH_EMAIL_TAKEN.
func (s *UserService) UpdateUser(ctx context.Context, id ulid.ULID, update UserUpdate) (*UserView, error) {
	if update.Email != nil {
		if err := ValidateEmail(*update.Email); err != nil {
			return nil, err
		}
	}
	if update.FirstName != nil {
		if err := ValidateName("first name", *update.FirstName); err != nil {
			return nil, err
		}
	}
	if update.LastName != nil {
		if err := ValidateName("last name", *update.LastName); err != nil {
			return nil, err
		}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code(CodeUserNotFound).Errorf("user not found")
		}
		return nil, oops.Code("AUTH_UPDATE_USER_FAILED").
			With("operation", "get user").
			With("id", id.String()).
			Wrap(err)
	}

	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	view := user.View()
	return &view, nil
}

// DeleteUser removes a user and, through the schema, their posts.
func (s *UserService) DeleteUser(ctx context.Context, id ulid.ULID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code(CodeUserNotFound).Errorf("user not found")
		}
		return oops.Code("AUTH_DELETE_USER_FAILED").
			With("operation", "delete user").
			With("id", id.String()).
			Wrap(err)
	}
	return nil
}
