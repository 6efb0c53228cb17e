// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Name length limit shared by first and last names.
const MaxNameLength = 100

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	upperRegex = regexp.MustCompile(`[A-Z]`)
	lowerRegex = regexp.MustCompile(`[a-z]`)
	digitRegex = regexp.MustCompile(`[0-9]`)
)

// User is a registered account. PasswordHash never leaves this package;
// API responses carry the Identity projection instead.
type User struct {
	ID           ulid.ULID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// Identity is the public projection of a User.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Identity returns the public fields of the user.
func (u *User) Identity() Identity {
	return Identity{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// Principal is the minimal identity attached to authenticated requests.
// Produced by ValidateToken without any registry or database I/O.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ValidateEmail checks the basic shape of an email address. Uniqueness is
// enforced by the credential store.
func ValidateEmail(email string) error {
	if email == "" {
		return oops.Code(CodeValidation).Errorf("email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return oops.Code(CodeValidation).Errorf("email must be a valid email address")
	}
	return nil
}

// ValidatePassword enforces the password policy: at least
// MinPasswordLength characters with one uppercase letter, one lowercase
// letter, and one digit.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return oops.Code(CodeValidation).
			With("min", MinPasswordLength).
			Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if !upperRegex.MatchString(password) {
		return oops.Code(CodeValidation).Errorf("password must contain at least one uppercase letter")
	}
	if !lowerRegex.MatchString(password) {
		return oops.Code(CodeValidation).Errorf("password must contain at least one lowercase letter")
	}
	if !digitRegex.MatchString(password) {
		return oops.Code(CodeValidation).Errorf("password must contain at least one number")
	}
	return nil
}

// ValidateName checks a first or last name.
func ValidateName(field, name string) error {
	if name == "" {
		return oops.Code(CodeValidation).Errorf("%s cannot be empty", field)
	}
	if len(name) > MaxNameLength {
		return oops.Code(CodeValidation).
			With("max", MaxNameLength).
			Errorf("%s must be at most %d characters", field, MaxNameLength)
	}
	return nil
}

// UserRepository manages credential persistence. The store enforces email
// uniqueness; Create reports a duplicate with an AUTH_EMAIL_TAKEN code.
type UserRepository interface {
	// Create stores a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)

	// GetByEmail retrieves a user by email (case-sensitive).
	// Returns ErrNotFound if no user has the given email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates the mutable profile fields of a user.
	Update(ctx context.Context, user *User) error

	// UpdatePassword updates only the password hash.
	UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error

	// UpdateLastLogin records a successful login timestamp.
	UpdateLastLogin(ctx context.Context, id ulid.ULID, at time.Time) error

	// Delete removes a user.
	Delete(ctx context.Context, id ulid.ULID) error

	// List returns users ordered by creation time descending then ID
	// descending, starting after the cursor ID when non-zero. It returns
	// up to limit users.
	List(ctx context.Context, cursor ulid.ULID, limit int) ([]*User, error)
}
