// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package postgres implements the auth repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/inkwell/inkwell/internal/auth"
)

// UserRepository implements auth.UserRepository using PostgreSQL. Email
// uniqueness is enforced by the users_email_key index, so concurrent
// registrations of the same address cannot both succeed.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create stores a new user. A duplicate email fails with AUTH_EMAIL_TAKEN.
func (r *UserRepository) Create(ctx context.Context, user *auth.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name,
			created_at, updated_at, last_login_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		user.ID.String(),
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.CreatedAt,
		user.UpdatedAt,
		user.LastLoginAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code(auth.CodeEmailTaken).
				With("email", user.Email).
				Errorf("user with this email already exists")
		}
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, first_name, last_name,
		       created_at, updated_at, last_login_at
		FROM users
		WHERE id = $1
	`, id.String())

	user, err := r.scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_ID_FAILED").
			With("operation", "get user by id").
			With("id", id.String()).
			Wrap(err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email (case-sensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, first_name, last_name,
		       created_at, updated_at, last_login_at
		FROM users
		WHERE email = $1
	`, email)

	user, err := r.scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("email", email).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_EMAIL_FAILED").
			With("operation", "get user by email").
			With("email", email).
			Wrap(err)
	}
	return user, nil
}

// Update updates the mutable profile fields of a user. A conflicting email
// fails with AUTH_EMAIL_TAKEN.
func (r *UserRepository) Update(ctx context.Context, user *auth.User) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE users SET
			email = $2,
			first_name = $3,
			last_name = $4,
			updated_at = $5
		WHERE id = $1
	`,
		user.ID.String(),
		user.Email,
		user.FirstName,
		user.LastName,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code(auth.CodeEmailTaken).
				With("email", user.Email).
				Errorf("user with this email already exists")
		}
		return oops.Code("USER_UPDATE_FAILED").
			With("operation", "update user").
			With("id", user.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", user.ID.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// UpdatePassword updates only the password hash for a user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = $3
		WHERE id = $1
	`, id.String(), passwordHash, time.Now())
	if err != nil {
		return oops.Code("USER_UPDATE_PASSWORD_FAILED").
			With("operation", "update password").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// UpdateLastLogin records a successful login timestamp.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id ulid.ULID, at time.Time) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE users SET last_login_at = $2
		WHERE id = $1
	`, id.String(), at)
	if err != nil {
		return oops.Code("USER_UPDATE_LAST_LOGIN_FAILED").
			With("operation", "update last login").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// Delete removes a user.
func (r *UserRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM users WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.Code("USER_DELETE_FAILED").
			With("operation", "delete user").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// Exists reports whether a user with the given ID is present. The blog
// services use it to gate post creation on a live author.
func (r *UserRepository) Exists(ctx context.Context, id ulid.ULID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
	`, id.String()).Scan(&exists)
	if err != nil {
		return false, oops.Code("USER_EXISTS_FAILED").
			With("operation", "check user exists").
			With("id", id.String()).
			Wrap(err)
	}
	return exists, nil
}

// List returns users ordered by creation time descending then ID
// descending, starting after the cursor ID when non-zero.
func (r *UserRepository) List(ctx context.Context, cursor ulid.ULID, limit int) ([]*auth.User, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if cursor.Compare(ulid.ULID{}) == 0 {
		rows, err = r.pool.Query(ctx, `
			SELECT id, email, password_hash, first_name, last_name,
			       created_at, updated_at, last_login_at
			FROM users
			ORDER BY created_at DESC, id DESC
			LIMIT $1
		`, limit)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT id, email, password_hash, first_name, last_name,
			       created_at, updated_at, last_login_at
			FROM users
			WHERE id < $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		`, cursor.String(), limit)
	}
	if err != nil {
		return nil, oops.Code("USER_LIST_FAILED").
			With("operation", "query users").
			Wrap(err)
	}
	defer rows.Close()

	var users []*auth.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, oops.Code("USER_LIST_FAILED").
				With("operation", "scan user row").
				Wrap(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("USER_LIST_FAILED").
			With("operation", "iterate user rows").
			Wrap(err)
	}
	return users, nil
}

// scanUser scans a single row into a User.
// Callers are responsible for handling pgx.ErrNoRows.
func (r *UserRepository) scanUser(row pgx.Row) (*auth.User, error) {
	var (
		idStr        string
		email        string
		passwordHash string
		firstName    string
		lastName     string
		createdAt    time.Time
		updatedAt    time.Time
		lastLoginAt  *time.Time
	)

	err := row.Scan(
		&idStr,
		&email,
		&passwordHash,
		&firstName,
		&lastName,
		&createdAt,
		&updatedAt,
		&lastLoginAt,
	)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to handle with context.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("USER_SCAN_FAILED").
			With("operation", "scan user").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("USER_INVALID_ID").
			With("operation", "parse user id").
			With("id", idStr).
			Wrap(err)
	}

	return &auth.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
		LastLoginAt:  lastLoginAt,
	}, nil
}

// Compile-time interface check.
var _ auth.UserRepository = (*UserRepository)(nil)
