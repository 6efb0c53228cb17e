// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/inkwell/inkwell/internal/blog"
)

// CategoryRepository implements blog.CategoryRepository using PostgreSQL.
type CategoryRepository struct {
	pool poolIface
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool poolIface) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create stores a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *blog.Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (
			id, name, description, image_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`,
		category.ID.String(),
		category.Name,
		category.Description,
		category.ImageURL,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		return oops.Code("CATEGORY_CREATE_FAILED").
			With("operation", "insert category").
			With("id", category.ID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a category.
func (r *CategoryRepository) GetByID(ctx context.Context, id ulid.ULID) (*blog.Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, image_url, created_at, updated_at
		FROM categories
		WHERE id = $1
	`, id.String())

	category, err := scanCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CATEGORY_NOT_FOUND").
			With("id", id.String()).
			Wrap(blog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CATEGORY_GET_BY_ID_FAILED").
			With("operation", "get category by id").
			With("id", id.String()).
			Wrap(err)
	}
	return category, nil
}

// List returns all categories with their published post counts.
func (r *CategoryRepository) List(ctx context.Context) ([]*blog.CategoryWithCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.name, c.description, c.image_url,
		       COUNT(p.id) FILTER (WHERE p.published) AS total_posts
		FROM categories c
		LEFT JOIN posts p ON p.category_id = c.id
		GROUP BY c.id, c.name, c.description, c.image_url
		ORDER BY c.name
	`)
	if err != nil {
		return nil, oops.Code("CATEGORY_LIST_FAILED").
			With("operation", "query categories").
			Wrap(err)
	}
	defer rows.Close()

	var categories []*blog.CategoryWithCount
	for rows.Next() {
		var c blog.CategoryWithCount
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.TotalPosts); err != nil {
			return nil, oops.Code("CATEGORY_LIST_FAILED").
				With("operation", "scan category row").
				Wrap(err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("CATEGORY_LIST_FAILED").
			With("operation", "iterate category rows").
			Wrap(err)
	}
	return categories, nil
}

// Update applies the non-nil fields of update to the category.
func (r *CategoryRepository) Update(ctx context.Context, id ulid.ULID, update blog.CategoryUpdate) error {
	sets := []string{}
	args := []any{id.String()}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if update.Name != nil {
		sets = append(sets, "name = "+arg(*update.Name))
	}
	if update.Description != nil {
		sets = append(sets, "description = "+arg(*update.Description))
	}
	if update.ImageURL != nil {
		sets = append(sets, "image_url = "+arg(*update.ImageURL))
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = "+arg(time.Now()))

	result, err := r.pool.Exec(ctx,
		"UPDATE categories SET "+strings.Join(sets, ", ")+" WHERE id = $1",
		args...,
	)
	if err != nil {
		return oops.Code("CATEGORY_UPDATE_FAILED").
			With("operation", "update category").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("CATEGORY_NOT_FOUND").
			With("id", id.String()).
			Wrap(blog.ErrNotFound)
	}
	return nil
}

// Delete removes a category; its posts cascade through the schema.
func (r *CategoryRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM categories WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.Code("CATEGORY_DELETE_FAILED").
			With("operation", "delete category").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("CATEGORY_NOT_FOUND").
			With("id", id.String()).
			Wrap(blog.ErrNotFound)
	}
	return nil
}

// scanCategory scans a single category row.
// Callers are responsible for handling pgx.ErrNoRows.
func scanCategory(row pgx.Row) (*blog.Category, error) {
	var (
		idStr       string
		name        string
		description string
		imageURL    string
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(&idStr, &name, &description, &imageURL, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("CATEGORY_SCAN_FAILED").
			With("operation", "scan category").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("CATEGORY_INVALID_ID").
			With("id", idStr).
			Wrap(err)
	}

	return &blog.Category{
		ID:          id,
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Compile-time interface check.
var _ blog.CategoryRepository = (*CategoryRepository)(nil)
