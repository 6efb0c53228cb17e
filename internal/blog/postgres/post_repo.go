// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package postgres implements the blog repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/inkwell/inkwell/internal/blog"
)

// poolIface is the subset of pgxpool.Pool the repositories use. pgxmock
// satisfies it too, so repository queries can be unit tested without a
// database.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// postViewColumns is the join shape shared by GetView and List.
const postViewColumns = `
	p.id, p.title, p.content, p.published, p.created_at, p.updated_at,
	u.id, u.first_name, u.last_name, u.email,
	c.id, c.name
`

// PostRepository implements blog.PostRepository using PostgreSQL.
type PostRepository struct {
	pool poolIface
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(pool poolIface) *PostRepository {
	return &PostRepository{pool: pool}
}

// Create stores a new post.
func (r *PostRepository) Create(ctx context.Context, post *blog.Post) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO posts (
			id, title, content, published, author_id, category_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		post.ID.String(),
		post.Title,
		post.Content,
		post.Published,
		post.AuthorID.String(),
		post.CategoryID.String(),
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return oops.Code("POST_CREATE_FAILED").
			With("operation", "insert post").
			With("id", post.ID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a post without its summaries.
func (r *PostRepository) GetByID(ctx context.Context, id ulid.ULID) (*blog.Post, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, content, published, author_id, category_id,
		       created_at, updated_at
		FROM posts
		WHERE id = $1
	`, id.String())

	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("POST_NOT_FOUND").
			With("id", id.String()).
			Wrap(blog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("POST_GET_BY_ID_FAILED").
			With("operation", "get post by id").
			With("id", id.String()).
			Wrap(err)
	}
	return post, nil
}

// GetView retrieves a post joined with author and category summaries.
func (r *PostRepository) GetView(ctx context.Context, id ulid.ULID) (*blog.PostView, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+postViewColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, id.String())

	view, err := scanPostView(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("POST_NOT_FOUND").
			With("id", id.String()).
			Wrap(blog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("POST_GET_VIEW_FAILED").
			With("operation", "get post view").
			With("id", id.String()).
			Wrap(err)
	}
	return view, nil
}

// List returns up to limit post views matching filters, newest first,
// starting after the cursor ID when non-zero.
func (r *PostRepository) List(ctx context.Context, filters blog.PostFilters, cursor ulid.ULID, limit int) ([]*blog.PostView, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Published != nil {
		conds = append(conds, "p.published = "+arg(*filters.Published))
	}
	if filters.AuthorID != nil {
		conds = append(conds, "p.author_id = "+arg(filters.AuthorID.String()))
	}
	if filters.CategoryID != nil {
		conds = append(conds, "p.category_id = "+arg(filters.CategoryID.String()))
	}
	if filters.Search != "" {
		pattern := arg("%" + filters.Search + "%")
		conds = append(conds, "(p.title ILIKE "+pattern+" OR p.content ILIKE "+pattern+")")
	}
	if cursor.Compare(ulid.ULID{}) != 0 {
		conds = append(conds, "p.id < "+arg(cursor.String()))
	}

	query := `
		SELECT ` + postViewColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		JOIN categories c ON c.id = p.category_id
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.created_at DESC, p.id DESC LIMIT " + arg(limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, oops.Code("POST_LIST_FAILED").
			With("operation", "query posts").
			Wrap(err)
	}
	defer rows.Close()

	var views []*blog.PostView
	for rows.Next() {
		view, err := scanPostView(rows)
		if err != nil {
			return nil, oops.Code("POST_LIST_FAILED").
				With("operation", "scan post row").
				Wrap(err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("POST_LIST_FAILED").
			With("operation", "iterate post rows").
			Wrap(err)
	}
	return views, nil
}

// Update applies the non-nil fields of update to the post.
func (r *PostRepository) Update(ctx context.Context, id ulid.ULID, update blog.PostUpdate) error {
	sets := []string{}
	args := []any{id.String()}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if update.Title != nil {
		sets = append(sets, "title = "+arg(*update.Title))
	}
	if update.Content != nil {
		sets = append(sets, "content = "+arg(*update.Content))
	}
	if update.Published != nil {
		sets = append(sets, "published = "+arg(*update.Published))
	}
	if update.CategoryID != nil {
		sets = append(sets, "category_id = "+arg(update.CategoryID.String()))
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = "+arg(time.Now()))

	result, err := r.pool.Exec(ctx,
		"UPDATE posts SET "+strings.Join(sets, ", ")+" WHERE id = $1",
		args...,
	)
	if err != nil {
		return oops.Code("POST_UPDATE_FAILED").
			With("operation", "update post").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("POST_NOT_FOUND").
			With("id", id.String()).
			Wrap(blog.ErrNotFound)
	}
	return nil
}

// Delete removes a post; comments cascade through the schema.
func (r *PostRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM posts WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.Code("POST_DELETE_FAILED").
			With("operation", "delete post").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("POST_NOT_FOUND").
			With("id", id.String()).
			Wrap(blog.ErrNotFound)
	}
	return nil
}

// scanPost scans a bare post row.
// Callers are responsible for handling pgx.ErrNoRows.
func scanPost(row pgx.Row) (*blog.Post, error) {
	var (
		idStr         string
		title         string
		content       string
		published     bool
		authorIDStr   string
		categoryIDStr string
		createdAt     time.Time
		updatedAt     time.Time
	)

	err := row.Scan(&idStr, &title, &content, &published, &authorIDStr, &categoryIDStr, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("POST_SCAN_FAILED").
			With("operation", "scan post").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("POST_INVALID_ID").
			With("id", idStr).
			Wrap(err)
	}
	authorID, err := ulid.Parse(authorIDStr)
	if err != nil {
		return nil, oops.Code("POST_INVALID_AUTHOR_ID").
			With("author_id", authorIDStr).
			Wrap(err)
	}
	categoryID, err := ulid.Parse(categoryIDStr)
	if err != nil {
		return nil, oops.Code("POST_INVALID_CATEGORY_ID").
			With("category_id", categoryIDStr).
			Wrap(err)
	}

	return &blog.Post{
		ID:         id,
		Title:      title,
		Content:    content,
		Published:  published,
		AuthorID:   authorID,
		CategoryID: categoryID,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// scanPostView scans a joined post row.
// Callers are responsible for handling pgx.ErrNoRows.
func scanPostView(row pgx.Row) (*blog.PostView, error) {
	var view blog.PostView
	err := row.Scan(
		&view.ID, &view.Title, &view.Content, &view.Published,
		&view.CreatedAt, &view.UpdatedAt,
		&view.Author.ID, &view.Author.FirstName, &view.Author.LastName, &view.Author.Email,
		&view.Category.ID, &view.Category.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("POST_SCAN_FAILED").
			With("operation", "scan post view").
			Wrap(err)
	}
	return &view, nil
}

// Compile-time interface check.
var _ blog.PostRepository = (*PostRepository)(nil)
