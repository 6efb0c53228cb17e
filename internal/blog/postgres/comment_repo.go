// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/inkwell/inkwell/internal/blog"
)

// CommentRepository implements blog.CommentRepository using PostgreSQL.
type CommentRepository struct {
	pool poolIface
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(pool poolIface) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create stores a new comment.
func (r *CommentRepository) Create(ctx context.Context, comment *blog.Comment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (
			id, post_id, user_name, content, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`,
		comment.ID.String(),
		comment.PostID.String(),
		comment.UserName,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return oops.Code("COMMENT_CREATE_FAILED").
			With("operation", "insert comment").
			With("id", comment.ID.String()).
			Wrap(err)
	}
	return nil
}

// ListByPost returns all comments on a post, oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID ulid.ULID) ([]*blog.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, post_id, user_name, content, created_at, updated_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC, id ASC
	`, postID.String())
	if err != nil {
		return nil, oops.Code("COMMENT_LIST_FAILED").
			With("operation", "query comments").
			With("post_id", postID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var comments []*blog.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, oops.Code("COMMENT_LIST_FAILED").
				With("operation", "scan comment row").
				Wrap(err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("COMMENT_LIST_FAILED").
			With("operation", "iterate comment rows").
			Wrap(err)
	}
	return comments, nil
}

// PostAuthor returns the author of the post a comment belongs to.
func (r *CommentRepository) PostAuthor(ctx context.Context, commentID ulid.ULID) (ulid.ULID, error) {
	var authorIDStr string
	err := r.pool.QueryRow(ctx, `
		SELECT p.author_id
		FROM comments cm
		JOIN posts p ON p.id = cm.post_id
		WHERE cm.id = $1
	`, commentID.String()).Scan(&authorIDStr)
	if errors.Is(err, pgx.ErrNoRows) {
		return ulid.ULID{}, oops.Code("COMMENT_NOT_FOUND").
			With("id", commentID.String()).
			Wrap(blog.ErrNotFound)
	}
	if err != nil {
		return ulid.ULID{}, oops.Code("COMMENT_POST_AUTHOR_FAILED").
			With("operation", "get post author").
			With("id", commentID.String()).
			Wrap(err)
	}

	authorID, err := ulid.Parse(authorIDStr)
	if err != nil {
		return ulid.ULID{}, oops.Code("COMMENT_INVALID_AUTHOR_ID").
			With("author_id", authorIDStr).
			Wrap(err)
	}
	return authorID, nil
}

// Delete removes a comment.
func (r *CommentRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM comments WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.Code("COMMENT_DELETE_FAILED").
			With("operation", "delete comment").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("COMMENT_NOT_FOUND").
			With("id", id.String()).
			Wrap(blog.ErrNotFound)
	}
	return nil
}

// scanComment scans a single comment row.
// Callers are responsible for handling pgx.ErrNoRows.
func scanComment(row pgx.Row) (*blog.Comment, error) {
	var (
		idStr     string
		postIDStr string
		userName  string
		content   string
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(&idStr, &postIDStr, &userName, &content, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("COMMENT_SCAN_FAILED").
			With("operation", "scan comment").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("COMMENT_INVALID_ID").
			With("id", idStr).
			Wrap(err)
	}
	postID, err := ulid.Parse(postIDStr)
	if err != nil {
		return nil, oops.Code("COMMENT_INVALID_POST_ID").
			With("post_id", postIDStr).
			Wrap(err)
	}

	return &blog.Comment{
		ID:        id,
		PostID:    postID,
		UserName:  userName,
		Content:   content,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// Compile-time interface check.
var _ blog.CommentRepository = (*CommentRepository)(nil)
