// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package blog

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Comment is a named, unauthenticated reply on a post.
type Comment struct {
	ID        ulid.ULID
	PostID    ulid.ULID
	UserName  string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentView is the public comment shape.
type CommentView struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View returns the public fields of the comment.
func (c *Comment) View() CommentView {
	return CommentView{
		ID:        c.ID.String(),
		PostID:    c.PostID.String(),
		UserName:  c.UserName,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ValidateUserName checks a commenter name.
func ValidateUserName(userName string) error {
	if userName == "" {
		return oops.Code(CodeValidation).Errorf("userName cannot be empty")
	}
	return nil
}

// CommentRepository manages comment persistence.
type CommentRepository interface {
	// Create stores a new comment.
	Create(ctx context.Context, comment *Comment) error

	// ListByPost returns all comments on a post, oldest first.
	ListByPost(ctx context.Context, postID ulid.ULID) ([]*Comment, error)

	// PostAuthor returns the author of the post a comment belongs to.
	// Returns ErrNotFound if no comment has the given ID.
	PostAuthor(ctx context.Context, commentID ulid.ULID) (ulid.ULID, error)

	// Delete removes a comment.
	Delete(ctx context.Context, id ulid.ULID) error
}
