// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package blog

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// MaxTitleLength bounds post titles.
const MaxTitleLength = 255

// Page size bounds shared by post and user listings.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Post is a blog entry.
type Post struct {
	ID         ulid.ULID
	Title      string
	Content    string
	Published  bool
	AuthorID   ulid.ULID
	CategoryID ulid.ULID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Author is the post-embedded author summary.
type Author struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// CategoryRef is the post-embedded category summary.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PostView is a post joined with its author and category summaries, the
// shape read endpoints return.
type PostView struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Published bool        `json:"published"`
	Author    Author      `json:"author"`
	Category  CategoryRef `json:"category"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// PostFilters narrows post listings. Nil fields match everything; Search
// matches title or content case-insensitively.
type PostFilters struct {
	Published  *bool
	AuthorID   *ulid.ULID
	CategoryID *ulid.ULID
	Search     string
}

// PostPage is one page of posts with the cursor for the next one.
// NextCursor is nil on the last page.
type PostPage struct {
	Posts      []*PostView `json:"posts"`
	NextCursor *string     `json:"nextCursor"`
}

// PostUpdate carries the optional fields of a post update. Nil fields keep
// their current value.
type PostUpdate struct {
	Title      *string
	Content    *string
	Published  *bool
	CategoryID *ulid.ULID
}

// ValidateTitle checks a post title.
func ValidateTitle(title string) error {
	if title == "" {
		return oops.Code(CodeValidation).Errorf("title cannot be empty")
	}
	if len(title) > MaxTitleLength {
		return oops.Code(CodeValidation).
			With("max", MaxTitleLength).
			Errorf("title must be at most %d characters", MaxTitleLength)
	}
	return nil
}

// ValidateContent checks post or comment content.
func ValidateContent(content string) error {
	if content == "" {
		return oops.Code(CodeValidation).Errorf("content cannot be empty")
	}
	return nil
}

// ClampPageSize normalizes a requested page size into [1, MaxPageSize],
// with DefaultPageSize for zero or negative requests.
func ClampPageSize(size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return size
}

// PostRepository manages post persistence.
type PostRepository interface {
	// Create stores a new post.
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post without its summaries.
	// Returns ErrNotFound if no post has the given ID.
	GetByID(ctx context.Context, id ulid.ULID) (*Post, error)

	// GetView retrieves a post joined with author and category summaries.
	// Returns ErrNotFound if no post has the given ID.
	GetView(ctx context.Context, id ulid.ULID) (*PostView, error)

	// List returns up to limit post views matching filters, ordered by
	// creation time descending then ID descending, starting after the
	// cursor ID when non-zero.
	List(ctx context.Context, filters PostFilters, cursor ulid.ULID, limit int) ([]*PostView, error)

	// Update applies the non-nil fields of update to the post.
	Update(ctx context.Context, id ulid.ULID, update PostUpdate) error

	// Delete removes a post and its comments.
	Delete(ctx context.Context, id ulid.ULID) error
}
