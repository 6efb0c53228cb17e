// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package blog

import (
	"context"
	"net/url"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Category field limits.
const (
	MaxCategoryNameLength        = 100
	MaxCategoryDescriptionLength = 500
)

// Category groups posts by topic.
type Category struct {
	ID          ulid.ULID
	Name        string
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryView is the public category shape.
type CategoryView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// View returns the public fields of the category.
func (c *Category) View() CategoryView {
	return CategoryView{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}

// CategoryWithCount is a category plus its published post count, returned
// by the listing endpoint.
type CategoryWithCount struct {
	CategoryView
	TotalPosts int `json:"totalPosts"`
}

// CategoryUpdate carries the optional fields of a category update. Nil
// fields keep their current value.
type CategoryUpdate struct {
	Name        *string
	Description *string
	ImageURL    *string
}

// ValidateCategoryName checks a category name.
func ValidateCategoryName(name string) error {
	if name == "" {
		return oops.Code(CodeValidation).Errorf("name cannot be empty")
	}
	if len(name) > MaxCategoryNameLength {
		return oops.Code(CodeValidation).
			With("max", MaxCategoryNameLength).
			Errorf("name must be at most %d characters", MaxCategoryNameLength)
	}
	return nil
}

// ValidateCategoryDescription checks a category description. Empty is
// allowed.
func ValidateCategoryDescription(description string) error {
	if len(description) > MaxCategoryDescriptionLength {
		return oops.Code(CodeValidation).
			With("max", MaxCategoryDescriptionLength).
			Errorf("description must be at most %d characters", MaxCategoryDescriptionLength)
	}
	return nil
}

// ValidateImageURL checks that the image URL is absolute http(s).
func ValidateImageURL(imageURL string) error {
	parsed, err := url.Parse(imageURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return oops.Code(CodeValidation).Errorf("image URL must be a valid URL")
	}
	return nil
}

// CategoryRepository manages category persistence.
type CategoryRepository interface {
	// Create stores a new category.
	Create(ctx context.Context, category *Category) error

	// GetByID retrieves a category.
	// Returns ErrNotFound if no category has the given ID.
	GetByID(ctx context.Context, id ulid.ULID) (*Category, error)

	// List returns all categories with their published post counts.
	List(ctx context.Context) ([]*CategoryWithCount, error)

	// Update applies the non-nil fields of update to the category.
	Update(ctx context.Context, id ulid.ULID, update CategoryUpdate) error

	// Delete removes a category and its posts.
	Delete(ctx context.Context, id ulid.ULID) error
}
