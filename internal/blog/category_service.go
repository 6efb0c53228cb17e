// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package blog

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// CategoryService orchestrates category management.
type CategoryService struct {
	categories CategoryRepository
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(categories CategoryRepository) (*CategoryService, error) {
	if categories == nil {
		return nil, oops.Errorf("category repository is required")
	}
	return &CategoryService{categories: categories}, nil
}

// ListCategories returns all categories with their published post counts.
// An empty result fails with BLOG_EMPTY_RESULT.
func (s *CategoryService) ListCategories(ctx context.Context) ([]*CategoryWithCount, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, oops.Code("BLOG_LIST_CATEGORIES_FAILED").
			With("operation", "list categories").
			Wrap(err)
	}
	if len(categories) == 0 {
		return nil, oops.Code(CodeEmptyResult).Errorf("no categories found")
	}
	return categories, nil
}

// GetCategory returns a category by ID.
func (s *CategoryService) GetCategory(ctx context.Context, id ulid.ULID) (*Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code(CodeCategoryNotFound).Errorf("category not found")
		}
		return nil, oops.Code("BLOG_GET_CATEGORY_FAILED").
			With("operation", "get category").
			With("id", id.String()).
			Wrap(err)
	}
	return category, nil
}

// CreateCategory stores a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, name, description, imageURL string) (*Category, error) {
	if err := ValidateCategoryName(name); err != nil {
		return nil, err
	}
	if err := ValidateCategoryDescription(description); err != nil {
		return nil, err
	}
	if err := ValidateImageURL(imageURL); err != nil {
		return nil, err
	}

	now := time.Now()
	category := &Category{
		ID:          ulid.Make(),
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory applies the non-nil fields of update to a category.
func (s *CategoryService) UpdateCategory(ctx context.Context, id ulid.ULID, update CategoryUpdate) (*Category, error) {
	if update.Name != nil {
		if err := ValidateCategoryName(*update.Name); err != nil {
			return nil, err
		}
	}
	if update.Description != nil {
		if err := ValidateCategoryDescription(*update.Description); err != nil {
			return nil, err
		}
	}
	if update.ImageURL != nil {
		if err := ValidateImageURL(*update.ImageURL); err != nil {
			return nil, err
		}
	}

	if _, err := s.GetCategory(ctx, id); err != nil {
		return nil, err
	}

	if err := s.categories.Update(ctx, id, update); err != nil {
		return nil, oops.Code("BLOG_UPDATE_CATEGORY_FAILED").
			With("operation", "update category").
			With("id", id.String()).
			Wrap(err)
	}

	return s.GetCategory(ctx, id)
}

// DeleteCategory removes a category and its posts.
func (s *CategoryService) DeleteCategory(ctx context.Context, id ulid.ULID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return oops.Code("BLOG_DELETE_CATEGORY_FAILED").
			With("operation", "delete category").
			With("id", id.String()).
			Wrap(err)
	}
	return nil
}
