// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package mocks provides testify mocks for the blog package contracts.
package mocks

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/inkwell/inkwell/internal/blog"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockPostRepository is a mock implementation of blog.PostRepository.
type MockPostRepository struct {
	mock.Mock
}

// NewMockPostRepository creates a MockPostRepository that asserts its
// expectations on test cleanup.
func NewMockPostRepository(t testingT) *MockPostRepository {
	m := &MockPostRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPostRepository) Create(ctx context.Context, post *blog.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id ulid.ULID) (*blog.Post, error) {
	args := m.Called(ctx, id)
	var post *blog.Post
	if args.Get(0) != nil {
		post = args.Get(0).(*blog.Post)
	}
	return post, args.Error(1)
}

func (m *MockPostRepository) GetView(ctx context.Context, id ulid.ULID) (*blog.PostView, error) {
	args := m.Called(ctx, id)
	var view *blog.PostView
	if args.Get(0) != nil {
		view = args.Get(0).(*blog.PostView)
	}
	return view, args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, filters blog.PostFilters, cursor ulid.ULID, limit int) ([]*blog.PostView, error) {
	args := m.Called(ctx, filters, cursor, limit)
	var views []*blog.PostView
	if args.Get(0) != nil {
		views = args.Get(0).([]*blog.PostView)
	}
	return views, args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, id ulid.ULID, update blog.PostUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return m.Called(ctx, id).Error(0)
}

// MockCategoryRepository is a mock implementation of blog.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

// NewMockCategoryRepository creates a MockCategoryRepository that asserts
// its expectations on test cleanup.
func NewMockCategoryRepository(t testingT) *MockCategoryRepository {
	m := &MockCategoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *blog.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id ulid.ULID) (*blog.Category, error) {
	args := m.Called(ctx, id)
	var category *blog.Category
	if args.Get(0) != nil {
		category = args.Get(0).(*blog.Category)
	}
	return category, args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*blog.CategoryWithCount, error) {
	args := m.Called(ctx)
	var categories []*blog.CategoryWithCount
	if args.Get(0) != nil {
		categories = args.Get(0).([]*blog.CategoryWithCount)
	}
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, id ulid.ULID, update blog.CategoryUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return m.Called(ctx, id).Error(0)
}

// MockCommentRepository is a mock implementation of blog.CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

// NewMockCommentRepository creates a MockCommentRepository that asserts its
// expectations on test cleanup.
func NewMockCommentRepository(t testingT) *MockCommentRepository {
	m := &MockCommentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *blog.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID ulid.ULID) ([]*blog.Comment, error) {
	args := m.Called(ctx, postID)
	var comments []*blog.Comment
	if args.Get(0) != nil {
		comments = args.Get(0).([]*blog.Comment)
	}
	return comments, args.Error(1)
}

func (m *MockCommentRepository) PostAuthor(ctx context.Context, commentID ulid.ULID) (ulid.ULID, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(ulid.ULID), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return m.Called(ctx, id).Error(0)
}

// MockAuthorLookup is a mock implementation of blog.AuthorLookup.
type MockAuthorLookup struct {
	mock.Mock
}

// NewMockAuthorLookup creates a MockAuthorLookup that asserts its
// expectations on test cleanup.
func NewMockAuthorLookup(t testingT) *MockAuthorLookup {
	m := &MockAuthorLookup{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuthorLookup) Exists(ctx context.Context, id ulid.ULID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
