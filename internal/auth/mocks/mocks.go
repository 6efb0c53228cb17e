// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package mocks provides testify mocks for the auth package contracts.
package mocks

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/inkwell/inkwell/internal/auth"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUserRepository is a mock implementation of auth.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a MockUserRepository that asserts its
// expectations on test cleanup.
func NewMockUserRepository(t testingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, user *auth.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.User, error) {
	args := m.Called(ctx, id)
	var user *auth.User
	if args.Get(0) != nil {
		user = args.Get(0).(*auth.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	var user *auth.User
	if args.Get(0) != nil {
		user = args.Get(0).(*auth.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *auth.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id ulid.ULID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, cursor ulid.ULID, limit int) ([]*auth.User, error) {
	args := m.Called(ctx, cursor, limit)
	var users []*auth.User
	if args.Get(0) != nil {
		users = args.Get(0).([]*auth.User)
	}
	return users, args.Error(1)
}

// MockSessionRegistry is a mock implementation of auth.SessionRegistry.
type MockSessionRegistry struct {
	mock.Mock
}

// NewMockSessionRegistry creates a MockSessionRegistry that asserts its
// expectations on test cleanup.
func NewMockSessionRegistry(t testingT) *MockSessionRegistry {
	m := &MockSessionRegistry{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionRegistry) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockSessionRegistry) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSessionRegistry) GetDel(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSessionRegistry) CompareAndDelete(ctx context.Context, key, value string) (bool, error) {
	args := m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRegistry) Delete(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRegistry) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	args := m.Called(ctx, key, window)
	return args.Get(0).(int64), args.Error(1)
}

// MockPasswordHasher is a mock implementation of auth.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a MockPasswordHasher that asserts its
// expectations on test cleanup.
func NewMockPasswordHasher(t testingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password, hash string) (bool, error) {
	args := m.Called(password, hash)
	return args.Bool(0), args.Error(1)
}

func (m *MockPasswordHasher) NeedsUpgrade(hash string) bool {
	return m.Called(hash).Bool(0)
}
