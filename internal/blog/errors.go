// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package blog

import "errors"

// ErrNotFound is returned by repositories when an entity does not exist.
// Services wrap it with an entity-specific code.
var ErrNotFound = errors.New("not found")

// Error codes attached to oops errors. The HTTP layer maps them to
// status codes.
const (
	// CodePostNotFound indicates the requested post does not exist.
	CodePostNotFound = "BLOG_POST_NOT_FOUND"

	// CodeCategoryNotFound indicates the requested category does not exist.
	CodeCategoryNotFound = "BLOG_CATEGORY_NOT_FOUND"

	// CodeCommentNotFound indicates the requested comment does not exist.
	CodeCommentNotFound = "BLOG_COMMENT_NOT_FOUND"

	// CodeNotAuthor indicates the caller does not own the targeted content.
	CodeNotAuthor = "BLOG_NOT_AUTHOR"

	// CodeEmptyResult indicates a listing matched nothing.
	CodeEmptyResult = "BLOG_EMPTY_RESULT"

	// CodeValidation indicates malformed input.
	CodeValidation = "VALIDATION_FAILED"
)
