// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package blog holds the content domain: posts, categories, and comments.
// Services enforce authorship and pagination rules; persistence lives
// behind the repository interfaces in this package.
package blog
