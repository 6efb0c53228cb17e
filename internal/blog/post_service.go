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

// AuthorLookup reports whether a user exists. Post creation is gated on a
// live author.
type AuthorLookup interface {
	Exists(ctx context.Context, id ulid.ULID) (bool, error)
}

// PostService orchestrates post listing, creation, and author-gated
// mutation.
type PostService struct {
	posts   PostRepository
	authors AuthorLookup
}

// NewPostService creates a PostService.
func NewPostService(posts PostRepository, authors AuthorLookup) (*PostService, error) {
	if posts == nil {
		return nil, oops.Errorf("post repository is required")
	}
	if authors == nil {
		return nil, oops.Errorf("author lookup is required")
	}
	return &PostService{posts: posts, authors: authors}, nil
}

// ListPosts returns one page of post views matching filters. The page size
// is clamped into [1, MaxPageSize]. An empty result fails with
// BLOG_EMPTY_RESULT; NextCursor is set when more pages remain.
func (s *PostService) ListPosts(ctx context.Context, filters PostFilters, cursor ulid.ULID, pageSize int) (*PostPage, error) {
	size := ClampPageSize(pageSize)

	// Fetch one extra row to learn whether a next page exists.
	views, err := s.posts.List(ctx, filters, cursor, size+1)
	if err != nil {
		return nil, oops.Code("BLOG_LIST_POSTS_FAILED").
			With("operation", "list posts").
			Wrap(err)
	}
	if len(views) == 0 {
		return nil, oops.Code(CodeEmptyResult).Errorf("no posts found")
	}

	page := &PostPage{Posts: views}
	if len(views) > size {
		page.Posts = views[:size]
		next := views[size].ID
		page.NextCursor = &next
	}
	return page, nil
}

// GetPost returns a post view by ID.
func (s *PostService) GetPost(ctx context.Context, id ulid.ULID) (*PostView, error) {
	view, err := s.posts.GetView(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code(CodePostNotFound).Errorf("post not found")
		}
		return nil, oops.Code("BLOG_GET_POST_FAILED").
			With("operation", "get post").
			With("id", id.String()).
			Wrap(err)
	}
	return view, nil
}

// CreatePost stores a new post for the given author. A missing author
// fails with BLOG_NOT_AUTHOR.
func (s *PostService) CreatePost(ctx context.Context, authorID ulid.ULID, title, content string, published bool, categoryID ulid.ULID) (*Post, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	exists, err := s.authors.Exists(ctx, authorID)
	if err != nil {
		return nil, oops.Code("BLOG_CREATE_POST_FAILED").
			With("operation", "check author").
			Wrap(err)
	}
	if !exists {
		return nil, oops.Code(CodeNotAuthor).Errorf("not authorized to create post")
	}

	now := time.Now()
	post := &Post{
		ID:         ulid.Make(),
		Title:      title,
		Content:    content,
		Published:  published,
		AuthorID:   authorID,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies update to a post owned by actorID. A post owned by
// someone else fails with BLOG_NOT_AUTHOR.
func (s *PostService) UpdatePost(ctx context.Context, actorID, postID ulid.ULID, update PostUpdate) (*Post, error) {
	if update.Title != nil {
		if err := ValidateTitle(*update.Title); err != nil {
			return nil, err
		}
	}
	if update.Content != nil {
		if err := ValidateContent(*update.Content); err != nil {
			return nil, err
		}
	}

	if _, err := s.lookupOwned(ctx, actorID, postID, "update"); err != nil {
		return nil, err
	}

	if err := s.posts.Update(ctx, postID, update); err != nil {
		return nil, oops.Code("BLOG_UPDATE_POST_FAILED").
			With("operation", "update post").
			With("id", postID.String()).
			Wrap(err)
	}

	return s.posts.GetByID(ctx, postID)
}

// DeletePost removes a post owned by actorID, along with its comments.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID ulid.ULID) error {
	if _, err := s.lookupOwned(ctx, actorID, postID, "delete"); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return oops.Code("BLOG_DELETE_POST_FAILED").
			With("operation", "delete post").
			With("id", postID.String()).
			Wrap(err)
	}
	return nil
}

// lookupOwned fetches a post and checks actor ownership.
func (s *PostService) lookupOwned(ctx context.Context, actorID, postID ulid.ULID, verb string) (*Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code(CodePostNotFound).Errorf("post not found")
		}
		return nil, oops.Code("BLOG_GET_POST_FAILED").
			With("operation", "get post").
			With("id", postID.String()).
			Wrap(err)
	}
	if post.AuthorID.Compare(actorID) != 0 {
		return nil, oops.Code(CodeNotAuthor).Errorf("not authorized to %s this post", verb)
	}
	return post, nil
}
