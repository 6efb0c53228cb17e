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

// CommentService orchestrates comments. Anyone may comment under a display
// name; only the author of the parent post may delete.
type CommentService struct {
	comments CommentRepository
	posts    PostRepository
}

// NewCommentService creates a CommentService.
func NewCommentService(comments CommentRepository, posts PostRepository) (*CommentService, error) {
	if comments == nil {
		return nil, oops.Errorf("comment repository is required")
	}
	if posts == nil {
		return nil, oops.Errorf("post repository is required")
	}
	return &CommentService{comments: comments, posts: posts}, nil
}

// ListComments returns all comments on a post, oldest first. An empty
// result fails with BLOG_EMPTY_RESULT.
func (s *CommentService) ListComments(ctx context.Context, postID ulid.ULID) ([]*Comment, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, oops.Code("BLOG_LIST_COMMENTS_FAILED").
			With("operation", "list comments").
			With("post_id", postID.String()).
			Wrap(err)
	}
	if len(comments) == 0 {
		return nil, oops.Code(CodeEmptyResult).Errorf("no comments found for this post")
	}
	return comments, nil
}

// CreateComment stores a new comment on an existing post.
func (s *CommentService) CreateComment(ctx context.Context, postID ulid.ULID, userName, content string) (*Comment, error) {
	if err := ValidateUserName(userName); err != nil {
		return nil, err
	}
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code(CodePostNotFound).Errorf("post not found")
		}
		return nil, oops.Code("BLOG_CREATE_COMMENT_FAILED").
			With("operation", "get post").
			With("post_id", postID.String()).
			Wrap(err)
	}

	now := time.Now()
	comment := &Comment{
		ID:        ulid.Make(),
		PostID:    postID,
		UserName:  userName,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Only the author of the parent post may
// delete; anyone else fails with BLOG_NOT_AUTHOR.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, commentID ulid.ULID) error {
	postAuthor, err := s.comments.PostAuthor(ctx, commentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code(CodeCommentNotFound).Errorf("comment not found")
		}
		return oops.Code("BLOG_DELETE_COMMENT_FAILED").
			With("operation", "get post author").
			With("id", commentID.String()).
			Wrap(err)
	}
	if postAuthor.Compare(actorID) != 0 {
		return oops.Code(CodeNotAuthor).Errorf("not authorized to delete this comment")
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return oops.Code("BLOG_DELETE_COMMENT_FAILED").
			With("operation", "delete comment").
			With("id", commentID.String()).
			Wrap(err)
	}
	return nil
}
