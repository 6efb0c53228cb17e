// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package httpapi

import (
	"net/http"

	"github.com/inkwell/inkwell/internal/blog"
)

func (h *Handler) handleListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathULID(r, "postID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	comments, err := h.comments.ListComments(r.Context(), postID)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	views := make([]blog.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, c.View())
	}
	respondData(w, http.StatusOK, views)
}

type createCommentRequest struct {
	UserName string `json:"userName"`
	Content  string `json:"content"`
}

func (h *Handler) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathULID(r, "postID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}

	comment, err := h.comments.CreateComment(r.Context(), postID, req.UserName, req.Content)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondData(w, http.StatusCreated, comment.View())
}

// handleDeleteComment removes a comment. Only the author of the parent
// post may delete.
func (h *Handler) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	actorID, err := principalULID(r)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	commentID, err := pathULID(r, "commentID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	if err := h.comments.DeleteComment(r.Context(), actorID, commentID); err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondMessage(w, http.StatusOK, "comment deleted successfully")
}
