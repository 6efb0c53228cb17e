// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package httpapi

import (
	"net/http"

	"github.com/inkwell/inkwell/internal/blog"
)

func (h *Handler) handleListPosts(w http.ResponseWriter, r *http.Request) {
	cursor, err := queryULID(r, "cursor")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	filters := blog.PostFilters{
		Published: queryBool(r, "published"),
		Search:    r.URL.Query().Get("search"),
	}
	if authorID, err := queryULID(r, "authorId"); err != nil {
		respondError(h.logger, w, err)
		return
	} else if authorID.Compare(zeroULID) != 0 {
		filters.AuthorID = &authorID
	}
	if categoryID, err := queryULID(r, "categoryId"); err != nil {
		respondError(h.logger, w, err)
		return
	} else if categoryID.Compare(zeroULID) != 0 {
		filters.CategoryID = &categoryID
	}

	page, err := h.posts.ListPosts(r.Context(), filters, cursor, queryInt(r, "limit"))
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondData(w, http.StatusOK, page)
}

func (h *Handler) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathULID(r, "postID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	view, err := h.posts.GetPost(r.Context(), id)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondData(w, http.StatusOK, view)
}

type createPostRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Published  bool   `json:"published"`
	CategoryID string `json:"categoryId"`
}

func (h *Handler) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	actorID, err := principalULID(r)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}
	categoryID, err := parseBodyULID("categoryId", req.CategoryID)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	post, err := h.posts.CreatePost(r.Context(), actorID, req.Title, req.Content, req.Published, categoryID)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	// Return the joined view so the response matches reads.
	view, err := h.posts.GetPost(r.Context(), post.ID)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondData(w, http.StatusCreated, view)
}

type updatePostRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Published  *bool   `json:"published"`
	CategoryID *string `json:"categoryId"`
}

func (h *Handler) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	actorID, err := principalULID(r)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	postID, err := pathULID(r, "postID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	var req updatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}

	update := blog.PostUpdate{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	}
	if req.CategoryID != nil {
		categoryID, err := parseBodyULID("categoryId", *req.CategoryID)
		if err != nil {
			respondError(h.logger, w, err)
			return
		}
		update.CategoryID = &categoryID
	}

	if _, err := h.posts.UpdatePost(r.Context(), actorID, postID, update); err != nil {
		respondError(h.logger, w, err)
		return
	}

	view, err := h.posts.GetPost(r.Context(), postID)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondData(w, http.StatusOK, view)
}

func (h *Handler) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	actorID, err := principalULID(r)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	postID, err := pathULID(r, "postID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	if err := h.posts.DeletePost(r.Context(), actorID, postID); err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondMessage(w, http.StatusOK, "post deleted successfully")
}
