// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package httpapi

import (
	"net/http"

	"github.com/inkwell/inkwell/internal/blog"
)

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondData(w, http.StatusOK, categories)
}

func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathULID(r, "categoryID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	category, err := h.categories.GetCategory(r.Context(), id)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondData(w, http.StatusOK, category.View())
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}

	category, err := h.categories.CreateCategory(r.Context(), req.Name, req.Description, req.ImageURL)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondData(w, http.StatusCreated, category.View())
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

func (h *Handler) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathULID(r, "categoryID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}

	category, err := h.categories.UpdateCategory(r.Context(), id, blog.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondData(w, http.StatusOK, category.View())
}

func (h *Handler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathULID(r, "categoryID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	if err := h.categories.DeleteCategory(r.Context(), id); err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondMessage(w, http.StatusOK, "category deleted successfully")
}
