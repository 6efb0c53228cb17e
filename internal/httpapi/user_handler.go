// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package httpapi

import (
	"net/http"

	"github.com/inkwell/inkwell/internal/auth"
)

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	cursor, err := queryULID(r, "cursor")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	page, err := h.users.ListUsers(r.Context(), cursor, queryInt(r, "limit"))
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondData(w, http.StatusOK, page)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathULID(r, "userID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondData(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathULID(r, "userID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}

	user, err := h.users.UpdateUser(r.Context(), id, auth.UserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondData(w, http.StatusOK, user)
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathULID(r, "userID")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondMessage(w, http.StatusOK, "user deleted successfully")
}
