// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package httpapi

import (
	"net/http"

	"github.com/samber/oops"

	"github.com/inkwell/inkwell/internal/auth"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}

	result, err := h.auth.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	h.metrics.RecordAuthOperation("register", err)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	h.carrier.SetPair(w, result.Tokens)
	respondData(w, http.StatusCreated, result)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	h.metrics.RecordAuthOperation("login", err)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	h.carrier.SetPair(w, result.Tokens)
	respondData(w, http.StatusOK, result)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// handleRefresh rotates the refresh token. The token comes from the cookie
// when present, else from the body for non-browser clients.
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	token := h.carrier.RefreshToken(r)
	if token == "" {
		var req refreshRequest
		if err := decodeJSON(r, &req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		respondError(h.logger, w, oops.Code(auth.CodeInvalidToken).Errorf("refresh token is required"))
		return
	}

	pair, err := h.auth.Refresh(r.Context(), token)
	h.metrics.RecordAuthOperation("refresh", err)
	if err != nil {
		h.carrier.Clear(w)
		respondError(h.logger, w, err)
		return
	}

	h.carrier.SetPair(w, *pair)
	respondData(w, http.StatusOK, map[string]any{"tokens": pair})
}

// handleLogout revokes the live refresh token and expires both cookies.
// Always succeeds: a client must be able to clear its session even with a
// garbage token.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := h.carrier.RefreshToken(r)
	if token == "" {
		var req refreshRequest
		if err := decodeJSON(r, &req); err == nil {
			token = req.RefreshToken
		}
	}
	if token != "" {
		h.auth.Logout(r.Context(), token)
	}
	h.metrics.RecordAuthOperation("logout", nil)

	h.carrier.Clear(w)
	respondMessage(w, http.StatusOK, "logged out successfully")
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	token := h.carrier.AccessToken(r)
	if token == "" {
		respondError(h.logger, w, oops.Code(auth.CodeInvalidToken).Errorf("unauthorized"))
		return
	}

	principal, err := h.auth.ValidateToken(r.Context(), token)
	if err != nil {
		h.carrier.Clear(w)
		respondError(h.logger, w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"user": principal})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// handleForgotPassword issues a one-time reset ticket. Without an email
// channel the ticket rides back in the response; only its digest is
// stored server-side.
func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}

	ticket, err := h.auth.ForgotPassword(r.Context(), req.Email)
	h.metrics.RecordAuthOperation("forgot_password", err)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{"resetToken": ticket})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}

	err := h.auth.ResetPassword(r.Context(), req.Token, req.NewPassword)
	h.metrics.RecordAuthOperation("reset_password", err)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondMessage(w, http.StatusOK, "password has been reset successfully")
}
