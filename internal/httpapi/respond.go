// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/blog"
	"github.com/inkwell/inkwell/pkg/errutil"
)

// CodeRateLimited marks requests rejected by the rate limiter.
const CodeRateLimited = "RATE_LIMITED"

// envelope is the uniform response body. Success responses carry data or
// a message; error responses carry a message and optional details.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// statusByCode maps operational error codes to HTTP statuses. Codes not
// listed here are non-operational and collapse to a generic 500.
var statusByCode = map[string]int{
	auth.CodeValidation:         http.StatusBadRequest,
	auth.CodeTicketInvalid:      http.StatusBadRequest,
	auth.CodeInvalidCredentials: http.StatusUnauthorized,
	auth.CodeInvalidToken:       http.StatusUnauthorized,
	auth.CodeUserNotFound:       http.StatusNotFound,
	auth.CodeEmailTaken:         http.StatusConflict,
	blog.CodeNotAuthor:          http.StatusForbidden,
	blog.CodePostNotFound:       http.StatusNotFound,
	blog.CodeCategoryNotFound:   http.StatusNotFound,
	blog.CodeCommentNotFound:    http.StatusNotFound,
	blog.CodeEmptyResult:        http.StatusNotFound,
	CodeRateLimited:             http.StatusTooManyRequests,
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // response write error means the client is gone
	json.NewEncoder(w).Encode(body)
}

// respondData writes a success envelope carrying data.
func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// respondMessage writes a success envelope carrying only a message.
func respondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: true, Message: message})
}

// respondError maps err's code to a status and writes an error envelope.
// Operational errors surface their own message; anything unmapped is
// logged with full context and returns a generic message so internal
// detail never leaks to callers.
func respondError(logger *slog.Logger, w http.ResponseWriter, err error) {
	status, ok := statusByCode[errutil.Code(err)]
	if !ok {
		errutil.LogError(logger, "request failed", err)
		writeJSON(w, http.StatusInternalServerError, envelope{
			Success: false,
			Message: "internal server error",
		})
		return
	}
	writeJSON(w, status, envelope{Success: false, Message: err.Error()})
}
