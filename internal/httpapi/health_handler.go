// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package httpapi

import (
	"context"
	"net/http"
	"time"
)

const healthPingTimeout = 2 * time.Second

// handleHealth reports liveness: the process is up and serving.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports readiness: both backing stores answer a ping.
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	checks := map[string]string{"database": "ok", "sessions": "ok"}
	healthy := true

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			h.logger.Warn("database ping failed", "error", err)
			checks["database"] = "unavailable"
			healthy = false
		}
	}
	if h.sessions != nil {
		if err := h.sessions.Ping(ctx); err != nil {
			h.logger.Warn("session registry ping failed", "error", err)
			checks["sessions"] = "unavailable"
			healthy = false
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, envelope{Success: healthy, Data: checks})
}
