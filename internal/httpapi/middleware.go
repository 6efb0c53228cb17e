// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/oops"

	"github.com/inkwell/inkwell/internal/auth"
)

type contextKey int

const principalKey contextKey = iota

// PrincipalFromContext returns the authenticated principal attached by the
// authenticate middleware.
func PrincipalFromContext(ctx context.Context) (*auth.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*auth.Principal)
	return principal, ok
}

// authenticate validates the access token carried by the request and puts
// the resulting principal into the request context. Any validation failure
// answers 401 and clears both token cookies so a browser client drops its
// stale session.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.carrier.AccessToken(r)
		if token == "" {
			h.carrier.Clear(w)
			respondError(h.logger, w, oops.Code(auth.CodeInvalidToken).Errorf("unauthorized"))
			return
		}

		principal, err := h.auth.ValidateToken(r.Context(), token)
		if err != nil {
			h.carrier.Clear(w)
			respondError(h.logger, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimit rejects requests once an IP exceeds limit hits within the
// fixed window. Counters live in the session registry under
// rate_limit:<scope>:<ip>, so the budget is shared across instances. A
// registry failure fails open: availability over strictness.
func (h *Handler) rateLimit(scope string, limit int64, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("rate_limit:%s:%s", scope, clientIP(r))
			count, err := h.registry.Increment(r.Context(), key, window)
			if err != nil {
				h.logger.Warn("rate limit counter unavailable", "scope", scope, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if count > limit {
				h.metrics.RecordRateLimited(scope)
				respondError(h.logger, w, oops.Code(CodeRateLimited).
					Errorf("too many requests, please try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// instrument records one counter sample and one structured log line per
// request, keyed on the chi route pattern rather than the raw path so
// /posts/{postID} stays one series.
func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		h.metrics.RecordRequest(r.Method, route, ww.Status())
		h.logger.Info("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote", clientIP(r),
		)
	})
}

// clientIP returns the request's remote IP without the port. The RealIP
// middleware runs first, so behind a proxy this is the forwarded address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
