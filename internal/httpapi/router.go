// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/oops"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/blog"
	"github.com/inkwell/inkwell/internal/observability"
)

// Fixed-window rate budgets, per client IP.
const (
	rateWindow        = 15 * time.Minute
	globalRateLimit   = 100
	authRateLimit     = 10
	mutationRateLimit = 30
)

// Pinger reports backend connectivity for the readiness endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler owns the HTTP surface: handlers, middleware, and the token
// carrier.
type Handler struct {
	auth       *auth.Service
	users      *auth.UserService
	posts      *blog.PostService
	categories *blog.CategoryService
	comments   *blog.CommentService
	registry   auth.SessionRegistry
	carrier    *TokenCarrier
	logger     *slog.Logger
	metrics    *observability.Metrics
	store      Pinger
	sessions   Pinger
}

// Deps carries everything the HTTP surface needs. Metrics may be nil;
// Store and Sessions back the readiness probe.
type Deps struct {
	Auth       *auth.Service
	Users      *auth.UserService
	Posts      *blog.PostService
	Categories *blog.CategoryService
	Comments   *blog.CommentService
	Registry   auth.SessionRegistry
	Carrier    *TokenCarrier
	Logger     *slog.Logger
	Metrics    *observability.Metrics
	Store      Pinger
	Sessions   Pinger
}

// NewHandler validates deps and builds the router.
func NewHandler(deps Deps) (*Handler, error) {
	switch {
	case deps.Auth == nil:
		return nil, oops.Errorf("auth service is required")
	case deps.Users == nil:
		return nil, oops.Errorf("user service is required")
	case deps.Posts == nil:
		return nil, oops.Errorf("post service is required")
	case deps.Categories == nil:
		return nil, oops.Errorf("category service is required")
	case deps.Comments == nil:
		return nil, oops.Errorf("comment service is required")
	case deps.Registry == nil:
		return nil, oops.Errorf("session registry is required")
	case deps.Carrier == nil:
		return nil, oops.Errorf("token carrier is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		auth:       deps.Auth,
		users:      deps.Users,
		posts:      deps.Posts,
		categories: deps.Categories,
		comments:   deps.Comments,
		registry:   deps.Registry,
		carrier:    deps.Carrier,
		logger:     logger,
		metrics:    deps.Metrics,
		store:      deps.Store,
		sessions:   deps.Sessions,
	}, nil
}

// Router builds the chi router over the handler.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.instrument)
	r.Use(h.rateLimit("global", globalRateLimit, rateWindow))

	r.Route("/auth", func(r chi.Router) {
		r.Use(h.rateLimit("auth", authRateLimit, rateWindow))
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Post("/refresh", h.handleRefresh)
		r.Post("/logout", h.handleLogout)
		r.Get("/validate", h.handleValidate)
		r.Post("/forgot-password", h.handleForgotPassword)
		r.Post("/reset-password", h.handleResetPassword)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.handleListUsers)
		r.Get("/{userID}", h.handleGetUser)
		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)
			r.Use(h.rateLimit("mutation", mutationRateLimit, rateWindow))
			r.Put("/{userID}", h.handleUpdateUser)
			r.Delete("/{userID}", h.handleDeleteUser)
		})
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", h.handleListPosts)
		r.Get("/{postID}", h.handleGetPost)
		r.Get("/{postID}/comments", h.handleListComments)
		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)
			r.Use(h.rateLimit("mutation", mutationRateLimit, rateWindow))
			r.Post("/", h.handleCreatePost)
			r.Put("/{postID}", h.handleUpdatePost)
			r.Delete("/{postID}", h.handleDeletePost)
			r.Post("/{postID}/comments", h.handleCreateComment)
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.handleListCategories)
		r.Get("/{categoryID}", h.handleGetCategory)
		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)
			r.Use(h.rateLimit("mutation", mutationRateLimit, rateWindow))
			r.Post("/", h.handleCreateCategory)
			r.Put("/{categoryID}", h.handleUpdateCategory)
			r.Delete("/{categoryID}", h.handleDeleteCategory)
		})
	})

	r.Route("/comments", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)
			r.Use(h.rateLimit("mutation", mutationRateLimit, rateWindow))
			r.Delete("/{commentID}", h.handleDeleteComment)
		})
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.handleHealth)
		r.Get("/live", h.handleHealth)
		r.Get("/ready", h.handleReady)
	})

	return r
}
