// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/inkwell/inkwell/internal/auth"
	authpg "github.com/inkwell/inkwell/internal/auth/postgres"
	authredis "github.com/inkwell/inkwell/internal/auth/redis"
	"github.com/inkwell/inkwell/internal/blog"
	blogpg "github.com/inkwell/inkwell/internal/blog/postgres"
	"github.com/inkwell/inkwell/internal/config"
	"github.com/inkwell/inkwell/internal/httpapi"
	"github.com/inkwell/inkwell/internal/logging"
	"github.com/inkwell/inkwell/internal/observability"
	"github.com/inkwell/inkwell/internal/store"
)

const readHeaderTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server. Requires PostgreSQL and Redis; secrets come
from the environment (DATABASE_URL, REDIS_URL, JWT_ACCESS_SECRET,
JWT_REFRESH_SECRET).`,
		RunE: runServe,
	}

	cmd.Flags().String("env", config.EnvDevelopment, "environment (development or production)")
	cmd.Flags().String("listen-addr", config.DefaultListenAddr, "HTTP listen address")
	cmd.Flags().String("metrics-addr", config.DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().String("log-format", config.DefaultLogFormat, "log format (json or text)")
	cmd.Flags().Bool("secure-cookies", false, "mark token cookies Secure (requires HTTPS)")
	cmd.Flags().Duration("shutdown-grace", config.DefaultShutdownGrace, "graceful shutdown timeout")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("inkwell", version, cfg.LogFormat)

	ctx := cmd.Context()

	slog.Info("starting server",
		"env", cfg.Env,
		"listen_addr", cfg.ListenAddr,
		"log_format", cfg.LogFormat,
	)

	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}
	defer pool.Close()
	slog.Info("connected to database")

	sessions, err := authredis.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		return oops.Code("REDIS_CONNECT_FAILED").Wrap(err)
	}
	defer func() {
		if closeErr := sessions.Close(); closeErr != nil {
			slog.Debug("error closing session registry", "error", closeErr)
		}
	}()
	slog.Info("connected to session registry")

	codec, err := auth.NewTokenCodec([]byte(cfg.Auth.AccessSecret), []byte(cfg.Auth.RefreshSecret))
	if err != nil {
		return err
	}

	users := authpg.NewUserRepository(pool)
	authSvc, err := auth.NewServiceWithTTL(users, sessions, auth.NewBcryptHasher(cfg.Auth.BcryptCost), codec, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	if err != nil {
		return err
	}
	userSvc, err := auth.NewUserService(users)
	if err != nil {
		return err
	}

	postSvc, err := blog.NewPostService(blogpg.NewPostRepository(pool), users)
	if err != nil {
		return err
	}
	categorySvc, err := blog.NewCategoryService(blogpg.NewCategoryRepository(pool))
	if err != nil {
		return err
	}
	commentSvc, err := blog.NewCommentService(blogpg.NewCommentRepository(pool), blogpg.NewPostRepository(pool))
	if err != nil {
		return err
	}

	// Observability server on its own address so /metrics is never
	// exposed on the public listener.
	var obsServer *observability.Server
	var metrics *observability.Metrics
	var obsErrChan <-chan error
	if cfg.MetricsAddr != "" {
		obsServer = observability.NewServer(cfg.MetricsAddr, func() bool {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(pingCtx) == nil && sessions.Ping(pingCtx) == nil
		})
		metrics = obsServer.Metrics()

		obsErrChan, err = obsServer.Start()
		if err != nil {
			return oops.Code("OBSERVABILITY_START_FAILED").Wrap(err)
		}
		slog.Info("observability server started", "addr", obsServer.Addr())
	}

	handler, err := httpapi.NewHandler(httpapi.Deps{
		Auth:       authSvc,
		Users:      userSvc,
		Posts:      postSvc,
		Categories: categorySvc,
		Comments:   commentSvc,
		Registry:   sessions,
		Carrier:    httpapi.NewTokenCarrier(cfg.SecureCookies, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL),
		Logger:     slog.Default(),
		Metrics:    metrics,
		Store:      pool,
		Sessions:   sessions,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	cmd.Println("Server started on " + cfg.ListenAddr)
	slog.Info("server ready", "addr", cfg.ListenAddr)

	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
	case serveErr := <-errChan:
		return oops.Code("SERVER_FAILED").Wrap(serveErr)
	case obsErr := <-obsErrChan:
		return oops.Code("OBSERVABILITY_FAILED").Wrap(obsErr)
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	slog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("error shutting down HTTP server", "error", err)
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}

	slog.Info("shutdown complete")
	return nil
}
