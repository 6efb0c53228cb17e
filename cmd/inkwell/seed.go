// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/inkwell/inkwell/internal/auth"
	authpg "github.com/inkwell/inkwell/internal/auth/postgres"
	"github.com/inkwell/inkwell/internal/blog"
	blogpg "github.com/inkwell/inkwell/internal/blog/postgres"
	"github.com/inkwell/inkwell/internal/config"
	"github.com/inkwell/inkwell/internal/store"
	"github.com/inkwell/inkwell/pkg/errutil"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// seedPassword is the development password shared by all seed accounts.
const seedPassword = "Password123!"

// Fixed IDs keep the seed idempotent: rerunning hits unique-key
// violations which are skipped.
var (
	seedAliceID     = ulid.MustParse("01JSEED0000000000000000001")
	seedBobID       = ulid.MustParse("01JSEED0000000000000000002")
	seedTechID      = ulid.MustParse("01JSEED0000000000000000003")
	seedBusinessID  = ulid.MustParse("01JSEED0000000000000000004")
	seedLifestyleID = ulid.MustParse("01JSEED0000000000000000005")
	seedPostIDs     = []ulid.ULID{
		ulid.MustParse("01JSEED0000000000000000006"),
		ulid.MustParse("01JSEED0000000000000000007"),
		ulid.MustParse("01JSEED0000000000000000008"),
	}
)

// seedConfig holds configuration for the seed command.
type seedConfig struct {
	timeout time.Duration
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with sample blog data",
		Long: `Creates two sample accounts (alice@example.com, bob@example.com), three
categories, and three posts. The command is idempotent and refuses to
run when INKWELL_ENV is set to production.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args, cfg)
		},
	}

	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string, cfg *seedConfig) error {
	if os.Getenv("INKWELL_ENV") == config.EnvProduction {
		return oops.Code("SEED_FORBIDDEN").Errorf("seeding is disabled in production")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("DATABASE_URL environment variable is required")
	}

	// Use cmd.Context() to respect SIGINT/SIGTERM signals.
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	cmd.Println("Running migrations...")
	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	if err := migrator.Up(); err != nil {
		closeMigrator(cmd, migrator)
		return oops.Code("MIGRATION_FAILED").With("operation", "run migrations").Wrap(err)
	}
	closeMigrator(cmd, migrator)

	cmd.Println("Connecting to database...")
	pool, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()

	cmd.Println("Seeding database...")

	users := authpg.NewUserRepository(pool)
	passwordHash, err := auth.NewBcryptHasher(auth.DefaultBcryptCost).Hash(seedPassword)
	if err != nil {
		return oops.Code("SEED_FAILED").With("operation", "hash seed password").Wrap(err)
	}

	now := time.Now().UTC()
	seedUsers := []*auth.User{
		{ID: seedAliceID, Email: "alice@example.com", FirstName: "Alice", LastName: "Johnson", PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now},
		{ID: seedBobID, Email: "bob@example.com", FirstName: "Bob", LastName: "Smith", PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now},
	}
	for _, user := range seedUsers {
		if err := users.Create(ctx, user); err != nil {
			if errutil.Code(err) == auth.CodeEmailTaken {
				cmd.Println("User already exists, skipping:", user.Email)
				continue
			}
			return oops.Code("SEED_FAILED").With("operation", "create user").With("email", user.Email).Wrap(err)
		}
		slog.Info("created seed user", "id", user.ID, "email", user.Email)
	}

	categories := blogpg.NewCategoryRepository(pool)
	seedCategories := []*blog.Category{
		{ID: seedTechID, Name: "Technology", Description: "Articles about software, engineering, and tech trends", ImageURL: "https://example.com/images/technology.jpg", CreatedAt: now, UpdatedAt: now},
		{ID: seedBusinessID, Name: "Business", Description: "Insights on startups, finance, and entrepreneurship", ImageURL: "https://example.com/images/business.jpg", CreatedAt: now, UpdatedAt: now},
		{ID: seedLifestyleID, Name: "Lifestyle", Description: "Health, productivity, and personal growth", ImageURL: "https://example.com/images/lifestyle.jpg", CreatedAt: now, UpdatedAt: now},
	}
	for _, category := range seedCategories {
		if err := categories.Create(ctx, category); err != nil {
			if isUniqueViolation(err) {
				cmd.Println("Category already exists, skipping:", category.Name)
				continue
			}
			return oops.Code("SEED_FAILED").With("operation", "create category").With("name", category.Name).Wrap(err)
		}
		slog.Info("created seed category", "id", category.ID, "name", category.Name)
	}

	posts := blogpg.NewPostRepository(pool)
	seedPosts := []*blog.Post{
		{ID: seedPostIDs[0], Title: "Introduction to Go Microservices", Content: "A practical guide to building scalable Go microservices.", Published: true, AuthorID: seedAliceID, CategoryID: seedTechID, CreatedAt: now, UpdatedAt: now},
		{ID: seedPostIDs[1], Title: "Scaling a Startup in 2026", Content: "Key lessons learned from scaling modern SaaS businesses.", Published: true, AuthorID: seedBobID, CategoryID: seedBusinessID, CreatedAt: now, UpdatedAt: now},
		{ID: seedPostIDs[2], Title: "Daily Habits for Better Focus", Content: "Simple habits to improve focus and mental clarity.", Published: false, AuthorID: seedAliceID, CategoryID: seedLifestyleID, CreatedAt: now, UpdatedAt: now},
	}
	for _, post := range seedPosts {
		if err := posts.Create(ctx, post); err != nil {
			if isUniqueViolation(err) {
				cmd.Println("Post already exists, skipping:", post.Title)
				continue
			}
			return oops.Code("SEED_FAILED").With("operation", "create post").With("title", post.Title).Wrap(err)
		}
		slog.Info("created seed post", "id", post.ID, "title", post.Title)
	}

	cmd.Println("Seeding complete!")
	return nil
}

// isUniqueViolation reports whether err is a postgres unique-key
// violation anywhere in its chain.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
