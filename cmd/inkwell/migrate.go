// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package main

import (
	"os"
	"strconv"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/inkwell/inkwell/internal/store"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
		Long:  `Apply, roll back, and inspect schema migrations against the PostgreSQL database.`,
	}

	cmd.AddCommand(newMigrateUpCmd())
	cmd.AddCommand(newMigrateDownCmd())
	cmd.AddCommand(newMigrateStatusCmd())
	cmd.AddCommand(newMigrateVersionCmd())
	cmd.AddCommand(newMigrateForceCmd())

	return cmd
}

// openMigrator builds a Migrator from DATABASE_URL.
func openMigrator() (*store.Migrator, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, oops.Code("CONFIG_INVALID").Errorf("DATABASE_URL environment variable is required")
	}
	return store.NewMigrator(databaseURL)
}

func closeMigrator(cmd *cobra.Command, m *store.Migrator) {
	if err := m.Close(); err != nil {
		cmd.PrintErrln("warning: closing migrator:", err)
	}
}

func newMigrateUpCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := openMigrator()
			if err != nil {
				return err
			}
			defer closeMigrator(cmd, m)

			cmd.Println("Running migrations...")
			if steps > 0 {
				err = m.Steps(steps)
			} else {
				err = m.Up()
			}
			if err != nil {
				return oops.Code("MIGRATION_FAILED").With("operation", "migrate up").Wrap(err)
			}
			cmd.Println("Migrations completed successfully")
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 0, "apply at most N migrations (0 = all)")
	return cmd
}

func newMigrateDownCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := openMigrator()
			if err != nil {
				return err
			}
			defer closeMigrator(cmd, m)

			if steps > 0 {
				err = m.Steps(-steps)
			} else {
				err = m.Down()
			}
			if err != nil {
				return oops.Code("MIGRATION_FAILED").With("operation", "migrate down").Wrap(err)
			}
			cmd.Println("Rollback completed successfully")
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 0, "roll back at most N migrations (0 = all)")
	return cmd
}

func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := openMigrator()
			if err != nil {
				return err
			}
			defer closeMigrator(cmd, m)

			applied, err := m.AppliedMigrations()
			if err != nil {
				return oops.Code("MIGRATION_FAILED").With("operation", "list applied").Wrap(err)
			}
			pending, err := m.PendingMigrations()
			if err != nil {
				return oops.Code("MIGRATION_FAILED").With("operation", "list pending").Wrap(err)
			}

			cmd.Println("Applied:")
			printMigrations(cmd, applied)
			cmd.Println("Pending:")
			printMigrations(cmd, pending)
			return nil
		},
	}
}

func printMigrations(cmd *cobra.Command, versions []uint) {
	if len(versions) == 0 {
		cmd.Println("  (none)")
		return
	}
	for _, v := range versions {
		name, err := store.MigrationName(v)
		if err != nil {
			name = "(unknown)"
		}
		cmd.Printf("  %d %s\n", v, name)
	}
}

func newMigrateVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := openMigrator()
			if err != nil {
				return err
			}
			defer closeMigrator(cmd, m)

			version, dirty, err := m.Version()
			if err != nil {
				return oops.Code("MIGRATION_FAILED").With("operation", "read version").Wrap(err)
			}
			if dirty {
				cmd.Printf("%d (dirty)\n", version)
			} else {
				cmd.Printf("%d\n", version)
			}
			return nil
		},
	}
}

func newMigrateForceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "Force the schema version without running migrations",
		Long: `Mark the schema as being at the given version without running any
migration. Use only to recover from a dirty state after a failed
migration has been repaired by hand.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return oops.Code("CONFIG_INVALID").With("version", args[0]).Wrapf(err, "parse version")
			}

			m, err := openMigrator()
			if err != nil {
				return err
			}
			defer closeMigrator(cmd, m)

			if err := m.Force(version); err != nil {
				return oops.Code("MIGRATION_FAILED").With("operation", "force version").Wrap(err)
			}
			cmd.Printf("Schema version forced to %d\n", version)
			return nil
		},
	}
}
