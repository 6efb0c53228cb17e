// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the Inkwell CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inkwell",
		Short: "Inkwell - a blog platform backend",
		Long: `Inkwell is a blog platform backend with JWT authentication,
single-use refresh token rotation, and post/category/comment management.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())

	return cmd
}
