// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/streamside/streamside/internal/config"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the streamside CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streamside",
		Short: "Streamside - client for the Streamside media platform",
		Long: `Streamside is a command-line client for the Streamside media
platform. It manages a persistent login session, favorites, the watch
list, and playback preferences, and can serve the app routes locally.`,
	}

	def := config.Default()
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	cmd.PersistentFlags().String("api-base-url", def.APIBaseURL, "base URL of the Streamside API")
	cmd.PersistentFlags().Duration("request-timeout", def.RequestTimeout, "timeout for API requests")
	cmd.PersistentFlags().String("log-level", def.LogLevel, "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", def.LogFormat, "log format (text, json)")
	cmd.PersistentFlags().String("state-dir", def.StateDir, "directory for the persisted session")

	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewRegisterCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewWhoamiCmd())
	cmd.AddCommand(NewRefreshCmd())
	cmd.AddCommand(NewProfileCmd())
	cmd.AddCommand(NewPasswordCmd())
	cmd.AddCommand(NewFavoritesCmd())
	cmd.AddCommand(NewWatchlistCmd())
	cmd.AddCommand(NewQualityCmd())
	cmd.AddCommand(NewShellCmd())

	return cmd
}

// shutdownTimeout bounds graceful shutdown of the shell server.
const shutdownTimeout = 10 * time.Second
