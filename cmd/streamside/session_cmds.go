// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/streamside/streamside/internal/session"
)

// NewLogoutCmd creates the logout subcommand.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the local session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			a.store.Logout(cmd.Context())
			cmd.Println("Logged out")
			return nil
		},
	}
}

// NewWhoamiCmd creates the whoami subcommand.
func NewWhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Long: `Show the current session. With a stored token the profile is
refreshed from the server first, so a revoked or expired token is
detected and the stale session discarded.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			offline, err := cmd.Flags().GetBool("offline")
			if err != nil {
				return err
			}

			if !offline && a.store.Token() != "" {
				if err := a.store.FetchProfile(cmd.Context()); err != nil {
					printSessionSummary(cmd, a.store)
					return err
				}
			}
			printSessionSummary(cmd, a.store)
			return nil
		},
	}

	cmd.Flags().Bool("offline", false, "print the stored session without contacting the server")
	return cmd
}

// NewRefreshCmd creates the refresh subcommand.
func NewRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the session token for a fresh one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			if err := a.store.RefreshToken(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("Token refreshed")
			return nil
		},
	}
}

// NewQualityCmd creates the quality subcommand.
func NewQualityCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "quality [360p|480p|720p|1080p]",
		Short:     "Show or set the playback quality preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"360p", "480p", "720p", "1080p"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if prefs := a.store.Preferences(); prefs != nil && prefs.VideoQuality != "" {
					cmd.Println(string(prefs.VideoQuality))
				} else {
					cmd.Println("not set")
				}
				return nil
			}

			if err := a.store.SetVideoQuality(session.Quality(args[0])); err != nil {
				return err
			}
			cmd.Printf("Quality set to %s\n", args[0])
			return nil
		},
	}
}

// requireLogin fails a command early when no session is active.
func requireLogin(store *session.Store) error {
	if !store.IsLoggedIn() {
		return oops.Code("SESSION_NO_TOKEN").Errorf("not logged in")
	}
	return nil
}
