// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/streamside/streamside/internal/session"
)

// NewFavoritesCmd creates the favorites subcommand tree.
func NewFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage the favorites set",
	}

	cmd.AddCommand(newCollectionCmd("add", "Add a video to favorites",
		func(s *session.Store, id string) { s.AddFavorite(id) }, listFavorites))
	cmd.AddCommand(newCollectionCmd("remove", "Remove a video from favorites",
		func(s *session.Store, id string) { s.RemoveFavorite(id) }, listFavorites))
	cmd.AddCommand(newListCmd("List favorites", listFavorites))
	return cmd
}

// NewWatchlistCmd creates the watchlist subcommand tree.
func NewWatchlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage the ordered watch list",
	}

	cmd.AddCommand(newCollectionCmd("add", "Add a video to the watch list",
		func(s *session.Store, id string) { s.AddToWatchList(id) }, listWatchList))
	cmd.AddCommand(newCollectionCmd("remove", "Remove a video from the watch list",
		func(s *session.Store, id string) { s.RemoveFromWatchList(id) }, listWatchList))
	cmd.AddCommand(newListCmd("List the watch list", listWatchList))
	return cmd
}

func newCollectionCmd(use, short string, mutate func(*session.Store, string), list func(*session.Store) []string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " VIDEO_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := requireLogin(a.store); err != nil {
				return err
			}

			mutate(a.store, args[0])
			printIDs(cmd, list(a.store))
			return nil
		},
	}
}

func newListCmd(short string, list func(*session.Store) []string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := requireLogin(a.store); err != nil {
				return err
			}

			printIDs(cmd, list(a.store))
			return nil
		},
	}
}

func listFavorites(s *session.Store) []string {
	if profile := s.Profile(); profile != nil {
		return profile.Favorites
	}
	return nil
}

func listWatchList(s *session.Store) []string {
	if profile := s.Profile(); profile != nil {
		return profile.WatchList
	}
	return nil
}

func printIDs(cmd *cobra.Command, ids []string) {
	if len(ids) == 0 {
		cmd.Println("(empty)")
		return
	}
	for _, id := range ids {
		cmd.Println(id)
	}
}
