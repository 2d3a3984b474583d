// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/streamside/streamside/internal/config"
	"github.com/streamside/streamside/internal/gateway"
	"github.com/streamside/streamside/internal/logging"
	"github.com/streamside/streamside/internal/session"
	"github.com/streamside/streamside/internal/storage"
	"github.com/streamside/streamside/pkg/errutil"
)

// app wires config, logging, storage, the gateway client, and the
// session store for a single command invocation. The persisted session
// is hydrated before the command's work runs.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	files  *storage.FileStore
	client *gateway.Client
	store  *session.Store
}

type appOption func(*appSetup)

type appSetup struct {
	registry *prometheus.Registry
}

// withRegistry registers gateway metrics on reg.
func withRegistry(reg *prometheus.Registry) appOption {
	return func(s *appSetup) { s.registry = reg }
}

func newApp(cmd *cobra.Command, opts ...appOption) (*app, error) {
	var setup appSetup
	for _, opt := range opts {
		opt(&setup)
	}

	path := configFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path, cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}

	logger := logging.Setup("streamside", version, cfg.LogFormat,
		logging.ParseLevel(cfg.LogLevel), cmd.ErrOrStderr())

	files, err := storage.NewFileStore(cfg.StateDir, storage.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	clientOpts := []gateway.Option{
		gateway.WithLogger(logger),
		gateway.WithTimeout(cfg.RequestTimeout),
	}
	if setup.registry != nil {
		clientOpts = append(clientOpts, gateway.WithMetrics(gateway.NewMetrics(setup.registry)))
	}
	client, err := gateway.NewClient(cfg.APIBaseURL, clientOpts...)
	if err != nil {
		return nil, err
	}

	store, err := session.NewStore(client,
		session.WithNotifier(cliNotifier{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}),
		session.WithPersister(files),
		session.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	snap, err := files.Load()
	if err != nil {
		errutil.LogError(logger, "persisted session unusable, starting fresh", err)
	}
	store.Hydrate(snap)

	return &app{
		cfg:    cfg,
		logger: logger,
		files:  files,
		client: client,
		store:  store,
	}, nil
}

// cliNotifier prints session notifications to the command's streams.
type cliNotifier struct {
	out    io.Writer
	errOut io.Writer
}

func (n cliNotifier) Success(msg string) {
	fmt.Fprintln(n.out, msg)
}

func (n cliNotifier) Error(msg string) {
	fmt.Fprintln(n.errOut, "error: "+msg)
}

// readPassword reads a password from the flag value, or prompts on
// stdin when the flag is empty.
func readPassword(cmd *cobra.Command) (string, error) {
	return readSecret(cmd, "password", "Password: ")
}

func readSecret(cmd *cobra.Command, flag, prompt string) (string, error) {
	value, err := cmd.Flags().GetString(flag)
	if err != nil {
		return "", err
	}
	if value != "" {
		return value, nil
	}

	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printSessionSummary(cmd *cobra.Command, store *session.Store) {
	if !store.IsLoggedIn() {
		cmd.Println("Not logged in")
		return
	}

	account := store.Account()
	if account == nil {
		cmd.Println("Not logged in")
		return
	}
	cmd.Printf("Logged in as %s (id %s)\n", account.Email, account.ID)

	if profile := store.Profile(); profile != nil {
		if profile.DisplayName != "" {
			cmd.Printf("Display name: %s\n", profile.DisplayName)
		}
		if len(profile.Favorites) > 0 {
			cmd.Printf("Favorites:    %s\n", strings.Join(profile.Favorites, ", "))
		}
		if len(profile.WatchList) > 0 {
			cmd.Printf("Watch list:   %s\n", strings.Join(profile.WatchList, ", "))
		}
	}
	if prefs := store.Preferences(); prefs != nil && prefs.VideoQuality != "" {
		cmd.Printf("Quality:      %s\n", prefs.VideoQuality)
	}
}
