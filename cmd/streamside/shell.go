// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/streamside/streamside/internal/guard"
	"github.com/streamside/streamside/internal/shell"
)

// NewShellCmd creates the shell subcommand.
func NewShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Serve the app routes locally through the route guard",
		Long: `Serve the app routes on a local HTTP listener. Protected routes
redirect to /login while signed out, guest-only routes bounce home
while signed in, and /session shows the current state. Runs until
interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := prometheus.NewRegistry()
			registry.MustRegister(collectors.NewGoCollector())
			registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			a, err := newApp(cmd, withRegistry(registry))
			if err != nil {
				return err
			}

			g, err := guard.NewGuard(a.cfg.ProtectedRoutes,
				guard.WithGuestOnly(a.cfg.GuestRoutes...))
			if err != nil {
				return err
			}

			addr, err := cmd.Flags().GetString("addr")
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.ShellAddr
			}

			srv, err := shell.NewServer(addr, a.store, g,
				shell.WithRegistry(registry),
				shell.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			errCh, err := srv.Start()
			if err != nil {
				return err
			}
			cmd.Printf("Serving on http://%s\n", srv.Addr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case <-ctx.Done():
			case serveErr, ok := <-errCh:
				if ok {
					return serveErr
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Stop(shutdownCtx)
		},
	}

	cmd.Flags().String("addr", "", "listen address (defaults to shell_addr from config)")
	return cmd
}
