// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

// Package shell runs a local HTTP surface over the session store. It
// serves the app routes through the route guard, a session view for
// debugging, health probes, and optionally Prometheus metrics.
package shell

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/oops"

	"github.com/streamside/streamside/internal/guard"
	"github.com/streamside/streamside/internal/session"
)

// Server serves the guarded local routes.
type Server struct {
	addr       string
	store      *session.Store
	guard      *guard.Guard
	registry   *prometheus.Registry
	logger     *slog.Logger
	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithRegistry exposes reg on /metrics.
func WithRegistry(reg *prometheus.Registry) ServerOption {
	return func(s *Server) { s.registry = reg }
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a shell server bound to the store and guard.
func NewServer(addr string, store *session.Store, g *guard.Guard, opts ...ServerOption) (*Server, error) {
	if store == nil || g == nil {
		return nil, oops.Code("SHELL_CONFIG_INVALID").Errorf("store and guard are required")
	}
	s := &Server{
		addr:   addr,
		store:  store,
		guard:  g,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start begins serving. It returns an error channel that receives any
// serve error and is closed on graceful stop.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Code("SHELL_RUNNING").Errorf("shell server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.Code("SHELL_LISTEN").With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			s.logger.Error("shell server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.logger.Info("shell server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.Code("SHELL_SHUTDOWN").Wrap(err)
		}
	}

	s.logger.Info("shell server stopped")
	return nil
}

// Addr returns the listen address, or "" when not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// Handler builds the route tree. Exposed for tests.
func (s *Server) Handler() http.Handler {
	guarded := s.guard.Middleware(s.store)

	pages := http.NewServeMux()
	pages.HandleFunc("/", s.handlePage)

	mux := http.NewServeMux()
	mux.Handle("/", guarded(pages))
	mux.HandleFunc("/session", s.handleSession)
	mux.HandleFunc("/healthz/liveness", handleLiveness)
	if s.registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		}))
	}
	return mux
}

// pageView is the JSON body rendered for every app page.
type pageView struct {
	Path       string `json:"path"`
	IsLoggedIn bool   `json:"isLoggedIn"`
	Viewer     string `json:"viewer,omitempty"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	view := pageView{
		Path:       r.URL.Path,
		IsLoggedIn: s.store.IsLoggedIn(),
	}
	if account := s.store.Account(); account != nil {
		view.Viewer = account.Email
	}
	writeJSON(w, http.StatusOK, view)
}

// sessionView is the snapshot with the token redacted.
type sessionView struct {
	Account     *session.Account              `json:"account,omitempty"`
	Profile     *session.Profile              `json:"profile,omitempty"`
	Preferences *session.Preferences          `json:"preferences,omitempty"`
	IsLoggedIn  bool                          `json:"isLoggedIn"`
	HasToken    bool                          `json:"hasToken"`
	LastError   string                        `json:"lastError,omitempty"`
	Statuses    map[session.Op]session.Status `json:"statuses,omitempty"`
}

func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Snapshot()
	writeJSON(w, http.StatusOK, sessionView{
		Account:     snap.Account,
		Profile:     snap.Profile,
		Preferences: snap.Preferences,
		IsLoggedIn:  snap.IsLoggedIn,
		HasToken:    snap.Token != "",
		LastError:   snap.LastError,
		Statuses:    snap.Statuses,
	})
}

func handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // health check write error is acceptable, client may disconnect
	w.Write([]byte("ok\n"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	json.NewEncoder(w).Encode(v)
}
