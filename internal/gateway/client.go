// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

// Package gateway is the boundary to the remote Streamside auth service.
//
// Every operation is a single HTTP round trip (plus transient-failure
// retries). Remote rejections are normalized into *AuthError here so the
// session store never inspects transport shapes. The outgoing bearer
// credential lives inside the Client value and is swapped atomically on
// successful login, registration, and refresh, and cleared on logout.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Transport tuning.
const (
	defaultTimeout   = 15 * time.Second
	maxRetries       = 2
	initialBackoff   = 200 * time.Millisecond
	maxResponseBytes = 1 << 20
)

// Client issues auth operations against the remote Streamside API.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	// cred is the process-wide outgoing credential. Swapped atomically so
	// concurrent in-flight requests observe either the old or new token,
	// never a torn value.
	cred atomic.Pointer[string]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics attaches request counters.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// NewClient creates a gateway client for the given API base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, oops.Code("GATEWAY_CONFIG_INVALID").Errorf("base URL is required")
	}

	c := &Client{
		baseURL: trimTrailingSlash(baseURL),
		httpc:   &http.Client{Timeout: defaultTimeout},
		logger:  slog.Default(),
		tracer:  otel.Tracer("streamside/gateway"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func trimTrailingSlash(s string) string {
	for len(s) > 1 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// SetCredential installs the outgoing bearer token for subsequent calls.
func (c *Client) SetCredential(token string) {
	c.cred.Store(&token)
}

// ClearCredential removes the outgoing bearer token.
func (c *Client) ClearCredential() {
	c.cred.Store(nil)
}

// Credential returns the current outgoing bearer token, or "" if absent.
func (c *Client) Credential() string {
	if tok := c.cred.Load(); tok != nil {
		return *tok
	}
	return ""
}

// Login authenticates with an email- or username-shaped credential.
// On success the client's outgoing credential is swapped to the new token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	var res AuthResult
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", req, &res); err != nil {
		return nil, err
	}
	if err := checkAuthResult(&res); err != nil {
		return nil, err
	}
	c.SetCredential(res.Token)
	return &res, nil
}

// Register creates a new account. On success the outgoing credential is
// swapped to the new token, the same as login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var res AuthResult
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", req, &res); err != nil {
		return nil, err
	}
	if err := checkAuthResult(&res); err != nil {
		return nil, err
	}
	c.SetCredential(res.Token)
	return &res, nil
}

// Logout tells the remote service to revoke the session. The outgoing
// credential is cleared whether or not the remote call succeeds.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, "logout", http.MethodPost, "/auth/logout", nil, nil)
	c.ClearCredential()
	return err
}

// FetchProfile retrieves the authenticated user's profile.
func (c *Client) FetchProfile(ctx context.Context) (*Profile, error) {
	var payload profilePayload
	if err := c.do(ctx, "fetch_profile", http.MethodGet, "/user/me", nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Profile, nil
}

// RefreshToken exchanges the current credential for a fresh token and
// swaps the outgoing credential on success.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	var payload tokenPayload
	if err := c.do(ctx, "refresh_token", http.MethodPost, "/auth/refresh", nil, &payload); err != nil {
		return "", err
	}
	if payload.Token == "" {
		return "", oops.Code("GATEWAY_BAD_RESPONSE").Errorf("refresh response missing token")
	}
	c.SetCredential(payload.Token)
	return payload.Token, nil
}

// UpdateProfile replaces the authenticated user's display fields.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Profile, error) {
	var payload profilePayload
	if err := c.do(ctx, "update_profile", http.MethodPut, "/user/profile", req, &payload); err != nil {
		return nil, err
	}
	return &payload.Profile, nil
}

// ChangePassword rotates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.do(ctx, "change_password", http.MethodPost, "/user/change-password", body, nil)
}

// ForgotPassword requests a password-reset link for the given email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, "forgot_password", http.MethodPost, "/auth/forgot-password", body, nil)
}

// ResetPassword sets a new password using a reset token from email.
func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	body := map[string]string{"token": resetToken, "newPassword": newPassword}
	return c.do(ctx, "reset_password", http.MethodPost, "/auth/reset-password", body, nil)
}

func checkAuthResult(res *AuthResult) error {
	if res.Token == "" || res.User.ID == "" {
		return oops.Code("GATEWAY_BAD_RESPONSE").
			With("missing_token", res.Token == "").
			With("missing_user_id", res.User.ID == "").
			Errorf("auth response missing user or token")
	}
	return nil
}

// do performs one gateway operation: marshal, send with transient-failure
// retries, then either normalize a remote rejection into *AuthError or
// unwrap the response envelope's data object into out.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return oops.Code("GATEWAY_ENCODE_FAILED").With("operation", op).Wrap(err)
		}
	}

	ctx, span := c.tracer.Start(ctx, "gateway."+op, trace.WithAttributes(
		attribute.String("gateway.operation", op),
		attribute.String("http.method", method),
	))
	defer span.End()

	var (
		status int
		raw    []byte
	)
	backoff := retry.WithMaxRetries(maxRetries, retry.NewFibonacci(initialBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var reader io.Reader = http.NoBody
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return oops.Code("GATEWAY_REQUEST_INVALID").With("operation", op).Wrap(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-ID", ulid.Make().String())
		if tok := c.Credential(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}

		res, err := c.httpc.Do(req)
		if err != nil {
			c.recordRetry(op)
			return retry.RetryableError(oops.Code("GATEWAY_UNREACHABLE").
				With("operation", op).
				Wrap(err))
		}
		defer res.Body.Close() //nolint:errcheck // Read side already consumed

		raw, err = io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
		if err != nil {
			c.recordRetry(op)
			return retry.RetryableError(oops.Code("GATEWAY_READ_FAILED").
				With("operation", op).
				Wrap(err))
		}
		status = res.StatusCode

		switch status {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			c.recordRetry(op)
			return retry.RetryableError(normalizeError(status, raw))
		}
		return nil
	})
	if err != nil {
		c.observe(span, op, err)
		return err
	}

	if status >= http.StatusBadRequest {
		aerr := normalizeError(status, raw)
		c.logger.DebugContext(ctx, "gateway request rejected",
			"operation", op,
			"status", status,
		)
		c.observe(span, op, aerr)
		return aerr
	}

	if out != nil {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			werr := oops.Code("GATEWAY_BAD_RESPONSE").With("operation", op).Wrap(err)
			c.observe(span, op, werr)
			return werr
		}
		if len(env.Data) == 0 {
			werr := oops.Code("GATEWAY_BAD_RESPONSE").
				With("operation", op).
				Errorf("response envelope missing data")
			c.observe(span, op, werr)
			return werr
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			werr := oops.Code("GATEWAY_BAD_RESPONSE").With("operation", op).Wrap(err)
			c.observe(span, op, werr)
			return werr
		}
	}

	c.observe(span, op, nil)
	return nil
}

func (c *Client) observe(span trace.Span, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if c.metrics != nil {
		c.metrics.RequestsTotal.WithLabelValues(op, outcome).Inc()
	}
}

func (c *Client) recordRetry(op string) {
	if c.metrics != nil {
		c.metrics.RetriesTotal.WithLabelValues(op).Inc()
	}
}
