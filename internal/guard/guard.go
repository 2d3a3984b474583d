// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

// Package guard decides route access from the authentication state.
//
// Route patterns use gobwas/glob with '/' as the segment separator:
//   - '*' matches a single path segment (does not cross '/')
//   - '**' matches zero or more segments (crosses '/')
//
// Examples:
//   - "/account" matches only "/account"
//   - "/watch/*" matches "/watch/vid42" but NOT "/watch/vid42/extras"
//   - "/account/**" matches "/account" descendants at any depth
package guard

import (
	"net/url"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// DefaultLoginPath is where unauthenticated visitors of protected
// routes are sent.
const DefaultLoginPath = "/login"

// DefaultHomePath is where authenticated visitors of guest-only routes
// are sent.
const DefaultHomePath = "/"

// returnToParam carries the originally requested path through the login
// redirect so a successful login can resume it.
const returnToParam = "from"

// Decision is the outcome of evaluating a destination.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

type compiledRoute struct {
	pattern string
	glob    glob.Glob
}

// Guard evaluates destinations against protected and guest-only route
// sets. Safe for concurrent use after construction.
type Guard struct {
	protected []compiledRoute
	guestOnly []compiledRoute
	loginPath string
	homePath  string
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithLoginPath overrides the login redirect target.
func WithLoginPath(path string) GuardOption {
	return func(g *Guard) { g.loginPath = path }
}

// WithHomePath overrides the guest-only redirect target.
func WithHomePath(path string) GuardOption {
	return func(g *Guard) { g.homePath = path }
}

// WithGuestOnly marks routes that only signed-out visitors may reach,
// such as the login and registration pages.
func WithGuestOnly(patterns ...string) GuardOption {
	return func(g *Guard) {
		for _, p := range patterns {
			g.guestOnly = append(g.guestOnly, compiledRoute{pattern: p})
		}
	}
}

// NewGuard compiles the protected route patterns. All patterns are
// compiled before anything is kept, so an invalid pattern fails the
// whole construction.
func NewGuard(protected []string, opts ...GuardOption) (*Guard, error) {
	g := &Guard{
		loginPath: DefaultLoginPath,
		homePath:  DefaultHomePath,
	}
	for _, opt := range opts {
		opt(g)
	}

	var err error
	if g.protected, err = compileRoutes(protected); err != nil {
		return nil, err
	}

	guestPatterns := make([]string, len(g.guestOnly))
	for i, r := range g.guestOnly {
		guestPatterns[i] = r.pattern
	}
	if g.guestOnly, err = compileRoutes(guestPatterns); err != nil {
		return nil, err
	}
	return g, nil
}

func compileRoutes(patterns []string) ([]compiledRoute, error) {
	compiled := make([]compiledRoute, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern == "" {
			return nil, oops.Code("GUARD_PATTERN_INVALID").Errorf("empty route pattern")
		}
		// '/' as separator so '*' does not cross segment boundaries.
		gl, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, oops.Code("GUARD_PATTERN_INVALID").
				With("pattern", pattern).
				Wrap(err)
		}
		compiled = append(compiled, compiledRoute{pattern: pattern, glob: gl})
	}
	return compiled, nil
}

// Evaluate decides whether a visitor with the given authentication
// state may reach dest. Protected routes bounce signed-out visitors to
// the login path, carrying the destination so login can resume it.
// Guest-only routes bounce signed-in visitors home.
func (g *Guard) Evaluate(loggedIn bool, dest string) Decision {
	path := normalizePath(dest)

	if !loggedIn && matches(g.protected, path) {
		target := g.loginPath
		if path != "" && path != g.loginPath {
			target += "?" + returnToParam + "=" + url.QueryEscape(path)
		}
		return Decision{RedirectTo: target}
	}
	if loggedIn && matches(g.guestOnly, path) {
		return Decision{RedirectTo: g.homePath}
	}
	return Decision{Allowed: true}
}

// ReturnTo sanitizes a login return target taken from the redirect
// parameter. Anything that is not a local absolute path collapses to
// the home path, so the parameter cannot be abused as an open redirect.
func (g *Guard) ReturnTo(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return g.homePath
	}
	if strings.ContainsAny(raw, "\\") {
		return g.homePath
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return g.homePath
	}
	return raw
}

func matches(routes []compiledRoute, path string) bool {
	for _, r := range routes {
		if r.glob.Match(path) {
			return true
		}
	}
	return false
}

// normalizePath reduces dest to a bare path: the query string is
// dropped and a trailing slash is trimmed so "/account/" and "/account"
// match the same patterns.
func normalizePath(dest string) string {
	if i := strings.IndexByte(dest, '?'); i >= 0 {
		dest = dest[:i]
	}
	if len(dest) > 1 {
		dest = strings.TrimRight(dest, "/")
	}
	return dest
}
