// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package guard

import "net/http"

// SessionReader is the authentication view the middleware consults.
// *session.Store satisfies it.
type SessionReader interface {
	IsLoggedIn() bool
}

// Middleware wraps an http.Handler with the guard decision. Disallowed
// requests are answered with a 302 to the decision's redirect target.
func (g *Guard) Middleware(session SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := g.Evaluate(session.IsLoggedIn(), r.URL.RequestURI())
			if !decision.Allowed {
				http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
