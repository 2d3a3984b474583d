// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package session

import (
	"errors"

	"github.com/samber/oops"

	"github.com/streamside/streamside/internal/gateway"
	"github.com/streamside/streamside/internal/identity"
)

// ErrSuperseded is returned when an operation's result arrived after a
// newer request for the same operation (or a logout) had already started.
// The result was discarded; the aggregate was not touched.
var ErrSuperseded = oops.Code("SESSION_SUPERSEDED").Errorf("result superseded by a newer request")

// ErrNoToken is returned by operations that require an authenticated
// session when no token is present. No network call is made.
var ErrNoToken = oops.Code("SESSION_NO_TOKEN").Errorf("no token found")

// User-facing messages mirrored into lastError and notifications.
const (
	msgNoToken        = "No token found"
	msgSessionExpired = "Session expired. Please log in again."
	msgLoginOK        = "Login successful"
	msgRegisterOK     = "Registration successful"
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
)

// userMessage extracts a message suitable for display. Remote rejections
// and validation failures carry their own text; anything else (transport
// faults, malformed responses) collapses to the operation's fallback.
func userMessage(err error, fallback string) string {
	var aerr *gateway.AuthError
	if errors.As(err, &aerr) {
		return aerr.Message
	}
	var verr *identity.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return fallback
}
