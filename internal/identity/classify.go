// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

// Package identity classifies and validates user-supplied credentials
// before they reach the auth gateway.
//
// Classification decides which field (email or username) an identifier
// populates in a login request. Validation is a fast-fail UX layer only;
// the remote auth service remains authoritative.
package identity

import (
	"regexp"
	"strings"
)

// Kind is the shape of a login identifier.
type Kind string

// Identifier kinds.
const (
	KindEmail    Kind = "email"
	KindUsername Kind = "username"
)

// emailPattern matches a local@domain.tld shape. Deliberately loose:
// anything that doesn't look like an email is treated as a username.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Classify trims the raw identifier and reports whether it is
// email-shaped or username-shaped. Total: every input classifies.
// Returns the kind and the trimmed value.
func Classify(raw string) (Kind, string) {
	trimmed := strings.TrimSpace(raw)
	if emailPattern.MatchString(trimmed) {
		return KindEmail, trimmed
	}
	return KindUsername, trimmed
}

// IsEmail reports whether the raw identifier is email-shaped.
func IsEmail(raw string) bool {
	kind, _ := Classify(raw)
	return kind == KindEmail
}
