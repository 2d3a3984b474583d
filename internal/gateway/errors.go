// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package gateway

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"
)

// AuthError is a remote rejection, normalized at the gateway boundary.
// Message is user-facing. Callers never see transport-specific error shapes.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return e.Message
}

// maxInlineMessageLen caps how much of a non-JSON body is surfaced verbatim.
const maxInlineMessageLen = 200

// normalizeError mines a user-facing message out of an arbitrary failure body.
// The remote service usually answers {message: "..."} but older endpoints
// return {error: "..."}, bare strings, or nothing at all.
func normalizeError(status int, body []byte) *AuthError {
	if msg := mineMessage(body); msg != "" {
		return &AuthError{StatusCode: status, Message: msg}
	}
	return &AuthError{StatusCode: status, Message: http.StatusText(status)}
}

func mineMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var shaped struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Data    struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &shaped); err == nil {
		switch {
		case shaped.Message != "":
			return shaped.Message
		case shaped.Error != "":
			return shaped.Error
		case shaped.Data.Message != "":
			return shaped.Data.Message
		}
	}

	// A bare JSON string is also a valid failure body.
	var bare string
	if err := json.Unmarshal(body, &bare); err == nil && bare != "" {
		return bare
	}

	// Plain-text bodies are surfaced as-is when short and printable.
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") &&
		utf8.ValidString(trimmed) && len(trimmed) <= maxInlineMessageLen {
		return trimmed
	}
	return ""
}
