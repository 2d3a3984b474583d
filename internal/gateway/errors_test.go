// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package gateway

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"message field", 401, `{"message":"Invalid credentials"}`, "Invalid credentials"},
		{"error field", 400, `{"error":"missing password"}`, "missing password"},
		{"nested data message", 403, `{"data":{"message":"account suspended"}}`, "account suspended"},
		{"bare json string", 401, `"token expired"`, "token expired"},
		{"plain text body", 429, "slow down", "slow down"},
		{"empty body falls back to status text", 401, "", "Unauthorized"},
		{"unrecognized json falls back to status text", 500, `{"weird":true}`, "Internal Server Error"},
		{"oversized text falls back to status text", 500, strings.Repeat("x", 500), "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aerr := normalizeError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.status, aerr.StatusCode)
			assert.Equal(t, tt.wantMsg, aerr.Message)
		})
	}
}

func TestAuthError_Error(t *testing.T) {
	aerr := &AuthError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	assert.Equal(t, "Invalid credentials", aerr.Error())
}
