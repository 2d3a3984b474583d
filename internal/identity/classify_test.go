// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/streamside/streamside/internal/identity"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind identity.Kind
		wantVal  string
	}{
		{"plain email", "alice@example.com", identity.KindEmail, "alice@example.com"},
		{"email with subdomain", "bob@mail.example.co.uk", identity.KindEmail, "bob@mail.example.co.uk"},
		{"email with surrounding whitespace", "  alice@example.com  ", identity.KindEmail, "alice@example.com"},
		{"plain username", "alice42", identity.KindUsername, "alice42"},
		{"username with at but no dot", "alice@localhost", identity.KindUsername, "alice@localhost"},
		{"missing local part", "@example.com", identity.KindUsername, "@example.com"},
		{"missing domain", "alice@", identity.KindUsername, "alice@"},
		{"space inside identifier", "alice smith@example.com", identity.KindUsername, "alice smith@example.com"},
		{"double at", "a@@example.com", identity.KindUsername, "a@@example.com"},
		{"empty string", "", identity.KindUsername, ""},
		{"whitespace only", "   ", identity.KindUsername, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, val := identity.Classify(tt.raw)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantVal, val)
		})
	}
}

func TestIsEmail(t *testing.T) {
	assert.True(t, identity.IsEmail("alice@example.com"))
	assert.False(t, identity.IsEmail("alice42"))
}
