// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package identity_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamside/streamside/internal/identity"
)

func TestValidateLogin(t *testing.T) {
	valid := identity.LoginInput{Identifier: "alice@example.com", Password: "secret1"}

	t.Run("valid payload passes", func(t *testing.T) {
		assert.NoError(t, identity.ValidateLogin(valid))
	})

	tests := []struct {
		name      string
		mutate    func(*identity.LoginInput)
		wantField string
		wantMsg   string
	}{
		{
			name:      "identifier too short",
			mutate:    func(in *identity.LoginInput) { in.Identifier = "ab" },
			wantField: "identifier",
			wantMsg:   "Must be at least 3 characters long",
		},
		{
			name:      "identifier too long",
			mutate:    func(in *identity.LoginInput) { in.Identifier = strings.Repeat("a", 101) },
			wantField: "identifier",
			wantMsg:   "Too long",
		},
		{
			name:      "password too short",
			mutate:    func(in *identity.LoginInput) { in.Password = "short" },
			wantField: "password",
			wantMsg:   "Password must be at least 6 characters long",
		},
		{
			name:      "password too long",
			mutate:    func(in *identity.LoginInput) { in.Password = strings.Repeat("x", 101) },
			wantField: "password",
			wantMsg:   "Too long, relax your typing speed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := identity.ValidateLogin(in)
			var verr *identity.ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}

func TestValidateRegister(t *testing.T) {
	valid := identity.RegisterInput{
		FirstName: "Alice",
		LastName:  "Nguyen",
		Username:  "alice42",
		Email:     "alice@example.com",
		Password:  "secret1",
	}

	t.Run("valid payload passes", func(t *testing.T) {
		assert.NoError(t, identity.ValidateRegister(valid))
	})

	tests := []struct {
		name      string
		mutate    func(*identity.RegisterInput)
		wantField string
	}{
		{"first name too short", func(in *identity.RegisterInput) { in.FirstName = "A" }, "firstName"},
		{"first name too long", func(in *identity.RegisterInput) { in.FirstName = strings.Repeat("a", 51) }, "firstName"},
		{"last name too short", func(in *identity.RegisterInput) { in.LastName = "B" }, "lastName"},
		{"last name too long", func(in *identity.RegisterInput) { in.LastName = strings.Repeat("b", 51) }, "lastName"},
		{"username too short", func(in *identity.RegisterInput) { in.Username = "ab" }, "username"},
		{"username too long", func(in *identity.RegisterInput) { in.Username = strings.Repeat("u", 31) }, "username"},
		{"invalid email", func(in *identity.RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"password too short", func(in *identity.RegisterInput) { in.Password = "short" }, "password"},
		{"password too long", func(in *identity.RegisterInput) { in.Password = strings.Repeat("p", 101) }, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := identity.ValidateRegister(in)
			var verr *identity.ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.NotEmpty(t, verr.Message)
		})
	}

	t.Run("reports first violation only", func(t *testing.T) {
		in := valid
		in.FirstName = "A"
		in.Password = "x"

		err := identity.ValidateRegister(in)
		var verr *identity.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "firstName", verr.Field)
	})
}
