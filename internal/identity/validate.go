// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package identity

import "fmt"

// Field length constraints. Login identifiers are longer than registration
// usernames because they may carry a full email address.
const (
	MinIdentifierLen = 3
	MaxIdentifierLen = 100
	MinPasswordLen   = 6
	MaxPasswordLen   = 100
	MinNameLen       = 2
	MaxNameLen       = 50
	MinUsernameLen   = 3
	MaxUsernameLen   = 30
)

// ValidationError reports the first violated constraint of an input payload.
// Message is user-facing and shown verbatim in the UI.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoginInput is a raw login form payload.
type LoginInput struct {
	Identifier string
	Password   string
}

// RegisterInput is a raw registration form payload.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// ValidateLogin checks a login payload against field constraints.
// Returns the first violated constraint as a *ValidationError, or nil.
func ValidateLogin(in LoginInput) error {
	if len(in.Identifier) < MinIdentifierLen {
		return &ValidationError{Field: "identifier", Message: "Must be at least 3 characters long"}
	}
	if len(in.Identifier) > MaxIdentifierLen {
		return &ValidationError{Field: "identifier", Message: "Too long"}
	}
	if len(in.Password) < MinPasswordLen {
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters long"}
	}
	if len(in.Password) > MaxPasswordLen {
		return &ValidationError{Field: "password", Message: "Too long, relax your typing speed"}
	}
	return nil
}

// ValidateRegister checks a registration payload against field constraints.
// Returns the first violated constraint as a *ValidationError, or nil.
func ValidateRegister(in RegisterInput) error {
	if len(in.FirstName) < MinNameLen {
		return &ValidationError{Field: "firstName", Message: "First name must be at least 2 characters long"}
	}
	if len(in.FirstName) > MaxNameLen {
		return &ValidationError{Field: "firstName", Message: "First name too long"}
	}
	if len(in.LastName) < MinNameLen {
		return &ValidationError{Field: "lastName", Message: "Last name must be at least 2 characters long"}
	}
	if len(in.LastName) > MaxNameLen {
		return &ValidationError{Field: "lastName", Message: "Last name too long"}
	}
	if len(in.Username) < MinUsernameLen {
		return &ValidationError{Field: "username", Message: "Username must be at least 3 characters long"}
	}
	if len(in.Username) > MaxUsernameLen {
		return &ValidationError{Field: "username", Message: "Username too long"}
	}
	if !IsEmail(in.Email) {
		return &ValidationError{Field: "email", Message: "Invalid email format"}
	}
	if len(in.Password) < MinPasswordLen {
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters long"}
	}
	if len(in.Password) > MaxPasswordLen {
		return &ValidationError{Field: "password", Message: "Password too long"}
	}
	return nil
}
