// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package session

import (
	"context"

	"github.com/streamside/streamside/internal/gateway"
)

// Gateway is the store's view of the remote auth boundary. Satisfied by
// *gateway.Client; tests substitute controllable fakes.
type Gateway interface {
	Login(ctx context.Context, req gateway.LoginRequest) (*gateway.AuthResult, error)
	Register(ctx context.Context, req gateway.RegisterRequest) (*gateway.AuthResult, error)
	Logout(ctx context.Context) error
	FetchProfile(ctx context.Context) (*gateway.Profile, error)
	RefreshToken(ctx context.Context) (string, error)
	UpdateProfile(ctx context.Context, req gateway.UpdateProfileRequest) (*gateway.Profile, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error

	// SetCredential re-arms the outgoing credential on rehydration;
	// ClearCredential revokes it when the store invalidates the session.
	SetCredential(token string)
	ClearCredential()
}

// Notifier receives transient user-facing notifications (toasts).
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// nopNotifier drops all notifications.
type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// Persister observes the session aggregate after each mutation and writes
// it to durable storage. It must never mutate the snapshot. Persist
// failures are logged and swallowed; they never fail a session operation.
type Persister interface {
	Save(snap Snapshot) error
}
