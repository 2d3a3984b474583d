// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/streamside/streamside/internal/gateway"
	"github.com/streamside/streamside/internal/session"
)

// fakeGateway is a controllable stand-in for the remote auth boundary.
// Per-operation hooks default to success; tests override them to block,
// fail, or record calls.
type fakeGateway struct {
	mu   sync.Mutex
	cred string

	loginFn    func(ctx context.Context, req gateway.LoginRequest) (*gateway.AuthResult, error)
	registerFn func(ctx context.Context, req gateway.RegisterRequest) (*gateway.AuthResult, error)
	logoutFn   func(ctx context.Context) error
	fetchFn    func(ctx context.Context) (*gateway.Profile, error)
	refreshFn  func(ctx context.Context) (string, error)
	updateFn   func(ctx context.Context, req gateway.UpdateProfileRequest) (*gateway.Profile, error)
	changeFn   func(ctx context.Context, oldPassword, newPassword string) error
	forgotFn   func(ctx context.Context, email string) error
	resetFn    func(ctx context.Context, resetToken, newPassword string) error

	fetchCalls  int
	logoutCalls int
}

var _ session.Gateway = (*fakeGateway)(nil)

func authResultFor(id, email string) *gateway.AuthResult {
	return &gateway.AuthResult{
		User:  gateway.User{ID: id, Email: email, DisplayName: "User " + id},
		Token: "tok-" + id,
	}
}

func (f *fakeGateway) Login(ctx context.Context, req gateway.LoginRequest) (*gateway.AuthResult, error) {
	if f.loginFn != nil {
		res, err := f.loginFn(ctx, req)
		if err == nil {
			f.SetCredential(res.Token)
		}
		return res, err
	}
	res := authResultFor("u1", req.Email)
	f.SetCredential(res.Token)
	return res, nil
}

func (f *fakeGateway) Register(ctx context.Context, req gateway.RegisterRequest) (*gateway.AuthResult, error) {
	if f.registerFn != nil {
		res, err := f.registerFn(ctx, req)
		if err == nil {
			f.SetCredential(res.Token)
		}
		return res, err
	}
	res := authResultFor("u2", req.Email)
	f.SetCredential(res.Token)
	return res, nil
}

func (f *fakeGateway) Logout(ctx context.Context) error {
	f.mu.Lock()
	f.logoutCalls++
	f.mu.Unlock()
	f.ClearCredential()
	if f.logoutFn != nil {
		return f.logoutFn(ctx)
	}
	return nil
}

func (f *fakeGateway) FetchProfile(ctx context.Context) (*gateway.Profile, error) {
	f.mu.Lock()
	f.fetchCalls++
	f.mu.Unlock()
	if f.fetchFn != nil {
		return f.fetchFn(ctx)
	}
	return &gateway.Profile{DisplayName: "Fetched"}, nil
}

func (f *fakeGateway) RefreshToken(ctx context.Context) (string, error) {
	if f.refreshFn != nil {
		token, err := f.refreshFn(ctx)
		if err == nil {
			f.SetCredential(token)
		}
		return token, err
	}
	f.SetCredential("tok-fresh")
	return "tok-fresh", nil
}

func (f *fakeGateway) UpdateProfile(ctx context.Context, req gateway.UpdateProfileRequest) (*gateway.Profile, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, req)
	}
	return &gateway.Profile{DisplayName: req.DisplayName, AvatarURL: req.AvatarURL}, nil
}

func (f *fakeGateway) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if f.changeFn != nil {
		return f.changeFn(ctx, oldPassword, newPassword)
	}
	return nil
}

func (f *fakeGateway) ForgotPassword(ctx context.Context, email string) error {
	if f.forgotFn != nil {
		return f.forgotFn(ctx, email)
	}
	return nil
}

func (f *fakeGateway) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if f.resetFn != nil {
		return f.resetFn(ctx, resetToken, newPassword)
	}
	return nil
}

func (f *fakeGateway) SetCredential(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cred = token
}

func (f *fakeGateway) ClearCredential() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cred = ""
}

func (f *fakeGateway) Credential() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cred
}

func (f *fakeGateway) FetchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls
}

func (f *fakeGateway) LogoutCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logoutCalls
}

// recordingNotifier captures toast notifications.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) Successes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.successes...)
}

func (n *recordingNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

// recordingPersister captures every snapshot handed to the persister.
type recordingPersister struct {
	mu    sync.Mutex
	saves []session.Snapshot
	err   error
}

func (p *recordingPersister) Save(snap session.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.saves = append(p.saves, snap)
	return nil
}

func (p *recordingPersister) Last() (session.Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saves) == 0 {
		return session.Snapshot{}, false
	}
	return p.saves[len(p.saves)-1], true
}

func (p *recordingPersister) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.saves)
}

// waitSignal waits for ch or fails the test after a timeout.
func waitSignal(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}
