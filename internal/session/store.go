// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

// Package session holds the authoritative client-side session state.
//
// The Store is the only writer of the session aggregate. Tracked
// operations (login, register, fetch-profile) run asynchronously against
// the gateway; their completions are applied as atomic transitions under
// the store lock. Each tracked call is stamped with a per-operation
// generation and the current logout epoch, and a completion is applied
// only if it is still the latest generation issued in the current epoch.
// Stale completions are discarded, so overlapping requests and responses
// arriving after logout can never overwrite newer state.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/samber/oops"

	"github.com/streamside/streamside/internal/gateway"
	"github.com/streamside/streamside/internal/identity"
	"github.com/streamside/streamside/pkg/errutil"
)

// Store is the client-side session state machine.
type Store struct {
	gw        Gateway
	notify    Notifier
	persister Persister
	logger    *slog.Logger

	mu        sync.Mutex
	account   *Account
	profile   *Profile
	prefs     *Preferences
	token     string
	loggedIn  bool
	lastError string
	statuses  map[Op]Status
	seq       map[Op]uint64
	epoch     uint64
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithNotifier routes transient user notifications to n.
func WithNotifier(n Notifier) StoreOption {
	return func(s *Store) { s.notify = n }
}

// WithPersister attaches the durable-storage observer.
func WithPersister(p Persister) StoreOption {
	return func(s *Store) { s.persister = p }
}

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates an empty session store bound to the given gateway.
func NewStore(gw Gateway, opts ...StoreOption) (*Store, error) {
	if gw == nil {
		return nil, oops.Code("SESSION_CONFIG_INVALID").Errorf("gateway is required")
	}

	s := &Store{
		gw:       gw,
		notify:   nopNotifier{},
		logger:   slog.Default(),
		statuses: freshStatuses(),
		seq:      make(map[Op]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func freshStatuses() map[Op]Status {
	return map[Op]Status{
		OpLogin:        StatusIdle,
		OpRegister:     StatusIdle,
		OpFetchProfile: StatusIdle,
	}
}

// Hydrate initializes the store from a persisted snapshot. Called once at
// startup before any operation runs. Snapshots violating the session
// invariant are discarded; in-flight statuses are normalized to idle
// because no request survives a restart. A restored token re-arms the
// gateway credential.
func (s *Store) Hydrate(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.IsLoggedIn && (snap.Account == nil || snap.Token == "") ||
		snap.Token != "" && snap.Account == nil {
		s.logger.Warn("discarding persisted session that violates invariant")
		return
	}

	clean := snap.Clone()
	s.account = clean.Account
	s.profile = clean.Profile
	s.prefs = clean.Preferences
	s.token = clean.Token
	s.loggedIn = clean.IsLoggedIn
	s.lastError = clean.LastError

	if s.profile != nil {
		s.profile.Favorites = dedup(s.profile.Favorites)
		s.profile.WatchList = dedup(s.profile.WatchList)
	}

	s.statuses = freshStatuses()
	for op, st := range clean.Statuses {
		if st == StatusLoading {
			st = StatusIdle
		}
		s.statuses[op] = st
	}

	if s.token != "" {
		s.gw.SetCredential(s.token)
	}
}

// Login validates the credentials, classifies the identifier, and runs
// the login flow. The aggregate is untouched on failure except for the
// login status and lastError.
func (s *Store) Login(ctx context.Context, identifier, password string) error {
	in := identity.LoginInput{Identifier: identifier, Password: password}
	if err := identity.ValidateLogin(in); err != nil {
		s.recordValidationFailure(OpLogin, err)
		return err
	}

	req := gateway.LoginRequest{Password: password}
	kind, value := identity.Classify(identifier)
	if kind == identity.KindEmail {
		req.Email = value
	} else {
		req.Username = value
	}

	gen, ep := s.begin(OpLogin)
	res, err := s.gw.Login(ctx, req)
	return s.applyAuth(OpLogin, gen, ep, res, err, msgLoginOK, msgLoginFailed)
}

// Register validates the registration payload and runs the registration
// flow. Success populates the session exactly like login.
func (s *Store) Register(ctx context.Context, in identity.RegisterInput) error {
	if err := identity.ValidateRegister(in); err != nil {
		s.recordValidationFailure(OpRegister, err)
		return err
	}

	req := gateway.RegisterRequest{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
	}

	gen, ep := s.begin(OpRegister)
	res, err := s.gw.Register(ctx, req)
	return s.applyAuth(OpRegister, gen, ep, res, err, msgRegisterOK, msgRegisterFailed)
}

// applyAuth applies a completed login/register call to the aggregate.
func (s *Store) applyAuth(op Op, gen, ep uint64, res *gateway.AuthResult, err error, okMsg, failMsg string) error {
	s.mu.Lock()
	if s.staleLocked(op, gen, ep) {
		token := s.token
		s.mu.Unlock()
		if err == nil {
			// The gateway armed the stale result's credential. Restore the
			// credential matching the current aggregate.
			if token != "" {
				s.gw.SetCredential(token)
			} else {
				s.gw.ClearCredential()
			}
		}
		return ErrSuperseded
	}

	if err != nil {
		msg := userMessage(err, failMsg)
		s.failLocked(op, msg)
		s.mu.Unlock()
		errutil.LogError(s.logger, string(op)+" failed", err)
		s.notify.Error(msg)
		return err
	}

	s.account = &Account{ID: res.User.ID, Email: res.User.Email}
	s.profile = &Profile{
		DisplayName: res.User.DisplayName,
		AvatarURL:   res.User.AvatarURL,
		Favorites:   dedup(res.User.Favorites),
		WatchList:   dedup(res.User.WatchList),
	}
	s.token = res.Token
	s.loggedIn = true
	s.lastError = ""
	s.statuses[op] = StatusSucceeded
	s.persistLocked()
	s.mu.Unlock()

	s.notify.Success(okMsg)
	return nil
}

// FetchProfile refreshes the profile from the remote service. A missing
// token fails immediately without a network call. A remote rejection is
// treated as proof of an invalid or expired token: the session is
// destroyed and the user must log in again.
func (s *Store) FetchProfile(ctx context.Context) error {
	s.mu.Lock()
	if s.token == "" {
		s.statuses[OpFetchProfile] = StatusFailed
		s.lastError = msgNoToken
		s.persistLocked()
		s.mu.Unlock()
		return ErrNoToken
	}
	s.seq[OpFetchProfile]++
	gen := s.seq[OpFetchProfile]
	ep := s.epoch
	s.statuses[OpFetchProfile] = StatusLoading
	s.persistLocked()
	s.mu.Unlock()

	profile, err := s.gw.FetchProfile(ctx)

	s.mu.Lock()
	if s.staleLocked(OpFetchProfile, gen, ep) {
		s.mu.Unlock()
		return ErrSuperseded
	}

	if err != nil {
		s.destroyLocked()
		s.statuses[OpFetchProfile] = StatusFailed
		s.lastError = msgSessionExpired
		s.persistLocked()
		s.mu.Unlock()

		s.gw.ClearCredential()
		errutil.LogError(s.logger, "profile fetch rejected, session invalidated", err)
		return oops.Code("SESSION_EXPIRED").Wrap(err)
	}

	s.profile = &Profile{
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.AvatarURL,
		Favorites:   dedup(profile.Favorites),
		WatchList:   dedup(profile.WatchList),
	}
	s.loggedIn = true
	s.statuses[OpFetchProfile] = StatusSucceeded
	s.persistLocked()
	s.mu.Unlock()
	return nil
}

// Logout unconditionally resets the aggregate to its empty initial value
// and bumps the epoch so in-flight results are discarded. The remote
// logout call is best-effort; Logout never fails outward.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.epoch++
	s.destroyLocked()
	s.lastError = ""
	s.statuses = freshStatuses()
	s.persistLocked()
	s.mu.Unlock()

	if err := s.gw.Logout(ctx); err != nil {
		errutil.LogError(s.logger, "remote logout failed", err)
	}
}

// RefreshToken exchanges the current token for a fresh one. Untracked:
// it is a single on-demand call with no lifecycle status.
func (s *Store) RefreshToken(ctx context.Context) error {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return ErrNoToken
	}
	ep := s.epoch
	s.mu.Unlock()

	token, err := s.gw.RefreshToken(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.epoch != ep || !s.loggedIn {
		s.mu.Unlock()
		// The refresh raced a logout; the gateway credential was re-armed
		// by the successful refresh and must be revoked again.
		s.gw.ClearCredential()
		return ErrSuperseded
	}
	s.token = token
	s.persistLocked()
	s.mu.Unlock()
	return nil
}

// UpdateProfile replaces the display fields of the profile via the remote
// service. Favorites and watch list are left untouched.
func (s *Store) UpdateProfile(ctx context.Context, displayName, avatarURL string) error {
	s.mu.Lock()
	if !s.loggedIn {
		s.mu.Unlock()
		return ErrNoToken
	}
	ep := s.epoch
	s.mu.Unlock()

	updated, err := s.gw.UpdateProfile(ctx, gateway.UpdateProfileRequest{
		DisplayName: displayName,
		AvatarURL:   avatarURL,
	})
	if err != nil {
		msg := userMessage(err, "Profile update failed")
		s.notify.Error(msg)
		return err
	}

	s.mu.Lock()
	if s.epoch != ep || !s.loggedIn || s.profile == nil {
		s.mu.Unlock()
		return ErrSuperseded
	}
	s.profile.DisplayName = updated.DisplayName
	s.profile.AvatarURL = updated.AvatarURL
	s.persistLocked()
	s.mu.Unlock()

	s.notify.Success("Profile updated")
	return nil
}

// ChangePassword rotates the password of the authenticated user.
func (s *Store) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	s.mu.Lock()
	loggedIn := s.loggedIn
	s.mu.Unlock()
	if !loggedIn {
		return ErrNoToken
	}
	if len(newPassword) < identity.MinPasswordLen {
		err := &identity.ValidationError{Field: "password", Message: "Password must be at least 6 characters long"}
		s.notify.Error(err.Message)
		return err
	}

	if err := s.gw.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		s.notify.Error(userMessage(err, "Password change failed"))
		return err
	}
	s.notify.Success("Password changed")
	return nil
}

// ForgotPassword requests a reset link. Works logged out by design.
func (s *Store) ForgotPassword(ctx context.Context, email string) error {
	if !identity.IsEmail(email) {
		err := &identity.ValidationError{Field: "email", Message: "Invalid email format"}
		s.notify.Error(err.Message)
		return err
	}
	if err := s.gw.ForgotPassword(ctx, email); err != nil {
		s.notify.Error(userMessage(err, "Password reset request failed"))
		return err
	}
	s.notify.Success("Password reset email sent")
	return nil
}

// ResetPassword completes a reset flow using the emailed token.
func (s *Store) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if len(newPassword) < identity.MinPasswordLen {
		err := &identity.ValidationError{Field: "password", Message: "Password must be at least 6 characters long"}
		s.notify.Error(err.Message)
		return err
	}
	if err := s.gw.ResetPassword(ctx, resetToken, newPassword); err != nil {
		s.notify.Error(userMessage(err, "Password reset failed"))
		return err
	}
	s.notify.Success("Password has been reset")
	return nil
}

// begin stamps a new generation for op and transitions it to loading.
func (s *Store) begin(op Op) (gen, ep uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[op]++
	s.statuses[op] = StatusLoading
	s.lastError = ""
	s.persistLocked()
	return s.seq[op], s.epoch
}

// staleLocked reports whether a completion tagged (gen, ep) has been
// superseded by a newer request or a logout.
func (s *Store) staleLocked(op Op, gen, ep uint64) bool {
	return s.seq[op] != gen || s.epoch != ep
}

func (s *Store) failLocked(op Op, msg string) {
	s.statuses[op] = StatusFailed
	s.lastError = msg
	s.persistLocked()
}

// destroyLocked resets the aggregate to its empty value. Used by logout
// and by fetch-profile rejection (treated as token expiry).
func (s *Store) destroyLocked() {
	s.account = nil
	s.profile = nil
	s.prefs = nil
	s.token = ""
	s.loggedIn = false
}

func (s *Store) recordValidationFailure(op Op, err error) {
	msg := userMessage(err, "Validation failed")
	s.mu.Lock()
	s.failLocked(op, msg)
	s.mu.Unlock()
	s.notify.Error(msg)
}

// persistLocked hands the current aggregate to the persister. Storage
// failures are logged and swallowed: persistence must never break a
// session mutation.
func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.snapshotLocked()); err != nil {
		errutil.LogError(s.logger, "session persist failed", err)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Account:     s.account,
		Profile:     s.profile,
		Preferences: s.prefs,
		Token:       s.token,
		IsLoggedIn:  s.loggedIn,
		LastError:   s.lastError,
		Statuses:    s.statuses,
	}
	return snap.Clone()
}
