// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package session

import (
	"slices"

	"github.com/samber/oops"
)

// AddFavorite adds a content id to the favorites set. Duplicate-free:
// adding an already-present id is a no-op. Purely local, no network call.
func (s *Store) AddFavorite(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil || slices.Contains(s.profile.Favorites, id) {
		return
	}
	s.profile.Favorites = append(s.profile.Favorites, id)
	s.persistLocked()
}

// RemoveFavorite removes a content id from the favorites set.
func (s *Store) RemoveFavorite(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return
	}
	before := len(s.profile.Favorites)
	s.profile.Favorites = slices.DeleteFunc(s.profile.Favorites, func(v string) bool {
		return v == id
	})
	if len(s.profile.Favorites) != before {
		s.persistLocked()
	}
}

// AddToWatchList appends a content id to the ordered watch list,
// duplicate-free like favorites.
func (s *Store) AddToWatchList(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil || slices.Contains(s.profile.WatchList, id) {
		return
	}
	s.profile.WatchList = append(s.profile.WatchList, id)
	s.persistLocked()
}

// RemoveFromWatchList removes a content id, preserving the order of the rest.
func (s *Store) RemoveFromWatchList(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return
	}
	before := len(s.profile.WatchList)
	s.profile.WatchList = slices.DeleteFunc(s.profile.WatchList, func(v string) bool {
		return v == id
	})
	if len(s.profile.WatchList) != before {
		s.persistLocked()
	}
}

// SetVideoQuality records the playback quality preference.
func (s *Store) SetVideoQuality(q Quality) error {
	if !q.Valid() {
		return oops.Code("SESSION_INVALID_QUALITY").
			With("quality", string(q)).
			Errorf("unsupported video quality")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefs == nil {
		s.prefs = &Preferences{}
	}
	s.prefs.VideoQuality = q
	s.persistLocked()
	return nil
}

// ClearError clears lastError. No other effect.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastError == "" {
		return
	}
	s.lastError = ""
	s.persistLocked()
}

// Snapshot returns a deep copy of the current aggregate.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// IsLoggedIn is the derived authentication view consumed by the route guard.
func (s *Store) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// Account returns a copy of the account, or nil when signed out.
func (s *Store) Account() *Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return nil
	}
	account := *s.account
	return &account
}

// Profile returns a copy of the profile, or nil when absent.
func (s *Store) Profile() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	return s.profile.clone()
}

// Preferences returns a copy of the preferences, or nil when absent.
func (s *Store) Preferences() *Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefs == nil {
		return nil
	}
	prefs := *s.prefs
	return &prefs
}

// Token returns the current session token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Err returns the last user-facing error message, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Status returns the lifecycle status of a tracked operation.
func (s *Store) Status(op Op) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.statuses[op]; ok {
		return st
	}
	return StatusIdle
}
