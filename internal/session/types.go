// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package session

import "slices"

// Account is the identity record of the signed-in user. Created on
// successful login or registration, destroyed on logout, immutable otherwise.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile is the presentation-facing user data. Replaced wholesale on
// login, registration, and profile fetch; favorites and watch list are
// mutated incrementally by dedicated store operations.
type Profile struct {
	DisplayName string   `json:"displayName"`
	AvatarURL   string   `json:"avatarUrl"`
	Favorites   []string `json:"favorites,omitempty"`
	WatchList   []string `json:"watchList,omitempty"`
}

// Quality is a playback quality preference.
type Quality string

// Supported playback qualities.
const (
	Quality360p  Quality = "360p"
	Quality480p  Quality = "480p"
	Quality720p  Quality = "720p"
	Quality1080p Quality = "1080p"
)

// Valid reports whether q is a supported playback quality.
func (q Quality) Valid() bool {
	switch q {
	case Quality360p, Quality480p, Quality720p, Quality1080p:
		return true
	}
	return false
}

// Preferences holds user preferences persisted with the session.
type Preferences struct {
	VideoQuality Quality `json:"videoQuality,omitempty"`
}

// Op identifies a tracked asynchronous operation. Lifecycle status is
// keyed per operation so concurrent operations of different kinds cannot
// clobber each other's progress indicator.
type Op string

// Tracked operations.
const (
	OpLogin        Op = "login"
	OpRegister     Op = "register"
	OpFetchProfile Op = "fetch_profile"
)

// Status is the coarse progress indicator of a tracked operation.
type Status string

// Lifecycle states.
const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Snapshot is an immutable copy of the session aggregate, used both as
// the read view handed to callers and as the persisted document payload.
//
// Invariant: IsLoggedIn implies Account != nil and Token != "".
type Snapshot struct {
	Account     *Account      `json:"account,omitempty"`
	Profile     *Profile      `json:"profile,omitempty"`
	Preferences *Preferences  `json:"preferences,omitempty"`
	Token       string        `json:"token,omitempty"`
	IsLoggedIn  bool          `json:"isLoggedIn"`
	LastError   string        `json:"lastError,omitempty"`
	Statuses    map[Op]Status `json:"statuses,omitempty"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.Account != nil {
		account := *s.Account
		out.Account = &account
	}
	if s.Profile != nil {
		out.Profile = s.Profile.clone()
	}
	if s.Preferences != nil {
		prefs := *s.Preferences
		out.Preferences = &prefs
	}
	if s.Statuses != nil {
		out.Statuses = make(map[Op]Status, len(s.Statuses))
		for op, st := range s.Statuses {
			out.Statuses[op] = st
		}
	}
	return out
}

func (p *Profile) clone() *Profile {
	out := *p
	out.Favorites = slices.Clone(p.Favorites)
	out.WatchList = slices.Clone(p.WatchList)
	return &out
}

// dedup returns ids with duplicates removed, first occurrence wins,
// order preserved.
func dedup(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
