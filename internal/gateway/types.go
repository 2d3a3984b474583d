// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package gateway

import "encoding/json"

// User is the wire-level user object returned by login and registration.
// It carries both account identity and presentation profile fields.
type User struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	AvatarURL   string   `json:"avatarUrl"`
	Favorites   []string `json:"favorites,omitempty"`
	WatchList   []string `json:"watchList,omitempty"`
}

// Profile is the wire-level profile object returned by profile fetches.
type Profile struct {
	DisplayName string   `json:"displayName"`
	AvatarURL   string   `json:"avatarUrl"`
	Favorites   []string `json:"favorites,omitempty"`
	WatchList   []string `json:"watchList,omitempty"`
}

// LoginRequest carries login credentials. Exactly one of Email or Username
// is populated, chosen by classifying the raw identifier.
type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

// RegisterRequest carries a new-account registration payload.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// UpdateProfileRequest carries a partial profile update.
type UpdateProfileRequest struct {
	DisplayName string `json:"displayName,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// AuthResult is the successful outcome of login or registration.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// envelope is the remote service's uniform response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Success *bool           `json:"success"`
}

// profilePayload unwraps the data object of GET /user/me and PUT /user/profile.
type profilePayload struct {
	Profile Profile `json:"profile"`
}

// tokenPayload unwraps the data object of POST /auth/refresh.
type tokenPayload struct {
	Token string `json:"token"`
}
