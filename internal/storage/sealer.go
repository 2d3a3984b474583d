// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package storage

// TokenSealer transforms the session token on its way to and from disk.
// The default stores it verbatim; deployments that want OS keychain or
// encrypted-at-rest storage plug in their own implementation.
type TokenSealer interface {
	Seal(token string) (string, error)
	Open(sealed string) (string, error)
}

// PlaintextSealer stores the token as-is.
type PlaintextSealer struct{}

func (PlaintextSealer) Seal(token string) (string, error) { return token, nil }
func (PlaintextSealer) Open(sealed string) (string, error) { return sealed, nil }
