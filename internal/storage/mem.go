// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package storage

import (
	"sync"

	"github.com/streamside/streamside/internal/session"
)

// MemStore keeps the session document in memory. It is a test double
// for Persister consumers that should not touch the filesystem.
type MemStore struct {
	mu   sync.Mutex
	snap session.Snapshot
	set  bool
}

var _ session.Persister = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Save stores a copy of the snapshot.
func (m *MemStore) Save(snap session.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap.Clone()
	m.set = true
	return nil
}

// Load returns the stored snapshot, or an empty one.
func (m *MemStore) Load() (session.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return session.Snapshot{}, nil
	}
	return m.snap.Clone(), nil
}

// Clear discards the stored snapshot.
func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = session.Snapshot{}
	m.set = false
	return nil
}
