// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package storage

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/streamside/streamside/internal/session"
	"github.com/streamside/streamside/internal/xdg"
)

const sessionFile = "session.json"

// FileStore persists the session document to a single JSON file. Writes
// go through a temp file and rename, so a crash mid-write leaves the
// previous document intact.
type FileStore struct {
	path     string
	sealer   TokenSealer
	logger   *slog.Logger
	clientID string

	mu sync.Mutex
}

var _ session.Persister = (*FileStore)(nil)

// Option configures a FileStore.
type Option func(*FileStore)

// WithSealer replaces the token sealer.
func WithSealer(s TokenSealer) Option {
	return func(f *FileStore) { f.sealer = s }
}

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *FileStore) { f.logger = logger }
}

// NewFileStore creates a file store rooted at dir, creating the
// directory if needed. A fresh client id is minted; Load replaces it
// with the persisted one when a document exists.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	if dir == "" {
		return nil, oops.Code("STORAGE_CONFIG_INVALID").Errorf("state directory is required")
	}
	if err := xdg.EnsureDir(dir); err != nil {
		return nil, oops.Code("STORAGE_DIR").With("dir", dir).Wrap(err)
	}

	f := &FileStore{
		path:     filepath.Join(dir, sessionFile),
		sealer:   PlaintextSealer{},
		logger:   slog.Default(),
		clientID: ulid.Make().String(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Path returns the session file location.
func (f *FileStore) Path() string {
	return f.path
}

// Save writes the snapshot to disk, sealing the token first.
func (f *FileStore) Save(snap session.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sealed, err := f.sealer.Seal(snap.Token)
	if err != nil {
		return oops.Code("STORAGE_SEAL").Wrap(err)
	}
	snap.Token = sealed

	doc := Document{
		Version:  DocumentVersion,
		ClientID: f.clientID,
		SavedAt:  time.Now().UTC(),
		Session:  snap,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return oops.Code("STORAGE_ENCODE").Wrap(err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return oops.Code("STORAGE_WRITE").With("path", tmp).Wrap(err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return oops.Code("STORAGE_WRITE").With("path", f.path).Wrap(err)
	}
	return nil
}

// Load reads and validates the persisted document. A missing file is a
// clean first run: it returns an empty snapshot and no error. Corrupt,
// schema-invalid, or future-versioned documents also return an empty
// snapshot, with an error the caller can log before starting fresh.
func (f *FileStore) Load() (session.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return session.Snapshot{}, nil
	}
	if err != nil {
		return session.Snapshot{}, oops.Code("STORAGE_READ").With("path", f.path).Wrap(err)
	}

	if err := ValidateDocument(data); err != nil {
		return session.Snapshot{}, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return session.Snapshot{}, oops.Code("STORAGE_CORRUPT").Wrapf(err, "decoding session document")
	}
	if doc.Version > DocumentVersion {
		return session.Snapshot{}, oops.Code("STORAGE_VERSION").
			With("version", doc.Version).
			Errorf("session document written by a newer version")
	}

	if doc.ClientID != "" {
		f.clientID = doc.ClientID
	}

	token, err := f.sealer.Open(doc.Session.Token)
	if err != nil {
		return session.Snapshot{}, oops.Code("STORAGE_SEAL").Wrapf(err, "opening sealed token")
	}
	doc.Session.Token = token
	return doc.Session, nil
}

// Clear removes the persisted document. Removing an absent file is not
// an error.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return oops.Code("STORAGE_WRITE").With("path", f.path).Wrap(err)
	}
	return nil
}

// ClientID returns the stable per-installation id.
func (f *FileStore) ClientID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clientID
}
