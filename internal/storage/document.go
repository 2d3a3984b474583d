// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

// Package storage persists the session aggregate across process
// restarts. The on-disk document wraps the session snapshot with a
// format version, a stable client id, and a save timestamp, and is
// validated against a generated JSON Schema before it is trusted.
package storage

import (
	"time"

	"github.com/streamside/streamside/internal/session"
)

// DocumentVersion is the current on-disk format version.
const DocumentVersion = 1

// Document is the persisted session file layout.
type Document struct {
	Version  int              `json:"version" jsonschema:"minimum=1"`
	ClientID string           `json:"clientId"`
	SavedAt  time.Time        `json:"savedAt"`
	Session  session.Snapshot `json:"session"`
}
