// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

// Package xdg provides XDG Base Directory paths for the Streamside client.
package xdg

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "streamside"

// ConfigDir returns the XDG config directory for streamside.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appName)
}

// StateDir returns the XDG state directory for streamside.
// Checks XDG_STATE_HOME first, falls back to ~/.local/state.
// Persisted session state lives here.
func StateDir() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".local", "state")
	}
	return filepath.Join(base, appName)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
// Directories are created with 0700 permissions since they hold session state.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
