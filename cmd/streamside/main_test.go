// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	subcommands := []string{"login", "register", "logout", "whoami", "refresh", "profile", "password", "favorites", "watchlist", "quality", "shell"}
	for _, sub := range subcommands {
		assert.Contains(t, output, sub, "Help missing %q command", sub)
	}
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantFlag string
	}{
		{
			name:     "config flag",
			args:     []string{"--config", "/path/to/config.yaml", "--help"},
			wantFlag: "/path/to/config.yaml",
		},
		{
			name:     "config flag with equals",
			args:     []string{"--config=/etc/streamside.yaml", "--help"},
			wantFlag: "/etc/streamside.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset global
			configFile = ""

			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
			assert.Equal(t, tt.wantFlag, configFile)
		})
	}
}

func TestRootCommand_VersionFlag(t *testing.T) {
	cmd := NewRootCmd()
	cmd.Version = "test-version"
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "test-version")
}

func TestRootCommand_NoArgs(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
}

func TestUnknownCommand(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"nonexistent"})

	require.Error(t, cmd.Execute())
}

func TestLoginCommand_RequiresIdentifier(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"login"})

	require.Error(t, cmd.Execute())
}

func TestRegisterCommand_RequiresFlags(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"register", "--username", "alice42"})

	require.Error(t, cmd.Execute(), "missing required flags must fail")
}

func TestFavoritesCommand_Tree(t *testing.T) {
	cmd := NewFavoritesCmd()
	names := make([]string, 0, 3)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"add", "remove", "list"}, names)
}

func TestPasswordCommand_Tree(t *testing.T) {
	cmd := NewPasswordCmd()
	names := make([]string, 0, 3)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"change", "forgot", "reset"}, names)
}

func TestProfileCommand_Tree(t *testing.T) {
	cmd := NewProfileCmd()
	names := make([]string, 0, 1)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"update"}, names)
}

func TestPasswordForgotCommand_RequiresEmailArg(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"password", "forgot"})

	require.Error(t, cmd.Execute())
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "dev (commit: unknown, built: unknown)",
		formatVersion("dev", "unknown", "unknown"))
	assert.Equal(t, "1.2.0 (commit: abc123, built: 2026-08-28)",
		formatVersion("1.2.0", "abc123", "2026-08-28"))
}

func TestRun_Success(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"streamside", "--help"}

	assert.Equal(t, 0, run())
}

func TestRun_Error(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"streamside", "nonexistent-command"}

	assert.Equal(t, 1, run())
}
