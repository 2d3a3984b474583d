// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

// Package config loads runtime configuration. Precedence, lowest to
// highest: built-in defaults, the YAML config file, command-line flags.
package config

import (
	"errors"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/streamside/streamside/internal/xdg"
)

// Config is the full runtime configuration.
type Config struct {
	APIBaseURL      string        `koanf:"api_base_url"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	LogLevel        string        `koanf:"log_level"`
	LogFormat       string        `koanf:"log_format"`
	StateDir        string        `koanf:"state_dir"`
	ShellAddr       string        `koanf:"shell_addr"`
	ProtectedRoutes []string      `koanf:"protected_routes"`
	GuestRoutes     []string      `koanf:"guest_routes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBaseURL:     "http://localhost:8000/api/v1",
		RequestTimeout: 15 * time.Second,
		LogLevel:       "info",
		LogFormat:      "text",
		StateDir:       xdg.StateDir(),
		ShellAddr:      "localhost:8080",
		ProtectedRoutes: []string{
			"/account/**",
			"/favorites",
			"/watchlist",
			"/watch/*",
		},
		GuestRoutes: []string{
			"/login",
			"/register",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigDir(), "config.yaml")
}

// Load builds the configuration from the file at path layered with the
// given flags. A missing file is fine; defaults and flags still apply.
// Flags that were not set on the command line never shadow file values.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		err := k.Load(file.Provider(path), yaml.Parser())
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, oops.Code("CONFIG_PARSE").With("path", path).Wrap(err)
		}
	}

	if flags != nil {
		// Flag names use dashes; config keys use underscores.
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return cfg, oops.Code("CONFIG_PARSE").Wrap(err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, oops.Code("CONFIG_PARSE").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no component can run with.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return oops.Code("CONFIG_INVALID").
			With("api_base_url", c.APIBaseURL).
			Errorf("api_base_url must be an absolute http(s) URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return oops.Code("CONFIG_INVALID").
			With("api_base_url", c.APIBaseURL).
			Errorf("api_base_url scheme must be http or https")
	}
	if c.RequestTimeout <= 0 {
		return oops.Code("CONFIG_INVALID").
			With("request_timeout", c.RequestTimeout.String()).
			Errorf("request_timeout must be positive")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return oops.Code("CONFIG_INVALID").
			With("log_format", c.LogFormat).
			Errorf("log_format must be text or json")
	}
	if c.StateDir == "" {
		return oops.Code("CONFIG_INVALID").Errorf("state_dir must not be empty")
	}
	return nil
}
