// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for askvision.
//
// Supports both TOML and JSON configuration formats, with sensible defaults
// and environment variable overrides.
//
// Configuration file locations (in order of precedence):
//   - ~/.askvision/config.toml
//   - ~/.askvision/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config represents the complete askvision configuration.
type Config struct {
	// ServerURL is the Ollama base URL.
	ServerURL string `toml:"server_url" json:"server_url"`

	// Model is the chat model to query.
	Model string `toml:"model" json:"model"`

	// TimeoutSecs is the request timeout in seconds. Vision models routinely
	// take over a minute on CPU-only machines.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`

	// ExportDir is where exported answers are written.
	ExportDir string `toml:"export_dir" json:"export_dir"`

	// OpenAfterExport opens the exported file in the default application.
	OpenAfterExport bool `toml:"open_after_export" json:"open_after_export"`

	// Theme selects the UI theme: "dark", "light", or "auto".
	Theme string `toml:"theme" json:"theme"`

	// Prompts holds extra pre-made prompt templates overlaid on the
	// built-ins, keyed by kind.
	Prompts map[string]string `toml:"prompts" json:"prompts"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		// Explicit IPv4 instead of localhost to avoid IPv6 resolution issues
		// on Windows.
		ServerURL:       "http://127.0.0.1:11434",
		Model:           "llama3.2-vision",
		TimeoutSecs:     120,
		ExportDir:       "./exports",
		OpenAfterExport: false,
		Theme:           "auto",
		Prompts:         map[string]string{},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the askvision configuration directory (~/.askvision).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".askvision"), nil
}

// PathTOML returns the TOML config file path.
func PathTOML() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// PathJSON returns the JSON config file path.
func PathJSON() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration, trying TOML first, then JSON, then falling
// back to defaults. Environment overrides apply in every case.
func Load() (*Config, error) {
	cfg := Default()

	if path, err := PathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := loadTOML(cfg, path); err != nil {
				return nil, err
			}
			return finish(cfg)
		}
	}

	if path, err := PathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := loadJSON(cfg, path); err != nil {
				return nil, err
			}
			return finish(cfg)
		}
	}

	return finish(cfg)
}

// LoadFromPath reads a specific config file, TOML or JSON by extension.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	var err error
	if filepath.Ext(path) == ".json" {
		err = loadJSON(cfg, path)
	} else {
		err = loadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to load TOML config: %w", err)
	}
	return nil
}

func loadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse JSON config: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies ASKVISION_* environment variables on top of the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if url := os.Getenv("ASKVISION_SERVER_URL"); url != "" {
		c.ServerURL = url
	}
	if model := os.Getenv("ASKVISION_MODEL"); model != "" {
		c.Model = model
	}
	if secs := os.Getenv("ASKVISION_TIMEOUT_SECS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil && n > 0 {
			c.TimeoutSecs = n
		}
	}
	if dir := os.Getenv("ASKVISION_EXPORT_DIR"); dir != "" {
		c.ExportDir = dir
	}
	if theme := os.Getenv("ASKVISION_THEME"); theme != "" {
		c.Theme = theme
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that cannot work, repairing
// soft problems in place.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.ServerURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("server_url %q is not a valid URL", c.ServerURL)
	}

	if c.Model == "" {
		c.Model = Default().Model
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = Default().TimeoutSecs
	}
	if c.ExportDir == "" {
		c.ExportDir = Default().ExportDir
	}

	switch c.Theme {
	case "dark", "light", "auto":
	case "":
		c.Theme = "auto"
	default:
		return fmt.Errorf("theme %q is not one of dark, light, auto", c.Theme)
	}

	return nil
}
