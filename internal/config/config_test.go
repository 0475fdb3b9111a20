// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://127.0.0.1:11434", cfg.ServerURL)
	assert.Equal(t, "llama3.2-vision", cfg.Model)
	assert.Equal(t, 120, cfg.TimeoutSecs)
	assert.Equal(t, "auto", cfg.Theme)
	assert.NotNil(t, cfg.Prompts)
}

func TestLoadFromPath_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
server_url = "http://10.0.0.5:11434"
model = "llava"
timeout_secs = 45

[prompts]
"eli5" = "Explain like I am five."
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:11434", cfg.ServerURL)
	assert.Equal(t, "llava", cfg.Model)
	assert.Equal(t, 45, cfg.TimeoutSecs)
	assert.Equal(t, "Explain like I am five.", cfg.Prompts["eli5"])
	// Unset fields keep their defaults.
	assert.Equal(t, "./exports", cfg.ExportDir)
}

func TestLoadFromPath_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"model": "llava", "theme": "dark"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "llava", cfg.Model)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("ASKVISION_MODEL", "bakllava")
	t.Setenv("ASKVISION_TIMEOUT_SECS", "300")
	t.Setenv("ASKVISION_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "bakllava", cfg.Model)
	assert.Equal(t, 300, cfg.TimeoutSecs)
	assert.Equal(t, "light", cfg.Theme)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"bad url", func(c *Config) { c.ServerURL = "not a url" }, true},
		{"bad theme", func(c *Config) { c.Theme = "solarized" }, true},
		{"zero timeout is repaired", func(c *Config) { c.TimeoutSecs = 0 }, false},
		{"empty model is repaired", func(c *Config) { c.Model = "" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Positive(t, cfg.TimeoutSecs)
				assert.NotEmpty(t, cfg.Model)
			}
		})
	}
}
