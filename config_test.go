package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "onebinary.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("Empty Path Returns Defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("Empty File Returns Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, ""))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("Partial Override", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, `
inputs:
  prefix: AcmeIn
duplicate_policy: first-match
entrypoint:
  not_found_code: 7
`))
		require.NoError(t, err)
		assert.Equal(t, "AcmeIn", cfg.Inputs.Prefix)
		assert.Equal(t, "Mist::In", cfg.Inputs.ClassPrefix)
		assert.Equal(t, PolicyFirstMatch, cfg.DuplicatePolicy)
		assert.Equal(t, 7, cfg.Entrypoint.NotFoundCode)
		assert.Equal(t, "MistSession", cfg.Entrypoint.SessionName)
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Unknown Key", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "inptus:\n  prefix: X\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Invalid Policy", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "duplicate_policy: last-wins\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)

		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "duplicate_policy", cfgErr.Field)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"empty prefix", func(c *Config) { c.Inputs.Prefix = "" }, "inputs.prefix"},
		{"empty entry", func(c *Config) { c.Outputs.Entry = "" }, "outputs.entry"},
		{"no json patterns", func(c *Config) { c.JSONPatterns = nil }, "json_patterns"},
		{"blank header pattern", func(c *Config) { c.HeaderPatterns = []string{""} }, "header_patterns[0]"},
		{"overlapping prefixes", func(c *Config) { c.Outputs.Prefix = "MistInX" }, "outputs.prefix"},
		{"shared category", func(c *Config) { c.Outputs.Category = "inputs" }, "outputs.category"},
		{"controller is session", func(c *Config) { c.Entrypoint.SessionName = "MistController" }, "entrypoint.session_name"},
		{"bad pattern", func(c *Config) { c.JSONPatterns = []string{"[*.json"} }, "json_patterns"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestConfigSchema(t *testing.T) {
	data, err := ConfigSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok, "schema has no properties")
	for _, key := range []string{"inputs", "outputs", "json_patterns", "header_patterns", "capabilities", "entrypoint", "duplicate_policy"} {
		assert.Contains(t, props, key)
	}
}
