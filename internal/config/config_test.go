package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DBPath(), cfg.DBPath)
	assert.Equal(t, DefaultStateKey, cfg.StateKey)
	assert.Empty(t, cfg.Domains)
	assert.False(t, cfg.Scores.ClampManual)
	assert.True(t, cfg.Seed.Auto)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, 80, cfg.Output.Width)
	assert.Empty(t, cfg.File)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
db_path: ~/wheel/state.db
state_key: custom
scores:
  clamp_manual: true
seed:
  auto: false
  files:
    - ~/lists/extra.txt
log:
  level: debug
  format: json
output:
  color: false
  width: 100
domains:
  - name: Body
    subdomains: [Strength, Sleep]
  - name: Mind
    subdomains: [Reading]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "wheel/state.db"), cfg.DBPath)
	assert.Equal(t, "custom", cfg.StateKey)
	assert.True(t, cfg.Scores.ClampManual)
	assert.False(t, cfg.Seed.Auto)
	assert.Equal(t, []string{filepath.Join(home, "lists/extra.txt")}, cfg.Seed.Files)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Output.Color)
	assert.Equal(t, 100, cfg.Output.Width)
	require.Len(t, cfg.Domains, 2)
	assert.Equal(t, DomainConfig{Name: "Body", Subdomains: []string{"Strength", "Sleep"}}, cfg.Domains[0])
	assert.Equal(t, path, cfg.File)
}

func TestLoadRejectsUnnamedDomain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("domains:\n  - subdomains: [a]\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domains[0]")
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unclosed\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("LIFEWHEEL_LOG_LEVEL", "error")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x"), expandPath("~/x"))
	assert.Equal(t, "/abs/x", expandPath("/abs/x"))
	assert.Equal(t, "rel", expandPath("rel"))
}
