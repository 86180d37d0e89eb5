package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultDataPath(), cfg.Storage.Path)
	assert.Equal(t, "system", cfg.Display.Theme)
	assert.Equal(t, "", cfg.Display.Language)
	assert.True(t, cfg.Reminders.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  path: /tmp/h.db
display:
  language: en
  theme: dark
reminders:
  enabled: false
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/h.db", cfg.Storage.Path)
	assert.Equal(t, "en", cfg.Display.Language)
	assert.Equal(t, "dark", cfg.Display.Theme)
	assert.False(t, cfg.Reminders.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("HABITS_STORAGE_PATH", "/var/tmp/env.db")
	t.Setenv("HABITS_DISPLAY_LANGUAGE", "tr")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp/env.db", cfg.Storage.Path)
	assert.Equal(t, "tr", cfg.Display.Language)
}

func TestLoadConfigRejectsUnknownTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  theme: sepia\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sepia")
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	in := DefaultAppConfig()
	in.Storage.Path = "/data/habits.db"
	in.Display.Language = "en"
	in.Display.Theme = "light"

	require.NoError(t, SaveConfig(path, in))

	out, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
