package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  address: \":9999\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 7, cfg.Game.HandSize)
	assert.Equal(t, 60*time.Second, cfg.Game.TurnTimeout)
	assert.Equal(t, time.Second, cfg.Game.TickInterval)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: console
game:
  hand_size: 5
  nope_window: 3s
database:
  url: postgres://localhost/eggsplode
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 5, cfg.Game.HandSize)
	assert.Equal(t, 3*time.Second, cfg.Game.NopeWindow)
	assert.Equal(t, "postgres://localhost/eggsplode", cfg.Database.URL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
