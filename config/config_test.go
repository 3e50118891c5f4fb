package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":4433", cfg.WSListenAddr)
	assert.Equal(t, "/", cfg.WSPath)
	assert.Equal(t, ":8080", cfg.APIListenAddr)
	assert.True(t, cfg.AllowVersionCmd)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ws_listen_addr: ":9000"
ws_path: "/signal"
allow_version_cmd: false
log_level: warn
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.WSListenAddr)
	assert.Equal(t, "/signal", cfg.WSPath)
	assert.Equal(t, ":8080", cfg.APIListenAddr, "unset keys keep defaults")
	assert.False(t, cfg.AllowVersionCmd)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
