package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 3*time.Second, cfg.Toast.TTL)
	assert.Equal(t, "light", cfg.Theme.Default)
	assert.Equal(t, StoreMemory, cfg.Theme.Store)
	assert.Equal(t, "dashboard", cfg.Events.Exchange)
	assert.Equal(t, "@every 5m", cfg.Release.Schedule)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yml := `
server:
  port: 9000
toast:
  ttl: 5s
theme:
  default: dark
  store: redis
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("LOGGER_LEVEL", "debug")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "env wins over file")
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 5*time.Second, cfg.Toast.TTL)
	assert.Equal(t, "dark", cfg.Theme.Default)
	assert.Equal(t, StoreRedis, cfg.Theme.Store)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("THEME_STORE", "sqlite")
	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, "theme.store")
}

func TestLoad_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("server: [: :"), 0o600))

	_, err := Load(dir)
	assert.ErrorContains(t, err, "read config")
}

func TestValidate(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	bad := *cfg
	bad.Theme.Default = "sepia"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Server.Port = 0
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Toast.TTL = 0
	assert.Error(t, bad.Validate())
}
