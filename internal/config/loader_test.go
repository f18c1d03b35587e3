package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8765", cfg.Host.URL)
	assert.Equal(t, 5*time.Second, cfg.UI.NotificationTTL)
	assert.True(t, cfg.UI.Mouse)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cutout"), 0o755))
	file := `
[host]
url = "http://file:1"
timeout = "10s"

[ui]
notification_ttl = "3s"
mouse = false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cutout", "config.toml"), []byte(file), 0o644))
	t.Setenv("CUTOUT_HOST_TIMEOUT", "12s")
	t.Setenv("CUTOUT_UI_NOTIFICATION_TTL", "4s")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("host", "", "")
	require.NoError(t, flags.Parse([]string{"--host", "http://flag:2"}))

	loader := NewLoader()
	require.NoError(t, loader.BindFlag("host.url", flags.Lookup("host")))
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://flag:2", cfg.Host.URL)
	assert.Equal(t, 12*time.Second, cfg.Host.Timeout)
	assert.Equal(t, 4*time.Second, cfg.UI.NotificationTTL)
	assert.False(t, cfg.UI.Mouse)
	assert.Equal(t, filepath.Join(dir, "cutout", "config.toml"), loader.ConfigFileUsed())
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)
	loader := NewLoader()
	loader.SetConfigFile(filepath.Join(dir, "absent.toml"))

	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config file")
}

func TestLoadExpandsTilde(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CUTOUT_EXPORT_DIR", "~/exports")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exports"), cfg.Export.Dir)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Host.URL = " "
	cfg.UI.NotificationTTL = 0
	cfg.Logging.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host.url")
	assert.Contains(t, err.Error(), "ui.notification_ttl")
	assert.Contains(t, err.Error(), "logging.format")
}
