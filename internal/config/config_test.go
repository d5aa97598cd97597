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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 256, cfg.Server.StoreLimit)
	assert.True(t, cfg.Planner.Enabled)
	assert.True(t, cfg.Providers.Valhalla.Enabled)
	assert.False(t, cfg.Providers.GraphHopper.Enabled)
	assert.True(t, cfg.Providers.OSRM.Enabled)
	assert.True(t, cfg.Elevation.Enabled)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
planner:
  api_key: sk-test
  model: gpt-4.1
  timeout: 45s
providers:
  graphhopper:
    enabled: true
    api_key: gh-test
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sk-test", cfg.Planner.APIKey)
	assert.Equal(t, 45*time.Second, cfg.Planner.Timeout)
	assert.True(t, cfg.Providers.GraphHopper.Enabled)
	assert.Equal(t, "gh-test", cfg.Providers.GraphHopper.APIKey)

	// Untouched sections keep their defaults.
	assert.True(t, cfg.Providers.Valhalla.Enabled)
	assert.Equal(t, 256, cfg.Server.StoreLimit)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))

	t.Setenv("PEDALPATH_SERVER__PORT", "7070")
	t.Setenv("PEDALPATH_PLANNER__API_KEY", "sk-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "sk-env", cfg.Planner.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	assert.Error(t, err)
}
