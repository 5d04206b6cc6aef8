package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.World.ScrollSpeed)
	assert.Equal(t, 100.0, cfg.World.GroundHeight)
	assert.Equal(t, 5.0, cfg.Character.Speed)
	assert.Equal(t, 150.0, cfg.Character.RestOffset)
	assert.Equal(t, 3*time.Second, cfg.Enemy.Interval)
	assert.Equal(t, 4*time.Second, cfg.Obstacle.Interval)
	assert.Equal(t, "Weather Run", cfg.Window.Title)
	assert.Equal(t, LocateIP, cfg.Weather.Locate)
	assert.InDelta(t, 10.8231, cfg.Weather.DefaultLat, 1e-9)
	assert.InDelta(t, 106.6297, cfg.Weather.DefaultLon, 1e-9)
	assert.Equal(t, time.Second/60, cfg.Derived.TickDuration)
}

func TestLoadOverlay(t *testing.T) {
	path := writeFile(t, `
window:
  tps: 30
enemy:
  interval: 1500ms
weather:
  locate: static
  api_key: from-file
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Window.TPS)
	assert.Equal(t, time.Second/30, cfg.Derived.TickDuration)
	assert.Equal(t, 1500*time.Millisecond, cfg.Enemy.Interval)
	assert.Equal(t, LocateStatic, cfg.Weather.Locate)
	assert.Equal(t, "from-file", cfg.Weather.APIKey)

	// Untouched sections keep their defaults
	assert.Equal(t, 960, cfg.Window.Width)
	assert.Equal(t, 4*time.Second, cfg.Obstacle.Interval)
}

func TestLoadAPIKeyFromEnv(t *testing.T) {
	t.Setenv(APIKeyEnv, "from-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Weather.APIKey)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "window: [not, a, map"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"zero tps", func(c *Config) { c.Window.TPS = 0 }},
		{"no scroll", func(c *Config) { c.World.ScrollSpeed = 0 }},
		{"zero character", func(c *Config) { c.Character.Height = 0 }},
		{"negative cap", func(c *Config) { c.Spawn.MaxLive = -1 }},
		{"zero enemy interval", func(c *Config) { c.Enemy.Interval = 0 }},
		{"negative jitter", func(c *Config) { c.Obstacle.SpeedJitter = -1 }},
		{"unknown locator", func(c *Config) { c.Weather.Locate = "gps" }},
		{"zero telemetry window", func(c *Config) { c.Telemetry.WindowTicks = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestWriteYAMLReloads(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Spawn.MaxLive = 7
	cfg.Enemy.Interval = 2 * time.Second

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.Spawn.MaxLive)
	assert.Equal(t, 2*time.Second, reloaded.Enemy.Interval)
}
