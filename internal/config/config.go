// Package config holds the tunable parameters of the game.
// Values come from embedded defaults, optionally overlaid by a user YAML file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// APIKeyEnv names the environment variable consulted when weather.api_key is empty.
const APIKeyEnv = "OPENWEATHER_API_KEY"

// Locator modes for WeatherConfig.Locate.
const (
	LocateStatic = "static"
	LocateIP     = "ip"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds every game parameter.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	World     WorldConfig     `yaml:"world"`
	Character CharacterConfig `yaml:"character"`
	Enemy     EntityConfig    `yaml:"enemy"`
	Obstacle  EntityConfig    `yaml:"obstacle"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Weather   WeatherConfig   `yaml:"weather"`
	Assets    AssetsConfig    `yaml:"assets"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Title        string `yaml:"title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`           // Simulation ticks per second
	RunUnfocused bool   `yaml:"run_unfocused"` // Keep ticking while the window is in the background
}

// WorldConfig holds the scrolling ground parameters.
type WorldConfig struct {
	GroundHeight float64 `yaml:"ground_height"`
	ScrollSpeed  float64 `yaml:"scroll_speed"` // Pixels per tick
}

// CharacterConfig describes the player character.
type CharacterConfig struct {
	StartX     float64 `yaml:"start_x"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Speed      float64 `yaml:"speed"`       // Pixels per tick while a direction key is held
	RestOffset float64 `yaml:"rest_offset"` // Y = viewport height - rest_offset
}

// EntityConfig describes one kind of transient entity.
type EntityConfig struct {
	Width       float64       `yaml:"width"`
	Height      float64       `yaml:"height"`
	Lift        float64       `yaml:"lift"`         // Distance above the ground line
	BaseSpeed   float64       `yaml:"base_speed"`   // Pixels per tick
	SpeedJitter float64       `yaml:"speed_jitter"` // Uniform random addend in [0, jitter)
	Interval    time.Duration `yaml:"interval"`     // Spawn cadence on the simulation clock
}

// SpawnConfig bounds the live entity collections.
type SpawnConfig struct {
	MaxLive int `yaml:"max_live"` // Per kind; 0 disables the cap
}

// WeatherConfig configures the weather lookup.
type WeatherConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Endpoint   string        `yaml:"endpoint"`
	APIKey     string        `yaml:"api_key"`
	Units      string        `yaml:"units"`
	Locate     string        `yaml:"locate"` // "static" or "ip"
	IPEndpoint string        `yaml:"ip_endpoint"`
	DefaultLat float64       `yaml:"default_lat"`
	DefaultLon float64       `yaml:"default_lon"`
	Timeout    time.Duration `yaml:"timeout"`
}

// AssetsConfig lists sprite locations (file paths or http(s) URLs).
type AssetsConfig struct {
	Human    string `yaml:"human"`
	Enemy    string `yaml:"enemy"`
	Obstacle string `yaml:"obstacle"`
}

// RenderConfig toggles overlays.
type RenderConfig struct {
	ShowPlace    bool `yaml:"show_place"`
	DebugOverlay bool `yaml:"debug_overlay"`
}

// TelemetryConfig controls sampling.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	TickDuration time.Duration
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if cfg.Weather.APIKey == "" {
		cfg.Weather.APIKey = os.Getenv(APIKeyEnv)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.Window.TPS)
	case c.World.ScrollSpeed <= 0:
		return fmt.Errorf("%w: scroll_speed %v", ErrInvalid, c.World.ScrollSpeed)
	case c.Character.Width <= 0 || c.Character.Height <= 0:
		return fmt.Errorf("%w: character size", ErrInvalid)
	case c.Spawn.MaxLive < 0:
		return fmt.Errorf("%w: max_live %d", ErrInvalid, c.Spawn.MaxLive)
	case c.Telemetry.WindowTicks <= 0:
		return fmt.Errorf("%w: window_ticks %d", ErrInvalid, c.Telemetry.WindowTicks)
	}

	for name, e := range map[string]EntityConfig{"enemy": c.Enemy, "obstacle": c.Obstacle} {
		if e.Width <= 0 || e.Height <= 0 {
			return fmt.Errorf("%w: %s size", ErrInvalid, name)
		}
		if e.Interval <= 0 {
			return fmt.Errorf("%w: %s interval %s", ErrInvalid, name, e.Interval)
		}
		if e.SpeedJitter < 0 {
			return fmt.Errorf("%w: %s speed_jitter %v", ErrInvalid, name, e.SpeedJitter)
		}
	}

	if c.Weather.Locate != LocateStatic && c.Weather.Locate != LocateIP {
		return fmt.Errorf("%w: weather.locate %q", ErrInvalid, c.Weather.Locate)
	}

	return nil
}

func (c *Config) computeDerived() {
	c.Derived.TickDuration = time.Second / time.Duration(c.Window.TPS)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
