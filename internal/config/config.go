// Package config loads server configuration from an optional YAML file
// layered under PEDALPATH_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PEDALPATH_"

// Config is the complete server configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Planner   PlannerConfig   `koanf:"planner"`
	Providers ProvidersConfig `koanf:"providers"`
	Elevation ElevationConfig `koanf:"elevation"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port       int `koanf:"port"`
	StoreLimit int `koanf:"store_limit"`
}

// PlannerConfig holds the LLM waypoint planner settings. An empty API key
// disables planning; routes then run direct point-to-point.
type PlannerConfig struct {
	Enabled bool          `koanf:"enabled"`
	APIKey  string        `koanf:"api_key"`
	Model   string        `koanf:"model"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// BackendConfig holds one routing backend's endpoint settings.
type BackendConfig struct {
	Enabled bool          `koanf:"enabled"`
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// ProvidersConfig holds the fallback chain's backends in priority order.
type ProvidersConfig struct {
	Valhalla    BackendConfig `koanf:"valhalla"`
	GraphHopper BackendConfig `koanf:"graphhopper"`
	OSRM        BackendConfig `koanf:"osrm"`
}

// ElevationConfig holds the elevation enrichment service settings.
type ElevationConfig struct {
	Enabled bool          `koanf:"enabled"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// Default returns the configuration used when no file or environment
// overrides are present. All public backends are enabled; GraphHopper
// stays off until a key is configured.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:       8080,
			StoreLimit: 256,
		},
		Planner: PlannerConfig{
			Enabled: true,
			Timeout: 30 * time.Second,
		},
		Providers: ProvidersConfig{
			Valhalla:    BackendConfig{Enabled: true, Timeout: 20 * time.Second},
			GraphHopper: BackendConfig{Timeout: 15 * time.Second},
			OSRM:        BackendConfig{Enabled: true, Timeout: 15 * time.Second},
		},
		Elevation: ElevationConfig{
			Enabled: true,
			Timeout: 15 * time.Second,
		},
	}
}

// Load reads configuration in layers: defaults, then the YAML file at
// path (if non-empty), then PEDALPATH_ environment variables where
// double underscores separate nesting (PEDALPATH_PLANNER__API_KEY maps
// to planner.api_key).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(key string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, envPrefix)), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
