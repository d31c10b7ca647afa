// Package config provides configuration loading and management for Spectral.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete Spectral configuration
type Config struct {
	Frame     FrameConfig     `yaml:"frame"`
	Tolerance ToleranceConfig `yaml:"tolerance"`
	Geodesic  GeodesicConfig  `yaml:"geodesic"`
	History   HistoryConfig   `yaml:"history"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// FrameConfig locates the reference record files
type FrameConfig struct {
	// Dir is the directory holding the record files
	Dir string `yaml:"dir"`
	// Patterns are doublestar globs applied under Dir (default **/*.yaml, **/*.yml)
	Patterns []string `yaml:"patterns"`
}

// ToleranceConfig holds the epsilon knobs for derived-float checks.
// Exact-literal checks (origin value, pole values, pair span) have no knob:
// they compare hand-authored constants and any deviation is a data error.
type ToleranceConfig struct {
	// OriginDistance is the absolute tolerance on the origin-to-pole
	// Euclidean distance (default 0.001)
	OriginDistance float64 `yaml:"origin_distance"`
	// AxisDrift is how far a nominally fixed axis may wander along a path
	// (default 0.01)
	AxisDrift float64 `yaml:"axis_drift"`
}

// GeodesicConfig bounds legal movement along declared paths
type GeodesicConfig struct {
	// MaxStep is the largest Euclidean distance one step may span (default 0.25)
	MaxStep float64 `yaml:"max_step"`
	// ConservationCeiling caps total path energy (default 4.0)
	ConservationCeiling float64 `yaml:"conservation_ceiling"`
	// SpiralThreshold is the value a spiral excursion must cross (default 0.5)
	SpiralThreshold float64 `yaml:"spiral_threshold"`
	// ShadowBound is how far a reversible shadow path may end from its
	// start (default 0.15)
	ShadowBound float64 `yaml:"shadow_bound"`
	// Activation maps axis identifiers to minimum first-step magnitudes
	Activation map[string]float64 `yaml:"activation"`
}

// HistoryConfig configures the validation-run history store
type HistoryConfig struct {
	// Enabled turns run recording on
	Enabled bool `yaml:"enabled"`
	// Path is the SQLite database file (default .spectral/history.db)
	Path string `yaml:"path"`
}

// MetricsConfig configures the Prometheus endpoint served in watch mode
type MetricsConfig struct {
	// Addr is the listen address (empty = no metrics endpoint)
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Frame: FrameConfig{
			Dir:      "frame",
			Patterns: []string{"**/*.yaml", "**/*.yml"},
		},
		Tolerance: ToleranceConfig{
			OriginDistance: 0.001,
			AxisDrift:      0.01,
		},
		Geodesic: GeodesicConfig{
			MaxStep:             0.25,
			ConservationCeiling: 4.0,
			SpiralThreshold:     0.5,
			ShadowBound:         0.15,
			Activation:          nil,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    filepath.Join(".spectral", "history.db"),
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Frame.Dir == "" {
		return fmt.Errorf("frame.dir is required")
	}
	if c.Tolerance.OriginDistance <= 0 {
		return fmt.Errorf("tolerance.origin_distance must be positive")
	}
	if c.Tolerance.AxisDrift <= 0 {
		return fmt.Errorf("tolerance.axis_drift must be positive")
	}
	if c.Geodesic.MaxStep <= 0 || c.Geodesic.MaxStep > 1 {
		return fmt.Errorf("geodesic.max_step must be in (0, 1]")
	}
	if c.Geodesic.ConservationCeiling <= 0 {
		return fmt.Errorf("geodesic.conservation_ceiling must be positive")
	}
	if c.Geodesic.SpiralThreshold < 0 || c.Geodesic.SpiralThreshold > 1 {
		return fmt.Errorf("geodesic.spiral_threshold must be in [0, 1]")
	}
	if c.Geodesic.ShadowBound <= 0 || c.Geodesic.ShadowBound > 1 {
		return fmt.Errorf("geodesic.shadow_bound must be in (0, 1]")
	}
	for id, min := range c.Geodesic.Activation {
		if min <= 0 || min > 1 {
			return fmt.Errorf("geodesic.activation[%s] must be in (0, 1]", id)
		}
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Frame
	if other.Frame.Dir != "" {
		c.Frame.Dir = other.Frame.Dir
	}
	if len(other.Frame.Patterns) > 0 {
		c.Frame.Patterns = other.Frame.Patterns
	}

	// Tolerance
	if other.Tolerance.OriginDistance != 0 {
		c.Tolerance.OriginDistance = other.Tolerance.OriginDistance
	}
	if other.Tolerance.AxisDrift != 0 {
		c.Tolerance.AxisDrift = other.Tolerance.AxisDrift
	}

	// Geodesic
	if other.Geodesic.MaxStep != 0 {
		c.Geodesic.MaxStep = other.Geodesic.MaxStep
	}
	if other.Geodesic.ConservationCeiling != 0 {
		c.Geodesic.ConservationCeiling = other.Geodesic.ConservationCeiling
	}
	if other.Geodesic.SpiralThreshold != 0 {
		c.Geodesic.SpiralThreshold = other.Geodesic.SpiralThreshold
	}
	if other.Geodesic.ShadowBound != 0 {
		c.Geodesic.ShadowBound = other.Geodesic.ShadowBound
	}
	if len(other.Geodesic.Activation) > 0 {
		c.Geodesic.Activation = other.Geodesic.Activation
	}

	// History
	if other.History.Enabled {
		c.History.Enabled = true
	}
	if other.History.Path != "" {
		c.History.Path = other.History.Path
	}

	// Metrics
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
}
