// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/driftfield/field"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"`
	HighDPI   bool `yaml:"high_dpi"`
	Resizable bool `yaml:"resizable"`
	// Background is drawn behind the field as "#rrggbb".
	Background string `yaml:"background"`
	// LayerOpacity fades the whole field layer over the background.
	LayerOpacity float64 `yaml:"layer_opacity"`
}

// FieldConfig holds particle field options.
type FieldConfig struct {
	BaseCount  int     `yaml:"base_count"` // particles at 1440x900
	Opacity    float64 `yaml:"opacity"`    // 0-1
	Link       bool    `yaml:"link"`
	Broadphase string  `yaml:"broadphase"` // "pairwise" or "grid"
}

// TelemetryConfig holds perf and stats window sizes, in frames.
type TelemetryConfig struct {
	PerfWindow  int `yaml:"perf_window"`
	StatsWindow int `yaml:"stats_window"`
	LogInterval int `yaml:"log_interval"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Background color.RGBA
	LayerAlpha uint8
	Broadphase field.Broadphase
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
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
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Field.BaseCount < 0 {
		return fmt.Errorf("field.base_count must not be negative, got %d", c.Field.BaseCount)
	}
	if _, err := parseHexColor(c.Screen.Background); err != nil {
		return fmt.Errorf("screen.background: %w", err)
	}
	switch c.Field.Broadphase {
	case "", "pairwise", "grid":
	default:
		return fmt.Errorf("field.broadphase must be pairwise or grid, got %q", c.Field.Broadphase)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Field.Opacity = clamp01(c.Field.Opacity)
	c.Screen.LayerOpacity = clamp01(c.Screen.LayerOpacity)

	c.Derived.Background, _ = parseHexColor(c.Screen.Background)
	c.Derived.LayerAlpha = uint8(c.Screen.LayerOpacity*255 + 0.5)
	c.Derived.Broadphase = field.ParseBroadphase(c.Field.Broadphase)

	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}
	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 600
	}
}

// FieldOptions maps the field section and its derived broad phase onto
// engine options.
func (c *Config) FieldOptions() field.Options {
	opts := field.DefaultOptions()
	opts.BaseCount = c.Field.BaseCount
	opts.Opacity = clamp01(c.Field.Opacity)
	opts.Link = c.Field.Link
	opts.Broadphase = c.Derived.Broadphase
	return opts
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

func parseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 255}
	if s == "" {
		return c, nil
	}
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid colour %q", s)
	}
	n, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	if err != nil || n != 3 {
		return c, fmt.Errorf("invalid colour %q", s)
	}
	return c, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
