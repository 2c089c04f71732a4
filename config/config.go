// Package config provides configuration loading and access for the maze.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all maze configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Maze       MazeConfig       `yaml:"maze"`
	Walker     WalkerConfig     `yaml:"walker"`
	Walls      WallsConfig      `yaml:"walls"`
	Visibility VisibilityConfig `yaml:"visibility"`
	Observer   ObserverConfig   `yaml:"observer"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
// The viewport size also fixes the maze cell size at setup.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// MazeConfig holds the grid shape and corridor geometry.
type MazeConfig struct {
	Rows          int     `yaml:"rows"`
	Cols          int     `yaml:"cols"`
	PathThickness float64 `yaml:"path_thickness"` // Corridor width as a fraction of cell size
	ViewDistance  float64 `yaml:"view_distance"`  // Observer view distance as a multiple of cell size
	Validate      bool    `yaml:"validate"`       // Check tree invariants every tick (debug)
}

// WalkerConfig holds root walk parameters.
type WalkerConfig struct {
	Interval  float64 `yaml:"interval"`  // Seconds between root relocations
	Exclusion string  `yaml:"exclusion"` // "none" or "view_distance"
}

// WallsConfig holds wall synchronization parameters.
type WallsConfig struct {
	SyncInterval float64 `yaml:"sync_interval"` // Seconds between full wall rebuilds
}

// VisibilityConfig holds ray-cast parameters.
type VisibilityConfig struct {
	NumRays      int     `yaml:"num_rays"`
	RevealRadius float64 `yaml:"reveal_radius"` // Fog reveal radius as a fraction of cell size
}

// ObserverConfig holds observer movement parameters.
type ObserverConfig struct {
	Radius         float64 `yaml:"radius"`          // Body radius as a fraction of cell size
	Speed          float64 `yaml:"speed"`           // World units per second
	SprintFactor   float64 `yaml:"sprint_factor"`   // Speed multiplier while sprinting
	SprintDrain    float64 `yaml:"sprint_drain"`    // Stamina lost per second of sprint (0-1 scale)
	SprintRecovery float64 `yaml:"sprint_recovery"` // Stamina regained per second once recovering
	RecoveryDelay  float64 `yaml:"recovery_delay"`  // Seconds without sprint before recovery starts
	RangeCells     float64 `yaml:"range_cells"`     // Range node radius in cells
}

// PhysicsConfig holds fixed-step simulation parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // Seconds per headless tick
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Physics.DT as float32
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
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

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate reports every out-of-range option at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.Maze.Rows <= 0 || c.Maze.Cols <= 0 {
		errs = append(errs, fmt.Errorf("maze shape must be positive, got %dx%d", c.Maze.Rows, c.Maze.Cols))
	}
	if c.Maze.PathThickness <= 0 || c.Maze.PathThickness >= 1 {
		errs = append(errs, fmt.Errorf("maze.path_thickness must be in (0, 1), got %g", c.Maze.PathThickness))
	}
	if c.Maze.ViewDistance <= 0 {
		errs = append(errs, fmt.Errorf("maze.view_distance must be positive, got %g", c.Maze.ViewDistance))
	}
	if c.Walker.Interval <= 0 {
		errs = append(errs, fmt.Errorf("walker.interval must be positive, got %g", c.Walker.Interval))
	}
	switch c.Walker.Exclusion {
	case "", "none", "view_distance":
	default:
		errs = append(errs, fmt.Errorf("walker.exclusion must be none or view_distance, got %q", c.Walker.Exclusion))
	}
	if c.Walls.SyncInterval <= 0 {
		errs = append(errs, fmt.Errorf("walls.sync_interval must be positive, got %g", c.Walls.SyncInterval))
	}
	if c.Visibility.NumRays <= 0 {
		errs = append(errs, fmt.Errorf("visibility.num_rays must be positive, got %d", c.Visibility.NumRays))
	}
	if c.Physics.DT <= 0 {
		errs = append(errs, fmt.Errorf("physics.dt must be positive, got %g", c.Physics.DT))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	if c.Walker.Exclusion == "" {
		c.Walker.Exclusion = "none"
	}
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
