// Package config provides configuration loading and access for the kinematics demo.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Steering  SteeringConfig  `yaml:"steering"`
	Bodies    []BodyConfig    `yaml:"bodies"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds simulation world dimensions.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	DT          float64 `yaml:"dt"`
	Friction    float64 `yaml:"friction"`    // Velocity multiplier applied every tick
	Restitution float64 `yaml:"restitution"` // Fraction of speed kept after a bounce
	Collide     bool    `yaml:"collide"`     // Resolve body-body overlaps
}

// SteeringConfig holds the shared steering defaults.
type SteeringConfig struct {
	MaxSpeed       float64 `yaml:"max_speed"`
	Responsiveness float64 `yaml:"responsiveness"` // Lerp rate toward desired velocity, per second
	ArriveRadius   float64 `yaml:"arrive_radius"`  // Snap to target inside this distance
}

// PointConfig is a coordinate pair in a config file.
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// XY returns the coordinates, so PointConfig can be passed straight to vector2 functions.
func (p PointConfig) XY() (float64, float64) {
	return p.X, p.Y
}

// BodyConfig describes one simulated body.
type BodyConfig struct {
	Name     string      `yaml:"name"`
	Position PointConfig `yaml:"position"`
	Velocity PointConfig `yaml:"velocity"`
	Target   PointConfig `yaml:"target"`
	Radius   float64     `yaml:"radius"`
	MaxSpeed float64     `yaml:"max_speed"` // 0 = steering.max_speed
	Orbit    bool        `yaml:"orbit"`     // Circle the target instead of arriving
}

// TelemetryConfig holds output settings.
type TelemetryConfig struct {
	SampleEvery int     `yaml:"sample_every"` // Ticks between trajectory samples
	StatsWindow float64 `yaml:"stats_window"` // Seconds per stats window
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	StatsWindowTicks int            // Telemetry.StatsWindow / Physics.DT
	CollisionCell    float64        // Spatial grid cell size, largest body diameter
	BodyIndex        map[string]int // name -> index in Bodies
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	seen := make(map[string]bool, len(c.Bodies))
	for _, b := range c.Bodies {
		if b.Name == "" {
			continue
		}
		if seen[b.Name] {
			return fmt.Errorf("duplicate body name %q", b.Name)
		}
		seen[b.Name] = true
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Telemetry.SampleEvery < 1 {
		c.Telemetry.SampleEvery = 1
	}
	c.Derived.StatsWindowTicks = int(c.Telemetry.StatsWindow / c.Physics.DT)
	if c.Derived.StatsWindowTicks < 1 {
		c.Derived.StatsWindowTicks = 1
	}

	// Synthesize a default scene if none specified
	if len(c.Bodies) == 0 {
		cx, cy := c.World.Width/2, c.World.Height/2
		c.Bodies = []BodyConfig{
			{
				Name:     "seeker",
				Position: PointConfig{X: c.World.Width * 0.1, Y: c.World.Height * 0.1},
				Target:   PointConfig{X: cx, Y: cy},
			},
			{
				Name:     "orbiter",
				Position: PointConfig{X: cx, Y: c.World.Height * 0.9},
				Velocity: PointConfig{X: c.Steering.MaxSpeed * 0.5},
				Target:   PointConfig{X: cx, Y: cy},
				Orbit:    true,
			},
		}
	}

	// Generated names skip any name already given explicitly.
	taken := make(map[string]bool, len(c.Bodies))
	for _, b := range c.Bodies {
		if b.Name != "" {
			taken[b.Name] = true
		}
	}

	// Apply defaults to bodies that don't specify all fields
	for i := range c.Bodies {
		b := &c.Bodies[i]
		if b.Name == "" {
			b.Name = fmt.Sprintf("body-%d", i)
			for n := 1; taken[b.Name]; n++ {
				b.Name = fmt.Sprintf("body-%d.%d", i, n)
			}
			taken[b.Name] = true
		}
		if b.Radius == 0 {
			b.Radius = 4
		}
		if b.MaxSpeed == 0 {
			b.MaxSpeed = c.Steering.MaxSpeed
		}
	}

	c.Derived.CollisionCell = 1
	for _, b := range c.Bodies {
		c.Derived.CollisionCell = max(c.Derived.CollisionCell, 2*b.Radius)
	}

	c.Derived.BodyIndex = make(map[string]int, len(c.Bodies))
	for i, b := range c.Bodies {
		c.Derived.BodyIndex[b.Name] = i
	}
}

// Seekers returns the number of bodies that try to arrive at their target.
func (c *Config) Seekers() int {
	n := 0
	for _, b := range c.Bodies {
		if !b.Orbit {
			n++
		}
	}
	return n
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
