package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/vmath"
	"github.com/san-kum/rigid2d/internal/world"
)

const (
	DefaultDt         = 1.0 / 60.0
	DefaultIterations = 20
	DefaultTicks      = 600
	DefaultGravityY   = -9.81
)

type Config struct {
	Name       string        `yaml:"name"`
	Gravity    Vec           `yaml:"gravity"`
	Dt         float64       `yaml:"dt"`
	Iterations int           `yaml:"iterations"`
	Ticks      int           `yaml:"ticks"`
	Seed       int64         `yaml:"seed"`
	Solver     string        `yaml:"solver,omitempty"`
	View       ViewConfig    `yaml:"view"`
	Bodies     []BodyConfig  `yaml:"bodies"`
	Spawner    SpawnerConfig `yaml:"spawner"`
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec) Vector() vmath.Vector { return vmath.New(v.X, v.Y) }

// ViewConfig is the visible region in world units. Dynamic bodies that fall
// entirely below Bottom are removed.
type ViewConfig struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Top    float64 `yaml:"top"`
}

func (v ViewConfig) Width() float64  { return v.Right - v.Left }
func (v ViewConfig) Height() float64 { return v.Top - v.Bottom }

type BodyConfig struct {
	Shape           string          `yaml:"shape"`
	Radius          float64         `yaml:"radius,omitempty"`
	Width           float64         `yaml:"width,omitempty"`
	Height          float64         `yaml:"height,omitempty"`
	Density         float64         `yaml:"density"`
	Restitution     float64         `yaml:"restitution"`
	Static          bool            `yaml:"static,omitempty"`
	Position        Vec             `yaml:"position"`
	Angle           float64         `yaml:"angle,omitempty"`
	Velocity        Vec             `yaml:"velocity,omitempty"`
	AngularVelocity float64         `yaml:"angular_velocity,omitempty"`
	Friction        *FrictionConfig `yaml:"friction,omitempty"`
}

type FrictionConfig struct {
	Static  float64 `yaml:"static"`
	Dynamic float64 `yaml:"dynamic"`
}

// SpawnerConfig drops random boxes and circles into the scene at a fixed
// tick interval.
type SpawnerConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Interval    int     `yaml:"interval"`
	Max         int     `yaml:"max"`
	MinX        float64 `yaml:"min_x"`
	MaxX        float64 `yaml:"max_x"`
	Y           float64 `yaml:"y"`
	CircleRatio float64 `yaml:"circle_ratio"`
	MinSize     float64 `yaml:"min_size"`
	MaxSize     float64 `yaml:"max_size"`
	MinRadius   float64 `yaml:"min_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	Density     float64 `yaml:"density"`
	Restitution float64 `yaml:"restitution"`
}

// DefaultSpawner mirrors the interactive demo: boxes 2-3m on a side and
// circles of radius 1-1.25m at unit density.
func DefaultSpawner() SpawnerConfig {
	return SpawnerConfig{
		Interval:    30,
		Max:         40,
		MinX:        -10,
		MaxX:        10,
		Y:           15,
		CircleRatio: 0.5,
		MinSize:     2,
		MaxSize:     3,
		MinRadius:   1,
		MaxRadius:   1.25,
		Density:     1,
		Restitution: 0.5,
	}
}

// DefaultConfig drops a unit circle onto a 20m ground slab whose top is y=0.
func DefaultConfig() *Config {
	return &Config{
		Name:       "drop",
		Gravity:    Vec{Y: DefaultGravityY},
		Dt:         DefaultDt,
		Iterations: DefaultIterations,
		Ticks:      DefaultTicks,
		Seed:       1,
		View:       ViewConfig{Left: -16, Right: 16, Bottom: -8, Top: 14},
		Bodies: []BodyConfig{
			{Shape: "box", Width: 20, Height: 2, Density: 1, Restitution: 0.5, Static: true, Position: Vec{Y: -1}},
			{Shape: "circle", Radius: 1, Density: 1, Restitution: 0.5, Position: Vec{Y: 10}},
		},
		Spawner: DefaultSpawner(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Bodies = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so presets can be edited by callers.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = make([]BodyConfig, len(c.Bodies))
	for i, b := range c.Bodies {
		if b.Friction != nil {
			f := *b.Friction
			b.Friction = &f
		}
		out.Bodies[i] = b
	}
	return &out
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	if c.View.Left >= c.View.Right || c.View.Bottom >= c.View.Top {
		return fmt.Errorf("view is empty: %+v", c.View)
	}
	if _, err := world.ParseSolver(c.Solver); err != nil {
		return err
	}

	for i, b := range c.Bodies {
		if _, err := body.ParseShape(b.Shape); err != nil {
			return fmt.Errorf("body %d: %w", i, err)
		}
	}

	if s := c.Spawner; s.Enabled {
		if s.Interval <= 0 {
			return fmt.Errorf("spawner interval must be positive, got %d", s.Interval)
		}
		if s.MinX > s.MaxX || s.MinSize > s.MaxSize || s.MinRadius > s.MaxRadius {
			return fmt.Errorf("spawner ranges must have min <= max")
		}
		if s.CircleRatio < 0 || s.CircleRatio > 1 {
			return fmt.Errorf("spawner circle_ratio must be in [0,1], got %f", s.CircleRatio)
		}
	}
	return nil
}
