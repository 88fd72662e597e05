package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth     = 800.0
	DefaultHeight    = 600.0
	DefaultDt        = 1.0 / 60
	DefaultMaxDt     = physics.DefaultMaxDt
	DefaultDuration  = 20.0
	DefaultFrameRate = 60

	DefaultMass         = 10.0
	DefaultRadius       = 30.0
	DefaultMassStep     = 5.0
	DefaultRadiusStep   = 2.0
	DefaultMinMass      = 5.0
	DefaultMinRadius    = 10.0
	DefaultVelocityStep = 10.0

	ColorFirst  = "#00ffff"
	ColorSecond = "#ff00ff"
)

type Config struct {
	World     WorldConfig      `yaml:"world"`
	Dt        float64          `yaml:"dt"`
	MaxDt     float64          `yaml:"max_dt"`
	Duration  float64          `yaml:"duration"`
	FrameRate int              `yaml:"frame_rate"`
	Placement PlacementConfig  `yaml:"placement"`
	Particles []ParticleConfig `yaml:"particles"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlacementConfig tunes the interactive placement controls.
type PlacementConfig struct {
	Mass           float64   `yaml:"mass"`
	Radius         float64   `yaml:"radius"`
	MassStep       float64   `yaml:"mass_step"`
	RadiusStep     float64   `yaml:"radius_step"`
	MinMass        float64   `yaml:"min_mass"`
	MinRadius      float64   `yaml:"min_radius"`
	VelocityStep   float64   `yaml:"velocity_step"`
	FirstVelocity  VecConfig `yaml:"first_velocity"`
	SecondVelocity VecConfig `yaml:"second_velocity"`
	FirstColor     string    `yaml:"first_color"`
	SecondColor    string    `yaml:"second_color"`
}

type VecConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VecConfig) Vec() dynamo.Vec { return dynamo.Vec{X: v.X, Y: v.Y} }

type ParticleConfig struct {
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Color  string  `yaml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		World:     WorldConfig{Width: DefaultWidth, Height: DefaultHeight},
		Dt:        DefaultDt,
		MaxDt:     DefaultMaxDt,
		Duration:  DefaultDuration,
		FrameRate: DefaultFrameRate,
		Placement: PlacementConfig{
			Mass:           DefaultMass,
			Radius:         DefaultRadius,
			MassStep:       DefaultMassStep,
			RadiusStep:     DefaultRadiusStep,
			MinMass:        DefaultMinMass,
			MinRadius:      DefaultMinRadius,
			VelocityStep:   DefaultVelocityStep,
			FirstVelocity:  VecConfig{X: 100},
			SecondVelocity: VecConfig{X: -100},
			FirstColor:     ColorFirst,
			SecondColor:    ColorSecond,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Validate checks everything that can be checked without building particles.
func (c *Config) Validate() error {
	if _, err := c.Bounds(); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.MaxDt <= 0 {
		return fmt.Errorf("max_dt must be positive, got %f", c.MaxDt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive, got %d", c.FrameRate)
	}
	p := c.Placement
	if p.MinMass <= 0 || p.MinRadius <= 0 {
		return fmt.Errorf("placement minimums must be positive")
	}
	if p.Mass < p.MinMass || p.Radius < p.MinRadius {
		return fmt.Errorf("placement mass/radius below minimum")
	}
	for i, pc := range c.Particles {
		if _, err := ParseColor(pc.Color); err != nil {
			return fmt.Errorf("particle %d: %w", i, err)
		}
	}
	return nil
}

func (c *Config) Bounds() (dynamo.WorldBounds, error) {
	return dynamo.NewWorldBounds(c.World.Width, c.World.Height)
}

// BuildWorld creates a world holding the configured particles in order.
func (c *Config) BuildWorld() (*physics.World, error) {
	bounds, err := c.Bounds()
	if err != nil {
		return nil, err
	}
	w, err := physics.NewWorld(bounds, c.MaxDt)
	if err != nil {
		return nil, err
	}
	for i, pc := range c.Particles {
		col, err := ParseColor(pc.Color)
		if err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
		pos := dynamo.Vec{X: pc.X, Y: pc.Y}
		vel := dynamo.Vec{X: pc.VX, Y: pc.VY}
		if _, err := w.Spawn(pc.Mass, pc.Radius, pos, vel, col); err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
	}
	return w, nil
}

// ParseColor reads a "#rrggbb" string. An empty string is white.
func ParseColor(hex string) (color.RGBA, error) {
	if hex == "" {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex formats a color the way ParseColor reads it.
func Hex(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
