package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/collide/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.World.Width != 800 || cfg.World.Height != 600 {
		t.Errorf("expected 800x600 world, got %vx%v", cfg.World.Width, cfg.World.Height)
	}
	if cfg.MaxDt != 0.1 {
		t.Errorf("expected max_dt 0.1, got %f", cfg.MaxDt)
	}
	if cfg.Placement.SecondVelocity.X != -100 {
		t.Errorf("expected second velocity -100, got %f", cfg.Placement.SecondVelocity.X)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.World.Width = 0 }},
		{"negative height", func(c *Config) { c.World.Height = -5 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"zero max dt", func(c *Config) { c.MaxDt = 0 }},
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }},
		{"zero min mass", func(c *Config) { c.Placement.MinMass = 0 }},
		{"mass below min", func(c *Config) { c.Placement.Mass = 1 }},
		{"bad color", func(c *Config) { c.Particles = []ParticleConfig{{Mass: 1, Radius: 1, Color: "teal"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")

	cfg := GetPreset("similar_masses")
	cfg.Duration = 5
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Duration != 5 {
		t.Errorf("expected duration 5, got %f", loaded.Duration)
	}
	if len(loaded.Particles) != 2 {
		t.Fatalf("expected 2 particles, got %d", len(loaded.Particles))
	}
	if loaded.Particles[1].VX != -200 {
		t.Errorf("expected vx -200, got %f", loaded.Particles[1].VX)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("world:\n  width: 1024\n  height: 768\nparticles:\n  - {mass: 3, radius: 12, x: 100, y: 100, vx: 10, color: \"#ff8800\"}\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.World.Width != 1024 {
		t.Errorf("expected width 1024, got %f", cfg.World.Width)
	}
	if cfg.MaxDt != DefaultMaxDt {
		t.Errorf("expected default max_dt, got %f", cfg.MaxDt)
	}
	if cfg.Placement.Mass != DefaultMass {
		t.Errorf("expected default placement mass, got %f", cfg.Placement.Mass)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("world:\n  width: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, dynamo.ErrInvalidBounds) {
		t.Errorf("expected ErrInvalidBounds, got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuildWorld(t *testing.T) {
	cfg := GetPreset("different_masses")
	w, err := cfg.BuildWorld()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if w.Len() != 2 {
		t.Fatalf("expected 2 particles, got %d", w.Len())
	}

	heavy := w.Particles()[0]
	if heavy.Mass() != 100 || heavy.Radius() != 50 {
		t.Errorf("unexpected first particle mass=%f radius=%f", heavy.Mass(), heavy.Radius())
	}
	if heavy.Color() != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("expected red, got %v", heavy.Color())
	}
}

func TestBuildWorldRejectsInvalidParticle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Particles = []ParticleConfig{{Mass: 0, Radius: 10, X: 50, Y: 50}}

	_, err := cfg.BuildWorld()
	if !errors.Is(err, dynamo.ErrInvalidMass) {
		t.Errorf("expected ErrInvalidMass, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		hex  string
		want color.RGBA
	}{
		{"#00ffff", color.RGBA{G: 255, B: 255, A: 255}},
		{"#FF00FF", color.RGBA{R: 255, B: 255, A: 255}},
		{"", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.hex)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tt.hex, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.hex, got, tt.want)
		}
	}

	if _, err := ParseColor("cyan"); err == nil {
		t.Error("expected error for named color")
	}

	if got := Hex(color.RGBA{R: 255, A: 255}); got != "#ff0000" {
		t.Errorf("Hex = %s, want #ff0000", got)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("heavy_light")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Particles[0].X != 100 || cfg.Particles[1].X != 400 {
		t.Errorf("unexpected preset positions: %+v", cfg.Particles)
	}

	cfg.Particles[0].X = 1
	if Presets["heavy_light"].Particles[0].X != 100 {
		t.Error("GetPreset must not alias the stored preset")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
