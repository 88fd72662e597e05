package config

import "sort"

// Presets are laid out for the default 800x600 world.
var Presets = map[string]*Config{
	"similar_masses": withParticles(
		ParticleConfig{Mass: 12, Radius: 30, X: 200, Y: 300, VX: 200, Color: "#00ffff"},
		ParticleConfig{Mass: 8, Radius: 30, X: 600, Y: 300, VX: -200, Color: "#ff00ff"},
	),
	"different_masses": withParticles(
		ParticleConfig{Mass: 100, Radius: 50, X: 200, Y: 300, VX: 50, Color: "#ff0000"},
		ParticleConfig{Mass: 5, Radius: 15, X: 500, Y: 300, Color: "#00ff00"},
	),
	"heavy_light": withParticles(
		ParticleConfig{Mass: 100, Radius: 50, X: 100, Y: 300, VX: 50, Color: "#ff0000"},
		ParticleConfig{Mass: 5, Radius: 15, X: 400, Y: 300, Color: "#00ff00"},
	),
	"glancing": withParticles(
		ParticleConfig{Mass: 10, Radius: 30, X: 200, Y: 280, VX: 150, Color: "#00ffff"},
		ParticleConfig{Mass: 10, Radius: 30, X: 500, Y: 320, VX: -50, Color: "#ff00ff"},
	),
	"cradle": withParticles(
		ParticleConfig{Mass: 10, Radius: 25, X: 150, Y: 300, VX: 250, Color: "#ffff00"},
		ParticleConfig{Mass: 10, Radius: 25, X: 400, Y: 300, Color: "#00ffff"},
		ParticleConfig{Mass: 10, Radius: 25, X: 450, Y: 300, Color: "#00ffff"},
		ParticleConfig{Mass: 10, Radius: 25, X: 500, Y: 300, Color: "#00ffff"},
	),
}

func withParticles(ps ...ParticleConfig) *Config {
	cfg := DefaultConfig()
	cfg.Particles = ps
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
