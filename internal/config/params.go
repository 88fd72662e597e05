package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Particles = append([]ParticleConfig(nil), c.Particles...)
	return &out
}

// Set assigns one numeric setting by name. Top-level names are dt, max_dt,
// duration, width and height; particle fields are addressed as p<i>.<field>
// with field one of mass, radius, x, y, vx, vy.
func (c *Config) Set(name string, value float64) error {
	switch name {
	case "dt":
		c.Dt = value
	case "max_dt":
		c.MaxDt = value
	case "duration":
		c.Duration = value
	case "width":
		c.World.Width = value
	case "height":
		c.World.Height = value
	default:
		return c.setParticle(name, value)
	}
	return nil
}

func (c *Config) setParticle(name string, value float64) error {
	idx, field, ok := strings.Cut(name, ".")
	if !ok || !strings.HasPrefix(idx, "p") {
		return fmt.Errorf("unknown parameter %q", name)
	}
	i, err := strconv.Atoi(idx[1:])
	if err != nil || i < 0 || i >= len(c.Particles) {
		return fmt.Errorf("parameter %q: no particle %s", name, idx)
	}

	p := &c.Particles[i]
	switch field {
	case "mass":
		p.Mass = value
	case "radius":
		p.Radius = value
	case "x":
		p.X = value
	case "y":
		p.Y = value
	case "vx":
		p.VX = value
	case "vy":
		p.VY = value
	default:
		return fmt.Errorf("parameter %q: unknown field %q", name, field)
	}
	return nil
}

// ParseRange reads "a,b,c" as a list of values and "lo:hi:n" as n evenly
// spaced values from lo to hi inclusive.
func ParseRange(s string) ([]float64, error) {
	if parts := strings.Split(s, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || n < 1 {
			return nil, fmt.Errorf("invalid range %q", s)
		}
		if n == 1 {
			return []float64{lo}, nil
		}
		out := make([]float64, n)
		step := (hi - lo) / float64(n-1)
		for i := range out {
			out[i] = lo + float64(i)*step
		}
		return out, nil
	}

	var out []float64
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q in %q", f, s)
		}
		out = append(out, v)
	}
	return out, nil
}
