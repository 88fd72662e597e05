package physics

import (
	"image/color"

	"github.com/san-kum/collide/internal/dynamo"
)

// DefaultMaxDt bounds the per-frame delta so a stalled frame (a window drag,
// say) cannot move a particle across half the world.
const DefaultMaxDt = 0.1

// World owns the particle collection and the current bounds. It is not safe
// for concurrent use; one frame loop drives it.
type World struct {
	bounds    dynamo.WorldBounds
	maxDt     float64
	particles []*Particle
}

func NewWorld(bounds dynamo.WorldBounds, maxDt float64) (*World, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	if !(maxDt > 0) {
		maxDt = DefaultMaxDt
	}
	return &World{bounds: bounds, maxDt: maxDt}, nil
}

func (w *World) Bounds() dynamo.WorldBounds { return w.bounds }
func (w *World) MaxDt() float64             { return w.maxDt }
func (w *World) Len() int                   { return len(w.particles) }

// Particles exposes the live collection in insertion order. Callers must
// not keep it across frames.
func (w *World) Particles() []*Particle { return w.particles }

// SetBounds replaces the bounds; the next Step reflects against them.
func (w *World) SetBounds(width, height float64) error {
	b, err := dynamo.NewWorldBounds(width, height)
	if err != nil {
		return err
	}
	w.bounds = b
	return nil
}

func (w *World) Add(p *Particle) {
	w.particles = append(w.particles, p)
}

// Spawn constructs a particle and appends it.
func (w *World) Spawn(mass, radius float64, position, velocity dynamo.Vec, col color.RGBA) (*Particle, error) {
	p, err := NewParticle(mass, radius, position, velocity, col)
	if err != nil {
		return nil, err
	}
	w.Add(p)
	return p, nil
}

// Clear drops every particle.
func (w *World) Clear() {
	w.particles = w.particles[:0]
}

// Step clamps dt into [0, MaxDt] and advances one frame.
func (w *World) Step(dt float64) int {
	return Step(w.particles, w.bounds, dynamo.ClampDt(dt, w.maxDt))
}

// Snapshot returns deep copies of the particles.
func (w *World) Snapshot() []*Particle {
	out := make([]*Particle, len(w.particles))
	for i, p := range w.particles {
		out[i] = p.Clone()
	}
	return out
}

func (w *World) KineticEnergy() float64 { return TotalKineticEnergy(w.particles) }
func (w *World) Momentum() dynamo.Vec   { return TotalMomentum(w.particles) }
