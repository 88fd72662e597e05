package sim

import (
	"math"

	"github.com/san-kum/collide/internal/physics"
)

// Fields per particle in a State row.
const Stride = 4

// State is a flattened frame: x, y, vx, vy for each particle in order.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Len() int { return len(s) / Stride }

// Particle returns position and velocity of particle i.
func (s State) Particle(i int) (x, y, vx, vy float64) {
	o := i * Stride
	return s[o], s[o+1], s[o+2], s[o+3]
}

// Capture flattens the particles' current state.
func Capture(particles []*physics.Particle) State {
	s := make(State, 0, len(particles)*Stride)
	for _, p := range particles {
		pos, vel := p.Position(), p.Velocity()
		s = append(s, pos.X, pos.Y, vel.X, vel.Y)
	}
	return s
}

// Frame is what metrics and observers see after each step. Particles is the
// live collection and must not be retained.
type Frame struct {
	Step      int
	Time      float64
	Dt        float64
	Contacts  int
	Particles []*physics.Particle
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(f Frame)
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

type Result struct {
	States      []State
	Times       []float64
	Contacts    []int
	Masses      []float64
	Radii       []float64
	Metrics     map[string]float64
	Collisions  int
	EnergyDrift float64
	StepsTaken  int
	// Final holds copies of the particles after the last step.
	Final []*physics.Particle
}
