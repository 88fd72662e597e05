package analysis

import "github.com/san-kum/collide/internal/sim"

// Field selects one component of a particle's stored state.
type Field int

const (
	FieldX Field = iota
	FieldY
	FieldVX
	FieldVY
)

type Point struct {
	X, Y float64
}

// Column extracts one field of one particle across frames.
func Column(states []sim.State, particle int, field Field) []float64 {
	out := make([]float64, 0, len(states))
	idx := particle*sim.Stride + int(field)
	for _, s := range states {
		if idx < len(s) {
			out = append(out, s[idx])
		}
	}
	return out
}

// Trajectory is the path of one particle's centre.
func Trajectory(states []sim.State, particle int) []Point {
	out := make([]Point, 0, len(states))
	for _, s := range states {
		if particle >= s.Len() {
			continue
		}
		x, y, _, _ := s.Particle(particle)
		out = append(out, Point{X: x, Y: y})
	}
	return out
}

// KineticEnergySeries recomputes total kinetic energy per frame.
func KineticEnergySeries(states []sim.State, masses []float64) []float64 {
	out := make([]float64, len(states))
	for f, s := range states {
		for i := 0; i < s.Len() && i < len(masses); i++ {
			_, _, vx, vy := s.Particle(i)
			out[f] += 0.5 * masses[i] * (vx*vx + vy*vy)
		}
	}
	return out
}

// CollisionTimes lists the frame times at which contacts were resolved.
func CollisionTimes(times []float64, contacts []int) []float64 {
	var out []float64
	for i, c := range contacts {
		if c > 0 && i < len(times) {
			out = append(out, times[i])
		}
	}
	return out
}
