package physics

import "github.com/san-kum/collide/internal/dynamo"

// Step integrates every particle and then resolves each unordered pair
// (i, j), i < j, exactly once in ascending order. A particle in several
// contacts is corrected by each pair in turn; there is no iteration to a
// fixed point. It returns the number of pairs resolved.
func Step(particles []*Particle, bounds dynamo.WorldBounds, dt float64) int {
	for _, p := range particles {
		p.Integrate(dt, bounds)
	}

	contacts := 0
	for i := 0; i < len(particles); i++ {
		for j := i + 1; j < len(particles); j++ {
			if ResolveCollision(particles[i], particles[j]) {
				contacts++
			}
		}
	}
	return contacts
}

func TotalKineticEnergy(particles []*Particle) float64 {
	ke := 0.0
	for _, p := range particles {
		ke += p.KineticEnergy()
	}
	return ke
}

func TotalMomentum(particles []*Particle) dynamo.Vec {
	var sum dynamo.Vec
	for _, p := range particles {
		sum = sum.Add(p.Momentum())
	}
	return sum
}
