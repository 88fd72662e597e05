package metrics

import (
	"math"

	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/sim"
)

// Collisions counts resolved contacts.
type Collisions struct {
	name  string
	count int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string        { return c.name }
func (c *Collisions) Observe(f sim.Frame) { c.count += f.Contacts }
func (c *Collisions) Value() float64      { return float64(c.count) }
func (c *Collisions) Reset()              { c.count = 0 }

// Penetration is the deepest overlap left after a step. Pairs are resolved
// once each in order, so three or more bodies in contact can leave residue.
type Penetration struct {
	name string
	max  float64
}

func NewPenetration() *Penetration {
	return &Penetration{name: "max_penetration"}
}

func (p *Penetration) Name() string { return p.name }

func (p *Penetration) Observe(f sim.Frame) {
	ps := f.Particles
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := ps[i].Position().Sub(ps[j].Position()).Norm()
			p.max = math.Max(p.max, ps[i].Radius()+ps[j].Radius()-d)
		}
	}
}

func (p *Penetration) Value() float64 { return p.max }
func (p *Penetration) Reset()         { p.max = 0 }

// Defaults is the metric set used by the run and compare commands.
func Defaults(bounds dynamo.WorldBounds) []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewMomentum(),
		NewCollisions(),
		NewPenetration(),
		NewContainment(bounds),
	}
}
