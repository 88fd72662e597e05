package metrics

import (
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/sim"
)

// Containment is the fraction of frames in which every particle lies inside
// the bounds. Overlap correction runs after wall reflection and can push a
// particle past a wall for a frame.
type Containment struct {
	name       string
	bounds     dynamo.WorldBounds
	violations int
	samples    int
}

func NewContainment(bounds dynamo.WorldBounds) *Containment {
	return &Containment{
		name:   "containment",
		bounds: bounds,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f sim.Frame) {
	c.samples++
	for _, p := range f.Particles {
		if !c.bounds.Fits(p.Position(), p.Radius()) {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
