package physics

import (
	"image/color"
	"math"

	"github.com/san-kum/collide/internal/dynamo"
)

// Particle is a circular, non-rotating body. Mass and radius are fixed at
// construction; position and velocity change every frame.
type Particle struct {
	mass     float64
	radius   float64
	position dynamo.Vec
	velocity dynamo.Vec
	color    color.RGBA
}

// NewParticle validates its inputs and returns a particle with the given
// state. Non-positive mass or radius yields a *dynamo.ValidationError.
func NewParticle(mass, radius float64, position, velocity dynamo.Vec, col color.RGBA) (*Particle, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return nil, &dynamo.ValidationError{Field: "mass", Value: mass, Err: dynamo.ErrInvalidMass}
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, &dynamo.ValidationError{Field: "radius", Value: radius, Err: dynamo.ErrInvalidRadius}
	}
	if !dynamo.IsFinite(position) {
		return nil, &dynamo.ValidationError{Field: "position", Value: position, Err: dynamo.ErrInvalidVector}
	}
	if !dynamo.IsFinite(velocity) {
		return nil, &dynamo.ValidationError{Field: "velocity", Value: velocity, Err: dynamo.ErrInvalidVector}
	}
	return &Particle{
		mass:     mass,
		radius:   radius,
		position: position,
		velocity: velocity,
		color:    col,
	}, nil
}

func (p *Particle) Mass() float64            { return p.mass }
func (p *Particle) Radius() float64          { return p.radius }
func (p *Particle) Position() dynamo.Vec     { return p.position }
func (p *Particle) Velocity() dynamo.Vec     { return p.velocity }
func (p *Particle) Color() color.RGBA        { return p.color }
func (p *Particle) SetPosition(v dynamo.Vec) { p.position = v }
func (p *Particle) SetVelocity(v dynamo.Vec) { p.velocity = v }

// Integrate advances the position by one explicit Euler step and then
// reflects the particle off the world bounds.
func (p *Particle) Integrate(dt float64, bounds dynamo.WorldBounds) {
	p.position = p.position.Add(p.velocity.Mul(dt))
	p.Reflect(bounds)
}

// Reflect clamps the particle inside bounds, negating the velocity component
// of every axis it crossed. The upper edge is tested before the lower one.
func (p *Particle) Reflect(bounds dynamo.WorldBounds) {
	r := p.radius

	if p.position.X+r > bounds.Width {
		p.position.X = bounds.Width - r
		p.velocity.X = -p.velocity.X
	} else if p.position.X-r < 0 {
		p.position.X = r
		p.velocity.X = -p.velocity.X
	}

	if p.position.Y+r > bounds.Height {
		p.position.Y = bounds.Height - r
		p.velocity.Y = -p.velocity.Y
	} else if p.position.Y-r < 0 {
		p.position.Y = r
		p.velocity.Y = -p.velocity.Y
	}
}

func (p *Particle) KineticEnergy() float64 {
	return 0.5 * p.mass * p.velocity.Dot(p.velocity)
}

func (p *Particle) Momentum() dynamo.Vec {
	return p.velocity.Mul(p.mass)
}

// Clone returns an independent copy, used for snapshots.
func (p *Particle) Clone() *Particle {
	c := *p
	return &c
}
