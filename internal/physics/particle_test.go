package physics_test

import (
	"errors"
	"image/color"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/physics"
)

var (
	cyan  = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	world = dynamo.WorldBounds{Width: 800, Height: 600}
)

func mustParticle(mass, radius float64, pos, vel dynamo.Vec) *physics.Particle {
	p, err := physics.NewParticle(mass, radius, pos, vel, cyan)
	Expect(err).NotTo(HaveOccurred())
	return p
}

var _ = Describe("Particle", func() {
	Describe("construction", func() {
		It("keeps the given state", func() {
			p := mustParticle(10, 30, dynamo.Vec{X: 100, Y: 200}, dynamo.Vec{X: 5, Y: -3})
			Expect(p.Mass()).To(Equal(10.0))
			Expect(p.Radius()).To(Equal(30.0))
			Expect(p.Position()).To(Equal(dynamo.Vec{X: 100, Y: 200}))
			Expect(p.Velocity()).To(Equal(dynamo.Vec{X: 5, Y: -3}))
			Expect(p.Color()).To(Equal(cyan))
		})

		DescribeTable("rejects invalid input",
			func(mass, radius float64, pos, vel dynamo.Vec, field string, sentinel error) {
				p, err := physics.NewParticle(mass, radius, pos, vel, cyan)
				Expect(p).To(BeNil())
				Expect(errors.Is(err, sentinel)).To(BeTrue())

				var verr *dynamo.ValidationError
				Expect(errors.As(err, &verr)).To(BeTrue())
				Expect(verr.Field).To(Equal(field))
			},
			Entry("zero mass", 0.0, 10.0, dynamo.Vec{}, dynamo.Vec{}, "mass", dynamo.ErrInvalidMass),
			Entry("negative mass", -1.0, 10.0, dynamo.Vec{}, dynamo.Vec{}, "mass", dynamo.ErrInvalidMass),
			Entry("NaN mass", math.NaN(), 10.0, dynamo.Vec{}, dynamo.Vec{}, "mass", dynamo.ErrInvalidMass),
			Entry("zero radius", 1.0, 0.0, dynamo.Vec{}, dynamo.Vec{}, "radius", dynamo.ErrInvalidRadius),
			Entry("infinite radius", 1.0, math.Inf(1), dynamo.Vec{}, dynamo.Vec{}, "radius", dynamo.ErrInvalidRadius),
			Entry("NaN position", 1.0, 1.0, dynamo.Vec{X: math.NaN()}, dynamo.Vec{}, "position", dynamo.ErrInvalidVector),
			Entry("infinite velocity", 1.0, 1.0, dynamo.Vec{}, dynamo.Vec{Y: math.Inf(-1)}, "velocity", dynamo.ErrInvalidVector),
		)
	})

	Describe("Integrate", func() {
		It("moves by velocity times dt", func() {
			p := mustParticle(1, 10, dynamo.Vec{X: 100, Y: 100}, dynamo.Vec{X: 50, Y: -20})
			p.Integrate(0.5, world)
			Expect(p.Position().X).To(BeNumerically("~", 125, 1e-9))
			Expect(p.Position().Y).To(BeNumerically("~", 90, 1e-9))
			Expect(p.Velocity()).To(Equal(dynamo.Vec{X: 50, Y: -20}))
		})

		It("does nothing with a zero dt", func() {
			p := mustParticle(1, 10, dynamo.Vec{X: 100, Y: 100}, dynamo.Vec{X: 50, Y: 50})
			p.Integrate(0, world)
			Expect(p.Position()).To(Equal(dynamo.Vec{X: 100, Y: 100}))
		})

		DescribeTable("reflects off each wall",
			func(pos, vel, wantPos, wantVel dynamo.Vec) {
				p := mustParticle(1, 10, pos, vel)
				p.Integrate(1, world)
				Expect(p.Position().X).To(BeNumerically("~", wantPos.X, 1e-9))
				Expect(p.Position().Y).To(BeNumerically("~", wantPos.Y, 1e-9))
				Expect(p.Velocity()).To(Equal(wantVel))
			},
			Entry("right", dynamo.Vec{X: 780, Y: 300}, dynamo.Vec{X: 50}, dynamo.Vec{X: 790, Y: 300}, dynamo.Vec{X: -50}),
			Entry("left", dynamo.Vec{X: 20, Y: 300}, dynamo.Vec{X: -50}, dynamo.Vec{X: 10, Y: 300}, dynamo.Vec{X: 50}),
			Entry("bottom", dynamo.Vec{X: 400, Y: 580}, dynamo.Vec{Y: 50}, dynamo.Vec{X: 400, Y: 590}, dynamo.Vec{Y: -50}),
			Entry("top", dynamo.Vec{X: 400, Y: 20}, dynamo.Vec{Y: -50}, dynamo.Vec{X: 400, Y: 10}, dynamo.Vec{Y: 50}),
			Entry("corner", dynamo.Vec{X: 785, Y: 15}, dynamo.Vec{X: 20, Y: -20}, dynamo.Vec{X: 790, Y: 10}, dynamo.Vec{X: -20, Y: 20}),
		)

		It("keeps speed across a wall bounce", func() {
			p := mustParticle(2, 10, dynamo.Vec{X: 785, Y: 300}, dynamo.Vec{X: 30, Y: 40})
			before := p.KineticEnergy()
			p.Integrate(1, world)
			Expect(p.KineticEnergy()).To(BeNumerically("~", before, 1e-9))
		})

		It("prefers the upper edge when the world is narrower than the disk", func() {
			p := mustParticle(1, 30, dynamo.Vec{X: 20, Y: 300}, dynamo.Vec{X: 1})
			p.Integrate(0, dynamo.WorldBounds{Width: 40, Height: 600})
			Expect(p.Position().X).To(Equal(10.0))
			Expect(p.Velocity().X).To(Equal(-1.0))
		})
	})

	It("clones independently", func() {
		p := mustParticle(1, 10, dynamo.Vec{X: 100, Y: 100}, dynamo.Vec{X: 1})
		c := p.Clone()
		p.SetPosition(dynamo.Vec{X: 5, Y: 5})
		p.SetVelocity(dynamo.Vec{Y: 9})
		Expect(c.Position()).To(Equal(dynamo.Vec{X: 100, Y: 100}))
		Expect(c.Velocity()).To(Equal(dynamo.Vec{X: 1}))
	})
})
