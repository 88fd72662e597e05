package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/physics"
)

const tol = 1e-9

func normalKE(p *physics.Particle, n dynamo.Vec) float64 {
	vn := p.Velocity().Dot(n)
	return 0.5 * p.Mass() * vn * vn
}

var _ = Describe("ResolveCollision", func() {
	var p1, p2 *physics.Particle

	Context("with a glancing overlap", func() {
		var n, t dynamo.Vec

		BeforeEach(func() {
			p1 = mustParticle(3, 10, dynamo.Vec{X: 100, Y: 100}, dynamo.Vec{X: 3, Y: -7})
			p2 = mustParticle(7, 10, dynamo.Vec{X: 110, Y: 108}, dynamo.Vec{X: -2, Y: 5})
			n = p1.Position().Sub(p2.Position()).Normalize()
			t = n.Ortho()
		})

		It("conserves momentum", func() {
			before := physics.TotalMomentum([]*physics.Particle{p1, p2})
			Expect(physics.ResolveCollision(p1, p2)).To(BeTrue())
			after := physics.TotalMomentum([]*physics.Particle{p1, p2})
			Expect(after.X).To(BeNumerically("~", before.X, tol))
			Expect(after.Y).To(BeNumerically("~", before.Y, tol))
		})

		It("conserves kinetic energy along the normal", func() {
			before := normalKE(p1, n) + normalKE(p2, n)
			physics.ResolveCollision(p1, p2)
			after := normalKE(p1, n) + normalKE(p2, n)
			Expect(after).To(BeNumerically("~", before, tol))
		})

		It("conserves total kinetic energy", func() {
			before := p1.KineticEnergy() + p2.KineticEnergy()
			physics.ResolveCollision(p1, p2)
			Expect(p1.KineticEnergy() + p2.KineticEnergy()).To(BeNumerically("~", before, tol))
		})

		It("leaves tangential components unchanged", func() {
			v1t, v2t := p1.Velocity().Dot(t), p2.Velocity().Dot(t)
			physics.ResolveCollision(p1, p2)
			Expect(p1.Velocity().Dot(t)).To(BeNumerically("~", v1t, tol))
			Expect(p2.Velocity().Dot(t)).To(BeNumerically("~", v2t, tol))
		})

		It("separates the disks until they just touch", func() {
			physics.ResolveCollision(p1, p2)
			d := p1.Position().Sub(p2.Position()).Norm()
			Expect(d).To(BeNumerically("~", p1.Radius()+p2.Radius(), tol))
			Expect(physics.Overlapping(p1, p2)).To(BeFalse())
		})

		It("moves each disk by half the overlap", func() {
			c1, c2 := p1.Position(), p2.Position()
			overlap := 20 - c1.Sub(c2).Norm()
			physics.ResolveCollision(p1, p2)
			Expect(p1.Position().Sub(c1).Norm()).To(BeNumerically("~", overlap/2, tol))
			Expect(p2.Position().Sub(c2).Norm()).To(BeNumerically("~", overlap/2, tol))
		})
	})

	It("exchanges velocities in a head-on hit between equal masses", func() {
		p1 = mustParticle(5, 10, dynamo.Vec{X: 100, Y: 100}, dynamo.Vec{X: 40})
		p2 = mustParticle(5, 10, dynamo.Vec{X: 115, Y: 100}, dynamo.Vec{X: -10})
		Expect(physics.ResolveCollision(p1, p2)).To(BeTrue())
		Expect(p1.Velocity().X).To(BeNumerically("~", -10, tol))
		Expect(p2.Velocity().X).To(BeNumerically("~", 40, tol))
		Expect(p1.Velocity().Y).To(BeNumerically("~", 0, tol))
	})

	DescribeTable("is a no-op when the disks do not overlap",
		func(c2 dynamo.Vec) {
			p1 = mustParticle(1, 10, dynamo.Vec{X: 100, Y: 100}, dynamo.Vec{X: 5, Y: 1})
			p2 = mustParticle(2, 10, c2, dynamo.Vec{X: -5, Y: 2})
			Expect(physics.ResolveCollision(p1, p2)).To(BeFalse())
			Expect(p1.Position()).To(Equal(dynamo.Vec{X: 100, Y: 100}))
			Expect(p2.Position()).To(Equal(c2))
			Expect(p1.Velocity()).To(Equal(dynamo.Vec{X: 5, Y: 1}))
			Expect(p2.Velocity()).To(Equal(dynamo.Vec{X: -5, Y: 2}))
		},
		Entry("far apart", dynamo.Vec{X: 300, Y: 300}),
		Entry("exactly touching", dynamo.Vec{X: 120, Y: 100}),
	)

	It("skips exactly coincident centres", func() {
		p1 = mustParticle(1, 10, dynamo.Vec{X: 50, Y: 50}, dynamo.Vec{X: 1, Y: 2})
		p2 = mustParticle(3, 20, dynamo.Vec{X: 50, Y: 50}, dynamo.Vec{X: -3, Y: 4})
		Expect(physics.ResolveCollision(p1, p2)).To(BeFalse())
		Expect(p1.Position()).To(Equal(dynamo.Vec{X: 50, Y: 50}))
		Expect(p2.Position()).To(Equal(dynamo.Vec{X: 50, Y: 50}))
		Expect(p1.Velocity()).To(Equal(dynamo.Vec{X: 1, Y: 2}))
		Expect(p2.Velocity()).To(Equal(dynamo.Vec{X: -3, Y: 4}))
	})
})
