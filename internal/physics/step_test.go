package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/physics"
)

var _ = Describe("Step", func() {
	It("plays out the heavy-light scenario", func() {
		heavy := mustParticle(100, 50, dynamo.Vec{X: 100, Y: 300}, dynamo.Vec{X: 50})
		light := mustParticle(5, 15, dynamo.Vec{X: 400, Y: 300}, dynamo.Vec{})
		ps := []*physics.Particle{heavy, light}

		Expect(physics.Step(ps, world, 1)).To(Equal(0))
		Expect(heavy.Position().X).To(BeNumerically("~", 150, tol))

		frames := 1
		for !physics.Overlapping(heavy, light) && frames < 20 {
			for _, p := range ps {
				p.Integrate(1, world)
			}
			frames++
		}
		Expect(frames).To(Equal(5))
		Expect(light.Position().X - heavy.Position().X).To(BeNumerically("<=", 65))

		n := heavy.Position().Sub(light.Position()).Normalize()
		p0 := physics.TotalMomentum(ps)
		e0 := normalKE(heavy, n) + normalKE(light, n)

		Expect(physics.ResolveCollision(heavy, light)).To(BeTrue())

		p1 := physics.TotalMomentum(ps)
		Expect(p1.X).To(BeNumerically("~", p0.X, tol))
		Expect(p1.Y).To(BeNumerically("~", p0.Y, tol))
		Expect(normalKE(heavy, n) + normalKE(light, n)).To(BeNumerically("~", e0, tol))
		Expect(heavy.Velocity().X).To(BeNumerically("~", 50.0*95/105, tol))
		Expect(light.Velocity().X).To(BeNumerically("~", 2*100*50.0/105, tol))
	})

	It("resolves pairs in ascending index order", func() {
		a := mustParticle(1, 10, dynamo.Vec{X: 100, Y: 300}, dynamo.Vec{X: 10})
		b := mustParticle(1, 10, dynamo.Vec{X: 118, Y: 300}, dynamo.Vec{})
		c := mustParticle(1, 10, dynamo.Vec{X: 136, Y: 300}, dynamo.Vec{})

		Expect(physics.Step([]*physics.Particle{a, b, c}, world, 0)).To(Equal(2))

		Expect(a.Position().X).To(BeNumerically("~", 99, tol))
		Expect(b.Position().X).To(BeNumerically("~", 117.5, tol))
		Expect(c.Position().X).To(BeNumerically("~", 137.5, tol))
		Expect(a.Velocity().X).To(BeNumerically("~", 0, tol))
		Expect(b.Velocity().X).To(BeNumerically("~", 0, tol))
		Expect(c.Velocity().X).To(BeNumerically("~", 10, tol))
	})

	It("handles an empty and a single-particle collection", func() {
		Expect(physics.Step(nil, world, 0.1)).To(Equal(0))
		solo := mustParticle(1, 10, dynamo.Vec{X: 100, Y: 100}, dynamo.Vec{X: 10})
		Expect(physics.Step([]*physics.Particle{solo}, world, 0.1)).To(Equal(0))
		Expect(solo.Position().X).To(BeNumerically("~", 101, tol))
	})

	It("conserves kinetic energy over many frames", func() {
		ps := []*physics.Particle{
			mustParticle(12, 30, dynamo.Vec{X: 200, Y: 300}, dynamo.Vec{X: 200, Y: 35}),
			mustParticle(8, 30, dynamo.Vec{X: 600, Y: 310}, dynamo.Vec{X: -200, Y: -20}),
			mustParticle(4, 15, dynamo.Vec{X: 400, Y: 100}, dynamo.Vec{X: 30, Y: 90}),
		}
		e0 := physics.TotalKineticEnergy(ps)
		for i := 0; i < 2000; i++ {
			physics.Step(ps, world, 1.0/60)
		}
		Expect(physics.TotalKineticEnergy(ps)).To(BeNumerically("~", e0, e0*1e-9))
	})
})

var _ = Describe("World", func() {
	It("rejects invalid bounds", func() {
		_, err := physics.NewWorld(dynamo.WorldBounds{Width: 0, Height: 10}, 0.1)
		Expect(err).To(MatchError(dynamo.ErrInvalidBounds))
	})

	It("falls back to the default dt clamp", func() {
		w, err := physics.NewWorld(world, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(w.MaxDt()).To(Equal(physics.DefaultMaxDt))
	})

	It("clamps long frames", func() {
		w, _ := physics.NewWorld(world, 0.1)
		p, err := w.Spawn(1, 10, dynamo.Vec{X: 100, Y: 100}, dynamo.Vec{X: 10}, cyan)
		Expect(err).NotTo(HaveOccurred())

		w.Step(5)
		Expect(p.Position().X).To(BeNumerically("~", 101, tol))

		w.Step(-1)
		Expect(p.Position().X).To(BeNumerically("~", 101, tol))
	})

	It("reflects against updated bounds", func() {
		w, _ := physics.NewWorld(world, 0.1)
		p, _ := w.Spawn(1, 10, dynamo.Vec{X: 500, Y: 100}, dynamo.Vec{X: 10}, cyan)

		Expect(w.SetBounds(400, 600)).To(Succeed())
		w.Step(0.1)
		Expect(p.Position().X).To(Equal(390.0))
		Expect(p.Velocity().X).To(Equal(-10.0))

		Expect(w.SetBounds(-1, 600)).To(MatchError(dynamo.ErrInvalidBounds))
		Expect(w.Bounds().Width).To(Equal(400.0))
	})

	It("clears and snapshots", func() {
		w, _ := physics.NewWorld(world, 0.1)
		_, err := w.Spawn(0, 10, dynamo.Vec{X: 100, Y: 100}, dynamo.Vec{}, cyan)
		Expect(err).To(HaveOccurred())
		Expect(w.Len()).To(Equal(0))

		p, _ := w.Spawn(2, 10, dynamo.Vec{X: 100, Y: 100}, dynamo.Vec{X: 3, Y: 4}, cyan)
		snap := w.Snapshot()
		p.SetVelocity(dynamo.Vec{})
		Expect(snap[0].Velocity()).To(Equal(dynamo.Vec{X: 3, Y: 4}))
		Expect(w.KineticEnergy()).To(Equal(0.0))

		w.Clear()
		Expect(w.Len()).To(Equal(0))
	})
})
