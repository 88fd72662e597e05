package physics

// ResolveCollision applies a frictionless elastic impulse to two overlapping
// disks and pushes them apart until they just touch. It reports whether the
// pair was resolved; disjoint pairs and exactly coincident centres (no
// defined normal) are left untouched.
func ResolveCollision(p1, p2 *Particle) bool {
	diff := p1.position.Sub(p2.position)
	distance := diff.Norm()
	radiusSum := p1.radius + p2.radius

	if distance >= radiusSum {
		return false
	}
	if distance <= 0 {
		return false
	}

	n := diff.Mul(1 / distance)
	t := n.Ortho()

	v1n, v1t := p1.velocity.Dot(n), p1.velocity.Dot(t)
	v2n, v2t := p2.velocity.Dot(n), p2.velocity.Dot(t)

	m1, m2 := p1.mass, p2.mass
	totalMass := m1 + m2

	v1nFinal := (v1n*(m1-m2) + 2*m2*v2n) / totalMass
	v2nFinal := (v2n*(m2-m1) + 2*m1*v1n) / totalMass

	p1.velocity = n.Mul(v1nFinal).Add(t.Mul(v1t))
	p2.velocity = n.Mul(v2nFinal).Add(t.Mul(v2t))

	correction := n.Mul((radiusSum - distance) / 2)
	p1.position = p1.position.Add(correction)
	p2.position = p2.position.Sub(correction)

	return true
}

// Overlapping reports whether two disks interpenetrate.
func Overlapping(p1, p2 *Particle) bool {
	return p1.position.Sub(p2.position).Norm() < p1.radius+p2.radius
}
