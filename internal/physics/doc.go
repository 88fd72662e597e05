// Package physics implements the 2D elastic-collision model.
//
//   - [Particle]: a circular body with fixed mass and radius
//   - [ResolveCollision]: elastic impulse along the contact normal plus
//     overlap correction
//   - [Step]: integrate, reflect off the bounds, resolve pairs in order
//   - [World]: the frame loop's particle collection, bounds and dt clamp
//
// # Frame
//
//	world, _ := physics.NewWorld(bounds, physics.DefaultMaxDt)
//	world.Spawn(10, 30, pos, vel, col)
//	for running {
//	    world.Step(frameDt) // dt is clamped to MaxDt
//	}
//
// Integration is explicit Euler with the frame's own delta; there is no
// sub-stepping and fast particles may tunnel through each other.
package physics
