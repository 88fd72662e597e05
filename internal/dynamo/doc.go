// Package dynamo provides the primitives shared by the collision lab.
//
//   - [Vec]: 2D vector (an alias of r2.Point)
//   - [WorldBounds]: the rectangle particles reflect off
//   - [ValidationError]: rejected construction input, wrapping one of the
//     sentinel errors such as [ErrInvalidMass]
//   - [ClampDt]: bounds a frame delta before integration
//
// # Errors
//
// Validation failures can be matched with errors.Is:
//
//	_, err := physics.NewParticle(0, 10, pos, vel, col)
//	if errors.Is(err, dynamo.ErrInvalidMass) {
//	    // reject input
//	}
package dynamo
