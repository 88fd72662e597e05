// Package analysis post-processes stored runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: bounce periodicity of a series
//   - [Column], [Trajectory]: slices of stored particle state
//   - [KineticEnergySeries]: per-frame kinetic energy from stored velocities
//   - [CollisionTimes]: when contacts were resolved
//
// # Bounce frequency
//
// A lone particle crossing a world of width W at speed v hits the same wall
// every 2(W-2r)/v time units:
//
//	xs := analysis.Column(states, 0, analysis.FieldX)
//	f := analysis.DominantFrequency(xs, meta.Dt)
package analysis
