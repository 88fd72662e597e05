// Package viz is the terminal front end for the collision lab.
//
// It is a Bubble Tea program drawing on a braille [Canvas]:
//
//   - [Model]: owns the world and the placement controller, steps the world
//     with the wall-clock time between ticks (clamped to the world's MaxDt)
//   - [Renderer]: maps world coordinates to canvas sub-pixels and back
//   - three color themes, cycled with T
//
// # Key Bindings
//
//	Mouse  - Place the pending ball
//	Arrows - Move the cursor while placing, change velocity while configuring
//	W/S    - Heavier/lighter pending ball
//	Enter  - Place at the cursor or confirm the pending ball
//	Space  - Pause/Resume simulation
//	R      - Reset to placing the first ball
//	T      - Cycle color themes
//	?      - Show help overlay
package viz
