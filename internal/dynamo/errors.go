package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for particle construction and simulation.
var (
	// ErrInvalidMass indicates a non-positive or non-finite mass.
	ErrInvalidMass = errors.New("dynamo: mass must be positive and finite")

	// ErrInvalidRadius indicates a non-positive or non-finite radius.
	ErrInvalidRadius = errors.New("dynamo: radius must be positive and finite")

	// ErrInvalidBounds indicates world bounds with a non-positive side.
	ErrInvalidBounds = errors.New("dynamo: world bounds must be positive")

	// ErrInvalidVector indicates a position or velocity containing NaN or Inf.
	ErrInvalidVector = errors.New("dynamo: vector contains NaN or Inf")

	// ErrUnstable indicates a particle state diverged during a run.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")

	// ErrEmptyWorld indicates a run was requested with no particles.
	ErrEmptyWorld = errors.New("dynamo: world has no particles")
)

// ValidationError reports which construction input was rejected.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s = %v: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SimulationError wraps an error with the frame it happened on.
type SimulationError struct {
	Step     int
	Time     float64
	Particle int
	Wrapped  error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f) particle %d: %v", e.Step, e.Time, e.Particle, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
