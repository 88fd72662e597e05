package dynamo

import (
	"math"

	"github.com/golang/geo/r2"
)

// Vec is the 2D vector used for positions and velocities.
type Vec = r2.Point

// WorldBounds is the rectangle [0, Width] x [0, Height] particles reflect off.
type WorldBounds struct {
	Width  float64
	Height float64
}

// NewWorldBounds validates and returns bounds of the given size.
func NewWorldBounds(width, height float64) (WorldBounds, error) {
	b := WorldBounds{Width: width, Height: height}
	if err := b.Validate(); err != nil {
		return WorldBounds{}, err
	}
	return b, nil
}

func (b WorldBounds) Validate() error {
	if !(b.Width > 0) || math.IsInf(b.Width, 0) {
		return &ValidationError{Field: "width", Value: b.Width, Err: ErrInvalidBounds}
	}
	if !(b.Height > 0) || math.IsInf(b.Height, 0) {
		return &ValidationError{Field: "height", Value: b.Height, Err: ErrInvalidBounds}
	}
	return nil
}

func (b WorldBounds) Center() Vec {
	return Vec{X: b.Width / 2, Y: b.Height / 2}
}

// Fits reports whether a disk of radius r centred at p lies inside the bounds.
func (b WorldBounds) Fits(p Vec, r float64) bool {
	return p.X-r >= 0 && p.X+r <= b.Width && p.Y-r >= 0 && p.Y+r <= b.Height
}

func IsFinite(v Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// ClampDt limits a frame delta to [0, maxDt].
func ClampDt(dt, maxDt float64) float64 {
	if dt < 0 || math.IsNaN(dt) {
		return 0
	}
	if dt > maxDt {
		return maxDt
	}
	return dt
}
