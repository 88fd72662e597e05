package sim

import (
	"math"
	"testing"

	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/physics"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0, 4.0}, true},
		{"with NaN", State{1.0, math.NaN(), 0, 0}, false},
		{"with +Inf", State{1.0, math.Inf(1), 0, 0}, false},
		{"with -Inf", State{1.0, math.Inf(-1), 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Clone(t *testing.T) {
	s := State{1, 2, 3, 4}
	c := s.Clone()
	c[0] = 99
	if s[0] != 1 {
		t.Error("clone aliases original")
	}
}

func TestCapture(t *testing.T) {
	a, _ := physics.NewParticle(1, 1, dynamo.Vec{X: 1, Y: 2}, dynamo.Vec{X: 3, Y: 4}, white)
	b, _ := physics.NewParticle(1, 1, dynamo.Vec{X: 5, Y: 6}, dynamo.Vec{X: 7, Y: 8}, white)

	s := Capture([]*physics.Particle{a, b})
	if s.Len() != 2 {
		t.Fatalf("expected 2 particles, got %d", s.Len())
	}
	x, y, vx, vy := s.Particle(1)
	if x != 5 || y != 6 || vx != 7 || vy != 8 {
		t.Errorf("unexpected particle 1: %v %v %v %v", x, y, vx, vy)
	}
}

func TestFirstInvalid(t *testing.T) {
	s := State{0, 0, 0, 0, 1, math.NaN(), 0, 0}
	if got := firstInvalid(s); got != 1 {
		t.Errorf("firstInvalid = %d, want 1", got)
	}
	if got := firstInvalid(State{0, 0, 0, 0}); got != -1 {
		t.Errorf("firstInvalid = %d, want -1", got)
	}
}
