package gui

import (
	"testing"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/placement"
)

func TestApplyPlacementKeysHandlesEveryKey(t *testing.T) {
	app, err := NewApp(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	app.Placement.Click(dynamo.Vec{X: 200, Y: 300})

	// velocity, mass and confirm all pressed in the same frame
	app.applyPlacementKeys(placementKeys{Up: true, Right: true, Heavier: true, Confirm: true})

	if app.Placement.Phase() != placement.PlacingSecond {
		t.Fatalf("phase = %v", app.Placement.Phase())
	}
	if app.World.Len() != 1 {
		t.Fatalf("particles = %d", app.World.Len())
	}
	p := app.World.Particles()[0]
	if v := p.Velocity(); v.X != 110 || v.Y != -10 {
		t.Errorf("velocity = %v, want (110, -10)", v)
	}
	if p.Mass() != config.DefaultMass+config.DefaultMassStep {
		t.Errorf("mass = %v", p.Mass())
	}
}

func TestApplyPlacementKeysWithoutConfirm(t *testing.T) {
	app, err := NewApp(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	app.Placement.Click(dynamo.Vec{X: 200, Y: 300})
	app.applyPlacementKeys(placementKeys{Left: true, Down: true, Lighter: true})

	if app.Placement.Phase() != placement.ConfiguringFirst || app.World.Len() != 0 {
		t.Errorf("phase %v with %d particles", app.Placement.Phase(), app.World.Len())
	}
	g, ok := app.Placement.Ghost(dynamo.Vec{})
	if !ok {
		t.Fatal("expected a pending ball")
	}
	if g.Velocity.X != 90 || g.Velocity.Y != 10 || g.Mass != config.DefaultMinMass {
		t.Errorf("ghost = %+v", g)
	}
}
