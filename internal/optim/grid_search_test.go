package optim

import (
	"context"
	"testing"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/metrics"
	"github.com/san-kum/collide/internal/sim"
)

func newSim(b dynamo.WorldBounds) *sim.Simulator {
	s := sim.New(nil)
	for _, m := range metrics.Defaults(b) {
		s.AddMetric(m)
	}
	return s
}

func TestNewGridSearchValidates(t *testing.T) {
	if _, err := NewGridSearch([]string{"dt"}, nil); err == nil {
		t.Error("expected mismatch error")
	}
	if _, err := NewGridSearch([]string{"dt"}, [][]float64{{}}); err == nil {
		t.Error("expected empty range error")
	}
	g, err := NewGridSearch([]string{"dt", "p0.vx"}, [][]float64{{0.01, 0.02}, {10, 20, 30}})
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 6 {
		t.Errorf("size = %d", g.Size())
	}
}

func TestGridSearchFindsMinimum(t *testing.T) {
	base := config.GetPreset("heavy_light")
	base.Duration = 1

	// slower heavy ball carries less energy
	g, err := NewGridSearch([]string{"p0.vx"}, [][]float64{{80, 20, 50}})
	if err != nil {
		t.Fatal(err)
	}
	best, val, trials, err := g.Search(context.Background(), base, newSim, "kinetic_energy")
	if err != nil {
		t.Fatal(err)
	}
	if len(trials) != 3 {
		t.Fatalf("trials = %d", len(trials))
	}
	if best["p0.vx"] != 20 {
		t.Errorf("best = %v", best)
	}
	if want := 0.5 * 100 * 20 * 20; val < want*0.999 || val > want*1.001 {
		t.Errorf("value = %v, want ~%v", val, want)
	}
	if base.Particles[0].VX != 50 {
		t.Error("search mutated the base config")
	}
}

func TestGridSearchMeasuresEachPointsBounds(t *testing.T) {
	base := config.DefaultConfig()
	base.Duration = 1
	base.Particles = []config.ParticleConfig{
		{Mass: 10, Radius: 30, X: 700, Y: 300, VX: 100, Color: config.ColorFirst},
	}

	// inside the wider walls the ball never reaches a wall
	g, _ := NewGridSearch([]string{"width"}, [][]float64{{1600}})
	best, val, _, err := g.Search(context.Background(), base, newSim, "containment")
	if err != nil {
		t.Fatal(err)
	}
	if best["width"] != 1600 {
		t.Errorf("best = %v", best)
	}
	if val != 1 {
		t.Errorf("containment = %v, want 1", val)
	}
}

func TestGridSearchKeepsFailedTrials(t *testing.T) {
	base := config.GetPreset("heavy_light")
	base.Duration = 0.5

	g, _ := NewGridSearch([]string{"p0.mass"}, [][]float64{{-1, 100}})
	best, _, trials, err := g.Search(context.Background(), base, newSim, "collisions")
	if err != nil {
		t.Fatal(err)
	}
	if trials[0].Err == nil {
		t.Error("negative mass should fail")
	}
	if best["p0.mass"] != 100 {
		t.Errorf("best = %v", best)
	}
}

func TestGridSearchAllFail(t *testing.T) {
	base := config.GetPreset("heavy_light")
	g, _ := NewGridSearch([]string{"p0.mass"}, [][]float64{{-1}})
	if _, _, _, err := g.Search(context.Background(), base, newSim, "collisions"); err == nil {
		t.Error("expected error")
	}

	g, _ = NewGridSearch([]string{"dt"}, [][]float64{{0.01}})
	if _, _, _, err := g.Search(context.Background(), base, newSim, "nope"); err == nil {
		t.Error("expected missing metric error")
	}
}

func TestGridSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g, _ := NewGridSearch([]string{"dt"}, [][]float64{{0.01, 0.02}})
	_, _, trials, err := g.Search(ctx, config.GetPreset("heavy_light"), newSim, "collisions")
	if err == nil || len(trials) != 0 {
		t.Errorf("err = %v, trials = %d", err, len(trials))
	}
}
