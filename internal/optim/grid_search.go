package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/sim"
)

// GridSearch runs every combination of the named config parameters and
// keeps the one that minimizes a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d params but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search applies each grid point to a copy of base, runs it with a fresh
// simulator built for that point's bounds and records metricName. Points that fail to build or run are
// kept as trials with Err set. It fails only if no point succeeded.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	newSim func(dynamo.WorldBounds) *sim.Simulator,
	metricName string,
) (map[string]float64, float64, []Trial, error) {

	best := math.Inf(1)
	var bestParams map[string]float64
	trials := make([]Trial, 0, g.Size())

	g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) {
		val, err := g.evaluate(ctx, base, params, newSim, metricName)
		trials = append(trials, Trial{Params: params, Value: val, Err: err})
		if err == nil && val < best {
			best = val
			bestParams = params
		}
	})

	if err := ctx.Err(); err != nil {
		return bestParams, best, trials, err
	}
	if bestParams == nil {
		if len(trials) > 0 && trials[0].Err != nil {
			return nil, best, trials, fmt.Errorf("optim: no grid point succeeded: %w", trials[0].Err)
		}
		return nil, best, trials, fmt.Errorf("optim: no grid point succeeded")
	}
	return bestParams, best, trials, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, visit func(map[string]float64)) {
	if ctx.Err() != nil {
		return
	}
	if depth == len(g.paramNames) {
		visit(current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, visit)
	}
}

func (g *GridSearch) evaluate(
	ctx context.Context,
	base *config.Config,
	params map[string]float64,
	newSim func(dynamo.WorldBounds) *sim.Simulator,
	metricName string,
) (float64, error) {
	cfg := base.Clone()
	for name, v := range params {
		if err := cfg.Set(name, v); err != nil {
			return 0, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	world, err := cfg.BuildWorld()
	if err != nil {
		return 0, err
	}

	result, err := newSim(world.Bounds()).Run(ctx, world, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, ValidateState: true})
	if err != nil {
		return 0, err
	}
	val, ok := result.Metrics[metricName]
	if !ok {
		return 0, fmt.Errorf("optim: metric %q not recorded", metricName)
	}
	return val, nil
}
