package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/collide/internal/physics"
)

// Job is one independent world to run in a batch.
type Job struct {
	Name   string
	World  *physics.World
	Config Config
}

// Batch runs independent worlds concurrently. Metrics carry state, so each
// job gets a fresh simulator from the factory.
type Batch struct {
	factory func() *Simulator
}

func NewBatch(factory func() *Simulator) *Batch {
	return &Batch{factory: factory}
}

// Run returns results in job order. Worlds must not be shared between jobs.
func (b *Batch) Run(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sim := b.factory()
			results[idx], errs[idx] = sim.Run(ctx, jobs[idx].World, jobs[idx].Config)
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", jobs[i].Name, err)
		}
	}

	return results, nil
}
