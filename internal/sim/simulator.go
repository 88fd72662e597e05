package sim

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/physics"
)

// Simulator steps a world with a fixed dt, the headless counterpart of the
// interactive frame loop.
type Simulator struct {
	metrics   []Metric
	observers []Observer
	logger    *log.Logger
}

func New(logger *log.Logger) *Simulator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    logger,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// MaxSteps bounds the number of steps in one run. Every step is recorded.
const MaxSteps = 1_000_000

// Run advances w for cfg.Duration. Each step uses cfg.Dt clamped by the
// world's MaxDt. The world is mutated in place.
func (s *Simulator) Run(ctx context.Context, w *physics.World, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if w.Len() == 0 {
		return nil, dynamo.ErrEmptyWorld
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	dt := dynamo.ClampDt(cfg.Dt, w.MaxDt())

	result := &Result{
		States:   make([]State, 0, steps+1),
		Times:    make([]float64, 0, steps+1),
		Contacts: make([]int, 0, steps+1),
		Masses:   make([]float64, 0, w.Len()),
		Radii:    make([]float64, 0, w.Len()),
		Metrics:  make(map[string]float64),
	}
	for _, p := range w.Particles() {
		result.Masses = append(result.Masses, p.Mass())
		result.Radii = append(result.Radii, p.Radius())
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	result.States = append(result.States, Capture(w.Particles()))
	result.Times = append(result.Times, t)
	result.Contacts = append(result.Contacts, 0)

	initialEnergy := w.KineticEnergy()
	s.logger.Debug("run started", "particles", w.Len(), "steps", steps, "dt", dt)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		contacts := w.Step(dt)
		t += dt
		result.StepsTaken++
		result.Collisions += contacts

		if contacts > 0 {
			s.logger.Debug("collision", "step", i, "t", t, "contacts", contacts)
		}

		state := Capture(w.Particles())
		if cfg.ValidateState && !state.IsValid() {
			return result, &dynamo.SimulationError{Step: i, Time: t, Particle: firstInvalid(state), Wrapped: dynamo.ErrUnstable}
		}

		frame := Frame{Step: i, Time: t, Dt: dt, Contacts: contacts, Particles: w.Particles()}
		for _, m := range s.metrics {
			m.Observe(frame)
		}
		for _, obs := range s.observers {
			obs.OnStep(frame)
		}

		result.States = append(result.States, state)
		result.Times = append(result.Times, t)
		result.Contacts = append(result.Contacts, contacts)
	}

	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(w.KineticEnergy()-initialEnergy) / initialEnergy
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = w.Snapshot()

	s.logger.Debug("run finished", "steps", result.StepsTaken, "collisions", result.Collisions)
	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if steps := cfg.Duration / cfg.Dt; !(steps <= MaxSteps) {
		return fmt.Errorf("duration %g at dt %g needs %.0f steps, limit is %d", cfg.Duration, cfg.Dt, steps, MaxSteps)
	}
	return nil
}

func firstInvalid(s State) int {
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i / Stride
		}
	}
	return -1
}
