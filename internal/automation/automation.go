package automation

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/metrics"
	"github.com/san-kum/collide/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run: a preset or config file plus overrides.
type ScenarioStep struct {
	Preset   string             `yaml:"preset"`
	Config   string             `yaml:"config"`
	Duration float64            `yaml:"duration"`
	Dt       float64            `yaml:"dt"`
	Params   map[string]float64 `yaml:"params"`
	SaveAs   string             `yaml:"save_as"`
}

// StepResult pairs a finished step with the config it ran.
type StepResult struct {
	Name   string
	Config *config.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Build resolves the step's configuration.
func (s ScenarioStep) Build() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Preset != "" && s.Config != "":
		return nil, fmt.Errorf("preset and config are exclusive")
	case s.Preset != "":
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	case s.Config != "":
		var err error
		if cfg, err = config.Load(s.Config); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("step needs a preset or a config")
	}

	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.Duration != 0 {
		cfg.Duration = s.Duration
	}
	for name, v := range s.Params {
		if err := cfg.Set(name, v); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

func (s ScenarioStep) name(i int) string {
	switch {
	case s.SaveAs != "":
		return s.SaveAs
	case s.Preset != "":
		return s.Preset
	}
	return fmt.Sprintf("step%d", i+1)
}

// RunScenario executes all steps in order, each on a fresh simulator from
// newSim. Results of completed steps are returned alongside any error.
func RunScenario(ctx context.Context, scenario *Scenario, newSim func(dynamo.WorldBounds) *sim.Simulator, logger *log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.name(i)
		logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", name)

		cfg, err := step.Build()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		world, err := cfg.BuildWorld()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := newSim(world.Bounds()).Run(ctx, world, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, ValidateState: true})
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Name: name, Config: cfg, Result: result})
	}

	return results, nil
}

// MonteCarloConfig perturbs every initial velocity component of Base by a
// uniform amount in [-Perturbation, Perturbation].
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds the outcome of one perturbed run
type MonteCarloResult struct {
	TrialID     int
	Velocities  []dynamo.Vec
	Collisions  int
	EnergyDrift float64
	Containment float64
	Stable      bool // kinetic energy drift below StableDrift
}

// StableDrift is the relative energy drift above which a trial counts as
// unstable.
const StableDrift = 1e-6

// RunMonteCarlo executes multiple trials with random velocity perturbations
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, logger *log.Logger) ([]MonteCarloResult, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.NumTrials)
	}
	if len(cfg.Base.Particles) == 0 {
		return nil, dynamo.ErrEmptyWorld
	}
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		trialCfg := cfg.Base.Clone()
		vels := make([]dynamo.Vec, len(trialCfg.Particles))
		for i := range trialCfg.Particles {
			p := &trialCfg.Particles[i]
			p.VX += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
			p.VY += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
			vels[i] = dynamo.Vec{X: p.VX, Y: p.VY}
		}

		world, err := trialCfg.BuildWorld()
		if err != nil {
			return results, err
		}
		containment := metrics.NewContainment(world.Bounds())
		s := sim.New(nil)
		s.AddMetric(containment)

		result, err := s.Run(ctx, world, sim.Config{Dt: trialCfg.Dt, Duration: trialCfg.Duration, ValidateState: true})
		if err != nil {
			return results, err
		}

		results = append(results, MonteCarloResult{
			TrialID:     trial,
			Velocities:  vels,
			Collisions:  result.Collisions,
			EnergyDrift: result.EnergyDrift,
			Containment: containment.Value(),
			Stable:      result.EnergyDrift < StableDrift,
		})

		if (trial+1)%10 == 0 {
			logger.Info("monte carlo", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats counts stable and unstable trials.
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
