// Package placement drives the two-ball setup flow: click to place a ball,
// adjust its mass and velocity, confirm, repeat, then run. It is shared by
// the window and terminal front ends and holds no rendering state.
package placement

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/physics"
)

type Phase int

const (
	PlacingFirst Phase = iota
	ConfiguringFirst
	PlacingSecond
	ConfiguringSecond
	Running
)

func (p Phase) String() string {
	switch p {
	case PlacingFirst:
		return "placing ball 1"
	case ConfiguringFirst:
		return "configuring ball 1"
	case PlacingSecond:
		return "placing ball 2"
	case ConfiguringSecond:
		return "configuring ball 2"
	case Running:
		return "running"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

func (p Phase) placing() bool     { return p == PlacingFirst || p == PlacingSecond }
func (p Phase) configuring() bool { return p == ConfiguringFirst || p == ConfiguringSecond }

// Ghost is the pending ball a front end previews before it is confirmed.
type Ghost struct {
	Position  dynamo.Vec
	Velocity  dynamo.Vec
	Mass      float64
	Radius    float64
	Following bool // tracks the cursor until clicked
}

type Controller struct {
	cfg    config.PlacementConfig
	logger *log.Logger

	phase    Phase
	mass     float64
	radius   float64
	position dynamo.Vec
	velocity dynamo.Vec
	colors   [2]color.RGBA
}

// New returns a controller waiting for the first ball. A nil logger discards
// messages.
func New(cfg config.PlacementConfig, logger *log.Logger) (*Controller, error) {
	first, err := config.ParseColor(cfg.FirstColor)
	if err != nil {
		return nil, err
	}
	second, err := config.ParseColor(cfg.SecondColor)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		cfg:      cfg,
		logger:   logger,
		phase:    PlacingFirst,
		mass:     cfg.Mass,
		radius:   cfg.Radius,
		velocity: cfg.FirstVelocity.Vec(),
		colors:   [2]color.RGBA{first, second},
	}, nil
}

func (c *Controller) Phase() Phase  { return c.phase }
func (c *Controller) Running() bool { return c.phase == Running }

// Click fixes the pending ball's position while placing.
func (c *Controller) Click(pos dynamo.Vec) bool {
	if !c.phase.placing() {
		return false
	}
	c.position = pos
	if c.phase == PlacingFirst {
		c.phase = ConfiguringFirst
		c.logger.Info("ball 1 placed; arrows set velocity, w/s set mass, enter confirms", "x", pos.X, "y", pos.Y)
	} else {
		c.phase = ConfiguringSecond
		c.logger.Info("ball 2 placed; configure and press enter to start", "x", pos.X, "y", pos.Y)
	}
	return true
}

// Nudge adds dx, dy velocity steps to the pending velocity.
func (c *Controller) Nudge(dx, dy int) bool {
	if !c.phase.configuring() {
		return false
	}
	step := c.cfg.VelocityStep
	c.velocity = c.velocity.Add(dynamo.Vec{X: float64(dx) * step, Y: float64(dy) * step})
	c.report()
	return true
}

func (c *Controller) Heavier() bool {
	if !c.phase.configuring() {
		return false
	}
	c.mass += c.cfg.MassStep
	c.radius += c.cfg.RadiusStep
	c.report()
	return true
}

func (c *Controller) Lighter() bool {
	if !c.phase.configuring() {
		return false
	}
	c.mass = math.Max(c.cfg.MinMass, c.mass-c.cfg.MassStep)
	c.radius = math.Max(c.cfg.MinRadius, c.radius-c.cfg.RadiusStep)
	c.report()
	return true
}

func (c *Controller) report() {
	c.logger.Info("pending ball", "mass", c.mass, "radius", c.radius, "vx", c.velocity.X, "vy", c.velocity.Y)
}

// Confirm adds the pending ball to w. Confirming the second ball starts the
// run. It reports false outside the configuring phases.
func (c *Controller) Confirm(w *physics.World) (bool, error) {
	if !c.phase.configuring() {
		return false, nil
	}
	idx := 0
	if c.phase == ConfiguringSecond {
		idx = 1
	}
	if _, err := w.Spawn(c.mass, c.radius, c.position, c.velocity, c.colors[idx]); err != nil {
		return false, err
	}

	if c.phase == ConfiguringFirst {
		c.velocity = c.cfg.SecondVelocity.Vec()
		c.phase = PlacingSecond
		c.logger.Info("ball 1 confirmed", "mass", c.mass)
		return true, nil
	}
	c.phase = Running
	c.logger.Info("simulation started", "particles", w.Len())
	return true, nil
}

// Reset clears the world and returns to placing the first ball. It only
// acts while running.
func (c *Controller) Reset(w *physics.World) bool {
	if c.phase != Running {
		return false
	}
	w.Clear()
	c.phase = PlacingFirst
	c.velocity = c.cfg.FirstVelocity.Vec()
	c.logger.Info("resetting")
	return true
}

// Skip starts running a world that was populated elsewhere (a preset).
func (c *Controller) Skip(w *physics.World) bool {
	if w.Len() == 0 {
		return false
	}
	c.phase = Running
	c.logger.Info("simulation started", "particles", w.Len())
	return true
}

// Ghost describes the pending ball; cursor is used while it is unplaced.
func (c *Controller) Ghost(cursor dynamo.Vec) (Ghost, bool) {
	switch {
	case c.phase.placing():
		return Ghost{Position: cursor, Velocity: c.velocity, Mass: c.mass, Radius: c.radius, Following: true}, true
	case c.phase.configuring():
		return Ghost{Position: c.position, Velocity: c.velocity, Mass: c.mass, Radius: c.radius}, true
	}
	return Ghost{}, false
}
