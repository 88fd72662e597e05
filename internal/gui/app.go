package gui

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/placement"
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColGhost   = rl.NewColor(255, 255, 255, 100)
	ColVector  = rl.Yellow
)

const maxTelemetry = 200

// App is the window front end: placement by mouse, then live stepping.
type App struct {
	World     *physics.World
	Placement *placement.Controller
	Contacts  int
	Paused    bool
	Telemetry []float64 // kinetic energy ring buffer

	logger *log.Logger
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.World.Width), int32(cfg.World.Height), "Collisions")
	rl.SetTargetFPS(int32(cfg.FrameRate))
	rl.SetExitKey(0)
}

// NewApp builds the world from cfg. Configured particles start running at
// once; an empty config waits for two balls to be placed.
func NewApp(cfg *config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	world, err := cfg.BuildWorld()
	if err != nil {
		return nil, err
	}
	ctrl, err := placement.New(cfg.Placement, logger)
	if err != nil {
		return nil, err
	}
	if world.Len() > 0 {
		ctrl.Skip(world)
	}
	return &App{
		World:     world,
		Placement: ctrl,
		Telemetry: make([]float64, 0, maxTelemetry),
		logger:    logger,
	}, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, logger *log.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	initWindow(cfg)
	defer rl.CloseWindow()
	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
		if err := a.World.SetBounds(w, h); err != nil {
			a.logger.Warn("ignoring resize", "err", err)
		}
	}

	if !a.Placement.Running() {
		a.updatePlacement()
		return
	}

	if rl.IsKeyPressed(rl.KeyR) {
		a.Placement.Reset(a.World)
		a.Contacts, a.Paused = 0, false
		a.Telemetry = a.Telemetry[:0]
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Paused = !a.Paused
	}
	if a.Paused {
		return
	}

	// GetFrameTime only covers the last frame, so placement time never
	// accumulates into the first step.
	a.Contacts += a.World.Step(float64(rl.GetFrameTime()))
	if len(a.Telemetry) >= maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
	a.Telemetry = append(a.Telemetry, a.World.KineticEnergy())
}

// placementKeys is the set of placement keys pressed in one frame.
type placementKeys struct {
	Up, Down, Left, Right bool
	Heavier, Lighter      bool
	Confirm               bool
}

func pressedPlacementKeys() placementKeys {
	return placementKeys{
		Up:      rl.IsKeyPressed(rl.KeyUp),
		Down:    rl.IsKeyPressed(rl.KeyDown),
		Left:    rl.IsKeyPressed(rl.KeyLeft),
		Right:   rl.IsKeyPressed(rl.KeyRight),
		Heavier: rl.IsKeyPressed(rl.KeyW),
		Lighter: rl.IsKeyPressed(rl.KeyS),
		Confirm: rl.IsKeyPressed(rl.KeyEnter),
	}
}

func (a *App) updatePlacement() {
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.Placement.Click(mouseWorld())
	}
	a.applyPlacementKeys(pressedPlacementKeys())
}

// applyPlacementKeys handles every key pressed this frame. Adjustments
// land before Confirm so they reach the ball being confirmed.
func (a *App) applyPlacementKeys(k placementKeys) {
	if k.Up {
		a.Placement.Nudge(0, -1)
	}
	if k.Down {
		a.Placement.Nudge(0, 1)
	}
	if k.Left {
		a.Placement.Nudge(-1, 0)
	}
	if k.Right {
		a.Placement.Nudge(1, 0)
	}
	if k.Heavier {
		a.Placement.Heavier()
	}
	if k.Lighter {
		a.Placement.Lighter()
	}
	if k.Confirm {
		if _, err := a.Placement.Confirm(a.World); err != nil {
			a.logger.Error("cannot add ball", "err", err)
		}
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	for _, p := range a.World.Particles() {
		rl.DrawCircleV(vec2(p.Position()), float32(p.Radius()), rlColor(p.Color()))
	}
	if g, ok := a.Placement.Ghost(mouseWorld()); ok {
		a.drawGhost(g)
	}
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) drawGhost(g placement.Ghost) {
	if g.Following {
		rl.DrawCircleV(vec2(g.Position), float32(g.Radius), ColGhost)
		return
	}
	rl.DrawCircleV(vec2(g.Position), float32(g.Radius), ColSelect)
	rl.DrawLineV(vec2(g.Position), vec2(g.Position.Add(g.Velocity)), ColVector)
}

func (a *App) DrawHUD() {
	rl.DrawText("collide", 20, 20, 24, ColSelect)

	status := "RUNNING"
	switch {
	case !a.Placement.Running():
		status = a.Placement.Phase().String()
	case a.Paused:
		status = "PAUSED"
	}
	rl.DrawText(status, 130, 26, 16, ColText)

	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	rl.DrawText(fmt.Sprintf("contacts %d  energy %.1f", a.Contacts, a.World.KineticEnergy()), 20, 50, 14, ColText)
	a.DrawTelemetry(20, int32(h)-90)

	hint := "[SPACE] PAUSE  [R] RESET  [Q] QUIT"
	if !a.Placement.Running() {
		hint = "[CLICK] PLACE  [ARROWS] VELOCITY  [W/S] MASS  [ENTER] CONFIRM"
	}
	rl.DrawText(hint, int32(w)-rl.MeasureText(hint, 14)-20, int32(h)-30, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 20, int32(h)-30, 14, ColTextDim)
}

func (a *App) DrawTelemetry(x, y int32) {
	if len(a.Telemetry) < 2 {
		return
	}
	const width, height = 300, 50

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(x) + float32(i)/float32(len(a.Telemetry))*width
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(y+height) - float32(norm)*height
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("E: %.2e", a.Telemetry[len(a.Telemetry)-1]), x+width+10, y+height-10, 14, ColText)
}

func mouseWorld() dynamo.Vec {
	m := rl.GetMousePosition()
	return dynamo.Vec{X: float64(m.X), Y: float64(m.Y)}
}

func vec2(v dynamo.Vec) rl.Vector2 { return rl.NewVector2(float32(v.X), float32(v.Y)) }

func rlColor(c color.RGBA) rl.Color { return rl.NewColor(c.R, c.G, c.B, c.A) }
