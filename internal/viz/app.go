package viz

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/placement"
)

const (
	canvasWidth     = 60
	canvasHeight    = 22
	minCanvasWidth  = 20
	minCanvasHeight = 8
	statsWidth      = 43
	historyCapacity = 300
	legendLimit     = 6
)

type TickMsg time.Time

// Model is the terminal front end: it owns the world and the placement
// controller and steps the world on every tick while running.
type Model struct {
	cfg       *config.Config
	world     *physics.World
	placement *placement.Controller
	renderer  *Renderer
	theme     Theme
	styles    styles
	frame     time.Duration

	cursor   dynamo.Vec
	paused   bool
	last     time.Time
	elapsed  float64
	contacts int
	energy   []float64
	showHelp bool
	err      error
}

// NewModel builds the front end. A config with particles starts running
// straight away; otherwise the user places two balls. A nil logger
// discards placement messages.
func NewModel(cfg *config.Config, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	world, err := cfg.BuildWorld()
	if err != nil {
		return Model{}, err
	}
	ctrl, err := placement.New(cfg.Placement, logger)
	if err != nil {
		return Model{}, err
	}
	if world.Len() > 0 {
		ctrl.Skip(world)
	}

	fps := cfg.FrameRate
	if fps <= 0 {
		fps = config.DefaultFrameRate
	}
	theme := ThemeNeon
	return Model{
		cfg:       cfg,
		world:     world,
		placement: ctrl,
		renderer:  NewRenderer(NewCanvas(canvasWidth, canvasHeight), world.Bounds()),
		theme:     theme,
		styles:    newStyles(theme),
		frame:     time.Second / time.Duration(fps),
		cursor:    world.Bounds().Center(),
		energy:    make([]float64, 0, historyCapacity),
	}, nil
}

// WithTheme returns a copy of m drawn with t.
func (m Model) WithTheme(t Theme) Model {
	m.theme = t
	m.styles = newStyles(t)
	return m
}

func (m Model) World() *physics.World  { return m.world }
func (m Model) Phase() placement.Phase { return m.placement.Phase() }
func (m Model) Contacts() int          { return m.contacts }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		default:
			m.key(msg.String())
		}
	case TickMsg:
		m.advance(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	w := width - statsWidth - 2*canvasPadX - 1
	h := height - 2*canvasPadY - 1
	w = max(w, minCanvasWidth)
	h = max(h, minCanvasHeight)
	m.renderer = NewRenderer(NewCanvas(w, h), m.world.Bounds())
}

func (m *Model) mouse(msg tea.MouseMsg) {
	col, row := msg.X-canvasPadX, msg.Y-canvasPadY
	if col < 0 || row < 0 || col >= m.renderer.Canvas().Width || row >= m.renderer.Canvas().Height {
		return
	}
	m.cursor = m.clampToWorld(m.renderer.CellToWorld(col, row))
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.placement.Click(m.cursor)
	}
}

func (m *Model) key(k string) {
	phase := m.placement.Phase()
	switch {
	case phase == placement.PlacingFirst || phase == placement.PlacingSecond:
		m.moveCursor(k)
	case phase == placement.ConfiguringFirst || phase == placement.ConfiguringSecond:
		m.configure(k)
	default:
		switch k {
		case " ":
			m.paused = !m.paused
		case "r":
			if m.placement.Reset(m.world) {
				m.elapsed, m.contacts, m.paused, m.err = 0, 0, false, nil
				m.energy = m.energy[:0]
			}
		}
	}
}

// moveCursor steps the placement cursor one terminal cell.
func (m *Model) moveCursor(k string) {
	cellW := 2 / m.renderer.Scale()
	cellH := 4 / m.renderer.Scale()
	switch k {
	case "up", "k":
		m.cursor.Y -= cellH
	case "down", "j":
		m.cursor.Y += cellH
	case "left", "h":
		m.cursor.X -= cellW
	case "right", "l":
		m.cursor.X += cellW
	case "enter", " ":
		m.placement.Click(m.cursor)
		return
	}
	m.cursor = m.clampToWorld(m.cursor)
}

func (m *Model) configure(k string) {
	switch k {
	case "up", "k":
		m.placement.Nudge(0, -1)
	case "down", "j":
		m.placement.Nudge(0, 1)
	case "left", "h":
		m.placement.Nudge(-1, 0)
	case "right", "l":
		m.placement.Nudge(1, 0)
	case "w", "+":
		m.placement.Heavier()
	case "s", "-":
		m.placement.Lighter()
	case "enter":
		if _, err := m.placement.Confirm(m.world); err != nil {
			m.err = err
		}
	}
}

// advance steps the world by the wall-clock time since the previous tick.
// While not running the clock restarts so no time accumulates.
func (m *Model) advance(now time.Time) {
	if m.last.IsZero() || !m.placement.Running() || m.paused {
		m.last = now
		return
	}
	dt := dynamo.ClampDt(now.Sub(m.last).Seconds(), m.world.MaxDt())
	m.last = now
	m.contacts += m.world.Step(dt)
	m.elapsed += dt
	if len(m.energy) >= historyCapacity {
		m.energy = m.energy[1:]
	}
	m.energy = append(m.energy, m.world.KineticEnergy())
}

func (m *Model) clampToWorld(p dynamo.Vec) dynamo.Vec {
	b := m.world.Bounds()
	return dynamo.Vec{X: math.Max(0, math.Min(b.Width, p.X)), Y: math.Max(0, math.Min(b.Height, p.Y))}
}

func (m Model) View() string {
	var ghost *placement.Ghost
	if g, ok := m.placement.Ghost(m.cursor); ok {
		ghost = &g
	}
	m.renderer.Draw(m.world.Particles(), ghost, m.theme)
	canvasView := m.styles.canvas.Render(m.renderer.Canvas().Render())

	st := m.styles
	var s strings.Builder
	s.WriteString(st.header.Render(GradientText("COLLIDE", m.theme.Title, m.theme.Accent)) + "\n")
	s.WriteString(st.active.Render(m.status()) + "\n\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.elapsed))
	row("Energy", fmt.Sprintf("%.1f", m.world.KineticEnergy()))
	row("Momentum", fmt.Sprintf("%.1f", m.world.Momentum().Norm()))
	row("Contacts", fmt.Sprintf("%d", m.contacts))

	if ghost != nil {
		s.WriteString("\nPENDING BALL\n")
		row("Mass", fmt.Sprintf("%.0f", ghost.Mass))
		row("Radius", fmt.Sprintf("%.0f", ghost.Radius))
		row("Velocity", fmt.Sprintf("(%.0f, %.0f)", ghost.Velocity.X, ghost.Velocity.Y))
	}

	if m.world.Len() > 0 {
		s.WriteString("\nPARTICLES\n")
		for i, p := range m.world.Particles() {
			if i == legendLimit {
				s.WriteString(st.label.Render(fmt.Sprintf("  +%d more", m.world.Len()-legendLimit)) + "\n")
				break
			}
			line := fmt.Sprintf(" m=%-5.0f r=%-3.0f |v|=%.1f", p.Mass(), p.Radius(), p.Velocity().Norm())
			s.WriteString(Swatch(config.Hex(p.Color())) + st.value.Render(line) + "\n")
		}
	}

	if m.err != nil {
		s.WriteString("\n" + st.active.Render(m.err.Error()) + "\n")
	}
	s.WriteString(st.help.Render(m.hint()))

	view := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + view
	}
	return view
}

func (m Model) status() string {
	switch {
	case !m.placement.Running():
		return strings.ToUpper(m.placement.Phase().String())
	case m.paused:
		return "PAUSED"
	}
	return "RUNNING"
}

func (m Model) hint() string {
	switch m.placement.Phase() {
	case placement.PlacingFirst, placement.PlacingSecond:
		return "─────────────────────\nClick or ←↑↓→ + Enter: place\nT:Theme ?:Help Q:Quit"
	case placement.ConfiguringFirst, placement.ConfiguringSecond:
		return "─────────────────────\n←↑↓→:Velocity W/S:Mass\nEnter:Confirm Q:Quit"
	}
	return "─────────────────────\nSP:Pause R:Reset Q:Quit\nT:Theme ?:Help"
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Mouse    - Place the pending ball   ║
║  Arrows   - Move cursor / velocity   ║
║  W / S    - Heavier / lighter ball   ║
║  Enter    - Place or confirm         ║
║  Space    - Pause/Resume simulation  ║
║  R        - Reset (while running)    ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run starts the terminal front end on the alternate screen with mouse
// tracking enabled.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
