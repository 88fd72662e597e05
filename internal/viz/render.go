package viz

import (
	"math"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/placement"
)

// Renderer maps world coordinates onto a canvas, preserving aspect ratio
// and centering the world in the spare space.
type Renderer struct {
	canvas *Canvas
	bounds dynamo.WorldBounds
	scale  float64
	ox, oy float64
}

func NewRenderer(c *Canvas, bounds dynamo.WorldBounds) *Renderer {
	r := &Renderer{canvas: c}
	r.Fit(bounds)
	return r
}

// Fit recomputes the projection for new bounds or a resized canvas.
func (r *Renderer) Fit(bounds dynamo.WorldBounds) {
	r.bounds = bounds
	pw, ph := r.canvas.PixelSize()
	r.scale = math.Min(float64(pw-1)/bounds.Width, float64(ph-1)/bounds.Height)
	r.ox = (float64(pw-1) - bounds.Width*r.scale) / 2
	r.oy = (float64(ph-1) - bounds.Height*r.scale) / 2
}

func (r *Renderer) Canvas() *Canvas { return r.canvas }
func (r *Renderer) Scale() float64  { return r.scale }

// Project maps a world point to sub-pixel coordinates.
func (r *Renderer) Project(p dynamo.Vec) (int, int) {
	return int(math.Round(r.ox + p.X*r.scale)), int(math.Round(r.oy + p.Y*r.scale))
}

// Unproject maps sub-pixel coordinates back into the world.
func (r *Renderer) Unproject(x, y int) dynamo.Vec {
	return dynamo.Vec{X: (float64(x) - r.ox) / r.scale, Y: (float64(y) - r.oy) / r.scale}
}

// CellToWorld returns the world point under the center of a terminal cell.
func (r *Renderer) CellToWorld(col, row int) dynamo.Vec {
	return r.Unproject(col*2+1, row*4+2)
}

// WorldToCell returns the terminal cell containing a world point.
func (r *Renderer) WorldToCell(p dynamo.Vec) (int, int) {
	x, y := r.Project(p)
	return x / 2, y / 4
}

func (r *Renderer) radius(worldRadius float64) int {
	return int(math.Max(1, math.Round(worldRadius*r.scale)))
}

// Draw clears the canvas and renders the walls and every particle in its
// own color. A following ghost is outlined; a placed one is filled and
// shows its velocity vector.
func (r *Renderer) Draw(particles []*physics.Particle, ghost *placement.Ghost, theme Theme) {
	r.canvas.Clear()

	r.canvas.Pen(string(theme.Wall))
	x0, y0 := r.Project(dynamo.Vec{})
	x1, y1 := r.Project(dynamo.Vec{X: r.bounds.Width, Y: r.bounds.Height})
	r.canvas.DrawRect(x0, y0, x1, y1)

	for _, p := range particles {
		cx, cy := r.Project(p.Position())
		r.canvas.Pen(config.Hex(p.Color()))
		r.canvas.FillCircle(cx, cy, r.radius(p.Radius()))
	}

	if ghost != nil {
		cx, cy := r.Project(ghost.Position)
		r.canvas.Pen(string(theme.Ghost))
		if ghost.Following {
			r.canvas.DrawCircle(cx, cy, r.radius(ghost.Radius))
		} else {
			r.canvas.FillCircle(cx, cy, r.radius(ghost.Radius))
			// one second of travel
			tx, ty := r.Project(ghost.Position.Add(ghost.Velocity))
			r.canvas.Pen(string(theme.Vector))
			r.canvas.DrawLine(cx, cy, tx, ty)
		}
	}
	r.canvas.Pen("")
}
