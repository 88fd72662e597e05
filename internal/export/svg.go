package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/collide/internal/analysis"
)

// ErrShortPath is returned for a trajectory with fewer than two points.
var ErrShortPath = errors.New("export: trajectory needs at least two points")

// svgColor normalizes a hex color to #rrggbb, or returns fallback if hex
// does not parse.
func svgColor(hex, fallback string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c.Hex()
}

// Disk is one particle as drawn.
type Disk struct {
	X, Y, Radius float64
	Color        string
}

// FrameToSVG draws disks inside a width x height world. World y grows
// downward, as in SVG, so no flip is applied.
func FrameToSVG(disks []Disk, width, height float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, d := range disks {
		fill := svgColor(d.Color, "#ffffff")
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, d.X, d.Y, d.Radius, fill))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG draws a particle path in world coordinates.
func TrajectoryToSVG(points []analysis.Point, width, height float64, strokeColor string) (string, error) {
	if len(points) < 2 {
		return "", ErrShortPath
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, svgColor(strokeColor, "#ffffff")))

	for i, p := range points {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String(), nil
}
