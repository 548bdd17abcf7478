package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/vmath"
)

const (
	background  = "#323c46"
	staticFill  = "#696969"
	dynamicFill = "#8ecdf7"
	outline     = "#ffffff"
)

// viewport maps world coordinates (y up) onto an SVG canvas (y down).
type viewport struct {
	view          config.ViewConfig
	width, height float64
	scale         float64
}

func newViewport(view config.ViewConfig, width, height int) viewport {
	sx := float64(width) / view.Width()
	sy := float64(height) / view.Height()
	return viewport{view: view, width: float64(width), height: float64(height), scale: math.Min(sx, sy)}
}

func (v viewport) point(p vmath.Vector) (float64, float64) {
	return (p.X - v.view.Left) * v.scale, v.height - (p.Y-v.view.Bottom)*v.scale
}

func header(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// SceneToSVG draws bodies as seen through view. Circles carry a radius line
// showing their rotation.
func SceneToSVG(bodies []*body.Body, view config.ViewConfig, width, height int) string {
	vp := newViewport(view, width, height)

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1">
`, outline))

	for _, b := range bodies {
		fill := dynamicFill
		if b.IsStatic() {
			fill = staticFill
		}

		switch b.Shape() {
		case body.Circle:
			cx, cy := vp.point(b.Position())
			r := b.Radius() * vp.scale
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, r, fill))
			rim := b.Position().Add(vmath.New(math.Cos(b.Angle()), math.Sin(b.Angle())).Scale(b.Radius()))
			ex, ey := vp.point(rim)
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, cx, cy, ex, ey))
		case body.Box:
			pts := make([]string, 0, 4)
			for _, v := range b.TransformedVertices() {
				x, y := vp.point(v)
				pts = append(pts, fmt.Sprintf("%.1f,%.1f", x, y))
			}
			sb.WriteString(fmt.Sprintf(`<polygon points="%s" fill="%s"/>
`, strings.Join(pts, " "), fill))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG creates an SVG path through points, scaled to fit with a
// 10% margin.
func TrajectoryToSVG(points []vmath.Vector, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	view := config.ViewConfig{
		Left:   minX - rangeX*0.1,
		Right:  maxX + rangeX*0.1,
		Bottom: minY - rangeY*0.1,
		Top:    maxY + rangeY*0.1,
	}
	vp := newViewport(view, width, height)

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, p := range points {
		x, y := vp.point(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
