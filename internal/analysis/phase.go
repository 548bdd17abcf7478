package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/rigid2d/internal/vmath"
)

// PhasePortrait is a trajectory in (position, velocity) space.
type PhasePortrait struct {
	Points []vmath.Vector
}

// NewPhasePortrait pairs positions with velocities sample by sample. The
// shorter slice bounds the result.
func NewPhasePortrait(positions, velocities []float64) *PhasePortrait {
	n := min(len(positions), len(velocities))
	p := &PhasePortrait{Points: make([]vmath.Vector, n)}
	for i := 0; i < n; i++ {
		p.Points[i] = vmath.New(positions[i], velocities[i])
	}
	return p
}

// Bounds returns the corners of the box holding every point.
func (p *PhasePortrait) Bounds() (lo, hi vmath.Vector) {
	lo = vmath.New(math.Inf(1), math.Inf(1))
	hi = vmath.New(math.Inf(-1), math.Inf(-1))
	for _, pt := range p.Points {
		lo = vmath.New(math.Min(lo.X, pt.X), math.Min(lo.Y, pt.Y))
		hi = vmath.New(math.Max(hi.X, pt.X), math.Max(hi.Y, pt.Y))
	}
	return lo, hi
}

// density glyphs, indexed by hits per cell
var phaseGlyphs = []rune{' ', '•', '●', '█'}

// PhasePortraitToASCII plots the portrait on a width x height grid with 10%
// padding. Cells hit more often render heavier. Zero axes are drawn when
// they fall inside the plot.
func PhasePortraitToASCII(p *PhasePortrait, width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	lo, hi := p.Bounds()
	span := hi.Sub(lo)
	if span.X == 0 {
		span.X = 1
	}
	if span.Y == 0 {
		span.Y = 1
	}
	lo = lo.Sub(span.Scale(0.1))
	span = span.Scale(1.2)

	cell := func(v vmath.Vector) (col, row int) {
		col = int((v.X - lo.X) / span.X * float64(width-1))
		row = height - 1 - int((v.Y-lo.Y)/span.Y*float64(height-1))
		return col, row
	}

	hits := make([][]int, height)
	for i := range hits {
		hits[i] = make([]int, width)
	}
	for _, pt := range p.Points {
		col, row := cell(pt)
		if row >= 0 && row < height && col >= 0 && col < width {
			hits[row][col]++
		}
	}

	axisCol, axisRow := cell(vmath.Zero)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			n := hits[row][col]
			switch {
			case n > 0:
				sb.WriteRune(phaseGlyphs[min(n, len(phaseGlyphs)-1)])
			case col == axisCol && row == axisRow:
				sb.WriteRune('┼')
			case col == axisCol:
				sb.WriteRune('│')
			case row == axisRow:
				sb.WriteRune('─')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
