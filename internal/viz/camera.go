package viz

import (
	"math"

	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/vmath"
)

const (
	minZoom = 0.25
	maxZoom = 8
)

// Camera maps world coordinates (y up) to canvas pixels (y down).
type Camera struct {
	Center vmath.Vector
	Zoom   float64

	pixelW, pixelH int
	baseScale      float64
}

// NewCamera fits view into a canvas of the given pixel size.
func NewCamera(view config.ViewConfig, pixelW, pixelH int) *Camera {
	scale := math.Min(float64(pixelW)/view.Width(), float64(pixelH)/view.Height())
	return &Camera{
		Center:    vmath.New((view.Left+view.Right)/2, (view.Bottom+view.Top)/2),
		Zoom:      1,
		pixelW:    pixelW,
		pixelH:    pixelH,
		baseScale: scale,
	}
}

// Scale is pixels per world unit.
func (c *Camera) Scale() float64 { return c.baseScale * c.Zoom }

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(maxZoom, c.Zoom*1.25) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(minZoom, c.Zoom/1.25) }

func (c *Camera) Project(p vmath.Vector) (int, int) {
	s := c.Scale()
	x := float64(c.pixelW)/2 + (p.X-c.Center.X)*s
	y := float64(c.pixelH)/2 - (p.Y-c.Center.Y)*s
	return int(math.Round(x)), int(math.Round(y))
}

// Unproject maps a pixel back into world space.
func (c *Camera) Unproject(x, y int) vmath.Vector {
	s := c.Scale()
	return vmath.New(
		c.Center.X+(float64(x)-float64(c.pixelW)/2)/s,
		c.Center.Y-(float64(y)-float64(c.pixelH)/2)/s,
	)
}

// Extents returns the visible world rectangle.
func (c *Camera) Extents() (left, right, bottom, top float64) {
	s := c.Scale()
	hw := float64(c.pixelW) / 2 / s
	hh := float64(c.pixelH) / 2 / s
	return c.Center.X - hw, c.Center.X + hw, c.Center.Y - hh, c.Center.Y + hh
}
