package body

import (
	"fmt"

	"github.com/san-kum/rigid2d/internal/vmath"
)

// ShapeType is the closed set of collision shapes.
type ShapeType int

const (
	Circle ShapeType = iota
	Box
)

func (s ShapeType) String() string {
	switch s {
	case Circle:
		return "circle"
	case Box:
		return "box"
	}
	return fmt.Sprintf("ShapeType(%d)", int(s))
}

// ParseShape maps a config name to a ShapeType.
func ParseShape(name string) (ShapeType, error) {
	switch name {
	case "circle":
		return Circle, nil
	case "box", "rectangle":
		return Box, nil
	}
	return 0, fmt.Errorf("body: unknown shape %q", name)
}

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min vmath.Vector
	Max vmath.Vector
}

func NewAABB(minX, minY, maxX, maxY float64) AABB {
	return AABB{Min: vmath.New(minX, minY), Max: vmath.New(maxX, maxY)}
}

func (a AABB) Width() float64  { return a.Max.X - a.Min.X }
func (a AABB) Height() float64 { return a.Max.Y - a.Min.Y }

// boxVertices returns the corners of a width×height rectangle centered on the
// origin, clockwise from the top-left.
func boxVertices(width, height float64) []vmath.Vector {
	left := -width / 2
	right := left + width
	bottom := -height / 2
	top := bottom + height

	return []vmath.Vector{
		vmath.New(left, top),
		vmath.New(right, top),
		vmath.New(right, bottom),
		vmath.New(left, bottom),
	}
}
