package vmath

import (
	"fmt"
	"math"
)

type Vector struct {
	X float64
	Y float64
}

var Zero = Vector{}

func New(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y} }
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y} }
func (v Vector) Neg() Vector         { return Vector{-v.X, -v.Y} }

func (v Vector) Scale(s float64) Vector { return Vector{v.X * s, v.Y * s} }

// ScaleVec is Scale with the scalar first.
func ScaleVec(s float64, v Vector) Vector { return Vector{s * v.X, s * v.Y} }

func (v Vector) Div(s float64) Vector { return Vector{v.X / s, v.Y / s} }

func (v Vector) Dot(o Vector) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product of v and o.
func (v Vector) Cross(o Vector) float64 { return v.X*o.Y - v.Y*o.X }

// Perp returns v rotated 90° counter-clockwise.
func (v Vector) Perp() Vector { return Vector{-v.Y, v.X} }

func (v Vector) Length() float64        { return math.Sqrt(v.X*v.X + v.Y*v.Y) }
func (v Vector) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vector) Distance(o Vector) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (v Vector) DistanceSquared(o Vector) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Normalize returns v scaled to unit length. The zero vector produces NaN components.
func (v Vector) Normalize() Vector {
	l := v.Length()
	return Vector{v.X / l, v.Y / l}
}

// Transform rotates v by t's cached angle and then translates it by t's position.
func (v Vector) Transform(t Transform) Vector {
	rx := v.X*t.Cos - v.Y*t.Sin
	ry := v.X*t.Sin + v.Y*t.Cos
	return Vector{rx + t.Position.X, ry + t.Position.Y}
}

// IsValid reports whether both components are finite.
func (v Vector) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vector) String() string {
	return fmt.Sprintf("X: %g, Y: %g", v.X, v.Y)
}
