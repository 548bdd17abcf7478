package vmath

import "math"

// Transform is a position plus rotation with sin/cos computed once.
type Transform struct {
	Position Vector
	Sin      float64
	Cos      float64
}

// NewTransform builds the transform for a body at position rotated by angle radians.
func NewTransform(position Vector, angle float64) Transform {
	sin, cos := math.Sincos(angle)
	return Transform{Position: position, Sin: sin, Cos: cos}
}

// Identity maps every vector to itself.
var Identity = Transform{Cos: 1}
