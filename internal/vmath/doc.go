// Package vmath provides the 2D vector math used by the rigid body engine.
//
// [Vector] is an immutable value type; every operation returns a new value.
// Scalar helpers cover clamping and epsilon comparison:
//
//   - [Clamp], [ClampInt]: range clamping that rejects inverted bounds with [ErrRange]
//   - [NearlyEqual], [NearlyEqualVec]: comparison within [VerySmallAmount]
//   - [Transform]: cached rotation plus translation for mapping local geometry
//
// # Degenerate input
//
// [Vector.Normalize] divides by the length without guarding zero. A zero vector
// yields NaN components; callers that can produce one must check first.
package vmath
