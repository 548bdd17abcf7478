package world

import (
	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/collision"
	"github.com/san-kum/rigid2d/internal/vmath"
)

const (
	MinIterations = 1
	MaxIterations = 128
)

// DefaultGravity is earth gravity in m/s² with +Y up.
var DefaultGravity = vmath.New(0, -9.81)

type World struct {
	gravity      vmath.Vector
	bodies       []*body.Body
	contactPairs [][2]int

	solver   SolverMode
	listener func(Manifold)
	scratch  scratch
}

func New() *World {
	return NewWithGravity(DefaultGravity)
}

func NewWithGravity(gravity vmath.Vector) *World {
	return &World{
		gravity:      gravity,
		bodies:       make([]*body.Body, 0),
		contactPairs: make([][2]int, 0),
		solver:       SolverRotationFriction,
	}
}

func (w *World) Gravity() vmath.Vector     { return w.gravity }
func (w *World) SetGravity(g vmath.Vector) { w.gravity = g }
func (w *World) Solver() SolverMode        { return w.solver }
func (w *World) SetSolver(mode SolverMode) { w.solver = mode }
func (w *World) BodyCount() int            { return len(w.bodies) }

// SetContactListener registers fn to receive every manifold after it has been
// resolved. Pass nil to remove it.
func (w *World) SetContactListener(fn func(Manifold)) { w.listener = fn }

func (w *World) AddBody(b *body.Body) {
	w.bodies = append(w.bodies, b)
}

// RemoveBody removes b by identity, keeping the order of the remaining bodies.
func (w *World) RemoveBody(b *body.Body) bool {
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return true
		}
	}
	return false
}

func (w *World) Body(index int) (*body.Body, bool) {
	if index < 0 || index >= len(w.bodies) {
		return nil, false
	}
	return w.bodies[index], true
}

// Bodies returns the world's body list. Callers must not modify it.
func (w *World) Bodies() []*body.Body {
	return w.bodies
}

// Step advances the world by dt seconds split across iterations sub-steps.
// The iteration count is clamped to [MinIterations, MaxIterations].
func (w *World) Step(dt float64, iterations int) {
	iterations = vmath.MustClampInt(MinIterations, MaxIterations, iterations)

	for it := 0; it < iterations; it++ {
		w.contactPairs = w.contactPairs[:0]
		w.stepBodies(dt, iterations)
		w.broadPhase()
		w.narrowPhase()
	}
}

func (w *World) stepBodies(dt float64, iterations int) {
	for _, b := range w.bodies {
		b.Step(dt, w.gravity, iterations)
	}
}

func (w *World) broadPhase() {
	for i := 0; i < len(w.bodies)-1; i++ {
		a := w.bodies[i]
		aabbA := a.AABB()

		for j := i + 1; j < len(w.bodies); j++ {
			b := w.bodies[j]

			if a.IsStatic() && b.IsStatic() {
				continue
			}
			if !collision.IntersectAABBs(aabbA, b.AABB()) {
				continue
			}
			w.contactPairs = append(w.contactPairs, [2]int{i, j})
		}
	}
}

func (w *World) narrowPhase() {
	for _, pair := range w.contactPairs {
		a := w.bodies[pair[0]]
		b := w.bodies[pair[1]]

		normal, depth, ok := collision.Collide(a, b)
		if !ok {
			continue
		}

		separateBodies(a, b, normal.Scale(depth))

		c1, c2, count := collision.FindContactPoints(a, b)
		m := Manifold{
			A:            pair[0],
			B:            pair[1],
			Normal:       normal,
			Depth:        depth,
			Contact1:     c1,
			Contact2:     c2,
			ContactCount: count,
		}

		w.resolve(m)

		if w.listener != nil {
			w.listener(m)
		}
	}
}

// separateBodies moves the pair apart by the minimum translation vector. A
// static body never moves; two dynamic bodies split the correction.
func separateBodies(a, b *body.Body, mtv vmath.Vector) {
	switch {
	case a.IsStatic():
		b.Move(mtv)
	case b.IsStatic():
		a.Move(mtv.Neg())
	default:
		a.Move(mtv.Div(2).Neg())
		b.Move(mtv.Div(2))
	}
}
