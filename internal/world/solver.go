package world

import (
	"fmt"
	"math"

	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/vmath"
)

// SolverMode selects the impulse model used to resolve contacts.
type SolverMode int

const (
	// SolverRotationFriction applies normal impulses with angular response
	// followed by Coulomb friction. This is the default.
	SolverRotationFriction SolverMode = iota
	// SolverRotation applies normal impulses with angular response only.
	SolverRotation
	// SolverBasic applies a single linear impulse along the normal.
	SolverBasic
)

func (m SolverMode) String() string {
	switch m {
	case SolverRotationFriction:
		return "rotation-friction"
	case SolverRotation:
		return "rotation"
	case SolverBasic:
		return "basic"
	}
	return fmt.Sprintf("SolverMode(%d)", int(m))
}

func ParseSolver(name string) (SolverMode, error) {
	switch name {
	case "", "rotation-friction", "friction":
		return SolverRotationFriction, nil
	case "rotation":
		return SolverRotation, nil
	case "basic":
		return SolverBasic, nil
	}
	return 0, fmt.Errorf("unknown solver %q", name)
}

// scratch holds per-contact solver state. A manifold has at most two contact
// points, and the contents are only meaningful during a single resolve call.
type scratch struct {
	contacts [2]vmath.Vector
	impulses [2]vmath.Vector
	ra       [2]vmath.Vector
	rb       [2]vmath.Vector
	friction [2]vmath.Vector
	j        [2]float64
}

func (s *scratch) reset(count int) {
	for i := 0; i < count; i++ {
		s.impulses[i] = vmath.Zero
		s.ra[i] = vmath.Zero
		s.rb[i] = vmath.Zero
		s.friction[i] = vmath.Zero
		s.j[i] = 0
	}
}

func (w *World) resolve(m Manifold) {
	switch w.solver {
	case SolverBasic:
		w.resolveBasic(m)
	case SolverRotation:
		w.resolveWithRotation(m)
	default:
		w.resolveWithRotationAndFriction(m)
	}
}

// resolveBasic ignores rotation and contact points.
func (w *World) resolveBasic(m Manifold) {
	a := w.bodies[m.A]
	b := w.bodies[m.B]

	relVel := b.LinearVelocity().Sub(a.LinearVelocity())
	if relVel.Dot(m.Normal) > 0 {
		return
	}

	e := math.Min(a.Restitution(), b.Restitution())

	j := -(1 + e) * relVel.Dot(m.Normal)
	j /= a.InvMass() + b.InvMass()

	impulse := m.Normal.Scale(j)

	a.SetLinearVelocity(a.LinearVelocity().Sub(impulse.Scale(a.InvMass())))
	b.SetLinearVelocity(b.LinearVelocity().Add(impulse.Scale(b.InvMass())))
}

func (w *World) resolveWithRotation(m Manifold) {
	a := w.bodies[m.A]
	b := w.bodies[m.B]
	s := &w.scratch

	e := math.Min(a.Restitution(), b.Restitution())

	s.contacts[0] = m.Contact1
	s.contacts[1] = m.Contact2
	s.reset(m.ContactCount)

	w.normalImpulses(a, b, m, e)
	applyImpulses(a, b, s.impulses[:m.ContactCount], s.ra[:], s.rb[:])
}

func (w *World) resolveWithRotationAndFriction(m Manifold) {
	a := w.bodies[m.A]
	b := w.bodies[m.B]
	s := &w.scratch

	e := math.Min(a.Restitution(), b.Restitution())
	sf := (a.StaticFriction() + b.StaticFriction()) * 0.5
	df := (a.DynamicFriction() + b.DynamicFriction()) * 0.5

	s.contacts[0] = m.Contact1
	s.contacts[1] = m.Contact2
	s.reset(m.ContactCount)

	w.normalImpulses(a, b, m, e)
	applyImpulses(a, b, s.impulses[:m.ContactCount], s.ra[:], s.rb[:])

	count := float64(m.ContactCount)

	for i := 0; i < m.ContactCount; i++ {
		ra := s.contacts[i].Sub(a.Position())
		rb := s.contacts[i].Sub(b.Position())
		s.ra[i] = ra
		s.rb[i] = rb

		raPerp := ra.Perp()
		rbPerp := rb.Perp()

		relVel := relativeVelocity(a, b, raPerp, rbPerp)

		tangent := relVel.Sub(m.Normal.Scale(relVel.Dot(m.Normal)))
		if vmath.NearlyEqualVec(tangent, vmath.Zero) {
			continue
		}
		tangent = tangent.Normalize()

		raPerpDotT := raPerp.Dot(tangent)
		rbPerpDotT := rbPerp.Dot(tangent)

		denom := a.InvMass() + b.InvMass() +
			raPerpDotT*raPerpDotT*a.InvInertia() +
			rbPerpDotT*rbPerpDotT*b.InvInertia()

		jt := -relVel.Dot(tangent)
		jt /= denom
		jt /= count

		j := s.j[i]
		if math.Abs(jt) <= j*sf {
			s.friction[i] = tangent.Scale(jt)
		} else {
			s.friction[i] = tangent.Scale(-j * df)
		}
	}

	applyImpulses(a, b, s.friction[:m.ContactCount], s.ra[:], s.rb[:])
}

// normalImpulses fills the scratch impulse, lever arm and magnitude slots for
// every contact of m. Separating contacts keep a zero impulse.
func (w *World) normalImpulses(a, b *body.Body, m Manifold, e float64) {
	s := &w.scratch
	count := float64(m.ContactCount)

	for i := 0; i < m.ContactCount; i++ {
		ra := s.contacts[i].Sub(a.Position())
		rb := s.contacts[i].Sub(b.Position())
		s.ra[i] = ra
		s.rb[i] = rb

		raPerp := ra.Perp()
		rbPerp := rb.Perp()

		contactVel := relativeVelocity(a, b, raPerp, rbPerp).Dot(m.Normal)
		if contactVel > 0 {
			continue
		}

		raPerpDotN := raPerp.Dot(m.Normal)
		rbPerpDotN := rbPerp.Dot(m.Normal)

		denom := a.InvMass() + b.InvMass() +
			raPerpDotN*raPerpDotN*a.InvInertia() +
			rbPerpDotN*rbPerpDotN*b.InvInertia()

		j := -(1 + e) * contactVel
		j /= denom
		j /= count

		s.j[i] = j
		s.impulses[i] = m.Normal.Scale(j)
	}
}

func relativeVelocity(a, b *body.Body, raPerp, rbPerp vmath.Vector) vmath.Vector {
	va := a.LinearVelocity().Add(raPerp.Scale(a.AngularVelocity()))
	vb := b.LinearVelocity().Add(rbPerp.Scale(b.AngularVelocity()))
	return vb.Sub(va)
}

func applyImpulses(a, b *body.Body, impulses []vmath.Vector, ra, rb []vmath.Vector) {
	for i, impulse := range impulses {
		a.SetLinearVelocity(a.LinearVelocity().Sub(impulse.Scale(a.InvMass())))
		a.SetAngularVelocity(a.AngularVelocity() - ra[i].Cross(impulse)*a.InvInertia())
		b.SetLinearVelocity(b.LinearVelocity().Add(impulse.Scale(b.InvMass())))
		b.SetAngularVelocity(b.AngularVelocity() + rb[i].Cross(impulse)*b.InvInertia())
	}
}
