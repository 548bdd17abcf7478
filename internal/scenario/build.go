package scenario

import (
	"fmt"

	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/world"
)

// Build creates a world holding the bodies described by cfg, in order.
func Build(cfg *config.Config) (*world.World, error) {
	solver, err := world.ParseSolver(cfg.Solver)
	if err != nil {
		return nil, err
	}

	w := world.NewWithGravity(cfg.Gravity.Vector())
	w.SetSolver(solver)

	for i, bc := range cfg.Bodies {
		b, err := NewBody(bc)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		w.AddBody(b)
	}
	return w, nil
}

// NewBody constructs and places a single body from its config.
func NewBody(bc config.BodyConfig) (*body.Body, error) {
	shape, err := body.ParseShape(bc.Shape)
	if err != nil {
		return nil, err
	}

	var b *body.Body
	switch shape {
	case body.Circle:
		b, err = body.NewCircle(bc.Radius, bc.Density, bc.Restitution, bc.Static)
	case body.Box:
		b, err = body.NewBox(bc.Width, bc.Height, bc.Density, bc.Restitution, bc.Static)
	}
	if err != nil {
		return nil, err
	}

	b.MoveTo(bc.Position.Vector())
	b.RotateTo(bc.Angle)
	b.SetLinearVelocity(bc.Velocity.Vector())
	b.SetAngularVelocity(bc.AngularVelocity)
	if bc.Friction != nil {
		b.SetFriction(bc.Friction.Static, bc.Friction.Dynamic)
	}
	return b, nil
}
