package body

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/rigid2d/internal/vmath"
)

func TestNewCircle(t *testing.T) {
	b, err := NewCircle(1, 2, 0.5, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantMass := math.Pi * 2
	if math.Abs(b.Mass()-wantMass) > 1e-9 {
		t.Errorf("mass = %v, want %v", b.Mass(), wantMass)
	}
	if math.Abs(b.Inertia()-0.5*wantMass) > 1e-9 {
		t.Errorf("inertia = %v, want %v", b.Inertia(), 0.5*wantMass)
	}
	if math.Abs(b.InvMass()*b.Mass()-1) > 1e-9 {
		t.Errorf("inverse mass inconsistent: %v", b.InvMass())
	}
	if b.StaticFriction() != 0.6 || b.DynamicFriction() != 0.4 {
		t.Errorf("unexpected friction defaults %v/%v", b.StaticFriction(), b.DynamicFriction())
	}
	if b.TransformedVertices() != nil {
		t.Error("circle should have no vertices")
	}
}

func TestNewBox(t *testing.T) {
	b, err := NewBox(2, 4, 1, 0.2, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Mass() != 8 {
		t.Errorf("mass = %v, want 8", b.Mass())
	}
	wantInertia := (1.0 / 12.0) * 8 * (4 + 16)
	if math.Abs(b.Inertia()-wantInertia) > 1e-9 {
		t.Errorf("inertia = %v, want %v", b.Inertia(), wantInertia)
	}
	if len(b.LocalVertices()) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(b.LocalVertices()))
	}
}

func TestStaticBodyHasNoMass(t *testing.T) {
	for _, b := range []*Body{mustCircle(t, 1, true), mustBox(t, 2, 2, true)} {
		if b.Mass() != 0 || b.Inertia() != 0 || b.InvMass() != 0 || b.InvInertia() != 0 {
			t.Errorf("%s: static body has mass data %v %v %v %v",
				b.Shape(), b.Mass(), b.Inertia(), b.InvMass(), b.InvInertia())
		}
	}
}

func TestFactoryValidation(t *testing.T) {
	tests := []struct {
		name string
		make func() (*Body, error)
		want error
	}{
		{"tiny circle", func() (*Body, error) { return NewCircle(0.001, 1, 0, false) }, ErrAreaTooSmall},
		{"huge circle", func() (*Body, error) { return NewCircle(40, 1, 0, false) }, ErrAreaTooLarge},
		{"light box", func() (*Body, error) { return NewBox(1, 1, 0.05, 0, false) }, ErrDensityTooLow},
		{"heavy box", func() (*Body, error) { return NewBox(1, 1, 30, 0, false) }, ErrDensityTooHigh},
		{"area before density", func() (*Body, error) { return NewBox(100, 100, 30, 0, false) }, ErrAreaTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.make()
			if b != nil {
				t.Error("expected nil body on failure")
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Error() == "" {
				t.Error("expected descriptive message")
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	_, err := NewBox(1, 1, 0.05, 0, false)
	want := "body: min density is 0.1 (got 0.05)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRestitutionClamped(t *testing.T) {
	hi := mustBoxRestitution(t, 5)
	lo := mustBoxRestitution(t, -1)
	if hi.Restitution() != 1 || lo.Restitution() != 0 {
		t.Errorf("restitution not clamped: %v %v", hi.Restitution(), lo.Restitution())
	}
}

func TestInitialGeometry(t *testing.T) {
	b := mustBox(t, 2, 4, false)

	verts := b.TransformedVertices()
	for i, v := range verts {
		if v != b.LocalVertices()[i] {
			t.Errorf("vertex %d = %v, want %v", i, v, b.LocalVertices()[i])
		}
	}

	box := b.AABB()
	if box != NewAABB(-1, -2, 1, 2) {
		t.Errorf("AABB = %+v", box)
	}

	c := mustCircle(t, 1.5, false)
	if c.AABB() != NewAABB(-1.5, -1.5, 1.5, 1.5) {
		t.Errorf("circle AABB = %+v", c.AABB())
	}
}

func TestCachesInvalidatedByMoves(t *testing.T) {
	b := mustBox(t, 2, 2, false)
	_ = b.AABB()

	b.MoveTo(vmath.New(10, 0))
	if got := b.AABB(); got != NewAABB(9, -1, 11, 1) {
		t.Errorf("after MoveTo AABB = %+v", got)
	}

	b.Move(vmath.New(0, 5))
	if got := b.AABB(); got != NewAABB(9, 4, 11, 6) {
		t.Errorf("after Move AABB = %+v", got)
	}

	b.RotateTo(math.Pi / 4)
	half := math.Sqrt2
	got := b.AABB()
	if !vmath.NearlyEqualVec(got.Min, vmath.New(10-half, 5-half)) || !vmath.NearlyEqualVec(got.Max, vmath.New(10+half, 5+half)) {
		t.Errorf("after RotateTo AABB = %+v", got)
	}

	b.Rotate(-math.Pi / 4)
	if got := b.AABB(); !vmath.NearlyEqualVec(got.Min, vmath.New(9, 4)) {
		t.Errorf("after Rotate AABB = %+v", got)
	}
}

func TestStep(t *testing.T) {
	b := mustCircle(t, 1, false)
	b.SetAngularVelocity(2)
	g := vmath.New(0, -10)

	b.Step(1, g, 4)

	if b.LinearVelocity() != vmath.New(0, -2.5) {
		t.Errorf("velocity = %v", b.LinearVelocity())
	}
	if b.Position() != vmath.New(0, -0.625) {
		t.Errorf("position = %v", b.Position())
	}
	if b.Angle() != 0.5 {
		t.Errorf("angle = %v", b.Angle())
	}
	if b.AABB().Min.Y != -1.625 {
		t.Errorf("AABB not refreshed after step: %+v", b.AABB())
	}
}

func TestStepStaticIsNoop(t *testing.T) {
	b := mustBox(t, 4, 1, true)
	b.MoveTo(vmath.New(1, 1))
	b.SetLinearVelocity(vmath.New(5, 5))
	b.SetAngularVelocity(3)
	b.ApplyForce(vmath.New(100, 0))

	for i := 0; i < 10; i++ {
		b.Step(0.1, vmath.New(0, -9.81), 3)
	}

	if b.Position() != vmath.New(1, 1) || b.Angle() != 0 {
		t.Errorf("static body moved: %v %v", b.Position(), b.Angle())
	}
	if b.LinearVelocity() != vmath.Zero || b.AngularVelocity() != 0 {
		t.Errorf("static body gained velocity: %v %v", b.LinearVelocity(), b.AngularVelocity())
	}
}

func TestApplyForce(t *testing.T) {
	b := mustBox(t, 1, 1, false) // mass 1
	b.ApplyForce(vmath.New(3, 0))
	b.ApplyForce(vmath.New(1, 0))

	b.Step(0.5, vmath.Zero, 1)
	if b.LinearVelocity() != vmath.New(2, 0) {
		t.Errorf("velocity = %v, want (2,0)", b.LinearVelocity())
	}
	if b.Force() != vmath.Zero {
		t.Errorf("force not reset: %v", b.Force())
	}

	b.Step(0.5, vmath.Zero, 1)
	if b.LinearVelocity() != vmath.New(2, 0) {
		t.Errorf("force applied twice: %v", b.LinearVelocity())
	}
}

func TestInvalidShapePanics(t *testing.T) {
	b := mustCircle(t, 1, false)
	b.shape = ShapeType(42)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown shape")
		}
	}()
	b.AABB()
}

func TestParseShape(t *testing.T) {
	if s, err := ParseShape("circle"); err != nil || s != Circle {
		t.Errorf("circle: %v %v", s, err)
	}
	if s, err := ParseShape("rectangle"); err != nil || s != Box {
		t.Errorf("rectangle: %v %v", s, err)
	}
	if _, err := ParseShape("triangle"); err == nil {
		t.Error("expected error for unknown shape")
	}
}

func mustCircle(t *testing.T, r float64, static bool) *Body {
	t.Helper()
	b, err := NewCircle(r, 1, 0.5, static)
	if err != nil {
		t.Fatalf("NewCircle: %v", err)
	}
	return b
}

func mustBox(t *testing.T, w, h float64, static bool) *Body {
	t.Helper()
	b, err := NewBox(w, h, 1, 0.5, static)
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}
	return b
}

func mustBoxRestitution(t *testing.T, e float64) *Body {
	t.Helper()
	b, err := NewBox(1, 1, 1, e, false)
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}
	return b
}
