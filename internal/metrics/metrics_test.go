package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/vmath"
	"github.com/san-kum/rigid2d/internal/world"
)

func testWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.NewWithGravity(vmath.Zero)

	ground, err := body.NewBox(10, 1, 1, 0.5, true)
	if err != nil {
		t.Fatal(err)
	}
	a, err := body.NewCircle(1, 1, 0.5, false)
	if err != nil {
		t.Fatal(err)
	}
	a.SetLinearVelocity(vmath.New(2, 0))
	a.MoveTo(vmath.New(0, 5))

	b, err := body.NewBox(1, 1, 2, 0.5, false)
	if err != nil {
		t.Fatal(err)
	}
	b.SetLinearVelocity(vmath.New(0, -1))
	b.SetAngularVelocity(3)
	b.MoveTo(vmath.New(5, 5))

	w.AddBody(ground)
	w.AddBody(a)
	w.AddBody(b)
	return w
}

func TestKineticEnergy(t *testing.T) {
	w := testWorld(t)
	m := NewKineticEnergy()

	a, _ := w.Body(1)
	b, _ := w.Body(2)
	expected := 0.5*a.Mass()*4 + 0.5*b.Mass()*1 + 0.5*b.Inertia()*9

	m.Observe(w, 0, 0)
	m.Observe(w, 0.1, 0)
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMomentum(t *testing.T) {
	w := testWorld(t)
	m := NewMomentum()
	m.Observe(w, 0, 0)

	a, _ := w.Body(1)
	b, _ := w.Body(2)
	expected := math.Hypot(2*a.Mass(), -b.Mass())
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected momentum %f, got %f", expected, m.Value())
	}
}

func TestResting(t *testing.T) {
	w := testWorld(t)
	m := NewResting(0.05)

	m.Observe(w, 0, 0)
	for _, b := range w.Bodies() {
		b.SetLinearVelocity(vmath.Zero)
	}
	m.Observe(w, 0.1, 0)

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5 resting fraction, got %f", m.Value())
	}
}

func TestStepTimeAndBodyCount(t *testing.T) {
	w := testWorld(t)
	st := NewStepTime()
	bc := NewBodyCount()

	st.Observe(w, 0, 2*time.Millisecond)
	st.Observe(w, 0, 4*time.Millisecond)
	bc.Observe(w, 0, 0)

	if st.Value() != 3 {
		t.Errorf("expected 3ms mean, got %f", st.Value())
	}
	if bc.Value() != 3 {
		t.Errorf("expected 3 bodies, got %f", bc.Value())
	}
}

func TestDefaults(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Defaults() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 metrics, got %d", len(seen))
	}
}
