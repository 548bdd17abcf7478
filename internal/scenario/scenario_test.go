package scenario

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/vmath"
	"github.com/san-kum/rigid2d/internal/world"
)

func TestBuild(t *testing.T) {
	w, err := Build(config.DefaultConfig())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if w.BodyCount() != 2 {
		t.Fatalf("expected 2 bodies, got %d", w.BodyCount())
	}
	ground, _ := w.Body(0)
	if !ground.IsStatic() || ground.Position() != vmath.New(0, -1) {
		t.Errorf("unexpected ground: static=%v pos=%v", ground.IsStatic(), ground.Position())
	}
	if w.Solver() != world.SolverRotationFriction {
		t.Errorf("expected default solver, got %v", w.Solver())
	}
}

func TestBuild_InvalidBody(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bodies[1].Density = 50

	_, err := Build(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "body 1: ") {
		t.Errorf("error should name the body: %v", err)
	}
	if !errors.Is(err, body.ErrDensityTooHigh) {
		t.Errorf("expected ErrDensityTooHigh, got %v", err)
	}
	var verr *body.ValidationError
	if !errors.As(err, &verr) {
		t.Error("expected a ValidationError in the chain")
	}
}

func TestNewBody(t *testing.T) {
	b, err := NewBody(config.BodyConfig{
		Shape: "box", Width: 2, Height: 1, Density: 2, Restitution: 0.3,
		Position: config.Vec{X: 1, Y: 2}, Angle: 0.5,
		Velocity: config.Vec{X: 3}, AngularVelocity: 1.5,
		Friction: &config.FrictionConfig{Static: 0.9, Dynamic: 0.7},
	})
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}

	if b.Position() != vmath.New(1, 2) || b.Angle() != 0.5 {
		t.Errorf("placement wrong: %v %v", b.Position(), b.Angle())
	}
	if b.LinearVelocity() != vmath.New(3, 0) || b.AngularVelocity() != 1.5 {
		t.Errorf("velocity wrong: %v %v", b.LinearVelocity(), b.AngularVelocity())
	}
	if b.StaticFriction() != 0.9 || b.DynamicFriction() != 0.7 {
		t.Errorf("friction wrong: %v %v", b.StaticFriction(), b.DynamicFriction())
	}
}

func TestNewBody_StaticIgnoresVelocity(t *testing.T) {
	b, err := NewBody(config.BodyConfig{
		Shape: "circle", Radius: 1, Density: 1, Static: true,
		Velocity: config.Vec{X: 3}, AngularVelocity: 2,
	})
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	if b.LinearVelocity() != vmath.Zero || b.AngularVelocity() != 0 {
		t.Error("static body should not take a velocity")
	}
}

func TestSpawner_Deterministic(t *testing.T) {
	cfg := config.DefaultSpawner()
	a := NewSpawner(cfg, 42)
	b := NewSpawner(cfg, 42)

	for i := 0; i < 20; i++ {
		ba, err := a.Next()
		if err != nil {
			t.Fatal(err)
		}
		bb, err := b.Next()
		if err != nil {
			t.Fatal(err)
		}
		if ba.Shape() != bb.Shape() || ba.Area() != bb.Area() || ba.Position() != bb.Position() {
			t.Fatalf("spawn %d differs between equal seeds", i)
		}
	}
}

func TestSpawner_Ranges(t *testing.T) {
	cfg := config.DefaultSpawner()
	s := NewSpawner(cfg, 3)

	circles, boxes := 0, 0
	for i := 0; i < 200; i++ {
		b, err := s.Next()
		if err != nil {
			t.Fatal(err)
		}
		pos := b.Position()
		if pos.X < cfg.MinX || pos.X > cfg.MaxX || pos.Y != cfg.Y {
			t.Fatalf("spawn position %v out of range", pos)
		}
		switch b.Shape() {
		case body.Circle:
			circles++
			if b.Radius() < 1 || b.Radius() > 1.25 {
				t.Errorf("radius %f out of [1,1.25]", b.Radius())
			}
		case body.Box:
			boxes++
			if b.Width() < 2 || b.Width() > 3 || b.Height() < 2 || b.Height() > 3 {
				t.Errorf("box %fx%f out of [2,3]", b.Width(), b.Height())
			}
		}
		if b.Density() != 1 || b.Restitution() != 0.5 || b.IsStatic() {
			t.Errorf("unexpected material: %v %v %v", b.Density(), b.Restitution(), b.IsStatic())
		}
	}
	if circles == 0 || boxes == 0 {
		t.Errorf("expected both shapes, got %d circles %d boxes", circles, boxes)
	}
	if s.Spawned() != 200 {
		t.Errorf("expected 200 spawned, got %d", s.Spawned())
	}
}

func TestSpawner_Due(t *testing.T) {
	cfg := config.DefaultSpawner()
	cfg.Interval = 10
	cfg.Max = 2

	s := NewSpawner(cfg, 1)
	if s.Due(0) {
		t.Error("disabled spawner should never be due")
	}

	cfg.Enabled = true
	s = NewSpawner(cfg, 1)
	if !s.Due(0) || s.Due(5) || !s.Due(10) {
		t.Error("spawner should be due on multiples of the interval")
	}

	s.Next()
	s.Next()
	if s.Due(20) {
		t.Error("spawner should stop at max")
	}
}

func TestScene_CullsBelowView(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bodies = append(cfg.Bodies,
		config.BodyConfig{Shape: "circle", Radius: 0.5, Density: 1, Position: config.Vec{X: 5, Y: cfg.View.Bottom - 2}},
		config.BodyConfig{Shape: "box", Width: 1, Height: 1, Density: 1, Static: true, Position: config.Vec{X: -5, Y: cfg.View.Bottom - 5}},
	)

	s, err := NewScene(cfg)
	if err != nil {
		t.Fatal(err)
	}
	faller, _ := s.World.Body(2)
	static, _ := s.World.Body(3)
	if s.ID(faller) != 2 || s.ID(static) != 3 {
		t.Fatalf("unexpected ids %d %d", s.ID(faller), s.ID(static))
	}

	s.Step()

	if s.World.BodyCount() != 3 {
		t.Fatalf("expected 3 bodies after cull, got %d", s.World.BodyCount())
	}
	if s.ID(faller) != -1 {
		t.Error("culled body should lose its id")
	}
	if s.ID(static) != 3 {
		t.Error("static body below view must be kept")
	}
	if s.Removed() != 1 {
		t.Errorf("expected 1 removed, got %d", s.Removed())
	}

	f := s.Snapshot()
	if f.Tick != 1 || len(f.Bodies) != 3 || f.Bodies[2].ID != 3 {
		t.Errorf("unexpected snapshot %+v", f)
	}
}

func TestScene_SpawnAndReset(t *testing.T) {
	s, err := NewScene(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SpawnBox(vmath.New(3, 5)); err != nil {
		t.Fatal(err)
	}
	if err := s.SpawnCircle(vmath.New(-3, 5)); err != nil {
		t.Fatal(err)
	}
	if s.World.BodyCount() != 4 || s.Spawned() != 2 {
		t.Fatalf("expected 4 bodies and 2 spawns, got %d and %d", s.World.BodyCount(), s.Spawned())
	}
	last, _ := s.World.Body(3)
	if s.ID(last) != 3 || last.Shape() != body.Circle {
		t.Errorf("unexpected last body id=%d shape=%v", s.ID(last), last.Shape())
	}

	s.Step()
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if s.World.BodyCount() != 2 || s.Tick() != 0 || s.Time() != 0 || s.Spawned() != 0 {
		t.Error("reset should restore the initial scene")
	}
}

type countingObserver struct{ calls int }

func (c *countingObserver) OnStep(w *world.World, tick int, t float64) { c.calls++ }

type countingMetric struct{ n int }

func (c *countingMetric) Name() string                                { return "count" }
func (c *countingMetric) Observe(*world.World, float64, time.Duration) { c.n++ }
func (c *countingMetric) Value() float64                              { return float64(c.n) }
func (c *countingMetric) Reset()                                      { c.n = 0 }

func TestRunner_Drop(t *testing.T) {
	cfg := config.DefaultConfig()

	r := NewRunner()
	obs := &countingObserver{}
	r.AddObserver(obs)
	r.AddMetric(&countingMetric{n: 99})

	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != cfg.Ticks+1 {
		t.Errorf("expected %d frames, got %d", cfg.Ticks+1, len(result.Frames))
	}
	if result.StepsTaken != cfg.Ticks || obs.calls != cfg.Ticks {
		t.Errorf("expected %d steps and observer calls, got %d and %d", cfg.Ticks, result.StepsTaken, obs.calls)
	}
	if result.Metrics["count"] != float64(cfg.Ticks) {
		t.Errorf("metric should be reset before the run, got %f", result.Metrics["count"])
	}

	times, track := result.Track(1)
	if len(track) != len(result.Frames) {
		t.Fatalf("ball missing from frames: %d of %d", len(track), len(result.Frames))
	}
	if times[0] != 0 || track[0].Y != 10 {
		t.Errorf("unexpected start %v %+v", times[0], track[0])
	}
	final := track[len(track)-1]
	if math.Abs(final.Y-1) > 0.01 {
		t.Errorf("ball should rest at y=1, got %f", final.Y)
	}
	for i, s := range track {
		if s.Y < 1-1e-6 {
			t.Fatalf("ball passed into the ground at frame %d: y=%f", i, s.Y)
		}
	}
}

func TestRunner_RecordEvery(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Ticks = 100

	r := NewRunner()
	r.RecordEvery = 10
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Frames) != 11 {
		t.Errorf("expected 11 frames, got %d", len(result.Frames))
	}
	if result.Frames[1].Tick != 10 {
		t.Errorf("expected second frame at tick 10, got %d", result.Frames[1].Tick)
	}
}

func TestRunner_Spawns(t *testing.T) {
	cfg := config.GetPreset("ledges")
	cfg.Ticks = 100

	result, err := NewRunner().Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.Spawned != 5 {
		t.Errorf("expected 5 spawns at interval 20, got %d", result.Spawned)
	}
	if result.FinalBodies != 3+result.Spawned-result.Removed {
		t.Errorf("body count mismatch: %d", result.FinalBodies)
	}
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewRunner().Run(ctx, config.DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.StepsTaken != 0 || len(result.Frames) != 1 {
		t.Errorf("expected partial result with the initial frame, got %+v", result)
	}
}

func TestRunner_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Dt = -1
	if _, err := NewRunner().Run(context.Background(), cfg); err == nil {
		t.Error("expected validation error")
	}
}
