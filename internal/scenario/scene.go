package scenario

import (
	"log"
	"time"

	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/vmath"
	"github.com/san-kum/rigid2d/internal/world"
)

// Scene drives a world on a fixed tick: it spawns bodies, steps the world and
// removes dynamic bodies that have fallen out of view. Interactive front ends
// and the batch Runner share it.
type Scene struct {
	World *world.World

	cfg     *config.Config
	spawner *Spawner
	ids     map[*body.Body]int
	nextID  int

	tick     int
	time     float64
	lastStep time.Duration
	removed  int
}

func NewScene(cfg *config.Config) (*Scene, error) {
	s := &Scene{cfg: cfg}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset rebuilds the world from the scene's config and reseeds the spawner.
func (s *Scene) Reset() error {
	w, err := Build(s.cfg)
	if err != nil {
		return err
	}

	s.World = w
	s.spawner = NewSpawner(s.cfg.Spawner, s.cfg.Seed)
	s.ids = make(map[*body.Body]int, w.BodyCount())
	s.nextID = 0
	s.tick = 0
	s.time = 0
	s.lastStep = 0
	s.removed = 0

	for _, b := range w.Bodies() {
		s.track(b)
	}
	return nil
}

func (s *Scene) Config() *config.Config      { return s.cfg }
func (s *Scene) Tick() int                   { return s.tick }
func (s *Scene) Time() float64               { return s.time }
func (s *Scene) LastStepTime() time.Duration { return s.lastStep }
func (s *Scene) Spawned() int                { return s.spawner.Spawned() }
func (s *Scene) Removed() int                { return s.removed }

func (s *Scene) track(b *body.Body) int {
	id := s.nextID
	s.ids[b] = id
	s.nextID++
	return id
}

// Add inserts b into the world and returns its scene ID. Call only between
// steps.
func (s *Scene) Add(b *body.Body) int {
	s.World.AddBody(b)
	return s.track(b)
}

// ID returns the scene ID of b, or -1 if b is not part of the scene.
func (s *Scene) ID(b *body.Body) int {
	if id, ok := s.ids[b]; ok {
		return id
	}
	return -1
}

func (s *Scene) SpawnBox(pos vmath.Vector) error {
	b, err := s.spawner.Box(pos)
	if err != nil {
		return err
	}
	s.Add(b)
	return nil
}

func (s *Scene) SpawnCircle(pos vmath.Vector) error {
	b, err := s.spawner.Circle(pos)
	if err != nil {
		return err
	}
	s.Add(b)
	return nil
}

// Step advances the scene by one tick of cfg.Dt.
func (s *Scene) Step() {
	s.StepDt(s.cfg.Dt)
}

// StepDt advances the scene by dt seconds. Front ends with a variable frame
// clock use it directly.
func (s *Scene) StepDt(dt float64) {
	if s.spawner.Due(s.tick) {
		b, err := s.spawner.Next()
		if err != nil {
			log.Printf("spawn failed at tick %d: %v", s.tick, err)
		} else {
			s.Add(b)
		}
	}

	start := time.Now()
	s.World.Step(dt, s.cfg.Iterations)
	s.lastStep = time.Since(start)

	s.tick++
	s.time += dt
	s.cull()
}

// cull removes dynamic bodies whose bounding box lies entirely below the view.
func (s *Scene) cull() {
	bottom := s.cfg.View.Bottom

	var out []*body.Body
	for _, b := range s.World.Bodies() {
		if b.IsStatic() {
			continue
		}
		if b.AABB().Max.Y < bottom {
			out = append(out, b)
		}
	}

	for _, b := range out {
		s.World.RemoveBody(b)
		log.Printf("removed body %d at tick %d", s.ids[b], s.tick)
		delete(s.ids, b)
		s.removed++
	}
}

// Snapshot captures every body in world order.
func (s *Scene) Snapshot() Frame {
	bodies := s.World.Bodies()
	f := Frame{
		Tick:   s.tick,
		Time:   s.time,
		Bodies: make([]BodyState, len(bodies)),
	}
	for i, b := range bodies {
		pos := b.Position()
		vel := b.LinearVelocity()
		f.Bodies[i] = BodyState{
			ID:     s.ids[b],
			Shape:  b.Shape().String(),
			Static: b.IsStatic(),
			X:      pos.X,
			Y:      pos.Y,
			Angle:  b.Angle(),
			VX:     vel.X,
			VY:     vel.Y,
			Omega:  b.AngularVelocity(),
		}
	}
	return f
}
