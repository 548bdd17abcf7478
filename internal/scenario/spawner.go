package scenario

import (
	"math/rand"

	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/vmath"
)

// Spawner produces randomly sized dynamic bodies from a seeded source.
type Spawner struct {
	cfg     config.SpawnerConfig
	rng     *rand.Rand
	spawned int
}

func NewSpawner(cfg config.SpawnerConfig, seed int64) *Spawner {
	return &Spawner{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (s *Spawner) Spawned() int { return s.spawned }

// Due reports whether an automatic spawn should happen on tick.
func (s *Spawner) Due(tick int) bool {
	if !s.cfg.Enabled || s.cfg.Interval <= 0 {
		return false
	}
	if s.cfg.Max > 0 && s.spawned >= s.cfg.Max {
		return false
	}
	return tick%s.cfg.Interval == 0
}

// Next spawns a circle or a box, chosen by CircleRatio, at a random x along
// the spawn line.
func (s *Spawner) Next() (*body.Body, error) {
	pos := vmath.New(s.between(s.cfg.MinX, s.cfg.MaxX), s.cfg.Y)
	if s.rng.Float64() < s.cfg.CircleRatio {
		return s.Circle(pos)
	}
	return s.Box(pos)
}

func (s *Spawner) Box(pos vmath.Vector) (*body.Body, error) {
	w := s.between(s.cfg.MinSize, s.cfg.MaxSize)
	h := s.between(s.cfg.MinSize, s.cfg.MaxSize)

	b, err := body.NewBox(w, h, s.cfg.Density, s.cfg.Restitution, false)
	if err != nil {
		return nil, err
	}
	b.MoveTo(pos)
	s.spawned++
	return b, nil
}

func (s *Spawner) Circle(pos vmath.Vector) (*body.Body, error) {
	r := s.between(s.cfg.MinRadius, s.cfg.MaxRadius)

	b, err := body.NewCircle(r, s.cfg.Density, s.cfg.Restitution, false)
	if err != nil {
		return nil, err
	}
	b.MoveTo(pos)
	s.spawned++
	return b, nil
}

func (s *Spawner) between(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}
