package metrics

import (
	"time"

	"github.com/san-kum/rigid2d/internal/scenario"
	"github.com/san-kum/rigid2d/internal/world"
)

// StepTime reports the mean wall time of a world step in milliseconds.
type StepTime struct {
	name    string
	total   time.Duration
	samples int
}

func NewStepTime() *StepTime {
	return &StepTime{name: "step_ms"}
}

func (s *StepTime) Name() string { return s.name }

func (s *StepTime) Observe(w *world.World, t float64, step time.Duration) {
	s.total += step
	s.samples++
}

func (s *StepTime) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.total) / float64(s.samples) / float64(time.Millisecond)
}

func (s *StepTime) Reset() {
	s.total = 0
	s.samples = 0
}

// BodyCount reports the mean number of bodies in the world.
type BodyCount struct {
	name    string
	total   int
	samples int
}

func NewBodyCount() *BodyCount {
	return &BodyCount{name: "bodies"}
}

func (b *BodyCount) Name() string { return b.name }

func (b *BodyCount) Observe(w *world.World, t float64, step time.Duration) {
	b.total += w.BodyCount()
	b.samples++
}

func (b *BodyCount) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return float64(b.total) / float64(b.samples)
}

func (b *BodyCount) Reset() {
	b.total = 0
	b.samples = 0
}

// Defaults is the metric set attached to every CLI run.
func Defaults() []scenario.Metric {
	return []scenario.Metric{
		NewKineticEnergy(),
		NewMomentum(),
		NewBodyCount(),
		NewStepTime(),
		NewResting(0.05),
	}
}
