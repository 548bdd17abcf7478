package metrics

import (
	"time"

	"github.com/san-kum/rigid2d/internal/world"
)

// Resting reports the fraction of ticks on which every dynamic body moved
// slower than the speed threshold.
type Resting struct {
	name      string
	threshold float64
	resting   int
	samples   int
}

func NewResting(threshold float64) *Resting {
	return &Resting{
		name:      "resting",
		threshold: threshold,
	}
}

func (r *Resting) Name() string { return r.name }

func (r *Resting) Observe(w *world.World, t float64, step time.Duration) {
	r.samples++
	for _, b := range w.Bodies() {
		if b.IsStatic() {
			continue
		}
		if b.LinearVelocity().Length() > r.threshold {
			return
		}
	}
	r.resting++
}

func (r *Resting) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.resting) / float64(r.samples)
}

func (r *Resting) Reset() {
	r.resting = 0
	r.samples = 0
}
