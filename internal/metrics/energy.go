package metrics

import (
	"math"
	"time"

	"github.com/san-kum/rigid2d/internal/world"
)

// KineticEnergy reports the mean total kinetic energy over the run.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(w *world.World, t float64, step time.Duration) {
	k.total += TotalKineticEnergy(w)
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// Momentum reports the magnitude of the total linear momentum at the last
// observed tick.
type Momentum struct {
	name string
	last float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(w *world.World, t float64, step time.Duration) {
	m.last = TotalMomentum(w)
}

func (m *Momentum) Value() float64 { return m.last }
func (m *Momentum) Reset()         { m.last = 0 }

func TotalKineticEnergy(w *world.World) float64 {
	e := 0.0
	for _, b := range w.Bodies() {
		e += b.KineticEnergy()
	}
	return e
}

func TotalMomentum(w *world.World) float64 {
	px, py := 0.0, 0.0
	for _, b := range w.Bodies() {
		p := b.Momentum()
		px += p.X
		py += p.Y
	}
	return math.Hypot(px, py)
}
