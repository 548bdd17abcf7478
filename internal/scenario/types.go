package scenario

import (
	"time"

	"github.com/san-kum/rigid2d/internal/world"
)

// Metric accumulates a scalar over a run. Observe is called once per tick
// after the world has stepped.
type Metric interface {
	Name() string
	Observe(w *world.World, t float64, stepTime time.Duration)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(w *world.World, tick int, t float64)
}

// BodyState is a snapshot of one body. ID is stable for the lifetime of the
// body in a scene, unlike its index in the world.
type BodyState struct {
	ID     int     `json:"id"`
	Shape  string  `json:"shape"`
	Static bool    `json:"static"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Omega  float64 `json:"omega"`
}

type Frame struct {
	Tick   int         `json:"tick"`
	Time   float64     `json:"time"`
	Bodies []BodyState `json:"bodies"`
}

type Result struct {
	Name        string
	Frames      []Frame
	Metrics     map[string]float64
	StepsTaken  int
	Spawned     int
	Removed     int
	MeanStep    time.Duration
	MaxStep     time.Duration
	FinalBodies int
}

// Track returns the trajectory of body id across the recorded frames, with
// the matching frame times. Frames where the body is absent are skipped.
func (r *Result) Track(id int) (times []float64, states []BodyState) {
	for _, f := range r.Frames {
		for _, b := range f.Bodies {
			if b.ID == id {
				times = append(times, f.Time)
				states = append(states, b)
				break
			}
		}
	}
	return times, states
}
