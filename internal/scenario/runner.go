package scenario

import (
	"context"
	"time"

	"github.com/san-kum/rigid2d/internal/config"
)

type Runner struct {
	metrics   []Metric
	observers []Observer

	// RecordEvery keeps one frame out of every n ticks. Zero or one records
	// every tick.
	RecordEvery int
}

func NewRunner() *Runner {
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scene, err := NewScene(cfg)
	if err != nil {
		return nil, err
	}

	every := r.RecordEvery
	if every < 1 {
		every = 1
	}

	result := &Result{
		Name:    cfg.Name,
		Frames:  make([]Frame, 0, cfg.Ticks/every+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	result.Frames = append(result.Frames, scene.Snapshot())

	var total time.Duration
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			r.finish(result, scene, total)
			return result, ctx.Err()
		default:
		}

		scene.Step()

		step := scene.LastStepTime()
		total += step
		if step > result.MaxStep {
			result.MaxStep = step
		}

		for _, m := range r.metrics {
			m.Observe(scene.World, scene.Time(), step)
		}
		for _, obs := range r.observers {
			obs.OnStep(scene.World, scene.Tick(), scene.Time())
		}

		result.StepsTaken++
		if scene.Tick()%every == 0 {
			result.Frames = append(result.Frames, scene.Snapshot())
		}
	}

	r.finish(result, scene, total)
	return result, nil
}

func (r *Runner) finish(result *Result, scene *Scene, total time.Duration) {
	if result.StepsTaken > 0 {
		result.MeanStep = total / time.Duration(result.StepsTaken)
	}
	result.Spawned = scene.Spawned()
	result.Removed = scene.Removed()
	result.FinalBodies = scene.World.BodyCount()

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
