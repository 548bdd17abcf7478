package automation

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/san-kum/rigid2d/internal/config"
)

// ParameterSweep varies one parameter linearly from Min to Max.
type ParameterSweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

type SweepResult struct {
	Value       float64
	Metrics     map[string]float64
	FinalBodies int
	MeanStep    time.Duration
}

func (s ParameterSweep) Values() []float64 {
	if s.Steps <= 1 {
		return []float64{s.Min}
	}
	step := (s.Max - s.Min) / float64(s.Steps-1)
	vals := make([]float64, s.Steps)
	for i := range vals {
		vals[i] = s.Min + float64(i)*step
	}
	return vals
}

// RunSweep runs base once per sweep value.
func RunSweep(ctx context.Context, base *config.Config, sweep ParameterSweep) ([]SweepResult, error) {
	values := sweep.Values()
	results := make([]SweepResult, 0, len(values))

	for i, v := range values {
		cfg := base.Clone()
		if err := Apply(cfg, sweep.Param, v); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}

		result, err := run(ctx, cfg, false)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{
			Value:       v,
			Metrics:     result.Metrics,
			FinalBodies: result.FinalBodies,
			MeanStep:    result.MeanStep,
		})
		log.Printf("sweep %d/%d: %s=%.4f", i+1, len(values), sweep.Param, v)
	}

	return results, nil
}

// GridSearch tries every combination of parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search returns the combination with the lowest value of metricName, or
// the highest when maximize is set. Ties keep the first combination found.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metricName string, maximize bool) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("grid has %d names and %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	if maximize {
		best = math.Inf(-1)
	}
	var bestParams map[string]float64

	better := func(v float64) bool {
		if maximize {
			return v > best
		}
		return v < best
	}

	var search func(depth int, current map[string]float64) error
	search = func(depth int, current map[string]float64) error {
		if depth == len(g.paramNames) {
			cfg := base.Clone()
			for k, v := range current {
				if err := Apply(cfg, k, v); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%v: %w", current, err)
			}

			result, err := run(ctx, cfg, false)
			if err != nil {
				return err
			}

			val, ok := result.Metrics[metricName]
			if !ok {
				return fmt.Errorf("unknown metric %q", metricName)
			}
			if better(val) {
				best = val
				bestParams = make(map[string]float64, len(current))
				for k, v := range current {
					bestParams[k] = v
				}
			}
			return nil
		}

		name := g.paramNames[depth]
		for _, val := range g.ranges[depth] {
			next := make(map[string]float64, len(current)+1)
			for k, v := range current {
				next[k] = v
			}
			next[name] = val
			if err := search(depth+1, next); err != nil {
				return err
			}
		}
		return nil
	}

	if err := search(0, make(map[string]float64)); err != nil {
		return nil, 0, err
	}
	return bestParams, best, nil
}
