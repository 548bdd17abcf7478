package automation

import (
	"context"
	"math"

	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/scenario"
	"golang.org/x/sync/errgroup"
)

// Ensemble runs one config under consecutive spawner seeds. Each run owns
// its world, so runs proceed concurrently.
type Ensemble struct {
	Runs      int
	SeedStart int64
	// Workers bounds concurrency. Zero means one goroutine per run.
	Workers int
}

// Run returns results in seed order. The first failure cancels the rest.
func (e Ensemble) Run(ctx context.Context, cfg *config.Config) ([]*scenario.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]*scenario.Result, e.Runs)
	g, ctx := errgroup.WithContext(ctx)
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	}

	for i := 0; i < e.Runs; i++ {
		idx := i
		g.Go(func() error {
			c := cfg.Clone()
			c.Seed = e.SeedStart + int64(idx)

			result, err := run(ctx, c, false)
			if err != nil {
				return err
			}
			results[idx] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Stats summarizes one metric across an ensemble.
type Stats struct {
	Mean, StdDev float64
	Min, Max     float64
	N            int
}

// Summarize collects metric over results, skipping results that lack it.
func Summarize(results []*scenario.Result, metric string) Stats {
	var s Stats
	var sum, sumSq float64
	for _, r := range results {
		v, ok := r.Metrics[metric]
		if !ok {
			continue
		}
		if s.N == 0 || v < s.Min {
			s.Min = v
		}
		if s.N == 0 || v > s.Max {
			s.Max = v
		}
		sum += v
		sumSq += v * v
		s.N++
	}
	if s.N == 0 {
		return s
	}
	s.Mean = sum / float64(s.N)
	if variance := sumSq/float64(s.N) - s.Mean*s.Mean; variance > 0 {
		s.StdDev = math.Sqrt(variance)
	}
	return s
}
