package automation

import (
	"context"
	"fmt"

	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/metrics"
	"github.com/san-kum/rigid2d/internal/scenario"
)

// Params lists the tunables Apply understands.
var Params = []string{"dt", "iterations", "gravity", "restitution", "density", "friction", "seed"}

// Apply sets the named tunable on cfg. Material parameters apply to every
// configured body and to the spawner.
func Apply(cfg *config.Config, name string, value float64) error {
	switch name {
	case "dt":
		cfg.Dt = value
	case "iterations":
		cfg.Iterations = int(value)
	case "gravity":
		cfg.Gravity.Y = value
	case "seed":
		cfg.Seed = int64(value)
	case "restitution":
		for i := range cfg.Bodies {
			cfg.Bodies[i].Restitution = value
		}
		cfg.Spawner.Restitution = value
	case "density":
		for i := range cfg.Bodies {
			if !cfg.Bodies[i].Static {
				cfg.Bodies[i].Density = value
			}
		}
		cfg.Spawner.Density = value
	case "friction":
		for i := range cfg.Bodies {
			cfg.Bodies[i].Friction = &config.FrictionConfig{Static: value, Dynamic: value}
		}
	default:
		return fmt.Errorf("unknown parameter %q (available: %v)", name, Params)
	}
	return nil
}

// run executes cfg with the default metric set. Unless keepFrames is set only
// the first and last frames are recorded.
func run(ctx context.Context, cfg *config.Config, keepFrames bool) (*scenario.Result, error) {
	runner := scenario.NewRunner()
	if !keepFrames {
		runner.RecordEvery = cfg.Ticks
	}
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}
	return runner.Run(ctx, cfg)
}
