package automation

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/scenario"
	"github.com/san-kum/rigid2d/internal/storage"
	"gopkg.in/yaml.v3"
)

// Batch is a scripted list of runs.
type Batch struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Runs        []BatchRun `yaml:"runs"`
}

// BatchRun names a preset or a scenario file plus parameter overrides.
type BatchRun struct {
	Preset string             `yaml:"preset"`
	Config string             `yaml:"config"`
	Ticks  int                `yaml:"ticks"`
	Params map[string]float64 `yaml:"params"`
}

type BatchResult struct {
	Scenario string
	RunID    string
	Result   *scenario.Result
}

func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	if len(b.Runs) == 0 {
		return nil, fmt.Errorf("batch %s has no runs", path)
	}
	return &b, nil
}

// Resolve builds the config for one run.
func (r BatchRun) Resolve() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case r.Config != "":
		c, err := config.Load(r.Config)
		if err != nil {
			return nil, err
		}
		cfg = c
	case r.Preset != "":
		cfg = config.GetPreset(r.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", r.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if r.Ticks > 0 {
		cfg.Ticks = r.Ticks
	}
	for name, v := range r.Params {
		if err := Apply(cfg, name, v); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// RunBatch executes every run in order and saves each one to st. It stops
// at the first failure and returns the runs completed so far.
func RunBatch(ctx context.Context, b *Batch, st *storage.Store) ([]BatchResult, error) {
	results := make([]BatchResult, 0, len(b.Runs))

	for i, r := range b.Runs {
		cfg, err := r.Resolve()
		if err != nil {
			return results, fmt.Errorf("run %d: %w", i+1, err)
		}

		log.Printf("batch %s: run %d/%d %s", b.Name, i+1, len(b.Runs), cfg.Name)
		result, err := run(ctx, cfg, true)
		if err != nil {
			return results, fmt.Errorf("run %d: %w", i+1, err)
		}

		runID, err := st.Save(cfg, result)
		if err != nil {
			return results, fmt.Errorf("run %d: %w", i+1, err)
		}

		results = append(results, BatchResult{Scenario: cfg.Name, RunID: runID, Result: result})
	}

	return results, nil
}
