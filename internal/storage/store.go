package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/scenario"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "bodies.csv"
)

var traceHeader = []string{"tick", "time", "id", "shape", "x", "y", "angle", "vx", "vy", "omega"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Iterations int                `json:"iterations"`
	Ticks      int                `json:"ticks"`
	Solver     string             `json:"solver"`
	Gravity    [2]float64         `json:"gravity"`
	Steps      int                `json:"steps"`
	Spawned    int                `json:"spawned"`
	Removed    int                `json:"removed"`
	MeanStepMs float64            `json:"mean_step_ms"`
	MaxStepMs  float64            `json:"max_step_ms"`
	Metrics    map[string]float64 `json:"metrics"`
}

// TraceRow is one line of bodies.csv.
type TraceRow struct {
	Tick int
	Time float64
	scenario.BodyState
}

func (s *Store) Save(cfg *config.Config, result *scenario.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	solver := cfg.Solver
	if solver == "" {
		solver = "rotation-friction"
	}

	meta := RunMetadata{
		ID:         runID,
		Scenario:   cfg.Name,
		Timestamp:  now,
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Iterations: cfg.Iterations,
		Ticks:      cfg.Ticks,
		Solver:     solver,
		Gravity:    [2]float64{cfg.Gravity.X, cfg.Gravity.Y},
		Steps:      result.StepsTaken,
		Spawned:    result.Spawned,
		Removed:    result.Removed,
		MeanStepMs: durationMs(result.MeanStep),
		MaxStepMs:  durationMs(result.MaxStep),
		Metrics:    result.Metrics,
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrace(filepath.Join(runDir, traceFile), result.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeTrace(path string, frames []scenario.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(traceHeader); err != nil {
		return err
	}

	for _, frame := range frames {
		for _, b := range frame.Bodies {
			row := []string{
				strconv.Itoa(frame.Tick),
				formatFloat(frame.Time),
				strconv.Itoa(b.ID),
				b.Shape,
				formatFloat(b.X),
				formatFloat(b.Y),
				formatFloat(b.Angle),
				formatFloat(b.VX),
				formatFloat(b.VY),
				formatFloat(b.Omega),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrace reads every row of a run's body trace. Malformed rows are
// reported with their line number.
func (s *Store) LoadTrace(runID string) ([]TraceRow, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(traceHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []TraceRow{}, nil
	}

	rows := make([]TraceRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", traceFile, i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (TraceRow, error) {
	var row TraceRow
	var err error

	if row.Tick, err = strconv.Atoi(rec[0]); err != nil {
		return row, err
	}
	if row.ID, err = strconv.Atoi(rec[2]); err != nil {
		return row, err
	}
	row.Shape = rec[3]

	floats := []*float64{&row.Time, &row.X, &row.Y, &row.Angle, &row.VX, &row.VY, &row.Omega}
	cols := []int{1, 4, 5, 6, 7, 8, 9}
	for i, dst := range floats {
		if *dst, err = strconv.ParseFloat(rec[cols[i]], 64); err != nil {
			return row, err
		}
	}
	return row, nil
}

// Frames regroups trace rows by tick, preserving row order.
func Frames(rows []TraceRow) []scenario.Frame {
	frames := make([]scenario.Frame, 0)
	for _, row := range rows {
		if n := len(frames); n == 0 || frames[n-1].Tick != row.Tick {
			frames = append(frames, scenario.Frame{Tick: row.Tick, Time: row.Time})
		}
		last := &frames[len(frames)-1]
		last.Bodies = append(last.Bodies, row.BodyState)
	}
	return frames
}
