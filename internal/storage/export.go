package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/san-kum/rigid2d/internal/scenario"
)

type ExportData struct {
	Metadata RunMetadata      `json:"metadata"`
	Frames   []scenario.Frame `json:"frames"`
}

// ExportJSON writes a run's metadata and trace as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	rows, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Metadata: *meta, Frames: Frames(rows)})
}

// ExportCSV copies a run's raw body trace to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	f, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
