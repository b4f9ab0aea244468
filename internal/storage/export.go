package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/particlenet/internal/sim"
)

type ExportData struct {
	RunMetadata
	Samples []sim.Sample `json:"samples"`
}

// ExportJSON writes a run's metadata and samples as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Samples: samples})
}

func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.ExportJSON(file, runID)
}
