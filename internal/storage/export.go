package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run    RunMetadata `json:"run"`
	Frames []Frame     `json:"frames"`
}

// ExportJSON writes a stored run as one JSON document to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, Frames: frames})
}

func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.ExportJSON(file, runID)
}
