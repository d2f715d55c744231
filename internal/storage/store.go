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
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var frameHeader = []string{"frame", "t", "theta", "x", "y", "z", "rot_y", "u_time"}

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
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Frames    int                `json:"frames"`
	Dt        float64            `json:"dt"`
	Summary   map[string]float64 `json:"summary"`
}

func (s *Store) Save(preset string, dt float64, frames []Frame) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", preset, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: now,
		Frames:    len(frames),
		Dt:        dt,
		Summary:   Summarize(frames),
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, f := range frames {
		if err := w.Write(f.record()); err != nil {
			return "", fmt.Errorf("write frame %d: %w", f.Frame, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns stored runs, oldest first. Directories without readable
// metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata for %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(frameHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read frames for %s: %w", runID, err)
	}

	if len(records) < 2 {
		return []Frame{}, nil
	}

	frames := make([]Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		f, err := parseFrame(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		frames = append(frames, f)
	}

	return frames, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
