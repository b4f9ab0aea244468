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

	"github.com/google/uuid"

	"github.com/san-kum/particlenet/internal/config"
	"github.com/san-kum/particlenet/internal/sim"
)

const (
	metaFile   = "metadata.json"
	framesFile = "frames.csv"
)

var frameHeader = []string{
	"frame", "pointer_x", "pointer_y", "width", "height",
	"links", "repelled", "displacement", "frame_time_us",
}

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
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	ElapsedMS float64            `json:"elapsed_ms"`
	Config    *config.Config     `json:"config"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the run's metadata and per-frame samples under a fresh run ID.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  result.Scenario,
		Timestamp: time.Now(),
		Seed:      result.Seed,
		Frames:    result.Frames,
		ElapsedMS: float64(result.Elapsed.Microseconds()) / 1000,
		Config:    cfg,
		Metrics:   result.Metrics,
	}

	mf, err := os.Create(filepath.Join(runDir, metaFile))
	if err != nil {
		return "", err
	}
	defer mf.Close()

	enc := json.NewEncoder(mf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	cf, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer cf.Close()

	w := csv.NewWriter(cf)
	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, smp := range result.Samples {
		row := []string{
			strconv.Itoa(smp.Frame),
			strconv.FormatFloat(smp.PointerX, 'f', 3, 64),
			strconv.FormatFloat(smp.PointerY, 'f', 3, 64),
			strconv.Itoa(smp.Width),
			strconv.Itoa(smp.Height),
			strconv.Itoa(smp.Links),
			strconv.Itoa(smp.Repelled),
			strconv.FormatFloat(smp.Displacement, 'f', 6, 64),
			strconv.FormatInt(smp.FrameTimeUS, 10),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns stored runs, newest first. Directories without readable
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads the per-frame samples of a run. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		smp, ok := parseSample(rec)
		if !ok {
			continue
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(rec []string) (sim.Sample, bool) {
	if len(rec) != len(frameHeader) {
		return sim.Sample{}, false
	}
	var (
		smp  sim.Sample
		errs [9]error
	)
	smp.Frame, errs[0] = strconv.Atoi(rec[0])
	smp.PointerX, errs[1] = strconv.ParseFloat(rec[1], 64)
	smp.PointerY, errs[2] = strconv.ParseFloat(rec[2], 64)
	smp.Width, errs[3] = strconv.Atoi(rec[3])
	smp.Height, errs[4] = strconv.Atoi(rec[4])
	smp.Links, errs[5] = strconv.Atoi(rec[5])
	smp.Repelled, errs[6] = strconv.Atoi(rec[6])
	smp.Displacement, errs[7] = strconv.ParseFloat(rec[7], 64)
	smp.FrameTimeUS, errs[8] = strconv.ParseInt(rec[8], 10, 64)
	for _, err := range errs {
		if err != nil {
			return sim.Sample{}, false
		}
	}
	return smp, true
}
