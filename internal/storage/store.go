package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

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
	Profile   string             `json:"profile"`
	Script    string             `json:"script,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	PeriodMs  int                `json:"period_ms"`
	TurnGain  float64            `json:"turn_gain"`
	Ticks     int                `json:"ticks"`
	Metrics   map[string]float64 `json:"metrics"`
}

var tickHeader = []string{"tick", "ms", "left_y", "right_x", "left", "right", "intake", "piston"}

// Save writes metadata.json and ticks.csv into a new run directory and
// returns the run id.
func (s *Store) Save(meta RunMetadata, ticks []TickRecord) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", runPrefix(meta.Profile), meta.Timestamp.UnixNano())
	}
	if meta.ID != runPrefix(meta.ID) {
		return "", fmt.Errorf("invalid run id %q", meta.ID)
	}
	meta.Ticks = len(ticks)
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "ticks.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(tickHeader); err != nil {
		return "", err
	}
	for _, r := range ticks {
		if err := w.Write(r.row()); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns all readable runs, oldest first.
// runPrefix reduces a profile name to one path element made of letters,
// digits, '-' and '_'.
func runPrefix(profile string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, filepath.Base(profile))
	if strings.Trim(name, "_") == "" {
		return "run"
	}
	return name
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// TicksPath is the location of a run's tick log.
func (s *Store) TicksPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "ticks.csv")
}

func (s *Store) LoadTicks(runID string) ([]TickRecord, error) {
	file, err := os.Open(s.TicksPath(runID))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []TickRecord{}, nil
	}

	ticks := make([]TickRecord, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		rec, err := parseRow(records[i])
		if err != nil {
			return nil, fmt.Errorf("ticks.csv line %d: %w", i+1, err)
		}
		ticks = append(ticks, rec)
	}
	return ticks, nil
}

func parseRow(row []string) (TickRecord, error) {
	if len(row) != len(tickHeader) {
		return TickRecord{}, fmt.Errorf("expected %d fields, got %d", len(tickHeader), len(row))
	}
	var v [8]int
	for i, f := range row {
		n, err := strconv.Atoi(f)
		if err != nil {
			return TickRecord{}, err
		}
		v[i] = n
	}
	return TickRecord{
		Tick: v[0], Ms: v[1], LeftY: v[2], RightX: v[3],
		Left: v[4], Right: v[5], Intake: v[6], Piston: v[7],
	}, nil
}
