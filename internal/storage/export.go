package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Series map[string][]int `json:"series"`
}

// ExportJSON writes a run's metadata and its tick columns as JSON.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	ticks, err := s.LoadTicks(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Series:      Columns(ticks),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Columns splits tick records into named series.
func Columns(ticks []TickRecord) map[string][]int {
	cols := map[string][]int{}
	for _, name := range tickHeader {
		cols[name] = make([]int, 0, len(ticks))
	}
	for _, t := range ticks {
		for i, v := range []int{t.Tick, t.Ms, t.LeftY, t.RightX, t.Left, t.Right, t.Intake, t.Piston} {
			cols[tickHeader[i]] = append(cols[tickHeader[i]], v)
		}
	}
	return cols
}
