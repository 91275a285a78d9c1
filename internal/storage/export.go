package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Data [][]float64 `json:"data"`
}

// ExportJSON writes a run's metadata and table as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	table, err := s.LoadTable(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Data: table.Rows})
}
