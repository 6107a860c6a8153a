package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/recart/internal/stats"
)

// ExportData is a run with its per-frame statistics.
type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Frames []stats.Frame `json:"frames"`
}

// Export writes runID as indented JSON to w. A run without stats exports an
// empty frame list.
func (s *Store) Export(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	frames, err := s.LoadStats(runID)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if frames == nil {
		frames = []stats.Frame{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, Frames: frames})
}

// ExportFile writes the export of runID to path.
func (s *Store) ExportFile(runID, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Export(runID, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
