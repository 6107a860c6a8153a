package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/recart/internal/stats"
)

func TestExport(t *testing.T) {
	s := New(t.TempDir())
	_ = s.Init()
	meta := newTestRun(t, s, 2)

	var buf bytes.Buffer
	if err := s.Export(meta.ID, &buf); err != nil {
		t.Fatalf("export without stats failed: %v", err)
	}
	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.Run.ID != meta.ID || data.Frames == nil || len(data.Frames) != 0 {
		t.Errorf("unexpected export: %+v", data)
	}

	frames := []stats.Frame{{Index: 0, MeanR: 1}, {Index: 1, MeanR: 2}}
	if err := s.SaveStats(meta.ID, frames); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "run.json")
	if err := s.ExportFile(meta.ID, path); err != nil {
		t.Fatalf("export file failed: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data = ExportData{}
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Frames) != 2 || data.Frames[1].MeanR != 2 {
		t.Errorf("stats not exported: %+v", data.Frames)
	}
	if data.Run.Expressions.R != "x" {
		t.Errorf("metadata not exported: %+v", data.Run)
	}

	if err := s.Export("missing", &buf); err == nil {
		t.Error("expected error for missing run")
	}
}
