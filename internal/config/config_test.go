package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 350 || cfg.Height != 350 {
		t.Errorf("expected 350x350, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Frames != 51 {
		t.Errorf("expected 51 frames, got %d", cfg.Frames)
	}
	if cfg.Depth != 7 {
		t.Errorf("expected depth 7, got %d", cfg.Depth)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "art.yaml")
	data := []byte("width: 120\nframes: 9\nseed: 42\nviewer:\n  level_scale: 250\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Width != 120 || cfg.Frames != 9 || cfg.Seed != 42 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Height != DefaultHeight || cfg.Depth != DefaultDepth {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.Viewer.LevelScale != 250 {
		t.Errorf("expected level scale 250, got %f", cfg.Viewer.LevelScale)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Depth = 9
	cfg.GIF = true
	cfg.Output = "frames/img"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("width: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"default", func(c *Config) {}, true},
		{"zero size", func(c *Config) { c.Width = 0 }, true},
		{"negative width", func(c *Config) { c.Width = -1 }, false},
		{"negative frames", func(c *Config) { c.Frames = -5 }, false},
		{"negative workers", func(c *Config) { c.Workers = -1 }, false},
		{"decay above one", func(c *Config) { c.Viewer.Decay = 1.5 }, false},
		{"negative scale", func(c *Config) { c.Viewer.LevelScale = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("thumb")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Width != 64 || cfg.Frames != 8 {
		t.Errorf("unexpected thumb preset: %+v", cfg)
	}
	if cfg.Viewer.LevelScale != DefaultScale {
		t.Errorf("viewer defaults not filled: %+v", cfg.Viewer)
	}

	cfg.Width = 1
	if Presets["thumb"].Width != 64 {
		t.Error("GetPreset returned shared preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestRenderConfig(t *testing.T) {
	cfg := GetPreset("deep")
	rc := cfg.RenderConfig()
	if rc.Width != 350 || rc.Depth != 10 || rc.Workers != 8 || rc.Frames != 24 {
		t.Errorf("unexpected render config: %+v", rc)
	}
}
