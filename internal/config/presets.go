package config

import "sort"

var Presets = map[string]*Config{
	"thumb": {
		Width: 64, Height: 64, Frames: 8, Depth: 5, Workers: 1,
	},
	"still": {
		Width: 350, Height: 350, Frames: 1, Depth: 7, Workers: 4,
	},
	"default": {
		Width: DefaultWidth, Height: DefaultHeight, Frames: DefaultFrames, Depth: DefaultDepth, Workers: 4,
	},
	"deep": {
		Width: 350, Height: 350, Frames: 24, Depth: 10, Workers: 8,
	},
	"loop": {
		Width: 200, Height: 200, Frames: 60, Depth: 6, Workers: 4, GIF: true, GIFDelay: 3,
	},
}

// GetPreset returns a copy of the named preset with viewer defaults filled
// in, or nil if there is none.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	def := DefaultConfig()
	if cfg.GIFDelay == 0 {
		cfg.GIFDelay = def.GIFDelay
	}
	if cfg.Viewer == (ViewerConfig{}) {
		cfg.Viewer = def.Viewer
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
