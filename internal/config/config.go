package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/recart/internal/render"
)

const (
	DefaultWidth    = render.DefaultWidth
	DefaultHeight   = render.DefaultHeight
	DefaultFrames   = render.DefaultFrames
	DefaultDepth    = render.DefaultDepth
	DefaultWorkers  = 1
	DefaultGIFDelay = render.DefaultGIFDelay
	DefaultScale    = 500.0
)

type Config struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Frames  int    `yaml:"frames"`
	Depth   int    `yaml:"depth"`
	Seed    int64  `yaml:"seed"`
	Workers int    `yaml:"workers"`
	Output  string `yaml:"output"`
	GIF     bool   `yaml:"gif"`

	GIFDelay int          `yaml:"gif_delay"`
	Viewer   ViewerConfig `yaml:"viewer"`
}

// ViewerConfig tunes frame selection in the terminal viewer.
type ViewerConfig struct {
	LevelScale float64 `yaml:"level_scale"`
	Decay      float64 `yaml:"decay"`
	FPS        int     `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Frames:   DefaultFrames,
		Depth:    DefaultDepth,
		Workers:  DefaultWorkers,
		GIFDelay: DefaultGIFDelay,
		Viewer: ViewerConfig{
			LevelScale: DefaultScale,
			Decay:      0.9,
			FPS:        30,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings that cannot produce output. A zero-sized grid is
// allowed and renders nothing.
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("image size must not be negative, got %dx%d", c.Width, c.Height)
	}
	if c.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", c.Frames)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Viewer.LevelScale < 0 {
		return fmt.Errorf("level scale must not be negative, got %f", c.Viewer.LevelScale)
	}
	if c.Viewer.Decay < 0 || c.Viewer.Decay > 1 {
		return fmt.Errorf("decay must be in [0, 1], got %f", c.Viewer.Decay)
	}
	return nil
}

func (c *Config) RenderConfig() render.Config {
	return render.Config{
		Width:   c.Width,
		Height:  c.Height,
		Frames:  c.Frames,
		Depth:   c.Depth,
		Workers: c.Workers,
	}
}
