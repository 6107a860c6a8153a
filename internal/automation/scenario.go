// Package automation runs scripted sequences of renders described in YAML.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/recart/internal/config"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario is a named list of render steps.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one render. Fields left unset fall back to the preset, or to the
// defaults when no preset is named.
type Step struct {
	Preset        string `yaml:"preset"`
	config.Config `yaml:",inline"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Resolve returns the full config of the step.
func (s Step) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	overlay(cfg, &s.Config)
	return cfg, cfg.Validate()
}

func overlay(dst, src *config.Config) {
	if src.Width != 0 {
		dst.Width = src.Width
	}
	if src.Height != 0 {
		dst.Height = src.Height
	}
	if src.Frames != 0 {
		dst.Frames = src.Frames
	}
	if src.Depth != 0 {
		dst.Depth = src.Depth
	}
	if src.Seed != 0 {
		dst.Seed = src.Seed
	}
	if src.Workers != 0 {
		dst.Workers = src.Workers
	}
	if src.Output != "" {
		dst.Output = src.Output
	}
	if src.GIF {
		dst.GIF = true
	}
	if src.GIFDelay != 0 {
		dst.GIFDelay = src.GIFDelay
	}
}

// RunFunc renders one resolved step.
type RunFunc func(ctx context.Context, cfg *config.Config) error

// RunScenario resolves and runs every step in order, stopping at the first
// failure. It returns the number of steps that completed.
func RunScenario(ctx context.Context, sc *Scenario, run RunFunc) (int, error) {
	if len(sc.Steps) == 0 {
		return 0, ErrEmptyScenario
	}

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		cfg, err := step.Resolve()
		if err != nil {
			return i, fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := run(ctx, cfg); err != nil {
			return i, fmt.Errorf("step %d run: %w", i+1, err)
		}
	}
	return len(sc.Steps), nil
}

// DepthSweep renders the same seed at every depth from From to To inclusive.
type DepthSweep struct {
	Base     config.Config
	From, To int
}

// Steps expands the sweep into one step per depth. A reversed range yields
// no steps.
func (d DepthSweep) Steps() []Step {
	if d.To < d.From {
		return nil
	}
	steps := make([]Step, 0, d.To-d.From+1)
	for depth := d.From; depth <= d.To; depth++ {
		cfg := d.Base
		cfg.Depth = depth
		steps = append(steps, Step{Config: cfg})
	}
	return steps
}
