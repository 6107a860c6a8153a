package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/san-kum/recart/internal/config"
	"github.com/san-kum/recart/internal/expr"
	"github.com/san-kum/recart/internal/metrics"
	"github.com/san-kum/recart/internal/render"
	"github.com/san-kum/recart/internal/stats"
	"github.com/san-kum/recart/internal/storage"
)

// resolveConfig layers the preset, the config file and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	fromFlags := preset == "" && configFile == ""
	if fromFlags || flags.Changed("width") {
		cfg.Width = width
	}
	if fromFlags || flags.Changed("height") {
		cfg.Height = height
	}
	if fromFlags || flags.Changed("frames") {
		cfg.Frames = frames
	}
	if fromFlags || flags.Changed("depth") {
		cfg.Depth = depth
	}
	if fromFlags || flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("out") {
		cfg.Output = outBase
	}
	if flags.Changed("gif") {
		cfg.GIF = makeGIF
	}
	if flags.Changed("gif-delay") || cfg.GIFDelay == 0 {
		cfg.GIFDelay = gifDelay
	}

	return cfg, cfg.Validate()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return generateRun(ctx, cfg)
}

// generateRun renders cfg into a new run directory, or to cfg.Output when
// set, and prints a summary.
func generateRun(ctx context.Context, cfg *config.Config) error {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ch := expr.NewSeededBuilder(cfg.Seed).BuildChannels(cfg.Depth)
	r := render.New(ch, cfg.RenderConfig())
	r.SetLogger(logger)

	rec, err := metrics.NewRecorder(prometheus.NewRegistry())
	if err != nil {
		return err
	}
	r.AddObserver(rec)

	exprs := ch.Strings()
	meta := storage.RunMetadata{
		Seed:    cfg.Seed,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Frames:  cfg.Frames,
		Depth:   cfg.Depth,
		Workers: cfg.Workers,
		GIF:     cfg.GIF,
		Expressions: storage.Expressions{
			R: exprs[0], G: exprs[1], B: exprs[2],
		},
	}

	var st *storage.Store
	frameBase, gifPath := cfg.Output, cfg.Output+".gif"
	if cfg.Output == "" {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		if meta, err = st.Create(meta); err != nil {
			return err
		}
		frameBase, gifPath = st.FrameBase(meta.ID), st.GIFPath(meta.ID)
	}

	collector := &stats.Collector{}
	sinks := []render.Sink{&render.PNGSink{Base: frameBase}, collector}
	var gifSink *render.GIFSink
	if cfg.GIF {
		gifSink = render.NewGIFSink(gifPath, cfg.GIFDelay)
		sinks = append(sinks, gifSink)
	}

	logger.Info("rendering", "seed", cfg.Seed, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"frames", cfg.Frames, "depth", cfg.Depth, "workers", cfg.Workers)
	start := time.Now()

	n, err := r.Render(ctx, render.MultiSink(sinks...))
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("render stopped", "frames", n, "error", err)
		return err
	}

	if gifSink != nil {
		if err := gifSink.Close(); err != nil {
			return err
		}
	}

	if st != nil {
		meta.ElapsedMs = float64(elapsed.Microseconds()) / 1000
		if err := st.SaveStats(meta.ID, collector.Frames); err != nil {
			return err
		}
		if err := st.SaveMetadata(meta); err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", meta.ID)
	}

	snap := rec.Snapshot()
	fmt.Printf("rendered %d frames in %v (%.1f frames/s, slowest %v)\n",
		n, elapsed.Round(time.Millisecond), snap.FramesPerSecond(), snap.Slowest.Round(time.Microsecond))
	fmt.Printf("seed: %d\n", cfg.Seed)
	fmt.Printf("red:   %s\n", exprs[0])
	fmt.Printf("green: %s\n", exprs[1])
	fmt.Printf("blue:  %s\n", exprs[2])
	return nil
}

func printExpressions(cmd *cobra.Command, args []string) error {
	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	ch := expr.NewSeededBuilder(s).BuildChannels(depth)

	fmt.Printf("seed: %d\n", s)
	for _, c := range []struct {
		name string
		tree expr.Tree
	}{{"red", ch.R}, {"green", ch.G}, {"blue", ch.B}} {
		fmt.Printf("%-6s (%d nodes) %s\n", c.name+":", c.tree.Size(), c.tree)
	}
	return nil
}

func writeNoise(cmd *cobra.Command, args []string) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("image size must not be negative, got %dx%d", width, height)
	}
	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	f := render.Noise(width, height, rand.New(rand.NewSource(s)))
	if err := render.WritePNG(noiseOut, f); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", noiseOut)
	return nil
}
