package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/recart/internal/analysis"
	"github.com/san-kum/recart/internal/config"
	"github.com/san-kum/recart/internal/expr"
	"github.com/san-kum/recart/internal/metrics"
	"github.com/san-kum/recart/internal/render"
	"github.com/san-kum/recart/internal/stats"
	"github.com/san-kum/recart/internal/storage"
	"github.com/san-kum/recart/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tFRAMES\tDEPTH\tSEED\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%d\t%d\t%.0fms\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Frames,
			run.Depth,
			run.Seed,
			run.ElapsedMs,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frameStats, err := st.LoadStats(runID)
	if err != nil {
		return err
	}
	if len(frameStats) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", len(frameStats))

	c := &stats.Collector{Frames: frameStats}
	series := []struct {
		caption string
		fn      func(stats.Frame) float64
	}{
		{"mean red", func(f stats.Frame) float64 { return f.MeanR }},
		{"mean green", func(f stats.Frame) float64 { return f.MeanG }},
		{"mean blue", func(f stats.Frame) float64 { return f.MeanB }},
		{"luminance", func(f stats.Frame) float64 { return f.Luminance }},
	}

	for _, s := range series {
		graph := asciigraph.Plot(c.Series(s.fn),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frameStats, err := st.LoadStats(args[0])
	if err != nil {
		return err
	}
	if len(frameStats) < 2 {
		return fmt.Errorf("need at least 2 frames to analyze, got %d", len(frameStats))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tMIN\tMAX\tMEAN\tFLICKER\tPERIOD\tPOWER")
	for _, r := range analysis.Analyze(frameStats) {
		period := "-"
		if r.Period > 0 {
			period = fmt.Sprintf("%.1f", r.Period)
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.3f\t%s\t%.2f\n",
			r.Series, r.Min, r.Max, r.Mean, r.Flicker, period, r.Power)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tFRAMES\tDEPTH\tWORKERS\tGIF")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%d\t%d\t%v\n", name, p.Width, p.Height, p.Frames, p.Depth, p.Workers, p.GIF)
	}
	return w.Flush()
}

func benchDepths(cmd *cobra.Command, args []string) error {
	depths := []int{1, 3, 5, 7, 9}

	fmt.Printf("benchmarking %dx%d, %d frames, %d workers\n\n", benchSize, benchSize, benchFrames, workers)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DEPTH\tNODES\tMEAN\tSLOWEST\tFRAMES/SEC\tMPIX/SEC")

	for _, d := range depths {
		ch := expr.NewSeededBuilder(benchSeed).BuildChannels(d)
		r := render.New(ch, render.Config{
			Width:   benchSize,
			Height:  benchSize,
			Frames:  benchFrames,
			Depth:   d,
			Workers: workers,
		})
		rec, err := metrics.NewRecorder(nil)
		if err != nil {
			return err
		}
		r.AddObserver(rec)

		if _, err := r.Render(context.Background(), render.Discard); err != nil {
			return err
		}

		snap := rec.Snapshot()
		nodes := ch.R.Size() + ch.G.Size() + ch.B.Size()
		mpix := 0.0
		if snap.Total > 0 {
			mpix = float64(snap.Frames*benchSize*benchSize) / snap.Total.Seconds() / 1e6
		}
		fmt.Fprintf(w, "%d\t%d\t%v\t%v\t%.1f\t%.2f\n",
			d, nodes,
			snap.Mean.Round(time.Microsecond),
			snap.Slowest.Round(time.Microsecond),
			snap.FramesPerSecond(),
			mpix,
		)
	}

	return w.Flush()
}

func viewRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	paths, err := st.FramePaths(runID)
	if err != nil {
		return err
	}
	loaded, err := viz.LoadFrames(paths)
	if err != nil {
		return err
	}

	opts := viz.Options{
		Title:      runID,
		LevelScale: levelScale,
		Decay:      decay,
		FPS:        fps,
		Theme:      theme,
	}
	if frameStats, err := st.LoadStats(runID); err == nil {
		opts.Luminance = (&stats.Collector{Frames: frameStats}).Series(func(f stats.Frame) float64 { return f.Luminance })
	} else {
		logger.Debug("no stats for run", "run", runID, "error", err)
	}

	return viz.Run(loaded, opts)
}
