package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/recart/internal/config"
	"github.com/san-kum/recart/internal/logging"
	"github.com/san-kum/recart/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logger   = logging.NewNop()

	width      int
	height     int
	frames     int
	depth      int
	seed       int64
	workers    int
	outBase    string
	makeGIF    bool
	gifDelay   int
	configFile string
	preset     string

	noiseOut string

	benchSize   int
	benchFrames int
	benchSeed   int64

	sweepFrom   int
	sweepTo     int
	sweepFrames int
	exportOut   string

	levelScale float64
	decay      float64
	fps        int
	theme      string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "recart",
		Short:        "random expression art generator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = logging.New(level)
			slog.SetDefault(logger)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".recart", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "build random expressions and render an animation",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}
	generateCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "image width")
	generateCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "image height")
	generateCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of time samples")
	generateCmd.Flags().IntVar(&depth, "depth", config.DefaultDepth, "expression tree depth")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	generateCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "goroutines rendering rows of a frame")
	generateCmd.Flags().StringVar(&outBase, "out", "", "write frames to <out><k>.png instead of a run directory")
	generateCmd.Flags().BoolVar(&makeGIF, "gif", false, "also write an animated gif")
	generateCmd.Flags().IntVar(&gifDelay, "gif-delay", config.DefaultGIFDelay, "gif frame delay in hundredths of a second")
	generateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	generateCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	exprCmd := &cobra.Command{
		Use:   "expr",
		Short: "print three random channel expressions",
		Args:  cobra.NoArgs,
		RunE:  printExpressions,
	}
	exprCmd.Flags().IntVar(&depth, "depth", config.DefaultDepth, "expression tree depth")
	exprCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")

	noiseCmd := &cobra.Command{
		Use:   "noise",
		Short: "write a random-pixel test image",
		Args:  cobra.NoArgs,
		RunE:  writeNoise,
	}
	noiseCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "image width")
	noiseCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "image height")
	noiseCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	noiseCmd.Flags().StringVar(&noiseOut, "out", "noise.png", "output file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-frame color statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "report periodicity and flicker of frame statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time frame rendering across tree depths",
		Args:  cobra.NoArgs,
		RunE:  benchDepths,
	}
	benchCmd.Flags().IntVar(&benchSize, "size", 128, "square image size")
	benchCmd.Flags().IntVar(&benchFrames, "frames", 3, "frames per depth")
	benchCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "goroutines rendering rows of a frame")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 42, "random seed")

	def := config.DefaultConfig()
	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "show a run in the terminal viewer",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}
	viewCmd.Flags().Float64Var(&levelScale, "scale", def.Viewer.LevelScale, "level units per frame step")
	viewCmd.Flags().Float64Var(&decay, "decay", def.Viewer.Decay, "level decay factor per tick")
	viewCmd.Flags().IntVar(&fps, "fps", def.Viewer.FPS, "frame rate")
	viewCmd.Flags().StringVar(&theme, "theme", "cyberpunk", fmt.Sprintf("color theme %v", viz.ThemeNames()))

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every render step of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "render one seed at a range of tree depths",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepFrom, "from", 2, "first depth")
	sweepCmd.Flags().IntVar(&sweepTo, "to", 8, "last depth")
	sweepCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "image width")
	sweepCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "image height")
	sweepCmd.Flags().IntVar(&sweepFrames, "frames", 1, "number of time samples")
	sweepCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "goroutines rendering rows of a frame")
	sweepCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	sweepCmd.Flags().BoolVar(&makeGIF, "gif", false, "also write an animated gif")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and frame statistics as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(generateCmd, exprCmd, noiseCmd, listCmd, showCmd, plotCmd, analyzeCmd, presetsCmd, benchCmd, viewCmd,
		scenarioCmd, sweepCmd, exportCmd)
	return rootCmd
}
