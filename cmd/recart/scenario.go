package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/recart/internal/automation"
	"github.com/san-kum/recart/internal/config"
	"github.com/san-kum/recart/internal/storage"
)

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario %s: %d steps\n", sc.Name, len(sc.Steps))
	return runSteps(ctx, sc)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if preset == "" || cmd.Flags().Changed("frames") {
		cfg.Frames = sweepFrames
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	sweep := automation.DepthSweep{Base: *cfg, From: sweepFrom, To: sweepTo}
	sc := &automation.Scenario{
		Name:  fmt.Sprintf("depth %d..%d", sweepFrom, sweepTo),
		Steps: sweep.Steps(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping depth %d..%d with seed %d\n", sweepFrom, sweepTo, cfg.Seed)
	return runSteps(ctx, sc)
}

func runSteps(ctx context.Context, sc *automation.Scenario) error {
	step := 0
	n, err := automation.RunScenario(ctx, sc, func(ctx context.Context, cfg *config.Config) error {
		step++
		fmt.Printf("\nstep %d/%d\n", step, len(sc.Steps))
		return generateRun(ctx, cfg)
	})
	logger.Info("scenario finished", "name", sc.Name, "completed", n, "steps", len(sc.Steps))
	return err
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if exportOut == "" {
		return st.Export(args[0], os.Stdout)
	}
	if err := st.ExportFile(args[0], exportOut); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", exportOut)
	return nil
}
