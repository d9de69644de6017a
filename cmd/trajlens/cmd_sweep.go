package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trajlens/internal/sweep"
)

var (
	sweepWorkers int
	sweepReport  string
	sweepWatch   bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run every classifier across all discovered instances",
	Long: `Sweeps every instance found under the configured search roots, printing
one summary line per instance plus warnings for suspicious results: zero
tool calls, search-dominated trajectories, or out-of-range reproduction
indices.

A failing instance becomes an ERROR line and the sweep continues. The
full output is mirrored to the report file. With --watch the sweep stays
alive and re-runs whenever a trajectory file changes.`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "Concurrent analyses (default: from config)")
	sweepCmd.Flags().StringVar(&sweepReport, "report", "", "Report file path (default: from config)")
	sweepCmd.Flags().BoolVar(&sweepWatch, "watch", false, "Keep running and re-sweep when trajectories change")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	workers := cfg.Sweep.Workers
	if sweepWorkers > 0 {
		workers = sweepWorkers
	}
	report := cfg.Sweep.Report
	if sweepReport != "" {
		report = sweepReport
	}

	runner := sweep.NewRunner(buildResolver(), buildAnalyzer(), logger, sweep.Options{
		Workers: workers,
		Report:  report,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	if sweepWatch {
		watcher := sweep.NewWatcher(runner, buildRoots(), cfg.GetDebounce(), logger)
		return watcher.Watch(ctx)
	}

	_, err := runner.Run(ctx)
	return err
}
