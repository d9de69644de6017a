// Package sweep runs the full classifier suite across every discovered
// instance, printing one summary line per instance plus warnings for
// suspicious results, and mirroring the output to a report file.
//
// A sweep never stops on a bad instance: load and classification failures
// become ERROR lines and the remaining instances still run.
package sweep

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"trajlens/internal/classify"
	"trajlens/internal/instance"
	"trajlens/internal/trajectory"
)

// searchRatioLimit flags trajectories that are almost entirely search
// steps; above it the classifier output deserves a second look.
const searchRatioLimit = 0.8

// Options tune a Runner.
type Options struct {
	// Concurrent analyses; values below 1 run sequentially
	Workers int

	// Report file path; empty disables the report
	Report string

	// Destination for summary lines, default os.Stdout
	Out io.Writer
}

// Runner sweeps all instances under the resolver's roots.
type Runner struct {
	resolver *instance.Resolver
	analyzer *classify.Analyzer
	logger   *zap.Logger
	workers  int
	report   string
	out      io.Writer
}

// NewRunner wires a Runner. A nil logger is replaced with a no-op.
func NewRunner(resolver *instance.Resolver, analyzer *classify.Analyzer, logger *zap.Logger, opts Options) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Runner{
		resolver: resolver,
		analyzer: analyzer,
		logger:   logger,
		workers:  workers,
		report:   opts.Report,
		out:      out,
	}
}

// Outcome is the result of analyzing one instance: a summary line plus
// warnings, or an ERROR line when the instance could not be analyzed.
type Outcome struct {
	Label      string
	InstanceID string
	Summary    string
	Warnings   []string
	Failed     bool
}

// Lines returns the printable lines for the outcome, warnings indented
// under the summary.
func (o Outcome) Lines() []string {
	lines := make([]string, 0, 1+len(o.Warnings))
	lines = append(lines, o.Summary)
	for _, warning := range o.Warnings {
		lines = append(lines, "  "+warning)
	}
	return lines
}

// Run analyzes every discovered instance, prints the outcome lines in
// instance order, and writes the report file when there is anything to
// report. The returned outcomes follow the same order regardless of the
// worker count.
func (r *Runner) Run(ctx context.Context) ([]Outcome, error) {
	refs, err := r.resolver.List()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	r.logger.Info("starting sweep",
		zap.String("run_id", runID),
		zap.Int("instances", len(refs)),
		zap.Int("workers", r.workers))

	outcomes := make([]Outcome, len(refs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.workers)
	for i, ref := range refs {
		i, ref := i, ref // per-iteration copies; required while go.mod targets go < 1.22
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.analyzeInstance(ref)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var reportLines []string
	failed := 0
	for _, outcome := range outcomes {
		if outcome.Failed {
			failed++
		}
		for _, line := range outcome.Lines() {
			fmt.Fprintln(r.out, line)
			reportLines = append(reportLines, line)
		}
	}

	if len(reportLines) > 0 && r.report != "" {
		content := strings.Join(reportLines, "\n") + "\n"
		if err := os.WriteFile(r.report, []byte(content), 0644); err != nil {
			return outcomes, fmt.Errorf("failed to write sweep report: %w", err)
		}
		r.logger.Info("wrote sweep report",
			zap.String("run_id", runID),
			zap.String("path", r.report),
			zap.Int("lines", len(reportLines)))
	}

	r.logger.Info("sweep finished",
		zap.String("run_id", runID),
		zap.Int("instances", len(refs)),
		zap.Int("failed", failed))
	return outcomes, nil
}

// analyzeInstance runs all three classifiers for one instance. The first
// failure turns the whole instance into an ERROR outcome.
func (r *Runner) analyzeInstance(ref instance.Ref) Outcome {
	steps, err := trajectory.Load(ref.TrajPath)
	if err != nil {
		return errorOutcome(ref, err)
	}
	repro, err := r.analyzer.ReproductionSteps(ref.ID)
	if err != nil {
		return errorOutcome(ref, err)
	}
	search, err := r.analyzer.SearchSteps(ref.ID)
	if err != nil {
		return errorOutcome(ref, err)
	}
	counts, err := r.analyzer.ToolUsage(ref.ID)
	if err != nil {
		return errorOutcome(ref, err)
	}

	return Outcome{
		Label:      ref.Label,
		InstanceID: ref.ID,
		Summary: fmt.Sprintf("%s (%s) -> repro_steps=%d, search_steps=%d, tools=%s",
			ref.ID, ref.Label, len(repro), len(search), counts),
		Warnings: collectWarnings(repro, search, counts, len(steps)),
	}
}

func errorOutcome(ref instance.Ref, err error) Outcome {
	return Outcome{
		Label:      ref.Label,
		InstanceID: ref.ID,
		Summary:    fmt.Sprintf("%s (%s) -> ERROR: %v", ref.ID, ref.Label, err),
		Failed:     true,
	}
}

// collectWarnings screens one instance's results for signs the heuristics
// misfired: no tools at all, a search-dominated trajectory, or
// reproduction indices outside the step range.
func collectWarnings(repro, search classify.StepIndices, counts classify.ToolCounts, totalSteps int) []string {
	var warnings []string
	if len(counts) == 0 {
		warnings = append(warnings, "WARNING: zero tool calls reported")
	}
	if totalSteps > 0 {
		if float64(len(search))/float64(totalSteps) > searchRatioLimit {
			warnings = append(warnings,
				fmt.Sprintf("WARNING: search steps high (%d/%d)", len(search), totalSteps))
		}
		var outOfRange classify.StepIndices
		for _, idx := range repro {
			if idx < 1 || idx > totalSteps {
				outOfRange = append(outOfRange, idx)
			}
		}
		if len(outOfRange) > 0 {
			warnings = append(warnings,
				fmt.Sprintf("WARNING: reproduction indices out of range for %d steps (%s)", totalSteps, outOfRange))
		}
	}
	return warnings
}
