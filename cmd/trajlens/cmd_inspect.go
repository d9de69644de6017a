package main

import (
	"os"

	"github.com/spf13/cobra"

	"trajlens/internal/inspect"
)

var inspectMaxToolSteps int

var inspectCmd = &cobra.Command{
	Use:   "inspect <instance-id>",
	Short: "Print a spot-check report for one instance",
	Long: `Prints classification results for one instance together with per-step
details (thought, tool, command, files) for every reproduction and search
hit, plus tool headers for the leading steps.

Useful for judging whether the heuristics point at the right actions:
are obvious repro steps missed, are non-search actions flagged as search,
do the tool counts match the per-step headers.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectMaxToolSteps, "max-tool-steps", 0,
		"Number of initial steps to list with tool headers (default: from config)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	instanceID := args[0]
	analyzer := buildAnalyzer()

	steps, err := analyzer.Steps(instanceID)
	if err != nil {
		return err
	}
	repro, err := analyzer.ReproductionSteps(instanceID)
	if err != nil {
		return err
	}
	search, err := analyzer.SearchSteps(instanceID)
	if err != nil {
		return err
	}
	counts, err := analyzer.ToolUsage(instanceID)
	if err != nil {
		return err
	}

	maxToolSteps := cfg.Inspect.MaxToolSteps
	if inspectMaxToolSteps > 0 {
		maxToolSteps = inspectMaxToolSteps
	}
	inspect.NewPrinter(os.Stdout).Spotcheck(instanceID, steps, repro, search, counts, maxToolSteps)
	return nil
}
