// Package main implements the trajlens command line interface.
// This file holds the locate subcommands wrapping the step classifiers.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Classify the steps of one instance's trajectory",
	Long: `Runs a single classifier against one instance and prints the raw result.

Results are 1-based step indices (repro, search) or a name-to-count map
(tools). Every run also appends an audit line to the matching log file.`,
}

var locateReproCmd = &cobra.Command{
	Use:   "repro <instance-id>",
	Short: "Locate steps that create reproduction or test code",
	Args:  cobra.ExactArgs(1),
	RunE:  runLocateRepro,
}

var locateSearchCmd = &cobra.Command{
	Use:   "search <instance-id>",
	Short: "Locate steps that search or navigate the codebase",
	Args:  cobra.ExactArgs(1),
	RunE:  runLocateSearch,
}

var locateToolsCmd = &cobra.Command{
	Use:   "tools <instance-id>",
	Short: "Count tool invocations across the trajectory",
	Args:  cobra.ExactArgs(1),
	RunE:  runLocateTools,
}

func runLocateRepro(cmd *cobra.Command, args []string) error {
	result, err := buildAnalyzer().ReproductionSteps(args[0])
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

func runLocateSearch(cmd *cobra.Command, args []string) error {
	result, err := buildAnalyzer().SearchSteps(args[0])
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

func runLocateTools(cmd *cobra.Command, args []string) error {
	result, err := buildAnalyzer().ToolUsage(args[0])
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

func init() {
	locateCmd.AddCommand(locateReproCmd)
	locateCmd.AddCommand(locateSearchCmd)
	locateCmd.AddCommand(locateToolsCmd)
	rootCmd.AddCommand(locateCmd)
}
