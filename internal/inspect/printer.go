// Package inspect renders human-readable spot-checks of classification
// results for a single instance: the raw counts, per-step details for
// every classifier hit, and tool headers for the leading steps. The
// output exists for eyeballing whether the heuristics point at the right
// actions.
package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trajlens/internal/classify"
	"trajlens/internal/extract"
	"trajlens/internal/trajectory"
)

// thoughtLimit caps rendered thought text; anything longer is truncated
// with an ellipsis.
const thoughtLimit = 200

// Printer writes spot-check reports to a single destination.
type Printer struct {
	out    io.Writer
	styles Styles
}

// NewPrinter returns a Printer writing to out. Styling degrades to plain
// text when out is not a terminal.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// CleanText collapses all whitespace runs to single spaces and truncates
// the result to limit characters, appending "..." when cut.
func CleanText(text string, limit int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	runes := []rune(collapsed)
	if len(runes) <= limit {
		return collapsed
	}
	return string(runes[:limit]) + "..."
}

// Spotcheck prints the full report for one instance.
func (p *Printer) Spotcheck(instanceID string, steps []trajectory.Step, repro, search classify.StepIndices, counts classify.ToolCounts, maxToolSteps int) {
	fmt.Fprintf(p.out, "%s %s\n", p.styles.Label.Render("Instance:"), instanceID)
	fmt.Fprintf(p.out, "%s %d\n", p.styles.Label.Render("Total steps:"), len(steps))
	fmt.Fprintf(p.out, "%s %s\n", p.styles.Label.Render("Reproduction steps:"), repro)
	fmt.Fprintf(p.out, "%s %s\n", p.styles.Label.Render("Search steps:"), search)
	fmt.Fprintf(p.out, "%s %s\n\n", p.styles.Label.Render("Tool usage counts:"), counts)

	p.section("Reproduction step details:", steps, repro)
	p.section("Search step details:", steps, search)

	limit := toolHeaderLimit(len(steps), maxToolSteps)
	fmt.Fprintf(p.out, "%s\n", p.styles.Title.Render(fmt.Sprintf("First %d steps (tool headers):", limit)))
	p.printToolHeaders(steps, limit)
}

// section prints one classifier's detail listing, or a "(none)" marker
// when the classifier matched nothing.
func (p *Printer) section(title string, steps []trajectory.Step, indices classify.StepIndices) {
	if len(indices) == 0 {
		fmt.Fprintf(p.out, "%s (none)\n\n", p.styles.Title.Render(title))
		return
	}
	fmt.Fprintf(p.out, "%s\n", p.styles.Title.Render(title))
	for _, idx := range indices {
		p.StepDetails(steps, idx)
	}
}

// StepDetails prints the indented detail block for one 1-based step
// index: thought, tool, command, and harvested filenames. Indices outside
// the step range print a diagnostic instead of panicking.
func (p *Printer) StepDetails(steps []trajectory.Step, idx int) {
	if idx < 1 || idx > len(steps) {
		fmt.Fprintf(p.out, "  Step %d is out of range for %d steps\n\n", idx, len(steps))
		return
	}
	step := steps[idx-1]
	thought := CleanText(step.Thought(), thoughtLimit)
	tool := step.ToolName()
	if tool == "" {
		tool = "(unknown)"
	}
	command := step.CommandText()
	source := step.Text("action")
	if source == "" {
		source = command
	}
	files := extract.Filenames(source)

	fmt.Fprintf(p.out, "  Step %d:\n", idx)
	if thought != "" {
		fmt.Fprintf(p.out, "    %s %s\n", p.styles.Label.Render("Thought:"), thought)
	}
	fmt.Fprintf(p.out, "    %s %s\n", p.styles.Label.Render("Tool:"), tool)
	if command != "" {
		fmt.Fprintf(p.out, "    %s %s\n", p.styles.Label.Render("Command:"), command)
	}
	if len(files) > 0 {
		fmt.Fprintf(p.out, "    %s %s\n", p.styles.Label.Render("Files:"), strings.Join(files, ", "))
	}
	fmt.Fprintln(p.out)
}

// ToolHeaders prints "idx: tool=... | command=..." lines for the leading
// steps. A negative maxSteps means all steps.
func (p *Printer) ToolHeaders(steps []trajectory.Step, maxSteps int) {
	p.printToolHeaders(steps, toolHeaderLimit(len(steps), maxSteps))
}

func (p *Printer) printToolHeaders(steps []trajectory.Step, limit int) {
	for idx := 1; idx <= limit; idx++ {
		step := steps[idx-1]
		tool := step.ToolName()
		if tool == "" {
			tool = "(unknown)"
		}
		fmt.Fprintf(p.out, "  %d: tool=%s | command=%s\n", idx, tool, step.CommandText())
	}
	fmt.Fprintln(p.out)
}

func toolHeaderLimit(total, maxSteps int) int {
	if maxSteps < 0 || maxSteps > total {
		return total
	}
	return maxSteps
}
