// Package classify implements the trajectory step classifiers: detection
// of reproduction-code steps, detection of search/navigation steps, and
// per-tool usage counting.
//
// The per-trajectory classifiers are pure functions over a step sequence.
// Analyzer wraps them with instance resolution and audit logging for use
// from the CLI and the sweep runner.
package classify

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// StepIndices is an ascending list of distinct 1-based step positions.
type StepIndices []int

// String renders the indices in list form, e.g. "[1, 3, 5]". Empty
// results render as "[]".
func (s StepIndices) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, idx := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(idx))
	}
	b.WriteByte(']')
	return b.String()
}

// ToolCounts maps resolved tool names to invocation counts.
type ToolCounts map[string]int

// Names returns the counted tool names in lexicographic order.
func (c ToolCounts) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the counts with keys in lexicographic order, e.g.
// {"bash": 12, "str_replace_editor": 7}. Empty counts render as "{}".
func (c ToolCounts) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range c.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %d", name, c[name])
	}
	b.WriteByte('}')
	return b.String()
}
