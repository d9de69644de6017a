package classify

import (
	"strings"

	"trajlens/internal/trajectory"
)

// CountTools tallies how many steps resolve to each tool name. Steps with
// no resolvable tool are left out entirely, so the counts can sum to less
// than the step total.
func CountTools(steps []trajectory.Step) ToolCounts {
	counts := make(ToolCounts)
	for _, step := range steps {
		name := strings.TrimSpace(step.ToolName())
		if name == "" {
			continue
		}
		counts[name]++
	}
	return counts
}
