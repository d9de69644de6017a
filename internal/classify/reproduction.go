package classify

import (
	"strings"

	"trajlens/internal/extract"
	"trajlens/internal/trajectory"
)

// Reproduction returns the 1-based indices of steps that plausibly create
// reproduction or test code, in ascending order.
func Reproduction(steps []trajectory.Step) StepIndices {
	var matches StepIndices
	for i, step := range steps {
		if isReproductionStep(step) {
			matches = append(matches, i+1)
		}
	}
	return matches
}

// isReproductionStep gates on a creation-style action, then accepts on the
// first signal that fires: a harvested filename carrying a file keyword,
// the header itself carrying one, or the thought describing reproduction
// work. Steps that merely run tests do not pass the creation gate.
func isReproductionStep(step trajectory.Step) bool {
	header := extract.Header(step.Text("action", "tool", "command"))
	if !extract.IsCreation(header) {
		return false
	}

	if filenames := extract.Filenames(header); len(filenames) > 0 {
		if extract.HasKeyword(strings.Join(filenames, " "), extract.FileKeywords) {
			return true
		}
	}
	if extract.HasKeyword(header, extract.FileKeywords) {
		return true
	}
	if thought := step.Thought(); thought != "" {
		return extract.HasKeyword(thought, extract.ThoughtKeywords)
	}
	return false
}
