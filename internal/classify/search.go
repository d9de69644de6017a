package classify

import (
	"regexp"
	"strings"

	"trajlens/internal/trajectory"
)

// searchTools are the dedicated search/navigation tools some harnesses
// expose alongside the shell.
var searchTools = map[string]struct{}{
	"find_file":   {},
	"search_file": {},
	"search_dir":  {},
}

// shellSearchPattern matches shell verbs used to explore a codebase. Word
// boundaries here, unlike the substring keyword matching: "ls" must not
// fire inside "tools". Broad verbs like cd and cat are intentional; do not
// narrow the set.
var shellSearchPattern = regexp.MustCompile(`\b(find|grep|rg|fd|ls|cd|cat|tree|ag|pwd)\b`)

// Search returns the 1-based indices of steps that navigate or search the
// codebase, in ascending order.
func Search(steps []trajectory.Step) StepIndices {
	var matches StepIndices
	for i, step := range steps {
		if isSearchStep(step) {
			matches = append(matches, i+1)
		}
	}
	return matches
}

// isSearchStep applies the signals in order: dedicated search tools, file
// viewing through the interactive editor, then shell search verbs in the
// command text.
func isSearchStep(step trajectory.Step) bool {
	tool := strings.ToLower(step.ToolName())
	command := strings.ToLower(step.CommandText())

	if _, ok := searchTools[tool]; ok {
		return true
	}
	if tool == "str_replace_editor" && strings.Contains(command, "view") {
		return true
	}
	return shellSearchPattern.MatchString(command)
}
