// Package extract provides the shared text primitives the trajectory
// classifiers are built on: action-header extraction, creation-command
// detection, filename harvesting, and keyword matching.
//
// Everything here is heuristic. Agent actions are free-form shell text, so
// the primitives trade precision for recall and callers treat the results
// as plausible rather than proven.
package extract

import (
	"regexp"
	"strings"
)

// FileKeywords mark a filename as reproduction- or test-related.
var FileKeywords = []string{
	"repro",
	"reproduce",
	"reproduction",
	"debug",
	"test",
	"tests",
	"pytest",
	"unit",
	"minimal",
}

// ThoughtKeywords mark a step's free-text reasoning as describing
// reproduction work. Multi-word phrases must appear verbatim.
var ThoughtKeywords = []string{
	"repro",
	"reproduce",
	"reproduction",
	"debug",
	"test case",
	"test to reproduce",
	"script to reproduce",
	"minimal example",
	"minimal repro",
	"unit test",
	"pytest",
}

// fileTextMarker introduces an inlined file payload in editor actions.
// Everything from the marker on is file content, not command text.
const fileTextMarker = "--file_text"

// creationMarkers are command idioms that write or create files. Matched as
// lowercase substrings; the trailing space on the shell verbs keeps words
// like "echoed" or "touched" from matching.
var creationMarkers = []string{
	"str_replace_editor create",
	"apply_patch",
	"cat <<",
	"cat >",
	"tee ",
	"printf ",
	"echo ",
	"touch ",
}

var (
	// Absolute path tokens: a slash followed by anything that is not
	// whitespace or a quote character.
	absPathPattern = regexp.MustCompile("(/[^\\s'\"`]+)")
	// Relative names with a dotted extension, e.g. "test_bug.py".
	dottedNamePattern = regexp.MustCompile(`([A-Za-z0-9_./-]+\.[A-Za-z0-9_.-]+)`)
)

// Header reduces an action to the command text worth classifying. Actions
// carrying an inlined file payload are cut at the payload marker so file
// contents never leak into command matching; otherwise only the first line
// counts. Empty input yields "".
func Header(actionText string) string {
	if actionText == "" {
		return ""
	}
	if idx := strings.Index(actionText, fileTextMarker); idx >= 0 {
		return actionText[:idx]
	}
	if idx := strings.IndexAny(actionText, "\r\n"); idx >= 0 {
		return actionText[:idx]
	}
	return actionText
}

// IsCreation reports whether the action text looks like it creates or
// writes a file. Case-insensitive; a redirect buried mid-pipeline still
// counts.
func IsCreation(actionText string) bool {
	lowered := strings.ToLower(actionText)
	for _, marker := range creationMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// Filenames collects path-like tokens from text: absolute paths first, then
// relative names with a dotted extension. Candidates are stripped of
// surrounding quotes and de-duplicated keeping first-seen order. Best
// effort; version strings and the like can slip through.
func Filenames(text string) []string {
	var candidates []string
	candidates = append(candidates, absPathPattern.FindAllString(text, -1)...)
	candidates = append(candidates, dottedNamePattern.FindAllString(text, -1)...)

	seen := make(map[string]struct{}, len(candidates))
	unique := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		cleaned := strings.Trim(candidate, `'"`)
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		unique = append(unique, cleaned)
	}
	return unique
}

// HasKeyword reports whether text contains any keyword, case-insensitively.
// Plain substring containment: "latest" contains "test". Callers rely on
// that permissiveness, so do not tighten it to word boundaries.
func HasKeyword(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
