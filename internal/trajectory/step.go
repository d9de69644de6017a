// Package trajectory loads recorded agent trajectories and exposes their
// steps through schema-tolerant accessors.
//
// Trajectory files come from several generations of agent harnesses and no
// two of them agree on field names. A step is therefore a plain key/value
// mapping and every read goes through an accessor that tries the known
// field spellings in a fixed preference order.
package trajectory

import (
	"fmt"
	"strconv"
	"strings"

	"trajlens/internal/extract"
)

// Step is one recorded agent action with its surrounding metadata.
// Unrecognized fields are carried along and ignored.
type Step map[string]any

// Text returns the first present field among keys, stringified. A field is
// absent when it is missing, nil, an empty string, false, a zero number, or
// an empty list or mapping; absent fields fall through to the next key.
func (s Step) Text(keys ...string) string {
	for _, key := range keys {
		value, ok := s[key]
		if !ok || !present(value) {
			continue
		}
		return stringify(value)
	}
	return ""
}

// ToolName resolves the step's tool identifier: the explicit tool fields
// first, then the first whitespace-delimited token of the action header.
// A step with no resolvable tool yields "", never an error.
func (s Step) ToolName() string {
	if name := s.Text("tool", "tool_name", "name"); name != "" {
		return name
	}
	header := extract.Header(s.Text("action", "command"))
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// CommandText resolves the step's command payload: the explicit command
// fields first, then the action header.
func (s Step) CommandText() string {
	if command := s.Text("command", "args", "input"); command != "" {
		return command
	}
	return extract.Header(s.Text("action"))
}

// Thought returns the step's free-text reasoning, or "".
func (s Step) Thought() string {
	return s.Text("thought")
}

// present applies the emptiness rules shared by the trajectory producers.
func present(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

// stringify renders a field value as text. Strings pass through untouched,
// numbers use their shortest decimal form, anything structured falls back
// to fmt.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}
