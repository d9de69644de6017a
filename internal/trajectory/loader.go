package trajectory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Load reads a trajectory file and returns its ordered step sequence.
//
// The file may be one JSON document or newline-delimited JSON. A top-level
// object is unwrapped through the conventional "trajectory" or "steps"
// keys, falling back to the first non-empty array value in document order;
// a top-level array is the step list itself. On success the sequence is
// non-empty and every element is a Step; anything else is an error.
func Load(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trajectory: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		lines, lerr := parseLines(path, data)
		if lerr != nil {
			return nil, lerr
		}
		parsed = lines
	}

	var items []any
	switch doc := parsed.(type) {
	case map[string]any:
		items = unwrap(doc, data)
		if items == nil {
			return nil, fmt.Errorf("unexpected trajectory format in %s", path)
		}
	case []any:
		items = doc
	default:
		return nil, fmt.Errorf("unsupported trajectory data in %s", path)
	}

	steps := make([]Step, 0, len(items))
	for idx, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("step %d in %s is not an object", idx, path)
		}
		steps = append(steps, Step(fields))
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("no steps found in %s", path)
	}
	return steps, nil
}

// parseLines is the line-delimited fallback: every non-blank line must be
// one JSON value. A malformed line fails the whole file, reported with its
// 1-based line number.
func parseLines(path string, data []byte) ([]any, error) {
	var entries []any
	for i, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		var entry any
		if err := json.Unmarshal([]byte(trimmed), &entry); err != nil {
			return nil, fmt.Errorf("failed to parse JSONL line %d in %s: %w", i+1, path, err)
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no JSON objects found in %s", path)
	}
	return entries, nil
}

// unwrap pulls the step list out of a top-level object. The conventional
// keys win even when their list is empty; the fallback requires a non-empty
// array. Returns nil when nothing qualifies.
func unwrap(doc map[string]any, data []byte) []any {
	if list, ok := doc["trajectory"].([]any); ok {
		return list
	}
	if list, ok := doc["steps"].([]any); ok {
		return list
	}
	return firstListValue(data)
}

// firstListValue rescans the raw document so the fallback picks keys in
// document order. Map iteration order would make repeated loads of an
// ambiguous envelope disagree with each other.
func firstListValue(data []byte) []any {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil
		}
		if list, ok := value.([]any); ok && len(list) > 0 {
			return list
		}
	}
	return nil
}
