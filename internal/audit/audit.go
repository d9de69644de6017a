// Package audit appends classification results to per-classifier log
// files. The logs are an append-only trace for later review; they are
// never read back by the analyzer and a failed write must not fail the
// classification that produced it.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
)

// Log file names, one per classifier.
const (
	ReproductionLog = "locate_reproduction_code.log"
	SearchLog       = "locate_search.log"
	ToolUseLog      = "locate_tool_use.log"
)

// Writer appends result lines to log files under a fixed directory.
type Writer struct {
	dir string
}

// NewWriter returns a Writer rooted at dir. An empty dir means the current
// directory.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir}
}

// Dir returns the directory the Writer appends under.
func (w *Writer) Dir() string {
	return w.dir
}

// Append adds one "<instanceID>: <result>" line to the named log file,
// creating the directory and file as needed.
func (w *Writer) Append(logName, instanceID, result string) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(w.dir, logName), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%s: %s\n", instanceID, result); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close audit log: %w", err)
	}
	return nil
}
