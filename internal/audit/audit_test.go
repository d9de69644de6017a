package audit

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAppendCreatesAndAppends(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	if err := w.Append(ReproductionLog, "sympy__sympy-13031", "[4, 7]"); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if err := w.Append(ReproductionLog, "django__django-11019", "[]"); err != nil {
		t.Fatalf("second append failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ReproductionLog))
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	want := "sympy__sympy-13031: [4, 7]\ndjango__django-11019: []\n"
	if string(data) != want {
		t.Errorf("log content = %q, want %q", string(data), want)
	}
}

func TestAppendCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "audit")
	w := NewWriter(dir)

	if err := w.Append(ToolUseLog, "inst", `{"bash": 3}`); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ToolUseLog)); err != nil {
		t.Errorf("expected log file to exist: %v", err)
	}
}

func TestNewWriterDefaultsToCurrentDir(t *testing.T) {
	w := NewWriter("")
	if w.Dir() != "." {
		t.Errorf("Dir() = %q, want %q", w.Dir(), ".")
	}
}

func TestAppendFailsOnUnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not apply to root")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	w := NewWriter(filepath.Join(dir, "logs"))
	if err := w.Append(SearchLog, "inst", "[]"); err == nil {
		t.Error("expected append into unwritable directory to fail")
	}
}
