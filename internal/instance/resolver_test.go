package instance

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// seedInstance creates root/<id>/<id>.traj with placeholder content.
func seedInstance(t *testing.T, root, id string) {
	t.Helper()
	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create instance dir: %v", err)
	}
	path := filepath.Join(dir, id+".traj")
	if err := os.WriteFile(path, []byte(`[{"action": "ls"}]`), 0o644); err != nil {
		t.Fatalf("failed to write traj: %v", err)
	}
}

func newTestResolver(t *testing.T) (*Resolver, string, string) {
	t.Helper()
	base := t.TempDir()
	claude := filepath.Join(base, "claude-trajs")
	qwen := filepath.Join(base, "qwen-trajs")
	for _, dir := range []string{claude, qwen} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create root: %v", err)
		}
	}
	r := NewResolver([]Root{
		{Label: "claude", Path: claude},
		{Label: "qwen", Path: qwen},
	})
	return r, claude, qwen
}

func TestDirPrefersEarlierRoot(t *testing.T) {
	r, claude, qwen := newTestResolver(t)
	seedInstance(t, claude, "astropy__astropy-6938")
	seedInstance(t, qwen, "astropy__astropy-6938")

	dir, err := r.Dir("astropy__astropy-6938")
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}
	if !strings.HasPrefix(dir, claude) {
		t.Errorf("expected dir under first root, got %s", dir)
	}
}

func TestDirFallsBackToLaterRoot(t *testing.T) {
	r, _, qwen := newTestResolver(t)
	seedInstance(t, qwen, "django__django-11019")

	dir, err := r.Dir("django__django-11019")
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}
	if !strings.HasPrefix(dir, qwen) {
		t.Errorf("expected dir under second root, got %s", dir)
	}
}

func TestDirUnknownInstanceListsSearchedPaths(t *testing.T) {
	r, claude, qwen := newTestResolver(t)

	_, err := r.Dir("missing__instance-1")
	if err == nil {
		t.Fatal("expected error for unknown instance")
	}
	msg := err.Error()
	for _, root := range []string{claude, qwen} {
		if !strings.Contains(msg, filepath.Join(root, "missing__instance-1")) {
			t.Errorf("error does not mention candidate under %s: %s", root, msg)
		}
	}
}

func TestTrajectoryPath(t *testing.T) {
	r, claude, _ := newTestResolver(t)
	seedInstance(t, claude, "sympy__sympy-13031")

	path, err := r.TrajectoryPath("sympy__sympy-13031")
	if err != nil {
		t.Fatalf("TrajectoryPath failed: %v", err)
	}
	want := filepath.Join(claude, "sympy__sympy-13031", "sympy__sympy-13031.traj")
	if path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
}

func TestTrajectoryPathMissingFile(t *testing.T) {
	r, claude, _ := newTestResolver(t)
	// Directory exists but holds no .traj file.
	if err := os.MkdirAll(filepath.Join(claude, "pytest__pytest-5103"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	_, err := r.TrajectoryPath("pytest__pytest-5103")
	if err == nil {
		t.Fatal("expected error for missing trajectory file")
	}
	if !strings.Contains(err.Error(), "trajectory file not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestListWalksRootsInOrder(t *testing.T) {
	r, claude, qwen := newTestResolver(t)
	seedInstance(t, claude, "b-instance")
	seedInstance(t, claude, "a-instance")
	seedInstance(t, qwen, "c-instance")
	// Instance dir without a trajectory file is skipped.
	if err := os.MkdirAll(filepath.Join(claude, "no-traj"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	refs, err := r.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	var got []string
	for _, ref := range refs {
		got = append(got, ref.Label+"/"+ref.ID)
	}
	want := []string{"claude/a-instance", "claude/b-instance", "qwen/c-instance"}
	if len(got) != len(want) {
		t.Fatalf("List returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("refs[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestListSkipsMissingRoot(t *testing.T) {
	base := t.TempDir()
	present := filepath.Join(base, "present")
	seedInstance(t, present, "only-one")

	r := NewResolver([]Root{
		{Label: "ghost", Path: filepath.Join(base, "does-not-exist")},
		{Label: "real", Path: present},
	})
	refs, err := r.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(refs) != 1 || refs[0].ID != "only-one" {
		t.Errorf("unexpected refs: %v", refs)
	}
}
