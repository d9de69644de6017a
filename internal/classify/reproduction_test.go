package classify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"trajlens/internal/trajectory"
)

func TestReproductionFindsEditorCreate(t *testing.T) {
	steps := []trajectory.Step{
		{"action": "ls -la", "thought": "get oriented"},
		{"action": "grep -rn 'simplify' sympy/"},
		{"action": "str_replace_editor view /repo/sympy/core/expr.py"},
		{"action": "str_replace_editor create /tmp/test_bug.py --file_text import sympy\nprint(sympy.simplify('(-x/4 - 1/12)**x'))"},
		{"action": "python /tmp/test_bug.py"},
	}

	got := Reproduction(steps)
	if diff := cmp.Diff(StepIndices{4}, got); diff != "" {
		t.Errorf("Reproduction mismatch (-want +got):\n%s", diff)
	}
}

func TestReproductionSignals(t *testing.T) {
	tests := []struct {
		name string
		step trajectory.Step
		want bool
	}{
		{
			name: "running tests is not creating them",
			step: trajectory.Step{"action": "python -m pytest tests/"},
			want: false,
		},
		{
			name: "creation without any keyword",
			step: trajectory.Step{"action": "echo hi > poem.txt"},
			want: false,
		},
		{
			name: "keyword in harvested filename",
			step: trajectory.Step{"action": "touch reproduce_issue.py"},
			want: true,
		},
		{
			name: "keyword in header outside a filename",
			step: trajectory.Step{"action": "tee output.log # capture debug run"},
			want: true,
		},
		{
			name: "thought rescues a neutral creation",
			step: trajectory.Step{
				"action":  "cat > snippet.py <<'EOF'",
				"thought": "I'll write a script to reproduce the crash first",
			},
			want: true,
		},
		{
			name: "thought rescues an echo with no filename",
			step: trajectory.Step{
				"action":  "echo hello",
				"thought": "Let's write a minimal repro for this bug",
			},
			want: true,
		},
		{
			name: "reproduction thought without a creation action",
			step: trajectory.Step{
				"action":  "python snippet.py",
				"thought": "this should reproduce the crash",
			},
			want: false,
		},
		{
			name: "payload keywords are invisible",
			step: trajectory.Step{
				"action": "str_replace_editor create /tmp/notes.txt --file_text run pytest later",
			},
			want: false,
		},
		{
			name: "creation gate reads tool field when action is absent",
			step: trajectory.Step{"tool": "apply_patch", "thought": "add a unit test"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reproduction([]trajectory.Step{tt.step})
			if tt.want {
				assert.Equal(t, StepIndices{1}, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestReproductionIndicesAreAscendingAndDistinct(t *testing.T) {
	steps := []trajectory.Step{
		{"action": "touch test_one.py"},
		{"action": "ls"},
		{"action": "touch test_two.py"},
		{"action": "touch test_three.py"},
	}

	got := Reproduction(steps)
	if diff := cmp.Diff(StepIndices{1, 3, 4}, got); diff != "" {
		t.Errorf("Reproduction mismatch (-want +got):\n%s", diff)
	}
	seen := map[int]bool{}
	for i, idx := range got {
		if i > 0 && got[i-1] >= idx {
			t.Errorf("indices not strictly ascending: %v", got)
		}
		if idx < 1 || idx > len(steps) {
			t.Errorf("index %d outside 1..%d", idx, len(steps))
		}
		if seen[idx] {
			t.Errorf("duplicate index %d", idx)
		}
		seen[idx] = true
	}
}

func TestReproductionEmptyInput(t *testing.T) {
	assert.Empty(t, Reproduction(nil))
	assert.Equal(t, "[]", Reproduction(nil).String())
}
