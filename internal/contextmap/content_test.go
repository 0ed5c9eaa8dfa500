package contextmap

import (
	"encoding/json"
	"strings"
	"testing"

	"ctxmap/internal/types"
)

func TestContentToolCompleted(t *testing.T) {
	t.Parallel()

	part := &types.ToolPart{
		Tool: "read",
		State: types.ToolState{
			Status: types.ToolCompleted,
			Input:  map[string]any{"filePath": "/repo/main.go"},
			Output: "package main",
		},
	}
	got := Content(part)
	if !strings.Contains(got, "tool: read") {
		t.Fatalf("missing tool header: %q", got)
	}
	if !strings.Contains(got, `"filePath": "/repo/main.go"`) {
		t.Fatalf("input not pretty-printed: %q", got)
	}
	if !strings.Contains(got, "package main") {
		t.Fatalf("output missing: %q", got)
	}
}

func TestContentToolCompactedHidesOutput(t *testing.T) {
	t.Parallel()

	part := &types.ToolPart{
		Tool: "bash",
		State: types.ToolState{
			Status:    types.ToolCompleted,
			Input:     map[string]any{"cmd": "make"},
			Output:    "SECRET BUILD LOG",
			Compacted: true,
		},
	}
	got := Content(part)
	if strings.Contains(got, "SECRET BUILD LOG") {
		t.Fatalf("compacted output must not be shown: %q", got)
	}
	if !strings.Contains(got, "pruned by compaction") {
		t.Fatalf("missing compaction note: %q", got)
	}
}

func TestContentToolStates(t *testing.T) {
	t.Parallel()

	running := &types.ToolPart{Tool: "grep", State: types.ToolState{Status: types.ToolRunning}}
	if got := Content(running); !strings.Contains(got, "no output yet") {
		t.Fatalf("missing progress marker: %q", got)
	}

	failed := &types.ToolPart{Tool: "bash", State: types.ToolState{Status: types.ToolError, Error: "exit 1"}}
	if got := Content(failed); !strings.Contains(got, "error:") || !strings.Contains(got, "exit 1") {
		t.Fatalf("missing error body: %q", got)
	}
}

func TestContentTextAndReasoning(t *testing.T) {
	t.Parallel()

	if got := Content(&types.TextPart{Text: "hello there"}); !strings.HasPrefix(got, "[text]") || !strings.Contains(got, "hello there") {
		t.Fatalf("unexpected text content: %q", got)
	}
	if got := Content(&types.ReasoningPart{Text: "thinking"}); !strings.HasPrefix(got, "[reasoning]") {
		t.Fatalf("unexpected reasoning content: %q", got)
	}
}

func TestContentFile(t *testing.T) {
	t.Parallel()

	inline := &types.FilePart{Filename: "notes.txt", Text: "remember the milk"}
	if got := Content(inline); !strings.Contains(got, "remember the milk") {
		t.Fatalf("inline text missing: %q", got)
	}

	remote := &types.FilePart{Filename: "big.bin", URL: "https://cdn/big.bin"}
	got := Content(remote)
	if !strings.Contains(got, "(no local content)") {
		t.Fatalf("missing no-content marker: %q", got)
	}
	if !strings.Contains(got, "https://cdn/big.bin") {
		t.Fatalf("missing url reference: %q", got)
	}
}

func TestContentSubtask(t *testing.T) {
	t.Parallel()

	part := &types.SubtaskPart{Agent: "review", Description: "inspect the diff", Prompt: "be strict"}
	got := Content(part)
	if !strings.Contains(got, "subtask: review") {
		t.Fatalf("missing agent header: %q", got)
	}
	if !strings.Contains(got, "inspect the diff") || !strings.Contains(got, "be strict") {
		t.Fatalf("missing body sections: %q", got)
	}
}

func TestContentControlFallsBackToDump(t *testing.T) {
	t.Parallel()

	raw := json.RawMessage(`{"type":"step-finish","cost":0.25}`)
	got := Content(&types.StepFinishPart{Cost: 0.25, Raw: raw})
	if !strings.HasPrefix(got, "[step-finish]") {
		t.Fatalf("missing kind header: %q", got)
	}
	if !strings.Contains(got, `"cost": 0.25`) {
		t.Fatalf("raw dump not indented: %q", got)
	}
}
