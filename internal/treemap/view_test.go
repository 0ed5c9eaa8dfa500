package treemap

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"

	"ctxmap/internal/contextmap"
)

func plainStyler(string, bool) lipgloss.Style { return lipgloss.NewStyle() }

func TestViewDimensions(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	g.SetSize(24, 6)
	g.SetTree(&contextmap.Node{Children: []*contextmap.Node{
		{Name: "user:0", Layer: 1, Children: []*contextmap.Node{leaf("text", 120, "0-0")}},
	}})

	out := g.View(plainStyler, nil)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 24 {
			t.Fatalf("line %d width %d, want 24: %q", i, n, line)
		}
	}
}

func TestViewShowsCaptionsAndSizes(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	g.SetSize(40, 8)
	g.SetTree(&contextmap.Node{Children: []*contextmap.Node{
		{Name: "assistant:0 (last)", Layer: 1, Children: []*contextmap.Node{
			leaf("tool:bash", 1500, "0-0"),
		}},
	}})

	out := g.View(plainStyler, contextmap.FormatChars)
	if !strings.Contains(out, "assistant:0 (last) 1.5K chars") {
		t.Fatalf("container caption missing: %q", out)
	}
	if !strings.Contains(out, "tool:bash 1.5K chars") {
		t.Fatalf("leaf caption missing: %q", out)
	}
}

func TestViewTruncatesNarrowCaptions(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	g.SetSize(8, 3)
	g.SetTree(&contextmap.Node{Children: []*contextmap.Node{
		leaf("tool:absurdly-long-name", 10, "0-0"),
	}})

	out := g.View(plainStyler, nil)
	lines := strings.Split(out, "\n")
	if len([]rune(lines[0])) != 8 {
		t.Fatalf("truncated caption must keep the grid width, got %q", lines[0])
	}
	if !strings.Contains(out, "…") {
		t.Fatalf("expected ellipsis in %q", out)
	}
}

func TestViewEmptyGrid(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	if out := g.View(plainStyler, nil); out != "" {
		t.Fatalf("expected empty view, got %q", out)
	}
}
