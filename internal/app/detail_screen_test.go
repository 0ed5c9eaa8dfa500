package app

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"

	"ctxmap/internal/contextmap"
	"ctxmap/internal/types"
)

func detailLeaf() (*contextmap.Node, *types.TextPart) {
	node := &contextmap.Node{Name: "text", Value: 11, Layer: 2, ColorType: "text", LeafKey: "0-0"}
	return node, &types.TextPart{Text: "hello world"}
}

func TestDetailControllerShowsLeafContent(t *testing.T) {
	c := NewDetailController(60, 12)
	node, part := detailLeaf()
	c.Open(node, part)

	view := xansi.Strip(c.View())
	if !strings.Contains(view, "text (11 chars)") {
		t.Fatalf("expected header with size, got %q", view)
	}
	if !strings.Contains(view, "[text]") || !strings.Contains(view, "hello world") {
		t.Fatalf("expected part content in view, got %q", view)
	}
	if got := c.Raw(); !strings.Contains(got, "hello world") {
		t.Fatalf("expected raw content for the clipboard, got %q", got)
	}
}

func TestDetailControllerMarkdownToggle(t *testing.T) {
	c := NewDetailController(60, 12)
	node := &contextmap.Node{Name: "text", Value: 20, Layer: 2, ColorType: "text", LeafKey: "0-1"}
	c.Open(node, &types.TextPart{Text: "# Heading\n\nbody text"})

	if c.Markdown() {
		t.Fatal("expected plain mode by default")
	}
	handled, action := c.HandleKey(tea.KeyPressMsg{Text: "m"})
	if !handled || action != detailActionNone {
		t.Fatalf("expected markdown toggle handled, handled=%v action=%v", handled, action)
	}
	if !c.Markdown() {
		t.Fatal("expected markdown mode after toggle")
	}
	if view := xansi.Strip(c.View()); !strings.Contains(view, "Heading") {
		t.Fatalf("expected rendered heading text, got %q", view)
	}
	c.HandleKey(tea.KeyPressMsg{Text: "m"})
	if c.Markdown() {
		t.Fatal("expected second toggle to return to plain mode")
	}
}

func TestDetailControllerMarkdownUnavailableForToolOutput(t *testing.T) {
	c := NewDetailController(60, 12)
	node := &contextmap.Node{Name: "tool:bash", Value: 30, Layer: 2, ColorType: "tool:bash", LeafKey: "1-0"}
	part := &types.ToolPart{Tool: "bash", State: types.ToolState{
		Status: types.ToolCompleted,
		Input:  map[string]any{"command": "ls"},
		Output: "main.go",
	}}
	c.Open(node, part)

	handled, _ := c.HandleKey(tea.KeyPressMsg{Text: "m"})
	if !handled {
		t.Fatal("expected m to be consumed")
	}
	if c.Markdown() {
		t.Fatal("expected markdown to stay off for tool output")
	}
	view := xansi.Strip(c.View())
	if !strings.Contains(view, "[tool: bash] completed") || !strings.Contains(view, "main.go") {
		t.Fatalf("expected tool transcript, got %q", view)
	}
}

func TestDetailControllerKeyActions(t *testing.T) {
	c := NewDetailController(60, 12)
	node, part := detailLeaf()
	c.Open(node, part)

	if handled, action := c.HandleKey(tea.KeyPressMsg{Text: "y"}); !handled || action != detailActionCopy {
		t.Fatalf("expected y to request a copy, handled=%v action=%v", handled, action)
	}
	if handled, action := c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEsc}); !handled || action != detailActionClose {
		t.Fatalf("expected esc to close, handled=%v action=%v", handled, action)
	}
	if handled, action := c.HandleKey(tea.KeyPressMsg{Text: "q"}); !handled || action != detailActionClose {
		t.Fatalf("expected q to close, handled=%v action=%v", handled, action)
	}
	if handled, _ := c.HandleKey(tea.KeyPressMsg{Text: "z"}); handled {
		t.Fatal("expected unbound key to pass through")
	}
}

func TestDetailControllerScrolls(t *testing.T) {
	c := NewDetailController(40, 8)
	var b strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	node := &contextmap.Node{Name: "text", Value: 300, Layer: 2, ColorType: "text", LeafKey: "2-0"}
	c.Open(node, &types.TextPart{Text: b.String()})

	if got := c.viewport.YOffset(); got != 0 {
		t.Fatalf("expected open at the top, got offset %d", got)
	}
	c.HandleKey(tea.KeyPressMsg{Text: "j"})
	if got := c.viewport.YOffset(); got != 1 {
		t.Fatalf("expected j to scroll one line, got %d", got)
	}
	c.HandleKey(tea.KeyPressMsg{Code: tea.KeyPgDown})
	if got := c.viewport.YOffset(); got <= 1 {
		t.Fatalf("expected page down to advance, got %d", got)
	}
	c.HandleKey(tea.KeyPressMsg{Code: tea.KeyHome})
	if got := c.viewport.YOffset(); got != 0 {
		t.Fatalf("expected home to return to the top, got %d", got)
	}
	c.HandleMouse(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	if got := c.viewport.YOffset(); got != 3 {
		t.Fatalf("expected wheel to scroll three lines, got %d", got)
	}
	c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnd})
	if got := c.viewport.YOffset(); got != 34 {
		t.Fatalf("expected end to reach the bottom, got %d", got)
	}
}

func TestDetailControllerResetDropsCache(t *testing.T) {
	c := NewDetailController(60, 12)
	node, part := detailLeaf()
	c.Open(node, part)

	if c.cache.Len() == 0 {
		t.Fatal("expected memoized content after open")
	}
	c.Reset()
	if got := c.cache.Len(); got != 0 {
		t.Fatalf("expected cleared cache, got %d entries", got)
	}
	if got := c.Raw(); got != "" {
		t.Fatalf("expected cleared content, got %q", got)
	}
}
