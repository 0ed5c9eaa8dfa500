package app

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestBuildStyleConfigDisablesDocumentOuterMargins(t *testing.T) {
	cfg := buildStyleConfig()
	if cfg.Document.StylePrimitive.BlockPrefix != "" {
		t.Fatalf("expected empty document block prefix, got %q", cfg.Document.StylePrimitive.BlockPrefix)
	}
	if cfg.Document.StylePrimitive.BlockSuffix != "" {
		t.Fatalf("expected empty document block suffix, got %q", cfg.Document.StylePrimitive.BlockSuffix)
	}
	if cfg.Document.Margin == nil {
		t.Fatalf("expected document margin pointer")
	}
	if *cfg.Document.Margin != 0 {
		t.Fatalf("expected document margin 0, got %d", *cfg.Document.Margin)
	}
}

func TestRenderMarkdownKeepsTextVisible(t *testing.T) {
	out := xansi.Strip(renderMarkdown("# Title\n\nSome body text.", 40))
	if !strings.Contains(out, "Title") {
		t.Fatalf("expected heading text in output, got %q", out)
	}
	if !strings.Contains(out, "Some body text.") {
		t.Fatalf("expected body text in output, got %q", out)
	}
}

func TestRenderMarkdownStaysInsideWidth(t *testing.T) {
	long := strings.Repeat("wide words keep coming ", 20)
	out := renderMarkdown(long, 32)
	for _, line := range strings.Split(out, "\n") {
		if w := xansi.StringWidth(line); w > 32 {
			t.Fatalf("expected lines at most 32 cells, got %d in %q", w, line)
		}
	}
}

func TestRenderMarkdownEmptyInput(t *testing.T) {
	if got := renderMarkdown("", 40); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := renderMarkdown("\n\n", 40); got != "" {
		t.Fatalf("expected trailing newlines trimmed away, got %q", got)
	}
}

func TestRenderMarkdownReusesRenderers(t *testing.T) {
	renderMarkdown("hello", 48)
	renderMarkdown("world", 48)
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if renderersByWidth[48] == nil {
		t.Fatalf("expected a cached renderer for width 48")
	}
}
