package app

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/hashicorp/golang-lru/v2"
	"github.com/muesli/reflow/wordwrap"

	"ctxmap/internal/contextmap"
	"ctxmap/internal/types"
)

const (
	detailCacheSize = 128
	// Header line, blank separator, then the viewport.
	detailChromeRows = 2
)

// detailAction tells the model what a handled detail key asks of it.
type detailAction int

const (
	detailActionNone detailAction = iota
	detailActionClose
	detailActionCopy
)

// DetailController shows the full content of one selected leaf in a
// scrollable viewport. Wrapped and rendered bodies are memoized per
// leaf, width, and render mode so revisiting a large tool output never
// repeats the work.
type DetailController struct {
	viewport viewport.Model
	cache    *lru.Cache[string, string]

	width  int
	height int

	leafKey  string
	title    string
	plain    string
	source   string // markdown input, set only for text and reasoning parts
	markdown bool
}

func NewDetailController(width, height int) *DetailController {
	cache, _ := lru.New[string, string](detailCacheSize)
	vp := viewport.New(
		viewport.WithWidth(max(1, width)),
		viewport.WithHeight(max(1, height-detailChromeRows)),
	)
	return &DetailController{
		viewport: vp,
		cache:    cache,
		width:    width,
		height:   height,
	}
}

// Reset drops memoized content. Call it when a different session loads
// so its leaf keys cannot resolve to bodies from the previous one.
func (c *DetailController) Reset() {
	if c == nil {
		return
	}
	c.cache.Purge()
	c.leafKey = ""
	c.title = ""
	c.plain = ""
	c.source = ""
}

// Open loads one leaf into the pane and scrolls back to the top. The
// markdown toggle is a view preference and survives across leaves.
func (c *DetailController) Open(node *contextmap.Node, part types.Part) {
	if c == nil || node == nil || part == nil {
		return
	}
	c.leafKey = node.LeafKey
	c.title = fmt.Sprintf("%s (%s)", node.Name, contextmap.FormatChars(node.Value))
	c.plain = contextmap.Content(part)
	c.source = markdownSource(part)
	c.refresh()
	c.viewport.GotoTop()
}

func (c *DetailController) SetSize(width, height int) {
	if c == nil {
		return
	}
	nextWidth := max(1, width)
	nextHeight := max(1, height-detailChromeRows)
	if c.viewport.Width() == nextWidth && c.viewport.Height() == nextHeight {
		return
	}
	c.width = width
	c.height = height
	c.viewport.SetWidth(nextWidth)
	c.viewport.SetHeight(nextHeight)
	if c.leafKey != "" {
		c.refresh()
	}
}

// Markdown reports whether the pane currently renders markdown.
func (c *DetailController) Markdown() bool {
	return c != nil && c.markdown && c.source != ""
}

// Raw returns the unwrapped content of the open leaf for clipboard use.
func (c *DetailController) Raw() string {
	if c == nil {
		return ""
	}
	return c.plain
}

func (c *DetailController) HandleKey(msg tea.KeyMsg) (bool, detailAction) {
	if c == nil {
		return false, detailActionNone
	}
	switch msg.String() {
	case "esc", "q":
		return true, detailActionClose
	case "y":
		return true, detailActionCopy
	case "m":
		if c.source == "" {
			return true, detailActionNone
		}
		c.markdown = !c.markdown
		c.refresh()
		c.viewport.GotoTop()
		return true, detailActionNone
	case "up", "k":
		c.viewport.ScrollUp(1)
	case "down", "j":
		c.viewport.ScrollDown(1)
	case "pgup":
		c.viewport.PageUp()
	case "pgdown":
		c.viewport.PageDown()
	case "ctrl+u":
		c.viewport.HalfPageUp()
	case "ctrl+d":
		c.viewport.HalfPageDown()
	case "home":
		c.viewport.GotoTop()
	case "end":
		c.viewport.GotoBottom()
	default:
		return false, detailActionNone
	}
	return true, detailActionNone
}

func (c *DetailController) HandleMouse(msg tea.MouseMsg) bool {
	if c == nil {
		return false
	}
	mouse := msg.Mouse()
	switch mouse.Button {
	case tea.MouseWheelUp:
		c.viewport.ScrollUp(3)
	case tea.MouseWheelDown:
		c.viewport.ScrollDown(3)
	default:
		return false
	}
	return true
}

func (c *DetailController) View() string {
	if c == nil {
		return ""
	}
	header := detailHdrStyle.Render(truncateLine(c.title, max(1, c.width)))
	return header + "\n\n" + c.viewport.View()
}

func (c *DetailController) refresh() {
	width := c.viewport.Width()
	useMarkdown := c.markdown && c.source != ""
	key := fmt.Sprintf("%s|%d|%t", c.leafKey, width, useMarkdown)
	if cached, ok := c.cache.Get(key); ok {
		c.viewport.SetContent(cached)
		return
	}
	var rendered string
	if useMarkdown {
		rendered = renderMarkdown(c.source, width)
	} else {
		rendered = wrapPlain(c.plain, width)
	}
	c.cache.Add(key, rendered)
	c.viewport.SetContent(rendered)
}

// markdownSource returns the renderable body for parts written as
// prose. Everything else stays plain: tool payloads and raw JSON read
// worse through a markdown pass, not better.
func markdownSource(part types.Part) string {
	switch v := part.(type) {
	case *types.TextPart:
		return v.Text
	case *types.ReasoningPart:
		return v.Text
	}
	return ""
}

func wrapPlain(text string, width int) string {
	trimmed := strings.TrimRight(text, "\n")
	if trimmed == "" {
		return "(empty)"
	}
	wrapped := wordwrap.String(trimmed, width)
	return strings.ReplaceAll(wrapped, "\r", "")
}
