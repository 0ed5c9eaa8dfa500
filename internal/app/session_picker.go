package app

import (
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	runewidth "github.com/mattn/go-runewidth"
	fuzzy "github.com/sahilm/fuzzy"

	"ctxmap/internal/types"
)

// SessionPicker lists known sessions newest-first with a fuzzy filter
// over id and title.
const pickerQueryRows = 1

type SessionPicker struct {
	width   int
	height  int
	cursor  int
	offset  int
	query   string
	options []pickerOption
	visible []int
}

type pickerOption struct {
	id     string
	label  string
	meta   string
	search string
}

type pickerSource []pickerOption

func (s pickerSource) String(i int) string { return s[i].search }

func (s pickerSource) Len() int { return len(s) }

func NewSessionPicker(width, height int) *SessionPicker {
	return &SessionPicker{width: width, height: height}
}

func (p *SessionPicker) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.clampOffset()
}

func (p *SessionPicker) SetSessions(sessions []types.Session, now time.Time) {
	sorted := append([]types.Session{}, sessions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt().After(sorted[j].UpdatedAt())
	})
	p.options = p.options[:0]
	for _, session := range sorted {
		p.options = append(p.options, pickerOption{
			id:     session.ID,
			label:  session.DisplayTitle(),
			meta:   formatRelativeTime(session.UpdatedAt(), now),
			search: session.ID + " " + session.Title,
		})
	}
	p.rebuildVisible()
}

func (p *SessionPicker) Move(delta int) bool {
	if len(p.visible) == 0 || delta == 0 {
		return false
	}
	next := clamp(p.cursor+delta, 0, len(p.visible)-1)
	if next == p.cursor {
		return false
	}
	p.cursor = next
	p.ensureVisible()
	return true
}

func (p *SessionPicker) SelectedID() string {
	if p.cursor < 0 || p.cursor >= len(p.visible) {
		return ""
	}
	optionIndex := p.visible[p.cursor]
	if optionIndex < 0 || optionIndex >= len(p.options) {
		return ""
	}
	return p.options[optionIndex].id
}

func (p *SessionPicker) Query() string {
	return p.query
}

// HandleKey consumes navigation and filter editing. Enter and quit keys
// are left to the model.
func (p *SessionPicker) HandleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "ctrl+p":
		p.Move(-1)
		return true
	case "down", "ctrl+n":
		p.Move(1)
		return true
	case "pgup":
		p.Move(-p.visibleHeight())
		return true
	case "pgdown":
		p.Move(p.visibleHeight())
		return true
	case "backspace":
		return p.backspaceQuery()
	case "esc":
		if p.query == "" {
			return false
		}
		p.setQuery("")
		return true
	}
	if text := printableKeyText(msg); text != "" {
		p.setQuery(p.query + text)
		return true
	}
	return false
}

// HandleClick moves the cursor to the row under the pointer. The second
// return reports whether the click landed on the already selected row.
func (p *SessionPicker) HandleClick(row int) (bool, bool) {
	row -= pickerQueryRows
	if row < 0 || row >= p.visibleHeight() {
		return false, false
	}
	index := p.offset + row
	if index < 0 || index >= len(p.visible) {
		return false, false
	}
	again := index == p.cursor
	p.cursor = index
	p.ensureVisible()
	return true, again
}

func (p *SessionPicker) View() string {
	if p.height <= 0 {
		return ""
	}
	lines := make([]string, 0, p.height)
	lines = append(lines, renderPickerQueryLine(p.query))
	if p.visibleHeight() <= 0 {
		return padLines(lines, p.width)
	}
	if len(p.options) == 0 {
		lines = append(lines, " (none)")
		for len(lines) < p.height {
			lines = append(lines, "")
		}
		return padLines(lines, p.width)
	}
	if len(p.visible) == 0 {
		lines = append(lines, " (no matches)")
		for len(lines) < p.height {
			lines = append(lines, "")
		}
		return padLines(lines, p.width)
	}
	for i := 0; i < p.visibleHeight(); i++ {
		idx := p.offset + i
		if idx >= len(p.visible) {
			lines = append(lines, "")
			continue
		}
		opt := p.options[p.visible[idx]]
		lines = append(lines, p.renderRow(opt, idx == p.cursor))
	}
	return padLines(lines, p.width)
}

func (p *SessionPicker) renderRow(opt pickerOption, selected bool) string {
	meta := opt.meta
	labelWidth := p.width - 2
	if meta != "" {
		labelWidth -= runewidth.StringWidth(meta) + 2
	}
	label := opt.label
	if labelWidth > 0 {
		label = runewidth.Truncate(label, labelWidth, "…")
	}
	if selected {
		line := " " + label
		if meta != "" {
			line += "  " + meta
		}
		return selectedStyle.Render(line)
	}
	line := " " + label
	if meta != "" {
		line += "  " + pickerMetaStyle.Render(meta)
	}
	return line
}

func renderPickerQueryLine(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return " /"
	}
	return " / " + query
}

func (p *SessionPicker) setQuery(query string) {
	if query == p.query {
		return
	}
	p.query = query
	p.rebuildVisible()
}

func (p *SessionPicker) backspaceQuery() bool {
	if p.query == "" {
		return false
	}
	runes := []rune(p.query)
	p.setQuery(string(runes[:len(runes)-1]))
	return true
}

func (p *SessionPicker) rebuildVisible() {
	query := strings.TrimSpace(p.query)
	if query == "" {
		p.visible = p.visible[:0]
		for i := range p.options {
			p.visible = append(p.visible, i)
		}
	} else {
		matches := fuzzy.FindFrom(query, pickerSource(p.options))
		p.visible = p.visible[:0]
		for _, match := range matches {
			p.visible = append(p.visible, match.Index)
		}
	}
	if p.cursor >= len(p.visible) {
		p.cursor = len(p.visible) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.ensureVisible()
}

func (p *SessionPicker) visibleHeight() int {
	height := p.height - pickerQueryRows
	if height <= 0 {
		return 0
	}
	return height
}

func (p *SessionPicker) ensureVisible() {
	if p.visibleHeight() <= 0 {
		p.offset = 0
		return
	}
	if len(p.visible) == 0 {
		p.cursor = 0
		p.offset = 0
		return
	}
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.visibleHeight() {
		p.offset = p.cursor - p.visibleHeight() + 1
	}
	p.clampOffset()
}

func (p *SessionPicker) clampOffset() {
	if p.visibleHeight() <= 0 {
		p.offset = 0
		return
	}
	if p.offset < 0 {
		p.offset = 0
	}
	maxOffset := max(0, len(p.visible)-p.visibleHeight())
	if p.offset > maxOffset {
		p.offset = maxOffset
	}
}

func printableKeyText(msg tea.KeyMsg) string {
	press, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return ""
	}
	text := press.Text
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return text
}
