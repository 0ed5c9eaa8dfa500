package app

import (
	"sort"
	"strings"
)

type HotkeyContext int

const (
	HotkeyGlobal HotkeyContext = iota
	HotkeyPicker
	HotkeyTreemap
	HotkeyDetail
)

type Hotkey struct {
	Key      string
	Label    string
	Context  HotkeyContext
	Priority int
}

// HotkeyResolver decides which hint groups the status line shows for
// the model's current screen.
type HotkeyResolver interface {
	ActiveContexts(*Model) []HotkeyContext
}

func DefaultHotkeys() []Hotkey {
	return []Hotkey{
		{Key: "ctrl+c", Label: "quit", Context: HotkeyGlobal, Priority: 91},
		{Key: "enter", Label: "open", Context: HotkeyPicker, Priority: 10},
		{Key: "↑/↓", Label: "move", Context: HotkeyPicker, Priority: 20},
		{Key: "esc", Label: "quit", Context: HotkeyPicker, Priority: 30},
		{Key: "enter", Label: "inspect", Context: HotkeyTreemap, Priority: 10},
		{Key: "h/j/k/l", Label: "move", Context: HotkeyTreemap, Priority: 20},
		{Key: "tab", Label: "cycle", Context: HotkeyTreemap, Priority: 25},
		{Key: "g", Label: "grouping", Context: HotkeyTreemap, Priority: 30},
		{Key: "s", Label: "sessions", Context: HotkeyTreemap, Priority: 40},
		{Key: "r", Label: "reload", Context: HotkeyTreemap, Priority: 50},
		{Key: "q", Label: "quit", Context: HotkeyTreemap, Priority: 90},
		{Key: "esc", Label: "back", Context: HotkeyDetail, Priority: 10},
		{Key: "m", Label: "markdown", Context: HotkeyDetail, Priority: 20},
		{Key: "y", Label: "copy", Context: HotkeyDetail, Priority: 30},
		{Key: "j/k", Label: "scroll", Context: HotkeyDetail, Priority: 40},
	}
}

type DefaultHotkeyResolver struct{}

func (DefaultHotkeyResolver) ActiveContexts(m *Model) []HotkeyContext {
	contexts := []HotkeyContext{HotkeyGlobal}
	if m == nil {
		return contexts
	}
	switch m.screen {
	case screenPicker:
		contexts = append(contexts, HotkeyPicker)
	case screenDetail:
		contexts = append(contexts, HotkeyDetail)
	default:
		contexts = append(contexts, HotkeyTreemap)
	}
	return contexts
}

// renderHotkeys filters the table to the active contexts and joins the
// surviving hints in priority order.
func renderHotkeys(hotkeys []Hotkey, contexts []HotkeyContext) string {
	if len(hotkeys) == 0 || len(contexts) == 0 {
		return ""
	}
	allowed := map[HotkeyContext]struct{}{}
	for _, ctx := range contexts {
		allowed[ctx] = struct{}{}
	}
	var visible []Hotkey
	for _, hk := range hotkeys {
		if _, ok := allowed[hk.Context]; ok {
			visible = append(visible, hk)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].Priority == visible[j].Priority {
			return visible[i].Key < visible[j].Key
		}
		return visible[i].Priority < visible[j].Priority
	})
	parts := make([]string, 0, len(visible))
	for _, hk := range visible {
		parts = append(parts, hk.Key+" "+hk.Label)
	}
	return strings.Join(parts, " • ")
}
