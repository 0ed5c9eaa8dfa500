package contextmap

import (
	"encoding/json"

	"ctxmap/internal/types"
)

// Size estimates how many characters of context a part occupies. Pure
// over the part's fields; layout proportions are its only consumer.
func Size(p types.Part, mode ControlSizing) int {
	switch v := p.(type) {
	case *types.TextPart:
		return len(v.Text)
	case *types.ReasoningPart:
		return len(v.Text)
	case *types.ToolPart:
		return toolSize(v)
	case *types.FilePart:
		if v.Text != "" {
			return len(v.Text)
		}
		return len(v.URL)
	case *types.SubtaskPart:
		return len(v.Prompt) + len(v.Description)
	default:
		// Control parts and unknown kinds occupy no context budget
		// unless the serialized accounting mode is on.
		if mode == ControlSizingSerialized {
			return len(p.RawJSON())
		}
		return 0
	}
}

func toolSize(p *types.ToolPart) int {
	n := serializedLen(p.State.Input)
	switch p.State.Status {
	case types.ToolCompleted:
		// A compacted output was pruned from the live window and no
		// longer costs anything.
		if !p.State.Compacted {
			n += len(p.State.Output)
		}
	case types.ToolError:
		n += len(p.State.Error)
	}
	return n
}

// serializedLen measures an input map the way it travels on the wire.
func serializedLen(input map[string]any) int {
	if input == nil {
		return 0
	}
	b, err := json.Marshal(input)
	if err != nil {
		return 0
	}
	return len(b)
}
