package contextmap

import "ctxmap/internal/types"

// knownToolColors lists the tools the palette gives a dedicated entry.
// Everything else shares the generic tool color.
var knownToolColors = map[string]bool{
	"bash":      true,
	"read":      true,
	"write":     true,
	"edit":      true,
	"grep":      true,
	"glob":      true,
	"list":      true,
	"webfetch":  true,
	"todowrite": true,
	"task":      true,
}

// ColorType classifies a part into a palette key. The key set is fixed;
// the concrete color table lives with the UI theme.
func ColorType(p types.Part) string {
	switch v := p.(type) {
	case *types.TextPart:
		return "text"
	case *types.ReasoningPart:
		return "reasoning"
	case *types.ToolPart:
		if knownToolColors[v.Tool] {
			return "tool:" + v.Tool
		}
		return "tool"
	case *types.FilePart:
		return "file"
	case *types.SubtaskPart:
		return "subtask"
	default:
		return "control"
	}
}
