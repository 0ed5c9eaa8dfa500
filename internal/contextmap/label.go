package contextmap

import (
	"path/filepath"
	"strings"

	"ctxmap/internal/types"
)

// Label names a part for its treemap caption. The segment before the
// first colon doubles as the grouping key.
func Label(p types.Part, root string) string {
	switch v := p.(type) {
	case *types.TextPart:
		return "text"
	case *types.ReasoningPart:
		return "reasoning"
	case *types.ToolPart:
		label := "tool:" + v.Tool
		if path, ok := v.State.Input["filePath"].(string); ok && path != "" {
			label += ":" + relPath(root, path)
		}
		return label
	case *types.FilePart:
		return "file:" + fileRef(v, root)
	case *types.SubtaskPart:
		return "subtask:" + v.Agent
	default:
		kind := string(p.Kind())
		if kind == "" {
			kind = "unknown"
		}
		return kind
	}
}

func fileRef(p *types.FilePart, root string) string {
	switch {
	case p.Path != "":
		return relPath(root, p.Path)
	case p.Filename != "":
		return p.Filename
	default:
		return p.URL
	}
}

// relPath rewrites path relative to root for readability. Paths outside
// the root stay absolute rather than sprouting parent traversals.
func relPath(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
