package contextmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"ctxmap/internal/types"
)

// Content renders the full body of a part for the detail view. It runs
// only for the selected leaf, so large tool outputs are never touched
// until someone actually inspects them.
func Content(p types.Part) string {
	var b strings.Builder
	switch v := p.(type) {
	case *types.TextPart:
		writeHeader(&b, "text")
		b.WriteString(v.Text)
	case *types.ReasoningPart:
		writeHeader(&b, "reasoning")
		b.WriteString(v.Text)
	case *types.ToolPart:
		toolContent(&b, v)
	case *types.FilePart:
		fileContent(&b, v)
	case *types.SubtaskPart:
		writeHeader(&b, "subtask: "+v.Agent)
		if v.Description != "" {
			b.WriteString("description:\n")
			b.WriteString(v.Description)
			b.WriteString("\n\n")
		}
		b.WriteString("prompt:\n")
		b.WriteString(v.Prompt)
	default:
		kind := string(p.Kind())
		if kind == "" {
			kind = "unknown"
		}
		writeHeader(&b, kind)
		b.WriteString(prettyRaw(p.RawJSON()))
	}
	return b.String()
}

func writeHeader(b *strings.Builder, title string) {
	fmt.Fprintf(b, "[%s]\n\n", title)
}

func toolContent(b *strings.Builder, p *types.ToolPart) {
	status := p.State.Status
	if status == "" {
		status = types.ToolPending
	}
	fmt.Fprintf(b, "[tool: %s] %s\n\n", p.Tool, status)
	b.WriteString("input:\n")
	b.WriteString(prettyInput(p.State.Input))
	switch status {
	case types.ToolCompleted:
		if p.State.Compacted {
			b.WriteString("\n\noutput: (pruned by compaction)")
		} else {
			b.WriteString("\n\noutput:\n")
			b.WriteString(p.State.Output)
		}
	case types.ToolError:
		b.WriteString("\n\nerror:\n")
		b.WriteString(p.State.Error)
	default:
		fmt.Fprintf(b, "\n\n(%s, no output yet)", status)
	}
}

func fileContent(b *strings.Builder, p *types.FilePart) {
	title := p.Filename
	if title == "" {
		title = p.Path
	}
	if title == "" {
		title = p.URL
	}
	writeHeader(b, "file: "+title)
	if p.Text != "" {
		b.WriteString(p.Text)
		return
	}
	b.WriteString("(no local content)")
	if p.URL != "" {
		fmt.Fprintf(b, "\nurl: %s", p.URL)
	}
}

func prettyInput(input map[string]any) string {
	if len(input) == 0 {
		return "(none)"
	}
	out, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", input)
	}
	return string(out)
}

func prettyRaw(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "(no data)"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
