package types

import (
	"encoding/json"
	"fmt"
)

// partEnvelope is a loose superset of every part variant's fields; the
// type tag picks which of them mean anything.
type partEnvelope struct {
	Type        string          `json:"type"`
	Text        string          `json:"text"`
	Synthetic   bool            `json:"synthetic"`
	Ignored     bool            `json:"ignored"`
	Tool        string          `json:"tool"`
	CallID      string          `json:"callID"`
	State       *toolStateWire  `json:"state"`
	Mime        string          `json:"mime"`
	URL         string          `json:"url"`
	Filename    string          `json:"filename"`
	Source      *partSourceWire `json:"source"`
	Agent       string          `json:"agent"`
	Description string          `json:"description"`
	Prompt      string          `json:"prompt"`
	Snapshot    string          `json:"snapshot"`
	Cost        float64         `json:"cost"`
	Reason      string          `json:"reason"`
	Tokens      *tokenWire      `json:"tokens"`
	Hash        string          `json:"hash"`
	Files       []string        `json:"files"`
	Name        string          `json:"name"`
	Attempt     float64         `json:"attempt"`
	Error       json.RawMessage `json:"error"`
}

type toolStateWire struct {
	Status string         `json:"status"`
	Input  map[string]any `json:"input"`
	Output string         `json:"output"`
	Error  string         `json:"error"`
	Title  string         `json:"title"`
	Time   struct {
		Start     float64 `json:"start"`
		End       float64 `json:"end"`
		Compacted float64 `json:"compacted"`
	} `json:"time"`
}

type partSourceWire struct {
	Type string `json:"type"`
	Path string `json:"path"`
	Text struct {
		Value string `json:"value"`
		Start int64  `json:"start"`
		End   int64  `json:"end"`
	} `json:"text"`
}

type tokenWire struct {
	Input     float64 `json:"input"`
	Output    float64 `json:"output"`
	Reasoning float64 `json:"reasoning"`
	Cache     struct {
		Read  float64 `json:"read"`
		Write float64 `json:"write"`
	} `json:"cache"`
}

// DecodePart turns one wire part object into its concrete variant.
// Unrecognized type tags yield *UnknownPart rather than an error.
func DecodePart(raw json.RawMessage) (Part, error) {
	var env partEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode part: %w", err)
	}
	switch PartKind(env.Type) {
	case PartText:
		return &TextPart{Text: env.Text, Synthetic: env.Synthetic, Ignored: env.Ignored, Raw: raw}, nil
	case PartReasoning:
		return &ReasoningPart{Text: env.Text, Raw: raw}, nil
	case PartTool:
		st := ToolState{Status: ToolPending}
		if env.State != nil {
			st = ToolState{
				Status:    ToolStatus(env.State.Status),
				Input:     env.State.Input,
				Output:    env.State.Output,
				Error:     env.State.Error,
				Title:     env.State.Title,
				Compacted: env.State.Time.Compacted != 0,
			}
		}
		return &ToolPart{Tool: env.Tool, CallID: env.CallID, State: st, Raw: raw}, nil
	case PartFile:
		p := &FilePart{Mime: env.Mime, URL: env.URL, Filename: env.Filename, Raw: raw}
		if env.Source != nil {
			p.Path = env.Source.Path
			p.Text = env.Source.Text.Value
		}
		return p, nil
	case PartSubtask:
		return &SubtaskPart{Agent: env.Agent, Description: env.Description, Prompt: env.Prompt, Raw: raw}, nil
	case PartStepStart:
		return &StepStartPart{Snapshot: env.Snapshot, Raw: raw}, nil
	case PartStepFinish:
		p := &StepFinishPart{Cost: env.Cost, Reason: env.Reason, Raw: raw}
		if env.Tokens != nil {
			p.Tokens = TokenUsage{
				Input:      env.Tokens.Input,
				Output:     env.Tokens.Output,
				Reasoning:  env.Tokens.Reasoning,
				CacheRead:  env.Tokens.Cache.Read,
				CacheWrite: env.Tokens.Cache.Write,
			}
		}
		return p, nil
	case PartSnapshot:
		return &SnapshotPart{Snapshot: env.Snapshot, Raw: raw}, nil
	case PartPatch:
		return &PatchPart{Hash: env.Hash, Files: env.Files, Raw: raw}, nil
	case PartAgent:
		return &AgentPart{Name: env.Name, Raw: raw}, nil
	case PartRetry:
		return &RetryPart{Attempt: int(env.Attempt), Error: errorMessage(env.Error), Raw: raw}, nil
	case PartCompaction:
		return &CompactionPart{Raw: raw}, nil
	default:
		return &UnknownPart{Type: env.Type, Raw: raw}, nil
	}
}

// errorMessage digs a human message out of the API's error union, which
// is sometimes a bare string and sometimes a named error object.
func errorMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Name    string `json:"name"`
		Message string `json:"message"`
		Data    struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	if obj.Data.Message != "" {
		return obj.Data.Message
	}
	if obj.Message != "" {
		return obj.Message
	}
	return obj.Name
}
