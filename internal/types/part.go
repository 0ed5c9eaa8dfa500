package types

import "encoding/json"

// PartKind is the wire type tag of a message part.
type PartKind string

const (
	PartText       PartKind = "text"
	PartReasoning  PartKind = "reasoning"
	PartTool       PartKind = "tool"
	PartFile       PartKind = "file"
	PartSubtask    PartKind = "subtask"
	PartStepStart  PartKind = "step-start"
	PartStepFinish PartKind = "step-finish"
	PartSnapshot   PartKind = "snapshot"
	PartPatch      PartKind = "patch"
	PartAgent      PartKind = "agent"
	PartRetry      PartKind = "retry"
	PartCompaction PartKind = "compaction"
)

// Part is one entry of a message's part list. The concrete types below
// cover every kind the OpenCode API emits today; tags this tool does not
// recognize decode as *UnknownPart so newer servers stay harmless.
// Consumers dispatch with a type switch and must keep a default arm.
type Part interface {
	Kind() PartKind
	// RawJSON returns the undecoded wire object the part was built from.
	RawJSON() json.RawMessage
}

type TextPart struct {
	Text      string
	Synthetic bool
	Ignored   bool
	Raw       json.RawMessage
}

type ReasoningPart struct {
	Text string
	Raw  json.RawMessage
}

type ToolStatus string

const (
	ToolPending   ToolStatus = "pending"
	ToolRunning   ToolStatus = "running"
	ToolCompleted ToolStatus = "completed"
	ToolError     ToolStatus = "error"
)

// ToolState flattens the wire's per-status state union. Output is set
// only on completed, Error only on error. Compacted mirrors the wire's
// time.compacted marker: the output was pruned from the live context.
type ToolState struct {
	Status    ToolStatus
	Input     map[string]any
	Output    string
	Error     string
	Title     string
	Compacted bool
}

type ToolPart struct {
	Tool   string
	CallID string
	State  ToolState
	Raw    json.RawMessage
}

// FilePart carries an attachment. Path and Text are lifted from the wire
// source object when the file came from the workspace.
type FilePart struct {
	Mime     string
	URL      string
	Filename string
	Path     string
	Text     string
	Raw      json.RawMessage
}

type SubtaskPart struct {
	Agent       string
	Description string
	Prompt      string
	Raw         json.RawMessage
}

type StepStartPart struct {
	Snapshot string
	Raw      json.RawMessage
}

type TokenUsage struct {
	Input      float64
	Output     float64
	Reasoning  float64
	CacheRead  float64
	CacheWrite float64
}

type StepFinishPart struct {
	Cost   float64
	Reason string
	Tokens TokenUsage
	Raw    json.RawMessage
}

type SnapshotPart struct {
	Snapshot string
	Raw      json.RawMessage
}

type PatchPart struct {
	Hash  string
	Files []string
	Raw   json.RawMessage
}

type AgentPart struct {
	Name string
	Raw  json.RawMessage
}

type RetryPart struct {
	Attempt int
	Error   string
	Raw     json.RawMessage
}

type CompactionPart struct {
	Raw json.RawMessage
}

// UnknownPart preserves parts whose type tag this build does not know.
type UnknownPart struct {
	Type string
	Raw  json.RawMessage
}

func (p *TextPart) Kind() PartKind { return PartText }

func (p *ReasoningPart) Kind() PartKind { return PartReasoning }

func (p *ToolPart) Kind() PartKind { return PartTool }

func (p *FilePart) Kind() PartKind { return PartFile }

func (p *SubtaskPart) Kind() PartKind { return PartSubtask }

func (p *StepStartPart) Kind() PartKind { return PartStepStart }

func (p *StepFinishPart) Kind() PartKind { return PartStepFinish }

func (p *SnapshotPart) Kind() PartKind { return PartSnapshot }

func (p *PatchPart) Kind() PartKind { return PartPatch }

func (p *AgentPart) Kind() PartKind { return PartAgent }

func (p *RetryPart) Kind() PartKind { return PartRetry }

func (p *CompactionPart) Kind() PartKind { return PartCompaction }

func (p *UnknownPart) Kind() PartKind { return PartKind(p.Type) }

func (p *TextPart) RawJSON() json.RawMessage { return p.Raw }

func (p *ReasoningPart) RawJSON() json.RawMessage { return p.Raw }

func (p *ToolPart) RawJSON() json.RawMessage { return p.Raw }

func (p *FilePart) RawJSON() json.RawMessage { return p.Raw }

func (p *SubtaskPart) RawJSON() json.RawMessage { return p.Raw }

func (p *StepStartPart) RawJSON() json.RawMessage { return p.Raw }

func (p *StepFinishPart) RawJSON() json.RawMessage { return p.Raw }

func (p *SnapshotPart) RawJSON() json.RawMessage { return p.Raw }

func (p *PatchPart) RawJSON() json.RawMessage { return p.Raw }

func (p *AgentPart) RawJSON() json.RawMessage { return p.Raw }

func (p *RetryPart) RawJSON() json.RawMessage { return p.Raw }

func (p *CompactionPart) RawJSON() json.RawMessage { return p.Raw }

func (p *UnknownPart) RawJSON() json.RawMessage { return p.Raw }
