package types

import (
	"encoding/json"
	"fmt"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a session. The list endpoint wraps each entry
// in an {info, parts} envelope; older servers send the info fields flat.
type Message struct {
	ID    string
	Role  string
	Parts []Part
}

func (m *Message) UnmarshalJSON(data []byte) error {
	var wire struct {
		Info struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"info"`
		ID    string            `json:"id"`
		Role  string            `json:"role"`
		Parts []json.RawMessage `json:"parts"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	m.ID = wire.Info.ID
	m.Role = wire.Info.Role
	if m.ID == "" && m.Role == "" {
		m.ID = wire.ID
		m.Role = wire.Role
	}
	m.Parts = make([]Part, 0, len(wire.Parts))
	for i, raw := range wire.Parts {
		p, err := DecodePart(raw)
		if err != nil {
			return fmt.Errorf("decode message %s part %d: %w", m.ID, i, err)
		}
		m.Parts = append(m.Parts, p)
	}
	return nil
}
