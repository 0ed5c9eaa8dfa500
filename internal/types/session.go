package types

import "time"

// Session mirrors the OpenCode server's session record. Only the fields
// this tool reads are decoded; Directory anchors path relativization.
type Session struct {
	ID        string      `json:"id"`
	ProjectID string      `json:"projectID,omitempty"`
	Directory string      `json:"directory,omitempty"`
	ParentID  string      `json:"parentID,omitempty"`
	Title     string      `json:"title,omitempty"`
	Version   string      `json:"version,omitempty"`
	Time      SessionTime `json:"time"`
}

type SessionTime struct {
	Created int64 `json:"created"`
	Updated int64 `json:"updated"`
}

// UpdatedAt returns the last-touched instant, falling back to creation
// time for servers that never set updated.
func (s Session) UpdatedAt() time.Time {
	ms := s.Time.Updated
	if ms == 0 {
		ms = s.Time.Created
	}
	return time.UnixMilli(ms)
}

// DisplayTitle is the human label for pickers and status lines.
func (s Session) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.ID
}
