package domain

import "time"

// Snapshot is the persisted state of one builder session.
type Snapshot struct {
	SessionID string        `json:"session_id"`
	Session   DragSession   `json:"session"`
	Indicator DropIndicator `json:"indicator"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewSnapshot creates an idle snapshot with a hidden indicator.
func NewSnapshot(sessionID string) *Snapshot {
	return &Snapshot{
		SessionID: sessionID,
		Indicator: NewDropIndicator(),
	}
}

// Clone returns a copy that shares nothing mutable with s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Session.ActiveItem = s.Session.ActiveItem.Clone()
	return &cp
}
