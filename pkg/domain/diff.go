package domain

import (
	"reflect"
)

// SnapshotDiff represents the changes between two snapshots.
// It is serialized to JSON and streamed to subscribed renderers.
type SnapshotDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	// Session is set when the active item or its origin changed.
	Session *DragSession `json:"session,omitempty"`

	// Indicator is set when any indicator field changed.
	Indicator *DropIndicator `json:"indicator,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, the diff carries the entire newSnap (initial load).
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *Snapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}

	diff := &SnapshotDiff{SessionID: newSnap.SessionID}

	if oldSnap == nil || sessionChanged(oldSnap.Session, newSnap.Session) {
		s := newSnap.Session
		diff.Session = &s
	}
	if oldSnap == nil || oldSnap.Indicator != newSnap.Indicator {
		ind := newSnap.Indicator
		diff.Indicator = &ind
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func sessionChanged(old, new DragSession) bool {
	if old.FromPalette != new.FromPalette {
		return true
	}
	if old.ActiveItem == new.ActiveItem {
		return false
	}
	return !reflect.DeepEqual(old.ActiveItem, new.ActiveItem)
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d == nil || (d.Session == nil && d.Indicator == nil)
}
