package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventDragStart     EventType = "drag_start"
	EventDragEnd       EventType = "drag_end"
	EventIndicatorShow EventType = "indicator_show"
	EventIndicatorHide EventType = "indicator_hide"
	EventDrop          EventType = "drop"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// DragEvent reports the start or end of a drag.
type DragEvent struct {
	EventBase
	ItemID      string `json:"item_id,omitempty"`
	Kind        string `json:"kind,omitempty"`
	FromPalette bool   `json:"from_palette"`
}

// IndicatorEvent reports an indicator update.
type IndicatorEvent struct {
	EventBase
	Indicator DropIndicator `json:"indicator"`
}

// DropEvent reports a committed (or rejected) drop.
type DropEvent struct {
	EventBase
	ItemID            string `json:"item_id"`
	TargetContainerID string `json:"target_container_id"`
	InsertIndex       int    `json:"insert_index"`
	FromPalette       bool   `json:"from_palette"`
	Err               error  `json:"-"`
}

// LifecycleHooks defines callbacks for observability.
// OnIndicatorShow runs on the pointer-move path and should stay cheap.
type LifecycleHooks struct {
	OnDragStart     func(*DragEvent)
	OnDragEnd       func(*DragEvent)
	OnIndicatorShow func(*IndicatorEvent)
	OnIndicatorHide func(*IndicatorEvent)
	OnDrop          func(*DropEvent)
}

// ChangeKind says which half of the interaction state changed.
type ChangeKind int

const (
	ChangeSession ChangeKind = iota
	ChangeIndicator
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSession:
		return "session"
	case ChangeIndicator:
		return "indicator"
	default:
		return "unknown"
	}
}

// Change is delivered to observers after every mutation. It carries the full
// state by value so renderers never read a half-applied update.
type Change struct {
	Kind      ChangeKind
	Session   DragSession
	Indicator DropIndicator
}
