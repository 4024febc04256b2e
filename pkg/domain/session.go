package domain

// DragSession holds the item currently being dragged.
//
// FromPalette is only meaningful while ActiveItem is set; both are reset
// together when the drag ends.
type DragSession struct {
	ActiveItem  *ComponentNode `json:"active_item,omitempty"`
	FromPalette bool           `json:"from_palette"`
}

// Active reports whether a drag is in progress.
func (s DragSession) Active() bool {
	return s.ActiveItem != nil
}
