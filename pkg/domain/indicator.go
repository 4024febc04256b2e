package domain

import "fmt"

// Orientation is the axis along which the insertion gap is drawn.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// ParseOrientation validates a wire value. The empty string maps to Horizontal.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case "", Horizontal:
		return Horizontal, nil
	case Vertical:
		return Vertical, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
	}
}

// NoIndex marks an indicator without a determined insertion position.
const NoIndex = -1

// Point is a screen coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DropIndicator is the computed drop target and its rendering position.
//
// When Visible is false, TargetContainerID and InsertIndex carry no meaning
// and are held at "" and NoIndex.
type DropIndicator struct {
	Visible           bool        `json:"visible"`
	Position          Point       `json:"position"`
	TargetContainerID string      `json:"target_container_id"`
	InsertIndex       int         `json:"insert_index"`
	Orientation       Orientation `json:"orientation"`
}

// NewDropIndicator returns a hidden indicator.
func NewDropIndicator() DropIndicator {
	return DropIndicator{
		InsertIndex: NoIndex,
		Orientation: Horizontal,
	}
}

// Target returns the container and index the indicator points at, and false
// when the indicator is hidden.
func (d DropIndicator) Target() (string, int, bool) {
	if !d.Visible {
		return "", NoIndex, false
	}
	return d.TargetContainerID, d.InsertIndex, true
}

// Validate checks the indicator against the live child count of its target.
// NoIndex is valid and means "append".
func (d DropIndicator) Validate(childCount int) error {
	if !d.Visible {
		return ErrIndicatorHidden
	}
	if d.InsertIndex < NoIndex || d.InsertIndex > childCount {
		return fmt.Errorf("%w: index %d, %d children in %q",
			ErrIndexOutOfBounds, d.InsertIndex, childCount, d.TargetContainerID)
	}
	return nil
}
