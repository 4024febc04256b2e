package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownComponent is returned when a catalog lookup misses.
var ErrUnknownComponent = errors.New("unknown component")

// ErrInvalidNode is returned when a payload cannot be decoded into a ComponentNode.
var ErrInvalidNode = errors.New("invalid component node")

// ErrInvalidOrientation is returned for orientation values other than horizontal or vertical.
var ErrInvalidOrientation = errors.New("invalid orientation")

var (
	// ErrNoActiveDrag is returned when a drop is committed without a drag in progress.
	ErrNoActiveDrag = errors.New("no active drag")
	// ErrIndicatorHidden is returned when a drop is committed while the indicator is hidden.
	ErrIndicatorHidden = errors.New("drop indicator hidden")
	// ErrIndexOutOfBounds is returned when the insert index does not fit the target's children.
	ErrIndexOutOfBounds = errors.New("insert index out of bounds")
	// ErrNodeNotFound is returned when a moved node is missing from the tree.
	ErrNodeNotFound = errors.New("dragged node not found in tree")
	// ErrTargetNotFound is returned when the indicator points at a container missing from the tree.
	ErrTargetNotFound = errors.New("drop target not found")
	// ErrRejectedKind is returned when a drop zone does not accept the dragged kind.
	ErrRejectedKind = errors.New("component kind rejected by drop zone")
	// ErrCyclicMove is returned when a node would be moved into its own subtree.
	ErrCyclicMove = errors.New("cannot move a node into its own subtree")
)
