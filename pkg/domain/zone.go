package domain

// ZoneKind is the layout of a drop zone. It determines how the hosting UI
// maps pointer geometry to an insertion orientation.
type ZoneKind string

const (
	ZoneContainer ZoneKind = "container"
	ZoneRow       ZoneKind = "row"
	ZoneColumn    ZoneKind = "column"
)

// DropZone identifies a container node that may receive a dropped item.
type DropZone struct {
	ID   string   `json:"id" yaml:"id"`
	Kind ZoneKind `json:"type" yaml:"type"`

	// Accepts lists the component kinds this zone receives.
	// Empty means accept-all.
	Accepts []string `json:"accepts,omitempty" yaml:"accepts,omitempty"`
}

// Allows reports whether the zone receives components of the given kind.
func (z DropZone) Allows(kind string) bool {
	if len(z.Accepts) == 0 {
		return true
	}
	for _, k := range z.Accepts {
		if k == kind {
			return true
		}
	}
	return false
}

// Orientation returns the indicator orientation conventionally used for the
// zone: children of a row are separated by a vertical line, everything else
// by a horizontal one.
func (z DropZone) Orientation() Orientation {
	if z.Kind == ZoneRow {
		return Vertical
	}
	return Horizontal
}
