/*
Package domain contains the core models of the dropzone interaction engine.

It defines the tree elements being authored, the drop zones that may receive
them, and the two pieces of interaction state owned by a builder session: the
drag session and the drop indicator. This package is kept pure and free of
I/O, following the same hexagonal split as the adapters that persist or expose
these types.

# Key Entities

  - ComponentNode: an element of the page tree (palette template or canvas node).
  - DropZone: a container node eligible to receive a dropped item.
  - DragSession: the item being dragged and whether it came from the palette.
  - DropIndicator: the computed insertion target and its on-screen position.
  - Snapshot: the persisted pairing of a session and its indicator.
*/
package domain
