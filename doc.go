/*
Package dropzone is the drag-and-drop interaction core of a visual page builder.

It tracks which component is being dragged, whether it came from the palette
or from the canvas, and where a drop would land, and it ships the catalog of
component templates the palette offers. Rendering, the page tree and its
persistence belong to the host; dropzone only holds interaction state and
commits a drop into a tree the host hands it.

# Concept

A builder session owns two pieces of state:

  - The drag session: the active item (nil when idle) and whether it is a
    palette copy. A palette drag stores a copy of the template under a fresh
    ID; a canvas drag stores the node being moved.
  - The drop indicator: visible flag, pointer position, target container,
    insertion index and orientation. It is hidden whenever no drop target is
    under the pointer and always hidden when a drag ends.

The host drives both from its event loop: StartDrag on drag-start, ShowIndicator
and HideIndicator on pointer-move, Drop or EndDrag on release.

# Usage

	b := dropzone.New()

	if err := b.StartPaletteDrag("buttons"); err != nil {
		log.Fatal(err)
	}
	b.ShowIndicator("root", 0, 120, 48, domain.Horizontal)

	node, err := b.Drop(page)
	if err != nil {
		// The drag is still active; the host may retry or call EndDrag.
	}

# Server Mode

For hosts that keep interaction state on a server, pkg/session persists
sessions through a ports.SnapshotStore (memory, file or redis) and serializes
access per session. pkg/adapters/http and pkg/adapters/mcp expose the same
operations over HTTP and the Model Context Protocol; cmd/dropzone wires them
into a single binary.
*/
package dropzone
