// Package graph renders page trees as Mermaid flowcharts.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/dropzone/pkg/domain"
)

// Overlay marks interaction state on the rendered tree.
type Overlay struct {
	// DraggedID is the node being moved or the palette copy being inserted.
	DraggedID string
	// Indicator is drawn as an insertion point inside its target.
	Indicator domain.DropIndicator
}

// OverlayFrom builds an Overlay from a session snapshot.
func OverlayFrom(snap *domain.Snapshot) *Overlay {
	if snap == nil {
		return nil
	}
	o := &Overlay{Indicator: snap.Indicator}
	if snap.Session.Active() {
		o.DraggedID = snap.Session.ActiveItem.ID
	}
	return o
}

// GenerateMermaid produces a top-down Mermaid flowchart of root.
// Containers (nodes with children) are drawn as subroutines, leaves as
// rectangles. With an overlay, the dragged node and drop target are styled and
// a visible indicator adds a dashed insertion edge labelled with its index.
func GenerateMermaid(root *domain.ComponentNode, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if root == nil {
		return sb.String()
	}

	walk(&sb, root)

	if overlay == nil {
		return sb.String()
	}

	sb.WriteString("\n    %% Overlay Styles\n")
	sb.WriteString("    classDef dragging fill:#e1f5fe,stroke:#01579b,stroke-width:2px,stroke-dasharray:4,color:#000;\n")
	sb.WriteString("    classDef target fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	if overlay.DraggedID != "" && root.Contains(overlay.DraggedID) {
		fmt.Fprintf(&sb, "    class %s dragging;\n", sanitizeMermaidID(overlay.DraggedID))
	}
	if id, index, ok := overlay.Indicator.Target(); ok && root.Contains(id) {
		safe := sanitizeMermaidID(id)
		where := "end"
		if index != domain.NoIndex {
			where = fmt.Sprintf("%d", index)
		}
		fmt.Fprintf(&sb, "    %s_drop{{\"insert @ %s (%s)\"}}\n", safe, where, overlay.Indicator.Orientation)
		fmt.Fprintf(&sb, "    %s -.-> %s_drop\n", safe, safe)
		fmt.Fprintf(&sb, "    class %s target;\n", safe)
	}
	return sb.String()
}

func walk(sb *strings.Builder, n *domain.ComponentNode) {
	safeID := sanitizeMermaidID(n.ID)
	opener, closer := "[", "]"
	if len(n.Children) > 0 {
		opener, closer = "[[", "]]"
	}

	label := n.ID
	if n.Label != "" {
		label = n.Label + " <br/> " + n.ID
	}
	label = strings.ReplaceAll(label, "\"", "'")
	fmt.Fprintf(sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)

	for i, child := range n.Children {
		fmt.Fprintf(sb, "    %s -- \"%d\" --> %s\n", safeID, i, sanitizeMermaidID(child.ID))
	}
	for _, child := range n.Children {
		walk(sb, child)
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
