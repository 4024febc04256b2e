// Package canvas is a reference drop handler: it applies a finished drag to a
// ComponentNode tree owned by the host.
//
// The interaction controller never validates indicator values. Drop is where
// they meet the live tree, so this is where bounds, acceptance and cycles are
// checked.
package canvas

import (
	"fmt"

	"github.com/aretw0/dropzone/pkg/domain"
)

// Find returns the node with the given ID, or nil.
func Find(root *domain.ComponentNode, id string) *domain.ComponentNode {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, child := range root.Children {
		if n := Find(child, id); n != nil {
			return n
		}
	}
	return nil
}

// FindParent returns the parent of the node with the given ID and the node's
// index among the parent's children. The root has no parent.
func FindParent(root *domain.ComponentNode, id string) (*domain.ComponentNode, int) {
	if root == nil {
		return nil, domain.NoIndex
	}
	for i, child := range root.Children {
		if child.ID == id {
			return root, i
		}
		if p, idx := FindParent(child, id); p != nil {
			return p, idx
		}
	}
	return nil, domain.NoIndex
}

// Insert places node among parent's children at index; NoIndex appends.
func Insert(parent, node *domain.ComponentNode, index int) error {
	if index == domain.NoIndex {
		parent.Children = append(parent.Children, node)
		return nil
	}
	if index < 0 || index > len(parent.Children) {
		return fmt.Errorf("%w: index %d, %d children in %q",
			domain.ErrIndexOutOfBounds, index, len(parent.Children), parent.ID)
	}
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = node
	return nil
}

func removeAt(parent *domain.ComponentNode, index int) *domain.ComponentNode {
	node := parent.Children[index]
	parent.Children = append(parent.Children[:index], parent.Children[index+1:]...)
	return node
}

// Drop applies the drag described by session and indicator to root and
// returns the node now in the tree.
//
// A palette drag inserts the session's copy. A canvas drag moves the tree's
// node with the same ID; the indicator index refers to the target's children
// before the node is removed. zones, when given, restrict what each container
// accepts; containers without a zone accept everything.
func Drop(root *domain.ComponentNode, session domain.DragSession, indicator domain.DropIndicator, zones ...domain.DropZone) (*domain.ComponentNode, error) {
	if !session.Active() {
		return nil, domain.ErrNoActiveDrag
	}
	targetID, index, ok := indicator.Target()
	if !ok {
		return nil, domain.ErrIndicatorHidden
	}
	target := Find(root, targetID)
	if target == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrTargetNotFound, targetID)
	}

	item := session.ActiveItem
	for _, z := range zones {
		if z.ID == targetID && !z.Allows(item.Kind) {
			return nil, fmt.Errorf("%w: %q into %q", domain.ErrRejectedKind, item.Kind, targetID)
		}
	}
	if err := indicator.Validate(len(target.Children)); err != nil {
		return nil, err
	}

	if session.FromPalette {
		if err := Insert(target, item, index); err != nil {
			return nil, err
		}
		return item, nil
	}

	node := Find(root, item.ID)
	if node == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, item.ID)
	}
	if node.Contains(targetID) {
		return nil, fmt.Errorf("%w: %q into %q", domain.ErrCyclicMove, item.ID, targetID)
	}
	parent, pos := FindParent(root, item.ID)
	if parent == nil {
		return nil, fmt.Errorf("%w: %q is the root", domain.ErrCyclicMove, item.ID)
	}

	removeAt(parent, pos)
	if parent == target && index != domain.NoIndex && pos < index {
		index--
	}
	if err := Insert(target, node, index); err != nil {
		// Put the node back so a failed drop leaves the tree unchanged.
		_ = Insert(parent, node, pos)
		return nil, err
	}
	return node, nil
}
