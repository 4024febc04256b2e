package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ComponentNode is an element of the page tree being authored.
// Children are owned exclusively by their parent.
type ComponentNode struct {
	ID       string            `json:"id" yaml:"id" mapstructure:"id"`
	Kind     string            `json:"type" yaml:"type" mapstructure:"type"`
	Label    string            `json:"name" yaml:"name" mapstructure:"name"`
	Markup   string            `json:"content,omitempty" yaml:"content,omitempty" mapstructure:"content"`
	Children []*ComponentNode  `json:"children,omitempty" yaml:"children,omitempty" mapstructure:"children"`
	StyleMap map[string]string `json:"styles,omitempty" yaml:"styles,omitempty" mapstructure:"styles"`
}

// Clone returns a deep copy of the node and its subtree.
func (n *ComponentNode) Clone() *ComponentNode {
	if n == nil {
		return nil
	}
	cp := *n
	if n.StyleMap != nil {
		cp.StyleMap = make(map[string]string, len(n.StyleMap))
		for k, v := range n.StyleMap {
			cp.StyleMap[k] = v
		}
	}
	if n.Children != nil {
		cp.Children = make([]*ComponentNode, len(n.Children))
		for i, child := range n.Children {
			cp.Children[i] = child.Clone()
		}
	}
	return &cp
}

// Contains reports whether the node with the given id is n itself or one of
// its descendants.
func (n *ComponentNode) Contains(id string) bool {
	if n == nil {
		return false
	}
	if n.ID == id {
		return true
	}
	for _, child := range n.Children {
		if child.Contains(id) {
			return true
		}
	}
	return false
}

// DecodeNode converts a loosely typed payload (JSON-RPC arguments, decoded
// request bodies) into a ComponentNode. Unknown keys are rejected.
func DecodeNode(raw map[string]any) (*ComponentNode, error) {
	var node ComponentNode
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &node,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNode, err)
	}
	if node.Kind == "" {
		return nil, fmt.Errorf("%w: type is required", ErrInvalidNode)
	}
	return &node, nil
}
