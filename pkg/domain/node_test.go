package domain_test

import (
	"testing"

	"github.com/aretw0/dropzone/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentNode_CloneIsDeep(t *testing.T) {
	orig := &domain.ComponentNode{
		ID:       "root",
		Kind:     "cards",
		StyleMap: map[string]string{"padding": "16px"},
		Children: []*domain.ComponentNode{{ID: "child", Kind: "buttons"}},
	}

	cp := orig.Clone()
	cp.StyleMap["padding"] = "0"
	cp.Children[0].ID = "changed"

	assert.Equal(t, "16px", orig.StyleMap["padding"])
	assert.Equal(t, "child", orig.Children[0].ID)
	assert.Nil(t, (*domain.ComponentNode)(nil).Clone())
}

func TestComponentNode_Contains(t *testing.T) {
	tree := &domain.ComponentNode{
		ID: "root",
		Children: []*domain.ComponentNode{
			{ID: "a", Children: []*domain.ComponentNode{{ID: "a1"}}},
			{ID: "b"},
		},
	}

	assert.True(t, tree.Contains("root"))
	assert.True(t, tree.Contains("a1"))
	assert.False(t, tree.Children[1].Contains("a1"))
	assert.False(t, tree.Contains("missing"))
}

func TestDecodeNode(t *testing.T) {
	t.Run("nested payload", func(t *testing.T) {
		node, err := domain.DecodeNode(map[string]any{
			"id":     "x",
			"type":   "cards",
			"name":   "Cards",
			"styles": map[string]any{"padding": "16px"},
			"children": []any{
				map[string]any{"id": "y", "type": "buttons"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "cards", node.Kind)
		assert.Equal(t, "16px", node.StyleMap["padding"])
		require.Len(t, node.Children, 1)
		assert.Equal(t, "y", node.Children[0].ID)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := domain.DecodeNode(map[string]any{"type": "cards", "colour": "red"})
		assert.ErrorIs(t, err, domain.ErrInvalidNode)
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := domain.DecodeNode(map[string]any{"id": "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidNode)
	})
}
