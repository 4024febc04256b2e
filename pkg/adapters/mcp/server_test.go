package mcp

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/aretw0/dropzone/pkg/adapters/memory"
	"github.com/aretw0/dropzone/pkg/catalog"
	"github.com/aretw0/dropzone/pkg/domain"
	"github.com/aretw0/dropzone/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(session.NewManager(memory.NewStore()), catalog.Default(), "test")
}

func TestServer_DragFlow(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	res, err := s.handleStartDrag(ctx, req, map[string]interface{}{
		"session_id":   "s1",
		"component_id": "alerts",
	})
	require.NoError(t, err)
	require.True(t, res.Snapshot.Session.Active())
	assert.True(t, res.Snapshot.Session.FromPalette)
	assert.Equal(t, "alerts", res.Snapshot.Session.ActiveItem.Kind)
	require.NotNil(t, res.Diff)
	assert.NotNil(t, res.Diff.Session)

	res, err = s.handleShowIndicator(ctx, req, map[string]interface{}{
		"session_id":          "s1",
		"target_container_id": "root",
		"insert_index":        float64(0),
		"x":                   float64(12),
		"orientation":         "vertical",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DropIndicator{
		Visible: true, Position: domain.Point{X: 12},
		TargetContainerID: "root", InsertIndex: 0, Orientation: domain.Vertical,
	}, res.Snapshot.Indicator)

	root, _ := json.Marshal(domain.ComponentNode{ID: "root", Kind: "page"})
	res, err = s.handleDrop(ctx, req, map[string]interface{}{
		"session_id": "s1",
		"root":       string(root),
	})
	require.NoError(t, err)
	require.Len(t, res.Root.Children, 1)
	assert.Equal(t, res.Node.ID, res.Root.Children[0].ID)
	assert.False(t, res.Snapshot.Session.Active())
	assert.False(t, res.Snapshot.Indicator.Visible)

	res, err = s.handleGetSession(ctx, req, map[string]interface{}{"session_id": "s1"})
	require.NoError(t, err)
	assert.False(t, res.Snapshot.Session.Active())
}

func TestServer_ShowIndicatorDefaultsToAppend(t *testing.T) {
	s := newTestServer()
	res, err := s.handleShowIndicator(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"session_id":          "s1",
		"target_container_id": "root",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.NoIndex, res.Snapshot.Indicator.InsertIndex)
	assert.Equal(t, domain.Horizontal, res.Snapshot.Indicator.Orientation)

	_, err = s.handleShowIndicator(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"session_id":  "s1",
		"orientation": "sideways",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOrientation)
}

func TestServer_ShowIndicatorRejectsNonIntegerIndex(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	for _, index := range []float64{2.7, -0.5, 1e300, -1e300, math.NaN()} {
		_, err := s.handleShowIndicator(ctx, mcp.CallToolRequest{}, map[string]interface{}{
			"session_id":          "s1",
			"target_container_id": "root",
			"insert_index":        index,
		})
		assert.ErrorContains(t, err, "insert_index must be an integer", "index %v", index)
	}

	res, err := s.handleShowIndicator(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"session_id":          "s1",
		"target_container_id": "root",
		"insert_index":        float64(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Snapshot.Indicator.InsertIndex)

	// Rejected calls never reach the session.
	ids, err := s.sessions.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)
}

func TestServer_StartDragFromItem(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	res, err := s.handleStartDrag(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"session_id": "s1",
		"item":       `{"id":"n1","type":"text","styles":{"color":"red"}}`,
	})
	require.NoError(t, err)
	assert.False(t, res.Snapshot.Session.FromPalette)
	assert.Equal(t, "n1", res.Snapshot.Session.ActiveItem.ID)
	assert.Equal(t, "red", res.Snapshot.Session.ActiveItem.StyleMap["color"])

	_, err = s.handleStartDrag(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"session_id": "s1",
		"item":       `{"id":"n1"}`,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidNode)

	_, err = s.handleStartDrag(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"session_id":   "s1",
		"component_id": "missing",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownComponent)

	_, err = s.handleStartDrag(ctx, mcp.CallToolRequest{}, map[string]interface{}{"session_id": "s1"})
	assert.Error(t, err)

	_, err = s.handleEndDrag(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	assert.Error(t, err, "session_id is required")
}

func TestServer_DropRejected(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()
	args := map[string]interface{}{"session_id": "s1"}

	_, err := s.handleStartDrag(ctx, mcp.CallToolRequest{}, map[string]interface{}{"session_id": "s1", "component_id": "buttons"})
	require.NoError(t, err)
	_, err = s.handleShowIndicator(ctx, mcp.CallToolRequest{}, map[string]interface{}{"session_id": "s1", "target_container_id": "row"})
	require.NoError(t, err)

	root, _ := json.Marshal(domain.ComponentNode{ID: "root", Kind: "page"})
	_, err = s.handleDrop(ctx, mcp.CallToolRequest{}, map[string]interface{}{"session_id": "s1", "root": string(root)})
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)

	_, err = s.handleDrop(ctx, mcp.CallToolRequest{}, map[string]interface{}{"session_id": "s1", "root": "{"})
	assert.ErrorIs(t, err, domain.ErrInvalidNode)

	res, err := s.handleHideIndicator(ctx, mcp.CallToolRequest{}, args)
	require.NoError(t, err)
	assert.True(t, res.Snapshot.Session.Active(), "failed drops keep the drag")
	assert.False(t, res.Snapshot.Indicator.Visible)
}

func TestServer_CatalogResourceAndListTool(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	contents, err := s.readCatalog(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, CatalogURI, text.URI)

	var f catalog.File
	require.NoError(t, json.Unmarshal([]byte(text.Text), &f))
	assert.Len(t, f.Categories, 8)
	assert.Len(t, f.Components, 48)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"category": "Pickers"}
	result, err := s.handleListComponents(ctx, req)
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)

	var defs []catalog.Definition
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &defs))
	assert.Len(t, defs, 3)
}
