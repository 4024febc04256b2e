package http_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dzhttp "github.com/aretw0/dropzone/pkg/adapters/http"
	"github.com/aretw0/dropzone/pkg/adapters/memory"
	"github.com/aretw0/dropzone/pkg/catalog"
	"github.com/aretw0/dropzone/pkg/domain"
	"github.com/aretw0/dropzone/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*dzhttp.Server, http.Handler) {
	t.Helper()
	srv := dzhttp.NewServer(session.NewManager(memory.NewStore()), catalog.Default(), dzhttp.WithVersion("1.2.3"))
	return srv, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestSpec_IsValidAndCoversRoutes(t *testing.T) {
	doc, err := dzhttp.GetSwagger()
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", doc.Info.Version)

	srv, _ := newServer(t)
	err = chi.Walk(srv.Router(), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if route == "/openapi.yaml" {
			return nil
		}
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		item := doc.Paths.Value(route)
		if assert.NotNil(t, item, "route %s is not documented", route) {
			assert.NotNil(t, item.GetOperation(method), "%s %s is not documented", method, route)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestHealthInfoAndOpenAPIDocument(t *testing.T) {
	_, h := newServer(t)

	w := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	info := decode[map[string]string](t, do(t, h, http.MethodGet, "/info", nil))
	assert.Equal(t, "1.2.3", info["version"])
	assert.Equal(t, "0.1.0", info["api_version"])

	w = do(t, h, http.MethodGet, "/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}

func TestCORSPreflight(t *testing.T) {
	_, h := newServer(t)
	w := do(t, h, http.MethodOptions, "/sessions/s1/drag", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCatalogEndpoints(t *testing.T) {
	_, h := newServer(t)

	cats := decode[[]string](t, do(t, h, http.MethodGet, "/categories", nil))
	assert.Len(t, cats, 8)

	all := decode[[]catalog.Definition](t, do(t, h, http.MethodGet, "/components", nil))
	assert.Len(t, all, 48)

	layout := decode[[]catalog.Definition](t, do(t, h, http.MethodGet, "/components?category=Containment", nil))
	assert.Len(t, layout, 8)

	def := decode[catalog.Definition](t, do(t, h, http.MethodGet, "/components/buttons", nil))
	assert.Equal(t, "Buttons", def.Name)

	w := do(t, h, http.MethodGet, "/components/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDragLifecycle(t *testing.T) {
	_, h := newServer(t)

	w := do(t, h, http.MethodGet, "/sessions/s1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPost, "/sessions/s1/drag", dzhttp.StartDragRequest{ComponentID: "buttons"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap := decode[domain.Snapshot](t, w)
	require.True(t, snap.Session.Active())
	assert.True(t, snap.Session.FromPalette)
	assert.Equal(t, "buttons", snap.Session.ActiveItem.Kind)
	assert.Regexp(t, `^component_\d+_[0-9a-z]{9}$`, snap.Session.ActiveItem.ID)

	idx := 0
	w = do(t, h, http.MethodPut, "/sessions/s1/indicator", dzhttp.ShowIndicatorRequest{
		TargetContainerID: "root", InsertIndex: &idx, X: 10, Y: 20, Orientation: "vertical",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap = decode[domain.Snapshot](t, w)
	assert.Equal(t, domain.DropIndicator{
		Visible: true, Position: domain.Point{X: 10, Y: 20},
		TargetContainerID: "root", InsertIndex: 0, Orientation: domain.Vertical,
	}, snap.Indicator)

	w = do(t, h, http.MethodDelete, "/sessions/s1/indicator", nil)
	snap = decode[domain.Snapshot](t, w)
	assert.False(t, snap.Indicator.Visible)
	assert.Equal(t, domain.NoIndex, snap.Indicator.InsertIndex)
	assert.Equal(t, domain.Vertical, snap.Indicator.Orientation)

	w = do(t, h, http.MethodDelete, "/sessions/s1/drag", nil)
	snap = decode[domain.Snapshot](t, w)
	assert.False(t, snap.Session.Active())

	ids := decode[[]string](t, do(t, h, http.MethodGet, "/sessions", nil))
	assert.Equal(t, []string{"s1"}, ids)

	w = do(t, h, http.MethodDelete, "/sessions/s1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, http.MethodGet, "/sessions/s1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartDrag_BadRequests(t *testing.T) {
	_, h := newServer(t)

	cases := map[string]struct {
		body any
		code int
	}{
		"empty":             {dzhttp.StartDragRequest{}, http.StatusBadRequest},
		"both":              {dzhttp.StartDragRequest{ComponentID: "buttons", Item: map[string]any{"type": "x"}}, http.StatusBadRequest},
		"unknown":           {dzhttp.StartDragRequest{ComponentID: "nope"}, http.StatusNotFound},
		"item without type": {dzhttp.StartDragRequest{Item: map[string]any{"id": "n1"}}, http.StatusBadRequest},
		"item extra key":    {dzhttp.StartDragRequest{Item: map[string]any{"type": "x", "colour": "red"}}, http.StatusBadRequest},
		"not json":          {"{", http.StatusBadRequest},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/sessions/s1/drag", tc.body)
			assert.Equal(t, tc.code, w.Code, w.Body.String())
		})
	}
}

func TestShowIndicator_DefaultsAndErrors(t *testing.T) {
	_, h := newServer(t)

	snap := decode[domain.Snapshot](t, do(t, h, http.MethodPut, "/sessions/s1/indicator",
		map[string]any{"targetContainerId": "root"}))
	assert.Equal(t, domain.NoIndex, snap.Indicator.InsertIndex)
	assert.Equal(t, domain.Horizontal, snap.Indicator.Orientation)

	w := do(t, h, http.MethodPut, "/sessions/s1/indicator",
		map[string]any{"targetContainerId": "root", "orientation": "diagonal"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommitDrop(t *testing.T) {
	_, h := newServer(t)
	root := &domain.ComponentNode{ID: "root", Kind: "page", Children: []*domain.ComponentNode{
		{ID: "a", Kind: "text"},
		{ID: "b", Kind: "text"},
	}}

	// Drop without a drag.
	w := do(t, h, http.MethodPost, "/sessions/s1/drop", dzhttp.DropRequest{Root: root})
	assert.Equal(t, http.StatusConflict, w.Code)

	do(t, h, http.MethodPost, "/sessions/s1/drag", dzhttp.StartDragRequest{ComponentID: "cards"})
	idx := 1
	do(t, h, http.MethodPut, "/sessions/s1/indicator", dzhttp.ShowIndicatorRequest{TargetContainerID: "root", InsertIndex: &idx})

	// Zone rejects the kind; the drag survives.
	w = do(t, h, http.MethodPost, "/sessions/s1/drop", dzhttp.DropRequest{
		Root:  root,
		Zones: []domain.DropZone{{ID: "root", Kind: domain.ZoneContainer, Accepts: []string{"text"}}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodPost, "/sessions/s1/drop", dzhttp.DropRequest{Root: root})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[dzhttp.DropResponse](t, w)
	require.Len(t, resp.Root.Children, 3)
	assert.Equal(t, "cards", resp.Root.Children[1].Kind)
	assert.Equal(t, resp.Node.ID, resp.Root.Children[1].ID)
	assert.False(t, resp.Snapshot.Session.Active())
	assert.False(t, resp.Snapshot.Indicator.Visible)

	// Move "b" to the front.
	do(t, h, http.MethodPost, "/sessions/s1/drag", dzhttp.StartDragRequest{Item: map[string]any{"id": "b", "type": "text"}})
	idx = 0
	do(t, h, http.MethodPut, "/sessions/s1/indicator", dzhttp.ShowIndicatorRequest{TargetContainerID: "root", InsertIndex: &idx})
	w = do(t, h, http.MethodPost, "/sessions/s1/drop", dzhttp.DropRequest{Root: resp.Root})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = decode[dzhttp.DropResponse](t, w)
	require.Len(t, resp.Root.Children, 3)
	assert.Equal(t, "b", resp.Root.Children[0].ID)
	assert.Equal(t, "a", resp.Root.Children[1].ID)

	w = do(t, h, http.MethodPost, "/sessions/s1/drop", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscribeEvents_StreamsDiffs(t *testing.T) {
	srv, h := newServer(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/sessions/s1/events?watch=indicator")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 16)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	next := func() string {
		for {
			select {
			case l, ok := <-lines:
				if !ok {
					t.Fatal("stream closed")
				}
				if strings.HasPrefix(l, "data: ") {
					return strings.TrimPrefix(l, "data: ")
				}
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for event")
			}
		}
	}

	assert.Equal(t, "connected", next())
	require.Eventually(t, func() bool { return srv.Streams.Subscribers("s1") == 1 }, time.Second, 10*time.Millisecond)

	// Session-only change is filtered out by watch=indicator.
	do(t, h, http.MethodPost, "/sessions/s1/drag", dzhttp.StartDragRequest{ComponentID: "buttons"})
	do(t, h, http.MethodPut, "/sessions/s1/indicator", dzhttp.ShowIndicatorRequest{TargetContainerID: "root"})

	var diff domain.SnapshotDiff
	require.NoError(t, json.Unmarshal([]byte(next()), &diff))
	assert.Equal(t, "s1", diff.SessionID)
	assert.Nil(t, diff.Session)
	require.NotNil(t, diff.Indicator)
	assert.Equal(t, "root", diff.Indicator.TargetContainerID)
}

func TestStreamManager_UnsubscribeIsIdempotent(t *testing.T) {
	srv, _ := newServer(t)
	ch, cancel := srv.Streams.Subscribe("s1")
	srv.Streams.Broadcast("s1", "hello")
	assert.Equal(t, "hello", <-ch)

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
	assert.Zero(t, srv.Streams.Subscribers("s1"))
}
