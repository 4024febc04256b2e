package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aretw0/dropzone/internal/runtime"
	"github.com/aretw0/dropzone/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// StartDragRequest is the body of POST /sessions/{id}/drag.
// ComponentID starts a palette drag of a catalog entry; Item starts a drag of
// an arbitrary node, from the canvas unless FromPalette is set.
type StartDragRequest struct {
	ComponentID string         `json:"componentId,omitempty"`
	Item        map[string]any `json:"item,omitempty"`
	FromPalette bool           `json:"fromPalette,omitempty"`
}

// ShowIndicatorRequest is the body of PUT /sessions/{id}/indicator.
// A missing InsertIndex means append.
type ShowIndicatorRequest struct {
	TargetContainerID string  `json:"targetContainerId"`
	InsertIndex       *int    `json:"insertIndex,omitempty"`
	X                 float64 `json:"x"`
	Y                 float64 `json:"y"`
	Orientation       string  `json:"orientation,omitempty"`
}

// DropRequest is the body of POST /sessions/{id}/drop.
type DropRequest struct {
	Root  *domain.ComponentNode `json:"root"`
	Zones []domain.DropZone     `json:"zones,omitempty"`
}

// DropResponse is returned by a successful drop.
type DropResponse struct {
	Node     *domain.ComponentNode `json:"node"`
	Root     *domain.ComponentNode `json:"root"`
	Snapshot *domain.Snapshot      `json:"snapshot"`
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// update runs fn against the session's controller and broadcasts the diff.
func (s *Server) update(w http.ResponseWriter, r *http.Request, fn func(*runtime.Controller) error) (*domain.Snapshot, bool) {
	id := chi.URLParam(r, "id")
	old, updated, err := s.Sessions.Update(r.Context(), id, fn)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	s.broadcastDiff(old, updated)
	return updated, true
}

func (s *Server) broadcastDiff(old, updated *domain.Snapshot) {
	diff := domain.Diff(old, updated)
	if diff == nil {
		s.logger.Debug("no diff calculated", "session_id", updated.SessionID)
		return
	}
	data, err := json.Marshal(diff)
	if err != nil {
		s.logger.Error("failed to marshal diff", "err", err)
		return
	}
	s.Streams.Broadcast(diff.SessionID, string(data))
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartDrag handles POST /sessions/{id}/drag.
func (s *Server) StartDrag(w http.ResponseWriter, r *http.Request) {
	var body StartDragRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, err)
		return
	}

	var (
		item        *domain.ComponentNode
		fromPalette = body.FromPalette
		err         error
	)
	switch {
	case body.ComponentID != "" && body.Item != nil:
		err = fmt.Errorf("%w: componentId and item are mutually exclusive", errBadRequest)
	case body.ComponentID != "":
		item, err = s.Catalog.Template(body.ComponentID)
		fromPalette = true
	case body.Item != nil:
		item, err = domain.DecodeNode(body.Item)
	default:
		err = fmt.Errorf("%w: componentId or item is required", errBadRequest)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	snap, ok := s.update(w, r, func(c *runtime.Controller) error {
		c.Start(item, fromPalette)
		return nil
	})
	if ok {
		writeJSON(w, http.StatusOK, snap)
	}
}

// EndDrag handles DELETE /sessions/{id}/drag.
func (s *Server) EndDrag(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.update(w, r, func(c *runtime.Controller) error {
		c.End()
		return nil
	})
	if ok {
		writeJSON(w, http.StatusOK, snap)
	}
}

// ShowIndicator handles PUT /sessions/{id}/indicator.
func (s *Server) ShowIndicator(w http.ResponseWriter, r *http.Request) {
	var body ShowIndicatorRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	orientation, err := domain.ParseOrientation(body.Orientation)
	if err != nil {
		s.writeError(w, err)
		return
	}
	index := domain.NoIndex
	if body.InsertIndex != nil {
		index = *body.InsertIndex
	}

	snap, ok := s.update(w, r, func(c *runtime.Controller) error {
		c.Show(body.TargetContainerID, index, body.X, body.Y, orientation)
		return nil
	})
	if ok {
		writeJSON(w, http.StatusOK, snap)
	}
}

// HideIndicator handles DELETE /sessions/{id}/indicator.
func (s *Server) HideIndicator(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.update(w, r, func(c *runtime.Controller) error {
		c.Hide()
		return nil
	})
	if ok {
		writeJSON(w, http.StatusOK, snap)
	}
}

// CommitDrop handles POST /sessions/{id}/drop. The caller owns the page tree:
// it sends the current root and receives the updated one.
func (s *Server) CommitDrop(w http.ResponseWriter, r *http.Request) {
	var body DropRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if body.Root == nil {
		s.writeError(w, fmt.Errorf("%w: root is required", errBadRequest))
		return
	}

	var node *domain.ComponentNode
	snap, ok := s.update(w, r, func(c *runtime.Controller) error {
		var err error
		node, err = c.Drop(body.Root, body.Zones...)
		return err
	})
	if ok {
		writeJSON(w, http.StatusOK, DropResponse{Node: node, Root: body.Root, Snapshot: snap})
	}
}
