package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/dropzone/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	t.Helper()
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := domain.NewSnapshot(sessionID)
		snap.Session = domain.DragSession{
			ActiveItem: &domain.ComponentNode{
				ID:       "component_1_abc",
				Kind:     "buttons",
				Label:    "Buttons",
				Markup:   `<button class="btn">Click me</button>`,
				StyleMap: map[string]string{"cursor": "pointer"},
			},
			FromPalette: true,
		}
		snap.Indicator = domain.DropIndicator{
			Visible:           true,
			Position:          domain.Point{X: 100, Y: 200},
			TargetContainerID: "row-1",
			InsertIndex:       2,
			Orientation:       domain.Vertical,
		}

		err := store.Save(ctx, sessionID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.SessionID)
		assert.Equal(t, snap.Indicator, loaded.Indicator)
		require.NotNil(t, loaded.Session.ActiveItem)
		assert.Equal(t, "component_1_abc", loaded.Session.ActiveItem.ID)
		assert.Equal(t, "pointer", loaded.Session.ActiveItem.StyleMap["cursor"])
		assert.True(t, loaded.Session.FromPalette)
	})

	t.Run("Load is isolated from the caller", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Session.ActiveItem.Label = "mutated"

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "Buttons", again.Session.ActiveItem.Label)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewSnapshot(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Delete of a missing session is a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, domain.NewSnapshot(id1)))
		require.NoError(t, store.Save(ctx, id2, domain.NewSnapshot(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
