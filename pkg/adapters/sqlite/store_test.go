package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/dropzone/pkg/adapters/sqlite"
	"github.com/aretw0/dropzone/pkg/domain"
	"github.com/aretw0/dropzone/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.SnapshotStore = (*sqlite.Store)(nil)

func openStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, openStore(t, filepath.Join(t.TempDir(), "sessions.db")))
}

func TestSQLiteStore_OverwriteAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	store, err := sqlite.Open(path)
	require.NoError(t, err)

	first := domain.NewSnapshot("s1")
	require.NoError(t, store.Save(ctx, "s1", first))

	second := domain.NewSnapshot("s1")
	second.Indicator = domain.DropIndicator{Visible: true, TargetContainerID: "root", InsertIndex: 2, Orientation: domain.Vertical}
	require.NoError(t, store.Save(ctx, "s1", second))
	require.NoError(t, store.Close())

	// Reopening runs the migrations again without error.
	reopened := openStore(t, path)
	loaded, err := reopened.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Indicator.InsertIndex)
	assert.Equal(t, "root", loaded.Indicator.TargetContainerID)

	ids, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)
}

func TestSQLiteStore_LoadMissing(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "sessions.db"))
	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSQLiteStore_PathWithURIDelimiters(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "odd dir")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "sessions?mode=ro#frag%41.db")
	ctx := context.Background()

	store := openStore(t, path)
	require.NoError(t, store.Save(ctx, "s1", domain.NewSnapshot("s1")))

	// The whole name is the file: nothing was read as a DSN parameter or fragment.
	_, err := os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "sessions"))
	assert.True(t, os.IsNotExist(err))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", loaded.SessionID)
}
