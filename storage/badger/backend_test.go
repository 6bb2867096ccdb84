package badger

import (
	"context"
	"testing"

	"github.com/poiesic/lingclip/core"
	"github.com/poiesic/lingclip/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestBackendClose(t *testing.T) {
	backend, err := NewMemoryBackend()
	require.NoError(t, err)

	assert.False(t, backend.IsClosed())

	err = backend.Close()
	require.NoError(t, err)

	assert.True(t, backend.IsClosed())
}

func TestPutGetRoundTrip(t *testing.T) {
	backend, err := NewMemoryBackend()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	rec := storage.Record(`{"id":"c1","videoId":"v1","start":0,"end":5}`)

	require.NoError(t, backend.Put(ctx, core.CollectionClips, "c1", rec))

	got, err := backend.Get(ctx, core.CollectionClips, "c1")
	require.NoError(t, err)
	assert.JSONEq(t, string(rec), string(got))
}

func TestGetMissing(t *testing.T) {
	backend, err := NewMemoryBackend()
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Get(context.Background(), core.CollectionClips, "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPutReplacesByKey(t *testing.T) {
	backend, err := NewMemoryBackend()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, backend.Put(ctx, core.CollectionClips, "c1",
		storage.Record(`{"id":"c1","title":"old"}`)))
	require.NoError(t, backend.Put(ctx, core.CollectionClips, "c1",
		storage.Record(`{"id":"c1","title":"new"}`)))

	recs, err := backend.ListAll(ctx, core.CollectionClips)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Contains(t, string(recs[0]), "new")
}

func TestListAllScopedToCollection(t *testing.T) {
	backend, err := NewMemoryBackend()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, backend.Put(ctx, core.CollectionClips, "c1",
		storage.Record(`{"id":"c1"}`)))
	require.NoError(t, backend.Put(ctx, core.CollectionMemoryItems, "m1",
		storage.Record(`{"id":"m1"}`)))

	clips, err := backend.ListAll(ctx, core.CollectionClips)
	require.NoError(t, err)
	assert.Len(t, clips, 1)

	items, err := backend.ListAll(ctx, core.CollectionMemoryItems)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// System keys (collection markers, structural version) must never leak
	// into a collection listing.
	empty, err := backend.ListAll(ctx, core.CollectionSrsCards)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDelete(t *testing.T) {
	backend, err := NewMemoryBackend()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, backend.Put(ctx, core.CollectionClips, "c1",
		storage.Record(`{"id":"c1"}`)))

	require.NoError(t, backend.Delete(ctx, core.CollectionClips, "c1"))

	_, err = backend.Get(ctx, core.CollectionClips, "c1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting a missing key is not an error.
	assert.NoError(t, backend.Delete(ctx, core.CollectionClips, "c1"))
}

func TestClear(t *testing.T) {
	backend, err := NewMemoryBackend()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, backend.Put(ctx, core.CollectionClips, id,
			storage.Record(`{"id":"`+id+`"}`)))
	}
	require.NoError(t, backend.Put(ctx, core.CollectionMemoryItems, "m1",
		storage.Record(`{"id":"m1"}`)))

	require.NoError(t, backend.Clear(ctx, core.CollectionClips))

	clips, err := backend.ListAll(ctx, core.CollectionClips)
	require.NoError(t, err)
	assert.Empty(t, clips)

	// Other collections untouched.
	items, err := backend.ListAll(ctx, core.CollectionMemoryItems)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestStructuralSetupSurvivesReopen(t *testing.T) {
	tmpDir := t.TempDir()

	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, backend.Put(ctx, core.CollectionClips, "c1",
		storage.Record(`{"id":"c1"}`)))
	require.NoError(t, backend.Close())

	// Reopening must not disturb existing records.
	backend, err = OpenBackend(tmpDir, false)
	require.NoError(t, err)
	defer backend.Close()

	recs, err := backend.ListAll(ctx, core.CollectionClips)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
