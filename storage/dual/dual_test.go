package dual

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/lingclip/core"
	"github.com/poiesic/lingclip/storage"
	badgerstore "github.com/poiesic/lingclip/storage/badger"
	"github.com/poiesic/lingclip/storage/flatfile"
	"github.com/stretchr/testify/require"
)

// newTestStore builds a dual store over a temp-dir flat tier and an
// in-memory badger durable tier.
func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	return newTestStoreWithFlat(t, newTestFlat(t), opts...)
}

func newTestFlat(t *testing.T) storage.SecondaryStore {
	t.Helper()
	flat, err := flatfile.New(t.TempDir())
	require.NoError(t, err)
	return flat
}

func newTestStoreWithFlat(t *testing.T, flat storage.SecondaryStore, opts ...Option) *Store {
	t.Helper()
	base := []Option{
		WithPrimaryOpener(func() (storage.PrimaryStore, error) {
			return badgerstore.NewMemoryBackend()
		}),
		WithScanPoolSize(2),
	}
	s, err := NewStore("", flat, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// newFlatOnlyStore simulates an environment where the durable tier cannot
// open at all.
func newFlatOnlyStore(t *testing.T, flat storage.SecondaryStore) *Store {
	t.Helper()
	return newTestStoreWithFlat(t, flat, WithPrimaryOpener(func() (storage.PrimaryStore, error) {
		return nil, errors.New("durable backend unsupported")
	}))
}

var errInjected = errors.New("injected durable failure")

// flakyPrimary wraps a real in-memory backend and fails selected operations
// on demand, to exercise the per-call degrade paths.
type flakyPrimary struct {
	*badgerstore.Backend
	failList   bool
	failGet    bool
	failPut    bool
	failDelete bool
}

func newFlakyPrimary(t *testing.T) *flakyPrimary {
	t.Helper()
	backend, err := badgerstore.NewMemoryBackend()
	require.NoError(t, err)
	return &flakyPrimary{Backend: backend}
}

func (f *flakyPrimary) ListAll(ctx context.Context, col core.Collection) ([]storage.Record, error) {
	if f.failList {
		return nil, errInjected
	}
	return f.Backend.ListAll(ctx, col)
}

func (f *flakyPrimary) Get(ctx context.Context, col core.Collection, key string) (storage.Record, error) {
	if f.failGet {
		return nil, errInjected
	}
	return f.Backend.Get(ctx, col, key)
}

func (f *flakyPrimary) Put(ctx context.Context, col core.Collection, key string, rec storage.Record) error {
	if f.failPut {
		return errInjected
	}
	return f.Backend.Put(ctx, col, key, rec)
}

func (f *flakyPrimary) Delete(ctx context.Context, col core.Collection, key string) error {
	if f.failDelete {
		return errInjected
	}
	return f.Backend.Delete(ctx, col, key)
}

func clipRecord(t *testing.T, id, title string) storage.Record {
	t.Helper()
	rec, err := storage.MarshalRecord(&core.Clip{Id: id, VideoId: "v1", Title: title, End: 5})
	require.NoError(t, err)
	return rec
}
