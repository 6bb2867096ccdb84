package dual

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/poiesic/lingclip/core"
	"github.com/poiesic/lingclip/storage"
	badgerstore "github.com/poiesic/lingclip/storage/badger"
)

// PrimaryOpener opens the durable tier. It is called at most once per Store;
// an error permanently degrades the process to the flat tier.
type PrimaryOpener func() (storage.PrimaryStore, error)

// Store is the dual-backend storage engine. All process-lifetime state
// (backend tag, memoized durable connection, boot sequence) lives here
// rather than in package globals.
type Store struct {
	flat   storage.SecondaryStore
	opener PrimaryOpener
	logger *slog.Logger

	scanPoolSize int

	initOnce sync.Once
	primary  storage.PrimaryStore // nil when the durable open failed
	backend  core.BackendTag

	// scanRuns counts legacy scan executions; the boot sequence must run it
	// exactly once no matter how many callers race into initialization.
	scanRuns atomic.Int32
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPrimaryOpener replaces how the durable tier is opened. Used by tests
// to exercise the open-failure path and by callers embedding an in-memory
// backend.
func WithPrimaryOpener(opener PrimaryOpener) Option {
	return func(s *Store) error {
		s.opener = opener
		return nil
	}
}

// WithScanPoolSize sets the worker pool size for the legacy scanner.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithScanPoolSize(size int) Option {
	return func(s *Store) error {
		if size < 1 {
			size = 1
		}
		s.scanPoolSize = size
		return nil
	}
}

// NewStore creates a dual store over the given flat tier. The durable tier
// at durablePath is not opened until first use.
func NewStore(durablePath string, flat storage.SecondaryStore, opts ...Option) (*Store, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	s := &Store{
		flat:   flat,
		logger: slog.Default(),
		opener: func() (storage.PrimaryStore, error) {
			return badgerstore.OpenBackend(durablePath, false)
		},
		scanPoolSize: poolSize,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// init runs the boot sequence exactly once per process: open the durable
// tier, reconcile the stored schema version, run the legacy scan, and make
// sure the migration flag has a defined value. Concurrent callers block on
// the same sync.Once, so the sequence can never run twice.
func (s *Store) init(ctx context.Context) {
	s.initOnce.Do(func() {
		// 1. The open attempt happens at most once; its outcome fixes the
		// backend tag for the process lifetime.
		primary, err := s.opener()
		if err != nil {
			s.logger.Warn("durable store unavailable, running on flat tier", "err", err)
			s.primary = nil
			s.backend = core.BackendFlat
		} else {
			s.primary = primary
			s.backend = core.BackendDurable
		}

		// 2. Reconcile the schema version. A mismatch raises the migration
		// flag, but the stored version always converges to current.
		migration := false
		var stored int
		if found := s.metaGet(ctx, MetaKeySchemaVersion, &stored); found {
			if stored != core.CurrentSchemaVersion {
				s.logger.Info("stored schema version differs",
					"stored", stored, "current", core.CurrentSchemaVersion)
				migration = true
			}
		}
		s.metaSet(ctx, MetaKeySchemaVersion, core.CurrentSchemaVersion)

		// 3. The legacy scan can only add the flag, never clear it.
		if s.hasLegacyData(ctx) {
			s.logger.Info("legacy data detected, flagging migration")
			migration = true
		}

		// 4. The flag is sticky: write true when raised, write false only
		// when no value was ever stored.
		if migration {
			s.metaSet(ctx, MetaKeyMigrationRequired, true)
		} else {
			var existing bool
			if found := s.metaGet(ctx, MetaKeyMigrationRequired, &existing); !found {
				s.metaSet(ctx, MetaKeyMigrationRequired, false)
			}
		}

		s.logger.Debug("storage initialized", "backend", s.backend)
	})
}

// Backend returns the process-wide backend tag. It is fixed by the first
// operation and never recomputed.
func (s *Store) Backend(ctx context.Context) core.BackendTag {
	s.init(ctx)
	return s.backend
}

// Status derives a snapshot of the persistence layer's health from the meta
// collection and the live backend tag.
func (s *Store) Status(ctx context.Context) core.StorageStatus {
	s.init(ctx)

	status := core.StorageStatus{
		Backend:       s.backend,
		SchemaVersion: core.CurrentSchemaVersion,
	}
	s.metaGet(ctx, MetaKeyMigrationRequired, &status.MigrationRequired)
	var stored int
	if s.metaGet(ctx, MetaKeySchemaVersion, &stored) {
		status.SchemaVersion = stored
	}
	return status
}

// Flat exposes the flat tier for peripheral features that cache small values
// under their own dedicated keys, outside any collection.
func (s *Store) Flat() storage.SecondaryStore {
	return s.flat
}

// ClearAll wipes every collection in both tiers, removes the retired legacy
// keys, and resets the reserved meta records to their fresh-install values.
// This is the only operation that may clear the sticky migration flag.
func (s *Store) ClearAll(ctx context.Context) {
	s.init(ctx)

	for _, col := range core.Collections() {
		s.clear(ctx, col)
	}
	for _, key := range legacyFlatKeys {
		s.flat.Delete(key)
	}

	s.metaSet(ctx, MetaKeySchemaVersion, core.CurrentSchemaVersion)
	s.metaSet(ctx, MetaKeyMigrationRequired, false)
}

// Close closes the durable tier if it was opened.
func (s *Store) Close() error {
	if s.primary != nil {
		return s.primary.Close()
	}
	return nil
}
