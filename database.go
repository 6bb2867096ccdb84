// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package lingclip

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/poiesic/lingclip/core"
	"github.com/poiesic/lingclip/storage"
	"github.com/poiesic/lingclip/storage/dual"
	"github.com/poiesic/lingclip/storage/flatfile"
)

// Database is the application's persistence entry point: a dual-backend
// store plus one typed repository per entity. Feature code never touches a
// tier directly.
type Database struct {
	store       *dual.Store
	clipRepo    storage.ClipRepository
	memoryRepo  storage.MemoryRepository
	srsRepo     storage.SrsRepository
	sessionRepo storage.SessionRepository
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	storeOpts []dual.Option
	logger    *slog.Logger
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
			o.storeOpts = append(o.storeOpts, dual.WithLogger(logger))
		}
	}
}

// WithScanPoolSize sets the legacy scanner's worker pool size.
func WithScanPoolSize(size int) DatabaseOption {
	return func(o *databaseOptions) {
		o.storeOpts = append(o.storeOpts, dual.WithScanPoolSize(size))
	}
}

// WithPrimaryOpener overrides how the durable tier is opened. Used by tests.
func WithPrimaryOpener(opener dual.PrimaryOpener) DatabaseOption {
	return func(o *databaseOptions) {
		o.storeOpts = append(o.storeOpts, dual.WithPrimaryOpener(opener))
	}
}

// NewDatabase creates the persistence layer rooted at dataDir. The flat tier
// lives under dataDir/flat and must be creatable; the durable tier under
// dataDir/badger is opened lazily on first use, and an open failure degrades
// the process to the flat tier instead of erroring.
func NewDatabase(dataDir string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	flat, err := flatfile.New(filepath.Join(dataDir, "flat"))
	if err != nil {
		return nil, err
	}

	store, err := dual.NewStore(filepath.Join(dataDir, "badger"), flat, options.storeOpts...)
	if err != nil {
		return nil, err
	}

	return &Database{
		store:       store,
		clipRepo:    dual.NewClipRepository(store),
		memoryRepo:  dual.NewMemoryRepository(store),
		srsRepo:     dual.NewSrsRepository(store),
		sessionRepo: dual.NewSessionRepository(store),
		logger:      options.logger,
	}, nil
}

func (db *Database) Close() error {
	if err := db.store.Close(); err != nil {
		db.logger.Error("error closing storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ClipRepository() storage.ClipRepository {
	return db.clipRepo
}

func (db *Database) MemoryRepository() storage.MemoryRepository {
	return db.memoryRepo
}

func (db *Database) SrsRepository() storage.SrsRepository {
	return db.srsRepo
}

func (db *Database) SessionRepository() storage.SessionRepository {
	return db.sessionRepo
}

// StorageStatus reports which tier serves the process, the stored schema
// version, and whether the sticky migration flag is raised. Features showing
// user data must present a blocking notice while the flag is set.
func (db *Database) StorageStatus(ctx context.Context) core.StorageStatus {
	return db.store.Status(ctx)
}

// GetSetting reads a feature-defined setting from the meta collection.
func (db *Database) GetSetting(ctx context.Context, key string, out any) (bool, error) {
	return db.store.GetMetaValue(ctx, key, out)
}

// SetSetting stores a feature-defined setting in the meta collection.
func (db *Database) SetSetting(ctx context.Context, key string, value any) error {
	return db.store.SetMetaValue(ctx, key, value)
}

// ClearAllData wipes every collection in both tiers, removes retired legacy
// keys, and resets the schema version and migration flag to fresh-install
// values. This is the only way to clear the migration flag.
func (db *Database) ClearAllData(ctx context.Context) {
	db.store.ClearAll(ctx)
}
