package dual

import (
	"context"
	"encoding/json"

	"github.com/poiesic/lingclip/core"
	"github.com/poiesic/lingclip/storage"
)

// Reserved meta keys. Everything else in the meta collection is
// feature-defined and unvalidated.
const (
	// MetaKeySchemaVersion holds the record-shape version the stored data
	// was last written with.
	MetaKeySchemaVersion = "schemaVersion"

	// MetaKeyMigrationRequired is the sticky flag raised when stored data
	// predates the current record shapes.
	MetaKeyMigrationRequired = "migrationRequired"
)

var _ storage.MetaStore = (*Store)(nil)

// GetMetaValue reads the value stored under key into out. Returns false,
// leaving out untouched, when the key is absent or unreadable.
func (s *Store) GetMetaValue(ctx context.Context, key string, out any) (bool, error) {
	s.init(ctx)
	return s.metaGet(ctx, key, out), nil
}

// SetMetaValue stores value under key, replacing any previous value.
func (s *Store) SetMetaValue(ctx context.Context, key string, value any) error {
	s.init(ctx)
	return s.metaSet(ctx, key, value)
}

// metaGet is the pre-init variant used by the boot sequence itself; it must
// not recurse into init.
func (s *Store) metaGet(ctx context.Context, key string, out any) bool {
	rec, err := s.get(ctx, core.CollectionMeta, key)
	if err != nil {
		return false
	}

	var meta core.MetaRecord
	if err := json.Unmarshal(rec, &meta); err != nil {
		s.logger.Warn("meta record unreadable", "key", key, "err", err)
		return false
	}
	if len(meta.Value) == 0 {
		return false
	}
	if err := json.Unmarshal(meta.Value, out); err != nil {
		s.logger.Warn("meta value undecodable", "key", key, "err", err)
		return false
	}
	return true
}

// metaSet is the pre-init variant used by the boot sequence itself.
func (s *Store) metaSet(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	rec, err := storage.MarshalRecord(core.MetaRecord{Key: key, Value: raw})
	if err != nil {
		return err
	}
	return s.upsert(ctx, core.CollectionMeta, rec)
}
