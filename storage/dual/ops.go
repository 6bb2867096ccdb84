package dual

import (
	"context"
	"errors"

	"github.com/poiesic/lingclip/core"
	"github.com/poiesic/lingclip/storage"
)

// List returns every record in a collection. The durable tier answers only
// when the process tag is durable and the call itself succeeds; in every
// other case the flat tier answers. A per-call durable failure is logged and
// does not change the backend tag.
func (s *Store) List(ctx context.Context, col core.Collection) []storage.Record {
	s.init(ctx)
	return s.list(ctx, col)
}

func (s *Store) list(ctx context.Context, col core.Collection) []storage.Record {
	if s.primary != nil && s.backend == core.BackendDurable {
		recs, err := s.primary.ListAll(ctx, col)
		if err == nil {
			return recs
		}
		s.logger.Warn("durable list failed, serving flat tier",
			"collection", col, "err", err)
	}
	return s.flat.ListCollection(col)
}

// GetByID retrieves one record by primary key with the same tier precedence
// as List. A durable read that completes and finds nothing is authoritative;
// only a failed durable call falls through to the flat tier, where a linear
// scan compares stringified primary keys.
func (s *Store) GetByID(ctx context.Context, col core.Collection, key string) (storage.Record, error) {
	s.init(ctx)
	return s.get(ctx, col, key)
}

func (s *Store) get(ctx context.Context, col core.Collection, key string) (storage.Record, error) {
	if s.primary != nil && s.backend == core.BackendDurable {
		rec, err := s.primary.Get(ctx, col, key)
		if err == nil {
			return rec, nil
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		s.logger.Warn("durable get failed, serving flat tier",
			"collection", col, "key", key, "err", err)
	}

	for _, rec := range s.flat.ListCollection(col) {
		k, err := storage.PrimaryKey(col, rec)
		if err != nil {
			continue
		}
		if k == key {
			return rec, nil
		}
	}
	return nil, storage.ErrNotFound
}

// Upsert inserts or replaces a record by its primary key. The durable write
// is attempted first whenever a connection exists; the flat tier is written
// additionally only when that attempt failed or the process tag is flat.
// When the durable write succeeds on a healthy process the flat tier is left
// untouched: it is a degrade-only mirror, not a replica.
func (s *Store) Upsert(ctx context.Context, col core.Collection, rec storage.Record) error {
	s.init(ctx)
	return s.upsert(ctx, col, rec)
}

func (s *Store) upsert(ctx context.Context, col core.Collection, rec storage.Record) error {
	key, err := storage.PrimaryKey(col, rec)
	if err != nil {
		return err
	}

	durableOK := false
	if s.primary != nil {
		if err := s.primary.Put(ctx, col, key, rec); err != nil {
			s.logger.Warn("durable write failed, mirroring to flat tier",
				"collection", col, "key", key, "err", err)
		} else {
			durableOK = true
		}
	}

	if !durableOK || s.backend == core.BackendFlat {
		recs := s.flat.ListCollection(col)
		replaced := false
		for i, existing := range recs {
			k, err := storage.PrimaryKey(col, existing)
			if err != nil {
				continue
			}
			if k == key {
				recs[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			recs = append(recs, rec)
		}
		s.flat.WriteCollection(col, recs)
	}
	return nil
}

// Remove deletes a record by primary key, with the same dual-path policy as
// Upsert. Removing a missing record is not an error.
func (s *Store) Remove(ctx context.Context, col core.Collection, key string) {
	s.init(ctx)
	s.remove(ctx, col, key)
}

func (s *Store) remove(ctx context.Context, col core.Collection, key string) {
	durableOK := false
	if s.primary != nil {
		if err := s.primary.Delete(ctx, col, key); err != nil {
			s.logger.Warn("durable delete failed, mirroring to flat tier",
				"collection", col, "key", key, "err", err)
		} else {
			durableOK = true
		}
	}

	if !durableOK || s.backend == core.BackendFlat {
		recs := s.flat.ListCollection(col)
		kept := recs[:0]
		for _, existing := range recs {
			k, err := storage.PrimaryKey(col, existing)
			if err == nil && k == key {
				continue
			}
			kept = append(kept, existing)
		}
		s.flat.WriteCollection(col, kept)
	}
}

// Clear empties a collection in both tiers unconditionally, regardless of
// the backend tag. Used by the full wipe.
func (s *Store) Clear(ctx context.Context, col core.Collection) {
	s.init(ctx)
	s.clear(ctx, col)
}

func (s *Store) clear(ctx context.Context, col core.Collection) {
	if s.primary != nil {
		if err := s.primary.Clear(ctx, col); err != nil {
			s.logger.Warn("durable clear failed", "collection", col, "err", err)
		}
	}
	s.flat.WriteCollection(col, nil)
}
