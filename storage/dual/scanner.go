package dual

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/lingclip/core"
	"github.com/poiesic/lingclip/storage"
)

// legacyFlatKeys are the flat-store keys a retired version of the app wrote
// its data under. Non-empty data under any of them means the user has data
// the current record shapes cannot represent.
var legacyFlatKeys = []string{
	"legacyClips",
	"legacyPhrases",
	"legacyProgress",
}

// legacyFieldNames belonged only to the retired record shape. Finding one at
// any depth inside a current-model record means that record was written
// before the shape change.
var legacyFieldNames = map[string]bool{
	"sentences": true,
	"srsLevel":  true,
	"wordBank":  true,
}

// deepScanCollections are the current-model collections whose records the
// deep field scan walks.
var deepScanCollections = []core.Collection{
	core.CollectionClips,
	core.CollectionMemoryItems,
}

// hasLegacyData runs both legacy checks; either one suffices. It runs fully
// on every boot and is O(total record size), acceptable at the single-user
// data volumes this system targets.
func (s *Store) hasLegacyData(ctx context.Context) bool {
	s.scanRuns.Add(1)

	if s.hasLegacyKeys() {
		return true
	}
	return s.hasLegacyFields(ctx)
}

// hasLegacyKeys checks the fixed list of retired flat-store keys. A
// malformed value under one of them counts as legacy data: corruption in a
// retired key must surface as "migration required", never be silently
// skipped.
func (s *Store) hasLegacyKeys() bool {
	for _, key := range legacyFlatKeys {
		raw, ok := s.flat.Get(key)
		if !ok {
			continue
		}
		if legacyPayloadPresent(raw) {
			s.logger.Debug("legacy key holds data", "key", key)
			return true
		}
	}
	return false
}

// legacyPayloadPresent reports whether a retired key's value holds actual
// data. Unparseable values fail open to "present".
func legacyPayloadPresent(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return true
	}
	switch val := v.(type) {
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	case string:
		return val != ""
	case nil:
		return false
	default:
		return true
	}
}

// hasLegacyFields deep-scans the flat-tier records of the fixed collection
// subset, plus the durable tier's copies when a connection exists. The
// per-collection scans run on a worker pool; any single match flags the
// whole scan.
func (s *Store) hasLegacyFields(ctx context.Context) bool {
	pool, err := ants.NewPool(s.scanPoolSize)
	if err != nil {
		s.logger.Warn("scan pool unavailable, scanning inline", "err", err)
		for _, col := range deepScanCollections {
			if s.scanCollection(ctx, col) {
				return true
			}
		}
		return false
	}
	defer pool.Release()

	var found atomic.Bool
	var wg sync.WaitGroup
	for _, col := range deepScanCollections {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if s.scanCollection(ctx, col) {
				found.Store(true)
			}
		}
		if err := pool.Submit(task); err != nil {
			// Pool rejected the task; scan inline instead.
			task()
		}
	}
	wg.Wait()

	return found.Load()
}

// scanCollection walks every record of one collection looking for retired
// field names. Flat and durable result sets are merged.
func (s *Store) scanCollection(ctx context.Context, col core.Collection) bool {
	recs := s.flat.ListCollection(col)
	if s.primary != nil {
		durable, err := s.primary.ListAll(ctx, col)
		if err != nil {
			s.logger.Warn("durable scan read failed, flat records only",
				"collection", col, "err", err)
		} else {
			recs = append(recs, durable...)
		}
	}

	for _, rec := range recs {
		if recordHasLegacyFields(rec) {
			s.logger.Debug("record carries retired fields", "collection", col)
			return true
		}
	}
	return false
}

func recordHasLegacyFields(rec storage.Record) bool {
	var v any
	if err := json.Unmarshal(rec, &v); err != nil {
		// Undecodable current-model records are handled by the flat tier's
		// empty-read degrade, not by the scanner.
		return false
	}
	return containsField(v, func(name string) bool {
		return legacyFieldNames[name]
	})
}

// containsField recursively walks a decoded JSON tree, objects and arrays to
// any depth, applying the predicate to every object field name.
func containsField(v any, suspicious func(name string) bool) bool {
	switch node := v.(type) {
	case map[string]any:
		for name, child := range node {
			if suspicious(name) {
				return true
			}
			if containsField(child, suspicious) {
				return true
			}
		}
	case []any:
		for _, child := range node {
			if containsField(child, suspicious) {
				return true
			}
		}
	}
	return false
}
