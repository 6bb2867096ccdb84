// Package flatfile implements the always-available flat storage tier: a
// plain string key to string value store backed by one file per key, with
// whole collections serialized as single JSON array blobs.
//
// The flat tier is the guaranteed-available fallback, so its read side never
// fails observably: missing files and malformed blobs read as empty. Writes
// are atomic so a crash mid-write never leaves a torn blob behind.
package flatfile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/poiesic/lingclip/core"
	"github.com/poiesic/lingclip/storage"
)

// keyPrefix namespaces collection blobs apart from dedicated feature keys and
// retired legacy keys living in the same store.
const keyPrefix = "lingclip:"

// Store is a file-per-key flat store rooted at a directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

var _ storage.SecondaryStore = (*Store)(nil)

// New creates a flat store rooted at dir, creating the directory if needed.
// This is the only point where the flat tier may fail; afterwards every
// operation degrades instead of erroring.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create flat store dir: %w", err)
	}
	return &Store{
		dir:    dir,
		logger: slog.Default(),
	}, nil
}

// CollectionKey returns the dedicated key a collection's blob is stored under.
func CollectionKey(col core.Collection) string {
	return keyPrefix + string(col)
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key))
}

// Get reads a raw value stored under a dedicated key.
func (s *Store) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set writes a raw value under a dedicated key. Errors are logged and
// swallowed.
func (s *Store) Set(key, value string) {
	if err := atomic.WriteFile(s.path(key), strings.NewReader(value)); err != nil {
		s.logger.Warn("flat store write failed", "key", key, "err", err)
	}
}

// Delete removes a dedicated key. Missing keys are ignored.
func (s *Store) Delete(key string) {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("flat store delete failed", "key", key, "err", err)
	}
}

// Keys lists every key currently present, collection blobs included.
func (s *Store) Keys() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, err := url.PathUnescape(entry.Name())
		if err != nil {
			// A foreign file in the data dir; skip it.
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// ListCollection returns the collection's records. A missing or unreadable
// blob reads as an empty collection.
func (s *Store) ListCollection(col core.Collection) []storage.Record {
	raw, ok := s.Get(CollectionKey(col))
	if !ok {
		return nil
	}
	var recs []storage.Record
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		s.logger.Debug("flat collection blob unreadable, treating as empty",
			"collection", col, "err", err)
		return nil
	}
	return recs
}

// WriteCollection replaces the collection's blob with the given records.
// Errors are logged and swallowed.
func (s *Store) WriteCollection(col core.Collection, recs []storage.Record) {
	if recs == nil {
		recs = []storage.Record{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		s.logger.Warn("flat collection marshal failed", "collection", col, "err", err)
		return
	}
	s.Set(CollectionKey(col), string(data))
}
