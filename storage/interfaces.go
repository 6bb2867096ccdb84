package storage

import (
	"context"
	"time"

	"github.com/poiesic/lingclip/core"
)

// PrimaryStore is the durable, transactional tier. Every method may fail for
// an individual call; the dual-store coordinator converts such failures into
// a per-call fallback, so these errors never reach feature code.
type PrimaryStore interface {
	// ListAll returns every record in a collection.
	ListAll(ctx context.Context, col core.Collection) ([]Record, error)

	// Get retrieves one record by primary key.
	// Returns ErrNotFound if the record doesn't exist.
	Get(ctx context.Context, col core.Collection, key string) (Record, error)

	// Put inserts or replaces the record stored under key.
	Put(ctx context.Context, col core.Collection, key string, rec Record) error

	// Delete removes the record stored under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, col core.Collection, key string) error

	// Clear removes every record in a collection.
	Clear(ctx context.Context, col core.Collection) error

	// Close closes the tier and releases resources.
	Close() error
}

// SecondaryStore is the always-available flat tier. Collection reads and
// writes never fail observably: a missing or corrupt blob reads as an empty
// collection, and write errors are logged and swallowed.
type SecondaryStore interface {
	// ListCollection returns the collection's records, or an empty slice when
	// the blob is missing or unreadable.
	ListCollection(col core.Collection) []Record

	// WriteCollection replaces the collection's blob with the given records.
	WriteCollection(col core.Collection, recs []Record)

	// Get reads a raw value stored under a dedicated key, outside any
	// collection blob. ok is false when the key is absent.
	Get(key string) (value string, ok bool)

	// Set writes a raw value under a dedicated key.
	Set(key, value string)

	// Delete removes a dedicated key.
	Delete(key string)

	// Keys lists every key currently present, collection blobs included.
	Keys() []string
}

// MetaStore provides access to small persisted flags and settings. Arbitrary
// keys are permitted; no schema is enforced beyond JSON-serializability.
type MetaStore interface {
	// GetMetaValue reads the value stored under key into out. Returns false,
	// leaving out untouched, when the key is absent.
	GetMetaValue(ctx context.Context, key string, out any) (bool, error)

	// SetMetaValue stores value under key, replacing any previous value.
	SetMetaValue(ctx context.Context, key string, value any) error
}

// ClipRepository provides operations for managing saved clips.
type ClipRepository interface {
	// GetClips returns all saved clips.
	GetClips(ctx context.Context) ([]*core.Clip, error)

	// GetClipByID retrieves a single clip.
	// Returns ErrNotFound if the clip doesn't exist.
	GetClipByID(ctx context.Context, id string) (*core.Clip, error)

	// SaveClip inserts or replaces a clip. A clip with no ID is assigned a
	// deterministic content-based one; CreatedAt is set when zero.
	// Returns the clip with those fields populated.
	SaveClip(ctx context.Context, clip *core.Clip) (*core.Clip, error)

	// DeleteClip removes a clip by ID.
	DeleteClip(ctx context.Context, id string) error
}

// MemoryRepository provides operations for managing memory items.
type MemoryRepository interface {
	// GetMemoryItems returns all memory items.
	GetMemoryItems(ctx context.Context) ([]*core.MemoryItem, error)

	// GetMemoryItemByID retrieves a single memory item.
	// Returns ErrNotFound if the item doesn't exist.
	GetMemoryItemByID(ctx context.Context, id string) (*core.MemoryItem, error)

	// GetMemoryByClipID returns every memory item referencing the given clip.
	GetMemoryByClipID(ctx context.Context, clipID string) ([]*core.MemoryItem, error)

	// SaveMemoryItem inserts or replaces a memory item, assigning a random ID
	// and CreatedAt when absent. Returns the item with those populated.
	SaveMemoryItem(ctx context.Context, item *core.MemoryItem) (*core.MemoryItem, error)

	// DeleteMemoryItem removes a memory item by ID.
	DeleteMemoryItem(ctx context.Context, id string) error
}

// SrsRepository provides operations for managing spaced-repetition cards.
type SrsRepository interface {
	// GetSrsCards returns all cards.
	GetSrsCards(ctx context.Context) ([]*core.SrsCard, error)

	// GetSrsCardByMemoryID returns the card attached to a memory item.
	// Returns ErrNotFound if no card references the item.
	GetSrsCardByMemoryID(ctx context.Context, memoryID string) (*core.SrsCard, error)

	// GetDueCards returns cards due at or before now, ordered by due time
	// ascending. Cards with no due information are excluded.
	GetDueCards(ctx context.Context, now time.Time) ([]*core.SrsCard, error)

	// SaveSrsCard inserts or replaces a card, assigning a random ID and
	// CreatedAt when absent. Returns the card with those populated.
	SaveSrsCard(ctx context.Context, card *core.SrsCard) (*core.SrsCard, error)

	// DeleteSrsCard removes a card by ID.
	DeleteSrsCard(ctx context.Context, id string) error
}

// SessionRepository provides operations for managing per-day session logs.
type SessionRepository interface {
	// GetSessionLogs returns all logs, ordered by date ascending.
	GetSessionLogs(ctx context.Context) ([]*core.SessionLog, error)

	// SaveSessionLog appends activity for a day. When a log for the same date
	// exists, numeric fields are summed and completed steps shallow-merged
	// into it; otherwise the log is stored as given.
	SaveSessionLog(ctx context.Context, log *core.SessionLog) (*core.SessionLog, error)

	// CurrentStreak counts consecutive calendar days with a log, walking
	// backward from today. A missing log for today does not break a streak
	// that ends yesterday.
	CurrentStreak(ctx context.Context, now time.Time) (int, error)
}
