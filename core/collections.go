package core

// Collection names the fixed set of record collections the storage layer
// manages. The set is closed: repositories never invent collection names at
// runtime.
type Collection string

const (
	// CollectionClips holds saved video clips.
	CollectionClips Collection = "clips"
	// CollectionMemoryItems holds words and phrases the user is learning.
	CollectionMemoryItems Collection = "memoryItems"
	// CollectionSrsCards holds spaced-repetition card state.
	CollectionSrsCards Collection = "srsCards"
	// CollectionSessionLogs holds per-day study activity, keyed by date.
	CollectionSessionLogs Collection = "sessionLogs"
	// CollectionMeta holds process-wide flags and settings, keyed by name.
	CollectionMeta Collection = "meta"
)

// Collections returns every collection the layer manages, meta included.
func Collections() []Collection {
	return []Collection{
		CollectionClips,
		CollectionMemoryItems,
		CollectionSrsCards,
		CollectionSessionLogs,
		CollectionMeta,
	}
}

// KeyField returns the JSON field holding a record's primary key within the
// collection. The key value is always treated as a string.
func (c Collection) KeyField() string {
	switch c {
	case CollectionSessionLogs:
		return "date"
	case CollectionMeta:
		return "key"
	default:
		return "id"
	}
}

// Valid reports whether c is one of the declared collections.
func (c Collection) Valid() bool {
	switch c {
	case CollectionClips, CollectionMemoryItems, CollectionSrsCards,
		CollectionSessionLogs, CollectionMeta:
		return true
	}
	return false
}
