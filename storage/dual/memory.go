package dual

import (
	"context"
	"encoding/json"
	"time"

	"github.com/poiesic/lingclip/core"
	"github.com/poiesic/lingclip/storage"
)

// MemoryRepository implements storage.MemoryRepository over the dual store.
type MemoryRepository struct {
	store *Store
}

var _ storage.MemoryRepository = (*MemoryRepository)(nil)

// NewMemoryRepository creates a new MemoryRepository.
func NewMemoryRepository(store *Store) *MemoryRepository {
	return &MemoryRepository{store: store}
}

// GetMemoryItems returns all memory items.
func (r *MemoryRepository) GetMemoryItems(ctx context.Context) ([]*core.MemoryItem, error) {
	recs := r.store.List(ctx, core.CollectionMemoryItems)
	items := make([]*core.MemoryItem, 0, len(recs))
	for _, rec := range recs {
		var item core.MemoryItem
		if err := json.Unmarshal(rec, &item); err != nil {
			r.store.logger.Warn("skipping undecodable memory item", "err", err)
			continue
		}
		items = append(items, &item)
	}
	return items, nil
}

// GetMemoryItemByID retrieves a single memory item.
func (r *MemoryRepository) GetMemoryItemByID(ctx context.Context, id string) (*core.MemoryItem, error) {
	rec, err := r.store.GetByID(ctx, core.CollectionMemoryItems, id)
	if err != nil {
		return nil, err
	}
	var item core.MemoryItem
	if err := json.Unmarshal(rec, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetMemoryByClipID returns every memory item referencing the given clip,
// filtered in memory.
func (r *MemoryRepository) GetMemoryByClipID(ctx context.Context, clipID string) ([]*core.MemoryItem, error) {
	items, err := r.GetMemoryItems(ctx)
	if err != nil {
		return nil, err
	}
	matched := items[:0]
	for _, item := range items {
		if item.ClipId == clipID {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// SaveMemoryItem inserts or replaces a memory item, assigning a random ID
// and CreatedAt when absent.
func (r *MemoryRepository) SaveMemoryItem(ctx context.Context, item *core.MemoryItem) (*core.MemoryItem, error) {
	if err := core.ValidateMemoryItem(item); err != nil {
		return nil, err
	}

	if item.Id == "" {
		item.Id = core.NewID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	rec, err := storage.MarshalRecord(item)
	if err != nil {
		return nil, err
	}
	if err := r.store.Upsert(ctx, core.CollectionMemoryItems, rec); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMemoryItem removes a memory item by ID.
func (r *MemoryRepository) DeleteMemoryItem(ctx context.Context, id string) error {
	r.store.Remove(ctx, core.CollectionMemoryItems, id)
	return nil
}
