package dual

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"github.com/poiesic/lingclip/core"
	"github.com/poiesic/lingclip/storage"
)

// SrsRepository implements storage.SrsRepository over the dual store.
type SrsRepository struct {
	store *Store
}

var _ storage.SrsRepository = (*SrsRepository)(nil)

// NewSrsRepository creates a new SrsRepository.
func NewSrsRepository(store *Store) *SrsRepository {
	return &SrsRepository{store: store}
}

// GetSrsCards returns all cards.
func (r *SrsRepository) GetSrsCards(ctx context.Context) ([]*core.SrsCard, error) {
	recs := r.store.List(ctx, core.CollectionSrsCards)
	cards := make([]*core.SrsCard, 0, len(recs))
	for _, rec := range recs {
		var card core.SrsCard
		if err := json.Unmarshal(rec, &card); err != nil {
			r.store.logger.Warn("skipping undecodable srs card", "err", err)
			continue
		}
		cards = append(cards, &card)
	}
	return cards, nil
}

// GetSrsCardByMemoryID returns the card attached to a memory item.
func (r *SrsRepository) GetSrsCardByMemoryID(ctx context.Context, memoryID string) (*core.SrsCard, error) {
	cards, err := r.GetSrsCards(ctx)
	if err != nil {
		return nil, err
	}
	for _, card := range cards {
		if card.MemoryId == memoryID {
			return card, nil
		}
	}
	return nil, storage.ErrNotFound
}

// GetDueCards returns cards due at or before now, ordered by due time
// ascending. The precise DueAt timestamp wins; cards carrying only a coarse
// DueDate become due at local midnight of that date. Cards with neither are
// excluded.
func (r *SrsRepository) GetDueCards(ctx context.Context, now time.Time) ([]*core.SrsCard, error) {
	cards, err := r.GetSrsCards(ctx)
	if err != nil {
		return nil, err
	}

	type dueCard struct {
		card *core.SrsCard
		due  time.Time
	}
	var due []dueCard
	for _, card := range cards {
		at, ok := card.DueTime(now.Location())
		if !ok {
			continue
		}
		if at.After(now) {
			continue
		}
		due = append(due, dueCard{card: card, due: at})
	}

	slices.SortFunc(due, func(a, b dueCard) int {
		return a.due.Compare(b.due)
	})

	result := make([]*core.SrsCard, len(due))
	for i, d := range due {
		result[i] = d.card
	}
	return result, nil
}

// SaveSrsCard inserts or replaces a card, assigning a random ID and
// CreatedAt when absent.
func (r *SrsRepository) SaveSrsCard(ctx context.Context, card *core.SrsCard) (*core.SrsCard, error) {
	if err := core.ValidateSrsCard(card); err != nil {
		return nil, err
	}

	if card.Id == "" {
		card.Id = core.NewID()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().UTC()
	}

	rec, err := storage.MarshalRecord(card)
	if err != nil {
		return nil, err
	}
	if err := r.store.Upsert(ctx, core.CollectionSrsCards, rec); err != nil {
		return nil, err
	}
	return card, nil
}

// DeleteSrsCard removes a card by ID.
func (r *SrsRepository) DeleteSrsCard(ctx context.Context, id string) error {
	r.store.Remove(ctx, core.CollectionSrsCards, id)
	return nil
}
