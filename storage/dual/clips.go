package dual

import (
	"context"
	"encoding/json"
	"time"

	"github.com/poiesic/lingclip/core"
	"github.com/poiesic/lingclip/storage"
)

// ClipRepository implements storage.ClipRepository over the dual store.
type ClipRepository struct {
	store *Store
}

var _ storage.ClipRepository = (*ClipRepository)(nil)

// NewClipRepository creates a new ClipRepository.
func NewClipRepository(store *Store) *ClipRepository {
	return &ClipRepository{store: store}
}

// GetClips returns all saved clips.
func (r *ClipRepository) GetClips(ctx context.Context) ([]*core.Clip, error) {
	recs := r.store.List(ctx, core.CollectionClips)
	clips := make([]*core.Clip, 0, len(recs))
	for _, rec := range recs {
		var clip core.Clip
		if err := json.Unmarshal(rec, &clip); err != nil {
			// Undecodable records are gated by the migration flag, not here.
			r.store.logger.Warn("skipping undecodable clip record", "err", err)
			continue
		}
		clips = append(clips, &clip)
	}
	return clips, nil
}

// GetClipByID retrieves a single clip.
func (r *ClipRepository) GetClipByID(ctx context.Context, id string) (*core.Clip, error) {
	rec, err := r.store.GetByID(ctx, core.CollectionClips, id)
	if err != nil {
		return nil, err
	}
	var clip core.Clip
	if err := json.Unmarshal(rec, &clip); err != nil {
		return nil, err
	}
	return &clip, nil
}

// SaveClip inserts or replaces a clip. A clip with no ID gets a
// deterministic content-based one, so saving the same span twice replaces
// rather than duplicates.
func (r *ClipRepository) SaveClip(ctx context.Context, clip *core.Clip) (*core.Clip, error) {
	if err := core.ValidateClip(clip); err != nil {
		return nil, err
	}

	if clip.Id == "" {
		clip.Id = core.IDFromContent(clip.ContentKey())
	}
	if clip.CreatedAt.IsZero() {
		clip.CreatedAt = time.Now().UTC()
	}

	rec, err := storage.MarshalRecord(clip)
	if err != nil {
		return nil, err
	}
	if err := r.store.Upsert(ctx, core.CollectionClips, rec); err != nil {
		return nil, err
	}
	return clip, nil
}

// DeleteClip removes a clip by ID.
func (r *ClipRepository) DeleteClip(ctx context.Context, id string) error {
	r.store.Remove(ctx, core.CollectionClips, id)
	return nil
}
