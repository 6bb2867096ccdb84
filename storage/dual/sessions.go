package dual

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/lingclip/core"
	"github.com/poiesic/lingclip/storage"
)

// SessionRepository implements storage.SessionRepository over the dual store.
type SessionRepository struct {
	store *Store
}

var _ storage.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// GetSessionLogs returns all logs, ordered by date ascending.
func (r *SessionRepository) GetSessionLogs(ctx context.Context) ([]*core.SessionLog, error) {
	recs := r.store.List(ctx, core.CollectionSessionLogs)
	logs := make([]*core.SessionLog, 0, len(recs))
	for _, rec := range recs {
		var log core.SessionLog
		if err := json.Unmarshal(rec, &log); err != nil {
			r.store.logger.Warn("skipping undecodable session log", "err", err)
			continue
		}
		logs = append(logs, &log)
	}
	slices.SortFunc(logs, func(a, b *core.SessionLog) int {
		return strings.Compare(a.Date, b.Date)
	})
	return logs, nil
}

// SaveSessionLog appends activity for a day. An existing same-date log
// absorbs the new one (numbers summed, completed steps merged) so one
// calendar day never holds two records.
func (r *SessionRepository) SaveSessionLog(ctx context.Context, log *core.SessionLog) (*core.SessionLog, error) {
	if err := core.ValidateSessionLog(log); err != nil {
		return nil, err
	}

	merged := log
	rec, err := r.store.GetByID(ctx, core.CollectionSessionLogs, log.Date)
	if err == nil {
		var existing core.SessionLog
		if err := json.Unmarshal(rec, &existing); err == nil {
			existing.Merge(log)
			merged = &existing
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	out, err := storage.MarshalRecord(merged)
	if err != nil {
		return nil, err
	}
	if err := r.store.Upsert(ctx, core.CollectionSessionLogs, out); err != nil {
		return nil, err
	}
	return merged, nil
}

// CurrentStreak counts consecutive calendar days with a log, walking
// backward from today. Today without a log does not break a streak that
// ends yesterday.
func (r *SessionRepository) CurrentStreak(ctx context.Context, now time.Time) (int, error) {
	logs, err := r.GetSessionLogs(ctx)
	if err != nil {
		return 0, err
	}

	days := make(map[string]bool, len(logs))
	for _, log := range logs {
		days[log.Date] = true
	}

	day := now
	if !days[day.Format(core.DateLayout)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for days[day.Format(core.DateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}
