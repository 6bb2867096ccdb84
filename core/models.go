package core

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs, so re-saving the
// same clip never creates a duplicate.
func IDFromContent(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

// NewID generates a random ID for records with no natural content identity.
func NewID() string {
	return uuid.NewString()
}

// BackendTag identifies which storage tier serves reads for the process.
// It is decided once at startup and never recomputed per operation.
type BackendTag string

const (
	// BackendDurable means the transactional badger store opened successfully.
	BackendDurable BackendTag = "durable"
	// BackendFlat means the process runs on the flat file store only.
	BackendFlat BackendTag = "flat"
)

// TranscriptLine is one line of a clip's transcript excerpt.
type TranscriptLine struct {
	At   float64 `json:"at"` // Offset in seconds from the start of the video
	Text string  `json:"text"`
}

// Clip is a saved span of a video together with its transcript excerpt.
type Clip struct {
	Id        string           `json:"id"`
	VideoId   string           `json:"videoId"`
	Title     string           `json:"title,omitempty"`
	Start     float64          `json:"start"` // Seconds
	End       float64          `json:"end"`   // Seconds
	Lines     []TranscriptLine `json:"lines,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ContentKey returns the string a clip's deterministic ID is derived from.
func (c *Clip) ContentKey() string {
	return fmt.Sprintf("%s:%d:%d", c.VideoId, int64(c.Start*1000), int64(c.End*1000))
}

// MemoryItem is a word or phrase the user chose to remember, usually taken
// from a clip's transcript.
type MemoryItem struct {
	Id          string    `json:"id"`
	ClipId      string    `json:"clipId,omitempty"`
	Text        string    `json:"text"`
	Reading     string    `json:"reading,omitempty"`
	Translation string    `json:"translation,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SrsCard is the stored state of one spaced-repetition card. The interval and
// ease values are computed by the scheduler elsewhere; this layer only
// persists its output.
type SrsCard struct {
	Id           string     `json:"id"`
	MemoryId     string     `json:"memoryId"`
	DueAt        *time.Time `json:"dueAt,omitempty"`   // Precise due timestamp
	DueDate      string     `json:"dueDate,omitempty"` // Coarse fallback, "2006-01-02"
	IntervalDays float64    `json:"intervalDays,omitempty"`
	Ease         float64    `json:"ease,omitempty"`
	Reps         int        `json:"reps,omitempty"`
	Lapses       int        `json:"lapses,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// DateLayout is the calendar-date key format used by session logs and coarse
// card due dates.
const DateLayout = "2006-01-02"

// DueTime resolves when the card becomes due. The precise timestamp wins when
// present; otherwise the coarse date is interpreted as local midnight. Cards
// with neither return ok=false.
func (c *SrsCard) DueTime(loc *time.Location) (time.Time, bool) {
	if c.DueAt != nil {
		return *c.DueAt, true
	}
	if c.DueDate == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, c.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SessionLog aggregates one calendar day of study activity. It is keyed by
// Date; same-day saves merge into the existing record rather than duplicate.
type SessionLog struct {
	Date         string          `json:"date"` // "2006-01-02", the primary key
	ClipsAdded   int             `json:"clipsAdded,omitempty"`
	ItemsAdded   int             `json:"itemsAdded,omitempty"`
	CardsStudied int             `json:"cardsStudied,omitempty"`
	StudySeconds int             `json:"studySeconds,omitempty"`
	Steps        map[string]bool `json:"steps,omitempty"` // Completed routine steps
}

// Merge folds another same-date log into this one: numeric fields are summed
// and completed steps are shallow-merged.
func (l *SessionLog) Merge(other *SessionLog) {
	l.ClipsAdded += other.ClipsAdded
	l.ItemsAdded += other.ItemsAdded
	l.CardsStudied += other.CardsStudied
	l.StudySeconds += other.StudySeconds
	if len(other.Steps) > 0 {
		if l.Steps == nil {
			l.Steps = make(map[string]bool, len(other.Steps))
		}
		for step, done := range other.Steps {
			l.Steps[step] = done
		}
	}
}

// MetaRecord is one entry of the reserved meta collection: a named,
// JSON-typed flag or setting. Key is the primary key.
type MetaRecord struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// StorageStatus is a read-only snapshot of the persistence layer's health,
// derived from the meta collection and the live backend tag. It is never
// stored as a whole.
type StorageStatus struct {
	Backend           BackendTag `json:"backend"`
	MigrationRequired bool       `json:"migrationRequired"`
	SchemaVersion     int        `json:"schemaVersion"`
}

// CurrentSchemaVersion is the record-shape version this build writes.
// Stored data reporting a different version raises the sticky migration flag.
const CurrentSchemaVersion = 3
