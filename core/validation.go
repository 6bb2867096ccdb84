// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"time"
)

// ValidateClip validates a Clip according to domain rules.
//
// Validation rules:
//   - VideoId must not be empty
//   - End must not precede Start
//
// NOT validated:
//   - Id (assigned by the repository when empty)
//   - Lines (a clip may be saved before its transcript is parsed)
func ValidateClip(clip *Clip) error {
	if clip == nil {
		return fmt.Errorf("%w: clip is nil", ErrInvalidClip)
	}

	if clip.VideoId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidClip, ErrEmptyVideoId)
	}

	if clip.End < clip.Start {
		return fmt.Errorf("%w: %w", ErrInvalidClip, ErrInvalidSpan)
	}

	return nil
}

// ValidateMemoryItem validates a MemoryItem according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//
// NOT validated:
//   - Id (assigned by the repository when empty)
//   - ClipId (items may exist without a source clip)
func ValidateMemoryItem(item *MemoryItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidMemoryItem)
	}

	if item.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMemoryItem, ErrEmptyText)
	}

	return nil
}

// ValidateSrsCard validates an SrsCard according to domain rules.
//
// Validation rules:
//   - MemoryId must not be empty
//   - DueDate, when set, must parse as a calendar date
//
// NOT validated:
//   - Interval/ease values (opaque scheduler output)
//   - Missing due info (a freshly created card may not be scheduled yet)
func ValidateSrsCard(card *SrsCard) error {
	if card == nil {
		return fmt.Errorf("%w: card is nil", ErrInvalidSrsCard)
	}

	if card.MemoryId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSrsCard, ErrEmptyMemoryId)
	}

	if card.DueDate != "" && !IsValidDate(card.DueDate) {
		return fmt.Errorf("%w: %w", ErrInvalidSrsCard, ErrInvalidDate)
	}

	return nil
}

// ValidateSessionLog validates a SessionLog according to domain rules.
//
// Validation rules:
//   - Date must parse as a calendar date (it is the primary key)
func ValidateSessionLog(log *SessionLog) error {
	if log == nil {
		return fmt.Errorf("%w: log is nil", ErrInvalidSessionLog)
	}

	if !IsValidDate(log.Date) {
		return fmt.Errorf("%w: %w", ErrInvalidSessionLog, ErrInvalidDate)
	}

	return nil
}

// IsValidDate reports whether s is a well-formed calendar date.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
