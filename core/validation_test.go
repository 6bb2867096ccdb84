package core

import (
	"errors"
	"testing"
)

func TestValidateClip(t *testing.T) {
	tests := []struct {
		name    string
		clip    *Clip
		wantErr error
	}{
		{
			name:    "valid clip",
			clip:    &Clip{VideoId: "v1", Start: 0, End: 5},
			wantErr: nil,
		},
		{
			name:    "valid clip without transcript",
			clip:    &Clip{VideoId: "v1", Start: 2, End: 2},
			wantErr: nil,
		},
		{
			name:    "nil clip",
			clip:    nil,
			wantErr: ErrInvalidClip,
		},
		{
			name:    "missing video id",
			clip:    &Clip{Start: 0, End: 5},
			wantErr: ErrEmptyVideoId,
		},
		{
			name:    "end before start",
			clip:    &Clip{VideoId: "v1", Start: 5, End: 4},
			wantErr: ErrInvalidSpan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClip(tt.clip)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateMemoryItem(t *testing.T) {
	tests := []struct {
		name    string
		item    *MemoryItem
		wantErr error
	}{
		{
			name:    "valid item",
			item:    &MemoryItem{Text: "hablar"},
			wantErr: nil,
		},
		{
			name:    "valid item without clip",
			item:    &MemoryItem{Text: "hablar", Translation: "to speak"},
			wantErr: nil,
		},
		{
			name:    "nil item",
			item:    nil,
			wantErr: ErrInvalidMemoryItem,
		},
		{
			name:    "empty text",
			item:    &MemoryItem{ClipId: "c1"},
			wantErr: ErrEmptyText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMemoryItem(tt.item)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateSrsCard(t *testing.T) {
	tests := []struct {
		name    string
		card    *SrsCard
		wantErr error
	}{
		{
			name:    "valid unscheduled card",
			card:    &SrsCard{MemoryId: "m1"},
			wantErr: nil,
		},
		{
			name:    "valid card with coarse date",
			card:    &SrsCard{MemoryId: "m1", DueDate: "2025-06-01"},
			wantErr: nil,
		},
		{
			name:    "nil card",
			card:    nil,
			wantErr: ErrInvalidSrsCard,
		},
		{
			name:    "missing memory id",
			card:    &SrsCard{DueDate: "2025-06-01"},
			wantErr: ErrEmptyMemoryId,
		},
		{
			name:    "malformed due date",
			card:    &SrsCard{MemoryId: "m1", DueDate: "06/01/2025"},
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSrsCard(tt.card)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateSessionLog(t *testing.T) {
	if err := ValidateSessionLog(&SessionLog{Date: "2025-06-01"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := ValidateSessionLog(nil); !errors.Is(err, ErrInvalidSessionLog) {
		t.Fatalf("expected ErrInvalidSessionLog, got %v", err)
	}
	if err := ValidateSessionLog(&SessionLog{Date: "June 1"}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
