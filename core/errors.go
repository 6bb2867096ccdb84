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

import "errors"

// Domain validation errors
var (
	// ErrInvalidClip indicates a Clip failed validation.
	ErrInvalidClip = errors.New("invalid clip")

	// ErrInvalidMemoryItem indicates a MemoryItem failed validation.
	ErrInvalidMemoryItem = errors.New("invalid memory item")

	// ErrInvalidSrsCard indicates an SrsCard failed validation.
	ErrInvalidSrsCard = errors.New("invalid srs card")

	// ErrInvalidSessionLog indicates a SessionLog failed validation.
	ErrInvalidSessionLog = errors.New("invalid session log")

	// ErrEmptyVideoId indicates the clip's VideoId field is empty.
	ErrEmptyVideoId = errors.New("video id cannot be empty")

	// ErrInvalidSpan indicates a clip span ends before it starts.
	ErrInvalidSpan = errors.New("clip end cannot precede start")

	// ErrEmptyText indicates the memory item's Text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrEmptyMemoryId indicates the card's MemoryId field is empty.
	ErrEmptyMemoryId = errors.New("memory id cannot be empty")

	// ErrInvalidDate indicates a date field is not a valid calendar date.
	ErrInvalidDate = errors.New("date must be formatted as 2006-01-02")

	// ErrUnknownCollection indicates a collection name outside the fixed set.
	ErrUnknownCollection = errors.New("unknown collection")
)
