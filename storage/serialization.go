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


package storage

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/poiesic/lingclip/core"
)

// Record is an opaque JSON-serialized record. Both tiers store records in
// this form so the legacy scanner can walk shapes it does not know about.
type Record = json.RawMessage

// MarshalRecord serializes a typed record to its stored JSON form.
func MarshalRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return Record(data), nil
}

// PrimaryKey extracts the stringified primary key of a record within its
// collection. Returns ErrInvalidRecord when the key field is missing, null,
// or empty, and core.ErrUnknownCollection for undeclared collections.
func PrimaryKey(col core.Collection, rec Record) (string, error) {
	if !col.Valid() {
		return "", fmt.Errorf("%w: %q", core.ErrUnknownCollection, col)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rec, &fields); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	raw, ok := fields[col.KeyField()]
	if !ok {
		return "", fmt.Errorf("%w: missing %q field", ErrInvalidRecord, col.KeyField())
	}

	key, err := StringifyKey(raw)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", fmt.Errorf("%w: empty %q field", ErrInvalidRecord, col.KeyField())
	}
	return key, nil
}

// StringifyKey converts a raw JSON key value to its canonical string form.
// Strings are used verbatim; numbers are formatted without a trailing
// fraction so 7 and 7.0 compare equal.
func StringifyKey(raw json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	switch key := v.(type) {
	case string:
		return key, nil
	case float64:
		return strconv.FormatFloat(key, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(key), nil
	case nil:
		return "", fmt.Errorf("%w: null primary key", ErrInvalidRecord)
	default:
		return "", fmt.Errorf("%w: unsupported primary key type %T", ErrInvalidRecord, v)
	}
}
