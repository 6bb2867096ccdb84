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


// Package storage provides the storage abstraction layer for lingclip.
//
// This package defines the contracts that decouple the persistence engine
// from its two backing tiers and from the feature code above it:
//
//   - PrimaryStore: the durable, transactional tier (BadgerDB). Every
//     operation may fail per call; failures are handled by the dual-store
//     coordinator, never by callers.
//   - SecondaryStore: the always-available flat tier (whole-collection JSON
//     blobs in plain files). Its operations are defined to never fail
//     observably; a missing or corrupt blob reads as an empty collection.
//   - Entity repositories (ClipRepository, MemoryRepository, SrsRepository,
//     SessionRepository, MetaStore): the typed API consumed by UI and
//     feature code.
//
// # Fallback contract
//
// Reads are served from the primary tier only when the process-wide backend
// tag is durable and the individual call succeeds; in every other case the
// flat tier answers. Writes go to the primary tier first and are mirrored
// into the flat tier only when the primary attempt failed or the process is
// degraded; the flat tier is a degrade-only mirror, not a replica. The
// coordinator in the dual package makes this decision explicitly per call;
// no tier error ever reaches a repository caller.
//
// # Records
//
// Records cross this boundary as opaque JSON (the Record type). A record's
// identity is the stringified value of its collection's declared key field;
// keys are never regenerated on update.
//
// # Thread Safety
//
// All implementations must be safe for concurrent use. Initialization is
// coordinated so that the boot sequence (durable open, schema version
// reconciliation, legacy scan) runs exactly once per process regardless of
// how many callers race into it.
package storage
