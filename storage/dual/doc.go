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


// Package dual implements the dual-backend storage engine: generic
// collection operations that prefer the durable badger tier and degrade,
// per call, to the always-available flat tier.
//
// A Store carries all process-lifetime state explicitly: the memoized
// durable connection (or nil after a failed open), the backend tag fixed at
// first use, and the once-only boot sequence that reconciles the schema
// version and runs the legacy-schema scan. Entity repositories in this
// package are thin typed wrappers over the generic operations.
//
// Two failure classes are deliberately kept apart. A failed durable open
// degrades the whole process to the flat tier for its lifetime. A failed
// durable call degrades only that call; the tag is not recomputed. Neither
// is ever surfaced to callers as an error.
package dual
