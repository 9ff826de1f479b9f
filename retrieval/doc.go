// Copyright 2025 Quarry Labs
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

// Package retrieval implements semantic search over ingested documents.
//
// A query embeds the query text, searches the namespace's tenant-scoped
// vector partition, decodes the stored content nodes, and optionally
// re-ranks the surviving matches with a relevance service. Vector similarity
// scores and re-rank scores live on different scales and are reported
// separately.
package retrieval
