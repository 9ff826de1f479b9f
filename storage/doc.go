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

// Package storage provides the storage abstraction layer for quarry.
//
// This package defines repository interfaces that decouple storage
// implementation from orchestration logic, so different backends (BadgerDB,
// in-memory, etc.) can be used interchangeably.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - JobRepository: ingest job rows and their lifecycle timestamps
//   - DocumentRepository: document rows produced by ingest jobs
//   - NamespaceRepository / OrganizationRepository: ownership hierarchy and
//     aggregate counters
//   - StepLogRepository: durable workflow run and step records
//   - VectorIndex: tenant-partitioned vector similarity search
//
// # Counter invariant
//
// Namespace and Organization aggregate counters (TotalDocuments,
// TotalIngestJobs, TotalNamespaces) are mutated only inside the same
// transaction as the row insert/delete they account for. There is no
// detached increment operation anywhere in this interface, which keeps the
// counts crash-consistent with row existence.
//
// # Thread safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package storage
