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

// Package ingest implements the ingestion and deletion workflows for ingest
// jobs and their documents.
//
// An ingestion run materializes a job's payload into document rows in
// batches, fans out one processing run per document, and records every run
// id on the rows it belongs to. Document processing fetches the source text,
// chunks it, embeds the chunks, and upserts them into the namespace's vector
// partition.
//
// A deletion cascade runs on the slow admission lane: it cancels the job's
// outstanding runs, marks documents DELETING in batches, fans out
// per-document deletion runs, and lets the run that removes the last
// document delete the job row and optionally the emptied namespace and
// organization. Every destructive check-then-act pair executes inside a
// single storage transaction, so concurrent cascades converge instead of
// double-deleting.
package ingest
