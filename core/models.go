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

package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// JobStatus tracks an ingest job through its lifecycle.
type JobStatus int

const (
	// JobStatusQueued is the initial state of every ingest job.
	JobStatusQueued JobStatus = iota + 1
	// JobStatusPreProcessing means the job has been picked up and documents are being materialized.
	JobStatusPreProcessing
	// JobStatusProcessing means all documents exist and per-document work has been dispatched.
	JobStatusProcessing
	// JobStatusCompleted means every document finished processing.
	JobStatusCompleted
	// JobStatusFailed means the job failed; Error holds the reason.
	JobStatusFailed
	// JobStatusQueuedForResync means the job was re-queued for a fresh ingestion run.
	JobStatusQueuedForResync
	// JobStatusQueuedForDelete means deletion was requested but the cascade has not started.
	JobStatusQueuedForDelete
	// JobStatusDeleting means the deletion cascade is running.
	JobStatusDeleting
)

// String returns the wire name of the status.
func (s JobStatus) String() string {
	switch s {
	case JobStatusQueued:
		return "QUEUED"
	case JobStatusPreProcessing:
		return "PRE_PROCESSING"
	case JobStatusProcessing:
		return "PROCESSING"
	case JobStatusCompleted:
		return "COMPLETED"
	case JobStatusFailed:
		return "FAILED"
	case JobStatusQueuedForResync:
		return "QUEUED_FOR_RESYNC"
	case JobStatusQueuedForDelete:
		return "QUEUED_FOR_DELETE"
	case JobStatusDeleting:
		return "DELETING"
	}
	return "UNKNOWN"
}

// PendingDelete reports whether the job is on the deletion side-path.
// A job in this state can never re-enter a processing state.
func (s JobStatus) PendingDelete() bool {
	return s == JobStatusQueuedForDelete || s == JobStatusDeleting
}

// Active reports whether the job is currently being driven by an ingestion run.
func (s JobStatus) Active() bool {
	return s == JobStatusPreProcessing || s == JobStatusProcessing
}

// DocumentStatus tracks a document through its lifecycle.
type DocumentStatus int

const (
	// DocumentStatusQueued is the initial state of every document.
	DocumentStatusQueued DocumentStatus = iota + 1
	// DocumentStatusProcessing means the per-document processor is running.
	DocumentStatusProcessing
	// DocumentStatusCompleted means processing finished and counters are populated.
	DocumentStatusCompleted
	// DocumentStatusFailed means per-document processing failed.
	DocumentStatusFailed
	// DocumentStatusDeleting means a deletion cascade claimed the document.
	DocumentStatusDeleting
)

// String returns the wire name of the status.
func (s DocumentStatus) String() string {
	switch s {
	case DocumentStatusQueued:
		return "QUEUED"
	case DocumentStatusProcessing:
		return "PROCESSING"
	case DocumentStatusCompleted:
		return "COMPLETED"
	case DocumentStatusFailed:
		return "FAILED"
	case DocumentStatusDeleting:
		return "DELETING"
	}
	return "UNKNOWN"
}

// PayloadType discriminates the ingest job payload variants.
type PayloadType int

const (
	// PayloadTypeText ingests a single raw text snippet.
	PayloadTypeText PayloadType = iota + 1
	// PayloadTypeFile ingests a single file addressed by URL.
	PayloadTypeFile
	// PayloadTypeManagedFile ingests a single managed file addressed by storage key.
	PayloadTypeManagedFile
	// PayloadTypeManagedFiles ingests a batch of managed files.
	PayloadTypeManagedFiles
	// PayloadTypeURLs ingests a batch of URLs.
	PayloadTypeURLs
)

// String returns the wire name of the payload type.
func (t PayloadType) String() string {
	switch t {
	case PayloadTypeText:
		return "TEXT"
	case PayloadTypeFile:
		return "FILE"
	case PayloadTypeManagedFile:
		return "MANAGED_FILE"
	case PayloadTypeManagedFiles:
		return "MANAGED_FILES"
	case PayloadTypeURLs:
		return "URLS"
	}
	return "UNKNOWN"
}

// FileRef identifies one managed file in a bulk payload.
type FileRef struct {
	Key  string
	Name string // optional display name
}

// Payload is the tagged ingest request variant. Type selects which of the
// remaining fields are meaningful; Validate enforces the variant shape.
type Payload struct {
	Type    PayloadType
	Name    string    // optional display name for single-item variants
	Text    string    // TEXT
	FileURL string    // FILE
	Key     string    // MANAGED_FILE
	Files   []FileRef // MANAGED_FILES
	URLs    []string  // URLS
}

// SourceType discriminates a document's source variant.
type SourceType int

const (
	// SourceTypeText mirrors a TEXT payload.
	SourceTypeText SourceType = iota + 1
	// SourceTypeFile mirrors a FILE payload item or a URL item.
	SourceTypeFile
	// SourceTypeManagedFile mirrors a MANAGED_FILE payload item.
	SourceTypeManagedFile
)

// String returns the wire name of the source type.
func (t SourceType) String() string {
	switch t {
	case SourceTypeText:
		return "TEXT"
	case SourceTypeFile:
		return "FILE"
	case SourceTypeManagedFile:
		return "MANAGED_FILE"
	}
	return "UNKNOWN"
}

// DocumentSource is the tagged per-document source variant, mirroring one
// payload item.
type DocumentSource struct {
	Type    SourceType
	Text    string // TEXT
	FileURL string // FILE
	Key     string // MANAGED_FILE
}

// IngestJob represents one ingestion request against a namespace.
type IngestJob struct {
	Id              ID
	NamespaceId     ID
	TenantId        string // empty when the namespace is not multi-tenant
	Payload         Payload
	Status          JobStatus
	Error           string // set only on FAILED
	QueuedAt        time.Time
	PreProcessingAt time.Time
	ProcessingAt    time.Time
	CompletedAt     time.Time
	FailedAt        time.Time
	InsertedAt      time.Time
	UpdatedAt       time.Time
	WorkflowRunsIds []string // ordered, append-only until deletion
}

// Document represents one ingested unit produced from a job.
type Document struct {
	Id              ID
	IngestJobId     ID
	NamespaceId     ID
	TenantId        string
	Name            string // optional
	Source          DocumentSource
	Status          DocumentStatus
	TotalChunks     int
	TotalTokens     int
	TotalCharacters int
	TotalPages      int
	InsertedAt      time.Time
	UpdatedAt       time.Time
	WorkflowRunsIds []string
}

// DocumentTotals aggregates the sizes measured while processing a document.
type DocumentTotals struct {
	Chunks     int
	Tokens     int
	Characters int
	Pages      int
}

// Namespace owns ingest jobs and documents. The aggregate counters equal the
// live count of non-deleted children; they are mutated only inside the same
// transaction as the row insert/delete they account for.
type Namespace struct {
	Id              ID
	OrganizationId  ID
	Name            string
	EmbeddingModel  string // embedding model identifier for this namespace's index
	TotalDocuments  int
	TotalIngestJobs int
	InsertedAt      time.Time
	UpdatedAt       time.Time
}

// Organization owns namespaces and mirrors the aggregate counters one level up.
// Plan limits are consulted by the admission check before job creation.
type Organization struct {
	Id              ID
	Name            string
	Plan            string
	PagesLimit      int
	TotalPages      int
	TotalDocuments  int
	TotalNamespaces int
	TotalIngestJobs int
	InsertedAt      time.Time
	UpdatedAt       time.Time
}

// VectorEntry is one embedded chunk stored in a vector-index partition.
// Metadata carries the serialized content node under the "_node_content" key.
type VectorEntry struct {
	Id       string
	Vector   []float32
	Metadata map[string]string
}

// StepStatus marks the outcome of a durable workflow step.
type StepStatus int

const (
	// StepStatusCompleted means the step's side effect and result are committed.
	StepStatusCompleted StepStatus = iota + 1
	// StepStatusFailed means the step failed after exhausting retries.
	StepStatusFailed
)

// StepRecord is one entry in a workflow run's durable step log. Result holds
// the step's serialized output; replaying a completed step returns Result
// instead of re-executing the step.
type StepRecord struct {
	RunId     string
	Seq       int
	Name      string
	Status    StepStatus
	Result    []byte
	UpdatedAt time.Time
}

// RunStatus tracks a workflow run.
type RunStatus int

const (
	// RunStatusRunning means the run is executing or eligible to resume.
	RunStatusRunning RunStatus = iota + 1
	// RunStatusCompleted means the handler returned successfully.
	RunStatusCompleted
	// RunStatusFailed means the handler returned an error; the failure handler ran.
	RunStatusFailed
	// RunStatusCanceled means the run was canceled before completion.
	RunStatusCanceled
)

// RunRecord is the persisted state of one workflow run.
type RunRecord struct {
	Id         string
	Workflow   string
	Payload    []byte
	Status     RunStatus
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}
