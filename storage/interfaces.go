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

package storage

import (
	"context"
	"time"

	"github.com/quarrylabs/quarry/core"
)

// JobRepository provides operations for managing ingest jobs.
// Implementations must be thread-safe and keep the namespace/organization
// TotalIngestJobs counters in the same transaction as the row they account for.
type JobRepository interface {
	// CreateJob inserts a new ingest job and increments the owning
	// namespace's and organization's TotalIngestJobs in the same transaction.
	// For jobs with ID=0, generates a new ID from sequence and sets the
	// initial QUEUED status and queuedAt timestamp.
	CreateJob(ctx context.Context, job *core.IngestJob) (*core.IngestJob, error)

	// GetJob retrieves a single ingest job by ID.
	// Returns ErrNotFound if the job doesn't exist.
	GetJob(ctx context.Context, id core.ID) (*core.IngestJob, error)

	// ListJobs retrieves all jobs under a namespace, newest first.
	// When statuses is non-empty only jobs in one of those statuses are returned.
	ListJobs(ctx context.Context, namespaceID core.ID, statuses ...core.JobStatus) ([]*core.IngestJob, error)

	// SetJobStatus sets the job's status and stamps the transition timestamp
	// matching the new status. Returns ErrNotFound if the job doesn't exist.
	SetJobStatus(ctx context.Context, id core.ID, status core.JobStatus, at time.Time) error

	// SetJobFailed marks the job FAILED with a human-readable error message
	// and failedAt timestamp. Returns ErrNotFound if the job doesn't exist.
	SetJobFailed(ctx context.Context, id core.ID, message string, at time.Time) error

	// AppendJobWorkflowRuns appends run ids to the job's workflowRunsIds list.
	// Returns ErrNotFound if the job doesn't exist.
	AppendJobWorkflowRuns(ctx context.Context, id core.ID, runIDs ...string) error

	// DeleteJob removes the job row and decrements the owning namespace's and
	// organization's TotalIngestJobs, all in one transaction.
	// Returns ErrNotFound if the job doesn't exist.
	DeleteJob(ctx context.Context, id core.ID) error

	// Close closes the repository and releases resources.
	Close() error
}

// DocumentRepository provides operations for managing documents.
// TotalDocuments counters move in the same transaction as document
// inserts/deletes, never as a detached increment.
type DocumentRepository interface {
	// CreateDocuments inserts documents in a single transaction and increments
	// the owning namespace's and organization's TotalDocuments by the number
	// of rows actually inserted. Documents that already exist (same ID) are
	// left untouched and not re-counted, so a replayed batch is idempotent.
	// Returns the documents actually inserted.
	CreateDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// ListDocumentIDs returns the IDs of all documents under an ingest job.
	ListDocumentIDs(ctx context.Context, jobID core.ID) ([]core.ID, error)

	// SetDocumentCompleted marks the document COMPLETED, records its
	// processing totals, and accrues the page delta onto the owning
	// organization's TotalPages in the same transaction.
	// Returns ErrNotFound if the document doesn't exist.
	SetDocumentCompleted(ctx context.Context, id core.ID, totals core.DocumentTotals) error

	// SetDocumentsStatus sets the status of all given documents in one
	// transaction. Missing documents are skipped, not an error: the deletion
	// cascade races per-document deletes.
	SetDocumentsStatus(ctx context.Context, status core.DocumentStatus, ids ...core.ID) error

	// AppendDocumentWorkflowRuns appends one run id per document, all inside
	// one transaction. Missing documents are skipped.
	AppendDocumentWorkflowRuns(ctx context.Context, runs map[core.ID]string) error

	// DeleteDocument removes the document row, decrements the owning
	// namespace's and organization's TotalDocuments, and releases the
	// document's pages from the organization's TotalPages, all in the same
	// transaction. Returns ErrNotFound if the document doesn't exist.
	DeleteDocument(ctx context.Context, id core.ID) error

	// Close closes the repository and releases resources.
	Close() error
}

// NamespaceRepository provides operations for managing namespaces.
type NamespaceRepository interface {
	// CreateNamespace inserts a namespace and increments the owning
	// organization's TotalNamespaces in the same transaction.
	CreateNamespace(ctx context.Context, ns *core.Namespace) (*core.Namespace, error)

	// GetNamespace retrieves a namespace by ID.
	// Returns ErrNotFound if the namespace doesn't exist.
	GetNamespace(ctx context.Context, id core.ID) (*core.Namespace, error)

	// DeleteNamespaceIfEmpty deletes the namespace and decrements the owning
	// organization's TotalNamespaces iff no ingest jobs remain under it.
	// The emptiness check and the delete run in one transaction. Returns true
	// if the namespace was deleted, false if jobs remain.
	// Returns ErrNotFound if the namespace doesn't exist.
	DeleteNamespaceIfEmpty(ctx context.Context, id core.ID) (bool, error)

	// Close closes the repository and releases resources.
	Close() error
}

// OrganizationRepository provides operations for managing organizations.
type OrganizationRepository interface {
	// CreateOrganization inserts a new organization.
	CreateOrganization(ctx context.Context, org *core.Organization) (*core.Organization, error)

	// GetOrganization retrieves an organization by ID.
	// Returns ErrNotFound if the organization doesn't exist.
	GetOrganization(ctx context.Context, id core.ID) (*core.Organization, error)

	// DeleteOrganizationIfEmpty deletes the organization iff no namespaces
	// remain under it, with the check and delete in one transaction. Returns
	// true if deleted. Returns ErrAlreadyDeleted if the organization is gone,
	// which duplicate cascades treat as success.
	DeleteOrganizationIfEmpty(ctx context.Context, id core.ID) (bool, error)

	// Close closes the repository and releases resources.
	Close() error
}

// StepLogRepository persists durable workflow run state: one RunRecord per
// run plus an append-only step log. Saving a step record commits the step's
// result atomically with its completion marker.
type StepLogRepository interface {
	// SaveStep persists a step record for a run.
	SaveStep(ctx context.Context, step *core.StepRecord) error

	// LoadStep retrieves the step record for (runID, name).
	// Returns nil, nil if no record exists.
	LoadStep(ctx context.Context, runID, name string) (*core.StepRecord, error)

	// SaveRun persists a workflow run record.
	SaveRun(ctx context.Context, run *core.RunRecord) error

	// LoadRun retrieves a run record. Returns nil, nil if no record exists.
	LoadRun(ctx context.Context, runID string) (*core.RunRecord, error)

	// ListRuns returns every run record currently in the given status.
	// Used at startup to find runs interrupted by a previous process.
	ListRuns(ctx context.Context, status core.RunStatus) ([]*core.RunRecord, error)

	// DeleteRun removes a run record and all of its step records.
	DeleteRun(ctx context.Context, runID string) error
}

// VectorMatch is one nearest-neighbor result from a vector index query.
type VectorMatch struct {
	Id       string
	Score    float32
	Metadata map[string]string
}

// VectorQuery describes a single vector index lookup.
type VectorQuery struct {
	Partition       string
	Vector          []float32
	TopK            int
	Filter          map[string]string
	IncludeMetadata bool
}

// VectorIndex is the per-namespace vector index adapter. Entries live in
// tenant-scoped partitions so isolation is enforced at the partition level,
// not just by a filter predicate.
type VectorIndex interface {
	// Query returns up to TopK nearest matches in the partition, highest
	// score first. Filter entries must all match the entry metadata.
	Query(ctx context.Context, q VectorQuery) ([]VectorMatch, error)

	// Upsert inserts or replaces entries in a partition.
	Upsert(ctx context.Context, partition string, entries ...*core.VectorEntry) error

	// Delete removes entries by id from a partition. Missing ids are ignored.
	Delete(ctx context.Context, partition string, ids ...string) error

	// DeletePartition removes an entire partition.
	DeletePartition(ctx context.Context, partition string) error
}
