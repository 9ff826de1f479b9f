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

package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/storage"
)

// JobRepository implements storage.JobRepository for BadgerDB.
type JobRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.JobRepository = (*JobRepository)(nil)

// NewJobRepository creates a new JobRepository.
func NewJobRepository(backend *Backend) (*JobRepository, error) {
	idSeq, err := backend.Sequence(jobIDSeq)
	if err != nil {
		return nil, err
	}

	return &JobRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *JobRepository) Close() error {
	return r.idSeq.Release()
}

// CreateJob inserts a new ingest job. The owning namespace's and
// organization's TotalIngestJobs counters move in the same transaction as
// the job row.
func (r *JobRepository) CreateJob(ctx context.Context, job *core.IngestJob) (*core.IngestJob, error) {
	if err := core.ValidateIngestJob(job); err != nil {
		return nil, err
	}

	err := r.backend.WithWriteTx(func(tx *badger.Txn) error {
		ns, err := readNamespace(tx, job.NamespaceId)
		if err != nil {
			return err
		}
		if ns == nil {
			return storage.ErrNotFound
		}

		if job.Id == 0 {
			nextID, err := nextSequenceID(r.idSeq)
			if err != nil {
				return err
			}
			job.Id = core.ID(nextID)
		}

		now := time.Now().UTC()
		job.Status = core.JobStatusQueued
		job.QueuedAt = now
		job.InsertedAt = now
		job.UpdatedAt = now

		if err := tx.Set(makeJobKey(job.Id), storage.MarshalIngestJob(job)); err != nil {
			return err
		}
		if err := tx.Set(makeJobNamespaceKey(job.NamespaceId, job.Id), storage.MarshalID(job.Id)); err != nil {
			return err
		}

		return adjustCounters(tx, job.NamespaceId, 0, 1)
	})

	return job, err
}

// GetJob retrieves a single ingest job by ID.
func (r *JobRepository) GetJob(ctx context.Context, id core.ID) (*core.IngestJob, error) {
	var result *core.IngestJob
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readJob(tx, id)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListJobs retrieves all jobs under a namespace, newest first.
func (r *JobRepository) ListJobs(ctx context.Context, namespaceID core.ID, statuses ...core.JobStatus) ([]*core.IngestJob, error) {
	var jobs []*core.IngestJob

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialJobNamespaceKey(namespaceID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var jobID core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				jobID, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			job, err := readJob(tx, jobID)
			if err != nil {
				return err
			}
			if job == nil {
				continue
			}
			if len(statuses) > 0 && !slices.Contains(statuses, job.Status) {
				continue
			}
			jobs = append(jobs, job)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(jobs, func(a, b *core.IngestJob) int {
		return b.QueuedAt.Compare(a.QueuedAt)
	})
	return jobs, nil
}

// SetJobStatus sets the job's status and stamps the matching transition timestamp.
func (r *JobRepository) SetJobStatus(ctx context.Context, id core.ID, status core.JobStatus, at time.Time) error {
	return r.backend.WithWriteTx(func(tx *badger.Txn) error {
		job, err := readJob(tx, id)
		if err != nil {
			return err
		}
		if job == nil {
			return storage.ErrNotFound
		}

		job.Status = status
		switch status {
		case core.JobStatusQueued, core.JobStatusQueuedForResync:
			job.QueuedAt = at
		case core.JobStatusPreProcessing:
			job.PreProcessingAt = at
		case core.JobStatusProcessing:
			job.ProcessingAt = at
		case core.JobStatusCompleted:
			job.CompletedAt = at
		case core.JobStatusFailed:
			job.FailedAt = at
		case core.JobStatusQueuedForDelete, core.JobStatusDeleting:
			// delete side-path transitions carry no dedicated timestamp
		}

		return writeJob(tx, job)
	})
}

// SetJobFailed marks the job FAILED with an error message and failedAt timestamp.
func (r *JobRepository) SetJobFailed(ctx context.Context, id core.ID, message string, at time.Time) error {
	return r.backend.WithWriteTx(func(tx *badger.Txn) error {
		job, err := readJob(tx, id)
		if err != nil {
			return err
		}
		if job == nil {
			return storage.ErrNotFound
		}

		job.Status = core.JobStatusFailed
		job.Error = message
		job.FailedAt = at

		return writeJob(tx, job)
	})
}

// AppendJobWorkflowRuns appends run ids to the job's workflowRunsIds list.
func (r *JobRepository) AppendJobWorkflowRuns(ctx context.Context, id core.ID, runIDs ...string) error {
	if len(runIDs) == 0 {
		return nil
	}

	return r.backend.WithWriteTx(func(tx *badger.Txn) error {
		job, err := readJob(tx, id)
		if err != nil {
			return err
		}
		if job == nil {
			return storage.ErrNotFound
		}

		job.WorkflowRunsIds = append(job.WorkflowRunsIds, runIDs...)
		return writeJob(tx, job)
	})
}

// DeleteJob removes the job row and decrements the owning namespace's and
// organization's TotalIngestJobs, all in one transaction.
func (r *JobRepository) DeleteJob(ctx context.Context, id core.ID) error {
	return r.backend.WithWriteTx(func(tx *badger.Txn) error {
		job, err := readJob(tx, id)
		if err != nil {
			return err
		}
		if job == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(makeJobKey(id)); err != nil {
			return err
		}
		if err := tx.Delete(makeJobNamespaceKey(job.NamespaceId, id)); err != nil {
			return err
		}

		return adjustCounters(tx, job.NamespaceId, 0, -1)
	})
}

// readJob reads a job row inside a transaction.
// Returns nil, nil if the row does not exist.
func readJob(tx *badger.Txn, id core.ID) (*core.IngestJob, error) {
	item, err := tx.Get(makeJobKey(id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}
	var job *core.IngestJob
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		job, unmarshalErr = storage.UnmarshalIngestJob(val)
		return unmarshalErr
	})
	return job, err
}

// writeJob writes a job row inside a transaction, stamping UpdatedAt.
func writeJob(tx *badger.Txn, job *core.IngestJob) error {
	job.UpdatedAt = time.Now().UTC()
	return tx.Set(makeJobKey(job.Id), storage.MarshalIngestJob(job))
}
