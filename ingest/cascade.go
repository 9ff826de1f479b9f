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

package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/storage"
	"github.com/quarrylabs/quarry/workflow"
)

// DeleteOptions selects how far a job deletion cascades once the job's last
// document is gone.
type DeleteOptions struct {
	// DeleteNamespaceWhenDone deletes the owning namespace if the job was
	// its last one.
	DeleteNamespaceWhenDone bool

	// DeleteOrgWhenDone deletes the owning organization if the namespace
	// was its last one. Implies nothing unless the namespace is deleted.
	DeleteOrgWhenDone bool
}

// deleteJobPayload is the trigger payload for a job deletion cascade.
type deleteJobPayload struct {
	JobId                   core.ID `json:"jobId"`
	DeleteNamespaceWhenDone bool    `json:"deleteNamespaceWhenDone,omitempty"`
	DeleteOrgWhenDone       bool    `json:"deleteOrgWhenDone,omitempty"`
}

// deleteDocumentPayload is the trigger payload for one per-document deletion
// run. The cascade flags ride along so the run that removes the job's last
// document can finish the cascade.
type deleteDocumentPayload struct {
	DocumentId              core.ID `json:"documentId"`
	JobId                   core.ID `json:"jobId"`
	NamespaceId             core.ID `json:"namespaceId"`
	OrganizationId          core.ID `json:"organizationId"`
	TenantId                string  `json:"tenantId,omitempty"`
	DeleteJobWhenDone       bool    `json:"deleteJobWhenDone,omitempty"`
	DeleteNamespaceWhenDone bool    `json:"deleteNamespaceWhenDone,omitempty"`
	DeleteOrgWhenDone       bool    `json:"deleteOrgWhenDone,omitempty"`
}

// TriggerDelete starts a deletion cascade for the job and records the run id
// on the job row.
func (o *Orchestrator) TriggerDelete(ctx context.Context, jobID core.ID, opts DeleteOptions) (string, error) {
	payload, err := json.Marshal(deleteJobPayload{
		JobId:                   jobID,
		DeleteNamespaceWhenDone: opts.DeleteNamespaceWhenDone,
		DeleteOrgWhenDone:       opts.DeleteOrgWhenDone,
	})
	if err != nil {
		return "", err
	}

	runID, err := o.executor.Trigger(ctx, WorkflowDeleteJob, payload)
	if err != nil {
		return "", err
	}

	err = o.jobs.AppendJobWorkflowRuns(ctx, jobID, runID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return runID, err
	}
	return runID, nil
}

// handleDeleteJob drives one job deletion cascade. Jobs with documents fan
// out per-document deletion runs; the run that deletes the last document
// removes the job row. Jobs with no documents are removed inline.
func (o *Orchestrator) handleDeleteJob(ctx context.Context, run *workflow.Run, payload []byte) error {
	var req deleteJobPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	type config struct {
		Job            *core.IngestJob `json:"job"`
		OrganizationId core.ID         `json:"organizationId"`
	}
	cfg, err := workflow.Step(run, "get-config", func() (*config, error) {
		job, err := o.jobs.GetJob(ctx, req.JobId)
		if errors.Is(err, storage.ErrNotFound) {
			return &config{}, nil
		}
		if err != nil {
			return nil, err
		}

		ns, err := o.namespaces.GetNamespace(ctx, job.NamespaceId)
		if errors.Is(err, storage.ErrNotFound) {
			return &config{Job: job}, nil
		}
		if err != nil {
			return nil, err
		}
		return &config{Job: job, OrganizationId: ns.OrganizationId}, nil
	})
	if err != nil {
		return err
	}
	if cfg.Job == nil {
		// Already gone; a duplicate cascade is a no-op.
		o.logger.Info("ingest job gone, skipping delete cascade", "job", req.JobId)
		return nil
	}
	job := cfg.Job

	if err := workflow.StepDo(run, "update-status-deleting", func() error {
		err := o.jobs.SetJobStatus(ctx, job.Id, core.JobStatusDeleting, time.Now().UTC())
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}); err != nil {
		return err
	}

	if err := workflow.StepDo(run, "cancel-runs", func() error {
		others := make([]string, 0, len(job.WorkflowRunsIds))
		for _, id := range job.WorkflowRunsIds {
			if id != run.Id() {
				others = append(others, id)
			}
		}
		o.executor.Cancel(others...)
		return nil
	}); err != nil {
		return err
	}

	docIDs, err := workflow.Step(run, "get-documents", func() ([]core.ID, error) {
		return o.documents.ListDocumentIDs(ctx, job.Id)
	})
	if err != nil {
		return err
	}

	if len(docIDs) == 0 {
		return o.finishEmptyJobDelete(ctx, run, job, cfg.OrganizationId, req)
	}

	for i, batch := range chunkBy(docIDs, updateBatchSize) {
		batch := batch
		if err := workflow.StepDo(run, stepName("delete-documents", i), func() error {
			if err := o.documents.SetDocumentsStatus(ctx, core.DocumentStatusDeleting, batch...); err != nil {
				return err
			}

			payloads := make([][]byte, len(batch))
			for j, docID := range batch {
				payload, err := json.Marshal(deleteDocumentPayload{
					DocumentId:              docID,
					JobId:                   job.Id,
					NamespaceId:             job.NamespaceId,
					OrganizationId:          cfg.OrganizationId,
					TenantId:                job.TenantId,
					DeleteJobWhenDone:       true,
					DeleteNamespaceWhenDone: req.DeleteNamespaceWhenDone,
					DeleteOrgWhenDone:       req.DeleteOrgWhenDone,
				})
				if err != nil {
					return err
				}
				payloads[j] = payload
			}

			batchRuns, err := o.executor.TriggerBatch(ctx, WorkflowDeleteDocument, payloads)
			if err != nil {
				return err
			}
			byDoc := make(map[core.ID]string, len(batch))
			for j, docID := range batch {
				byDoc[docID] = batchRuns[j]
			}

			if err := o.documents.AppendDocumentWorkflowRuns(ctx, byDoc); err != nil {
				return err
			}
			err = o.jobs.AppendJobWorkflowRuns(ctx, job.Id, batchRuns...)
			if errors.Is(err, storage.ErrNotFound) {
				return nil
			}
			return err
		}); err != nil {
			return err
		}
	}

	o.logger.Info("delete cascade dispatched", "job", job.Id, "documents", len(docIDs))
	return nil
}

// finishEmptyJobDelete removes a job with no documents and walks the
// requested namespace and organization cleanup inline.
func (o *Orchestrator) finishEmptyJobDelete(ctx context.Context, run *workflow.Run, job *core.IngestJob, orgID core.ID, req deleteJobPayload) error {
	if err := workflow.StepDo(run, "delete-job", func() error {
		err := o.jobs.DeleteJob(ctx, job.Id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}); err != nil {
		return err
	}

	return o.cleanupOwners(ctx, run, job.NamespaceId, orgID, req.DeleteNamespaceWhenDone, req.DeleteOrgWhenDone)
}

// handleDeleteDocument removes one document's vectors and row. When the
// payload carries cascade flags and this run removed the job's last
// document, it also finishes the job, namespace, and organization cleanup.
func (o *Orchestrator) handleDeleteDocument(ctx context.Context, run *workflow.Run, payload []byte) error {
	var req deleteDocumentPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	doc, err := workflow.Step(run, "get-document", func() (*core.Document, error) {
		doc, err := o.documents.GetDocument(ctx, req.DocumentId)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return doc, err
	})
	if err != nil {
		return err
	}

	if doc != nil {
		if err := workflow.StepDo(run, "delete-vectors", func() error {
			if doc.TotalChunks == 0 {
				return nil
			}
			ids := make([]string, doc.TotalChunks)
			for i := range ids {
				ids[i] = chunkVectorID(doc.Id, i)
			}
			partition := core.Partition(req.NamespaceId, req.TenantId)
			return o.vectors.Delete(ctx, partition, ids...)
		}); err != nil {
			return err
		}

		if err := workflow.StepDo(run, "delete-document", func() error {
			err := o.documents.DeleteDocument(ctx, doc.Id)
			if errors.Is(err, storage.ErrNotFound) {
				return nil
			}
			return err
		}); err != nil {
			return err
		}
	}

	if !req.DeleteJobWhenDone {
		return nil
	}

	return workflow.StepDo(run, "finalize", func() error {
		remaining, err := o.documents.ListDocumentIDs(ctx, req.JobId)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			return nil
		}

		err = o.jobs.DeleteJob(ctx, req.JobId)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		return o.ownerCleanup(ctx, req.NamespaceId, req.OrganizationId, req.DeleteNamespaceWhenDone, req.DeleteOrgWhenDone)
	})
}

// cleanupOwners runs the namespace and organization cleanup as durable steps.
func (o *Orchestrator) cleanupOwners(ctx context.Context, run *workflow.Run, nsID, orgID core.ID, deleteNamespace, deleteOrg bool) error {
	if !deleteNamespace {
		return nil
	}

	if err := workflow.StepDo(run, "check-and-delete-namespace", func() error {
		_, err := o.namespaces.DeleteNamespaceIfEmpty(ctx, nsID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}); err != nil {
		return err
	}

	if !deleteOrg {
		return nil
	}
	return workflow.StepDo(run, "check-and-delete-org", func() error {
		_, err := o.organizations.DeleteOrganizationIfEmpty(ctx, orgID)
		if errors.Is(err, storage.ErrAlreadyDeleted) || errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	})
}

// ownerCleanup is the non-durable variant used inside a finalize step.
func (o *Orchestrator) ownerCleanup(ctx context.Context, nsID, orgID core.ID, deleteNamespace, deleteOrg bool) error {
	if !deleteNamespace {
		return nil
	}

	_, err := o.namespaces.DeleteNamespaceIfEmpty(ctx, nsID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	if !deleteOrg {
		return nil
	}
	_, err = o.organizations.DeleteOrganizationIfEmpty(ctx, orgID)
	if err != nil && !errors.Is(err, storage.ErrAlreadyDeleted) && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// onDeleteFailure marks the job FAILED after a cascade run fails terminally,
// leaving it visible for a retry rather than stuck in DELETING.
func (o *Orchestrator) onDeleteFailure(ctx context.Context, runID string, payload []byte, cause error) {
	var req deleteJobPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		o.logger.Error("failed to decode payload in failure handler", "run", runID, "err", err)
		return
	}

	o.logger.Error("delete cascade failed", "job", req.JobId, "run", runID, "err", cause)
	err := o.jobs.SetJobFailed(ctx, req.JobId, failureMessage(cause), time.Now().UTC())
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		o.logger.Error("failed to mark job failed", "job", req.JobId, "err", err)
	}
}
