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
	"log/slog"
	"time"

	"github.com/quarrylabs/quarry/ai"
	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/storage"
	"github.com/quarrylabs/quarry/workflow"
)

// Workflow names registered by the orchestrator.
const (
	WorkflowIngestJob       = "ingest-job"
	WorkflowProcessDocument = "process-document"
	WorkflowDeleteJob       = "delete-ingest-job"
	WorkflowDeleteDocument  = "delete-document"
)

// Batch sizes for durable step loops.
const (
	createBatchSize = 20
	updateBatchSize = 30
)

// Admission bounds per workflow family. Ingestion is allowed to burst;
// deletion is deliberately slow so cascades never starve foreground work.
const (
	ingestParallelism = 200
	ingestRateEvents  = 100
	ingestRatePeriod  = time.Second

	deleteParallelism = 50
	deleteRateEvents  = 5
	deleteRatePeriod  = 3 * time.Second
)

// jobFailureMessage is the terminal error recorded on a job whose workflow
// run failed without a more specific cause.
const jobFailureMessage = "Unknown error"

// failureMessage renders the failure reason stored on the job row.
func failureMessage(cause error) string {
	if cause != nil {
		return cause.Error()
	}
	return jobFailureMessage
}

// ingestJobPayload is the trigger payload for an ingestion run.
type ingestJobPayload struct {
	JobId core.ID `json:"jobId"`
}

// Orchestrator registers and drives the ingestion and deletion workflows.
type Orchestrator struct {
	jobs          storage.JobRepository
	documents     storage.DocumentRepository
	namespaces    storage.NamespaceRepository
	organizations storage.OrganizationRepository
	vectors       storage.VectorIndex
	executor      *workflow.Executor
	processor     *processor
	logger        *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithChunker sets the chunker used by document processing.
func WithChunker(chunker *Chunker) Option {
	return func(o *Orchestrator) error {
		if chunker == nil {
			return errors.New("chunker cannot be nil")
		}
		o.processor.chunker = chunker
		return nil
	}
}

// WithFetcher sets the content fetcher used by document processing.
func WithFetcher(fetcher Fetcher) Option {
	return func(o *Orchestrator) error {
		if fetcher == nil {
			return ErrFetcherRequired
		}
		o.processor.fetcher = fetcher
		return nil
	}
}

// NewOrchestrator creates an orchestrator and registers its workflows on the
// executor.
func NewOrchestrator(
	jobs storage.JobRepository,
	documents storage.DocumentRepository,
	namespaces storage.NamespaceRepository,
	organizations storage.OrganizationRepository,
	vectors storage.VectorIndex,
	embedder ai.Embedder,
	executor *workflow.Executor,
	opts ...Option,
) (*Orchestrator, error) {
	if jobs == nil {
		return nil, ErrJobRepositoryRequired
	}
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if namespaces == nil {
		return nil, ErrNamespaceRepositoryRequired
	}
	if organizations == nil {
		return nil, ErrOrganizationRepositoryRequired
	}
	if vectors == nil {
		return nil, ErrVectorIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if executor == nil {
		return nil, ErrExecutorRequired
	}

	logger := slog.Default()
	o := &Orchestrator{
		jobs:          jobs,
		documents:     documents,
		namespaces:    namespaces,
		organizations: organizations,
		vectors:       vectors,
		executor:      executor,
		processor: newProcessor(
			jobs, documents, vectors, embedder, NewFileFetcher(""), NewChunker(5, 1), logger),
		logger: logger,
	}

	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			return nil, optErr
		}
	}
	o.processor.logger = o.logger

	if err := o.register(); err != nil {
		return nil, err
	}
	return o, nil
}

// register binds the four workflows and their admission gates.
func (o *Orchestrator) register() error {
	ingestFlow, err := workflow.NewFlowControl(ingestParallelism, ingestRateEvents, ingestRatePeriod)
	if err != nil {
		return err
	}
	processFlow, err := workflow.NewFlowControl(ingestParallelism, ingestRateEvents, ingestRatePeriod)
	if err != nil {
		return err
	}
	deleteJobFlow, err := workflow.NewFlowControl(deleteParallelism, deleteRateEvents, deleteRatePeriod)
	if err != nil {
		return err
	}
	deleteDocFlow, err := workflow.NewFlowControl(deleteParallelism, deleteRateEvents, deleteRatePeriod)
	if err != nil {
		return err
	}

	if err := o.executor.Register(WorkflowIngestJob, o.handleIngest,
		workflow.WithFlowControl(ingestFlow),
		workflow.WithFailureHandler(o.onIngestFailure),
	); err != nil {
		return err
	}
	if err := o.executor.Register(WorkflowProcessDocument, o.processor.handle,
		workflow.WithFlowControl(processFlow),
		workflow.WithFailureHandler(o.processor.onFailure),
	); err != nil {
		return err
	}
	if err := o.executor.Register(WorkflowDeleteJob, o.handleDeleteJob,
		workflow.WithFlowControl(deleteJobFlow),
		workflow.WithFailureHandler(o.onDeleteFailure),
	); err != nil {
		return err
	}
	return o.executor.Register(WorkflowDeleteDocument, o.handleDeleteDocument,
		workflow.WithFlowControl(deleteDocFlow),
	)
}

// TriggerIngest starts an ingestion run for the job and records the run id
// on the job row.
func (o *Orchestrator) TriggerIngest(ctx context.Context, jobID core.ID) (string, error) {
	payload, err := json.Marshal(ingestJobPayload{JobId: jobID})
	if err != nil {
		return "", err
	}

	runID, err := o.executor.Trigger(ctx, WorkflowIngestJob, payload)
	if err != nil {
		return "", err
	}

	err = o.jobs.AppendJobWorkflowRuns(ctx, jobID, runID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return runID, err
	}
	return runID, nil
}

// handleIngest drives one ingestion run end to end.
func (o *Orchestrator) handleIngest(ctx context.Context, run *workflow.Run, payload []byte) error {
	var req ingestJobPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	job, err := workflow.Step(run, "get-config", func() (*core.IngestJob, error) {
		job, err := o.jobs.GetJob(ctx, req.JobId)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if _, err := o.namespaces.GetNamespace(ctx, job.NamespaceId); err != nil {
			return nil, fmt.Errorf("namespace %d: %w", job.NamespaceId, err)
		}
		return job, nil
	})
	if err != nil {
		return err
	}
	if job == nil {
		// Deleted before the run started; nothing to do.
		o.logger.Info("ingest job gone, skipping run", "job", req.JobId)
		return nil
	}
	if job.Status.PendingDelete() {
		o.logger.Info("ingest job pending delete, skipping run", "job", job.Id)
		return nil
	}

	if err := workflow.StepDo(run, "update-status-pre-processing", func() error {
		return o.jobs.SetJobStatus(ctx, job.Id, core.JobStatusPreProcessing, time.Now().UTC())
	}); err != nil {
		return err
	}

	docs, err := MaterializeDocuments(job)
	if err != nil {
		return err
	}

	for i, batch := range chunkBy(docs, createBatchSize) {
		batch := batch
		if err := workflow.StepDo(run, stepName("create-documents", i), func() error {
			_, err := o.documents.CreateDocuments(ctx, batch...)
			return err
		}); err != nil {
			return err
		}
	}

	runIDs, err := workflow.Step(run, "enqueue-documents", func() ([]string, error) {
		return o.enqueueDocuments(ctx, docs)
	})
	if err != nil {
		return err
	}
	if len(runIDs) != len(docs) {
		return fmt.Errorf("enqueue mismatch: %d runs for %d documents", len(runIDs), len(docs))
	}

	if err := workflow.StepDo(run, "update-status-processing", func() error {
		return o.jobs.SetJobStatus(ctx, job.Id, core.JobStatusProcessing, time.Now().UTC())
	}); err != nil {
		return err
	}

	type pair struct {
		DocumentId core.ID `json:"documentId"`
		RunId      string  `json:"runId"`
	}
	pairs := make([]pair, len(docs))
	for i, doc := range docs {
		pairs[i] = pair{DocumentId: doc.Id, RunId: runIDs[i]}
	}

	for i, batch := range chunkBy(pairs, updateBatchSize) {
		batch := batch
		if err := workflow.StepDo(run, stepName("update-documents-with-workflowRunIds", i), func() error {
			byDoc := make(map[core.ID]string, len(batch))
			batchRuns := make([]string, len(batch))
			for j, p := range batch {
				byDoc[p.DocumentId] = p.RunId
				batchRuns[j] = p.RunId
			}
			if err := o.documents.AppendDocumentWorkflowRuns(ctx, byDoc); err != nil {
				return err
			}
			return o.jobs.AppendJobWorkflowRuns(ctx, job.Id, batchRuns...)
		}); err != nil {
			return err
		}
	}

	o.logger.Info("ingest job dispatched", "job", job.Id, "documents", len(docs))

	// Document runs that finished before the PROCESSING transition above saw
	// a job they could not complete; check once more on their behalf.
	return workflow.StepDo(run, "maybe-complete-job", func() error {
		return o.processor.maybeCompleteJob(ctx, job.Id)
	})
}

// enqueueDocuments triggers one processing run per document and returns the
// run ids in document order.
func (o *Orchestrator) enqueueDocuments(ctx context.Context, docs []*core.Document) ([]string, error) {
	payloads := make([][]byte, len(docs))
	for i, doc := range docs {
		payload, err := json.Marshal(processDocumentPayload{
			DocumentId:  doc.Id,
			NamespaceId: doc.NamespaceId,
			TenantId:    doc.TenantId,
		})
		if err != nil {
			return nil, err
		}
		payloads[i] = payload
	}
	return o.executor.TriggerBatch(ctx, WorkflowProcessDocument, payloads)
}

// onIngestFailure marks the job FAILED after an ingestion run fails
// terminally. A job deleted mid-run is not an error.
func (o *Orchestrator) onIngestFailure(ctx context.Context, runID string, payload []byte, cause error) {
	var req ingestJobPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		o.logger.Error("failed to decode payload in failure handler", "run", runID, "err", err)
		return
	}

	o.logger.Error("ingest run failed", "job", req.JobId, "run", runID, "err", cause)
	err := o.jobs.SetJobFailed(ctx, req.JobId, failureMessage(cause), time.Now().UTC())
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		o.logger.Error("failed to mark job failed", "job", req.JobId, "err", err)
	}
}
