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

package quarry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/quarrylabs/quarry/ai"
	"github.com/quarrylabs/quarry/ai/openai"
	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/ingest"
	"github.com/quarrylabs/quarry/retrieval"
	"github.com/quarrylabs/quarry/storage"
	"github.com/quarrylabs/quarry/storage/badger"
	"github.com/quarrylabs/quarry/workflow"
)

var (
	// ErrJobActive means the job is being driven by a live ingestion run.
	ErrJobActive = errors.New("ingest job is currently processing")
	// ErrJobPendingDelete means the job is already queued for or undergoing deletion.
	ErrJobPendingDelete = errors.New("ingest job is pending deletion")
	// ErrPagesLimitExceeded means the organization has used up its plan's page quota.
	ErrPagesLimitExceeded = errors.New("organization pages limit exceeded")
)

// Engine wires storage, the durable workflow executor, the ingestion
// orchestrator and the retrieval pipeline over one BadgerDB instance.
type Engine struct {
	stores       *badger.Stores
	provider     ai.Provider
	executor     *workflow.Executor
	orchestrator *ingest.Orchestrator
	pipeline     *retrieval.Pipeline
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig    *ai.Config
	provider    ai.Provider
	inMemory    bool
	logger      *slog.Logger
	ingestOpts  []ingest.Option
	searchOpts  []retrieval.Option
	executorOps []workflow.Option
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider injects a pre-built AI provider instead of constructing one
// from the configuration. The engine takes ownership and closes it.
func WithAIProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the backing store in memory, discarding state on Close.
func WithInMemory() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithEngineLogger sets the logger used by the engine and its components.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithIngestOptions passes options through to the ingestion orchestrator.
func WithIngestOptions(opts ...ingest.Option) EngineOption {
	return func(o *engineOptions) {
		o.ingestOpts = append(o.ingestOpts, opts...)
	}
}

// WithRetrievalOptions passes options through to the retrieval pipeline.
func WithRetrievalOptions(opts ...retrieval.Option) EngineOption {
	return func(o *engineOptions) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// WithExecutorOptions passes options through to the workflow executor.
func WithExecutorOptions(opts ...workflow.Option) EngineOption {
	return func(o *engineOptions) {
		o.executorOps = append(o.executorOps, opts...)
	}
}

// NewEngine opens the store at filePath and assembles all components.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	stores, err := badger.NewStores(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			stores.Close()
			return nil, err
		}
	}

	executor, err := workflow.NewExecutor(stores.StepLog,
		append([]workflow.Option{workflow.WithLogger(options.logger)}, options.executorOps...)...)
	if err != nil {
		provider.Close()
		stores.Close()
		return nil, err
	}

	orchestrator, err := ingest.NewOrchestrator(
		stores.Jobs, stores.Documents, stores.Namespaces, stores.Organizations,
		stores.Vectors, provider.Embedder(), executor,
		append([]ingest.Option{ingest.WithLogger(options.logger)}, options.ingestOpts...)...)
	if err != nil {
		executor.Close()
		provider.Close()
		stores.Close()
		return nil, err
	}

	pipeline, err := retrieval.NewPipeline(stores.Namespaces, stores.Vectors, provider,
		append([]retrieval.Option{retrieval.WithLogger(options.logger)}, options.searchOpts...)...)
	if err != nil {
		executor.Close()
		provider.Close()
		stores.Close()
		return nil, err
	}

	// Runs interrupted by a crash are still RUNNING in the step log; resume
	// them now that every workflow is registered.
	resumed, err := executor.ResumePending(context.Background())
	if err != nil {
		executor.Close()
		provider.Close()
		stores.Close()
		return nil, err
	}
	if resumed > 0 {
		options.logger.Info("resumed interrupted workflow runs", "count", resumed)
	}

	return &Engine{
		stores:       stores,
		provider:     provider,
		executor:     executor,
		orchestrator: orchestrator,
		pipeline:     pipeline,
		logger:       options.logger,
	}, nil
}

// Close drains in-flight workflow runs, then closes the AI provider and the
// store. Safe to call once.
func (e *Engine) Close() error {
	if err := e.executor.Close(); err != nil {
		e.logger.Error("error closing workflow executor", "err", err)
	}
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	if err := e.stores.Close(); err != nil {
		e.logger.Error("error closing storage", "err", err)
		return err
	}
	return nil
}

// CreateOrganization inserts a new organization.
func (e *Engine) CreateOrganization(ctx context.Context, org *core.Organization) (*core.Organization, error) {
	return e.stores.Organizations.CreateOrganization(ctx, org)
}

// CreateNamespace inserts a new namespace under its organization.
func (e *Engine) CreateNamespace(ctx context.Context, ns *core.Namespace) (*core.Namespace, error) {
	return e.stores.Namespaces.CreateNamespace(ctx, ns)
}

// CreateIngestJob validates and stores a job, then triggers its ingestion
// run. The organization's page quota is checked before the insert.
func (e *Engine) CreateIngestJob(ctx context.Context, job *core.IngestJob) (*core.IngestJob, error) {
	if err := core.ValidateIngestJob(job); err != nil {
		return nil, err
	}

	ns, err := e.stores.Namespaces.GetNamespace(ctx, job.NamespaceId)
	if err != nil {
		return nil, err
	}
	org, err := e.stores.Organizations.GetOrganization(ctx, ns.OrganizationId)
	if err != nil {
		return nil, err
	}
	if org.PagesLimit > 0 && org.TotalPages >= org.PagesLimit {
		return nil, ErrPagesLimitExceeded
	}

	created, err := e.stores.Jobs.CreateJob(ctx, job)
	if err != nil {
		return nil, err
	}

	if _, err := e.orchestrator.TriggerIngest(ctx, created.Id); err != nil {
		e.logger.Error("failed to trigger ingestion", "job", created.Id, "err", err)
		return nil, err
	}
	return created, nil
}

// ResyncIngestJob re-queues an existing job for a fresh ingestion run.
// Rejected while a run is actively processing the job or while the job is
// pending deletion.
func (e *Engine) ResyncIngestJob(ctx context.Context, jobID core.ID) error {
	job, err := e.stores.Jobs.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status.Active() {
		return ErrJobActive
	}
	if job.Status.PendingDelete() {
		return ErrJobPendingDelete
	}

	if err := e.stores.Jobs.SetJobStatus(ctx, jobID, core.JobStatusQueuedForResync, time.Now()); err != nil {
		return err
	}
	_, err = e.orchestrator.TriggerIngest(ctx, jobID)
	return err
}

// DeleteIngestJob marks the job for deletion and starts the delete cascade.
// Duplicate delete requests for the same job are rejected.
func (e *Engine) DeleteIngestJob(ctx context.Context, jobID core.ID, opts ingest.DeleteOptions) error {
	job, err := e.stores.Jobs.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status.PendingDelete() {
		return ErrJobPendingDelete
	}

	if err := e.stores.Jobs.SetJobStatus(ctx, jobID, core.JobStatusQueuedForDelete, time.Now()); err != nil {
		return err
	}
	_, err = e.orchestrator.TriggerDelete(ctx, jobID, opts)
	return err
}

// GetJob retrieves a single ingest job.
func (e *Engine) GetJob(ctx context.Context, jobID core.ID) (*core.IngestJob, error) {
	return e.stores.Jobs.GetJob(ctx, jobID)
}

// ListJobs lists a namespace's jobs, newest first, optionally filtered by status.
func (e *Engine) ListJobs(ctx context.Context, namespaceID core.ID, statuses ...core.JobStatus) ([]*core.IngestJob, error) {
	return e.stores.Jobs.ListJobs(ctx, namespaceID, statuses...)
}

// Query runs a semantic retrieval query against a namespace.
func (e *Engine) Query(ctx context.Context, namespaceID core.ID, query string, opts *retrieval.QueryOptions) (*retrieval.Response, error) {
	return e.pipeline.Query(ctx, namespaceID, query, opts)
}

// JobRepository exposes the underlying ingest job store.
func (e *Engine) JobRepository() storage.JobRepository {
	return e.stores.Jobs
}

// DocumentRepository exposes the underlying document store.
func (e *Engine) DocumentRepository() storage.DocumentRepository {
	return e.stores.Documents
}

// NamespaceRepository exposes the underlying namespace store.
func (e *Engine) NamespaceRepository() storage.NamespaceRepository {
	return e.stores.Namespaces
}

// OrganizationRepository exposes the underlying organization store.
func (e *Engine) OrganizationRepository() storage.OrganizationRepository {
	return e.stores.Organizations
}

// VectorIndex exposes the underlying vector index.
func (e *Engine) VectorIndex() storage.VectorIndex {
	return e.stores.Vectors
}

// Executor exposes the workflow executor driving ingestion and deletion runs.
func (e *Engine) Executor() *workflow.Executor {
	return e.executor
}
