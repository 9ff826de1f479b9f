package quarry

import (
	"context"
	"testing"
	"time"

	"github.com/quarrylabs/quarry/ai/mock"
	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/ingest"
	"github.com/quarrylabs/quarry/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	engine, err := NewEngine("",
		WithInMemory(),
		WithAIProvider(mock.NewMockProvider()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func seedNamespace(t *testing.T, engine *Engine) *core.Namespace {
	t.Helper()
	ctx := context.Background()

	org, err := engine.CreateOrganization(ctx, &core.Organization{Name: "acme"})
	require.NoError(t, err)
	ns, err := engine.CreateNamespace(ctx, &core.Namespace{
		OrganizationId: org.Id,
		Name:           "docs",
		EmbeddingModel: "mock",
	})
	require.NoError(t, err)
	return ns
}

func waitForJobStatus(t *testing.T, engine *Engine, jobID core.ID, want core.JobStatus) *core.IngestJob {
	t.Helper()

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		job, err := engine.GetJob(context.Background(), jobID)
		require.NoError(t, err)
		if job.Status == want {
			return job
		}
		require.NotEqual(t, core.JobStatusFailed, job.Status, "job failed: %s", job.Error)
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %d never reached status %s", jobID, want)
	return nil
}

func waitForJobGone(t *testing.T, engine *Engine, jobID core.ID) {
	t.Helper()

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		_, err := engine.GetJob(context.Background(), jobID)
		if err != nil {
			assert.ErrorIs(t, err, storage.ErrNotFound)
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %d was never deleted", jobID)
}

func TestEngineIngestAndQuery(t *testing.T) {
	engine := newTestEngine(t)
	ns := seedNamespace(t, engine)
	ctx := context.Background()

	job, err := engine.CreateIngestJob(ctx, &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText, Name: "note", Text: "Badgers dig elaborate burrow systems."},
	})
	require.NoError(t, err)
	waitForJobStatus(t, engine, job.Id, core.JobStatusCompleted)

	resp, err := engine.Query(ctx, ns.Id, "burrow systems", nil)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)
	assert.Contains(t, resp.Results[0].Text, "burrow")
}

func TestEngineCreateJobValidatesPayload(t *testing.T) {
	engine := newTestEngine(t)
	ns := seedNamespace(t, engine)

	_, err := engine.CreateIngestJob(context.Background(), &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText},
	})
	require.Error(t, err)
}

func TestEngineCreateJobUnknownNamespace(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.CreateIngestJob(context.Background(), &core.IngestJob{
		NamespaceId: 424242,
		Payload:     core.Payload{Type: core.PayloadTypeText, Text: "orphan"},
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEnginePagesLimit(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	org, err := engine.CreateOrganization(ctx, &core.Organization{
		Name:       "capped",
		PagesLimit: 10,
		TotalPages: 10,
	})
	require.NoError(t, err)
	ns, err := engine.CreateNamespace(ctx, &core.Namespace{
		OrganizationId: org.Id,
		Name:           "docs",
		EmbeddingModel: "mock",
	})
	require.NoError(t, err)

	_, err = engine.CreateIngestJob(ctx, &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText, Text: "over quota"},
	})
	assert.ErrorIs(t, err, ErrPagesLimitExceeded)
}

func TestEngineResyncCompletedJob(t *testing.T) {
	engine := newTestEngine(t)
	ns := seedNamespace(t, engine)
	ctx := context.Background()

	job, err := engine.CreateIngestJob(ctx, &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText, Name: "note", Text: "First pass."},
	})
	require.NoError(t, err)
	first := waitForJobStatus(t, engine, job.Id, core.JobStatusCompleted)
	firstRuns := len(first.WorkflowRunsIds)

	require.NoError(t, engine.ResyncIngestJob(ctx, job.Id))
	resynced := waitForJobStatus(t, engine, job.Id, core.JobStatusCompleted)
	assert.Greater(t, len(resynced.WorkflowRunsIds), firstRuns)

	// Content-derived document ids keep the resync from duplicating rows.
	ids, err := engine.DocumentRepository().ListDocumentIDs(ctx, job.Id)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestEngineResyncRejectsPendingDelete(t *testing.T) {
	engine := newTestEngine(t)
	ns := seedNamespace(t, engine)
	ctx := context.Background()

	job, err := engine.JobRepository().CreateJob(ctx, &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText, Text: "doomed"},
	})
	require.NoError(t, err)
	require.NoError(t, engine.JobRepository().SetJobStatus(ctx, job.Id, core.JobStatusQueuedForDelete, time.Now()))

	assert.ErrorIs(t, engine.ResyncIngestJob(ctx, job.Id), ErrJobPendingDelete)
}

func TestEngineResyncUnknownJob(t *testing.T) {
	engine := newTestEngine(t)

	err := engine.ResyncIngestJob(context.Background(), 424242)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEngineDeleteJobCascades(t *testing.T) {
	engine := newTestEngine(t)
	ns := seedNamespace(t, engine)
	ctx := context.Background()

	job, err := engine.CreateIngestJob(ctx, &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText, Name: "note", Text: "Deleted soon."},
	})
	require.NoError(t, err)
	waitForJobStatus(t, engine, job.Id, core.JobStatusCompleted)

	require.NoError(t, engine.DeleteIngestJob(ctx, job.Id, ingest.DeleteOptions{}))
	waitForJobGone(t, engine, job.Id)

	resp, err := engine.Query(ctx, ns.Id, "deleted", nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestEngineDeleteRejectsDuplicateRequest(t *testing.T) {
	engine := newTestEngine(t)
	ns := seedNamespace(t, engine)
	ctx := context.Background()

	job, err := engine.JobRepository().CreateJob(ctx, &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText, Text: "once"},
	})
	require.NoError(t, err)
	require.NoError(t, engine.JobRepository().SetJobStatus(ctx, job.Id, core.JobStatusQueuedForDelete, time.Now()))

	err = engine.DeleteIngestJob(ctx, job.Id, ingest.DeleteOptions{})
	assert.ErrorIs(t, err, ErrJobPendingDelete)
}

func TestEngineListJobsFiltersByStatus(t *testing.T) {
	engine := newTestEngine(t)
	ns := seedNamespace(t, engine)
	ctx := context.Background()

	job, err := engine.CreateIngestJob(ctx, &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText, Name: "note", Text: "Listed."},
	})
	require.NoError(t, err)
	waitForJobStatus(t, engine, job.Id, core.JobStatusCompleted)

	all, err := engine.ListJobs(ctx, ns.Id)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	completed, err := engine.ListJobs(ctx, ns.Id, core.JobStatusCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 1)

	failed, err := engine.ListJobs(ctx, ns.Id, core.JobStatusFailed)
	require.NoError(t, err)
	assert.Empty(t, failed)
}
