package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/storage"
)

func TestJobBasics(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()
	org, ns := seedTenancy(t, stores)

	job, err := stores.Jobs.CreateJob(ctx, &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText, Text: "hello"},
	})
	if err != nil {
		t.Fatalf("Failed to create job: %v", err)
	}
	if job.Id == 0 {
		t.Fatal("Expected non-zero job ID")
	}
	if job.Status != core.JobStatusQueued {
		t.Errorf("Expected QUEUED, got %s", job.Status)
	}
	if job.QueuedAt.IsZero() {
		t.Error("Expected queuedAt to be stamped")
	}

	retrieved, err := stores.Jobs.GetJob(ctx, job.Id)
	if err != nil {
		t.Fatalf("Failed to get job: %v", err)
	}
	if retrieved.Payload.Text != "hello" {
		t.Errorf("Expected payload text 'hello', got %q", retrieved.Payload.Text)
	}

	// TotalIngestJobs moves in the same transaction as the insert.
	nsAfter, err := stores.Namespaces.GetNamespace(ctx, ns.Id)
	if err != nil {
		t.Fatalf("Failed to get namespace: %v", err)
	}
	if nsAfter.TotalIngestJobs != 1 {
		t.Errorf("Expected namespace TotalIngestJobs 1, got %d", nsAfter.TotalIngestJobs)
	}
	orgAfter, err := stores.Organizations.GetOrganization(ctx, org.Id)
	if err != nil {
		t.Fatalf("Failed to get organization: %v", err)
	}
	if orgAfter.TotalIngestJobs != 1 {
		t.Errorf("Expected organization TotalIngestJobs 1, got %d", orgAfter.TotalIngestJobs)
	}
}

func TestCreateJobRejectsInvalid(t *testing.T) {
	stores := newMemoryStores(t)
	_, ns := seedTenancy(t, stores)

	_, err := stores.Jobs.CreateJob(context.Background(), &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText},
	})
	if !errors.Is(err, core.ErrInvalidPayload) {
		t.Errorf("Expected ErrInvalidPayload, got %v", err)
	}
}

func TestSetJobStatusStampsTimestamps(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()
	_, ns := seedTenancy(t, stores)

	job, err := stores.Jobs.CreateJob(ctx, &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText, Text: "hello"},
	})
	if err != nil {
		t.Fatalf("Failed to create job: %v", err)
	}

	transitions := []struct {
		status core.JobStatus
		stamp  func(*core.IngestJob) time.Time
	}{
		{core.JobStatusPreProcessing, func(j *core.IngestJob) time.Time { return j.PreProcessingAt }},
		{core.JobStatusProcessing, func(j *core.IngestJob) time.Time { return j.ProcessingAt }},
		{core.JobStatusCompleted, func(j *core.IngestJob) time.Time { return j.CompletedAt }},
	}

	for _, tr := range transitions {
		// Stored timestamps round-trip at microsecond precision.
		at := time.Now().UTC().Truncate(time.Microsecond)
		if err := stores.Jobs.SetJobStatus(ctx, job.Id, tr.status, at); err != nil {
			t.Fatalf("SetJobStatus(%s) failed: %v", tr.status, err)
		}
		after, err := stores.Jobs.GetJob(ctx, job.Id)
		if err != nil {
			t.Fatalf("Failed to get job: %v", err)
		}
		if after.Status != tr.status {
			t.Errorf("Expected status %s, got %s", tr.status, after.Status)
		}
		if !tr.stamp(after).Equal(at) {
			t.Errorf("%s transition did not stamp its timestamp", tr.status)
		}
	}
}

func TestSetJobFailed(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()
	_, ns := seedTenancy(t, stores)

	job, err := stores.Jobs.CreateJob(ctx, &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText, Text: "hello"},
	})
	if err != nil {
		t.Fatalf("Failed to create job: %v", err)
	}

	if err := stores.Jobs.SetJobFailed(ctx, job.Id, "Unknown error", time.Now().UTC()); err != nil {
		t.Fatalf("SetJobFailed failed: %v", err)
	}

	after, err := stores.Jobs.GetJob(ctx, job.Id)
	if err != nil {
		t.Fatalf("Failed to get job: %v", err)
	}
	if after.Status != core.JobStatusFailed {
		t.Errorf("Expected FAILED, got %s", after.Status)
	}
	if after.Error != "Unknown error" {
		t.Errorf("Expected error message, got %q", after.Error)
	}
	if after.FailedAt.IsZero() {
		t.Error("Expected failedAt to be stamped")
	}
}

func TestAppendJobWorkflowRuns(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()
	_, ns := seedTenancy(t, stores)

	job, err := stores.Jobs.CreateJob(ctx, &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText, Text: "hello"},
	})
	if err != nil {
		t.Fatalf("Failed to create job: %v", err)
	}

	if err := stores.Jobs.AppendJobWorkflowRuns(ctx, job.Id, "run-1"); err != nil {
		t.Fatalf("AppendJobWorkflowRuns failed: %v", err)
	}
	if err := stores.Jobs.AppendJobWorkflowRuns(ctx, job.Id, "run-2", "run-3"); err != nil {
		t.Fatalf("AppendJobWorkflowRuns failed: %v", err)
	}

	after, err := stores.Jobs.GetJob(ctx, job.Id)
	if err != nil {
		t.Fatalf("Failed to get job: %v", err)
	}
	want := []string{"run-1", "run-2", "run-3"}
	if len(after.WorkflowRunsIds) != len(want) {
		t.Fatalf("Expected %d run ids, got %d", len(want), len(after.WorkflowRunsIds))
	}
	for i, id := range want {
		if after.WorkflowRunsIds[i] != id {
			t.Errorf("run id %d: expected %q, got %q", i, id, after.WorkflowRunsIds[i])
		}
	}
}

func TestListJobsNewestFirstWithStatusFilter(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()
	_, ns := seedTenancy(t, stores)

	first, err := stores.Jobs.CreateJob(ctx, &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText, Text: "first"},
	})
	if err != nil {
		t.Fatalf("Failed to create job: %v", err)
	}
	second, err := stores.Jobs.CreateJob(ctx, &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText, Text: "second"},
	})
	if err != nil {
		t.Fatalf("Failed to create job: %v", err)
	}
	if err := stores.Jobs.SetJobStatus(ctx, first.Id, core.JobStatusCompleted, time.Now().UTC()); err != nil {
		t.Fatalf("SetJobStatus failed: %v", err)
	}

	all, err := stores.Jobs.ListJobs(ctx, ns.Id)
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 jobs, got %d", len(all))
	}
	if all[0].Id != second.Id {
		t.Errorf("Expected newest job first, got %d", all[0].Id)
	}

	completed, err := stores.Jobs.ListJobs(ctx, ns.Id, core.JobStatusCompleted)
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(completed) != 1 || completed[0].Id != first.Id {
		t.Errorf("Status filter returned wrong jobs: %v", completed)
	}
}

func TestDeleteJobDecrementsCounters(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()
	org, ns := seedTenancy(t, stores)

	job, err := stores.Jobs.CreateJob(ctx, &core.IngestJob{
		NamespaceId: ns.Id,
		Payload:     core.Payload{Type: core.PayloadTypeText, Text: "hello"},
	})
	if err != nil {
		t.Fatalf("Failed to create job: %v", err)
	}

	if err := stores.Jobs.DeleteJob(ctx, job.Id); err != nil {
		t.Fatalf("DeleteJob failed: %v", err)
	}
	if _, err := stores.Jobs.GetJob(ctx, job.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := stores.Jobs.DeleteJob(ctx, job.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on double delete, got %v", err)
	}

	nsAfter, err := stores.Namespaces.GetNamespace(ctx, ns.Id)
	if err != nil {
		t.Fatalf("Failed to get namespace: %v", err)
	}
	if nsAfter.TotalIngestJobs != 0 {
		t.Errorf("Expected namespace TotalIngestJobs 0, got %d", nsAfter.TotalIngestJobs)
	}
	orgAfter, err := stores.Organizations.GetOrganization(ctx, org.Id)
	if err != nil {
		t.Fatalf("Failed to get organization: %v", err)
	}
	if orgAfter.TotalIngestJobs != 0 {
		t.Errorf("Expected organization TotalIngestJobs 0, got %d", orgAfter.TotalIngestJobs)
	}
}
