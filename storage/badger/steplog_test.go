package badger

import (
	"context"
	"testing"
	"time"

	"github.com/quarrylabs/quarry/core"
)

func TestStepLogRoundTrip(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()

	step := &core.StepRecord{
		RunId:     "run-1",
		Seq:       0,
		Name:      "get-config",
		Status:    core.StepStatusCompleted,
		Result:    []byte(`{"jobId":7}`),
		UpdatedAt: time.Now().UTC(),
	}
	if err := stores.StepLog.SaveStep(ctx, step); err != nil {
		t.Fatalf("SaveStep failed: %v", err)
	}

	loaded, err := stores.StepLog.LoadStep(ctx, "run-1", "get-config")
	if err != nil {
		t.Fatalf("LoadStep failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected step record, got nil")
	}
	if loaded.Status != core.StepStatusCompleted {
		t.Errorf("Expected completed status, got %d", loaded.Status)
	}
	if string(loaded.Result) != `{"jobId":7}` {
		t.Errorf("Result mismatch: %s", loaded.Result)
	}
}

func TestLoadStepMissingIsNil(t *testing.T) {
	stores := newMemoryStores(t)

	loaded, err := stores.StepLog.LoadStep(context.Background(), "run-1", "never-ran")
	if err != nil {
		t.Fatalf("LoadStep failed: %v", err)
	}
	if loaded != nil {
		t.Errorf("Expected nil for missing step, got %+v", loaded)
	}
}

func TestRunRecordRoundTrip(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()

	run := &core.RunRecord{
		Id:        "run-1",
		Workflow:  "ingest-job",
		Payload:   []byte(`{"jobId":7}`),
		Status:    core.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := stores.StepLog.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	loaded, err := stores.StepLog.LoadRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("LoadRun failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected run record, got nil")
	}
	if loaded.Workflow != "ingest-job" {
		t.Errorf("Workflow mismatch: %s", loaded.Workflow)
	}

	missing, err := stores.StepLog.LoadRun(ctx, "run-ghost")
	if err != nil {
		t.Fatalf("LoadRun failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for missing run, got %+v", missing)
	}
}

func TestListRunsFiltersByStatus(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()

	records := []*core.RunRecord{
		{Id: "run-a", Workflow: "ingest-job", Status: core.RunStatusRunning},
		{Id: "run-b", Workflow: "process-document", Status: core.RunStatusRunning},
		{Id: "run-c", Workflow: "ingest-job", Status: core.RunStatusCompleted},
		{Id: "run-d", Workflow: "delete-job", Status: core.RunStatusFailed},
	}
	for _, record := range records {
		if err := stores.StepLog.SaveRun(ctx, record); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	running, err := stores.StepLog.ListRuns(ctx, core.RunStatusRunning)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(running) != 2 {
		t.Fatalf("Expected 2 running runs, got %d", len(running))
	}
	found := map[string]bool{}
	for _, record := range running {
		found[record.Id] = true
	}
	if !found["run-a"] || !found["run-b"] {
		t.Errorf("Wrong runs listed: %v", found)
	}
}

func TestDeleteRunRemovesSteps(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()

	if err := stores.StepLog.SaveRun(ctx, &core.RunRecord{
		Id: "run-1", Workflow: "ingest-job", Status: core.RunStatusCompleted,
	}); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	for i, name := range []string{"get-config", "create-documents-0"} {
		if err := stores.StepLog.SaveStep(ctx, &core.StepRecord{
			RunId: "run-1", Seq: i, Name: name, Status: core.StepStatusCompleted,
		}); err != nil {
			t.Fatalf("SaveStep failed: %v", err)
		}
	}

	if err := stores.StepLog.DeleteRun(ctx, "run-1"); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}

	run, err := stores.StepLog.LoadRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("LoadRun failed: %v", err)
	}
	if run != nil {
		t.Error("Run record survived DeleteRun")
	}
	step, err := stores.StepLog.LoadStep(ctx, "run-1", "get-config")
	if err != nil {
		t.Fatalf("LoadStep failed: %v", err)
	}
	if step != nil {
		t.Error("Step record survived DeleteRun")
	}
}
