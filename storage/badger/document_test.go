package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/storage"
)

func seedJob(t *testing.T, stores *Stores, nsID core.ID) *core.IngestJob {
	t.Helper()

	job, err := stores.Jobs.CreateJob(context.Background(), &core.IngestJob{
		NamespaceId: nsID,
		Payload:     core.Payload{Type: core.PayloadTypeText, Text: "hello"},
	})
	if err != nil {
		t.Fatalf("Failed to create job: %v", err)
	}
	return job
}

func makeDocument(job *core.IngestJob, text string) *core.Document {
	return &core.Document{
		Id:          core.IDFromContent(text),
		IngestJobId: job.Id,
		NamespaceId: job.NamespaceId,
		Source:      core.DocumentSource{Type: core.SourceTypeText, Text: text},
	}
}

func TestDocumentBasics(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()
	org, ns := seedTenancy(t, stores)
	job := seedJob(t, stores, ns.Id)

	inserted, err := stores.Documents.CreateDocuments(ctx,
		makeDocument(job, "alpha"), makeDocument(job, "beta"))
	if err != nil {
		t.Fatalf("Failed to create documents: %v", err)
	}
	if len(inserted) != 2 {
		t.Fatalf("Expected 2 inserted, got %d", len(inserted))
	}

	ids, err := stores.Documents.ListDocumentIDs(ctx, job.Id)
	if err != nil {
		t.Fatalf("ListDocumentIDs failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("Expected 2 document ids, got %d", len(ids))
	}

	nsAfter, err := stores.Namespaces.GetNamespace(ctx, ns.Id)
	if err != nil {
		t.Fatalf("Failed to get namespace: %v", err)
	}
	if nsAfter.TotalDocuments != 2 {
		t.Errorf("Expected namespace TotalDocuments 2, got %d", nsAfter.TotalDocuments)
	}
	orgAfter, err := stores.Organizations.GetOrganization(ctx, org.Id)
	if err != nil {
		t.Fatalf("Failed to get organization: %v", err)
	}
	if orgAfter.TotalDocuments != 2 {
		t.Errorf("Expected organization TotalDocuments 2, got %d", orgAfter.TotalDocuments)
	}
}

func TestCreateDocumentsReplayIsIdempotent(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()
	_, ns := seedTenancy(t, stores)
	job := seedJob(t, stores, ns.Id)

	if _, err := stores.Documents.CreateDocuments(ctx, makeDocument(job, "alpha")); err != nil {
		t.Fatalf("Failed to create documents: %v", err)
	}

	// Replaying the same batch inserts nothing and moves no counters.
	inserted, err := stores.Documents.CreateDocuments(ctx, makeDocument(job, "alpha"))
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if len(inserted) != 0 {
		t.Errorf("Expected 0 inserted on replay, got %d", len(inserted))
	}

	nsAfter, err := stores.Namespaces.GetNamespace(ctx, ns.Id)
	if err != nil {
		t.Fatalf("Failed to get namespace: %v", err)
	}
	if nsAfter.TotalDocuments != 1 {
		t.Errorf("Expected TotalDocuments 1 after replay, got %d", nsAfter.TotalDocuments)
	}
}

func TestSetDocumentCompleted(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()
	_, ns := seedTenancy(t, stores)
	job := seedJob(t, stores, ns.Id)

	doc := makeDocument(job, "alpha")
	if _, err := stores.Documents.CreateDocuments(ctx, doc); err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}

	totals := core.DocumentTotals{Chunks: 3, Tokens: 40, Characters: 160, Pages: 1}
	if err := stores.Documents.SetDocumentCompleted(ctx, doc.Id, totals); err != nil {
		t.Fatalf("SetDocumentCompleted failed: %v", err)
	}

	after, err := stores.Documents.GetDocument(ctx, doc.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if after.Status != core.DocumentStatusCompleted {
		t.Errorf("Expected COMPLETED, got %s", after.Status)
	}
	if after.TotalChunks != 3 || after.TotalTokens != 40 || after.TotalCharacters != 160 || after.TotalPages != 1 {
		t.Errorf("Totals not recorded: %+v", after)
	}

	err = stores.Documents.SetDocumentCompleted(ctx, 424242, totals)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSetDocumentCompletedAccruesOrgPages(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()
	org, ns := seedTenancy(t, stores)
	job := seedJob(t, stores, ns.Id)

	doc := makeDocument(job, "alpha")
	if _, err := stores.Documents.CreateDocuments(ctx, doc); err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}

	totals := core.DocumentTotals{Chunks: 3, Tokens: 40, Characters: 160, Pages: 3}
	if err := stores.Documents.SetDocumentCompleted(ctx, doc.Id, totals); err != nil {
		t.Fatalf("SetDocumentCompleted failed: %v", err)
	}
	orgAfter, err := stores.Organizations.GetOrganization(ctx, org.Id)
	if err != nil {
		t.Fatalf("Failed to get organization: %v", err)
	}
	if orgAfter.TotalPages != 3 {
		t.Errorf("Expected organization TotalPages 3, got %d", orgAfter.TotalPages)
	}

	// Replaying the same completion moves nothing.
	if err := stores.Documents.SetDocumentCompleted(ctx, doc.Id, totals); err != nil {
		t.Fatalf("Replayed SetDocumentCompleted failed: %v", err)
	}
	orgAfter, err = stores.Organizations.GetOrganization(ctx, org.Id)
	if err != nil {
		t.Fatalf("Failed to get organization: %v", err)
	}
	if orgAfter.TotalPages != 3 {
		t.Errorf("Expected organization TotalPages 3 after replay, got %d", orgAfter.TotalPages)
	}

	// A resync that shrinks the document releases the difference.
	smaller := core.DocumentTotals{Chunks: 1, Tokens: 10, Characters: 40, Pages: 1}
	if err := stores.Documents.SetDocumentCompleted(ctx, doc.Id, smaller); err != nil {
		t.Fatalf("Shrinking SetDocumentCompleted failed: %v", err)
	}
	orgAfter, err = stores.Organizations.GetOrganization(ctx, org.Id)
	if err != nil {
		t.Fatalf("Failed to get organization: %v", err)
	}
	if orgAfter.TotalPages != 1 {
		t.Errorf("Expected organization TotalPages 1 after shrink, got %d", orgAfter.TotalPages)
	}

	// Deleting the document returns its pages to the organization.
	if err := stores.Documents.DeleteDocument(ctx, doc.Id); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	orgAfter, err = stores.Organizations.GetOrganization(ctx, org.Id)
	if err != nil {
		t.Fatalf("Failed to get organization: %v", err)
	}
	if orgAfter.TotalPages != 0 {
		t.Errorf("Expected organization TotalPages 0 after delete, got %d", orgAfter.TotalPages)
	}
}

func TestSetDocumentsStatusSkipsMissing(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()
	_, ns := seedTenancy(t, stores)
	job := seedJob(t, stores, ns.Id)

	doc := makeDocument(job, "alpha")
	if _, err := stores.Documents.CreateDocuments(ctx, doc); err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}

	// A batch containing a vanished document still updates the rest.
	if err := stores.Documents.SetDocumentsStatus(ctx, core.DocumentStatusDeleting, doc.Id, 424242); err != nil {
		t.Fatalf("SetDocumentsStatus failed: %v", err)
	}

	after, err := stores.Documents.GetDocument(ctx, doc.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if after.Status != core.DocumentStatusDeleting {
		t.Errorf("Expected DELETING, got %s", after.Status)
	}
}

func TestAppendDocumentWorkflowRuns(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()
	_, ns := seedTenancy(t, stores)
	job := seedJob(t, stores, ns.Id)

	doc := makeDocument(job, "alpha")
	if _, err := stores.Documents.CreateDocuments(ctx, doc); err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}

	runs := map[core.ID]string{doc.Id: "run-1", 424242: "run-ghost"}
	if err := stores.Documents.AppendDocumentWorkflowRuns(ctx, runs); err != nil {
		t.Fatalf("AppendDocumentWorkflowRuns failed: %v", err)
	}

	after, err := stores.Documents.GetDocument(ctx, doc.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if len(after.WorkflowRunsIds) != 1 || after.WorkflowRunsIds[0] != "run-1" {
		t.Errorf("Expected run-1 appended, got %v", after.WorkflowRunsIds)
	}
}

func TestDeleteDocumentDecrementsCounters(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()
	_, ns := seedTenancy(t, stores)
	job := seedJob(t, stores, ns.Id)

	doc := makeDocument(job, "alpha")
	if _, err := stores.Documents.CreateDocuments(ctx, doc); err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}

	if err := stores.Documents.DeleteDocument(ctx, doc.Id); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	if _, err := stores.Documents.GetDocument(ctx, doc.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := stores.Documents.DeleteDocument(ctx, doc.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on double delete, got %v", err)
	}

	nsAfter, err := stores.Namespaces.GetNamespace(ctx, ns.Id)
	if err != nil {
		t.Fatalf("Failed to get namespace: %v", err)
	}
	if nsAfter.TotalDocuments != 0 {
		t.Errorf("Expected TotalDocuments 0, got %d", nsAfter.TotalDocuments)
	}
}
