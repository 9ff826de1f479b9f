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
	"strconv"
	"time"

	"github.com/quarrylabs/quarry/ai"
	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/storage"
	"github.com/quarrylabs/quarry/workflow"
)

// Remote calls are retried with backoff before the run is declared failed.
const (
	remoteMaxAttempts = 3
	remoteBaseDelay   = 200 * time.Millisecond
)

// charsPerPage approximates one page of extracted text for quota accounting.
const charsPerPage = 4000

// processDocumentPayload is the trigger payload for one per-document
// processing run.
type processDocumentPayload struct {
	DocumentId  core.ID `json:"documentId"`
	NamespaceId core.ID `json:"namespaceId"`
	TenantId    string  `json:"tenantId,omitempty"`
}

// processor executes per-document processing runs: fetch the source text,
// chunk it, embed the chunks, upsert them into the namespace partition, and
// record the totals on the document row.
type processor struct {
	jobs      storage.JobRepository
	documents storage.DocumentRepository
	vectors   storage.VectorIndex
	embedder  ai.Embedder
	fetcher   Fetcher
	chunker   *Chunker
	logger    *slog.Logger
}

func newProcessor(
	jobs storage.JobRepository,
	documents storage.DocumentRepository,
	vectors storage.VectorIndex,
	embedder ai.Embedder,
	fetcher Fetcher,
	chunker *Chunker,
	logger *slog.Logger,
) *processor {
	return &processor{
		jobs:      jobs,
		documents: documents,
		vectors:   vectors,
		embedder:  embedder,
		fetcher:   fetcher,
		chunker:   chunker,
		logger:    logger,
	}
}

// handle is the process-document workflow handler.
func (p *processor) handle(ctx context.Context, run *workflow.Run, payload []byte) error {
	var req processDocumentPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	doc, err := workflow.Step(run, "get-document", func() (*core.Document, error) {
		doc, err := p.documents.GetDocument(ctx, req.DocumentId)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return doc, err
	})
	if err != nil {
		return err
	}
	if doc == nil {
		// Deleted between enqueue and execution.
		p.logger.Info("document gone, skipping processing", "document", req.DocumentId)
		return nil
	}
	if doc.Status == core.DocumentStatusDeleting {
		p.logger.Info("document queued for delete, skipping processing", "document", doc.Id)
		return nil
	}

	if err := workflow.StepDo(run, "update-status-processing", func() error {
		return p.documents.SetDocumentsStatus(ctx, core.DocumentStatusProcessing, doc.Id)
	}); err != nil {
		return err
	}

	text, err := workflow.Step(run, "fetch-content", func() (string, error) {
		var text string
		err := workflow.RetryWithBackoff(ctx, func() error {
			var fetchErr error
			text, fetchErr = p.fetcher.Fetch(ctx, doc.Source)
			return fetchErr
		}, remoteMaxAttempts, remoteBaseDelay)
		return text, err
	})
	if err != nil {
		return err
	}

	totals, err := workflow.Step(run, "embed-and-upsert", func() (core.DocumentTotals, error) {
		return p.embedAndUpsert(ctx, doc, text)
	})
	if err != nil {
		return err
	}

	if err := workflow.StepDo(run, "update-document-completed", func() error {
		err := p.documents.SetDocumentCompleted(ctx, doc.Id, totals)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}); err != nil {
		return err
	}

	return workflow.StepDo(run, "maybe-complete-job", func() error {
		return p.maybeCompleteJob(ctx, doc.IngestJobId)
	})
}

// maybeCompleteJob marks the job COMPLETED once every one of its documents
// is. Concurrent last-finishers both observe the same terminal state, so a
// duplicate transition is harmless.
func (p *processor) maybeCompleteJob(ctx context.Context, jobID core.ID) error {
	job, err := p.jobs.GetJob(ctx, jobID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if job.Status != core.JobStatusProcessing {
		return nil
	}

	ids, err := p.documents.ListDocumentIDs(ctx, jobID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		d, err := p.documents.GetDocument(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if d.Status != core.DocumentStatusCompleted {
			return nil
		}
	}

	err = p.jobs.SetJobStatus(ctx, jobID, core.JobStatusCompleted, time.Now().UTC())
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}

// embedAndUpsert chunks, embeds, and stores the document's content, returning
// the measured totals. Chunk vector ids are deterministic so a replay
// overwrites instead of duplicating.
func (p *processor) embedAndUpsert(ctx context.Context, doc *core.Document, text string) (core.DocumentTotals, error) {
	var totals core.DocumentTotals
	totals.Characters = len(text)
	// Rough token and page estimates; good enough for quota accounting.
	totals.Tokens = len(text) / 4
	totals.Pages = (len(text) + charsPerPage - 1) / charsPerPage

	chunks := p.chunker.Chunk(text)
	totals.Chunks = len(chunks)
	if len(chunks) == 0 {
		return totals, nil
	}

	var vectors [][]float32
	err := workflow.RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = p.embedder.EmbedTexts(ctx, chunks)
		return embedErr
	}, remoteMaxAttempts, remoteBaseDelay)
	if err != nil {
		return totals, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return totals, fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(chunks))
	}

	entries := make([]*core.VectorEntry, len(chunks))
	for i, chunk := range chunks {
		id := chunkVectorID(doc.Id, i)
		node := &core.ContentNode{
			Id:   id,
			Text: chunk,
		}
		if doc.Name != "" {
			node.Metadata = map[string]any{"documentName": doc.Name}
		}
		encoded, err := core.EncodeContentNode(node)
		if err != nil {
			return totals, fmt.Errorf("encode node: %w", err)
		}

		entries[i] = &core.VectorEntry{
			Id:     id,
			Vector: vectors[i],
			Metadata: map[string]string{
				core.MetadataNodeContent: encoded,
				core.MetadataDocumentId:  strconv.FormatUint(uint64(doc.Id), 10),
			},
		}
	}

	partition := core.Partition(doc.NamespaceId, doc.TenantId)
	if err := p.vectors.Upsert(ctx, partition, entries...); err != nil {
		return totals, fmt.Errorf("upsert vectors: %w", err)
	}

	p.logger.Debug("document chunks indexed",
		"document", doc.Id, "partition", partition, "chunks", len(chunks))
	return totals, nil
}

// onFailure marks the document FAILED after a processing run fails.
// A document deleted mid-flight is not an error.
func (p *processor) onFailure(ctx context.Context, runID string, payload []byte, cause error) {
	var req processDocumentPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		p.logger.Error("failed to decode payload in failure handler", "run", runID, "err", err)
		return
	}

	p.logger.Error("document processing failed", "document", req.DocumentId, "run", runID, "err", cause)
	if err := p.documents.SetDocumentsStatus(ctx, core.DocumentStatusFailed, req.DocumentId); err != nil {
		p.logger.Error("failed to mark document failed", "document", req.DocumentId, "err", err)
	}
}

// chunkVectorID is the deterministic vector id of one document chunk.
func chunkVectorID(docID core.ID, index int) string {
	return strconv.FormatUint(uint64(docID), 10) + "#" + strconv.Itoa(index)
}
