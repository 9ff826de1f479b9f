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
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
// Document IDs are content-derived by the caller, so there is no sequence.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	return &DocumentRepository{
		backend: backend,
	}, nil
}

// Close is a no-op; the repository holds no sequences.
func (r *DocumentRepository) Close() error {
	return nil
}

// CreateDocuments inserts documents in a single transaction. Rows that
// already exist are skipped without being re-counted, so a replayed creation
// batch is idempotent. Counter increments commit in the same transaction as
// the rows they account for.
func (r *DocumentRepository) CreateDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	var inserted []*core.Document
	err := r.backend.WithWriteTx(func(tx *badger.Txn) error {
		inserted = inserted[:0]

		for _, doc := range docs {
			existing, err := readDocument(tx, doc.Id)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}

			now := time.Now().UTC()
			doc.Status = core.DocumentStatusQueued
			doc.InsertedAt = now
			doc.UpdatedAt = now

			if err := tx.Set(makeDocumentKey(doc.Id), storage.MarshalDocument(doc)); err != nil {
				return err
			}
			if err := tx.Set(makeDocumentJobKey(doc.IngestJobId, doc.Id), storage.MarshalID(doc.Id)); err != nil {
				return err
			}
			inserted = append(inserted, doc)
		}

		if len(inserted) == 0 {
			return nil
		}
		return adjustCounters(tx, inserted[0].NamespaceId, len(inserted), 0)
	})
	if err != nil {
		return nil, err
	}

	return inserted, nil
}

// GetDocument retrieves a single document by ID.
func (r *DocumentRepository) GetDocument(ctx context.Context, id core.ID) (*core.Document, error) {
	var result *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readDocument(tx, id)
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

// ListDocumentIDs returns the IDs of all documents under an ingest job.
func (r *DocumentRepository) ListDocumentIDs(ctx context.Context, jobID core.ID) ([]core.ID, error) {
	var ids []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialDocumentJobKey(jobID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				id, err := storage.UnmarshalID(val)
				if err != nil {
					return err
				}
				ids = append(ids, id)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	return ids, err
}

// SetDocumentsStatus sets the status of all given documents in one
// transaction. Missing documents are skipped: per-document delete workflows
// race the cascade that marks them.
func (r *DocumentRepository) SetDocumentsStatus(ctx context.Context, status core.DocumentStatus, ids ...core.ID) error {
	if len(ids) == 0 {
		return nil
	}

	return r.backend.WithWriteTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			doc, err := readDocument(tx, id)
			if err != nil {
				return err
			}
			if doc == nil {
				continue
			}

			doc.Status = status
			if err := writeDocument(tx, doc); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetDocumentCompleted marks the document COMPLETED and records its totals.
// The page delta accrues onto the owning organization's TotalPages in the
// same transaction; a replayed completion with identical totals is a no-op.
func (r *DocumentRepository) SetDocumentCompleted(ctx context.Context, id core.ID, totals core.DocumentTotals) error {
	return r.backend.WithWriteTx(func(tx *badger.Txn) error {
		doc, err := readDocument(tx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return storage.ErrNotFound
		}

		pagesDelta := totals.Pages - doc.TotalPages

		doc.Status = core.DocumentStatusCompleted
		doc.TotalChunks = totals.Chunks
		doc.TotalTokens = totals.Tokens
		doc.TotalCharacters = totals.Characters
		doc.TotalPages = totals.Pages
		if err := writeDocument(tx, doc); err != nil {
			return err
		}
		return adjustOrgPages(tx, doc.NamespaceId, pagesDelta)
	})
}

// AppendDocumentWorkflowRuns appends one run id per document inside one
// transaction. Missing documents are skipped.
func (r *DocumentRepository) AppendDocumentWorkflowRuns(ctx context.Context, runs map[core.ID]string) error {
	if len(runs) == 0 {
		return nil
	}

	return r.backend.WithWriteTx(func(tx *badger.Txn) error {
		for id, runID := range runs {
			doc, err := readDocument(tx, id)
			if err != nil {
				return err
			}
			if doc == nil {
				continue
			}

			doc.WorkflowRunsIds = append(doc.WorkflowRunsIds, runID)
			if err := writeDocument(tx, doc); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteDocument removes the document row, decrements the owning namespace's
// and organization's TotalDocuments, and releases the document's pages from
// the organization's TotalPages, all in the same transaction.
func (r *DocumentRepository) DeleteDocument(ctx context.Context, id core.ID) error {
	return r.backend.WithWriteTx(func(tx *badger.Txn) error {
		doc, err := readDocument(tx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(makeDocumentKey(id)); err != nil {
			return err
		}
		if err := tx.Delete(makeDocumentJobKey(doc.IngestJobId, id)); err != nil {
			return err
		}

		if err := adjustCounters(tx, doc.NamespaceId, -1, 0); err != nil {
			return err
		}
		return adjustOrgPages(tx, doc.NamespaceId, -doc.TotalPages)
	})
}

// readDocument reads a document row inside a transaction.
// Returns nil, nil if the row does not exist.
func readDocument(tx *badger.Txn, id core.ID) (*core.Document, error) {
	item, err := tx.Get(makeDocumentKey(id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}
	var doc *core.Document
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		doc, unmarshalErr = storage.UnmarshalDocument(val)
		return unmarshalErr
	})
	return doc, err
}

// writeDocument writes a document row inside a transaction, stamping UpdatedAt.
func writeDocument(tx *badger.Txn, doc *core.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	return tx.Set(makeDocumentKey(doc.Id), storage.MarshalDocument(doc))
}
