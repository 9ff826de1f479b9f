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

// NamespaceRepository implements storage.NamespaceRepository for BadgerDB.
type NamespaceRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.NamespaceRepository = (*NamespaceRepository)(nil)

// NewNamespaceRepository creates a new NamespaceRepository.
func NewNamespaceRepository(backend *Backend) (*NamespaceRepository, error) {
	idSeq, err := backend.Sequence(nsIDSeq)
	if err != nil {
		return nil, err
	}

	return &NamespaceRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *NamespaceRepository) Close() error {
	return r.idSeq.Release()
}

// CreateNamespace inserts a namespace and increments the owning
// organization's TotalNamespaces in the same transaction.
func (r *NamespaceRepository) CreateNamespace(ctx context.Context, ns *core.Namespace) (*core.Namespace, error) {
	err := r.backend.WithWriteTx(func(tx *badger.Txn) error {
		org, err := readOrganization(tx, ns.OrganizationId)
		if err != nil {
			return err
		}
		if org == nil {
			return storage.ErrNotFound
		}

		if ns.Id == 0 {
			nextID, err := nextSequenceID(r.idSeq)
			if err != nil {
				return err
			}
			ns.Id = core.ID(nextID)
		}
		ns.InsertedAt = time.Now().UTC()
		ns.UpdatedAt = ns.InsertedAt

		if err := tx.Set(makeNamespaceKey(ns.Id), storage.MarshalNamespace(ns)); err != nil {
			return err
		}
		if err := tx.Set(makeNamespaceOrgKey(ns.OrganizationId, ns.Id), storage.MarshalID(ns.Id)); err != nil {
			return err
		}

		org.TotalNamespaces++
		return writeOrganization(tx, org)
	})

	return ns, err
}

// GetNamespace retrieves a namespace by ID.
func (r *NamespaceRepository) GetNamespace(ctx context.Context, id core.ID) (*core.Namespace, error) {
	var result *core.Namespace
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readNamespace(tx, id)
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

// DeleteNamespaceIfEmpty deletes the namespace iff no ingest jobs remain
// under it. The emptiness check and the delete commit in one transaction, so
// a concurrent job creation conflicts instead of being silently orphaned.
func (r *NamespaceRepository) DeleteNamespaceIfEmpty(ctx context.Context, id core.ID) (bool, error) {
	deleted := false
	err := r.backend.WithWriteTx(func(tx *badger.Txn) error {
		deleted = false

		ns, err := readNamespace(tx, id)
		if err != nil {
			return err
		}
		if ns == nil {
			return storage.ErrNotFound
		}

		empty, err := prefixEmpty(tx, makePartialJobNamespaceKey(id))
		if err != nil {
			return err
		}
		if !empty {
			return nil
		}

		if err := tx.Delete(makeNamespaceKey(id)); err != nil {
			return err
		}
		if err := tx.Delete(makeNamespaceOrgKey(ns.OrganizationId, id)); err != nil {
			return err
		}

		// The owning organization may already be gone when two cascades race.
		org, err := readOrganization(tx, ns.OrganizationId)
		if err != nil {
			return err
		}
		if org != nil {
			org.TotalNamespaces--
			if err := writeOrganization(tx, org); err != nil {
				return err
			}
		}

		deleted = true
		return nil
	})
	return deleted, err
}

// OrganizationRepository implements storage.OrganizationRepository for BadgerDB.
type OrganizationRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.OrganizationRepository = (*OrganizationRepository)(nil)

// NewOrganizationRepository creates a new OrganizationRepository.
func NewOrganizationRepository(backend *Backend) (*OrganizationRepository, error) {
	idSeq, err := backend.Sequence(orgIDSeq)
	if err != nil {
		return nil, err
	}

	return &OrganizationRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *OrganizationRepository) Close() error {
	return r.idSeq.Release()
}

// CreateOrganization inserts a new organization.
func (r *OrganizationRepository) CreateOrganization(ctx context.Context, org *core.Organization) (*core.Organization, error) {
	err := r.backend.WithWriteTx(func(tx *badger.Txn) error {
		if org.Id == 0 {
			nextID, err := nextSequenceID(r.idSeq)
			if err != nil {
				return err
			}
			org.Id = core.ID(nextID)
		}
		org.InsertedAt = time.Now().UTC()
		org.UpdatedAt = org.InsertedAt

		return writeOrganization(tx, org)
	})
	return org, err
}

// GetOrganization retrieves an organization by ID.
func (r *OrganizationRepository) GetOrganization(ctx context.Context, id core.ID) (*core.Organization, error) {
	var result *core.Organization
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readOrganization(tx, id)
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

// DeleteOrganizationIfEmpty deletes the organization iff no namespaces remain
// under it. Returns ErrAlreadyDeleted when the row is gone so duplicate
// cascades can treat the outcome as success.
func (r *OrganizationRepository) DeleteOrganizationIfEmpty(ctx context.Context, id core.ID) (bool, error) {
	deleted := false
	err := r.backend.WithWriteTx(func(tx *badger.Txn) error {
		deleted = false

		org, err := readOrganization(tx, id)
		if err != nil {
			return err
		}
		if org == nil {
			return storage.ErrAlreadyDeleted
		}

		empty, err := prefixEmpty(tx, makePartialNamespaceOrgKey(id))
		if err != nil {
			return err
		}
		if !empty {
			return nil
		}

		if err := tx.Delete(makeOrgKey(id)); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

// readNamespace reads a namespace row inside a transaction.
// Returns nil, nil if the row does not exist.
func readNamespace(tx *badger.Txn, id core.ID) (*core.Namespace, error) {
	item, err := tx.Get(makeNamespaceKey(id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}
	var ns *core.Namespace
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		ns, unmarshalErr = storage.UnmarshalNamespace(val)
		return unmarshalErr
	})
	return ns, err
}

// writeNamespace writes a namespace row inside a transaction, stamping UpdatedAt.
func writeNamespace(tx *badger.Txn, ns *core.Namespace) error {
	ns.UpdatedAt = time.Now().UTC()
	return tx.Set(makeNamespaceKey(ns.Id), storage.MarshalNamespace(ns))
}

// readOrganization reads an organization row inside a transaction.
// Returns nil, nil if the row does not exist.
func readOrganization(tx *badger.Txn, id core.ID) (*core.Organization, error) {
	item, err := tx.Get(makeOrgKey(id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}
	var org *core.Organization
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		org, unmarshalErr = storage.UnmarshalOrganization(val)
		return unmarshalErr
	})
	return org, err
}

// writeOrganization writes an organization row inside a transaction, stamping UpdatedAt.
func writeOrganization(tx *badger.Txn, org *core.Organization) error {
	org.UpdatedAt = time.Now().UTC()
	return tx.Set(makeOrgKey(org.Id), storage.MarshalOrganization(org))
}

// adjustCounters applies deltas to a namespace's and its organization's
// document/job counters inside the caller's transaction. Either row may be
// missing mid-cascade; missing rows are skipped.
func adjustCounters(tx *badger.Txn, nsID core.ID, docDelta, jobDelta int) error {
	ns, err := readNamespace(tx, nsID)
	if err != nil {
		return err
	}
	if ns == nil {
		return nil
	}

	ns.TotalDocuments += docDelta
	ns.TotalIngestJobs += jobDelta
	if err := writeNamespace(tx, ns); err != nil {
		return err
	}

	org, err := readOrganization(tx, ns.OrganizationId)
	if err != nil {
		return err
	}
	if org == nil {
		return nil
	}

	org.TotalDocuments += docDelta
	org.TotalIngestJobs += jobDelta
	return writeOrganization(tx, org)
}

// adjustOrgPages applies a delta to the TotalPages of the organization owning
// the given namespace. Either row may be missing mid-cascade; missing rows
// are skipped.
func adjustOrgPages(tx *badger.Txn, nsID core.ID, delta int) error {
	if delta == 0 {
		return nil
	}

	ns, err := readNamespace(tx, nsID)
	if err != nil {
		return err
	}
	if ns == nil {
		return nil
	}

	org, err := readOrganization(tx, ns.OrganizationId)
	if err != nil {
		return err
	}
	if org == nil {
		return nil
	}

	org.TotalPages += delta
	return writeOrganization(tx, org)
}

// prefixEmpty reports whether no keys exist under the given prefix.
func prefixEmpty(tx *badger.Txn, prefix []byte) (bool, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	iter.Rewind()
	return !iter.Valid(), nil
}

// nextSequenceID returns the next non-zero ID from a badger sequence.
// BadgerDB sequences can return 0 on first call, so we skip it.
func nextSequenceID(seq *badger.Sequence) (uint64, error) {
	nextID, err := seq.Next()
	if err != nil {
		return 0, err
	}
	if nextID == 0 {
		nextID, err = seq.Next()
		if err != nil {
			return 0, err
		}
	}
	return nextID, nil
}
