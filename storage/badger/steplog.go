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

// StepLogRepository implements storage.StepLogRepository for BadgerDB.
type StepLogRepository struct {
	backend *Backend
}

var _ storage.StepLogRepository = (*StepLogRepository)(nil)

// NewStepLogRepository creates a new StepLogRepository.
func NewStepLogRepository(backend *Backend) *StepLogRepository {
	return &StepLogRepository{
		backend: backend,
	}
}

// SaveStep persists a step record for a run. The result and the completion
// marker are one value under one key, so they commit atomically.
func (r *StepLogRepository) SaveStep(ctx context.Context, step *core.StepRecord) error {
	return r.backend.WithWriteTx(func(tx *badger.Txn) error {
		step.UpdatedAt = time.Now().UTC()
		return tx.Set(makeStepKey(step.RunId, step.Name), storage.MarshalStepRecord(step))
	})
}

// LoadStep retrieves the step record for (runID, name).
// Returns nil, nil if no record exists.
func (r *StepLogRepository) LoadStep(ctx context.Context, runID, name string) (*core.StepRecord, error) {
	var step *core.StepRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeStepKey(runID, name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			step, unmarshalErr = storage.UnmarshalStepRecord(val)
			return unmarshalErr
		})
	}, false)

	return step, err
}

// SaveRun persists a workflow run record.
func (r *StepLogRepository) SaveRun(ctx context.Context, run *core.RunRecord) error {
	return r.backend.WithWriteTx(func(tx *badger.Txn) error {
		return tx.Set(makeRunKey(run.Id), storage.MarshalRunRecord(run))
	})
}

// LoadRun retrieves a run record. Returns nil, nil if no record exists.
func (r *StepLogRepository) LoadRun(ctx context.Context, runID string) (*core.RunRecord, error) {
	var run *core.RunRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRunKey(runID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			run, unmarshalErr = storage.UnmarshalRunRecord(val)
			return unmarshalErr
		})
	}, false)

	return run, err
}

// ListRuns returns every run record currently in the given status.
func (r *StepLogRepository) ListRuns(ctx context.Context, status core.RunStatus) ([]*core.RunRecord, error) {
	var runs []*core.RunRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(runRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				run, err := storage.UnmarshalRunRecord(val)
				if err != nil {
					return err
				}
				if run.Status == status {
					runs = append(runs, run)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	return runs, err
}

// DeleteRun removes a run record and all of its step records.
func (r *StepLogRepository) DeleteRun(ctx context.Context, runID string) error {
	return r.backend.WithWriteTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialStepKey(runID)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Delete(makeRunKey(runID))
	})
}
