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
	"math"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/storage"
)

// VectorIndex implements storage.VectorIndex for BadgerDB. Entries live under
// per-partition key prefixes, so tenant isolation holds at the key level and
// a query never touches another partition's entries.
type VectorIndex struct {
	backend *Backend
}

var _ storage.VectorIndex = (*VectorIndex)(nil)

// NewVectorIndex creates a new VectorIndex.
func NewVectorIndex(backend *Backend) *VectorIndex {
	return &VectorIndex{
		backend: backend,
	}
}

// Query returns up to TopK nearest matches in the partition, highest score
// first. Score is cosine similarity: vectors are normalized at upsert, so a
// dot product suffices.
func (v *VectorIndex) Query(ctx context.Context, q storage.VectorQuery) ([]storage.VectorMatch, error) {
	var matches []storage.VectorMatch

	err := v.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialVectorKey(q.Partition)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.VectorEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalVectorEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry == nil || len(entry.Vector) == 0 {
				continue
			}
			if !metadataMatches(entry.Metadata, q.Filter) {
				continue
			}

			match := storage.VectorMatch{
				Id:    entry.Id,
				Score: dotProduct(q.Vector, entry.Vector),
			}
			if q.IncludeMetadata {
				match.Metadata = entry.Metadata
			}
			matches = append(matches, match)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(matches, func(a, b storage.VectorMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if q.TopK > 0 && len(matches) > q.TopK {
		matches = matches[:q.TopK]
	}
	return matches, nil
}

// Upsert inserts or replaces entries in a partition. Vectors are normalized
// to unit length so query scores are cosine similarities.
func (v *VectorIndex) Upsert(ctx context.Context, partition string, entries ...*core.VectorEntry) error {
	if len(entries) == 0 {
		return nil
	}

	return v.backend.WithWriteTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			entry.Vector = NormalizeVector(entry.Vector)
			if err := tx.Set(makeVectorKey(partition, entry.Id), storage.MarshalVectorEntry(entry)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes entries by id from a partition. Missing ids are ignored.
func (v *VectorIndex) Delete(ctx context.Context, partition string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	return v.backend.WithWriteTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			if err := tx.Delete(makeVectorKey(partition, id)); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeletePartition removes an entire partition.
func (v *VectorIndex) DeletePartition(ctx context.Context, partition string) error {
	return v.backend.WithWriteTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialVectorKey(partition)
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
		return nil
	})
}

// metadataMatches reports whether every filter entry matches the metadata.
func metadataMatches(metadata, filter map[string]string) bool {
	for key, want := range filter {
		if metadata[key] != want {
			return false
		}
	}
	return true
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// NormalizeVector normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	// Can't normalize zero vector
	if magnitude == 0 {
		result := make([]float32, len(v))
		return result
	}

	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}
