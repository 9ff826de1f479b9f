package badger

import (
	"context"
	"testing"

	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/storage"
)

func TestVectorQueryOrdersByScore(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()

	err := stores.Vectors.Upsert(ctx, "quarry:1",
		&core.VectorEntry{Id: "close", Vector: []float32{1, 0}},
		&core.VectorEntry{Id: "mid", Vector: []float32{0.7, 0.7}},
		&core.VectorEntry{Id: "far", Vector: []float32{0, 1}},
	)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	matches, err := stores.Vectors.Query(ctx, storage.VectorQuery{
		Partition: "quarry:1",
		Vector:    []float32{1, 0},
		TopK:      3,
	})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matches))
	}
	if matches[0].Id != "close" || matches[2].Id != "far" {
		t.Errorf("Wrong order: %v, %v, %v", matches[0].Id, matches[1].Id, matches[2].Id)
	}
	if matches[0].Score <= matches[1].Score || matches[1].Score <= matches[2].Score {
		t.Errorf("Scores not descending: %v, %v, %v", matches[0].Score, matches[1].Score, matches[2].Score)
	}
}

func TestVectorQueryTopK(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()

	err := stores.Vectors.Upsert(ctx, "quarry:1",
		&core.VectorEntry{Id: "a", Vector: []float32{1, 0}},
		&core.VectorEntry{Id: "b", Vector: []float32{0.9, 0.1}},
		&core.VectorEntry{Id: "c", Vector: []float32{0, 1}},
	)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	matches, err := stores.Vectors.Query(ctx, storage.VectorQuery{
		Partition: "quarry:1",
		Vector:    []float32{1, 0},
		TopK:      2,
	})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected 2 matches, got %d", len(matches))
	}
}

func TestVectorPartitionIsolation(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()

	if err := stores.Vectors.Upsert(ctx, "quarry:1:tenant-a",
		&core.VectorEntry{Id: "a", Vector: []float32{1, 0}}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	matches, err := stores.Vectors.Query(ctx, storage.VectorQuery{
		Partition: "quarry:1:tenant-b",
		Vector:    []float32{1, 0},
		TopK:      10,
	})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Expected no cross-partition matches, got %d", len(matches))
	}
}

func TestVectorQueryMetadataFilter(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()

	err := stores.Vectors.Upsert(ctx, "quarry:1",
		&core.VectorEntry{Id: "a", Vector: []float32{1, 0}, Metadata: map[string]string{"documentId": "1"}},
		&core.VectorEntry{Id: "b", Vector: []float32{0.9, 0.1}, Metadata: map[string]string{"documentId": "2"}},
	)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	matches, err := stores.Vectors.Query(ctx, storage.VectorQuery{
		Partition:       "quarry:1",
		Vector:          []float32{1, 0},
		TopK:            10,
		Filter:          map[string]string{"documentId": "2"},
		IncludeMetadata: true,
	})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Id != "b" {
		t.Errorf("Filter returned wrong matches: %v", matches)
	}
	if matches[0].Metadata["documentId"] != "2" {
		t.Errorf("Metadata not included: %v", matches[0].Metadata)
	}
}

func TestVectorDelete(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()

	err := stores.Vectors.Upsert(ctx, "quarry:1",
		&core.VectorEntry{Id: "a", Vector: []float32{1, 0}},
		&core.VectorEntry{Id: "b", Vector: []float32{0, 1}},
	)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	// Missing ids are ignored.
	if err := stores.Vectors.Delete(ctx, "quarry:1", "a", "ghost"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	matches, err := stores.Vectors.Query(ctx, storage.VectorQuery{
		Partition: "quarry:1",
		Vector:    []float32{1, 0},
		TopK:      10,
	})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Id != "b" {
		t.Errorf("Expected only b to remain, got %v", matches)
	}
}

func TestVectorDeletePartition(t *testing.T) {
	stores := newMemoryStores(t)
	ctx := context.Background()

	if err := stores.Vectors.Upsert(ctx, "quarry:1",
		&core.VectorEntry{Id: "a", Vector: []float32{1, 0}}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := stores.Vectors.Upsert(ctx, "quarry:2",
		&core.VectorEntry{Id: "b", Vector: []float32{1, 0}}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if err := stores.Vectors.DeletePartition(ctx, "quarry:1"); err != nil {
		t.Fatalf("DeletePartition failed: %v", err)
	}

	gone, err := stores.Vectors.Query(ctx, storage.VectorQuery{
		Partition: "quarry:1", Vector: []float32{1, 0}, TopK: 10,
	})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(gone) != 0 {
		t.Errorf("Expected partition to be empty, got %d matches", len(gone))
	}

	kept, err := stores.Vectors.Query(ctx, storage.VectorQuery{
		Partition: "quarry:2", Vector: []float32{1, 0}, TopK: 10,
	})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(kept) != 1 {
		t.Errorf("Expected other partition untouched, got %d matches", len(kept))
	}
}
