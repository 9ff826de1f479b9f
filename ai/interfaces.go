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

package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// RerankCandidate is one retrieval result submitted for re-ranking.
type RerankCandidate struct {
	// Id identifies the candidate; it is echoed back in the result.
	Id string

	// Text is the candidate's content as scored by the re-ranking service.
	Text string
}

// RerankResult is one re-ranked candidate. Results come back in relevance
// order on the service's own score scale, which must not be compared to
// vector similarity scores.
type RerankResult struct {
	// Id is the candidate id this result refers to.
	Id string

	// RerankScore is the service's relevance score for the candidate.
	RerankScore float32
}

// Reranker reorders retrieval candidates by relevance to a query.
// Implementations must be thread-safe for concurrent use.
type Reranker interface {
	// Rerank scores candidates against the query and returns up to limit
	// results in descending relevance order. The returned ids are always a
	// subset of the candidate ids.
	Rerank(ctx context.Context, query string, candidates []RerankCandidate, limit int) ([]RerankResult, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Reranker instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Reranker returns the re-ranking service.
	// The returned Reranker is safe for concurrent use.
	Reranker() Reranker

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
