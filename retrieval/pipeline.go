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

package retrieval

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/quarrylabs/quarry/ai"
	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/storage"
)

// DefaultTopK is the result count used when the caller does not set one.
const DefaultTopK = 10

// QueryOptions tunes one retrieval query. The zero value asks for the top
// DefaultTopK matches with no score floor and no re-ranking.
type QueryOptions struct {
	// TopK bounds how many matches are retrieved. Non-positive means
	// DefaultTopK.
	TopK int

	// MinScore, when set, drops matches scoring below it. The comparison is
	// inclusive: a match scoring exactly *MinScore is kept. Nil applies no
	// floor, so even negative-similarity matches survive.
	MinScore *float32

	// Filter restricts matches to entries whose metadata contains every
	// given key/value pair.
	Filter map[string]string

	// TenantId scopes the query to a tenant partition. Empty queries the
	// namespace's unscoped partition.
	TenantId string

	// IncludeMetadata copies each node's metadata into the result.
	IncludeMetadata bool

	// IncludeRelationships copies each node's relationships into the result.
	IncludeRelationships bool

	// Rerank reorders the matches with the re-ranking service.
	Rerank bool

	// RerankLimit bounds how many results survive re-ranking.
	// Non-positive means TopK.
	RerankLimit int
}

// Result is one retrieved chunk.
type Result struct {
	Id            string
	Text          string
	Metadata      map[string]any
	Relationships map[string]any

	// Score is the vector similarity score. It stays on the similarity
	// scale even after re-ranking.
	Score float32

	// RerankScore is the re-ranking service's relevance score. Nil when the
	// query did not re-rank. The two score scales are not comparable.
	RerankScore *float32
}

// Response is the outcome of one retrieval query.
type Response struct {
	Results []Result

	// UnorderedIds lists the result ids in their pre-rerank similarity
	// order. Populated only for re-ranked queries so callers can recover
	// the original ordering.
	UnorderedIds []string
}

// Pipeline executes semantic retrieval queries against a namespace's vector
// partition.
type Pipeline struct {
	namespaces storage.NamespaceRepository
	vectors    storage.VectorIndex
	embedder   ai.Embedder
	reranker   ai.Reranker
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a retrieval pipeline.
func NewPipeline(
	namespaces storage.NamespaceRepository,
	vectors storage.VectorIndex,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if namespaces == nil {
		return nil, ErrNamespaceRepositoryRequired
	}
	if vectors == nil {
		return nil, ErrVectorIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	p := &Pipeline{
		namespaces: namespaces,
		vectors:    vectors,
		embedder:   provider.Embedder(),
		reranker:   provider.Reranker(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Query retrieves the chunks most similar to the query text from the
// namespace's partition.
//
// Matches whose content node cannot be parsed are dropped. If the index
// returned matches but none parsed, Query fails with ErrNoParsableMatches;
// an index with no relevant entries yields an empty Response and no error.
func (p *Pipeline) Query(ctx context.Context, namespaceID core.ID, query string, opts *QueryOptions) (*Response, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if opts == nil {
		opts = &QueryOptions{}
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	// Embedding and the namespace lookup are independent round trips.
	var embedding []float32
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		embedding, err = p.embedder.EmbedText(gctx, query)
		return err
	})
	g.Go(func() error {
		_, err := p.namespaces.GetNamespace(gctx, namespaceID)
		return err
	})
	if err := g.Wait(); err != nil {
		p.logger.Error("query preparation failed", "namespace", namespaceID, "err", err)
		return nil, err
	}

	matches, err := p.vectors.Query(ctx, storage.VectorQuery{
		Partition:       core.Partition(namespaceID, opts.TenantId),
		Vector:          embedding,
		TopK:            topK,
		Filter:          opts.Filter,
		IncludeMetadata: true,
	})
	if err != nil {
		p.logger.Error("vector query failed", "namespace", namespaceID, "err", err)
		return nil, err
	}
	// The score floor applies before node parsing: a query whose matches all
	// score below the floor is an empty success, not a parse failure.
	matches = filterByScore(matches, opts.MinScore)
	if len(matches) == 0 {
		return &Response{Results: []Result{}}, nil
	}

	results := p.parseMatches(matches, opts)
	if len(results) == 0 {
		p.logger.Error("all matches dropped as unparsable", "namespace", namespaceID, "matches", len(matches))
		return nil, ErrNoParsableMatches
	}

	if !opts.Rerank {
		return &Response{Results: results}, nil
	}
	return p.rerank(ctx, query, results, topK, opts.RerankLimit)
}

// filterByScore keeps the matches scoring at or above the floor.
// A nil floor keeps everything.
func filterByScore(matches []storage.VectorMatch, minScore *float32) []storage.VectorMatch {
	if minScore == nil {
		return matches
	}
	kept := matches[:0]
	for _, match := range matches {
		if match.Score >= *minScore {
			kept = append(kept, match)
		}
	}
	return kept
}

// parseMatches decodes content nodes. Matches without a readable node are
// dropped with a warning.
func (p *Pipeline) parseMatches(matches []storage.VectorMatch, opts *QueryOptions) []Result {
	results := make([]Result, 0, len(matches))
	for _, match := range matches {
		raw, ok := match.Metadata[core.MetadataNodeContent]
		if !ok {
			p.logger.Warn("match has no content node", "id", match.Id)
			continue
		}
		node, err := core.DecodeContentNode(raw)
		if err != nil {
			p.logger.Warn("dropping match with malformed content node", "id", match.Id, "err", err)
			continue
		}

		result := Result{
			Id:    match.Id,
			Text:  node.Text,
			Score: match.Score,
		}
		if opts.IncludeMetadata {
			result.Metadata = node.Metadata
		}
		if opts.IncludeRelationships {
			result.Relationships = node.Relationships
		}
		results = append(results, result)
	}
	return results
}

// rerank reorders results by service relevance, keeping the pre-rerank order
// in UnorderedIds. The reranker returns a subset of the submitted ids, never
// new ones.
func (p *Pipeline) rerank(ctx context.Context, query string, results []Result, topK, rerankLimit int) (*Response, error) {
	limit := rerankLimit
	if limit <= 0 {
		limit = topK
	}

	unordered := make([]string, len(results))
	byID := make(map[string]Result, len(results))
	candidates := make([]ai.RerankCandidate, len(results))
	for i, r := range results {
		unordered[i] = r.Id
		byID[r.Id] = r
		candidates[i] = ai.RerankCandidate{Id: r.Id, Text: r.Text}
	}

	ranked, err := p.reranker.Rerank(ctx, query, candidates, limit)
	if err != nil {
		p.logger.Error("rerank failed", "err", err)
		return nil, err
	}

	reordered := make([]Result, 0, len(ranked))
	for _, rr := range ranked {
		result, ok := byID[rr.Id]
		if !ok {
			p.logger.Warn("reranker returned unknown id", "id", rr.Id)
			continue
		}
		score := rr.RerankScore
		result.RerankScore = &score
		reordered = append(reordered, result)
	}

	return &Response{Results: reordered, UnorderedIds: unordered}, nil
}
