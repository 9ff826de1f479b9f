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

package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/quarrylabs/quarry/ai"
)

// Reranker implements ai.Reranker using the Cohere rerank API.
type Reranker struct {
	host   string
	apiKey string
	model  string
	client *http.Client
	logger *slog.Logger
}

// Compile-time check that Reranker implements ai.Reranker.
var _ ai.Reranker = (*Reranker)(nil)

// NewReranker creates a reranker using the provided configuration.
//
// Returns ai.Reranker interface to enforce abstraction.
func NewReranker(config *ai.Config) (ai.Reranker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Reranker{
		host:   config.RerankHost,
		apiKey: config.RerankAPIKey,
		model:  config.RerankModel,
		client: &http.Client{},
		logger: slog.Default().With("component", "cohere-reranker"),
	}, nil
}

// rerankRequest is the request format for the Cohere v2 rerank API.
type rerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	TopN      int      `json:"top_n"`
}

// rerankResponse is the response format from the Cohere v2 rerank API.
type rerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float32 `json:"relevance_score"`
	} `json:"results"`
}

// Rerank scores candidates against the query and returns up to limit results
// in descending relevance order.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []ai.RerankCandidate, limit int) ([]ai.RerankResult, error) {
	if len(candidates) == 0 {
		return []ai.RerankResult{}, nil
	}
	if limit <= 0 || limit > len(candidates) {
		limit = len(candidates)
	}

	r.logger.Debug("reranking candidates", "count", len(candidates), "limit", limit)

	documents := make([]string, len(candidates))
	for i, c := range candidates {
		documents[i] = c.Text
	}

	reqBody := rerankRequest{
		Model:     r.model,
		Query:     query,
		Documents: documents,
		TopN:      limit,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.host+"/v2/rerank", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("rerank API error (status %d): %s", resp.StatusCode, string(body))
	}

	var rerankResp rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&rerankResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]ai.RerankResult, 0, len(rerankResp.Results))
	for _, res := range rerankResp.Results {
		if res.Index < 0 || res.Index >= len(candidates) {
			return nil, fmt.Errorf("invalid rerank index: %d", res.Index)
		}
		results = append(results, ai.RerankResult{
			Id:          candidates[res.Index].Id,
			RerankScore: res.RelevanceScore,
		})
	}

	return results, nil
}
