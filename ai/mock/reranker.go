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

package mock

import (
	"context"

	"github.com/quarrylabs/quarry/ai"
)

// MockReranker is a test double for ai.Reranker.
// It allows custom behavior injection via function fields.
type MockReranker struct {
	// RerankFunc is called by Rerank if set.
	// If nil, uses default behavior that preserves candidate order.
	RerankFunc func(ctx context.Context, query string, candidates []ai.RerankCandidate, limit int) ([]ai.RerankResult, error)

	callCount int
}

// NewMockReranker creates a mock reranker with default pass-through behavior.
// Note: Returns concrete type to allow test assertions via GetMockReranker().
func NewMockReranker() *MockReranker {
	return &MockReranker{}
}

// Rerank returns up to limit candidates in their submitted order with
// descending synthetic scores.
func (m *MockReranker) Rerank(ctx context.Context, query string, candidates []ai.RerankCandidate, limit int) ([]ai.RerankResult, error) {
	m.callCount++

	if m.RerankFunc != nil {
		return m.RerankFunc(ctx, query, candidates, limit)
	}

	if limit <= 0 || limit > len(candidates) {
		limit = len(candidates)
	}

	results := make([]ai.RerankResult, limit)
	for i := 0; i < limit; i++ {
		results[i] = ai.RerankResult{
			Id:          candidates[i].Id,
			RerankScore: 1.0 - float32(i)/float32(len(candidates)+1),
		}
	}
	return results, nil
}

// CallCount returns the number of times Rerank was called.
func (m *MockReranker) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockReranker) Reset() {
	m.callCount = 0
	m.RerankFunc = nil
}
