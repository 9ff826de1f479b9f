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

import "errors"

var (
	// ErrJobRepositoryRequired indicates a nil job repository was provided.
	ErrJobRepositoryRequired = errors.New("job repository is required")

	// ErrDocumentRepositoryRequired indicates a nil document repository was provided.
	ErrDocumentRepositoryRequired = errors.New("document repository is required")

	// ErrNamespaceRepositoryRequired indicates a nil namespace repository was provided.
	ErrNamespaceRepositoryRequired = errors.New("namespace repository is required")

	// ErrOrganizationRepositoryRequired indicates a nil organization repository was provided.
	ErrOrganizationRepositoryRequired = errors.New("organization repository is required")

	// ErrVectorIndexRequired indicates a nil vector index was provided.
	ErrVectorIndexRequired = errors.New("vector index is required")

	// ErrExecutorRequired indicates a nil workflow executor was provided.
	ErrExecutorRequired = errors.New("workflow executor is required")

	// ErrEmbedderRequired indicates a nil embedder was provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrFetcherRequired indicates a nil content fetcher was provided.
	ErrFetcherRequired = errors.New("content fetcher is required")

	// ErrNoManagedStore indicates a managed-file source was fetched without
	// a configured managed file root.
	ErrNoManagedStore = errors.New("no managed file store configured")
)
