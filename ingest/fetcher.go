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

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/quarrylabs/quarry/core"
)

// Fetcher resolves a document source to its text content.
// Implementations must be thread-safe for concurrent use.
type Fetcher interface {
	// Fetch returns the text content of the source.
	Fetch(ctx context.Context, source core.DocumentSource) (string, error)
}

// FileFetcher resolves sources against HTTP URLs and a local managed-file
// root. Text sources are returned verbatim.
type FileFetcher struct {
	client *http.Client
	root   string // managed file root directory, empty disables key lookups
}

var _ Fetcher = (*FileFetcher)(nil)

// NewFileFetcher creates a fetcher. root is the directory holding managed
// files addressed by storage key; pass "" when managed files are not used.
func NewFileFetcher(root string) *FileFetcher {
	return &FileFetcher{
		client: &http.Client{},
		root:   root,
	}
}

// Fetch returns the text content of the source.
func (f *FileFetcher) Fetch(ctx context.Context, source core.DocumentSource) (string, error) {
	switch source.Type {
	case core.SourceTypeText:
		return source.Text, nil
	case core.SourceTypeFile:
		return f.fetchURL(ctx, source.FileURL)
	case core.SourceTypeManagedFile:
		if f.root == "" {
			return "", ErrNoManagedStore
		}
		raw, err := os.ReadFile(filepath.Join(f.root, filepath.Clean(source.Key)))
		if err != nil {
			return "", fmt.Errorf("read managed file %q: %w", source.Key, err)
		}
		return string(raw), nil
	default:
		return "", core.ErrUnknownSourceType
	}
}

func (f *FileFetcher) fetchURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %q: status %d", url, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %q: %w", url, err)
	}
	return string(raw), nil
}
