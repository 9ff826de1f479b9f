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
	"fmt"
	"strconv"

	"github.com/quarrylabs/quarry/core"
)

// MaterializeDocuments expands a job's payload into document rows, one per
// payload item. Document ids are derived from the job id and the item's
// content, so materializing the same job twice yields the same rows and a
// replayed creation batch stays idempotent.
func MaterializeDocuments(job *core.IngestJob) ([]*core.Document, error) {
	if err := core.ValidateIngestJob(job); err != nil {
		return nil, err
	}

	var sources []core.DocumentSource
	var names []string

	switch job.Payload.Type {
	case core.PayloadTypeText:
		sources = append(sources, core.DocumentSource{Type: core.SourceTypeText, Text: job.Payload.Text})
		names = append(names, job.Payload.Name)
	case core.PayloadTypeFile:
		sources = append(sources, core.DocumentSource{Type: core.SourceTypeFile, FileURL: job.Payload.FileURL})
		names = append(names, defaultName(job.Payload.Name, job.Payload.FileURL))
	case core.PayloadTypeManagedFile:
		sources = append(sources, core.DocumentSource{Type: core.SourceTypeManagedFile, Key: job.Payload.Key})
		names = append(names, defaultName(job.Payload.Name, job.Payload.Key))
	case core.PayloadTypeManagedFiles:
		for _, ref := range job.Payload.Files {
			sources = append(sources, core.DocumentSource{Type: core.SourceTypeManagedFile, Key: ref.Key})
			names = append(names, defaultName(ref.Name, ref.Key))
		}
	case core.PayloadTypeURLs:
		// URL items become plain file sources; fetching does not care how
		// the address arrived.
		for _, url := range job.Payload.URLs {
			sources = append(sources, core.DocumentSource{Type: core.SourceTypeFile, FileURL: url})
			names = append(names, url)
		}
	default:
		return nil, core.ErrUnknownPayloadType
	}

	docs := make([]*core.Document, len(sources))
	for i, source := range sources {
		doc := &core.Document{
			Id:          documentID(job.Id, source, i),
			IngestJobId: job.Id,
			NamespaceId: job.NamespaceId,
			TenantId:    job.TenantId,
			Name:        names[i],
			Source:      source,
			Status:      core.DocumentStatusQueued,
		}
		if source.Type == core.SourceTypeText {
			doc.TotalCharacters = len(source.Text)
		}
		docs[i] = doc
	}
	return docs, nil
}

// documentID derives a stable id from the owning job and the source item.
func documentID(jobID core.ID, source core.DocumentSource, index int) core.ID {
	content := fmt.Sprintf("%d|%d|%s|%s|%s|%d",
		jobID, source.Type, source.Text, source.FileURL, source.Key, index)
	return core.IDFromContent(content)
}

func defaultName(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}

// chunkBy splits items into consecutive batches of at most size elements.
// The last batch may be shorter.
func chunkBy[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}

// stepName builds an indexed durable step name like "create-documents-2".
func stepName(base string, index int) string {
	return base + "-" + strconv.Itoa(index)
}
