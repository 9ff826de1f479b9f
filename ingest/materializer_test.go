package ingest

import (
	"fmt"
	"testing"

	"github.com/quarrylabs/quarry/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textJob(id core.ID, text string) *core.IngestJob {
	return &core.IngestJob{
		Id:          id,
		NamespaceId: 1,
		Payload:     core.Payload{Type: core.PayloadTypeText, Name: "note", Text: text},
	}
}

func TestMaterializeTextPayload(t *testing.T) {
	docs, err := MaterializeDocuments(textJob(7, "hello world"))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, core.SourceTypeText, doc.Source.Type)
	assert.Equal(t, "hello world", doc.Source.Text)
	assert.Equal(t, 11, doc.TotalCharacters)
	assert.Equal(t, "note", doc.Name)
	assert.Equal(t, core.ID(7), doc.IngestJobId)
	assert.Equal(t, core.DocumentStatusQueued, doc.Status)
}

func TestMaterializeURLsBecomeFileSources(t *testing.T) {
	job := &core.IngestJob{
		Id:          3,
		NamespaceId: 1,
		Payload: core.Payload{
			Type: core.PayloadTypeURLs,
			URLs: []string{"https://example.com/a", "https://example.com/b"},
		},
	}

	docs, err := MaterializeDocuments(job)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	for i, doc := range docs {
		assert.Equal(t, core.SourceTypeFile, doc.Source.Type)
		assert.Equal(t, job.Payload.URLs[i], doc.Source.FileURL)
		assert.Equal(t, job.Payload.URLs[i], doc.Name)
	}
}

func TestMaterializeManagedFilesNames(t *testing.T) {
	job := &core.IngestJob{
		Id:          4,
		NamespaceId: 1,
		Payload: core.Payload{
			Type: core.PayloadTypeManagedFiles,
			Files: []core.FileRef{
				{Key: "a.txt", Name: "Alpha"},
				{Key: "b.txt"},
			},
		},
	}

	docs, err := MaterializeDocuments(job)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Alpha", docs[0].Name)
	assert.Equal(t, "b.txt", docs[1].Name)
	assert.Equal(t, core.SourceTypeManagedFile, docs[0].Source.Type)
}

func TestMaterializeIsDeterministic(t *testing.T) {
	job := textJob(9, "same content")

	first, err := MaterializeDocuments(job)
	require.NoError(t, err)
	second, err := MaterializeDocuments(job)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Id, second[i].Id)
	}
}

func TestMaterializeDistinctIDsForDuplicateItems(t *testing.T) {
	job := &core.IngestJob{
		Id:          5,
		NamespaceId: 1,
		Payload: core.Payload{
			Type: core.PayloadTypeURLs,
			URLs: []string{"https://example.com/same", "https://example.com/same"},
		},
	}

	docs, err := MaterializeDocuments(job)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.NotEqual(t, docs[0].Id, docs[1].Id)
}

func TestChunkByBatchSizes(t *testing.T) {
	files := make([]core.FileRef, 45)
	for i := range files {
		files[i] = core.FileRef{Key: fmt.Sprintf("file-%d.txt", i)}
	}

	docs, err := MaterializeDocuments(&core.IngestJob{
		Id:          6,
		NamespaceId: 1,
		Payload:     core.Payload{Type: core.PayloadTypeManagedFiles, Files: files},
	})
	require.NoError(t, err)
	require.Len(t, docs, 45)

	batches := chunkBy(docs, createBatchSize)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 20)
	assert.Len(t, batches[1], 20)
	assert.Len(t, batches[2], 5)
}

func TestChunkByEmpty(t *testing.T) {
	assert.Nil(t, chunkBy([]int(nil), 20))
	assert.Nil(t, chunkBy([]int{1, 2, 3}, 0))
}

func TestMaterializeRejectsInvalidPayload(t *testing.T) {
	_, err := MaterializeDocuments(&core.IngestJob{
		Id:          8,
		NamespaceId: 1,
		Payload:     core.Payload{Type: core.PayloadTypeText, Text: ""},
	})
	assert.Error(t, err)
}
