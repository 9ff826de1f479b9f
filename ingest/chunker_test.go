package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkEmptyText(t *testing.T) {
	c := NewChunker(5, 1)
	assert.Nil(t, c.Chunk(""))
	assert.Nil(t, c.Chunk("   \n\t  "))
}

func TestChunkNoTerminatorSingleChunk(t *testing.T) {
	c := NewChunker(5, 1)
	chunks := c.Chunk("just a fragment without punctuation")
	require.Len(t, chunks, 1)
	assert.Equal(t, "just a fragment without punctuation", chunks[0])
}

func TestChunkGroupsSentences(t *testing.T) {
	c := NewChunker(2, 0)
	chunks := c.Chunk("One. Two. Three. Four.")
	require.Len(t, chunks, 2)
	assert.Equal(t, "One. Two.", chunks[0])
	assert.Equal(t, "Three. Four.", chunks[1])
}

func TestChunkOverlapRepeatsBoundarySentence(t *testing.T) {
	c := NewChunker(2, 1)
	chunks := c.Chunk("One. Two. Three.")
	require.Len(t, chunks, 2)
	assert.Equal(t, "One. Two.", chunks[0])
	assert.Equal(t, "Two. Three.", chunks[1])
}

func TestChunkDefaults(t *testing.T) {
	c := NewChunker(0, -3)
	text := strings.Repeat("A sentence here. ", 7)
	chunks := c.Chunk(text)
	require.Len(t, chunks, 2)
	assert.Equal(t, strings.TrimSpace(strings.Repeat("A sentence here. ", 5)), chunks[0])
}
