package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/knowledge"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/log"
)

// captureIndexer records every batch handed to the index.
type captureIndexer struct {
	mu      sync.Mutex
	batches [][]knowledge.Document
	err     error
}

func (c *captureIndexer) AddBatch(_ context.Context, docs []knowledge.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.batches = append(c.batches, docs)
	return nil
}

func (c *captureIndexer) all() []knowledge.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []knowledge.Document
	for _, b := range c.batches {
		out = append(out, b...)
	}
	return out
}

// writeFixtures creates empty .pdf placeholder files; the stubbed
// extractor supplies their content.
func writeFixtures(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0o644))
	}
	return dir
}

func stubExtract(texts map[string]string) ExtractFunc {
	return func(path string) (string, int, error) {
		name := filepath.Base(path)
		text, ok := texts[name]
		if !ok {
			return "", 0, fmt.Errorf("unreadable: %s", name)
		}
		return text, 1, nil
	}
}

func TestRunIndexesAllDocuments(t *testing.T) {
	dir := writeFixtures(t, "a.pdf", "b.pdf", "notes.txt")
	store := &captureIndexer{}
	extract := stubExtract(map[string]string{
		"a.pdf": strings.Repeat("x", 1000),
		"b.pdf": "tiny",
	})

	p := NewPipeline(store, Config{DataDirectory: dir, ChunkSize: 500, ChunkOverlap: 20}, extract, log.NewNop())
	res, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.FilesIndexed)
	assert.Equal(t, 0, res.FilesSkipped)
	assert.Equal(t, 4, res.ChunksIndexed) // 3 chunks for a.pdf + 1 for b.pdf

	docs := p.Documents()
	require.Len(t, docs, 2)
	// Listing order is sorted by name, so a.pdf is first.
	assert.Equal(t, "a.pdf", docs[0].Name)
	assert.Equal(t, "PDF", docs[0].Type)
	assert.Equal(t, 3, docs[0].Chunks)
	assert.Equal(t, "b.pdf", docs[1].Name)
	assert.Equal(t, 1, docs[1].Chunks)
	assert.True(t, strings.HasPrefix(docs[0].ID, "doc-"))
}

func TestRunChunkMetadata(t *testing.T) {
	dir := writeFixtures(t, "a.pdf")
	store := &captureIndexer{}
	extract := stubExtract(map[string]string{"a.pdf": strings.Repeat("y", 1000)})

	p := NewPipeline(store, Config{DataDirectory: dir, ChunkSize: 500, ChunkOverlap: 20}, extract, log.NewNop())
	_, err := p.Run(context.Background())
	require.NoError(t, err)

	chunks := store.all()
	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		assert.Equal(t, "a.pdf", chunk.Metadata["doc_name"])
		assert.Equal(t, fmt.Sprintf("%d", i), chunk.Metadata["chunk"])
		assert.True(t, strings.HasSuffix(chunk.ID, fmt.Sprintf(":%d", i)))
	}
}

func TestRunSkipsUnparseableFile(t *testing.T) {
	dir := writeFixtures(t, "good.pdf", "corrupt.pdf")
	store := &captureIndexer{}
	extract := stubExtract(map[string]string{"good.pdf": "readable content"})

	p := NewPipeline(store, Config{DataDirectory: dir, ChunkSize: 500, ChunkOverlap: 20}, extract, log.NewNop())
	res, err := p.Run(context.Background())
	require.NoError(t, err, "a bad file must not abort the pipeline")

	assert.Equal(t, 1, res.FilesIndexed)
	assert.Equal(t, 1, res.FilesSkipped)

	docs := p.Documents()
	require.Len(t, docs, 1)
	assert.Equal(t, "good.pdf", docs[0].Name)
}

func TestRunSkipsFileWhenIndexingFails(t *testing.T) {
	dir := writeFixtures(t, "a.pdf")
	store := &captureIndexer{err: errors.New("embedder down")}
	extract := stubExtract(map[string]string{"a.pdf": "content"})

	p := NewPipeline(store, Config{DataDirectory: dir, ChunkSize: 500, ChunkOverlap: 20}, extract, log.NewNop())
	res, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, res.FilesIndexed)
	assert.Equal(t, 1, res.FilesSkipped)
	assert.Empty(t, p.Documents())
}

func TestRunEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	store := &captureIndexer{}

	p := NewPipeline(store, Config{DataDirectory: dir, ChunkSize: 500, ChunkOverlap: 20}, stubExtract(nil), log.NewNop())
	res, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, res.FilesIndexed)
	assert.Empty(t, store.batches)
}

func TestRunMissingDirectory(t *testing.T) {
	store := &captureIndexer{}

	p := NewPipeline(store, Config{DataDirectory: "/nonexistent/dir", ChunkSize: 500, ChunkOverlap: 20}, stubExtract(nil), log.NewNop())
	res, err := p.Run(context.Background())
	require.NoError(t, err, "missing data directory degrades to empty index")
	assert.Equal(t, 0, res.FilesIndexed)
}
