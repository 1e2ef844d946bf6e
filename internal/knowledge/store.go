package knowledge

import (
	"context"
	"fmt"
	"runtime"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/log"
)

// collectionName is the single chromem-go collection backing the index.
const collectionName = "documents"

// Store manages document chunks with vector search capabilities.
// The index is built once at startup and only read afterwards; chromem-go
// collections are safe for unsynchronized concurrent reads.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	collection *chromem.Collection
	embedder   Embedder
	logger     log.Logger
}

// NewStore creates a Store with an empty in-memory collection.
//
// Parameters:
//   - embedder: generates vector embeddings (the Hugging Face client)
//   - logger: logger for debugging (nil = nop)
func NewStore(embedder Embedder, logger log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.NewNop()
	}

	db := chromem.NewDB()
	collection, err := db.CreateCollection(collectionName, nil, NewEmbeddingFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}

	return &Store{
		collection: collection,
		embedder:   embedder,
		logger:     logger,
	}, nil
}

// Add embeds and indexes a single document.
func (s *Store) Add(ctx context.Context, doc Document) error {
	return s.AddBatch(ctx, []Document{doc})
}

// AddBatch embeds all documents with one embedder call and indexes them.
// Batching keeps startup ingestion at one inference request per document
// instead of one per chunk.
func (s *Store) AddBatch(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("generating embeddings: %w", err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("embedding count mismatch: %d vectors for %d documents",
			len(vectors), len(docs))
	}

	chromemDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromemDocs[i] = chromem.Document{
			ID:        doc.ID,
			Content:   doc.Content,
			Metadata:  doc.Metadata,
			Embedding: vectors[i],
		}
	}

	if err := s.collection.AddDocuments(ctx, chromemDocs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("indexing documents: %w", err)
	}

	s.logger.Debug("indexed documents", "count", len(docs))
	return nil
}

// Search returns the k most similar documents to the query, ordered by
// cosine similarity. k is clamped to the collection size; an empty index
// yields an empty result, not an error.
func (s *Store) Search(ctx context.Context, query string, k int) ([]Result, error) {
	count := s.collection.Count()
	if count == 0 || k <= 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	start := time.Now()
	rows, err := s.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	results := make([]Result, len(rows))
	for i, row := range rows {
		results[i] = Result{
			Document: Document{
				ID:       row.ID,
				Content:  row.Content,
				Metadata: row.Metadata,
			},
			Similarity: row.Similarity,
		}
	}

	s.logger.Debug("vector search completed",
		"k", k, "results", len(results), "duration", time.Since(start))
	return results, nil
}

// Count returns the number of indexed documents.
func (s *Store) Count() int {
	return s.collection.Count()
}
