// Package knowledge provides the vector index over document chunks.
//
// The index itself is an embedded chromem-go collection: vector math,
// normalization and nearest-neighbor search are the library's job. This
// package only adapts chunks in and results out, and delegates embedding
// generation to an injected Embedder.
package knowledge

import (
	"context"
	"time"
)

// Document represents one indexed chunk of text.
// Metadata must be map[string]string to comply with chromem-go requirements.
type Document struct {
	ID       string            // Unique identifier (stable per source+chunk index)
	Content  string            // Chunk text content
	Metadata map[string]string // Optional metadata (doc_name, chunk index, etc.)
	CreateAt time.Time         // Creation timestamp
}

// Result represents a single search result with similarity score.
type Result struct {
	Document   Document
	Similarity float32 // Cosine similarity score (0-1)
}

// Embedder converts texts into embedding vectors, one vector per input.
// Defined here by the consumer; the Hugging Face client satisfies it.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
