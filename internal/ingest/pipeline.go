// Package ingest implements the startup document pipeline: scan a data
// directory for PDF files, extract their text, split it into overlapping
// chunks and hand the chunks to the vector index.
//
// Failure policy: a file that cannot be parsed is skipped with a logged
// warning; the pipeline never aborts startup over a single bad file. An
// empty or missing data directory produces an empty index and retrieval
// degrades to returning no context.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/knowledge"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/log"
)

// maxParallelExtracts bounds concurrent PDF parsing during startup.
const maxParallelExtracts = 4

// Indexer is the slice of the vector index the pipeline needs.
// knowledge.Store satisfies it.
type Indexer interface {
	AddBatch(ctx context.Context, docs []knowledge.Document) error
}

// DocumentInfo describes one ingested source document.
type DocumentInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Pages  int    `json:"pages,omitempty"`
	Chunks int    `json:"chunks"`
}

// Result summarizes an ingestion run.
type Result struct {
	FilesIndexed  int
	FilesSkipped  int
	ChunksIndexed int
	Duration      time.Duration
}

// Config holds the pipeline parameters.
type Config struct {
	DataDirectory string
	ChunkSize     int
	ChunkOverlap  int
}

// Pipeline loads PDFs and feeds chunked text into the index.
type Pipeline struct {
	store   Indexer
	extract ExtractFunc
	cfg     Config
	logger  log.Logger

	mu   sync.RWMutex
	docs []DocumentInfo
}

// NewPipeline creates a pipeline over the given index.
// extract may be nil, in which case the PDF extractor is used.
func NewPipeline(store Indexer, cfg Config, extract ExtractFunc, logger log.Logger) *Pipeline {
	if logger == nil {
		logger = log.NewNop()
	}
	if extract == nil {
		extract = ExtractPDF
	}
	return &Pipeline{
		store:   store,
		extract: extract,
		cfg:     cfg,
		logger:  logger,
	}
}

// extracted is one successfully parsed source file.
type extracted struct {
	name  string
	text  string
	pages int
}

// Run scans the data directory, extracts and chunks every PDF, and
// indexes the chunks. Files are parsed concurrently but indexed in
// directory-listing order so the chunk sequence is stable across runs.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	paths, err := p.listPDFs()
	if err != nil {
		// Missing directory degrades to an empty index, same as no files.
		p.logger.Warn("data directory not readable, starting with empty index",
			"dir", p.cfg.DataDirectory, "error", err)
		return Result{Duration: time.Since(start)}, nil
	}
	if len(paths) == 0 {
		p.logger.Info("no PDF documents found, starting with empty index",
			"dir", p.cfg.DataDirectory)
		return Result{Duration: time.Since(start)}, nil
	}

	// Parse concurrently; slots keep results in listing order.
	parsed := make([]*extracted, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelExtracts)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, pages, err := p.extract(path)
			if err != nil {
				// Ingestion failures are fatal to the single file only.
				p.logger.Warn("skipping unparseable document",
					"file", filepath.Base(path), "error", err)
				return nil
			}
			parsed[i] = &extracted{name: filepath.Base(path), text: text, pages: pages}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{Duration: time.Since(start)}, fmt.Errorf("ingesting documents: %w", err)
	}

	var res Result
	for _, doc := range parsed {
		if doc == nil {
			res.FilesSkipped++
			continue
		}
		chunks, err := p.indexDocument(ctx, doc)
		if err != nil {
			p.logger.Warn("skipping document, indexing failed",
				"file", doc.name, "error", err)
			res.FilesSkipped++
			continue
		}
		res.FilesIndexed++
		res.ChunksIndexed += chunks
	}

	res.Duration = time.Since(start)
	p.logger.Info("document ingestion complete",
		"indexed", res.FilesIndexed,
		"skipped", res.FilesSkipped,
		"chunks", res.ChunksIndexed,
		"duration", res.Duration)
	return res, nil
}

// indexDocument chunks one document, indexes the chunks and registers the
// document. Returns the number of chunks indexed.
func (p *Pipeline) indexDocument(ctx context.Context, doc *extracted) (int, error) {
	chunks := SplitText(doc.text, p.cfg.ChunkSize, p.cfg.ChunkOverlap)

	info := DocumentInfo{
		ID:    "doc-" + uuid.NewString()[:8],
		Name:  doc.name,
		Type:  strings.ToUpper(strings.TrimPrefix(filepath.Ext(doc.name), ".")),
		Pages: doc.pages,
	}

	if len(chunks) > 0 {
		docs := make([]knowledge.Document, len(chunks))
		for i, chunk := range chunks {
			docs[i] = knowledge.Document{
				ID:      fmt.Sprintf("%s:%d", info.ID, i),
				Content: chunk,
				Metadata: map[string]string{
					"doc_id":   info.ID,
					"doc_name": info.Name,
					"chunk":    fmt.Sprintf("%d", i),
				},
				CreateAt: time.Now().UTC(),
			}
		}
		if err := p.store.AddBatch(ctx, docs); err != nil {
			return 0, err
		}
	}

	info.Chunks = len(chunks)
	p.mu.Lock()
	p.docs = append(p.docs, info)
	p.mu.Unlock()

	p.logger.Info("indexed document", "name", info.Name, "id", info.ID, "chunks", info.Chunks)
	return len(chunks), nil
}

// Documents returns the registry of ingested documents in ingestion order.
func (p *Pipeline) Documents() []DocumentInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]DocumentInfo, len(p.docs))
	copy(out, p.docs)
	return out
}

// listPDFs returns the .pdf files directly inside the data directory,
// sorted by name.
func (p *Pipeline) listPDFs() ([]string, error) {
	entries, err := os.ReadDir(p.cfg.DataDirectory)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(p.cfg.DataDirectory, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
