// Package ingest runs the document pipeline: load pages, resolve
// provenance, chunk, tag, and build the hybrid retriever.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/booktutor/internal/chunk"
	"github.com/dgallion1/booktutor/internal/chunker"
	"github.com/dgallion1/booktutor/internal/embed"
	"github.com/dgallion1/booktutor/internal/pdf"
	"github.com/dgallion1/booktutor/internal/retrieve"
	"github.com/dgallion1/booktutor/internal/vecstore"
)

// DenseSuffix names the persisted dense collection for a logical
// collection, so re-ingestion under the same name overwrites it.
const DenseSuffix = "_dense"

// Pipeline wires the ingestion stages together. One Ingest call is a
// single-threaded, synchronous pass over one document.
type Pipeline struct {
	Loader   *pdf.Loader
	Embedder embed.Embedder
	Store    vecstore.Store
	ChunkCfg chunker.Config
	TopK     int
	Log      *slog.Logger
}

// Result is one fully-ingested document: the retriever plus the raw
// chunk sequence for collaborators that want provenance display
// without re-querying.
type Result struct {
	Collection string
	Source     string
	Retriever  *retrieve.Hybrid
	Chunks     []chunk.TextChunk
	Pages      int
	IngestedAt time.Time
}

// Ingest loads a PDF, builds both indices, and returns the hybrid
// retriever. An empty collection name defaults to the filename without
// its extension. Any load or embedding failure aborts the whole run; no
// partial index is left queryable.
func (p *Pipeline) Ingest(ctx context.Context, pdfPath, collection string) (*Result, error) {
	return p.IngestAs(ctx, pdfPath, collection, filepath.Base(pdfPath))
}

// IngestAs is Ingest with an explicit source filename, for callers that
// spool an upload to a temp path but want provenance tagged with the
// original name.
func (p *Pipeline) IngestAs(ctx context.Context, pdfPath, collection, source string) (*Result, error) {
	if collection == "" {
		collection = strings.TrimSuffix(source, filepath.Ext(source))
	}
	log := p.Log.With("collection", collection)
	start := time.Now()

	pages, err := p.Loader.LoadPages(pdfPath)
	if err != nil {
		return nil, err
	}

	chunks := buildChunks(pages, collection, source, p.ChunkCfg)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no extractable content in %s", source)
	}
	log.Info("chunked document", "pages", len(pages), "chunks", len(chunks))

	dense, err := p.buildDense(ctx, collection, chunks)
	if err != nil {
		return nil, err
	}
	lexical := retrieve.NewTFIDF(chunks)

	log.Info("hybrid retriever ready", "elapsed_ms", time.Since(start).Milliseconds())
	return &Result{
		Collection: collection,
		Source:     source,
		Retriever:  &retrieve.Hybrid{Dense: dense, Lexical: lexical, K: p.TopK},
		Chunks:     chunks,
		Pages:      len(pages),
		IngestedAt: time.Now(),
	}, nil
}

// buildChunks folds the tracker over the pages, splits each page
// fragment, and tags every surviving sub-chunk with provenance.
func buildChunks(pages []pdf.Page, bookTitle, source string, cfg chunker.Config) []chunk.TextChunk {
	var chunks []chunk.TextChunk
	var state State
	for _, page := range pages {
		var frag Fragment
		state, frag = Track(state, page)
		// One fragment per page: the heading travels with the body.
		const fragIdx = 0
		for subIdx, piece := range chunker.Split(frag.Text, cfg) {
			c, ok := chunk.New(piece, bookTitle, frag.Chapter, frag.Section, frag.Page, source, fragIdx, subIdx)
			if !ok {
				continue
			}
			chunks = append(chunks, c)
		}
	}
	return chunks
}

// buildDense embeds every chunk, then rebuilds and fills the persisted
// collection. Embedding runs before the store is touched, so a failed
// run never leaves an index with missing vectors.
func (p *Pipeline) buildDense(ctx context.Context, collection string, chunks []chunk.TextChunk) (*retrieve.Dense, error) {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := p.Embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(chunks) {
		return nil, &embed.EmbeddingError{Err: fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunks))}
	}

	name := collection + DenseSuffix
	if err := p.Store.Rebuild(ctx, name, len(vectors[0])); err != nil {
		return nil, fmt.Errorf("rebuild dense index: %w", err)
	}
	points := make([]vecstore.Point, len(chunks))
	for i := range chunks {
		points[i] = vecstore.Point{
			ID:     chunks[i].Metadata.ChunkID,
			Vector: vectors[i],
			Chunk:  chunks[i],
		}
	}
	if err := p.Store.Upsert(ctx, name, points); err != nil {
		return nil, fmt.Errorf("fill dense index: %w", err)
	}
	return retrieve.NewDense(p.Embedder, p.Store, name), nil
}
