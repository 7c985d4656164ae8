// Package vecstore is the persistent vector-index capability: build a
// collection from embedded vectors, query it by vector. The index
// implementation is opaque to the rest of the pipeline.
package vecstore

import (
	"context"

	"github.com/dgallion1/booktutor/internal/chunk"
)

// Point is one embedded chunk ready for indexing.
type Point struct {
	ID     string // chunk ID; backends may derive their own point ids from it
	Vector []float32
	Chunk  chunk.TextChunk
}

// Hit is one nearest-neighbor result.
type Hit struct {
	Chunk chunk.TextChunk
	Score float64
}

// Store is a nearest-neighbor index keyed by collection name.
// Collections are read-only between Rebuild calls, so Query is safe for
// concurrent use. Rebuild drops any existing collection of the same
// name: re-ingestion overwrites, it never accumulates. Concurrent
// rebuilds of one collection race; callers must serialize them.
type Store interface {
	Rebuild(ctx context.Context, collection string, dim int) error
	Upsert(ctx context.Context, collection string, points []Point) error
	Query(ctx context.Context, collection string, vector []float32, limit int) ([]Hit, error)
	Close() error
}
