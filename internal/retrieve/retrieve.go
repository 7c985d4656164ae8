// Package retrieve holds the dense and lexical retrievers plus the
// weighted hybrid combiner over both.
package retrieve

import (
	"context"

	"github.com/dgallion1/booktutor/internal/chunk"
)

// Scored is one ranked result from a retriever.
type Scored struct {
	Chunk chunk.TextChunk
	Score float64
}

// Retriever returns the k best-matching chunks for a query, ordered by
// decreasing score. Implementations are read-only after construction
// and safe for concurrent searches.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]Scored, error)
}
