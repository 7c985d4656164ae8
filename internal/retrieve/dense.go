package retrieve

import (
	"context"
	"fmt"

	"github.com/dgallion1/booktutor/internal/embed"
	"github.com/dgallion1/booktutor/internal/vecstore"
)

// Dense searches a built vector-store collection by embedding the query
// text and running nearest-neighbor search.
type Dense struct {
	embedder   embed.Embedder
	store      vecstore.Store
	collection string
}

func NewDense(embedder embed.Embedder, store vecstore.Store, collection string) *Dense {
	return &Dense{
		embedder:   embedder,
		store:      store,
		collection: collection,
	}
}

func (d *Dense) Search(ctx context.Context, query string, k int) ([]Scored, error) {
	vectors, err := d.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	hits, err := d.store.Query(ctx, d.collection, vectors[0], k)
	if err != nil {
		return nil, fmt.Errorf("dense search: %w", err)
	}
	results := make([]Scored, len(hits))
	for i, h := range hits {
		results[i] = Scored{Chunk: h.Chunk, Score: h.Score}
	}
	return results, nil
}
