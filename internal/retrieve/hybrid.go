package retrieve

import (
	"context"
	"fmt"
	"sort"

	"github.com/dgallion1/booktutor/internal/chunk"
)

// Fixed hybrid weights: semantic similarity dominates, keyword overlap
// refines. Not configurable.
const (
	DenseWeight   = 0.6
	LexicalWeight = 0.4
)

// DefaultTopK bounds the merged result count when none is configured.
const DefaultTopK = 5

// Hybrid combines a dense and a lexical retriever under fixed weights.
// Stateless with respect to queries: both sub-indices are read-only, so
// Search is safe for concurrent callers.
type Hybrid struct {
	Dense   Retriever
	Lexical Retriever
	K       int
}

// Search queries both sub-retrievers and merges their rankings.
// Identical query text against the same built indices always yields the
// same ordered output.
func (h *Hybrid) Search(ctx context.Context, query string) ([]chunk.TextChunk, error) {
	k := h.K
	if k <= 0 {
		k = DefaultTopK
	}
	dense, err := h.Dense.Search(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("dense retriever: %w", err)
	}
	lexical, err := h.Lexical.Search(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("lexical retriever: %w", err)
	}
	return Merge(dense, lexical, DenseWeight, LexicalWeight, k), nil
}

// Merge combines two ranked lists: each list's scores are normalized to
// its own maximum, scaled by its weight, and summed for chunks that
// appear in both (matched by chunk ID). Ties break by dense-retriever
// rank. The merged list is truncated to k results.
func Merge(dense, lexical []Scored, denseWeight, lexicalWeight float64, k int) []chunk.TextChunk {
	type candidate struct {
		c     chunk.TextChunk
		score float64
	}
	order := make([]string, 0, len(dense)+len(lexical))
	byID := make(map[string]*candidate, len(dense)+len(lexical))

	add := func(results []Scored, weight float64) {
		norm := 0.0
		for _, r := range results {
			if r.Score > norm {
				norm = r.Score
			}
		}
		for _, r := range results {
			contribution := 0.0
			if norm > 0 {
				contribution = weight * r.Score / norm
			}
			id := r.Chunk.Metadata.ChunkID
			if cand, ok := byID[id]; ok {
				cand.score += contribution
				continue
			}
			byID[id] = &candidate{c: r.Chunk, score: contribution}
			order = append(order, id)
		}
	}
	// Dense first: a stable sort then leaves ties in dense-rank order.
	add(dense, denseWeight)
	add(lexical, lexicalWeight)

	merged := make([]*candidate, len(order))
	for i, id := range order {
		merged[i] = byID[id]
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].score > merged[j].score })

	if k > 0 && len(merged) > k {
		merged = merged[:k]
	}
	out := make([]chunk.TextChunk, len(merged))
	for i, cand := range merged {
		out[i] = cand.c
	}
	return out
}
