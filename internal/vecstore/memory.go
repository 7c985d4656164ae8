package vecstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Memory is an in-process Store with cosine similarity, used as the
// dev/test backend when no Qdrant server is configured. Nothing is
// persisted beyond the process.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]Point
	dims        map[string]int
}

func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string][]Point),
		dims:        make(map[string]int),
	}
}

func (m *Memory) Rebuild(ctx context.Context, collection string, dim int) error {
	if dim <= 0 {
		return fmt.Errorf("rebuild %s: invalid vector dimension %d", collection, dim)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = nil
	m.dims[collection] = dim
	return nil
}

func (m *Memory) Upsert(ctx context.Context, collection string, points []Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	dim, ok := m.dims[collection]
	if !ok {
		return fmt.Errorf("upsert: collection %s does not exist", collection)
	}
	for _, p := range points {
		if len(p.Vector) != dim {
			return fmt.Errorf("upsert into %s: vector dimension %d, want %d", collection, len(p.Vector), dim)
		}
	}
	m.collections[collection] = append(m.collections[collection], points...)
	return nil
}

func (m *Memory) Query(ctx context.Context, collection string, vector []float32, limit int) ([]Hit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	points, ok := m.collections[collection]
	if !ok {
		return nil, fmt.Errorf("query: collection %s does not exist", collection)
	}
	hits := make([]Hit, 0, len(points))
	for _, p := range points {
		hits = append(hits, Hit{Chunk: p.Chunk, Score: cosine(vector, p.Vector)})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (m *Memory) Close() error { return nil }

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
