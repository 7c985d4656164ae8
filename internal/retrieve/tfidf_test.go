package retrieve

import (
	"context"
	"testing"

	"github.com/dgallion1/booktutor/internal/chunk"
)

func testChunks(contents ...string) []chunk.TextChunk {
	chunks := make([]chunk.TextChunk, len(contents))
	for i, content := range contents {
		c, ok := chunk.New(content, "book", "", "", i, "book.pdf", 0, 0)
		if !ok {
			panic("empty test chunk")
		}
		chunks[i] = c
	}
	return chunks
}

func TestTFIDF_RanksKeywordMatchesFirst(t *testing.T) {
	idx := NewTFIDF(testChunks(
		"gradient descent updates weights using the learning rate",
		"convolutional networks excel at image recognition tasks",
		"the learning rate controls gradient descent step size",
		"transformers rely on attention instead of recurrence",
	))

	results, err := idx.Search(context.Background(), "gradient descent learning rate", 4)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) < 2 {
		t.Fatalf("expected at least 2 results, got %d", len(results))
	}
	for _, r := range results[:2] {
		page := r.Chunk.Metadata.PageNumber
		if page != 0 && page != 2 {
			t.Errorf("expected gradient-descent chunks to rank first, got page %d", page)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted: %f after %f", results[i].Score, results[i-1].Score)
		}
	}
}

func TestTFIDF_UnknownTermsReturnNothing(t *testing.T) {
	idx := NewTFIDF(testChunks("alpha beta gamma", "delta epsilon"))
	results, err := idx.Search(context.Background(), "zeta omega", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results for out-of-vocabulary query, got %d", len(results))
	}
}

func TestTFIDF_KBoundsResults(t *testing.T) {
	idx := NewTFIDF(testChunks(
		"shared term alpha", "shared term beta", "shared term gamma", "shared term delta",
	))
	results, err := idx.Search(context.Background(), "shared term", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestTFIDF_DeterministicTies(t *testing.T) {
	idx := NewTFIDF(testChunks(
		"identical tie text", "identical tie text", "identical tie text",
	))
	first, err := idx.Search(context.Background(), "identical tie", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := idx.Search(context.Background(), "identical tie", 3)
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("result count changed: %d vs %d", len(again), len(first))
		}
		for j := range again {
			if again[j].Chunk.Metadata.ChunkID != first[j].Chunk.Metadata.ChunkID {
				t.Fatalf("tie order changed at position %d", j)
			}
		}
	}
	// Ties resolve to document order.
	for j := range first {
		if first[j].Chunk.Metadata.PageNumber != j {
			t.Errorf("position %d: expected document order, got page %d", j, first[j].Chunk.Metadata.PageNumber)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("Hello, World! 3.2 rates")
	want := []string{"hello", "world", "3", "2", "rates"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
