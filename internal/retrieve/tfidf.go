package retrieve

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/dgallion1/booktutor/internal/chunk"
)

// TFIDF is an in-memory term-frequency/inverse-document-frequency index
// over chunk contents. It is rebuilt per ingestion run; no persistence.
type TFIDF struct {
	chunks   []chunk.TextChunk
	postings map[string][]posting
	idf      map[string]float64
	norms    []float64
}

type posting struct {
	doc int
	tf  int
}

// NewTFIDF indexes the given chunks. Uses smoothed idf
// (ln((1+n)/(1+df)) + 1) and L2-normalized document vectors, so scores
// are cosine similarities in [0, 1].
func NewTFIDF(chunks []chunk.TextChunk) *TFIDF {
	t := &TFIDF{
		chunks:   chunks,
		postings: make(map[string][]posting),
		idf:      make(map[string]float64),
		norms:    make([]float64, len(chunks)),
	}

	for i, c := range chunks {
		for term, tf := range termFreq(tokenize(c.Content)) {
			t.postings[term] = append(t.postings[term], posting{doc: i, tf: tf})
		}
	}

	n := float64(len(chunks))
	for term, list := range t.postings {
		t.idf[term] = math.Log((1+n)/(1+float64(len(list)))) + 1
	}
	for term, list := range t.postings {
		idf := t.idf[term]
		for _, p := range list {
			w := float64(p.tf) * idf
			t.norms[p.doc] += w * w
		}
	}
	for i := range t.norms {
		t.norms[i] = math.Sqrt(t.norms[i])
	}
	return t
}

func (t *TFIDF) Search(ctx context.Context, query string, k int) ([]Scored, error) {
	queryTF := termFreq(tokenize(query))

	var queryNorm float64
	weights := make(map[string]float64, len(queryTF))
	for term, tf := range queryTF {
		idf, ok := t.idf[term]
		if !ok {
			continue
		}
		w := float64(tf) * idf
		weights[term] = w
		queryNorm += w * w
	}
	if len(weights) == 0 {
		return nil, nil
	}
	queryNorm = math.Sqrt(queryNorm)

	scores := make(map[int]float64)
	for term, qw := range weights {
		idf := t.idf[term]
		for _, p := range t.postings[term] {
			scores[p.doc] += qw * float64(p.tf) * idf
		}
	}

	type docScore struct {
		doc   int
		score float64
	}
	ranked := make([]docScore, 0, len(scores))
	for doc, s := range scores {
		if t.norms[doc] > 0 {
			s /= t.norms[doc] * queryNorm
		}
		ranked = append(ranked, docScore{doc: doc, score: s})
	}
	// Ties resolve to document order so results are deterministic.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].doc < ranked[j].doc
	})
	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	results := make([]Scored, len(ranked))
	for i, r := range ranked {
		results[i] = Scored{Chunk: t.chunks[r.doc], Score: r.score}
	}
	return results, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func termFreq(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	return tf
}
