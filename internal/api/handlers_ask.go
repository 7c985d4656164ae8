package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/booktutor/internal/answer"
	"github.com/dgallion1/booktutor/internal/chunk"
)

type askRequest struct {
	Collection string `json:"collection"`
	Question   string `json:"question"`
}

type excerpt struct {
	Content  string `json:"content"`
	Chapter  string `json:"chapter"`
	Section  string `json:"section"`
	Page     int    `json:"page"`
	Source   string `json:"source"`
	Citation string `json:"citation"`
}

// handleAsk answers a question against an already-ingested collection,
// returning the generated answer plus the retrieved excerpts with their
// provenance tags.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Collection == "" {
		jsonError(w, "collection is required", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}

	res := s.registry.Get(req.Collection)
	if res == nil {
		jsonError(w, "collection not found: "+req.Collection, http.StatusNotFound)
		return
	}

	ctx := r.Context()
	chunks, err := res.Retriever.Search(ctx, req.Question)
	if err != nil {
		jsonError(w, "retrieval failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	ans, err := s.groq.Answer(ctx, answer.FormatContext(chunks), req.Question)
	if err != nil {
		jsonError(w, "answer generation failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	excerpts := make([]excerpt, len(chunks))
	for i, c := range chunks {
		excerpts[i] = toExcerpt(c)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"collection": req.Collection,
		"answer":     ans,
		"excerpts":   excerpts,
	})
}

func toExcerpt(c chunk.TextChunk) excerpt {
	return excerpt{
		Content:  c.Content,
		Chapter:  c.Metadata.Chapter,
		Section:  c.Metadata.Section,
		Page:     c.Metadata.PageNumber,
		Source:   c.Metadata.Source,
		Citation: answer.CitationTag(c.Metadata),
	}
}
