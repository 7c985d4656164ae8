package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dgallion1/booktutor/internal/answer"
	"github.com/dgallion1/booktutor/internal/chunker"
	"github.com/dgallion1/booktutor/internal/config"
	"github.com/dgallion1/booktutor/internal/ingest"
	"github.com/dgallion1/booktutor/internal/pdf"
	"github.com/dgallion1/booktutor/internal/vecstore"
)

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func testServer() *Server {
	cfg := config.Config{
		APIKey:         "test-key",
		MaxUploadBytes: 1 << 20,
	}
	pipeline := &ingest.Pipeline{
		Loader:   &pdf.Loader{},
		Embedder: fakeEmbedder{},
		Store:    vecstore.NewMemory(),
		ChunkCfg: chunker.DefaultConfig(),
		TopK:     5,
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return NewServer(pipeline, ingest.NewRegistry(), answer.NewClient("unused", "test-model"), slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
}

func TestHealthIsPublic(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	srv := testServer()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"wrong key", "Bearer nope", http.StatusUnauthorized},
		{"valid key", "Bearer test-key", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/collections", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestAskValidation(t *testing.T) {
	srv := testServer()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"bad json", "{", http.StatusBadRequest},
		{"missing collection", `{"question":"q"}`, http.StatusBadRequest},
		{"missing question", `{"collection":"c"}`, http.StatusBadRequest},
		{"unknown collection", `{"collection":"ghost","question":"q"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(tt.body))
			req.Header.Set("Authorization", "Bearer test-key")
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestListCollectionsEmpty(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/collections", nil)
	req.Header.Set("Authorization", "Bearer test-key")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Collections []map[string]any `json:"collections"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Collections) != 0 {
		t.Errorf("expected empty list, got %v", resp.Collections)
	}
}

func TestDeleteUnknownCollection(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodDelete, "/api/collections/ghost", nil)
	req.Header.Set("Authorization", "Bearer test-key")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"book.pdf", "book.pdf"},
		{"../../etc/passwd", "passwd"},
		{"dir/book.pdf", "book.pdf"},
		{"", "unnamed"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
