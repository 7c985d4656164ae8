package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/booktutor/internal/embed"
	"github.com/dgallion1/booktutor/internal/pdf"
)

// handleIngest accepts a PDF upload and runs the full pipeline
// synchronously: the response means the retriever is built and the
// dense index is persisted.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	collection := r.FormValue("collection")

	// The PDF library needs a seekable file, so spool the upload to disk.
	tmp, err := os.CreateTemp("", "booktutor-*.pdf")
	if err != nil {
		jsonError(w, "failed to create temp file", http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, io.LimitReader(file, s.cfg.MaxUploadBytes+1)); err != nil {
		tmp.Close()
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	tmp.Close()
	if info, err := os.Stat(tmpPath); err == nil && info.Size() > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	res, err := s.pipeline.IngestAs(r.Context(), tmpPath, collection, filename)
	if err != nil {
		var loadErr *pdf.LoadError
		var embedErr *embed.EmbeddingError
		switch {
		case errors.As(err, &loadErr):
			jsonError(w, "unreadable document: "+loadErr.Err.Error(), http.StatusBadRequest)
		case errors.As(err, &embedErr):
			jsonError(w, "embedding failed: "+embedErr.Err.Error(), http.StatusBadGateway)
		default:
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	s.registry.Put(res)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"collection": res.Collection,
		"source":     res.Source,
		"pages":      res.Pages,
		"chunks":     len(res.Chunks),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
