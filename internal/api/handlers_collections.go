package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleListCollections lists ingested collections with basic stats.
func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	var collections []map[string]any
	for _, name := range s.registry.Names() {
		res := s.registry.Get(name)
		if res == nil {
			continue
		}
		collections = append(collections, map[string]any{
			"collection":  res.Collection,
			"source":      res.Source,
			"pages":       res.Pages,
			"chunks":      len(res.Chunks),
			"ingested_at": res.IngestedAt,
		})
	}
	if collections == nil {
		collections = []map[string]any{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"collections": collections})
}

// handleDeleteCollection drops a collection from the in-process
// registry. The persisted dense index stays; the next ingest under the
// same name overwrites it.
func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	if !s.registry.Delete(name) {
		jsonError(w, "collection not found: "+name, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": name})
}
