package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/booktutor/internal/answer"
	"github.com/dgallion1/booktutor/internal/config"
	"github.com/dgallion1/booktutor/internal/ingest"
)

// Server is the HTTP API server for booktutor.
type Server struct {
	router   chi.Router
	pipeline *ingest.Pipeline
	registry *ingest.Registry
	groq     *answer.Client
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(pipeline *ingest.Pipeline, registry *ingest.Registry, groq *answer.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		pipeline: pipeline,
		registry: registry,
		groq:     groq,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/ingest", s.handleIngest)
		r.Post("/api/ask", s.handleAsk)
		r.Get("/api/collections", s.handleListCollections)
		r.Delete("/api/collections/{collection}", s.handleDeleteCollection)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
