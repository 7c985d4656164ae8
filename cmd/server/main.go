package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dgallion1/booktutor/internal/answer"
	"github.com/dgallion1/booktutor/internal/api"
	"github.com/dgallion1/booktutor/internal/chunker"
	"github.com/dgallion1/booktutor/internal/config"
	"github.com/dgallion1/booktutor/internal/embed"
	"github.com/dgallion1/booktutor/internal/ingest"
	"github.com/dgallion1/booktutor/internal/pdf"
	"github.com/dgallion1/booktutor/internal/vecstore"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize clients.
	var store vecstore.Store
	if cfg.VectorBackend == "memory" {
		store = vecstore.NewMemory()
	} else {
		qdrant, err := vecstore.ConnectQdrant(cfg.QdrantAddr)
		if err != nil {
			log.Error("qdrant connection failed", "addr", cfg.QdrantAddr, "error", err)
			os.Exit(1)
		}
		store = qdrant
	}
	embedder := embed.NewClient(cfg.EmbedURL, cfg.EmbedModel)
	groq := answer.NewClient(cfg.GroqAPIKey, cfg.GroqModel)

	// Initialize pipeline.
	pipeline := &ingest.Pipeline{
		Loader:   &pdf.Loader{FallbackPdftotext: cfg.PDFFallbackPdftotext},
		Embedder: embedder,
		Store:    store,
		ChunkCfg: chunker.Config{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
		},
		TopK: cfg.TopK,
		Log:  log,
	}
	registry := ingest.NewRegistry()

	// Initialize HTTP server.
	srv := api.NewServer(pipeline, registry, groq, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		groq.Close()
		embedder.Close()
		store.Close()
	}()

	log.Info("starting booktutor", "port", cfg.Port, "vector_backend", cfg.VectorBackend)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
