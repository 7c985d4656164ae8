package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Groq answer generation
	GroqAPIKey string
	GroqModel  string

	// Embedding endpoint (Ollama-compatible)
	EmbedURL   string
	EmbedModel string

	// Vector store
	VectorBackend string // "qdrant" or "memory"
	QdrantAddr    string

	// Chunking
	ChunkSize    int
	ChunkOverlap int

	// Retrieval
	TopK int

	// Upload limits
	MaxUploadBytes int64

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("BOOKTUTOR_API_KEY"),

		GroqAPIKey: os.Getenv("GROQ_API_KEY"),
		GroqModel:  envOr("GROQ_MODEL", "llama-3.1-8b-instant"),

		EmbedURL:   envOr("EMBED_URL", "http://localhost:11434"),
		EmbedModel: envOr("EMBED_MODEL", "nomic-embed-text"),

		VectorBackend: envOr("VECTOR_BACKEND", "qdrant"),
		QdrantAddr:    envOr("QDRANT_ADDR", "localhost:6334"),

		ChunkSize:    envInt("CHUNK_SIZE", 1000),
		ChunkOverlap: envInt("CHUNK_OVERLAP", 200),

		TopK: envInt("TOP_K", 5),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1000
	}
	if cfg.ChunkOverlap <= 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = cfg.ChunkSize / 5
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("BOOKTUTOR_API_KEY is required")
	}
	if c.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	if c.VectorBackend != "qdrant" && c.VectorBackend != "memory" {
		return fmt.Errorf("VECTOR_BACKEND must be qdrant or memory, got %q", c.VectorBackend)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
