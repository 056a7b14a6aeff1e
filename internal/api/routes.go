package api

import (
	"log/slog"
	"net/http"

	"crossword/internal/lexicon"
	"crossword/internal/store"
)

// Config holds API server configuration.
type Config struct {
	Store   store.Store
	Lexicon *lexicon.Lexicon
	Logger  *slog.Logger
}

// NewRouter creates a new HTTP router with all routes configured.
func NewRouter(cfg Config) http.Handler {
	handler := NewHandler(cfg.Store, cfg.Lexicon)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	mux.HandleFunc("GET /v1/puzzles/{id}", handler.GetPuzzle)
	mux.HandleFunc("GET /v1/puzzles", handler.ListPuzzles)
	mux.HandleFunc("POST /v1/puzzles", handler.StorePuzzle)
	mux.HandleFunc("POST /v1/puzzles/generate", handler.GeneratePuzzle)
	mux.HandleFunc("DELETE /v1/puzzles/{id}", handler.DeletePuzzle)

	// Apply middleware stack
	var h http.Handler = mux
	h = CORS(h)
	h = Gzip(h)
	h = Logger(cfg.Logger)(h)
	h = Recover(cfg.Logger)(h)

	return h
}
