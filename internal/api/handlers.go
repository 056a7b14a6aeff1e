// Package api provides HTTP handlers for the crossword puzzle API.
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"crossword/internal/domain"
	"crossword/internal/generator"
	"crossword/internal/lexicon"
	"crossword/internal/store"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	store store.Store
	lex   *lexicon.Lexicon
}

// NewHandler creates a new Handler with the given store and lexicon. lex
// may be nil, in which case GeneratePuzzle responds 503.
func NewHandler(s store.Store, lex *lexicon.Lexicon) *Handler {
	return &Handler{store: s, lex: lex}
}

// GenerateRequest is the request body for POST /v1/puzzles/generate.
type GenerateRequest struct {
	Size        int   `json:"size"`
	MaxAttempts int   `json:"max_attempts,omitempty"`
	Seed        int64 `json:"seed,omitempty"`
}

// GeneratePuzzle runs the SAT pipeline and persists the resulting puzzle.
// POST /v1/puzzles/generate
func (h *Handler) GeneratePuzzle(w http.ResponseWriter, r *http.Request) {
	if h.lex == nil {
		writeError(w, http.StatusServiceUnavailable, "generator not configured")
		return
	}

	var req GenerateRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.Size == 0 {
		req.Size = 15
	}

	cfg := generator.Config{
		Size:        req.Size,
		MaxAttempts: req.MaxAttempts,
		Seed:        req.Seed,
	}

	result, err := generator.Generate(r.Context(), h.lex, cfg)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.store.Puzzles().Store(r.Context(), &result.Puzzle); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist puzzle")
		return
	}

	writeJSON(w, http.StatusCreated, result.Puzzle)
}

// StorePuzzle stores a puzzle (create or update).
// POST /v1/puzzles
func (h *Handler) StorePuzzle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var puzzle domain.Puzzle
	if err := json.Unmarshal(body, &puzzle); err != nil {
		writeError(w, http.StatusBadRequest, "invalid puzzle JSON")
		return
	}

	if err := h.store.Puzzles().Store(r.Context(), &puzzle); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":     puzzle.ID,
		"status": "stored",
	})
}

// GetPuzzle returns a specific puzzle by ID.
// GET /v1/puzzles/{id}
func (h *Handler) GetPuzzle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing puzzle id")
		return
	}

	puzzle, err := h.store.Puzzles().Get(r.Context(), id)
	if err == store.ErrNotFound {
		writeError(w, http.StatusNotFound, "puzzle not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch puzzle")
		return
	}

	writeJSONWithETag(w, puzzle)
}

// ListPuzzles returns a list of puzzles matching the filter.
// GET /v1/puzzles?min_size=10&max_size=21&limit=50
func (h *Handler) ListPuzzles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.PuzzleFilter{Limit: 50}

	if v := q.Get("min_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MinSize = n
		}
	}
	if v := q.Get("max_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MaxSize = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	puzzles, err := h.store.Puzzles().List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list puzzles")
		return
	}

	if puzzles == nil {
		puzzles = []*store.PuzzleSummary{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"puzzles": puzzles,
		"count":   len(puzzles),
	})
}

// DeletePuzzle deletes a puzzle by ID.
// DELETE /v1/puzzles/{id}
func (h *Handler) DeletePuzzle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing puzzle id")
		return
	}

	if err := h.store.Puzzles().Delete(r.Context(), id); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "puzzle not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": "deleted",
	})
}

// HealthCheck returns server health status.
// GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// APIError represents an error response.
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIError{Error: http.StatusText(status), Message: message})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeJSONWithETag(w http.ResponseWriter, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	// Generate ETag from content hash
	hash := sha256.Sum256(body)
	etag := `"` + hex.EncodeToString(hash[:8]) + `"`

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=300") // 5 minute cache

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
