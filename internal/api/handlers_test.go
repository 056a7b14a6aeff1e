package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"crossword/internal/domain"
	"crossword/internal/store"
)

func setupTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()

	db, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := db.Migrate(context.Background()); err != nil {
		db.Close()
		t.Fatalf("failed to migrate: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	router := NewRouter(Config{Store: db, Logger: logger})
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		db.Close()
	})

	return server, db
}

func createTestPuzzle(id string, size int) *domain.Puzzle {
	return &domain.Puzzle{
		ID:   id,
		Size: size,
		Grid: [][]domain.Cell{
			{{Type: domain.CellTypeLetter, Solution: "A", Number: 1}, {Type: domain.CellTypeLetter, Solution: "B"}},
		},
		Clues: domain.Clues{
			Across: []domain.Clue{{Number: 1, Word: "AB", Clue: "a clue", X: 0, Y: 0}},
			Down:   []domain.Clue{},
		},
		Metadata: domain.Metadata{Density: 1, WordCount: 1, TotalLetters: 2},
	}
}

func TestHealthCheck(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("failed to get health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]string
	json.NewDecoder(resp.Body).Decode(&result)

	if result["status"] != "ok" {
		t.Errorf("expected status ok, got %s", result["status"])
	}
}

func TestGetPuzzle(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	puzzle := createTestPuzzle("test-puzzle-1", 15)
	db.Puzzles().Store(ctx, puzzle)

	resp, err := http.Get(server.URL + "/v1/puzzles/test-puzzle-1")
	if err != nil {
		t.Fatalf("failed to get puzzle: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	if resp.Header.Get("ETag") == "" {
		t.Error("expected ETag header")
	}

	var result domain.Puzzle
	json.NewDecoder(resp.Body).Decode(&result)

	if result.ID != puzzle.ID {
		t.Errorf("expected puzzle ID %s, got %s", puzzle.ID, result.ID)
	}
}

func TestGetPuzzle_NotFound(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/v1/puzzles/nonexistent")
	if err != nil {
		t.Fatalf("failed to get puzzle: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", resp.StatusCode)
	}
}

func TestListPuzzles(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		puzzle := createTestPuzzle("puzzle-"+string(rune('0'+i)), 15)
		db.Puzzles().Store(ctx, puzzle)
	}

	resp, err := http.Get(server.URL + "/v1/puzzles")
	if err != nil {
		t.Fatalf("failed to list puzzles: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	var result struct {
		Puzzles []store.PuzzleSummary `json:"puzzles"`
		Count   int                   `json:"count"`
	}
	json.NewDecoder(resp.Body).Decode(&result)

	if result.Count != 3 {
		t.Errorf("expected 3 puzzles, got %d", result.Count)
	}
}

func TestListPuzzles_FiltersBySize(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	db.Puzzles().Store(ctx, createTestPuzzle("small", 5))
	db.Puzzles().Store(ctx, createTestPuzzle("large", 21))

	resp, err := http.Get(server.URL + "/v1/puzzles?min_size=10")
	if err != nil {
		t.Fatalf("failed to list puzzles: %v", err)
	}
	defer resp.Body.Close()

	var result struct {
		Puzzles []store.PuzzleSummary `json:"puzzles"`
		Count   int                   `json:"count"`
	}
	json.NewDecoder(resp.Body).Decode(&result)

	if result.Count != 1 || result.Puzzles[0].ID != "large" {
		t.Errorf("expected only the large puzzle, got %+v", result.Puzzles)
	}
}

func TestStorePuzzle(t *testing.T) {
	server, db := setupTestServer(t)

	puzzle := createTestPuzzle("stored-1", 15)
	body, _ := json.Marshal(puzzle)

	resp, err := http.Post(server.URL+"/v1/puzzles", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("failed to store puzzle: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	stored, err := db.Puzzles().Get(context.Background(), "stored-1")
	if err != nil {
		t.Fatalf("puzzle not stored: %v", err)
	}
	if stored.Size != 15 {
		t.Errorf("expected size 15, got %d", stored.Size)
	}
}

func TestDeletePuzzle(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	db.Puzzles().Store(ctx, createTestPuzzle("to-delete", 15))

	req, _ := http.NewRequest("DELETE", server.URL+"/v1/puzzles/to-delete", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("failed to delete puzzle: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	if _, err := db.Puzzles().Get(ctx, "to-delete"); err != store.ErrNotFound {
		t.Errorf("expected puzzle to be gone, got err: %v", err)
	}
}

func TestGeneratePuzzle_NoLexiconConfigured(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Post(server.URL+"/v1/puzzles/generate", "application/json", bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("failed to request generation: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a configured lexicon, got %d", resp.StatusCode)
	}
}

func TestCORSHeaders(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("failed to get health: %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header")
	}
}

func TestGzipCompression(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	db.Puzzles().Store(ctx, createTestPuzzle("gzip-test", 15))

	req, _ := http.NewRequest("GET", server.URL+"/v1/puzzles/gzip-test", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("failed to get puzzle: %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("Content-Encoding") != "gzip" {
		t.Error("expected gzip content encoding")
	}
}
