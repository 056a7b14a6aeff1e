// Command api runs the crossword puzzle API server.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"crossword/internal/api"
	"crossword/internal/lexicon"
	"crossword/internal/store"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	var (
		addr     = flag.String("addr", envOr("PORT", ":8080"), "HTTP server address")
		dbPath   = flag.String("db", envOr("DATABASE_PATH", "puzzles.db"), "SQLite database path")
		dictPath = flag.String("dict", envOr("DICTIONARY_PATH", ""), "path to the clue dictionary (enables POST /v1/puzzles/generate)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Initialize database
	db, err := store.NewSQLiteStore(*dbPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(context.Background()); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var lex *lexicon.Lexicon
	if *dictPath != "" {
		dictFile, err := os.Open(*dictPath)
		if err != nil {
			logger.Error("failed to open dictionary", "error", err)
			os.Exit(1)
		}
		lex, err = lexicon.Load(dictFile, lexicon.DefaultCleaningRules())
		dictFile.Close()
		if err != nil {
			logger.Error("failed to load dictionary", "error", err)
			os.Exit(1)
		}
	}

	// Create router
	router := api.NewRouter(api.Config{
		Store:   db,
		Lexicon: lex,
		Logger:  logger,
	})

	// Create server
	server := &http.Server{
		Addr:         *addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", "addr", *addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
