package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"crossword/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	puzzles *sqlitePuzzleRepo
}

// NewSQLiteStore creates a new SQLite store.
// Use ":memory:" for in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if !strings.Contains(dsn, ":memory:") {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	store := &SQLiteStore{db: db}
	store.puzzles = &sqlitePuzzleRepo{db: db}

	return store, nil
}

// Puzzles returns the puzzle repository.
func (s *SQLiteStore) Puzzles() PuzzleRepository {
	return s.puzzles
}

// Migrate runs database migrations.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	upSQL, err := migrationsFS.ReadFile("migrations/001_initial.up.sql")
	if err != nil {
		return fmt.Errorf("failed to read migration: %w", err)
	}

	_, err = s.db.ExecContext(ctx, string(upSQL))
	if err != nil {
		return fmt.Errorf("failed to run migration: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// sqlitePuzzleRepo implements PuzzleRepository for SQLite.
type sqlitePuzzleRepo struct {
	db *sql.DB
}

func (r *sqlitePuzzleRepo) Store(ctx context.Context, p *domain.Puzzle) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal puzzle: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO puzzles (id, size, word_count, density, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			size = excluded.size,
			word_count = excluded.word_count,
			density = excluded.density,
			payload = excluded.payload
	`, p.ID, p.Size, p.Metadata.WordCount, p.Metadata.Density, payload, p.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to store puzzle: %w", err)
	}

	return nil
}

func (r *sqlitePuzzleRepo) Get(ctx context.Context, id string) (*domain.Puzzle, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT payload FROM puzzles WHERE id = ?
	`, id).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get puzzle: %w", err)
	}

	var puzzle domain.Puzzle
	if err := json.Unmarshal(payload, &puzzle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal puzzle: %w", err)
	}

	return &puzzle, nil
}

func (r *sqlitePuzzleRepo) List(ctx context.Context, filter PuzzleFilter) ([]*PuzzleSummary, error) {
	query := `SELECT id, size, word_count, density FROM puzzles WHERE 1=1`
	args := []interface{}{}

	if filter.MinSize > 0 {
		query += " AND size >= ?"
		args = append(args, filter.MinSize)
	}
	if filter.MaxSize > 0 {
		query += " AND size <= ?"
		args = append(args, filter.MaxSize)
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list puzzles: %w", err)
	}
	defer rows.Close()

	var puzzles []*PuzzleSummary
	for rows.Next() {
		var p PuzzleSummary
		if err := rows.Scan(&p.ID, &p.Size, &p.WordCount, &p.Density); err != nil {
			return nil, fmt.Errorf("failed to scan puzzle: %w", err)
		}
		puzzles = append(puzzles, &p)
	}

	return puzzles, rows.Err()
}

func (r *sqlitePuzzleRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM puzzles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete puzzle: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
