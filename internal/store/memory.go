package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"crossword/internal/domain"
)

// MemoryStore is an in-memory store implementation for testing.
type MemoryStore struct {
	puzzles *MemoryPuzzleRepository
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		puzzles: &MemoryPuzzleRepository{
			puzzles: make(map[string]*domain.Puzzle),
		},
	}
}

func (s *MemoryStore) Puzzles() PuzzleRepository          { return s.puzzles }
func (s *MemoryStore) Migrate(ctx context.Context) error { return nil }
func (s *MemoryStore) Close() error                      { return nil }

// MemoryPuzzleRepository is an in-memory puzzle repository.
type MemoryPuzzleRepository struct {
	mu      sync.RWMutex
	puzzles map[string]*domain.Puzzle
}

func (r *MemoryPuzzleRepository) Store(ctx context.Context, p *domain.Puzzle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	clone := *p
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	r.puzzles[p.ID] = &clone
	return nil
}

func (r *MemoryPuzzleRepository) Get(ctx context.Context, id string) (*domain.Puzzle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.puzzles[id]
	if !ok {
		return nil, ErrNotFound
	}

	clone := *p
	return &clone, nil
}

func (r *MemoryPuzzleRepository) List(ctx context.Context, filter PuzzleFilter) ([]*PuzzleSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*PuzzleSummary
	for _, p := range r.puzzles {
		if filter.MinSize > 0 && p.Size < filter.MinSize {
			continue
		}
		if filter.MaxSize > 0 && p.Size > filter.MaxSize {
			continue
		}

		result = append(result, &PuzzleSummary{
			ID:        p.ID,
			Size:      p.Size,
			WordCount: p.Metadata.WordCount,
			Density:   p.Metadata.Density,
		})

		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}

	return result, nil
}

func (r *MemoryPuzzleRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.puzzles[id]; !ok {
		return ErrNotFound
	}
	delete(r.puzzles, id)
	return nil
}
