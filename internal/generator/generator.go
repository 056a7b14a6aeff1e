// Package generator composes the lexicon, word selection, encoder, solver
// and assembler into a single generation pipeline, with the retry-on-
// infeasible loop and concurrent batch runner of spec section 5.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"crossword/internal/assembler"
	"crossword/internal/domain"
	"crossword/internal/encoder"
	"crossword/internal/lexicon"
	"crossword/internal/solver"
	"crossword/internal/wordselect"
)

// InputError reports a malformed or unusable request, e.g. a grid size or
// lexicon too small to attempt a solve.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return fmt.Sprintf("input error: %s", e.Message) }

// InfeasibleError reports that the solver proved the instance has no
// satisfying assignment for a given attempt's word sample.
type InfeasibleError struct {
	Attempt int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("infeasible: no satisfying assignment on attempt %d", e.Attempt)
}

// Config controls one Generate call.
type Config struct {
	// Size is the grid's side length (grid is Size x Size).
	Size int
	// MaxAttempts bounds the retry loop on InfeasibleError. Each retry
	// draws a fresh word sample.
	MaxAttempts int
	// MaxDiameter is passed through to encoder.Config; zero selects the
	// encoder's own default.
	MaxDiameter int
	// Seed seeds the per-attempt word-selection shuffle. Zero derives a
	// seed from the current time.
	Seed int64
}

// DefaultConfig returns sensible defaults for a 15x15 American grid.
func DefaultConfig() Config {
	return Config{
		Size:        15,
		MaxAttempts: 5,
	}
}

// Stats reports per-attempt timing and formula size, for logging.
type Stats struct {
	Attempts     int           `json:"attempts"`
	Vars         int           `json:"vars"`
	Clauses      int           `json:"clauses"`
	Duration     time.Duration `json:"duration"`
	GenerationMs int64         `json:"generation_time_ms"`
}

// Result is one successfully generated puzzle.
type Result struct {
	Puzzle domain.Puzzle
	Stats  Stats
}

// Generate runs the encode/solve/assemble pipeline, retrying on
// InfeasibleError up to cfg.MaxAttempts with a fresh word sample each
// time, per spec section 4.3 "Failures".
func Generate(ctx context.Context, lex *lexicon.Lexicon, cfg Config) (*Result, error) {
	if cfg.Size < 3 {
		return nil, &InputError{Message: "grid size must be at least 3"}
	}
	if lex == nil || lex.Size() == 0 {
		return nil, &InputError{Message: "lexicon is empty"}
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		words := wordselect.Select(rng, lex.WordsByLength(), cfg.Size)
		if len(words) == 0 {
			return nil, &InputError{Message: "word selection produced no candidates"}
		}

		enc := encoder.New(words, encoder.Config{Size: cfg.Size, MaxDiameter: cfg.MaxDiameter})
		enc.Build()

		drv := solver.NewDriver(enc.Formula())
		outcome, err := drv.Solve()
		if err != nil {
			return nil, err
		}
		if outcome == solver.Unsat {
			lastErr = &InfeasibleError{Attempt: attempt}
			continue
		}

		placements, err := enc.ExtractPlacements(drv.Value)
		if err != nil {
			// AssemblyError: fatal to this attempt, not retried.
			return nil, err
		}

		elapsed := time.Since(start)
		puzzle := assembler.Assemble(placements, cfg.Size, lex.Clue, elapsed.Milliseconds())

		return &Result{
			Puzzle: puzzle,
			Stats: Stats{
				Attempts:     attempt,
				Vars:         enc.Formula().NumVars(),
				Clauses:      len(enc.Formula().Clauses()),
				Duration:     elapsed,
				GenerationMs: elapsed.Milliseconds(),
			},
		}, nil
	}

	return nil, fmt.Errorf("generation failed after %d attempts: %w", maxAttempts, lastErr)
}

// BatchOutcome pairs one Batch slot's result with any error it produced.
type BatchOutcome struct {
	Result *Result
	Err    error
}

// Batch runs n independent generations concurrently over a worker pool,
// per spec section 5: pool size defaults to runtime.NumCPU() and is
// overridable via workers (zero or negative selects the default). Each
// slot runs its own Generate call with its own *rand.Rand, seeded with
// the base seed plus the slot index times 2654435761 (the base seed is
// cfg.Seed, or the current time when cfg.Seed is zero), so concurrent
// attempts never share mutable state beyond the read-only Lexicon.
func Batch(ctx context.Context, lex *lexicon.Lexicon, n int, cfg Config, workers int) []BatchOutcome {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	baseSeed := cfg.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	outcomes := make([]BatchOutcome, n)
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				jobCfg := cfg
				jobCfg.Seed = baseSeed + int64(idx)*2654435761

				res, err := Generate(ctx, lex, jobCfg)
				outcomes[idx] = BatchOutcome{Result: res, Err: err}
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}
