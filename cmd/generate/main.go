// Command generate creates American-style crossword puzzles using the
// SAT-based generator.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"crossword/internal/generator"
	"crossword/internal/lexicon"
)

func main() {
	// Load .env file if present (silently ignore if not found)
	_ = godotenv.Load()

	dictPath := flag.String("dict", envOr("DICTIONARY_PATH", "dictionary.txt"), "path to the clue dictionary")
	size := flag.Int("size", 15, "grid dimension (size x size)")
	count := flag.Int("count", 1, "number of puzzles to generate")
	workers := flag.Int("workers", 0, "concurrent workers for -count > 1 (default: NumCPU)")
	maxAttempts := flag.Int("max-attempts", 5, "maximum SAT encode/solve attempts per puzzle")
	maxDiameter := flag.Int("max-diameter", 0, "reachability diameter cap (0: rows*cols-1)")
	seed := flag.Int64("seed", 0, "random seed (0: derive from current time)")
	output := flag.String("output", "", "output file (default: stdout); with -count > 1, a %d placeholder is substituted")
	verbose := flag.Bool("verbose", false, "print generation stats to stderr")

	flag.Parse()

	dictFile, err := os.Open(*dictPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open dictionary: %v\n", err)
		os.Exit(1)
	}
	defer dictFile.Close()

	lex, err := lexicon.Load(dictFile, lexicon.DefaultCleaningRules())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load dictionary: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		stats := lex.Stats()
		printf("loaded %s admissible words (avg length %.1f, max %d)\n",
			humanInt(stats.WordCount), stats.AvgWordLength, stats.MaxWordLength)
	}

	cfg := generator.Config{
		Size:        *size,
		MaxAttempts: *maxAttempts,
		MaxDiameter: *maxDiameter,
		Seed:        *seed,
	}

	ctx := context.Background()

	if *count <= 1 {
		start := time.Now()
		result, err := generator.Generate(ctx, lex, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: generation failed: %v\n", err)
			os.Exit(1)
		}
		if *verbose {
			printStats(result.Stats, time.Since(start))
		}
		writePuzzle(result, *output)
		return
	}

	start := time.Now()
	outcomes := generator.Batch(ctx, lex, *count, cfg, *workers)
	succeeded := 0
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: puzzle %d failed: %v\n", i, outcome.Err)
			continue
		}
		succeeded++
		path := *output
		if path != "" {
			path = fmt.Sprintf(path, i)
		}
		writePuzzle(outcome.Result, path)
	}

	printf("generated %d/%d puzzles (%d failed) in %v\n", succeeded, *count, *count-succeeded, time.Since(start))

	if succeeded == 0 {
		os.Exit(1)
	}
}

func writePuzzle(result *generator.Result, output string) {
	jsonData, err := json.MarshalIndent(result.Puzzle, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to encode puzzle: %v\n", err)
		os.Exit(1)
	}

	if output == "" {
		fmt.Println(string(jsonData))
		return
	}

	if err := os.WriteFile(output, jsonData, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write output: %v\n", err)
		os.Exit(1)
	}
}

func printStats(stats generator.Stats, wall time.Duration) {
	printf("attempts: %d, vars: %s, clauses: %s, solve time: %v, wall: %v\n",
		stats.Attempts, humanInt(stats.Vars), humanInt(stats.Clauses), stats.Duration, wall)
}

func printf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// humanInt formats n with thousands separators on an interactive terminal,
// plain digits when stderr is piped or redirected.
func humanInt(n int) string {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return humanize.Comma(int64(n))
	}
	return fmt.Sprintf("%d", n)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
