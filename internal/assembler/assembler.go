// Package assembler projects a solved placement list onto a concrete
// grid, numbers entries in reading order, attaches clues, and computes
// summary metadata -- spec section 4.5.
package assembler

import (
	"sort"

	"crossword/internal/domain"
	"crossword/internal/encoder"
)

// ClueLookup maps a solved word to its clue text.
type ClueLookup func(word string) string

// Assemble builds a Puzzle from a solved placement list. generationTimeMs
// is the caller-measured wall-clock time for the whole generation attempt
// (encoding + solving), recorded in the returned metadata.
func Assemble(placements []encoder.Placement, size int, clue ClueLookup, generationTimeMs int64) domain.Puzzle {
	grid := make([][]domain.Cell, size)
	for y := range grid {
		grid[y] = make([]domain.Cell, size)
		for x := range grid[y] {
			grid[y][x] = domain.Cell{Type: domain.CellTypeBlock}
		}
	}

	for _, p := range placements {
		for i, ch := range []byte(p.Word) {
			x, y := p.X, p.Y
			if p.Dir == domain.DirectionAcross {
				x += i
			} else {
				y += i
			}
			grid[y][x] = domain.Cell{Type: domain.CellTypeLetter, Solution: string(ch)}
		}
	}

	numbered := domain.AssignNumbers(grid)

	var across, down []domain.Clue
	for _, p := range placements {
		number := numbered[p.Y][p.X].Number
		c := domain.Clue{
			Number: number,
			Word:   p.Word,
			Clue:   clue(p.Word),
			X:      p.X,
			Y:      p.Y,
		}
		if p.Dir == domain.DirectionAcross {
			across = append(across, c)
		} else {
			down = append(down, c)
		}
	}

	sort.Slice(across, func(i, j int) bool { return across[i].Number < across[j].Number })
	sort.Slice(down, func(i, j int) bool { return down[i].Number < down[j].Number })

	filled := 0
	totalLetters := 0
	for y := range numbered {
		for x := range numbered[y] {
			if numbered[y][x].IsLetter() {
				filled++
			}
		}
	}
	for _, p := range placements {
		totalLetters += len(p.Word)
	}

	metadata := domain.Metadata{
		Density:          float64(filled) / float64(size*size),
		WordCount:        len(placements),
		TotalLetters:     totalLetters,
		GenerationTimeMs: generationTimeMs,
	}

	return domain.Puzzle{
		Size: size,
		Grid: numbered,
		Clues: domain.Clues{
			Across: across,
			Down:   down,
		},
		Metadata: metadata,
	}
}
