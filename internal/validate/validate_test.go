package validate

import (
	"encoding/json"
	"strings"
	"testing"

	"crossword/internal/domain"
)

func validPuzzle() *domain.Puzzle {
	return &domain.Puzzle{
		ID:   "p1",
		Size: 3,
		Grid: [][]domain.Cell{
			{{Type: domain.CellTypeLetter, Solution: "C", Number: 1}, {Type: domain.CellTypeLetter, Solution: "A"}, {Type: domain.CellTypeLetter, Solution: "T"}},
			{{Type: domain.CellTypeLetter, Solution: "A"}, {Type: domain.CellTypeBlock}, {Type: domain.CellTypeBlock}},
			{{Type: domain.CellTypeLetter, Solution: "R"}, {Type: domain.CellTypeBlock}, {Type: domain.CellTypeBlock}},
		},
		Clues: domain.Clues{
			Across: []domain.Clue{{Number: 1, Word: "CAT", Clue: "a clue", X: 0, Y: 0}},
			Down:   []domain.Clue{{Number: 1, Word: "CAR", Clue: "another clue", X: 0, Y: 0}},
		},
		Metadata: domain.Metadata{
			Density:      5.0 / 9.0,
			WordCount:    2,
			TotalLetters: 6,
		},
	}
}

func TestValidatePuzzleJSON_InvalidJSON(t *testing.T) {
	errs := ValidatePuzzleJSON([]byte("not valid json"))
	if len(errs) == 0 {
		t.Fatal("expected error for invalid JSON")
	}
	if !strings.Contains(errs[0].Message, "invalid JSON") {
		t.Errorf("expected 'invalid JSON' in error, got: %s", errs[0].Message)
	}
}

func TestValidatePuzzleJSON_MissingRequiredField(t *testing.T) {
	data := []byte(`{"size": 2, "grid": [], "clues": {"across": [], "down": []}, "metadata": {"density": 0, "word_count": 0, "total_letters": 0}}`)
	errs := ValidatePuzzleJSON(data)
	if len(errs) == 0 {
		t.Fatal("expected error for missing id field")
	}
}

func TestValidatePuzzleJSON_InvalidCellType(t *testing.T) {
	puzzle := validPuzzle()
	data, err := json.Marshal(puzzle)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	data = []byte(strings.Replace(string(data), `"type":"letter"`, `"type":"wall"`, 1))

	errs := ValidatePuzzleJSON(data)
	if len(errs) == 0 {
		t.Error("expected error for invalid cell type")
	}
}

func TestValidatePuzzleJSON_Valid(t *testing.T) {
	data, err := json.Marshal(validPuzzle())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if errs := ValidatePuzzleJSON(data); len(errs) != 0 {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestValidatePuzzleSemantic_GridNotRectangular(t *testing.T) {
	puzzle := validPuzzle()
	puzzle.Grid = append(puzzle.Grid, make([]domain.Cell, 5))

	errs := ValidatePuzzleSemantic(puzzle)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "columns") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a rectangularity error, got: %v", errs)
	}
}

func TestValidatePuzzleSemantic_GridSizeOutOfRange(t *testing.T) {
	puzzle := validPuzzle()
	puzzle.Grid = [][]domain.Cell{{{Type: domain.CellTypeBlock}}}

	errs := ValidatePuzzleSemantic(puzzle)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Path, "/grid") && strings.Contains(e.Message, "must be") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a grid size error, got: %v", errs)
	}
}

func TestValidatePuzzleSemantic_InvalidSolutionLetter(t *testing.T) {
	puzzle := validPuzzle()
	puzzle.Grid[0][0].Solution = "1"

	errs := ValidatePuzzleSemantic(puzzle)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "A-Z") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an invalid-solution error, got: %v", errs)
	}
}

func TestValidatePuzzleSemantic_ClueWordMismatchesGrid(t *testing.T) {
	puzzle := validPuzzle()
	puzzle.Clues.Across[0].Word = "ZZ"

	errs := ValidatePuzzleSemantic(puzzle)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Path, "/clues/across/0/word") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an across word mismatch error, got: %v", errs)
	}
}

func TestValidatePuzzleSemantic_UncoveredLetterCell(t *testing.T) {
	puzzle := validPuzzle()
	puzzle.Clues.Down = nil

	errs := ValidatePuzzleSemantic(puzzle)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "not part of any clue entry") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an uncovered-cell error, got: %v", errs)
	}
}

func TestValidatePuzzleSemantic_ValidPuzzle(t *testing.T) {
	errs := ValidatePuzzleSemantic(validPuzzle())
	if len(errs) != 0 {
		t.Errorf("expected no errors for a valid puzzle, got: %v", errs)
	}
}

func TestValidatePuzzle_EndToEnd(t *testing.T) {
	data, err := json.Marshal(validPuzzle())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if errs := ValidatePuzzle(data); len(errs) != 0 {
		t.Errorf("expected no errors, got: %v", errs)
	}
}
