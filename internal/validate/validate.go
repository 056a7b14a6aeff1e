// Package validate provides JSON schema and semantic validation for puzzles.
package validate

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"crossword/internal/domain"
)

//go:embed schemas/*.json
var schemasFS embed.FS

var puzzleSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	puzzleData, err := schemasFS.ReadFile("schemas/puzzle.schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to read puzzle schema: %v", err))
	}
	if err := compiler.AddResource("puzzle.schema.json", strings.NewReader(string(puzzleData))); err != nil {
		panic(fmt.Sprintf("failed to add puzzle schema: %v", err))
	}

	puzzleSchema, err = compiler.Compile("puzzle.schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile puzzle schema: %v", err))
	}
}

// ValidationError represents a single validation error with path context.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no errors"
	}
	var msgs []string
	for _, e := range ve {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidatePuzzleJSON validates puzzle JSON against the schema.
func ValidatePuzzleJSON(data []byte) ValidationErrors {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ValidationErrors{{Path: "", Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}

	if err := puzzleSchema.Validate(doc); err != nil {
		return schemaErrorToValidationErrors(err)
	}

	return nil
}

func schemaErrorToValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors

	switch e := err.(type) {
	case *jsonschema.ValidationError:
		errors = append(errors, extractValidationErrors(e)...)
	default:
		errors = append(errors, ValidationError{
			Path:    "",
			Message: err.Error(),
		})
	}

	return errors
}

func extractValidationErrors(ve *jsonschema.ValidationError) ValidationErrors {
	var errors ValidationErrors

	if ve.Message != "" {
		errors = append(errors, ValidationError{
			Path:    ve.InstanceLocation,
			Message: ve.Message,
		})
	}

	for _, cause := range ve.Causes {
		errors = append(errors, extractValidationErrors(cause)...)
	}

	return errors
}

// Grid size bounds for an American-style puzzle. 3 is the smallest grid
// the generator will accept; 25 is a generous upper bound on what the
// connectivity encoding stays tractable for.
const (
	MinGridSize = 3
	MaxGridSize = 25
)

// ValidatePuzzleSemantic performs semantic validation on a parsed puzzle.
// This catches errors that JSON Schema cannot express.
func ValidatePuzzleSemantic(p *domain.Puzzle) ValidationErrors {
	var errors ValidationErrors

	if len(p.Grid) > 0 {
		expectedCols := len(p.Grid[0])
		for i, row := range p.Grid {
			if len(row) != expectedCols {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("/grid/%d", i),
					Message: fmt.Sprintf("row has %d columns, expected %d", len(row), expectedCols),
				})
			}
		}
	}

	rows, cols := p.GridDimensions()
	if rows < MinGridSize || rows > MaxGridSize || cols < MinGridSize || cols > MaxGridSize {
		errors = append(errors, ValidationError{
			Path:    "/grid",
			Message: fmt.Sprintf("grid must be %dx%d to %dx%d, got %dx%d", MinGridSize, MinGridSize, MaxGridSize, MaxGridSize, rows, cols),
		})
	}

	for r, row := range p.Grid {
		for c, cell := range row {
			if cell.IsLetter() {
				if len(cell.Solution) != 1 || cell.Solution[0] < 'A' || cell.Solution[0] > 'Z' {
					errors = append(errors, ValidationError{
						Path:    fmt.Sprintf("/grid/%d/%d/solution", r, c),
						Message: fmt.Sprintf("letter cell must have A-Z solution, got %q", cell.Solution),
					})
				}
			}
		}
	}

	for i, clue := range p.Clues.Across {
		gridWord := extractWord(p.Grid, clue.X, clue.Y, len(clue.Word), domain.DirectionAcross)
		if gridWord != clue.Word {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("/clues/across/%d/word", i),
				Message: fmt.Sprintf("word %q doesn't match grid %q", clue.Word, gridWord),
			})
		}
	}

	for i, clue := range p.Clues.Down {
		gridWord := extractWord(p.Grid, clue.X, clue.Y, len(clue.Word), domain.DirectionDown)
		if gridWord != clue.Word {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("/clues/down/%d/word", i),
				Message: fmt.Sprintf("word %q doesn't match grid %q", clue.Word, gridWord),
			})
		}
	}

	cellCoverage := make(map[[2]int]bool)
	for _, clue := range p.Clues.Across {
		for i := range clue.Word {
			cellCoverage[[2]int{clue.X + i, clue.Y}] = true
		}
	}
	for _, clue := range p.Clues.Down {
		for i := range clue.Word {
			cellCoverage[[2]int{clue.X, clue.Y + i}] = true
		}
	}

	for y, row := range p.Grid {
		for x, cell := range row {
			if cell.IsLetter() && !cellCoverage[[2]int{x, y}] {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("/grid/%d/%d", y, x),
					Message: "letter cell is not part of any clue entry",
				})
			}
		}
	}

	return errors
}

func extractWord(grid [][]domain.Cell, x, y, length int, dir domain.Direction) string {
	var word strings.Builder
	for i := 0; i < length; i++ {
		cx, cy := x, y
		if dir == domain.DirectionAcross {
			cx += i
		} else {
			cy += i
		}
		if cy >= 0 && cy < len(grid) && cx >= 0 && cx < len(grid[cy]) {
			word.WriteString(grid[cy][cx].Solution)
		}
	}
	return word.String()
}

// ValidatePuzzle performs both schema and semantic validation.
func ValidatePuzzle(data []byte) ValidationErrors {
	schemaErrors := ValidatePuzzleJSON(data)
	if len(schemaErrors) > 0 {
		return schemaErrors
	}

	var puzzle domain.Puzzle
	if err := json.Unmarshal(data, &puzzle); err != nil {
		return ValidationErrors{{Path: "", Message: fmt.Sprintf("failed to parse puzzle: %v", err)}}
	}

	return ValidatePuzzleSemantic(&puzzle)
}
