package encoder

import (
	"fmt"

	"crossword/internal/satcnf"
)

// AssemblyError indicates the SAT model was internally inconsistent: a
// grid-letter variable was assigned true without any selected placement
// actually covering that cell with that letter. This points at an encoder
// bug, not a bad input, and is fatal to the generation attempt.
type AssemblyError struct {
	X, Y int
	C    byte
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembly error: cell (%d,%d) assigned letter %q with no covering placement", e.X, e.Y, e.C)
}

// ExtractPlacements walks every placement variable under assign and
// collects the ones set true, then validates the result against the grid
// letter variables: every true g(x,y,c) must be covered by at least one
// selected placement at that cell and letter, per spec section 4.3 "Model
// extraction". A violation returns *AssemblyError.
func (e *Encoder) ExtractPlacements(assign func(satcnf.Var) bool) ([]Placement, error) {
	var solution []Placement
	selected := make(map[int]bool)
	for idx := range e.placements {
		if assign(e.placementVar[idx]) {
			solution = append(solution, e.placements[idx])
			selected[idx] = true
		}
	}

	for key, indices := range e.coveringPlacements {
		gVar, ok := e.gridVar[key]
		if !ok || !assign(gVar) {
			continue
		}
		covered := false
		for _, idx := range indices {
			if selected[idx] {
				covered = true
				break
			}
		}
		if !covered {
			return nil, &AssemblyError{X: key.X, Y: key.Y, C: key.C}
		}
	}

	return solution, nil
}

