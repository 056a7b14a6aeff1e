package encoder

import (
	"errors"
	"testing"

	"crossword/internal/domain"
	"crossword/internal/satcnf"
)

func TestEnumeratePlacements(t *testing.T) {
	e := New([]string{"CAT"}, Config{Size: 5})

	wantAcross := 5 * (5 - 3 + 1)
	wantDown := wantAcross
	if len(e.acrossPlacements) != wantAcross {
		t.Errorf("across placements = %d, want %d", len(e.acrossPlacements), wantAcross)
	}
	if len(e.downPlacements) != wantDown {
		t.Errorf("down placements = %d, want %d", len(e.downPlacements), wantDown)
	}
}

func TestEnumeratePlacements_WordTooLong(t *testing.T) {
	e := New([]string{"ELEPHANT"}, Config{Size: 4})
	if len(e.placements) != 0 {
		t.Errorf("expected no placements for a word longer than the grid, got %d", len(e.placements))
	}
}

func TestBoundaryClausesForbidExtension(t *testing.T) {
	// CAT placed across at (0,0) on a 4-wide grid leaves one cell after
	// it; a CATS placement covering that same row must be blocked by a
	// boundary clause rather than left for the solver to discover by luck.
	e := New([]string{"CAT", "CATS"}, Config{Size: 4})
	e.Build()

	var catIdx, catsIdx = -1, -1
	for i, p := range e.placements {
		if p.Word == "CAT" && p.X == 0 && p.Y == 0 && p.Dir == domain.DirectionAcross {
			catIdx = i
		}
		if p.Word == "CATS" && p.X == 0 && p.Y == 0 && p.Dir == domain.DirectionAcross {
			catsIdx = i
		}
	}
	if catIdx == -1 || catsIdx == -1 {
		t.Fatal("expected both CAT and CATS placements at (0,0) across")
	}

	// CAT's boundary clause should forbid g(3,0,'S'); confirm that
	// variable exists (CATS covers it) so the clause has a real subject.
	sVar, ok := e.gridVar[gridKey{X: 3, Y: 0, C: 'S'}]
	if !ok {
		t.Fatal("expected a grid variable for the boundary cell letter S")
	}

	want := []satcnf.Lit{e.placementLit(catIdx).Negative(), sVar.Lit(false)}
	found := false
	for _, clause := range e.formula.Clauses() {
		if len(clause) == 2 && clause[0] == want[0] && clause[1] == want[1] {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected boundary clause (-CAT@(0,0) OR -g(3,0,S))")
	}
}

func TestExtractPlacementsDetectsInconsistentModel(t *testing.T) {
	e := New([]string{"CAT"}, Config{Size: 3})
	e.Build()

	// Nothing is ever true: every grid variable lookup reports false, so
	// the validation pass has nothing to flag.
	_, err := e.ExtractPlacements(func(v satcnf.Var) bool { return false })
	if err != nil {
		t.Fatalf("expected no error when nothing is selected: %v", err)
	}

	// A grid letter set true with no placement selected is inconsistent
	// and must be reported as an AssemblyError.
	gVar := e.gridVar[gridKey{X: 0, Y: 0, C: 'C'}]
	_, err = e.ExtractPlacements(func(v satcnf.Var) bool { return v == gVar })
	var asmErr *AssemblyError
	if !errors.As(err, &asmErr) {
		t.Fatalf("expected *AssemblyError for an uncovered grid letter, got %v", err)
	}
}
