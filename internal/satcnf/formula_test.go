package satcnf

import "testing"

func TestNewVarIncrements(t *testing.T) {
	f := NewFormula()
	a := f.NewVar()
	b := f.NewVar()
	if a == b {
		t.Fatalf("expected distinct variables, got %d and %d", a, b)
	}
	if f.NumVars() != 2 {
		t.Fatalf("NumVars() = %d, want 2", f.NumVars())
	}
}

func TestLitPolarity(t *testing.T) {
	f := NewFormula()
	v := f.NewVar()

	pos := v.Lit(true)
	neg := v.Lit(false)

	if !pos.Positive() {
		t.Error("expected positive literal to report Positive() == true")
	}
	if neg.Positive() {
		t.Error("expected negative literal to report Positive() == false")
	}
	if pos.Var() != v || neg.Var() != v {
		t.Error("Var() should recover the original variable regardless of polarity")
	}
	if pos.Negative() != neg {
		t.Error("Negative() of a positive literal should equal the negative literal")
	}
}

func TestAtMostOne(t *testing.T) {
	f := NewFormula()
	vars := make([]Var, 3)
	lits := make([]Lit, 3)
	for i := range vars {
		vars[i] = f.NewVar()
		lits[i] = vars[i].Lit(true)
	}
	f.AtMostOne(lits)

	// Pairwise negation over 3 literals yields C(3,2) = 3 clauses.
	if len(f.Clauses()) != 3 {
		t.Fatalf("AtMostOne over 3 literals produced %d clauses, want 3", len(f.Clauses()))
	}
	for _, clause := range f.Clauses() {
		if len(clause) != 2 {
			t.Errorf("expected binary clause, got %d literals", len(clause))
		}
	}
}

func TestAtLeastKAllTrue(t *testing.T) {
	f := NewFormula()
	lits := []Lit{f.NewVar().Lit(true), f.NewVar().Lit(true)}
	f.AtLeastK(lits, 2)

	// k == n: one unit clause per literal, no aux variables.
	if f.NumVars() != 2 {
		t.Fatalf("expected no auxiliary variables when k == n, got NumVars() = %d", f.NumVars())
	}
	if len(f.Clauses()) != 2 {
		t.Fatalf("expected 2 unit clauses, got %d", len(f.Clauses()))
	}
}

func TestAtLeastKImpossible(t *testing.T) {
	f := NewFormula()
	lits := []Lit{f.NewVar().Lit(true)}
	f.AtLeastK(lits, 5)

	clauses := f.Clauses()
	if len(clauses) != 1 || len(clauses[0]) != 0 {
		t.Fatalf("expected a single empty (unsatisfiable) clause when k > n, got %v", clauses)
	}
}

func TestAtLeastKZeroIsNoOp(t *testing.T) {
	f := NewFormula()
	lits := []Lit{f.NewVar().Lit(true)}
	f.AtLeastK(lits, 0)
	if len(f.Clauses()) != 0 {
		t.Fatalf("AtLeastK with k=0 should add no clauses, got %d", len(f.Clauses()))
	}
}

func TestAtLeastKMintsAuxVars(t *testing.T) {
	f := NewFormula()
	n := 5
	lits := make([]Lit, n)
	for i := range lits {
		lits[i] = f.NewVar().Lit(true)
	}
	k := 2
	f.AtLeastK(lits, k)

	wantAux := n * k
	gotAux := f.NumVars() - n
	if gotAux != wantAux {
		t.Errorf("AtLeastK minted %d aux vars, want %d", gotAux, wantAux)
	}
	if len(f.Clauses()) == 0 {
		t.Error("expected AtLeastK to add clauses for 0 < k < n")
	}
}

func TestAtMostK(t *testing.T) {
	f := NewFormula()
	lits := []Lit{f.NewVar().Lit(true), f.NewVar().Lit(true), f.NewVar().Lit(true)}
	f.AtMostK(lits, 3)
	if len(f.Clauses()) != 0 {
		t.Fatalf("AtMostK(lits, len(lits)) should add no clauses, got %d", len(f.Clauses()))
	}
}
