// Package satcnf provides solver-agnostic CNF bookkeeping: variable
// minting, clause buffering, and a couple of reusable cardinality gadgets
// (at-most-one, sequential-counter at-least-k). It owns no knowledge of
// crosswords and no knowledge of any particular SAT backend; the encoder
// builds a Formula here, and the solver package is the only place that
// ever talks to a concrete CDCL implementation.
package satcnf

// Var is a one-based CNF variable index. Variable 0 is never issued.
type Var int

// Lit is a signed literal: positive for the variable asserted true,
// negative for its negation.
type Lit int

// Lit builds a literal from a variable and a polarity.
func (v Var) Lit(positive bool) Lit {
	if positive {
		return Lit(v)
	}
	return Lit(-v)
}

// Var returns the variable underlying a literal, discarding polarity.
func (l Lit) Var() Var {
	if l < 0 {
		return Var(-l)
	}
	return Var(l)
}

// Negative returns the negation of l.
func (l Lit) Negative() Lit {
	return -l
}

// Positive reports whether l asserts its variable true.
func (l Lit) Positive() bool {
	return l > 0
}

// Formula is a growable CNF instance: a variable counter and a clause list.
type Formula struct {
	numVars int
	clauses [][]Lit
}

// NewFormula returns an empty formula.
func NewFormula() *Formula {
	return &Formula{}
}

// NewVar mints a fresh variable.
func (f *Formula) NewVar() Var {
	f.numVars++
	return Var(f.numVars)
}

// AddClause appends a disjunction of literals to the formula. An empty
// clause makes the formula trivially unsatisfiable; callers should not
// rely on this as a deliberate mechanism.
func (f *Formula) AddClause(lits ...Lit) {
	clause := make([]Lit, len(lits))
	copy(clause, lits)
	f.clauses = append(f.clauses, clause)
}

// NumVars returns the number of variables minted so far.
func (f *Formula) NumVars() int {
	return f.numVars
}

// Clauses returns the buffered clauses. The returned slice aliases
// internal storage and must not be modified by the caller.
func (f *Formula) Clauses() [][]Lit {
	return f.clauses
}

// AtMostOne asserts that at most one literal in lits is true, via pairwise
// negation: for every pair (a, b), the clause (-a OR -b). Quadratic in
// len(lits); fine for the small cardinalities this module uses it for
// (one letter per cell, one placement per word).
func (f *Formula) AtMostOne(lits []Lit) {
	for i := 0; i < len(lits); i++ {
		for j := i + 1; j < len(lits); j++ {
			f.AddClause(lits[i].Negative(), lits[j].Negative())
		}
	}
}

// AtLeastK asserts that at least k of lits are true, using a sequential
// counter: aux[i][j] means "at least j of the first i+1 literals are true".
// Each aux[i][j] is a true biconditional with the count it represents (both
// the forward premise=>aux implications and the converse aux=>premise
// implications are emitted), so the solver cannot satisfy the gadget by
// setting aux variables true without the underlying literals backing them.
// The gadget is linear in len(lits)*k, unlike the exponential blowup of a
// naive at-least-k-of-n clause enumeration.
//
// k <= 0 is a no-op (the constraint is vacuously satisfied). k > len(lits)
// adds a single empty (unsatisfiable) clause, matching the mathematical
// fact that you cannot have more true literals than there are literals.
func (f *Formula) AtLeastK(lits []Lit, k int) {
	n := len(lits)
	if k <= 0 {
		return
	}
	if k > n {
		f.AddClause()
		return
	}
	if k == n {
		for _, l := range lits {
			f.AddClause(l)
		}
		return
	}

	// aux[i][j] is a fresh variable for j in [1, k], i in [0, n-1].
	aux := make([][]Var, n)
	for i := range aux {
		aux[i] = make([]Var, k+1)
		for j := 1; j <= k; j++ {
			aux[i][j] = f.NewVar()
		}
	}

	auxLit := func(i, j int) Lit {
		return aux[i][j].Lit(true)
	}

	// aux[0][1] <=> lits[0].
	f.AddClause(lits[0].Negative(), auxLit(0, 1))
	f.AddClause(auxLit(0, 1).Negative(), lits[0])
	// aux[0][j] false for j > 1: nothing can count past 1 after one literal.
	for j := 2; j <= k; j++ {
		f.AddClause(auxLit(0, j).Negative())
	}

	for i := 1; i < n; i++ {
		// aux[i][1] <=> (lits[i] OR aux[i-1][1]).
		f.AddClause(lits[i].Negative(), auxLit(i, 1))
		f.AddClause(auxLit(i-1, 1).Negative(), auxLit(i, 1))
		f.AddClause(auxLit(i, 1).Negative(), lits[i], auxLit(i-1, 1))

		for j := 2; j <= k; j++ {
			// aux[i][j] <=> (aux[i-1][j] OR (aux[i-1][j-1] AND lits[i])).
			f.AddClause(auxLit(i-1, j).Negative(), auxLit(i, j))
			f.AddClause(auxLit(i-1, j-1).Negative(), lits[i].Negative(), auxLit(i, j))
			f.AddClause(auxLit(i, j).Negative(), auxLit(i-1, j), auxLit(i-1, j-1))
			f.AddClause(auxLit(i, j).Negative(), auxLit(i-1, j), lits[i])
		}
	}

	// The final running count must have reached k.
	f.AddClause(auxLit(n-1, k))
}

// AtMostK asserts that at most k of lits are true. Implemented by running
// AtLeastK on the negated literals for (n-k), which is simpler than a
// dedicated at-most-k sequential counter and reuses the same gadget.
func (f *Formula) AtMostK(lits []Lit, k int) {
	n := len(lits)
	if k >= n {
		return
	}
	negated := make([]Lit, n)
	for i, l := range lits {
		negated[i] = l.Negative()
	}
	f.AtLeastK(negated, n-k)
}
