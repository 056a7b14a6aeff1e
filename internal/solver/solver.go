// Package solver wraps a CDCL SAT backend (github.com/go-air/gini) behind
// a small interface matching spec section 4.4: add a formula, solve once,
// get back a satisfying assignment or a definitive Unsat/error outcome.
package solver

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"crossword/internal/satcnf"
)

// Outcome is the result of one Solve call.
type Outcome int

const (
	// Unsat means the formula has no satisfying assignment.
	Unsat Outcome = iota
	// Sat means a satisfying assignment was found; call Value to read it.
	Sat
)

// Error wraps a backend-reported failure (spec's SolverError).
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("solver error: %s", e.Message)
}

// Driver solves a single CNF formula. A Driver is single-use: construct
// one per generation attempt, matching spec section 5's "single-threaded
// per invocation" contract.
type Driver struct {
	sat *gini.Gini
}

// NewDriver loads a formula into a fresh backend instance.
func NewDriver(f *satcnf.Formula) *Driver {
	s := gini.New()
	for _, clause := range f.Clauses() {
		lits := make([]z.Lit, len(clause))
		for i, lit := range clause {
			lits[i] = z.Dimacs2Lit(int(lit))
		}
		s.Add(lits...)
		s.Add(0)
	}
	return &Driver{sat: s}
}

// Solve runs the CDCL search to completion. It blocks until a result is
// found; per spec section 5 this call is not cancellable mid-search —
// timeouts are the caller's responsibility, imposed by killing the job.
func (d *Driver) Solve() (Outcome, error) {
	switch d.sat.Solve() {
	case 1:
		return Sat, nil
	case -1:
		return Unsat, nil
	default:
		return Unsat, &Error{Message: "solver returned no definitive result"}
	}
}

// Value reports the truth assignment of v in the model found by a
// preceding successful Solve call.
func (d *Driver) Value(v satcnf.Var) bool {
	return d.sat.Value(z.Var(int(v)).Pos())
}
