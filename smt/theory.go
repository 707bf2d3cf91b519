// Package smt defines the theory interface through which solvers are
// plugged, and the propositional theory backed by the CDCL engine.
package smt

import (
	"github.com/cplsat/cplsat/cpl"
)

// A Constraint is a term typed by some theory, ready to be added to
// one of its problems.
type Constraint interface{}

// A Theory reads CPL terms into typed constraints and creates empty
// problems for them.
type Theory interface {
	// Read types the given term. It returns false when the term does
	// not belong to the theory.
	Read(t *cpl.Term) (Constraint, bool)
	// EmptyProblem returns a fresh problem accepting the theory's
	// constraints.
	EmptyProblem() Problem
}

// A Problem accumulates constraints and decides their conjunction.
type Problem interface {
	// Add inserts a constraint produced by the owning theory's Read.
	Add(c Constraint)
	// Check decides the conjunction of the added constraints.
	Check() bool
	// Assignment returns the satisfying assignment found by the last
	// successful Check, keyed by source identifier.
	Assignment() map[string]bool
}
