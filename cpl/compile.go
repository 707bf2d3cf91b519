package cpl

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/cplsat/cplsat/bf"
	"github.com/cplsat/cplsat/solver"
)

// CompileFormula parses and expands a CPL program and lowers its
// formula term to a boolean expression. assigns feeds the (? v)
// probes and may be nil when the program uses none.
func CompileFormula(source string, assigns map[string]bool) (bf.Formula, error) {
	terms, err := ParseTerms(source)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	t, err := ExpandProgram(terms)
	if err != nil {
		return nil, errors.Wrap(err, "macro expansion")
	}
	f, err := LowerTerm(t, assigns)
	if err != nil {
		return nil, errors.Wrap(err, "lowering")
	}
	return f, nil
}

// Compile compiles a CPL program down to clause expressions, through
// the Tseytin 3-CNF lowering when tseytin is true and through the
// distributive one otherwise.
func Compile(source string, assigns map[string]bool, tseytin bool) ([]bf.Clause, error) {
	f, err := CompileFormula(source, assigns)
	if err != nil {
		return nil, err
	}
	if tseytin {
		return bf.TseytinClauses(f), nil
	}
	return bf.CNFClauses(f), nil
}

// Solve compiles a CPL program through the Tseytin lowering and runs
// the CDCL procedure on it, seeding the decision ordering with seed.
// It returns the bindings of the source variables, or nil when the
// program is unsatisfiable.
func Solve(source string, assigns map[string]bool, seed int64) (map[string]bool, error) {
	cs, err := Compile(source, assigns, true)
	if err != nil {
		return nil, err
	}
	in, err := bf.ConvertClausesToCDCLInput(cs)
	if err != nil {
		return nil, errors.Wrap(err, "clause conversion")
	}
	s := solver.NewCDCL(in, rand.New(rand.NewSource(seed)))
	if s.Solve() != solver.Sat {
		return nil, nil
	}
	return in.DecodeModel(s.Model()), nil
}
