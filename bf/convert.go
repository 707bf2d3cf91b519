package bf

import (
	"math/rand"

	"github.com/cplsat/cplsat/solver"
)

// litIndex assigns solver variable identifiers to clause-expression
// variables, in order of first appearance. Named variables keep their
// label; auxiliaries stay unlabeled.
type litIndex struct {
	ids    map[variable]solver.Var
	labels map[solver.Var]string
}

func newLitIndex() *litIndex {
	return &litIndex{
		ids:    make(map[variable]solver.Var),
		labels: make(map[solver.Var]string),
	}
}

// value returns the signed identifier associated with the given
// literal. The variable is interned on first sight.
func (ix *litIndex) value(l Literal) solver.Lit {
	id, ok := ix.ids[l.v]
	if !ok {
		id = solver.Var(len(ix.ids) + 1)
		ix.ids[l.v] = id
		if l.v.aux == 0 {
			ix.labels[id] = l.v.name
		}
	}
	if l.neg {
		return solver.Lit(id).Neg()
	}
	return solver.Lit(id)
}

func (ix *litIndex) intern(cs []Clause) []solver.Clause {
	res := make([]solver.Clause, 0, len(cs))
	for _, c := range cs {
		lits := make([]solver.Lit, len(c))
		for i, l := range c {
			lits[i] = ix.value(l)
		}
		cl, ok := solver.NewClause(lits...)
		if !ok {
			continue
		}
		res = append(res, cl)
	}
	return res
}

func (ix *litIndex) vars() map[solver.Var]bool {
	vars := make(map[solver.Var]bool, len(ix.ids))
	for _, id := range ix.ids {
		vars[id] = true
	}
	return vars
}

// ConvertClauses interns clause expressions as a solver CNF. Every
// variable that appears in the clauses is active, even when all the
// clauses mentioning it were tautological.
func ConvertClauses(cs []Clause) *solver.CNF {
	ix := newLitIndex()
	clauses := ix.intern(cs)
	f := solver.NewCNF(clauses)
	f.Vars = ix.vars()
	f.Labels = ix.labels
	return f
}

// ConvertClausesToCDCLInput interns clause expressions as an input
// for the CDCL procedure. A DomainError is returned when a clause
// holds more than three literals.
func ConvertClausesToCDCLInput(cs []Clause) (*solver.CDCLInput, error) {
	ix := newLitIndex()
	clauses := ix.intern(cs)
	return solver.NewCDCLInput(clauses, ix.vars(), ix.labels)
}

// Solve solves the given formula through the Tseytin lowering and the
// CDCL procedure, with the default decision seed. It returns a model
// associating each variable name with its binding, or nil if the
// formula is not satisfiable.
func Solve(f Formula) map[string]bool {
	return SolveWithSeed(f, 1)
}

// SolveWithSeed is Solve with an explicit decision seed.
func SolveWithSeed(f Formula, seed int64) map[string]bool {
	in, err := ConvertClausesToCDCLInput(TseytinClauses(f))
	if err != nil {
		// The Tseytin lowering never emits clauses above three
		// literals.
		panic(err)
	}
	s := solver.NewCDCL(in, rand.New(rand.NewSource(seed)))
	if s.Solve() != solver.Sat {
		return nil
	}
	return in.DecodeModel(s.Model())
}
