package smt

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/cplsat/cplsat/bf"
	"github.com/cplsat/cplsat/cpl"
	"github.com/cplsat/cplsat/solver"
)

// BoolTheory is the propositional theory. Terms are lowered to
// boolean expressions and problems are decided by the CDCL procedure
// on their Tseytin lowering.
type BoolTheory struct {
	// Assigns feeds the (? v) probes of the read terms. May be nil.
	Assigns map[string]bool
	// Seed drives the decision ordering of the underlying solver.
	Seed int64
	// Log receives solving traces. The standard logger is used when
	// nil.
	Log logrus.FieldLogger
}

// Read lowers the term to a boolean expression. It returns false for
// terms that do not lower, such as terms with unknown operators.
func (th *BoolTheory) Read(t *cpl.Term) (Constraint, bool) {
	f, err := cpl.LowerTerm(t, th.Assigns)
	if err != nil {
		return nil, false
	}
	return f, true
}

// EmptyProblem returns a fresh propositional problem.
func (th *BoolTheory) EmptyProblem() Problem {
	return &boolProblem{theory: th}
}

type boolProblem struct {
	theory      *BoolTheory
	constraints []bf.Formula
	model       map[string]bool
}

func (p *boolProblem) Add(c Constraint) {
	p.constraints = append(p.constraints, c.(bf.Formula))
}

func (p *boolProblem) Check() bool {
	if len(p.constraints) == 0 {
		p.model = map[string]bool{}
		return true
	}
	seed := p.theory.Seed
	if seed == 0 {
		seed = 1
	}
	in, err := bf.ConvertClausesToCDCLInput(bf.TseytinClauses(bf.And(p.constraints...)))
	if err != nil {
		// The Tseytin lowering never leaves the 3-CNF domain.
		panic(err)
	}
	s := solver.NewCDCL(in, rand.New(rand.NewSource(seed)))
	if p.theory.Log != nil {
		s.Log = p.theory.Log
	}
	if s.Solve() != solver.Sat {
		p.model = nil
		return false
	}
	p.model = in.DecodeModel(s.Model())
	return true
}

func (p *boolProblem) Assignment() map[string]bool {
	return p.model
}
