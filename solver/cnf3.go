package solver

import (
	"fmt"

	"github.com/samber/lo"
)

// pair is an unordered pair of literals on two distinct variables,
// normalized so that the smaller variable comes first. Using a
// comparable struct as a map key means lookups compare both
// components, so pairs differing only by a sign never alias.
type pair struct {
	a, b Lit
}

func newPair(l1, l2 Lit) pair {
	if l1.Var() > l2.Var() {
		l1, l2 = l2, l1
	}
	return pair{a: l1, b: l2}
}

// CNF3 is an interned representation of a 3-CNF. A clause {p, q} is
// stored as the two implications not(p) -> q and not(q) -> p; a
// clause {p, q, r} as the three entries (not(p), not(q)) -> r,
// (not(p), not(r)) -> q and (not(q), not(r)) -> p. Unit clauses are
// not part of a CNF3, they seed the CDCL trail instead.
type CNF3 struct {
	Vars   map[Var]bool
	Labels map[Var]string
	double [][]Lit // indexed by the dense encoding of the literal
	triple map[pair][]Lit
	maxVar Var
}

func newCNF3(labels map[Var]string) *CNF3 {
	if labels == nil {
		labels = make(map[Var]string)
	}
	return &CNF3{
		Vars:   make(map[Var]bool),
		Labels: labels,
		triple: make(map[pair][]Lit),
	}
}

// Double returns the literals implied by l through binary clauses.
func (f *CNF3) Double(l Lit) []Lit {
	idx := l.enc()
	if idx >= len(f.double) {
		return nil
	}
	return f.double[idx]
}

// Triple returns the literals implied by having both l1 and l2 set,
// through ternary clauses.
func (f *CNF3) Triple(l1, l2 Lit) []Lit {
	if l1.Var() == l2.Var() {
		return nil
	}
	return f.triple[newPair(l1, l2)]
}

func (f *CNF3) grow(v Var) {
	if v > f.maxVar {
		f.maxVar = v
	}
	if need := 2*int(f.maxVar) + 2; need > len(f.double) {
		f.double = append(f.double, make([][]Lit, need-len(f.double))...)
	}
}

func (f *CNF3) addDouble(key, implied Lit) {
	idx := key.enc()
	for _, l := range f.double[idx] {
		if l == implied {
			return
		}
	}
	f.double[idx] = append(f.double[idx], implied)
}

func (f *CNF3) addTriple(k1, k2, implied Lit) {
	p := newPair(k1, k2)
	for _, l := range f.triple[p] {
		if l == implied {
			return
		}
	}
	f.triple[p] = append(f.triple[p], implied)
}

// CDCLInput is the input of the CDCL procedure: an interned 3-CNF
// plus the unit literals that seed the initial trail.
type CDCLInput struct {
	CNF3  *CNF3
	Units []Lit
	unsat bool
}

// NewCDCLInput interns the given clause set. Clauses must hold at
// most three literals each, otherwise a DomainError is returned.
// Tautological clauses are discarded; an empty clause marks the
// input as trivially unsatisfiable. vars may extend the active
// variable set beyond the variables occurring in the clauses; labels
// carries the source names and may be nil.
func NewCDCLInput(clauses []Clause, vars map[Var]bool, labels map[Var]string) (*CDCLInput, error) {
	f := newCNF3(labels)
	in := &CDCLInput{CNF3: f}
	for v := range vars {
		f.Vars[v] = true
		f.grow(v)
	}
	for _, c := range clauses {
		if c.Trivial() {
			continue
		}
		for _, l := range c {
			f.Vars[l.Var()] = true
			f.grow(l.Var())
		}
		switch len(c) {
		case 0:
			in.unsat = true
		case 1:
			in.Units = append(in.Units, c[0])
		case 2:
			p, q := c[0], c[1]
			f.addDouble(p.Neg(), q)
			f.addDouble(q.Neg(), p)
		case 3:
			p, q, r := c[0], c[1], c[2]
			f.addTriple(p.Neg(), q.Neg(), r)
			f.addTriple(p.Neg(), r.Neg(), q)
			f.addTriple(q.Neg(), r.Neg(), p)
		default:
			return nil, &DomainError{Msg: fmt.Sprintf("clause %v has %d literals, 3-CNF expected", c, len(c))}
		}
	}
	return in, nil
}

// ToCNF rebuilds a plain CNF holding the same clauses as the input.
// Each binary clause is stored twice and each ternary clause three
// times in the index, so the reconstruction deduplicates through the
// canonical clause ordering. The output clause list is sorted.
func (in *CDCLInput) ToCNF() *CNF {
	seen := make(map[string]Clause)
	add := func(lits ...Lit) {
		c, ok := NewClause(lits...)
		if !ok {
			return
		}
		seen[c.String()] = c
	}
	for _, l := range in.Units {
		add(l)
	}
	for idx, implied := range in.CNF3.double {
		key := decLit(idx)
		for _, q := range implied {
			add(key.Neg(), q)
		}
	}
	for p, implied := range in.CNF3.triple {
		for _, r := range implied {
			add(p.a.Neg(), p.b.Neg(), r)
		}
	}
	clauses := lo.Values(seen)
	if in.unsat {
		clauses = append(clauses, Clause{})
	}
	f := NewCNF(clauses)
	for v := range in.CNF3.Vars {
		f.Vars[v] = true
	}
	for v, name := range in.CNF3.Labels {
		f.Labels[v] = name
	}
	f.SortClauses()
	return f
}

// DecodeModel translates a model over variable identifiers back to
// the source labels, leaving unlabeled auxiliary variables out.
func (in *CDCLInput) DecodeModel(m Model) map[string]bool {
	res := make(map[string]bool, len(in.CNF3.Labels))
	for v, name := range in.CNF3.Labels {
		res[name] = m[v]
	}
	return res
}
