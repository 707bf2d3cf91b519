package solver

import (
	"sort"
	"strings"
)

// A CNF is a conjunction of clauses, together with the set of its
// active variables and an optional mapping from variable identifiers
// to the labels they had in the source problem.
type CNF struct {
	Clauses []Clause
	Vars    map[Var]bool
	Labels  map[Var]string
}

// NewCNF builds a CNF from already normalized clauses. The active
// variables are collected from the clauses.
func NewCNF(clauses []Clause) *CNF {
	f := &CNF{Clauses: clauses, Vars: make(map[Var]bool), Labels: make(map[Var]string)}
	for _, c := range clauses {
		for _, l := range c {
			f.Vars[l.Var()] = true
		}
	}
	return f
}

// ParseSlice builds a CNF from a list of clauses given as slices of
// signed integers. Tautological clauses are discarded.
func ParseSlice(clauses [][]int) *CNF {
	res := make([]Clause, 0, len(clauses))
	for _, raw := range clauses {
		lits := make([]Lit, len(raw))
		for i, l := range raw {
			lits[i] = Lit(l)
		}
		c, ok := NewClause(lits...)
		if !ok {
			continue
		}
		res = append(res, c)
	}
	return NewCNF(res)
}

// Copy deep-copies f, so that a destructive procedure can be run on
// the copy while the original stays intact.
func (f *CNF) Copy() *CNF {
	clauses := make([]Clause, len(f.Clauses))
	for i, c := range f.Clauses {
		clauses[i] = c.Copy()
	}
	vars := make(map[Var]bool, len(f.Vars))
	for v := range f.Vars {
		vars[v] = true
	}
	labels := make(map[Var]string, len(f.Labels))
	for v, s := range f.Labels {
		labels[v] = s
	}
	return &CNF{Clauses: clauses, Vars: vars, Labels: labels}
}

// Eval returns true iff every clause of f contains a literal made
// true by m.
func (f *CNF) Eval(m Model) bool {
	for _, c := range f.Clauses {
		sat := false
		for _, l := range c {
			if ok, bound := m.Satisfies(l); ok && bound {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}

// DecodeModel translates a model over variable identifiers back to
// the source labels. Variables without a label, such as auxiliary
// variables introduced by the 3-CNF lowering, are left out.
func (f *CNF) DecodeModel(m Model) map[string]bool {
	res := make(map[string]bool, len(f.Labels))
	for v, name := range f.Labels {
		res[name] = m[v]
	}
	return res
}

// SortClauses orders the clauses of f lexicographically. It is used
// to give deterministic output to procedures built on maps.
func (f *CNF) SortClauses() {
	sort.Slice(f.Clauses, func(i, j int) bool {
		return clauseLess(f.Clauses[i], f.Clauses[j])
	})
}

func clauseLess(c1, c2 Clause) bool {
	for i := 0; i < len(c1) && i < len(c2); i++ {
		if c1[i] != c2[i] {
			return cmpLit(c1[i], c2[i])
		}
	}
	return len(c1) < len(c2)
}

func (f *CNF) String() string {
	strs := make([]string, len(f.Clauses))
	for i, c := range f.Clauses {
		strs[i] = c.String()
	}
	return strings.Join(strs, " ")
}

// unitResolve applies unit resolution to f, destructively. Each unit
// clause {l} is recorded in m (when m is not nil), the unit clause
// and every clause containing l are removed, and the negation of l is
// removed from the remaining clauses. The process repeats while unit
// clauses remain. It returns Sat when no clause is left, Unsat when
// an empty clause appears and Indet otherwise.
func (f *CNF) unitResolve(m Model) Status {
	for {
		var unit Lit
		for _, c := range f.Clauses {
			switch len(c) {
			case 0:
				return Unsat
			case 1:
				unit = c[0]
			}
			if unit != 0 {
				break
			}
		}
		if unit == 0 {
			if len(f.Clauses) == 0 {
				return Sat
			}
			return Indet
		}
		if m != nil {
			m[unit.Var()] = unit.IsPositive()
		}
		kept := f.Clauses[:0]
		for _, c := range f.Clauses {
			if c.Has(unit) {
				continue
			}
			if c.Has(unit.Neg()) {
				c = c.without(unit.Var())
				if len(c) == 0 {
					f.Clauses = append(kept, c)
					return Unsat
				}
			}
			kept = append(kept, c)
		}
		f.Clauses = kept
	}
}

// removeTrivial drops every tautological clause of f.
func (f *CNF) removeTrivial() {
	kept := f.Clauses[:0]
	for _, c := range f.Clauses {
		if !c.Trivial() {
			kept = append(kept, c)
		}
	}
	f.Clauses = kept
}

// subsume discards every clause that is a superset of another,
// distinct clause. Duplicated clauses are kept once.
func (f *CNF) subsume() {
	removed := make([]bool, len(f.Clauses))
	for i, c := range f.Clauses {
		if removed[i] {
			continue
		}
		for j, c2 := range f.Clauses {
			if i == j || removed[j] {
				continue
			}
			if c.Subsumes(c2) && !(c.Equal(c2) && i > j) {
				removed[j] = true
			}
		}
	}
	kept := f.Clauses[:0]
	for i, c := range f.Clauses {
		if !removed[i] {
			kept = append(kept, c)
		}
	}
	f.Clauses = kept
}
