package solver

import (
	"sort"
	"strconv"
	"strings"
)

// A Clause is a duplicate-free disjunction of literals. Literals are
// kept sorted by variable, the positive literal first when both signs
// of a variable would appear; clauses containing both signs of a
// variable are tautologies and are never constructed.
type Clause []Lit

// cmpLit orders literals by variable, positive sign first.
func cmpLit(l1, l2 Lit) bool {
	if l1.Var() != l2.Var() {
		return l1.Var() < l2.Var()
	}
	return l1 > l2
}

// NewClause normalizes the given literals into a clause: duplicates
// are removed and literals sorted. The second return value is false
// iff the clause is a tautology, i.e. it contains both a literal and
// its negation.
func NewClause(lits ...Lit) (Clause, bool) {
	c := make(Clause, 0, len(lits))
	c = append(c, lits...)
	sort.Slice(c, func(i, j int) bool { return cmpLit(c[i], c[j]) })
	res := c[:0]
	for i, l := range c {
		if i > 0 && l == c[i-1] {
			continue
		}
		if i > 0 && l == c[i-1].Neg() {
			return nil, false
		}
		res = append(res, l)
	}
	return res, true
}

// Has returns true iff c contains l.
func (c Clause) Has(l Lit) bool {
	for _, l2 := range c {
		if l2 == l {
			return true
		}
		if l2.Var() > l.Var() {
			return false
		}
	}
	return false
}

// Trivial returns true iff c contains both a literal and its
// negation. Clauses built through NewClause are never trivial.
func (c Clause) Trivial() bool {
	for i := 1; i < len(c); i++ {
		if c[i] == c[i-1].Neg() {
			return true
		}
	}
	return false
}

// Equal returns true iff c and c2 contain the same literals.
func (c Clause) Equal(c2 Clause) bool {
	if len(c) != len(c2) {
		return false
	}
	for i, l := range c {
		if c2[i] != l {
			return false
		}
	}
	return true
}

// Subsumes returns true iff c is a subset of c2.
func (c Clause) Subsumes(c2 Clause) bool {
	if len(c) > len(c2) {
		return false
	}
	for _, l := range c {
		if !c2.Has(l) {
			return false
		}
	}
	return true
}

// Copy returns an independent copy of c.
func (c Clause) Copy() Clause {
	res := make(Clause, len(c))
	copy(res, c)
	return res
}

// without returns a copy of c with every literal on v removed.
func (c Clause) without(v Var) Clause {
	res := make(Clause, 0, len(c))
	for _, l := range c {
		if l.Var() != v {
			res = append(res, l)
		}
	}
	return res
}

func (c Clause) String() string {
	strs := make([]string, len(c))
	for i, l := range c {
		strs[i] = strconv.Itoa(int(l))
	}
	return "{" + strings.Join(strs, " ") + "}"
}

// Resolve resolves c1 and c2 on v. It returns the resolvent and true
// when exactly one of the clauses contains v, the other contains its
// negation and the resolvent is not a tautology. In every other case
// it returns nil and false.
func Resolve(c1, c2 Clause, v Var) (Clause, bool) {
	p := v.Lit()
	if c1.Has(p.Neg()) {
		c1, c2 = c2, c1
	}
	if !c1.Has(p) || !c2.Has(p.Neg()) {
		return nil, false
	}
	lits := append(c1.without(v), c2.without(v)...)
	return NewClause(lits...)
}
