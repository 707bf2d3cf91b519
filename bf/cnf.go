package bf

import "strings"

// A Literal is a possibly negated variable inside a clause
// expression.
type Literal struct {
	v   variable
	neg bool
}

// PosLit and NegLit build clause literals over a named variable. They
// are mostly useful to tests; the lowerings build literals
// internally.
func PosLit(name string) Literal {
	return Literal{v: variable{name: name}}
}

// NegLit returns the negative literal on the named variable.
func NegLit(name string) Literal {
	return Literal{v: variable{name: name}, neg: true}
}

func (l Literal) negate() Literal {
	return Literal{v: l.v, neg: !l.neg}
}

func (l Literal) String() string {
	if l.neg {
		return "~" + l.v.String()
	}
	return l.v.String()
}

// A Clause is a disjunction of literals. A list of clauses is
// understood as their conjunction.
type Clause []Literal

func (c Clause) String() string {
	strs := make([]string, len(c))
	for i, l := range c {
		strs[i] = l.String()
	}
	return "{" + strings.Join(strs, " ") + "}"
}

// normalize removes duplicated literals. The second return value is
// false iff the clause is a tautology.
func (c Clause) normalize() (Clause, bool) {
	seen := make(map[Literal]bool, len(c))
	res := make(Clause, 0, len(c))
	for _, l := range c {
		if seen[l] {
			continue
		}
		if seen[l.negate()] {
			return nil, false
		}
		seen[l] = true
		res = append(res, l)
	}
	return res, true
}

// CNFClauses lowers f to clause expressions by the distributive
// transformation: implications and equivalences are unfolded,
// negations pushed to the variables, then disjunctions of
// conjunctions are distributed as the Cartesian product of the
// subclauses. The number of produced clauses can be exponential in
// the size of f. Tautological clauses are discarded.
func CNFClauses(f Formula) []Clause {
	cs := products(nnf(cdnnf(f)))
	res := make([]Clause, 0, len(cs))
	for _, c := range cs {
		if n, ok := c.normalize(); ok {
			res = append(res, n)
		}
	}
	return res
}

func products(f Formula) []Clause {
	switch f := f.(type) {
	case lit:
		return []Clause{{Literal{v: f.v, neg: f.signed}}}
	case and:
		var res []Clause
		for _, sub := range f {
			res = append(res, products(sub)...)
		}
		return res
	case or:
		acc := []Clause{{}}
		for _, sub := range f {
			cs := products(sub)
			next := make([]Clause, 0, len(acc)*len(cs))
			for _, a := range acc {
				for _, c := range cs {
					merged := make(Clause, 0, len(a)+len(c))
					merged = append(merged, a...)
					merged = append(merged, c...)
					next = append(next, merged)
				}
			}
			acc = next
		}
		return acc
	default:
		panic("formula is not in negation normal form")
	}
}
