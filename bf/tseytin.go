package bf

// TseytinClauses lowers f to a 3-CNF by the Tseytin transformation.
// Double negations are removed, n-ary connectives are rewritten into
// left-associated binary nests (an equivalence chain into the
// conjunction of its consecutive binary equivalences), then every
// non-literal subformula is
// named by a fresh auxiliary variable defined by at most four clauses
// of at most three literals. The unit clause naming the whole formula
// closes the list. The output size is linear in the size of f.
func TseytinClauses(f Formula) []Clause {
	t := &tseytin{}
	top := t.name(bonf(elimDoubleNeg(f)))
	t.clauses = append(t.clauses, Clause{top})
	return t.clauses
}

// elimDoubleNeg folds double negations away and turns negated
// variables into literals.
func elimDoubleNeg(f Formula) Formula {
	switch f := f.(type) {
	case variable:
		return lit{v: f}
	case lit:
		return f
	case not:
		switch sub := elimDoubleNeg(f[0]).(type) {
		case lit:
			return lit{v: sub.v, signed: !sub.signed}
		case not:
			return sub[0]
		default:
			return not{sub}
		}
	case and:
		res := make(and, len(f))
		for i, sub := range f {
			res[i] = elimDoubleNeg(sub)
		}
		return res
	case or:
		res := make(or, len(f))
		for i, sub := range f {
			res[i] = elimDoubleNeg(sub)
		}
		return res
	case imply:
		return imply{elimDoubleNeg(f[0]), elimDoubleNeg(f[1])}
	case iff:
		res := make(iff, len(f))
		for i, sub := range f {
			res[i] = elimDoubleNeg(sub)
		}
		return res
	default:
		panic("invalid formula type")
	}
}

// bonf rewrites every conjunction and disjunction of arity above two
// into a left-associated nest of binary ones, and unwraps unary ones.
// An equivalence chain of arity above two becomes the left-associated
// conjunction of the binary equivalences of consecutive subformulas.
func bonf(f Formula) Formula {
	switch f := f.(type) {
	case lit:
		return f
	case not:
		return not{bonf(f[0])}
	case imply:
		return imply{bonf(f[0]), bonf(f[1])}
	case and:
		return foldBinary(f, func(l, r Formula) Formula { return and{l, r} })
	case or:
		return foldBinary(f, func(l, r Formula) Formula { return or{l, r} })
	case iff:
		if len(f) <= 2 {
			return foldBinary(f, func(l, r Formula) Formula { return iff{l, r} })
		}
		pairs := make(and, len(f)-1)
		for i := range pairs {
			pairs[i] = iff{f[i], f[i+1]}
		}
		return bonf(pairs)
	default:
		panic("invalid formula type")
	}
}

func foldBinary(subs []Formula, join func(l, r Formula) Formula) Formula {
	res := bonf(subs[0])
	for _, sub := range subs[1:] {
		res = join(res, bonf(sub))
	}
	return res
}

type tseytin struct {
	clauses []Clause
	naux    int
}

func (t *tseytin) fresh() variable {
	t.naux++
	return variable{aux: t.naux}
}

func (t *tseytin) emit(cs ...Clause) {
	t.clauses = append(t.clauses, cs...)
}

// name returns the literal naming g, emitting the clauses that define
// the auxiliary variable as equivalent to its subformula. Literal
// subformulas borrow their own literal and emit nothing.
func (t *tseytin) name(g Formula) Literal {
	switch g := g.(type) {
	case lit:
		return Literal{v: g.v, neg: g.signed}
	case not:
		q := t.name(g[0])
		n := Literal{v: t.fresh()}
		t.emit(
			Clause{n, q},
			Clause{n.negate(), q.negate()},
		)
		return n
	case and:
		q, r := t.name(g[0]), t.name(g[1])
		n := Literal{v: t.fresh()}
		t.emit(
			Clause{n, q.negate(), r.negate()},
			Clause{n.negate(), q},
			Clause{n.negate(), r},
		)
		return n
	case or:
		q, r := t.name(g[0]), t.name(g[1])
		n := Literal{v: t.fresh()}
		t.emit(
			Clause{n.negate(), q, r},
			Clause{n, q.negate()},
			Clause{n, r.negate()},
		)
		return n
	case imply:
		q, r := t.name(g[0]), t.name(g[1])
		n := Literal{v: t.fresh()}
		t.emit(
			Clause{n.negate(), q.negate(), r},
			Clause{n, q},
			Clause{n, r.negate()},
		)
		return n
	case iff:
		q, r := t.name(g[0]), t.name(g[1])
		n := Literal{v: t.fresh()}
		t.emit(
			Clause{n, q, r},
			Clause{n, q.negate(), r.negate()},
			Clause{n.negate(), q, r.negate()},
			Clause{n.negate(), q.negate(), r},
		)
		return n
	default:
		panic("formula is not in binary operator normal form")
	}
}
