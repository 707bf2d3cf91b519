package solver

// DPLL decides the satisfiability of f with the
// Davis-Putnam-Logemann-Loveland splitting procedure. The CNF is
// consumed. When the problem is satisfiable, the returned model is
// total over the variables of f: variables left unconstrained by the
// search are bound to false.
func DPLL(f *CNF) (Status, Model) {
	vars := make([]Var, 0, len(f.Vars))
	for v := range f.Vars {
		vars = append(vars, v)
	}
	m := Model{}
	if dpllRec(f, m) == Unsat {
		return Unsat, nil
	}
	for _, v := range vars {
		if _, ok := m[v]; !ok {
			m[v] = false
		}
	}
	return Sat, m
}

func dpllRec(f *CNF, m Model) Status {
	switch f.unitResolve(m) {
	case Sat:
		return Sat
	case Unsat:
		return Unsat
	}
	p := f.Clauses[0][0].Var()
	f2 := f.Copy()
	m2 := m.Copy()
	f2.Clauses = append(f2.Clauses, Clause{p.Lit()})
	if dpllRec(f2, m2) == Sat {
		for v, b := range m2 {
			m[v] = b
		}
		return Sat
	}
	f.Clauses = append(f.Clauses, Clause{p.Lit().Neg()})
	return dpllRec(f, m)
}
