package solver

import "sort"

// DP decides the satisfiability of f with the Davis-Putnam resolution
// procedure. Variables are eliminated in increasing identifier order:
// for each variable, all resolvents between clauses containing it
// positively and negatively are added, then every clause mentioning
// the variable is dropped. The CNF is consumed in the process and no
// model is produced.
func DP(f *CNF) Status {
	f.removeTrivial()
	f.subsume()
	for _, c := range f.Clauses {
		if len(c) == 0 {
			return Unsat
		}
	}
	vars := make([]Var, 0, len(f.Vars))
	for v := range f.Vars {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	clauses := f.Clauses
	for _, v := range vars {
		var pos, neg, rest []Clause
		for _, c := range clauses {
			switch {
			case c.Has(v.Lit()):
				pos = append(pos, c)
			case c.Has(v.Lit().Neg()):
				neg = append(neg, c)
			default:
				rest = append(rest, c)
			}
		}
		for _, c1 := range pos {
			for _, c2 := range neg {
				r, ok := Resolve(c1, c2, v)
				if !ok {
					continue
				}
				if len(r) == 0 {
					f.Clauses = nil
					return Unsat
				}
				rest = append(rest, r)
			}
		}
		clauses = rest
	}
	f.Clauses = clauses
	return Sat
}
