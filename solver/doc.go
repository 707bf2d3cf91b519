/*
Package solver implements three complete decision procedures for
propositional satisfiability on clausal forms: the Davis-Putnam
resolution procedure (DP), the Davis-Putnam-Logemann-Loveland search
procedure (DPLL) and a conflict-driven clause-learning procedure
(CDCL) working on an interned 3-CNF.

# Describing a problem

A CNF can be parsed from a DIMACS stream:

	pb, err := solver.ParseCNF(f)

or built from a list of clauses given as slices of signed integers:

	pb := solver.ParseSlice([][]int{{1, 2}, {-1, 2}, {-2}})

Formulas that are not in clausal form are lowered by the companion
package bf, which also interns the labels of the source variables so
that models can be read back by name.

# Solving

DP and DPLL consume a CNF:

	status := solver.DP(pb.Copy())
	status, model := solver.DPLL(pb)

The CDCL procedure takes a 3-CNF interned as a CDCLInput, typically
obtained from the Tseytin lowering in package bf, and a random source
for its decision ordering:

	in, err := solver.NewCDCLInput(clauses, nil, nil)
	s := solver.NewCDCL(in, rand.New(rand.NewSource(42)))
	if s.Solve() == solver.Sat {
		m := s.Model()
	}

DP and DPLL mutate their input; use CNF.Copy to keep the original.
The CDCL procedure only reads its CDCLInput.
*/
package solver
