/*
Package bf deals with boolean formulas and their lowering to clausal
forms.

Formulas are built with the Var, Not, And, Or, Imply and Iff
constructors, or lowered from the CPL language by package cpl. Two
transformations produce clause expressions: CNFClauses distributes
disjunctions over conjunctions (worst case exponential, no new
variables), TseytinClauses names every subformula with an auxiliary
variable (linear, satisfiability-preserving only). ConvertClauses and
ConvertClausesToCDCLInput intern clause expressions into the integer
representations of package solver.

The package front door mirrors the usual workflow:

	f := bf.And(bf.Or(bf.Var("a"), bf.Var("b")), bf.Not(bf.Var("a")))
	model := bf.Solve(f)

A nil model means the formula is unsatisfiable.
*/
package bf
