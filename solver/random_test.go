package solver

import "math/rand"

// randomProblems generates count random clause lists over nbVars
// variables, nbClauses clauses each, with one to three literals per
// clause. The generation is seeded so that failures reproduce.
func randomProblems(count, nbVars, nbClauses int, seed int64) [][][]int {
	rng := rand.New(rand.NewSource(seed))
	problems := make([][][]int, count)
	for i := range problems {
		clauses := make([][]int, nbClauses)
		for j := range clauses {
			c := make([]int, 1+rng.Intn(3))
			for k := range c {
				l := 1 + rng.Intn(nbVars)
				if rng.Intn(2) == 0 {
					l = -l
				}
				c[k] = l
			}
			clauses[j] = c
		}
		problems[i] = clauses
	}
	return problems
}
