package solver

import "fmt"

// checkIntegrity asserts the trail invariants: every trail literal is
// fixed at its own index, no fixed variable is free, the active
// variables split exactly into free and fixed ones, and every
// genealogy reference points to a decision rule below the referring
// rule (a decision rule refers to itself), the larger one first. Violations panic with an
// InvariantError; the checks never run unless CDCL.Checks is set.
func (s *CDCL) checkIntegrity() {
	for i, r := range s.rules {
		if idx, ok := s.fixed[r.lit]; !ok || idx != i {
			s.invariant("rule %d: literal %d not fixed at its index", i, r.lit)
		}
		if s.free[r.lit.Var()] {
			s.invariant("rule %d: variable %d both fixed and free", i, r.lit.Var())
		}
		if r.decide && r.decideA != i {
			s.invariant("rule %d: decision does not depend on itself", i)
		}
		for _, d := range [2]int{r.decideA, r.decideB} {
			if d == -1 {
				continue
			}
			if d < 0 || d >= len(s.rules) {
				s.invariant("rule %d: decision reference %d out of range", i, d)
			}
			if !s.rules[d].decide {
				s.invariant("rule %d: reference %d is not a decision", i, d)
			}
			if !r.decide && d > i {
				s.invariant("rule %d: reference %d above the rule", i, d)
			}
		}
		if r.decideB != -1 && r.decideA <= r.decideB {
			s.invariant("rule %d: decision references out of order", i)
		}
	}
	if len(s.pb.CNF3.Vars) != len(s.free)+len(s.fixed) {
		s.invariant("%d variables, %d free + %d fixed", len(s.pb.CNF3.Vars), len(s.free), len(s.fixed))
	}
}

func (s *CDCL) invariant(format string, args ...interface{}) {
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...)})
}
