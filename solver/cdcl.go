package solver

import (
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
)

// A rule is one entry of the CDCL trail: a literal made true, whether
// it was a decision, and the indices of the last two decision rules
// its derivation transitively depends on. decideA is always the
// larger of the two; -1 means no such decision exists.
type rule struct {
	lit     Lit
	decide  bool
	decideA int
	decideB int
}

// Stats counts the work done by a CDCL run. Provided for information
// purpose only.
type Stats struct {
	NbDecisions    int
	NbPropagations int
	NbConflicts    int
	NbBackjumps    int
}

// CDCL is the conflict-driven clause-learning solver. It owns its
// state exclusively: a CDCL value must not be shared between
// goroutines, and Solve consumes it.
type CDCL struct {
	// Checks enables the trail integrity assertions after each step.
	// They are expensive and intended for test builds; a violation
	// panics with an InvariantError.
	Checks bool
	// Log receives decision and backjump traces at debug level.
	Log logrus.FieldLogger
	// Stats is filled during Solve.
	Stats Stats

	pb     *CDCLInput
	rules  []rule
	fixed  map[Lit]int
	free   map[Var]bool
	rng    *rand.Rand
	status Status
	model  Model
}

// NewCDCL builds a solver for the given input. rng drives the
// randomized decision ordering; passing nil selects a fixed seed so
// that runs stay reproducible by default.
func NewCDCL(pb *CDCLInput, rng *rand.Rand) *CDCL {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	free := make(map[Var]bool, len(pb.CNF3.Vars))
	for v := range pb.CNF3.Vars {
		free[v] = true
	}
	return &CDCL{
		Log:    logrus.StandardLogger(),
		pb:     pb,
		fixed:  make(map[Lit]int),
		free:   free,
		rng:    rng,
		status: Indet,
	}
}

// Model returns the total model found by Solve. It is only valid
// after Solve returned Sat.
func (s *CDCL) Model() Model {
	return s.model
}

// propagation outcomes of addUnitPropagate.
type propResult byte

const (
	propContinue = propResult(iota)
	propFail
	propBackjump
)

// Solve runs the search and returns Sat or Unsat. The trail is first
// seeded with the input units, then the main loop walks the trail,
// derives implied literals through the two-level clause index and
// decides a free variable whenever propagation is exhausted.
func (s *CDCL) Solve() Status {
	if s.status != Indet {
		return s.status
	}
	if s.pb.unsat {
		s.status = Unsat
		return s.status
	}
	for _, l := range s.pb.Units {
		if _, ok := s.fixed[l.Neg()]; ok {
			s.status = Unsat
			return s.status
		}
		if _, ok := s.fixed[l]; ok {
			continue
		}
		s.push(rule{lit: l, decideA: -1, decideB: -1})
	}
	if len(s.rules) == 0 {
		if len(s.free) == 0 {
			s.model = Model{}
			s.status = Sat
			return s.status
		}
		s.decide()
	}
search:
	for i := 0; i < len(s.rules); i++ {
		if s.Checks {
			s.checkIntegrity()
		}
		cur := s.rules[i]
		for _, l := range s.pb.CNF3.Double(cur.lit) {
			switch res, at := s.addUnitPropagate(l, cur.decideA, cur.decideB); res {
			case propFail:
				s.status = Unsat
				return s.status
			case propBackjump:
				i = at
				continue search
			}
		}
		for j := 0; j < i; j++ {
			implied := s.pb.CNF3.Triple(cur.lit, s.rules[j].lit)
			if len(implied) == 0 {
				continue
			}
			alpha, beta := combineDecisions(cur, s.rules[j])
			for _, l := range implied {
				switch res, at := s.addUnitPropagate(l, alpha, beta); res {
				case propFail:
					s.status = Unsat
					return s.status
				case propBackjump:
					i = at
					continue search
				}
			}
		}
		if i == len(s.rules)-1 {
			if len(s.free) == 0 {
				s.model = make(Model, len(s.rules))
				for _, r := range s.rules {
					s.model[r.lit.Var()] = r.lit.IsPositive()
				}
				s.status = Sat
				return s.status
			}
			s.decide()
		}
	}
	return s.status
}

// combineDecisions merges the decision genealogies of two trail rules
// whose literals together trigger a ternary entry. The combined last
// decision is the larger decideA; the second last is the largest of
// the four indices that is not that maximum, which keeps it strictly
// below the first.
func combineDecisions(r1, r2 rule) (alpha, beta int) {
	alpha = r1.decideA
	if r2.decideA > alpha {
		alpha = r2.decideA
	}
	beta = -1
	for _, d := range [4]int{r1.decideA, r1.decideB, r2.decideA, r2.decideB} {
		if d != alpha && d > beta {
			beta = d
		}
	}
	return alpha, beta
}

// push appends r to the trail and updates the fixed and free sets.
func (s *CDCL) push(r rule) {
	s.fixed[r.lit] = len(s.rules)
	delete(s.free, r.lit.Var())
	s.rules = append(s.rules, r)
}

// popTo removes every rule at index >= n, undoing fixed and free.
func (s *CDCL) popTo(n int) {
	for len(s.rules) > n {
		r := s.rules[len(s.rules)-1]
		s.rules = s.rules[:len(s.rules)-1]
		delete(s.fixed, r.lit)
		s.free[r.lit.Var()] = true
	}
}

// decide picks a variable uniformly at random among the free ones and
// appends the corresponding decision rule. The candidates are sorted
// first so that a given seed always yields the same run.
func (s *CDCL) decide() {
	cands := make([]Var, 0, len(s.free))
	for v := range s.free {
		cands = append(cands, v)
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i] < cands[j] })
	v := cands[s.rng.Intn(len(cands))]
	idx := len(s.rules)
	s.push(rule{lit: v.Lit(), decide: true, decideA: idx, decideB: -1})
	s.Stats.NbDecisions++
	if s.Log != nil {
		s.Log.WithFields(logrus.Fields{"var": v, "index": idx}).Debug("decision")
	}
}

// addUnitPropagate tries to make l true as a consequence of the
// decisions dA and dB. When l is already fixed nothing happens. When
// its negation is fixed the propagation conflicts: either no decision
// supports it and the problem is unsatisfiable, or the conflict is
// analyzed and the trail backjumps, learning the negation of the last
// supporting decision. On a backjump the returned index is the one
// the main loop must resume from.
func (s *CDCL) addUnitPropagate(l Lit, dA, dB int) (propResult, int) {
	if _, ok := s.fixed[l]; ok {
		return propContinue, 0
	}
	if m, ok := s.fixed[l.Neg()]; ok {
		s.Stats.NbConflicts++
		return s.backjump(l, m, dA, dB)
	}
	s.push(rule{lit: l, decideA: dA, decideB: dB})
	s.Stats.NbPropagations++
	return propContinue, 0
}

// backjump analyzes the conflict between l, implied under the
// decisions dA and dB, and its negation fixed at trail index m. The
// last decision supporting the conflict is dA; the second last is
// taken from dB and the genealogy of the conflicting rule. The trail
// is rewound to the first decision after that second last decision
// and the negation of the last supporting decision is appended there
// as a learned propagation, anchored below the conflict so that the
// contradiction cannot recur.
func (s *CDCL) backjump(l Lit, m, dA, dB int) (propResult, int) {
	if dA == -1 {
		return propFail, 0
	}
	npR := s.rules[m]
	slD := npR.decideA
	if npR.decideA == dA {
		slD = npR.decideB
	}
	if dB > slD {
		slD = dB
	}
	newStart := -1
	for k := slD + 1; k < len(s.rules); k++ {
		if s.rules[k].decide {
			newStart = k
			break
		}
	}
	if newStart == -1 {
		// No decision left to undo: the conflict only depends on
		// initial units.
		return propFail, 0
	}
	q := s.rules[dA].lit
	s.popTo(newStart)
	s.push(rule{lit: q.Neg(), decideA: slD, decideB: -1})
	s.Stats.NbBackjumps++
	if s.Log != nil {
		s.Log.WithFields(logrus.Fields{
			"conflict": l,
			"learned":  q.Neg(),
			"start":    newStart,
		}).Debug("backjump")
	}
	return propBackjump, newStart - 1
}
