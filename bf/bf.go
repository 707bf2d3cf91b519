package bf

import (
	"fmt"
	"strings"
)

// A Formula is any kind of boolean formula, not necessarily in a
// normal form. Implications and equivalences are kept as nodes of
// their own because both clausal lowerings treat them structurally.
type Formula interface {
	String() string
	// Eval evaluates the formula under the given bindings. It panics
	// when a named variable lacks a binding.
	Eval(model map[string]bool) bool
}

// Var generates a named boolean variable in a formula.
func Var(name string) Formula {
	return variable{name: name}
}

// A variable either carries the label it had in the source problem or
// a solver-assigned positive index when it is an auxiliary introduced
// by the 3-CNF lowering.
type variable struct {
	name string
	aux  int
}

func (v variable) label() string {
	if v.aux > 0 {
		return fmt.Sprintf("_aux%d", v.aux)
	}
	return v.name
}

func (v variable) String() string {
	return v.label()
}

func (v variable) Eval(model map[string]bool) bool {
	if v.aux > 0 {
		panic(fmt.Errorf("auxiliary variable %s cannot be evaluated", v.label()))
	}
	b, ok := model[v.name]
	if !ok {
		panic(fmt.Errorf("model lacks binding for variable %s", v.name))
	}
	return b
}

// lit is a possibly negated variable. It only appears in normal
// forms, never in user-built formulas.
type lit struct {
	v      variable
	signed bool
}

func (l lit) String() string {
	if l.signed {
		return "not(" + l.v.String() + ")"
	}
	return l.v.String()
}

func (l lit) Eval(model map[string]bool) bool {
	b := l.v.Eval(model)
	if l.signed {
		return !b
	}
	return b
}

// Not negates the given subformula.
func Not(f Formula) Formula {
	return not{f}
}

type not [1]Formula

func (n not) String() string {
	return "not(" + n[0].String() + ")"
}

func (n not) Eval(model map[string]bool) bool {
	return !n[0].Eval(model)
}

// And generates a conjunction of subformulas.
func And(subs ...Formula) Formula {
	if len(subs) == 1 {
		return subs[0]
	}
	return and(subs)
}

type and []Formula

func (a and) String() string {
	return nary("and", a)
}

func (a and) Eval(model map[string]bool) bool {
	for _, s := range a {
		if !s.Eval(model) {
			return false
		}
	}
	return true
}

// Or generates a disjunction of subformulas.
func Or(subs ...Formula) Formula {
	if len(subs) == 1 {
		return subs[0]
	}
	return or(subs)
}

type or []Formula

func (o or) String() string {
	return nary("or", o)
}

func (o or) Eval(model map[string]bool) bool {
	for _, s := range o {
		if s.Eval(model) {
			return true
		}
	}
	return false
}

// Imply indicates a subformula implies another one.
func Imply(f1, f2 Formula) Formula {
	return imply{f1, f2}
}

type imply [2]Formula

func (i imply) String() string {
	return "imply(" + i[0].String() + ", " + i[1].String() + ")"
}

func (i imply) Eval(model map[string]bool) bool {
	return !i[0].Eval(model) || i[1].Eval(model)
}

// Iff indicates all the subformulas are equivalent. It accepts more
// than two arguments: the chain is understood as the conjunction of
// the pairwise equivalences of consecutive subformulas.
func Iff(subs ...Formula) Formula {
	if len(subs) == 1 {
		return subs[0]
	}
	return iff(subs)
}

type iff []Formula

func (f iff) String() string {
	return nary("iff", f)
}

func (f iff) Eval(model map[string]bool) bool {
	first := f[0].Eval(model)
	for _, s := range f[1:] {
		if s.Eval(model) != first {
			return false
		}
	}
	return true
}

func nary(op string, subs []Formula) string {
	strs := make([]string, len(subs))
	for i, f := range subs {
		strs[i] = f.String()
	}
	return op + "(" + strings.Join(strs, ", ") + ")"
}

// cdnnf rewrites implications and equivalences away, leaving only
// conjunctions, disjunctions, negations and variables. A k-ary
// equivalence is unfolded pairwise, left to right.
func cdnnf(f Formula) Formula {
	switch f := f.(type) {
	case variable:
		return f
	case lit:
		return f
	case not:
		return not{cdnnf(f[0])}
	case and:
		res := make(and, len(f))
		for i, sub := range f {
			res[i] = cdnnf(sub)
		}
		return res
	case or:
		res := make(or, len(f))
		for i, sub := range f {
			res[i] = cdnnf(sub)
		}
		return res
	case imply:
		return or{not{cdnnf(f[0])}, cdnnf(f[1])}
	case iff:
		args := make([]Formula, len(f))
		for i, sub := range f {
			args[i] = cdnnf(sub)
		}
		conj := make(and, 0, len(args)-1)
		for i := 0; i+1 < len(args); i++ {
			conj = append(conj, unfoldIff(args[i], args[i+1]))
		}
		if len(conj) == 1 {
			return conj[0]
		}
		return conj
	default:
		panic("invalid formula type")
	}
}

// unfoldIff rewrites l <-> r as (l -> r) and (r -> l), implications
// already unfolded.
func unfoldIff(l, r Formula) Formula {
	return and{or{not{l}, r}, or{not{r}, l}}
}

// nnf pushes negations down to the variables and flattens nested
// conjunctions and disjunctions. The input must be free of
// implications and equivalences.
func nnf(f Formula) Formula {
	switch f := f.(type) {
	case variable:
		return lit{v: f}
	case lit:
		return f
	case not:
		return nnfNot(f[0])
	case and:
		var res and
		for _, sub := range f {
			switch sub := nnf(sub).(type) {
			case and: // "and"s in the "and" get to the higher level
				res = append(res, sub...)
			default:
				res = append(res, sub)
			}
		}
		if len(res) == 1 {
			return res[0]
		}
		return res
	case or:
		var res or
		for _, sub := range f {
			switch sub := nnf(sub).(type) {
			case or:
				res = append(res, sub...)
			default:
				res = append(res, sub)
			}
		}
		if len(res) == 1 {
			return res[0]
		}
		return res
	default:
		panic("invalid formula type")
	}
}

func nnfNot(f Formula) Formula {
	switch f := f.(type) {
	case variable:
		return lit{v: f, signed: true}
	case lit:
		return lit{v: f.v, signed: !f.signed}
	case not:
		return nnf(f[0])
	case and:
		subs := make(or, len(f))
		for i, sub := range f {
			subs[i] = not{sub}
		}
		return nnf(subs)
	case or:
		subs := make(and, len(f))
		for i, sub := range f {
			subs[i] = not{sub}
		}
		return nnf(subs)
	default:
		panic("invalid formula type")
	}
}
