package cpl

import (
	"strconv"
	"strings"

	"github.com/cplsat/cplsat/bf"
)

// LowerTerm converts a fully expanded term into a boolean expression.
// The recognized operators are and//\, or/\/, not/~, imply/-> and
// iff/<->. The (_ ...) form joins its already expanded arguments into
// a single indexed variable label; the (? v) form resolves a variable
// against the supplied assignment map. Numbers in operand positions
// become variables labeled by their decimal writing. Conjunctions and
// disjunctions drop (empty) children left behind by discarded
// conditionals.
func LowerTerm(t *Term, assigns map[string]bool) (bf.Formula, error) {
	switch t.Kind {
	case NameTerm:
		if strings.HasPrefix(t.Name, "#") {
			return nil, &MacroError{Pos: t.Pos, Msg: "dangling macro reference " + t.Name}
		}
		return bf.Var(t.Name), nil
	case NumberTerm:
		return bf.Var(strconv.Itoa(t.Num)), nil
	}
	op := t.head()
	args := t.Subs[1:]
	switch op {
	case "and", `/\`:
		return lowerNary(t, args, assigns, bf.And)
	case "or", `\/`:
		return lowerNary(t, args, assigns, bf.Or)
	case "not", "~":
		if len(args) != 1 {
			return nil, &ShapeError{Pos: t.Pos, Msg: op + " takes one argument"}
		}
		sub, err := LowerTerm(args[0], assigns)
		if err != nil {
			return nil, err
		}
		return bf.Not(sub), nil
	case "imply", "->":
		if len(args) != 2 {
			return nil, &ShapeError{Pos: t.Pos, Msg: op + " takes two arguments"}
		}
		left, err := LowerTerm(args[0], assigns)
		if err != nil {
			return nil, err
		}
		right, err := LowerTerm(args[1], assigns)
		if err != nil {
			return nil, err
		}
		return bf.Imply(left, right), nil
	case "iff", "<->":
		if len(args) < 2 {
			return nil, &ShapeError{Pos: t.Pos, Msg: op + " takes at least two arguments"}
		}
		subs := make([]bf.Formula, len(args))
		for i, a := range args {
			sub, err := LowerTerm(a, assigns)
			if err != nil {
				return nil, err
			}
			subs[i] = sub
		}
		return bf.Iff(subs...), nil
	case "_":
		label, err := joinLabel(t, args)
		if err != nil {
			return nil, err
		}
		return bf.Var(label), nil
	case "?":
		if len(args) != 1 {
			return nil, &ShapeError{Pos: t.Pos, Msg: "? takes one argument"}
		}
		label, err := probeLabel(args[0])
		if err != nil {
			return nil, err
		}
		val, ok := assigns[label]
		if !ok {
			return nil, &ShapeError{Pos: t.Pos, Msg: "no assignment for variable " + strconv.Quote(label)}
		}
		if val {
			return bf.Var(label), nil
		}
		return bf.Not(bf.Var(label)), nil
	case emptyHead:
		return nil, &ShapeError{Pos: t.Pos, Msg: "(empty) where an expression is required"}
	default:
		return nil, &ShapeError{Pos: t.Pos, Msg: "unknown operator " + strconv.Quote(op)}
	}
}

func lowerNary(t *Term, args []*Term, assigns map[string]bool, join func(...bf.Formula) bf.Formula) (bf.Formula, error) {
	subs := make([]bf.Formula, 0, len(args))
	for _, a := range args {
		if isEmpty(a) {
			continue
		}
		sub, err := LowerTerm(a, assigns)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if len(subs) == 0 {
		return nil, &ShapeError{Pos: t.Pos, Msg: t.head() + " has no arguments left"}
	}
	return join(subs...), nil
}

// joinLabel builds the label of an indexed variable family member:
// every argument of (_ ...) must be an already expanded name or
// number, and the label is their underscore join.
func joinLabel(t *Term, args []*Term) (string, error) {
	if len(args) == 0 {
		return "", &ShapeError{Pos: t.Pos, Msg: "_ takes at least one argument"}
	}
	segs := make([]string, len(args))
	for i, a := range args {
		switch a.Kind {
		case NameTerm:
			if strings.HasPrefix(a.Name, "#") {
				return "", &MacroError{Pos: a.Pos, Msg: "dangling macro reference " + a.Name}
			}
			segs[i] = a.Name
		case NumberTerm:
			segs[i] = strconv.Itoa(a.Num)
		default:
			return "", &ShapeError{Pos: a.Pos, Msg: "_ arguments must be names or numbers"}
		}
	}
	return strings.Join(segs, "_"), nil
}

// probeLabel resolves the argument of (? v) to a variable label.
func probeLabel(t *Term) (string, error) {
	switch {
	case t.Kind == NameTerm:
		return t.Name, nil
	case t.Kind == NumberTerm:
		return strconv.Itoa(t.Num), nil
	case t.head() == "_":
		return joinLabel(t, t.Subs[1:])
	default:
		return "", &ShapeError{Pos: t.Pos, Msg: "? argument must resolve to a variable"}
	}
}
