package cpl

import (
	"fmt"
	"strconv"
)

// The standard macros: indexed expansion forms, the conditional and
// the postfix arithmetic evaluator. They run after every user macro,
// ranges first, so that the arithmetic they leave behind is resolved
// on concrete numbers before the indexed variables are built.

const emptyHead = "empty"

func emptyTerm(pos Pos) *Term {
	return tuple(pos, name(emptyHead, pos))
}

// isEmpty recognizes the literal (empty) tuple produced by discarded
// conditionals and empty ranges.
func isEmpty(t *Term) bool {
	return t.Kind == TupleTerm && len(t.Subs) == 1 && t.head() == emptyHead
}

var rangeWrappers = map[string]string{
	`/\*`:  `/\`,
	`\/*`:  `\/`,
	`/\**`: `/\`,
	`\/**`: `\/`,
}

// expandRanges expands the four indexed forms. Expansion is top-down
// and the generated children are expanded again, so ranges may nest
// and a nested form may use the indices bound by its enclosing one.
func expandRanges(t *Term) (*Term, error) {
	if t.Kind != TupleTerm {
		return t, nil
	}
	if _, ok := rangeWrappers[t.head()]; ok {
		return expandRange(t)
	}
	subs := make([]*Term, len(t.Subs))
	for i, s := range t.Subs {
		ns, err := expandRanges(s)
		if err != nil {
			return nil, err
		}
		subs[i] = ns
	}
	return tuple(t.Pos, subs...), nil
}

func expandRange(t *Term) (*Term, error) {
	op := t.head()
	var children []*Term
	switch op {
	case `/\*`, `\/*`:
		if len(t.Subs) != 5 {
			return nil, &MacroError{Pos: t.Pos, Msg: fmt.Sprintf("(%s i lo hi body) expected", op)}
		}
		idx, err := rangeIndex(t.Subs[1])
		if err != nil {
			return nil, err
		}
		lo, err := rangeBound(t.Subs[2])
		if err != nil {
			return nil, err
		}
		hi, err := rangeBound(t.Subs[3])
		if err != nil {
			return nil, err
		}
		body := t.Subs[4]
		for a := lo; a <= hi; a++ {
			c, err := substitute(body, idx, number(a, t.Pos))
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
	case `/\**`, `\/**`:
		if len(t.Subs) != 6 {
			return nil, &MacroError{Pos: t.Pos, Msg: fmt.Sprintf("(%s lo i j hi body) expected", op)}
		}
		lo, err := rangeBound(t.Subs[1])
		if err != nil {
			return nil, err
		}
		first, err := rangeIndex(t.Subs[2])
		if err != nil {
			return nil, err
		}
		second, err := rangeIndex(t.Subs[3])
		if err != nil {
			return nil, err
		}
		hi, err := rangeBound(t.Subs[4])
		if err != nil {
			return nil, err
		}
		body := t.Subs[5]
		for a := lo; a < hi; a++ {
			for b := a + 1; b <= hi; b++ {
				c, err := substitute(body, first, number(a, t.Pos))
				if err != nil {
					return nil, err
				}
				if c, err = substitute(c, second, number(b, t.Pos)); err != nil {
					return nil, err
				}
				children = append(children, c)
			}
		}
	}
	if len(children) == 0 {
		return emptyTerm(t.Pos), nil
	}
	subs := make([]*Term, 0, len(children)+1)
	subs = append(subs, name(rangeWrappers[op], t.Pos))
	for _, c := range children {
		ec, err := expandRanges(c)
		if err != nil {
			return nil, err
		}
		subs = append(subs, ec)
	}
	return tuple(t.Pos, subs...), nil
}

func rangeIndex(t *Term) (string, error) {
	if t.Kind != NameTerm {
		return "", &MacroError{Pos: t.Pos, Msg: "range index must be a name"}
	}
	return t.Name, nil
}

func rangeBound(t *Term) (int, error) {
	if t.Kind != NumberTerm {
		return 0, &MacroError{Pos: t.Pos, Msg: "range bound must be a number"}
	}
	return t.Num, nil
}

// expandIfs resolves every (if n body). The condition must be a
// number or a calc term, which is evaluated inline; a zero condition
// discards the body and leaves the literal (empty) tuple behind.
func expandIfs(t *Term) (*Term, error) {
	return rewriteBottomUp(t, func(u *Term) (*Term, error) {
		if u.head() != "if" {
			return u, nil
		}
		if len(u.Subs) != 3 {
			return nil, &MacroError{Pos: u.Pos, Msg: "(if n body) expected"}
		}
		n, err := condValue(u.Subs[1])
		if err != nil {
			return nil, err
		}
		if n != 0 {
			return u.Subs[2], nil
		}
		return emptyTerm(u.Pos), nil
	})
}

func condValue(t *Term) (int, error) {
	if t.Kind == NumberTerm {
		return t.Num, nil
	}
	if t.head() == "calc" {
		return evalCalc(t)
	}
	return 0, &MacroError{Pos: t.Pos, Msg: "if condition must be a number"}
}

// expandCalcs replaces every remaining (calc ...) by its value.
func expandCalcs(t *Term) (*Term, error) {
	return rewriteBottomUp(t, func(u *Term) (*Term, error) {
		if u.head() != "calc" {
			return u, nil
		}
		n, err := evalCalc(u)
		if err != nil {
			return nil, err
		}
		return number(n, u.Pos), nil
	})
}

// evalCalc runs the postfix evaluator: numbers are pushed, the binary
// operators +, -, *, =, and, or pop two values and push the result.
// Comparison and boolean operators yield 0 or 1. The final stack must
// hold exactly one value.
func evalCalc(t *Term) (int, error) {
	var stack []int
	pop2 := func(pos Pos) (int, int, error) {
		if len(stack) < 2 {
			return 0, 0, &MacroError{Pos: pos, Msg: "calc stack underflow"}
		}
		a, b := stack[len(stack)-2], stack[len(stack)-1]
		stack = stack[:len(stack)-2]
		return a, b, nil
	}
	for _, u := range t.Subs[1:] {
		switch u.Kind {
		case NumberTerm:
			stack = append(stack, u.Num)
		case TupleTerm:
			if u.head() != "calc" {
				return 0, &MacroError{Pos: u.Pos, Msg: "calc operand must be a number"}
			}
			n, err := evalCalc(u)
			if err != nil {
				return 0, err
			}
			stack = append(stack, n)
		case NameTerm:
			switch u.Name {
			case "+", "-", "*", "=", "and", "or":
			default:
				return 0, &MacroError{Pos: u.Pos, Msg: "unbound name " + strconv.Quote(u.Name) + " in calc"}
			}
			a, b, err := pop2(u.Pos)
			if err != nil {
				return 0, err
			}
			switch u.Name {
			case "+":
				stack = append(stack, a+b)
			case "-":
				stack = append(stack, a-b)
			case "*":
				stack = append(stack, a*b)
			case "=":
				stack = append(stack, boolToInt(a == b))
			case "and":
				stack = append(stack, boolToInt(a != 0 && b != 0))
			case "or":
				stack = append(stack, boolToInt(a != 0 || b != 0))
			}
		}
	}
	if len(stack) != 1 {
		return 0, &MacroError{Pos: t.Pos, Msg: fmt.Sprintf("calc left %d values on the stack, one expected", len(stack))}
	}
	return stack[0], nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// pruneEmpty drops the (empty) leftovers of discarded conditionals
// and empty ranges from conjunctions and disjunctions. A connective
// with no child left collapses to (empty) itself, so emptiness
// bubbles up through nested wrappers.
func pruneEmpty(t *Term) *Term {
	if t.Kind != TupleTerm || isEmpty(t) {
		return t
	}
	subs := make([]*Term, len(t.Subs))
	for i, s := range t.Subs {
		subs[i] = pruneEmpty(s)
	}
	switch t.head() {
	case "and", `/\`, "or", `\/`:
		kept := subs[:1]
		for _, s := range subs[1:] {
			if !isEmpty(s) {
				kept = append(kept, s)
			}
		}
		if len(kept) == 1 {
			return emptyTerm(t.Pos)
		}
		subs = kept
	}
	return tuple(t.Pos, subs...)
}
