package cpl

import (
	"fmt"
	"strconv"
	"strings"
)

// A macro maps a name to a rewrite of its body under the formal
// parameters. Nullary macros have no parameters and are referenced as
// #NAME.
type macro struct {
	name   string
	params []string
	body   *Term
	pos    Pos
}

// ExpandProgram splits a parsed program into its macro definitions
// and its formula term, then expands the formula. User macros are
// applied one after the other, last declared first, so that each
// macro only ever sees the macros declared before it and recursion is
// impossible. The standard macros run afterwards: the indexed
// expansion forms first, then if, then calc.
func ExpandProgram(terms []*Term) (*Term, error) {
	macros, last, err := splitProgram(terms)
	if err != nil {
		return nil, err
	}
	t := last
	for k := len(macros) - 1; k >= 0; k-- {
		if t, err = applyMacro(macros[k], t); err != nil {
			return nil, err
		}
	}
	if t, err = expandRanges(t); err != nil {
		return nil, err
	}
	if t, err = expandIfs(t); err != nil {
		return nil, err
	}
	if t, err = expandCalcs(t); err != nil {
		return nil, err
	}
	return pruneEmpty(t), nil
}

func splitProgram(terms []*Term) ([]macro, *Term, error) {
	if len(terms) == 0 {
		return nil, nil, &ParseError{Msg: "empty program"}
	}
	seen := make(map[string]bool)
	macros := make([]macro, 0, len(terms)-1)
	for _, t := range terms[:len(terms)-1] {
		m, err := parseMacroDef(t)
		if err != nil {
			return nil, nil, err
		}
		if seen[m.name] {
			return nil, nil, &MacroError{Pos: m.pos, Msg: "duplicate macro " + strconv.Quote(m.name)}
		}
		seen[m.name] = true
		macros = append(macros, m)
	}
	last := terms[len(terms)-1]
	if last.head() == "macro" {
		return nil, nil, &MacroError{Pos: last.Pos, Msg: "program ends with a macro definition, formula expected"}
	}
	return macros, last, nil
}

// parseMacroDef accepts (macro NAME BODY) and (macro NAME (P ...)
// BODY).
func parseMacroDef(t *Term) (macro, error) {
	if t.head() != "macro" {
		return macro{}, &MacroError{Pos: t.Pos, Msg: "every term before the last must be a macro definition"}
	}
	if len(t.Subs) != 3 && len(t.Subs) != 4 {
		return macro{}, &MacroError{Pos: t.Pos, Msg: "malformed macro definition"}
	}
	if t.Subs[1].Kind != NameTerm {
		return macro{}, &MacroError{Pos: t.Subs[1].Pos, Msg: "macro name must be a name"}
	}
	m := macro{name: t.Subs[1].Name, pos: t.Pos}
	if len(t.Subs) == 3 {
		m.body = t.Subs[2]
		return m, nil
	}
	args := t.Subs[2]
	if args.Kind != TupleTerm {
		return macro{}, &MacroError{Pos: args.Pos, Msg: "macro parameters must form a tuple"}
	}
	for _, p := range args.Subs {
		if p.Kind != NameTerm {
			return macro{}, &MacroError{Pos: p.Pos, Msg: "macro parameter must be a name"}
		}
		m.params = append(m.params, p.Name)
	}
	m.body = t.Subs[3]
	return m, nil
}

// rewriteBottomUp rebuilds t, applying rw to every node after its
// children have been rewritten; macro arguments are therefore
// pre-expanded when the enclosing instance is rewritten.
func rewriteBottomUp(t *Term, rw func(*Term) (*Term, error)) (*Term, error) {
	if t.Kind == TupleTerm {
		subs := make([]*Term, len(t.Subs))
		for i, s := range t.Subs {
			ns, err := rewriteBottomUp(s, rw)
			if err != nil {
				return nil, err
			}
			subs[i] = ns
		}
		t = &Term{Kind: TupleTerm, Subs: subs, Pos: t.Pos}
	}
	return rw(t)
}

// applyMacro rewrites every instance of m inside t: the name #m for
// nullary references, or any tuple whose operator is m.
func applyMacro(m macro, t *Term) (*Term, error) {
	return rewriteBottomUp(t, func(u *Term) (*Term, error) {
		switch {
		case u.Kind == NameTerm && u.Name == "#"+m.name:
			if len(m.params) > 0 {
				return nil, &MacroError{Pos: u.Pos, Msg: fmt.Sprintf("macro %s takes %d arguments", m.name, len(m.params))}
			}
			return m.body.clone(), nil
		case u.head() == m.name:
			args := u.Subs[1:]
			if len(args) != len(m.params) {
				return nil, &MacroError{Pos: u.Pos, Msg: fmt.Sprintf("macro %s takes %d arguments, got %d", m.name, len(m.params), len(args))}
			}
			res := m.body.clone()
			var err error
			for i, p := range m.params {
				if res, err = substitute(res, p, args[i]); err != nil {
					return nil, err
				}
			}
			return res, nil
		}
		return u, nil
	})
}

// substitute replaces every leaf name equal to param inside t by
// repl. Compound names are split on underscores: a segment equal to
// param is replaced textually when repl is a name or a number;
// substituting a tuple into a compound name is an error.
func substitute(t *Term, param string, repl *Term) (*Term, error) {
	switch t.Kind {
	case NumberTerm:
		return t, nil
	case NameTerm:
		if t.Name == param {
			return repl.clone(), nil
		}
		if !strings.Contains(t.Name, "_") {
			return t, nil
		}
		segs := strings.Split(t.Name, "_")
		changed := false
		for i, seg := range segs {
			if seg != param {
				continue
			}
			switch repl.Kind {
			case NameTerm:
				segs[i] = repl.Name
			case NumberTerm:
				segs[i] = strconv.Itoa(repl.Num)
			default:
				return nil, &MacroError{Pos: t.Pos, Msg: fmt.Sprintf("cannot substitute a tuple for %s inside the compound name %s", param, t.Name)}
			}
			changed = true
		}
		if !changed {
			return t, nil
		}
		return name(strings.Join(segs, "_"), t.Pos), nil
	case TupleTerm:
		subs := make([]*Term, len(t.Subs))
		for i, s := range t.Subs {
			ns, err := substitute(s, param, repl)
			if err != nil {
				return nil, err
			}
			subs[i] = ns
		}
		return tuple(t.Pos, subs...), nil
	default:
		panic("invalid term kind")
	}
}
