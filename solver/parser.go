package solver

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ParseCNF parses a DIMACS CNF problem from r. Comment lines are
// ignored, the "p cnf" prolog is checked when present and each clause
// is terminated by a 0. Tautological clauses are discarded.
func ParseCNF(r io.Reader) (*CNF, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var clauses []Clause
	var lits []Lit
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		if strings.HasPrefix(line, "p") {
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "cnf" {
				return nil, fmt.Errorf("invalid DIMACS prolog %q", line)
			}
			continue
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid literal %q: %v", field, err)
			}
			if n == 0 {
				c, ok := NewClause(lits...)
				if ok {
					clauses = append(clauses, c)
				}
				lits = nil
				continue
			}
			lits = append(lits, Lit(n))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read DIMACS input: %v", err)
	}
	if len(lits) != 0 {
		return nil, fmt.Errorf("unterminated clause %v", lits)
	}
	return NewCNF(clauses), nil
}

// WriteDimacs writes f on w in the DIMACS CNF format. The original
// label of each variable, when known, is written as a comment line
// "c label=index" between the prolog and the clauses.
func (f *CNF) WriteDimacs(w io.Writer) error {
	nbVars := 0
	for v := range f.Vars {
		if int(v) > nbVars {
			nbVars = int(v)
		}
	}
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", nbVars, len(f.Clauses)); err != nil {
		return fmt.Errorf("could not write DIMACS output: %v", err)
	}
	names := make([]string, 0, len(f.Labels))
	byName := make(map[string]Var, len(f.Labels))
	for v, name := range f.Labels {
		names = append(names, name)
		byName[name] = v
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "c %s=%d\n", name, byName[name]); err != nil {
			return fmt.Errorf("could not write DIMACS output: %v", err)
		}
	}
	for _, c := range f.Clauses {
		strs := make([]string, len(c))
		for i, l := range c {
			strs[i] = strconv.Itoa(int(l))
		}
		if _, err := fmt.Fprintf(w, "%s 0\n", strings.Join(strs, " ")); err != nil {
			return fmt.Errorf("could not write DIMACS output: %v", err)
		}
	}
	return nil
}
