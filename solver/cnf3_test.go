package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clausesOf(t *testing.T, raw [][]int) []Clause {
	t.Helper()
	res := make([]Clause, 0, len(raw))
	for _, lits := range raw {
		ls := make([]Lit, len(lits))
		for i, l := range lits {
			ls[i] = Lit(l)
		}
		c, ok := NewClause(ls...)
		require.True(t, ok)
		res = append(res, c)
	}
	return res
}

func TestNewCDCLInput(t *testing.T) {
	in, err := NewCDCLInput(clausesOf(t, [][]int{{1}, {1, 2}, {1, 2, 3}}), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []Lit{1}, in.Units)
	assert.Equal(t, map[Var]bool{1: true, 2: true, 3: true}, in.CNF3.Vars)

	// {1, 2} is stored as not(1) -> 2 and not(2) -> 1.
	assert.Contains(t, in.CNF3.Double(-1), Lit(2))
	assert.Contains(t, in.CNF3.Double(-2), Lit(1))

	// {1, 2, 3} yields its three implication entries.
	assert.Equal(t, []Lit{3}, in.CNF3.Triple(-1, -2))
	assert.Equal(t, []Lit{2}, in.CNF3.Triple(-1, -3))
	assert.Equal(t, []Lit{1}, in.CNF3.Triple(-2, -3))

	// The pair key ignores the order of its components but not their
	// signs.
	assert.Equal(t, []Lit{3}, in.CNF3.Triple(-2, -1))
	assert.Empty(t, in.CNF3.Triple(-1, 2))
	assert.Empty(t, in.CNF3.Triple(1, 2))
}

func TestNewCDCLInputDomainError(t *testing.T) {
	_, err := NewCDCLInput(clausesOf(t, [][]int{{1, 2, 3, 4}}), nil, nil)
	require.Error(t, err)
	var derr *DomainError
	assert.ErrorAs(t, err, &derr)
}

func TestCDCLInputRoundTrip(t *testing.T) {
	for _, clauses := range randomProblems(40, 6, 15, 7) {
		pb := ParseSlice(clauses)
		pb.SortClauses()
		pb.subsume() // drop the duplicates the generator may produce
		in, err := NewCDCLInput(pb.Clauses, pb.Vars, pb.Labels)
		require.NoError(t, err)
		back := in.ToCNF()
		require.Equal(t, len(pb.Clauses), len(back.Clauses), "round trip changed the clause count for %v", clauses)
		for i, c := range pb.Clauses {
			assert.True(t, c.Equal(back.Clauses[i]), "clause %v became %v", c, back.Clauses[i])
		}
		assert.Equal(t, pb.Vars, back.Vars)
	}
}
