package solver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlice(t *testing.T) {
	pb := ParseSlice([][]int{{1, 2, 3}, {-1, -2}, {2, -2}})
	assert.Len(t, pb.Clauses, 2, "the tautology must be dropped")
	assert.Equal(t, map[Var]bool{1: true, 2: true, 3: true}, pb.Vars)
}

func TestCopyIsDeep(t *testing.T) {
	pb := ParseSlice([][]int{{1, 2}, {-1}})
	cp := pb.Copy()
	cp.Clauses = append(cp.Clauses, Clause{2})
	cp.Clauses[0][0] = -2
	assert.Equal(t, Clause{1, 2}, pb.Clauses[0])
	assert.Len(t, pb.Clauses, 2)
}

func TestEval(t *testing.T) {
	pb := ParseSlice([][]int{{1, 2}, {-1, 2}})
	assert.True(t, pb.Eval(Model{1: false, 2: true}))
	assert.True(t, pb.Eval(Model{1: true, 2: true}))
	assert.False(t, pb.Eval(Model{1: true, 2: false}))
	assert.False(t, pb.Eval(Model{2: false}), "an unbound literal does not satisfy a clause")
}

func TestUnitResolve(t *testing.T) {
	pb := ParseSlice([][]int{{1}, {-1, 2}, {-2, 4, 5}, {-1, -3}})
	m := Model{}
	status := pb.unitResolve(m)
	assert.Equal(t, Indet, status)
	assert.Equal(t, Model{1: true, 2: true, 3: false}, m)
	require.Len(t, pb.Clauses, 1)
	assert.Equal(t, Clause{4, 5}, pb.Clauses[0])
}

func TestUnitResolveConflict(t *testing.T) {
	pb := ParseSlice([][]int{{1}, {-1}})
	assert.Equal(t, Unsat, pb.unitResolve(nil))
}

func TestUnitResolveSat(t *testing.T) {
	pb := ParseSlice([][]int{{2}, {-2, -3}})
	m := Model{}
	assert.Equal(t, Sat, pb.unitResolve(m))
	assert.Equal(t, Model{2: true, 3: false}, m)
}

func TestSubsume(t *testing.T) {
	pb := ParseSlice([][]int{{1, 2, 3}, {1, 2}, {1, 2}, {4, 5}})
	pb.subsume()
	strs := make([]string, len(pb.Clauses))
	for i, c := range pb.Clauses {
		strs[i] = c.String()
	}
	assert.Equal(t, "{1 2} {4 5}", strings.Join(strs, " "))
}
