package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDPLLUnit(t *testing.T) {
	pb := ParseSlice([][]int{{1}})
	status, model := DPLL(pb.Copy())
	require.Equal(t, Sat, status)
	assert.True(t, model[1])
}

func TestDPLLUnitConflict(t *testing.T) {
	// Unit propagation alone must find the contradiction.
	pb := ParseSlice([][]int{{1}, {-1}})
	status, model := DPLL(pb)
	assert.Equal(t, Unsat, status)
	assert.Nil(t, model)
}

func TestDPLLModelIsTotal(t *testing.T) {
	pb := ParseSlice([][]int{{1, 2}, {3, -1}})
	orig := pb.Copy()
	status, model := DPLL(pb)
	require.Equal(t, Sat, status)
	for v := range orig.Vars {
		_, ok := model[v]
		assert.True(t, ok, "variable %d has no binding", v)
	}
	assert.True(t, orig.Eval(model))
}

func TestDPLLUnsat(t *testing.T) {
	// All sign combinations over two variables.
	pb := ParseSlice([][]int{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}})
	status, _ := DPLL(pb)
	assert.Equal(t, Unsat, status)
}

func TestDPLLPigeons(t *testing.T) {
	clauses := [][]int{
		{1, 2}, {3, 4}, {5, 6},
		{-1, -3}, {-1, -5}, {-3, -5},
		{-2, -4}, {-2, -6}, {-4, -6},
	}
	status, _ := DPLL(ParseSlice(clauses))
	assert.Equal(t, Unsat, status)
}

func TestDPAndDPLLAgree(t *testing.T) {
	for _, clauses := range randomProblems(60, 8, 24, 42) {
		pb := ParseSlice(clauses)
		dp := DP(pb.Copy())
		dpll, model := DPLL(pb.Copy())
		require.Equal(t, dp, dpll, "procedures disagree on %v", clauses)
		if dpll == Sat {
			assert.True(t, pb.Eval(model), "invalid model %v for %v", model, clauses)
		}
	}
}
