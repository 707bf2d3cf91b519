package bf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	f := And(Or(Var("a"), Not(Var("b"))), Not(Var("c")))
	const expected = "and(or(a, not(b)), not(c))"
	if f.String() != expected {
		t.Errorf("string representation of formula not as expected: wanted %q, got %q", expected, f.String())
	}
}

func TestEval(t *testing.T) {
	f := Imply(Var("a"), Iff(Var("b"), Var("c")))
	assert.True(t, f.Eval(map[string]bool{"a": false, "b": true, "c": false}))
	assert.True(t, f.Eval(map[string]bool{"a": true, "b": true, "c": true}))
	assert.False(t, f.Eval(map[string]bool{"a": true, "b": true, "c": false}))
	assert.Panics(t, func() { f.Eval(map[string]bool{"a": true}) })
}

func TestEvalChainedIff(t *testing.T) {
	f := Iff(Var("a"), Var("b"), Var("c"))
	assert.True(t, f.Eval(map[string]bool{"a": false, "b": false, "c": false}))
	assert.False(t, f.Eval(map[string]bool{"a": true, "b": false, "c": true}))
}

func TestCNFClausesLiterals(t *testing.T) {
	cs := CNFClauses(And(Var("a"), Not(Var("b"))))
	require.Len(t, cs, 2)
	assert.Equal(t, Clause{PosLit("a")}, cs[0])
	assert.Equal(t, Clause{NegLit("b")}, cs[1])
}

func TestCNFClausesDistributes(t *testing.T) {
	// or(and(a, b), and(c, d)) distributes into the product of the
	// two conjunctions.
	cs := CNFClauses(Or(And(Var("a"), Var("b")), And(Var("c"), Var("d"))))
	require.Len(t, cs, 4)
	for _, c := range cs {
		assert.Len(t, c, 2)
	}
}

func TestCNFClausesDropsTautologies(t *testing.T) {
	cs := CNFClauses(Or(Var("a"), Not(Var("a"))))
	assert.Len(t, cs, 0)
}

func TestCNFClausesUnfoldsImply(t *testing.T) {
	cs := CNFClauses(Imply(Var("a"), Var("b")))
	require.Len(t, cs, 1)
	assert.Equal(t, Clause{NegLit("a"), PosLit("b")}, cs[0])
}

func TestSolveSat(t *testing.T) {
	f := And(Or(Var("a"), Var("b")), Var("i"), Or(Var("g"), Var("h"), And(Var("c"), Or(Var("d"), Var("e")), Var("f"))))
	model := Solve(f)
	if model == nil {
		t.Errorf("problem was declared UNSAT")
	} else if !f.Eval(model) {
		t.Errorf("invalid model %v", model)
	}
}

func TestSolveUnsat(t *testing.T) {
	f := And(Var("a"), Not(Var("a")))
	assert.Nil(t, Solve(f))
}

func TestSolveAgreesWithDistributive(t *testing.T) {
	samples := []Formula{
		Var("a"),
		Not(Var("a")),
		Iff(Var("a"), Var("b"), Var("c")),
		Imply(And(Var("a"), Var("b")), Or(Var("c"), Not(Var("d")))),
		And(Iff(Var("a"), Not(Var("b"))), Iff(Var("b"), Not(Var("a")))),
		And(Var("a"), Imply(Var("a"), Var("b")), Not(Var("b"))),
		Not(Imply(And(Var("a"), Var("b")), Var("a"))),
	}
	for i, f := range samples {
		distrib := solveDistrib(f)
		tseytin := Solve(f) != nil
		require.Equal(t, distrib, tseytin, "sample %d: %s", i, f)
	}
}
