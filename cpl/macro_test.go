package cpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expandSource(t *testing.T, src string) (*Term, error) {
	t.Helper()
	terms, err := ParseTerms(src)
	require.NoError(t, err)
	return ExpandProgram(terms)
}

func mustExpand(t *testing.T, src string) string {
	t.Helper()
	res, err := expandSource(t, src)
	require.NoError(t, err)
	return res.String()
}

func TestExpandNullaryMacro(t *testing.T) {
	got := mustExpand(t, "(macro yes (and a b))\n(or #yes c)")
	assert.Equal(t, "(or (and a b) c)", got)
}

func TestExpandParamMacro(t *testing.T) {
	got := mustExpand(t, "(macro nand (p q) (not (and p q)))\n(nand x (or y z))")
	assert.Equal(t, "(not (and x (or y z)))", got)
}

func TestExpandCompoundNameSubstitution(t *testing.T) {
	got := mustExpand(t, "(macro at (i j) (and q_i_j r_i))\n(at 2 5)")
	assert.Equal(t, "(and q_2_5 r_2)", got)
}

func TestExpandMacroUsingEarlierMacro(t *testing.T) {
	// later macros expand first, so their output still contains the
	// earlier macro's instances, which the earlier pass resolves.
	src := "(macro base (p) (not p))\n(macro twice (p) (and (base p) (base p)))\n(twice x)"
	assert.Equal(t, "(and (not x) (not x))", mustExpand(t, src))
}

func TestExpandNoRecursion(t *testing.T) {
	// A macro does not see itself: the inner instance left by the
	// rewrite survives as an unknown operator instead of looping.
	src := "(macro loop (p) (loop p))\n(loop x)"
	got, err := expandSource(t, src)
	require.NoError(t, err)
	assert.Equal(t, "(loop x)", got.String())
}

func TestExpandDuplicateMacro(t *testing.T) {
	_, err := expandSource(t, "(macro m (and a b))\n(macro m (or a b))\n(#m)")
	var merr *MacroError
	require.ErrorAs(t, err, &merr)
}

func TestExpandArityMismatch(t *testing.T) {
	_, err := expandSource(t, "(macro nand (p q) (not (and p q)))\n(nand x)")
	var merr *MacroError
	require.ErrorAs(t, err, &merr)
}

func TestExpandTupleIntoCompoundName(t *testing.T) {
	_, err := expandSource(t, "(macro at (i) (and q_i))\n(at (or a b))")
	var merr *MacroError
	require.ErrorAs(t, err, &merr)
}

func TestExpandRange(t *testing.T) {
	got := mustExpand(t, `(/\* i 1 3 (_ a i))`)
	assert.Equal(t, `(/\ (_ a 1) (_ a 2) (_ a 3))`, got)
}

func TestExpandRangeDisjunction(t *testing.T) {
	got := mustExpand(t, `(\/* j 2 3 b_j)`)
	assert.Equal(t, `(\/ b_2 b_3)`, got)
}

func TestExpandEmptyRange(t *testing.T) {
	// An empty range leaves (empty) behind, which the enclosing
	// conjunction prunes.
	got := mustExpand(t, `(/\ a (\/* j 3 2 b_j))`)
	assert.Equal(t, `(/\ a)`, got)
}

func TestExpandEmptinessBubbles(t *testing.T) {
	got := mustExpand(t, `(/\ a (\/ (/\* i 3 2 x_i) (if 0 y)))`)
	assert.Equal(t, `(/\ a)`, got)
}

func TestExpandPairsRange(t *testing.T) {
	got := mustExpand(t, `(/\** 1 i j 3 (or e_i e_j))`)
	assert.Equal(t, `(/\ (or e_1 e_2) (or e_1 e_3) (or e_2 e_3))`, got)
}

func TestExpandNestedRanges(t *testing.T) {
	// The inner bound is an index of the outer range.
	got := mustExpand(t, `(/\* i 1 2 (\/* j 1 i (_ a i j)))`)
	assert.Equal(t, `(/\ (\/ (_ a 1 1)) (\/ (_ a 2 1) (_ a 2 2)))`, got)
}

func TestExpandIf(t *testing.T) {
	assert.Equal(t, "(and a b)", mustExpand(t, "(if 1 (and a b))"))
	assert.Equal(t, "(empty)", mustExpand(t, "(if 0 (and a b))"))
}

func TestExpandIfWithCalcCondition(t *testing.T) {
	got := mustExpand(t, `(/\* i 1 3 (if (calc i 2 =) (_ a i)))`)
	assert.Equal(t, `(/\ (_ a 2))`, got)
}

func TestExpandCalc(t *testing.T) {
	assert.Equal(t, "(_ a 7)", mustExpand(t, "(_ a (calc 1 2 3 * +))"))
	assert.Equal(t, "(_ a 1)", mustExpand(t, "(_ a (calc 2 2 = 1 1 = and))"))
	assert.Equal(t, "(_ a 0)", mustExpand(t, "(_ a (calc 0 0 or))"))
}

func TestExpandCalcErrors(t *testing.T) {
	for _, src := range []string{
		"(_ a (calc 1 +))",        // stack underflow
		"(_ a (calc 1 2))",        // two values left
		"(_ a (calc i 1 +))",      // unbound name
		"(_ a (calc (or b) 1 +))", // tuple operand
	} {
		_, err := expandSource(t, src)
		var merr *MacroError
		require.ErrorAs(t, err, &merr, "source %q", src)
	}
}

func TestExpandRangeThenCalc(t *testing.T) {
	// Arithmetic inside an indexed expansion is resolved after the
	// index has been substituted.
	got := mustExpand(t, `(/\* i 1 2 (_ c (calc i 1 +)))`)
	assert.Equal(t, `(/\ (_ c 2) (_ c 3))`, got)
}

func TestExpandIsIdempotent(t *testing.T) {
	src := `(macro nand (p q) (not (and p q)))
(/\* i 1 3 (if (calc i 1 =) (nand a_i b_i)))`
	once, err := expandSource(t, src)
	require.NoError(t, err)
	terms, err := ParseTerms(once.String())
	require.NoError(t, err)
	twice, err := ExpandProgram(terms)
	require.NoError(t, err)
	assert.Equal(t, once.String(), twice.String())
}

func TestExpandProgramEndsWithMacro(t *testing.T) {
	_, err := expandSource(t, "(macro m (and a b))")
	var merr *MacroError
	require.ErrorAs(t, err, &merr)
}

func TestExpandNonMacroBeforeLast(t *testing.T) {
	_, err := expandSource(t, "(and a b)\n(or a b)")
	var merr *MacroError
	require.ErrorAs(t, err, &merr)
}
