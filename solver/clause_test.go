package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClause(t *testing.T) {
	c, ok := NewClause(3, -1, 3, 2)
	require.True(t, ok)
	assert.Equal(t, Clause{-1, 2, 3}, c)

	_, ok = NewClause(1, 2, -1)
	assert.False(t, ok, "clause with p and not(p) must be a tautology")

	c, ok = NewClause()
	require.True(t, ok)
	assert.Len(t, c, 0)
}

func TestClauseHas(t *testing.T) {
	c, _ := NewClause(-4, 1, 2)
	assert.True(t, c.Has(1))
	assert.True(t, c.Has(-4))
	assert.False(t, c.Has(4))
	assert.False(t, c.Has(-1))
	assert.False(t, c.Has(7))
}

func TestClauseSubsumes(t *testing.T) {
	c1, _ := NewClause(1, 2)
	c2, _ := NewClause(1, 2, 5)
	c3, _ := NewClause(1, -2, 5)
	assert.True(t, c1.Subsumes(c2))
	assert.False(t, c2.Subsumes(c1))
	assert.False(t, c1.Subsumes(c3))
	assert.True(t, c1.Subsumes(c1))
}

func TestResolve(t *testing.T) {
	c1, _ := NewClause(1, 2)
	c2, _ := NewClause(-1, 3)
	r, ok := Resolve(c1, c2, 1)
	require.True(t, ok)
	assert.Equal(t, Clause{2, 3}, r)

	// Order of the arguments does not matter.
	r, ok = Resolve(c2, c1, 1)
	require.True(t, ok)
	assert.Equal(t, Clause{2, 3}, r)

	// No resolution on a variable absent from one of the clauses.
	_, ok = Resolve(c1, c2, 2)
	assert.False(t, ok)

	// No resolution when both clauses agree on the variable.
	c3, _ := NewClause(1, 3)
	_, ok = Resolve(c1, c3, 1)
	assert.False(t, ok)

	// Tautological resolvents are rejected.
	c4, _ := NewClause(1, 3)
	c5, _ := NewClause(-1, -3)
	_, ok = Resolve(c4, c5, 1)
	assert.False(t, ok)

	// Resolving two units yields the empty clause.
	u1, _ := NewClause(2)
	u2, _ := NewClause(-2)
	r, ok = Resolve(u1, u2, 2)
	require.True(t, ok)
	assert.Len(t, r, 0)
}
