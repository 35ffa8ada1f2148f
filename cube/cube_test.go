package cube_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lippinj/minisat-cubing/cube"
	"github.com/lippinj/minisat-cubing/solver"
)

func lit(i int) solver.Lit { return solver.IntToLit(i) }

func TestCubePushKeepsAscendingOrder(t *testing.T) {
	c := cube.New()
	c.Push(lit(3))
	c.Push(lit(1))
	c.Push(lit(2))
	require.Equal(t, 3, c.Len())
	assert.Equal(t, lit(1), c.At(0))
	assert.Equal(t, lit(2), c.At(1))
	assert.Equal(t, lit(3), c.At(2))
	assert.True(t, c.Sane())
}

func TestCubePushDeduplicates(t *testing.T) {
	c := cube.New(lit(1), lit(1), lit(2))
	assert.Equal(t, 2, c.Len())
}

func TestCubePop(t *testing.T) {
	c := cube.New(lit(1), lit(2), lit(3))
	c.Pop(lit(2))
	assert.Equal(t, 2, c.Len())
	assert.False(t, c.Contains(lit(2)))
}

func TestCubeSubsetAndStartsWith(t *testing.T) {
	base := cube.New(lit(1), lit(2), lit(3))
	sub := cube.New(lit(1), lit(2))
	assert.True(t, sub.SubsetOf(base))
	assert.True(t, base.StartsWith(sub))
	assert.False(t, sub.StartsWith(base))
}

func TestCubeInvertedFromClause(t *testing.T) {
	clause := []solver.Lit{lit(1), lit(-2)}
	implicant := cube.Inverted(clause)
	assert.True(t, implicant.Contains(lit(-1)))
	assert.True(t, implicant.Contains(lit(2)))
	assert.Equal(t, 2, implicant.Len())
}

func TestCubeSaneRejectsComplementaryLiterals(t *testing.T) {
	var c cube.Cube
	c = c.Union(cube.New(lit(1)))
	c = c.Union(cube.New(lit(-1)))
	assert.False(t, c.Sane())
}

func TestIndexPushPopContains(t *testing.T) {
	idx := cube.NewIndex()
	a := cube.New(lit(1), lit(2))
	b := cube.New(lit(1), lit(3))
	idx.Push(a)
	assert.True(t, idx.Contains(a))
	assert.False(t, idx.Contains(b))
	idx.Push(b)
	assert.True(t, idx.Contains(b))
	idx.Pop(a)
	assert.False(t, idx.Contains(a))
	assert.True(t, idx.Contains(b))
}
