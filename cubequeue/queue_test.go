package cubequeue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lippinj/minisat-cubing/cube"
	"github.com/lippinj/minisat-cubing/cubequeue"
	"github.com/lippinj/minisat-cubing/solver"
)

func lit(i int) solver.Lit { return solver.IntToLit(i) }

func TestPushAndPeekBestSingleton(t *testing.T) {
	q := cubequeue.New(10)
	c := cube.New(lit(1), lit(2))
	q.Push(c, 2.5, 0)
	require.False(t, q.Empty())
	assert.True(t, q.PeekBest(0).Equal(c))
	assert.Equal(t, 2.5, q.BestScore())
}

func TestPushMergesParentOnExistingCube(t *testing.T) {
	q := cubequeue.New(10)
	c := cube.New(lit(1))
	q.Push(c, 1.0, 0)
	q.Push(c, 99.0, 1) // score is ignored on a repeat push
	assert.Equal(t, 1, q.Len())
	parents := q.ParentsOf(c)
	_, hasZero := parents[0]
	_, hasOne := parents[1]
	assert.True(t, hasZero)
	assert.True(t, hasOne)
}

func TestPeekBestTieBreaksByModulo(t *testing.T) {
	q := cubequeue.New(8)
	l0, l1, l2 := cube.New(lit(1)), cube.New(lit(2)), cube.New(lit(3))
	q.Push(l0, 1.0, 0)
	q.Push(l1, 1.0, 1)
	q.Push(l2, 1.0, 2)
	assert.True(t, q.PeekBest(0).Equal(l0))
	assert.True(t, q.PeekBest(1).Equal(l1))
	assert.True(t, q.PeekBest(5).Equal(l2)) // 5 mod 3 == 2
	assert.Equal(t, 1.0, q.MeanScore())
}

func TestPeekWorstAndBestDiffer(t *testing.T) {
	q := cubequeue.New(10)
	low := cube.New(lit(1))
	high := cube.New(lit(2))
	q.Push(low, 1.0, 0)
	q.Push(high, 5.0, 0)
	assert.True(t, q.PeekWorst().Equal(low))
	assert.True(t, q.PeekBest(0).Equal(high))
}

func TestEvictionUnderBudget(t *testing.T) {
	q := cubequeue.New(2)
	a := cube.New(lit(1))
	b := cube.New(lit(2))
	c := cube.New(lit(3))
	q.Push(a, 5.0, 0)
	q.Push(b, 1.0, 0)
	require.Equal(t, 2, q.Len())
	q.Push(c, 3.0, 0) // third push exceeds budget: worst-scored b is evicted first
	assert.Equal(t, 2, q.Len())
	assert.True(t, q.Contains(a))
	assert.False(t, q.Contains(b))
	assert.True(t, q.Contains(c))
	assert.Equal(t, 5.0, q.BestScore())
	assert.Equal(t, 3.0, q.MeanScore())
}

func TestMeanScoreSurvivesEviction(t *testing.T) {
	q := cubequeue.New(10)
	q.Push(cube.New(lit(1)), 2.0, 0)
	q.Push(cube.New(lit(2)), 4.0, 0)
	assert.Equal(t, 3.0, q.MeanScore())
	q.Pop(cube.New(lit(1)))
	assert.Equal(t, 3.0, q.MeanScore())
}
