package cubing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lippinj/minisat-cubing/cube"
	"github.com/lippinj/minisat-cubing/solver"
)

func mustParseInternal(t *testing.T, cnf string) *solver.Problem {
	pb, err := solver.ParseCNF(strings.NewReader(cnf))
	require.NoError(t, err)
	return pb
}

func TestRefuteCubePopsTrackedParentClause(t *testing.T) {
	pb := mustParseInternal(t, "p cnf 3 1\n1 2 3 0\n")
	engine := solver.New(pb)
	cs := NewCubifyingSolver(engine, DefaultConfig())
	cs.Bootstrap()

	pid := cs.cubifyQueue[0]
	base := cube.New(solver.IntToLit(-1), solver.IntToLit(-2), solver.IntToLit(-3))
	cs.cq.Push(base, 2.0, pid)

	before := engine.NbOriginalClauses()
	reduced := cube.New(solver.IntToLit(-1), solver.IntToLit(-2))
	cs.RefuteCube(base, reduced)

	assert.Equal(t, before, engine.NbOriginalClauses(), "the 3-literal clause was dropped, the 2-literal one added")
	assert.False(t, cs.cq.Contains(base))
}

func TestCubifyInternalScoresEachImplicantSubcube(t *testing.T) {
	pb := mustParseInternal(t, "p cnf 3 1\n1 2 3 0\n")
	engine := solver.New(pb)
	cs := NewCubifyingSolver(engine, DefaultConfig())
	cs.Bootstrap()

	root := cube.New(solver.IntToLit(-1), solver.IntToLit(-2), solver.IntToLit(-3))
	post := cs.cubifyInternal(0, root)

	assert.Equal(t, 0, engine.DecisionLevel(), "cubifyInternal must restore the root decision level")
	assert.True(t, post.Equal(root) || post.Len() < root.Len())
	// Any two of the three negated literals force the third through the
	// clause, so every 2-literal subcube grows the trail by 3 (score 1.5).
	for idx := 0; idx < root.Len(); idx++ {
		assert.True(t, cs.cq.Contains(withoutAt(root, idx)), "implicant subcube without index %d must be queued", idx)
	}
}

func TestCubifyInternalScoresIncrementalPrefixCubes(t *testing.T) {
	// Deciding -1 alone (root's first literal) propagates x5 and x6 true
	// through the two extra binary clauses, so the 1-literal prefix {-1}
	// grows the trail by three and must be scored and queued on its own,
	// well before the walk ever reaches a full 3-literal implicant subcube.
	pb := mustParseInternal(t, "p cnf 6 3\n1 2 3 4 0\n1 5 0\n1 6 0\n")
	engine := solver.New(pb)
	cs := NewCubifyingSolver(engine, DefaultConfig())
	cs.Bootstrap()

	root := cube.New(solver.IntToLit(-1), solver.IntToLit(-2), solver.IntToLit(-3), solver.IntToLit(-4))
	post := cs.cubifyInternal(0, root)

	assert.Equal(t, 0, engine.DecisionLevel(), "cubifyInternal must restore the root decision level")
	assert.True(t, post.Equal(root) || post.Len() < root.Len())

	prefix := cube.New(solver.IntToLit(-1))
	require.Less(t, prefix.Len(), root.Len()-1, "prefix must be shorter than any full implicant subcube")
	assert.True(t, cs.cq.Contains(prefix), "the incremental walk must score the 1-literal prefix on its own, not just full subcubes")

	diff := cs.literalDifficulty[int(solver.IntToLit(-1))]
	assert.NotEqual(t, unknownDifficulty, diff, "literalDifficulty must be populated for a clause with more than 2 literals")
}

func TestPlanOrderPutsAlreadyQueuedSubcubesFirst(t *testing.T) {
	pb := mustParseInternal(t, "p cnf 3 1\n1 2 3 0\n")
	engine := solver.New(pb)
	cs := NewCubifyingSolver(engine, DefaultConfig())
	cs.Bootstrap()

	root := cube.New(solver.IntToLit(-1), solver.IntToLit(-2), solver.IntToLit(-3))
	already := cube.New(solver.IntToLit(-2), solver.IntToLit(-3)) // root without index 0
	cs.cq.Push(already, 5.0, cs.cubifyQueue[0])

	order := cs.planOrder(root)
	require.NotEmpty(t, order)
	assert.Equal(t, 0, order[0])
}

func TestCanCubifyDiscardsDroppedClauses(t *testing.T) {
	pb := mustParseInternal(t, "p cnf 2 1\n1 2 0\n")
	engine := solver.New(pb)
	cs := NewCubifyingSolver(engine, DefaultConfig())
	cs.Bootstrap()
	require.True(t, cs.CanCubify())

	cs.dropClause(0)
	assert.False(t, cs.CanCubify())
}
