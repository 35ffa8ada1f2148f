package cubing

import (
	"math"

	"github.com/lippinj/minisat-cubing/cube"
	"github.com/lippinj/minisat-cubing/cubequeue"
	"github.com/lippinj/minisat-cubing/solver"
)

// CubifyingSolver is the concrete cubification strategy: it drives the path
// planner over original clauses, scores the resulting implicant subcubes
// into a CubeQueue, and strengthens clauses whenever a subcube is proven
// subsumed. It embeds CubifyingSolverBase and wires itself in as that base's
// CubifyStrategy, so it is usable directly as a cubing.Stepper.
type CubifyingSolver struct {
	*CubifyingSolverBase

	cq *cubequeue.Queue
	ci *cube.Index

	cubifyQueue []int // stack of persistent clause ids still to cubify

	literalDifficulty []int // indexed by int(solver.Lit); last measured unit-propagation count
}

const unknownDifficulty = math.MaxInt32

// NewCubifyingSolver builds a fully wired cubification step over engine.
func NewCubifyingSolver(engine *solver.Solver, cfg Config) *CubifyingSolver {
	cs := &CubifyingSolver{
		cq: cubequeue.New(cfg.QueueBudget),
		ci: cube.NewIndex(),
	}
	cs.CubifyingSolverBase = NewCubifyingSolverBase(engine, cfg, cs)
	engine.SeedRandom(cfg.RandomSeed)
	return cs
}

// MeanScore exposes the cube queue's rolling mean score, for terminal stats.
func (cs *CubifyingSolver) MeanScore() float64 { return cs.cq.MeanScore() }

// Bootstrap records every currently live original clause's persistent id
// for cubification and resets the per-literal difficulty estimates.
func (cs *CubifyingSolver) Bootstrap() {
	n := cs.Engine.NbOriginalClauses()
	for i := 0; i < n; i++ {
		pid := cs.Bimap.Add(i)
		cs.cubifyQueue = append(cs.cubifyQueue, pid)
	}
	cs.literalDifficulty = make([]int, 2*cs.Engine.NVars())
	for i := range cs.literalDifficulty {
		cs.literalDifficulty[i] = unknownDifficulty
	}
}

// CanCubify reports whether any clause remains to be cubified, discarding
// stale persistent ids (clauses since deleted) from the top of the queue as
// it goes.
func (cs *CubifyingSolver) CanCubify() bool {
	for len(cs.cubifyQueue) > 0 {
		top := cs.cubifyQueue[len(cs.cubifyQueue)-1]
		if cs.Bimap.Fw(top) >= 0 {
			return true
		}
		cs.cubifyQueue = cs.cubifyQueue[:len(cs.cubifyQueue)-1]
	}
	return false
}

// CubifyOne pops persistent ids until one resolves to a live clause and
// cubifies it.
func (cs *CubifyingSolver) CubifyOne() solver.Status {
	for len(cs.cubifyQueue) > 0 {
		top := cs.cubifyQueue[len(cs.cubifyQueue)-1]
		cs.cubifyQueue = cs.cubifyQueue[:len(cs.cubifyQueue)-1]
		i := cs.Bimap.Fw(top)
		if i < 0 {
			continue
		}
		return cs.cubify(i)
	}
	return solver.Indet
}

// cubify processes the original clause at transient slot i: either it is
// already satisfied at the root (nothing to do), too large to plan over (it
// gets pruned if shrunk), or it is handed to the path planner, whose result
// either subsumes the clause, strengthens it, or leaves it unchanged.
func (cs *CubifyingSolver) cubify(i int) solver.Status {
	root, satisfied := cs.rootOf(i)
	if satisfied {
		return solver.Indet
	}
	origLen := cs.Engine.ClauseLen(i)
	if root.Len() > cs.Config.MaxCubifiableSize {
		if root.Len() < origLen {
			cs.pruneClause(i, root)
		}
		return solver.Indet
	}

	post := cs.cubifyInternal(i, root)
	switch {
	case post.Len() == 0:
		cs.dropClause(i)
	case post.Len() < origLen:
		cs.dropClause(i)
		if post.Len() == 1 {
			if !cs.Engine.AddClauseVec(post.Invert()) {
				return solver.Unsat
			}
		} else if !cs.ci.Contains(post) {
			j := cs.Engine.PushOriginalClause(post.Invert())
			pid := cs.Bimap.Add(j)
			cs.cubifyQueue = append(cs.cubifyQueue, pid)
			cs.ci.Push(post)
		}
	}
	return solver.Indet
}

// pruneClause replaces a clause too large to plan over with the shorter
// clause it has shrunk to under the root assignment: it drops clause i and,
// unless root is already in the index, adds root's negation as a new
// original clause and marks root in the index. The new clause is not queued
// for cubification.
func (cs *CubifyingSolver) pruneClause(i int, root cube.Cube) bool {
	cs.dropClause(i)
	if !cs.ci.Contains(root) {
		j := cs.Engine.PushOriginalClause(root.Invert())
		cs.Bimap.Add(j)
		cs.ci.Push(root)
	}
	return true
}

// PickCube returns the best cube worth searching, gated by density relative
// to the queue's rolling mean score.
func (cs *CubifyingSolver) PickCube() (cube.Cube, bool) {
	if cs.cq.Empty() {
		return cube.Cube{}, false
	}
	if cs.cq.BestScore() < cs.Config.KT*cs.cq.MeanScore() {
		return cube.Cube{}, false
	}
	r := cs.Engine.Irand(1000000)
	return cs.cq.PeekBest(r), true
}

// RefuteCube strengthens every clause base was an implicant cube of with
// reduced's negation, now that cube-search has proven base conflicting.
func (cs *CubifyingSolver) RefuteCube(base, reduced cube.Cube) {
	if cs.cq.Contains(base) {
		parents := cs.cq.ParentsOf(base)
		cs.cq.Pop(base)
		for pid := range parents {
			if i := cs.Bimap.Fw(pid); i >= 0 {
				cs.dropClause(i)
			}
		}
	}
	if !cs.ci.Contains(reduced) {
		j := cs.Engine.PushOriginalClause(reduced.Invert())
		pid := cs.Bimap.Add(j)
		cs.ci.Push(reduced)
		cs.cubifyQueue = append(cs.cubifyQueue, pid)
	}
}
