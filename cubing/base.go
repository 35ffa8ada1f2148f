package cubing

import (
	"time"

	"github.com/lippinj/minisat-cubing/bimap"
	"github.com/lippinj/minisat-cubing/cube"
	"github.com/lippinj/minisat-cubing/solver"
)

// A CubifyStrategy supplies the five override points CubifyingSolverBase
// delegates to: which clauses are worth cubifying, how to do it, and which
// cube to search next. CubifyingSolver is the concrete implementation; other
// strategies (e.g. a no-op one for plain interleaved search) can satisfy the
// same interface.
type CubifyStrategy interface {
	Bootstrap()
	CanCubify() bool
	CubifyOne() solver.Status
	PickCube() (cube.Cube, bool)
	RefuteCube(base, reduced cube.Cube)
}

// MeanScorer is implemented by strategies that can report their cube
// queue's rolling mean score, for the terminal stats block.
type MeanScorer interface {
	MeanScore() float64
}

// CubifyingSolverBase runs the four-phase interleaved step -- search,
// cubify, cube-search, simplify -- on top of a plain CDCL engine, delegating
// the cubification-specific decisions to a CubifyStrategy. It implements
// Stepper, so it plugs directly into InterleavedSolver.
type CubifyingSolverBase struct {
	Engine   *solver.Solver
	Config   Config
	Strategy CubifyStrategy
	Bimap    *bimap.Bimap

	Cubifications   int
	CubeRefutations int
	ExitCode        int

	bootstrapped bool

	TimeSearch      time.Duration
	TimeCubify      time.Duration
	TimeSearchCube  time.Duration
	TimeEndSimplify time.Duration
}

// NewCubifyingSolverBase builds a base step runner over engine. strategy may
// be nil briefly if the caller is about to assign it (CubifyingSolver wires
// itself in as its own strategy after construction).
func NewCubifyingSolverBase(engine *solver.Solver, cfg Config, strategy CubifyStrategy) *CubifyingSolverBase {
	return &CubifyingSolverBase{
		Engine:   engine,
		Config:   cfg,
		Strategy: strategy,
		Bimap:    bimap.New(),
	}
}

// Step runs one restart iteration's worth of search, cubification, and
// cube-conditioned search, in that order, per spec §4.6.
func (b *CubifyingSolverBase) Step(budget float64, currRestarts int) solver.Status {
	if !b.bootstrapped {
		b.Strategy.Bootstrap()
		b.bootstrapped = true
	}

	t0 := time.Now()
	p0 := b.Engine.Propagations()
	status := b.Engine.Search(int(budget))
	b.TimeSearch += time.Since(t0)
	if status != solver.Indet {
		b.ExitCode = 1
		return status
	}

	t1 := time.Now()
	p1 := b.Engine.Propagations()
	propBudget := int(b.Config.KC * float64(p1-p0))
	deadline := p1 + propBudget
	for b.Engine.Propagations() < deadline && b.Strategy.CanCubify() {
		st := b.Strategy.CubifyOne()
		b.Cubifications++
		if st != solver.Indet {
			b.TimeCubify += time.Since(t1)
			b.ExitCode = 1
			return st
		}
	}
	b.TimeCubify += time.Since(t1)

	if b.Config.AlwaysSearchCube || !b.Strategy.CanCubify() {
		t2 := time.Now()
		status = b.cubeSearchPhase(int(budget))
		b.TimeSearchCube += time.Since(t2)
		if status != solver.Indet {
			return status
		}
	}

	t3 := time.Now()
	ok := b.Engine.Simplify()
	b.TimeEndSimplify += time.Since(t3)
	if !ok {
		b.ExitCode = 5
		return solver.Unsat
	}
	return solver.Indet
}

// cubeSearchPhase runs phase 3: repeatedly pick the best cube, search under
// it as an assumption set, and on refutation strengthen the clause it came
// from, until the conflict budget for this restart is spent or no cube is
// worth picking.
func (b *CubifyingSolverBase) cubeSearchPhase(confBudget int) solver.Status {
	spentStart := b.Engine.Stats.NbConflicts
	for {
		c, ok := b.Strategy.PickCube()
		if !ok {
			return solver.Indet
		}
		remaining := confBudget - (b.Engine.Stats.NbConflicts - spentStart)
		if remaining <= 0 {
			return solver.Indet
		}
		status := b.searchCubeBranch(c, remaining)
		switch status {
		case solver.Sat:
			b.ExitCode = 2
			return solver.Sat
		case solver.Unsat:
			b.CubeRefutations++
			reduced := cube.Inverted(b.Engine.Conflict())
			if reduced.Len() == 0 {
				b.ExitCode = 4
				return solver.Unsat
			}
			b.Strategy.RefuteCube(c, reduced)
		}
	}
}

// searchCubeBranch asserts c's literals as assumptions and runs a bounded
// search under them, unwinding to the root on any non-SAT result.
func (b *CubifyingSolverBase) searchCubeBranch(c cube.Cube, confBudget int) solver.Status {
	b.Engine.ClearAssumptions()
	for _, l := range c.Lits() {
		b.Engine.PushAssumption(l)
	}
	status := b.Engine.Search(confBudget)
	if status != solver.Sat {
		b.Engine.CancelUntil(0)
		b.Engine.ClearAssumptions()
	}
	return status
}

// rootOf builds the minimal conflict cube for the clause at transient slot
// i under the current root-level assignment: the negations of its still-
// undefined literals. It reports satisfied=true (and no cube) if any
// literal of the clause is already true at the root.
func (b *CubifyingSolverBase) rootOf(i int) (root cube.Cube, satisfied bool) {
	for _, l := range b.Engine.ClauseLits(i) {
		switch b.Engine.Value(l) {
		case solver.Sat:
			return cube.Cube{}, true
		case solver.Indet:
			root.Push(l.Negation())
		}
	}
	return root, false
}

// isConflicted is an assertion-only sanity check: it reports whether
// asserting c's literals (as decisions, in order) leads to a conflict
// before or during propagation, restoring the root level before returning.
func (b *CubifyingSolverBase) isConflicted(c cube.Cube) bool {
	b.Engine.NewDecisionLevel()
	conflicted := false
	for _, l := range c.Lits() {
		switch b.Engine.Value(l) {
		case solver.Unsat:
			conflicted = true
		case solver.Sat:
			// already implied; nothing to enqueue
		default:
			if !b.Engine.Enqueue(l) {
				conflicted = true
			} else if confl := b.Engine.Propagate(); confl != nil {
				conflicted = true
			}
		}
		if conflicted {
			break
		}
	}
	b.Engine.CancelUntil(0)
	return conflicted
}

// learnNegationOf adds the negation of c as a clause at the root level.
func (b *CubifyingSolverBase) learnNegationOf(c cube.Cube) bool {
	return b.Engine.AddClauseVec(c.Invert())
}

// dropClause deletes the original clause at transient slot i, keeping the
// Bimap's persistent ids synchronized with the engine's swap-with-last-slot
// removal.
func (b *CubifyingSolverBase) dropClause(i int) {
	last := b.Engine.NbOriginalClauses() - 1
	b.Bimap.Swap(i, last)
	b.Bimap.Drop(last)
	b.Engine.RemoveOriginalAt(i)
}

