package cubing

import (
	"math"

	"github.com/lippinj/minisat-cubing/solver"
)

// A Stepper runs one restart-bounded unit of work against budget (a number
// of conflicts, or -- once a Stepper also cubifies -- a mix of conflict and
// propagation budgets it manages internally) and reports Sat, Unsat, or
// Indet if it was cut short by the budget or a restart.
type Stepper interface {
	Step(budget float64, currRestarts int) solver.Status
}

// searchOnlyStep is the plain Stepper: it never cubifies, it just runs
// ordinary bounded CDCL search. It is the baseline an InterleavedSolver
// degenerates to when constructed without a cubifying Stepper.
type searchOnlyStep struct {
	engine *solver.Solver
}

func (s searchOnlyStep) Step(budget float64, currRestarts int) solver.Status {
	return s.engine.Search(int(budget))
}

// InterleavedSolver drives a Stepper through successive restarts with a
// growing conflict budget. The unit of work per restart is pluggable: a plain
// search step, or the full four-phase search/cubify/cube-search/simplify
// step a CubifyingSolverBase provides.
type InterleavedSolver struct {
	Engine *solver.Solver
	Config Config
	Step   Stepper

	currRestarts int
}

// NewInterleavedSolver builds an InterleavedSolver over engine. If step is
// nil, plain bounded search is used (no cubification).
func NewInterleavedSolver(engine *solver.Solver, cfg Config, step Stepper) *InterleavedSolver {
	if step == nil {
		step = searchOnlyStep{engine: engine}
	}
	return &InterleavedSolver{Engine: engine, Config: cfg, Step: step}
}

// Solve runs the interleaved restart loop to completion, returning Sat or
// Unsat. It never returns Indet: Indet steps just trigger another restart
// with a larger budget.
func (is *InterleavedSolver) Solve() solver.Status {
	if !is.Engine.Ok() {
		return solver.Unsat
	}
	if is.Config.UseSimplification && !is.Engine.Eliminate() {
		return solver.Unsat
	}
	for {
		budget := is.nextBudget()
		status := is.Step.Step(budget, is.currRestarts)
		is.currRestarts++
		if status != solver.Indet {
			return status
		}
	}
}

// nextBudget computes the conflict budget for the next restart, following
// either the Luby sequence (doubling-step exponential growth) or a plain
// power-law curve, scaled by RestartFirst.
func (is *InterleavedSolver) nextBudget() float64 {
	n := uint(is.currRestarts)
	if is.Config.LubyRestart {
		return float64(is.Config.RestartFirst) * solver.LubyExp(n, is.Config.RestartInc)
	}
	return float64(is.Config.RestartFirst) * math.Pow(float64(is.currRestarts), is.Config.RestartInc)
}
