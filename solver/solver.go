package solver

import (
	"fmt"
	"math/rand"
)

const (
	initNbMaxClauses  = 2000  // Maximum # of learned clauses, at first.
	incrNbMaxClauses  = 300   // By how much # of learned clauses is incremented at each conflict.
	incrPostponeNbMax = 1000  // By how much # of learned is increased when lots of good clauses are currently learned.
	clauseDecay       = 0.999 // By how much clauses bumping decays over time.
	defaultVarDecay    = 0.8  // On each var decay, how much the varInc should be decayed at startup
)

// Stats are statistics about the resolution of the problem, for information purposes only.
type Stats struct {
	NbRestarts      int
	NbConflicts     int
	NbDecisions     int
	NbPropagations  int // How many trail literals (decisions and implied ones) were processed by propagation
	NbUnitLearned   int
	NbBinaryLearned int
	NbLearned       int
	NbDeleted       int
}

// decLevel is an internal decision-level magnitude. 0 means "unbound" (only
// ever seen inside model entries, never as s.level); 1 is the root level,
// at which unit clauses and top-level facts live; values above 1 are actual
// decision levels. Externally (DecisionLevel/NewDecisionLevel/CancelUntil)
// levels are renumbered so the root is 0, matching the convention described
// in spec.md §6.
type decLevel int

func abs(val decLevel) decLevel {
	if val < 0 {
		return -val
	}
	return val
}

// A Model is a binding for several variables, one decLevel per var: 0 means
// free, a positive value means bound true at that level, negative means
// bound false at that level.
type Model []decLevel

func (m Model) String() string {
	bound := make(map[int]decLevel)
	for i := range m {
		if m[i] != 0 {
			bound[i+1] = m[i]
		}
	}
	return fmt.Sprintf("%v", bound)
}

// A Solver solves a given CNF problem via CDCL search. Besides the Search
// entry point it exposes the lower-level, externally-drivable
// operations (Enqueue/Propagate/NewDecisionLevel/CancelUntil/search with a
// conflict budget and assumptions) that the cubing package's interleaved
// search rides on top of.
type Solver struct {
	Verbose bool // Indicates whether the solver should display progress during solving.

	nbVars int
	wl     watcherList

	trail []Lit // Current assignment stack.
	qhead int    // Index of the first trail entry not yet scanned for propagation.
	level decLevel

	model     Model
	lastModel Model

	activity []float64 // How often each var is involved in conflicts.
	polarity []bool     // Preferred sign for each var.
	reason   []*Clause  // Clause that forced each var's binding, nil if it was a decision.

	varQueue  queue
	varInc    float64
	clauseInc float32
	varDecay  float64
	trailBuf  []int

	lbdStats lbdStats
	Stats    Stats

	ok          bool // false once the problem is known to be globally unsatisfiable.
	assumptions []Lit
	conflict    []Lit

	rng *rand.Rand

	localNbRestarts int
}

// New makes a solver for the given problem.
func New(problem *Problem) *Solver {
	if problem.Status == Unsat {
		return &Solver{ok: false}
	}
	nbVars := problem.NbVars

	trailCap := nbVars
	if len(problem.Units) > trailCap {
		trailCap = len(problem.Units)
	}

	s := &Solver{
		nbVars:    nbVars,
		trail:     make([]Lit, 0, trailCap),
		level:     1,
		model:     problem.Model,
		activity:  make([]float64, nbVars),
		polarity:  make([]bool, nbVars),
		reason:    make([]*Clause, nbVars),
		varInc:    1.0,
		clauseInc: 1.0,
		varDecay:  defaultVarDecay,
		trailBuf:  make([]int, nbVars),
		ok:        true,
		rng:       rand.New(rand.NewSource(91648253)),
	}
	s.initWatcherList(problem.Clauses)
	s.varQueue = newQueue(s.activity)
	for _, lit := range problem.Units {
		s.bind(lit, nil)
	}
	if confl := s.Propagate(); confl != nil {
		s.ok = false
	}
	return s
}

// NVars returns the number of variables in the problem.
func (s *Solver) NVars() int { return s.nbVars }

// Ok is false once the problem has been proven globally unsatisfiable.
func (s *Solver) Ok() bool { return s.ok }

// Propagations returns the total number of trail literals processed by
// propagation so far, decisions included.
func (s *Solver) Propagations() int { return s.Stats.NbPropagations }

// TrailLen returns the number of currently bound literals.
func (s *Solver) TrailLen() int { return len(s.trail) }

// TrailAt returns the i-th literal on the trail, in assignment order.
func (s *Solver) TrailAt(i int) Lit { return s.trail[i] }

// Irand returns a pseudo-random integer in [0, bound).
func (s *Solver) Irand(bound int) int {
	if bound <= 0 {
		return 0
	}
	return s.rng.Intn(bound)
}

// SeedRandom reseeds the solver's RNG, mirroring the engine's random_seed option.
func (s *Solver) SeedRandom(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Value reports whether L is currently bound true, bound false, or undefined.
func (s *Solver) Value(l Lit) Status {
	return s.litStatus(l)
}

// litStatus returns whether the literal is made true (Sat) or false (Unsat) by
// current bindings, or Indet if unbound.
func (s *Solver) litStatus(l Lit) Status {
	assign := s.model[l.Var()]
	if assign == 0 {
		return Indet
	}
	if assign > 0 == l.IsPositive() {
		return Sat
	}
	return Unsat
}

// Model returns the last model found. Model panics if none was found yet.
func (s *Solver) Model() []bool {
	if s.lastModel == nil {
		panic("cannot call Model() before a model has been found")
	}
	res := make([]bool, s.nbVars)
	for i, lvl := range s.lastModel {
		res[i] = lvl > 0
	}
	return res
}

// ExtendModel snapshots the current (fully bound) assignment as the model.
func (s *Solver) ExtendModel() {
	s.lastModel = make(Model, len(s.model))
	copy(s.lastModel, s.model)
}

func (s *Solver) varDecayActivity() {
	s.varInc *= 1 / s.varDecay
}

func (s *Solver) varBumpActivity(v Var) {
	s.activity[v] += s.varInc
	if s.activity[v] > 1e100 {
		for i := range s.activity {
			s.activity[i] *= 1e-100
		}
		s.varInc *= 1e-100
	}
	if s.varQueue.contains(int(v)) {
		s.varQueue.decrease(int(v))
	}
}

func (s *Solver) clauseDecayActivity() {
	s.clauseInc *= 1 / clauseDecay
}

func (s *Solver) clauseBumpActivity(c *Clause) {
	if c.Learned() {
		c.activity += s.clauseInc
		if c.activity > 1e30 {
			for _, c2 := range s.wl.clauses[s.wl.nbOriginal:] {
				c2.activity *= 1e-30
			}
			s.clauseInc *= 1e-30
		}
	}
}

// chooseLit picks an unbound literal for the next decision, or -1 if every
// variable is already bound.
func (s *Solver) chooseLit() Lit {
	v := Var(-1)
	for v == -1 && !s.varQueue.empty() {
		if v2 := Var(s.varQueue.removeMin()); s.model[v2] == 0 {
			v = v2
		}
	}
	if v == -1 {
		return Lit(-1)
	}
	s.Stats.NbDecisions++
	return v.SignedLit(!s.polarity[v])
}

func (s *Solver) rebuildOrderHeap() {
	ints := make([]int, 0, s.nbVars)
	for v := 0; v < s.nbVars; v++ {
		if s.model[v] == 0 {
			ints = append(ints, v)
		}
	}
	s.varQueue.build(ints)
}

// cleanupBindings undoes bindings (both model & reason) for all variables
// bound at an internal level > lvl.
func (s *Solver) cleanupBindings(lvl decLevel) {
	i := 0
	for i < len(s.trail) && abs(s.model[s.trail[i].Var()]) <= lvl {
		i++
	}
	toInsert := s.trailBuf[:0]
	for j := i; j < len(s.trail); j++ {
		lit2 := s.trail[j]
		v := lit2.Var()
		s.model[v] = 0
		if s.reason[v] != nil {
			s.reason[v].unlock()
			s.reason[v] = nil
		}
		s.polarity[v] = lit2.IsPositive()
		if !s.varQueue.contains(int(v)) {
			toInsert = append(toInsert, int(v))
			s.varQueue.insert(int(v))
		}
	}
	s.trail = s.trail[:i]
	for i := len(toInsert) - 1; i >= 0; i-- {
		s.varQueue.insert(toInsert[i])
	}
}

// backtrackData returns the level to backtrack to and the asserting literal,
// given the learned clause and the levels at which vars were bound.
func backtrackData(c *Clause, model []decLevel) (btLevel decLevel, lit Lit) {
	btLevel = abs(model[c.Get(1).Var()])
	return btLevel, c.Get(0)
}

func (s *Solver) addLearnedUnit(lit Lit) {
	_ = lit // kept for symmetry with the teacher's addLearnedUnit; unit clauses aren't watched.
}

// OutputModel writes the solver's result in SAT-competition format.
func (s *Solver) OutputModel(unsatKnown bool) {
	if s.lastModel != nil {
		fmt.Printf("s SATISFIABLE\nv ")
		for i, val := range s.lastModel {
			if val < 0 {
				fmt.Printf("%d ", -i-1)
			} else {
				fmt.Printf("%d ", i+1)
			}
		}
		fmt.Printf("\n")
	} else if unsatKnown || !s.ok {
		fmt.Printf("s UNSATISFIABLE\n")
	} else {
		fmt.Printf("s INDETERMINATE\n")
	}
}
