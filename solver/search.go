package solver

// This file decomposes the monolithic propagate-and-search loop into the
// discrete operations a caller outside the package needs to drive cube
// branches of its own: bind a literal, drain propagation, push/pop decision
// levels, and run a bounded search under a set of assumptions.

// bind assigns lit true at the current level, recording reason (nil for a
// decision or an externally pushed assumption).
func (s *Solver) bind(lit Lit, reason *Clause) {
	s.model[lit.Var()] = lvlToSignedLvl(lit, s.level)
	s.trail = append(s.trail, lit)
	s.reason[lit.Var()] = reason
	if reason != nil {
		reason.lock()
	}
}

// Enqueue binds lit as a decision at the current level. lit must currently
// be unbound; Enqueue returns false and leaves the solver untouched if it is
// already bound to the opposite value.
func (s *Solver) Enqueue(lit Lit) bool {
	switch s.litStatus(lit) {
	case Sat:
		return true
	case Unsat:
		return false
	}
	s.bind(lit, nil)
	return true
}

// NewDecisionLevel opens a new decision level.
func (s *Solver) NewDecisionLevel() {
	s.level++
}

// DecisionLevel returns the current decision level, with the root at 0.
func (s *Solver) DecisionLevel() int {
	return int(s.level) - 1
}

// CancelUntil undoes all bindings made at a decision level greater than lvl.
func (s *Solver) CancelUntil(lvl int) {
	internal := decLevel(lvl + 1)
	if internal >= s.level {
		return
	}
	s.cleanupBindings(internal)
	s.level = internal
	s.qhead = len(s.trail)
}

// Propagate drains the propagation queue, binding every literal implied by
// a unit or binary clause. It returns the clause that conflicted, or nil.
func (s *Solver) Propagate() *Clause {
	for s.qhead < len(s.trail) {
		lit := s.trail[s.qhead]
		s.qhead++
		s.Stats.NbPropagations++
		for _, w := range s.wl.wlistBin[lit] {
			v2 := w.other.Var()
			if assign := s.model[v2]; assign == 0 {
				s.bind(w.other, w.clause)
			} else if (assign > 0) != w.other.IsPositive() {
				return w.clause
			}
		}
		for _, c := range s.wl.wlist[lit] {
			res, unit := s.simplifyClause(c)
			switch res {
			case Unsat:
				return c
			case Unit:
				s.bind(unit, c)
			}
		}
	}
	return nil
}

// PushAssumption appends lit to the pending list of assumed literals, to be
// consumed as forced decisions by the next call to Search.
func (s *Solver) PushAssumption(lit Lit) {
	s.assumptions = append(s.assumptions, lit)
}

// ClearAssumptions drops every pending or consumed assumption.
func (s *Solver) ClearAssumptions() {
	s.assumptions = s.assumptions[:0]
}

// Conflict returns the literals blamed for the last assumption-relative
// Unsat verdict returned by Search, each negated relative to the assumption
// that asserted it (so that negating Conflict literal by literal always
// gives a subset of the pushed assumptions).
func (s *Solver) Conflict() []Lit {
	return s.conflict
}

// AddClauseVec adds a new clause built from lits, simplifying/propagating
// root-level units immediately. It returns false if the clause is found to
// make the problem globally unsatisfiable.
func (s *Solver) AddClauseVec(lits []Lit) bool {
	if !s.ok {
		return false
	}
	switch len(lits) {
	case 0:
		s.ok = false
		return false
	case 1:
		if s.DecisionLevel() != 0 {
			s.CancelUntil(0)
		}
		if confl := s.unifyLiteral(lits[0], 1); confl != nil {
			s.ok = false
			return false
		}
		s.qhead = len(s.trail)
		return true
	default:
		c := NewClause(lits)
		s.appendOriginal(c)
		return true
	}
}

// Simplify runs a root-level propagation pass, reporting false if it proves
// the problem globally unsatisfiable.
func (s *Solver) Simplify() bool {
	if !s.ok {
		return false
	}
	if s.DecisionLevel() != 0 {
		s.CancelUntil(0)
	}
	if confl := s.Propagate(); confl != nil {
		s.ok = false
		return false
	}
	return true
}

// Eliminate would run variable elimination; the engine this module stands
// in for treats it as out of scope and always reports success without
// touching the clause database, matching the teacher's own preprocess.go.
func (s *Solver) Eliminate() bool {
	return s.ok
}

// Search runs bounded CDCL search from the current state, consuming pending
// assumptions as forced decisions first. confBudget < 0 means unbounded
// (restart heuristics still apply). It returns Sat, Unsat, or Indet
// (restart or budget exhausted; the trail is left at the root on any
// non-Sat return).
func (s *Solver) Search(confBudget int) Status {
	conflictC := 0
	for {
		confl := s.Propagate()
		if confl != nil {
			s.Stats.NbConflicts++
			conflictC++
			if s.level == 1 {
				s.conflict = s.conflict[:0]
				s.ok = false
				return Unsat
			}
			learnt, unit := s.learnClause(confl, s.level)
			if learnt == nil {
				s.Stats.NbUnitLearned++
				s.lbdStats.add(1)
				s.cleanupBindings(1)
				s.level = 1
				if confl2 := s.unifyLiteral(unit, 1); confl2 != nil {
					s.conflict = s.conflict[:0]
					s.ok = false
					return Unsat
				}
				s.qhead = len(s.trail)
				s.rebuildOrderHeap()
			} else {
				if learnt.Len() == 2 {
					s.Stats.NbBinaryLearned++
				}
				s.Stats.NbLearned++
				s.lbdStats.add(learnt.lbd())
				s.addLearned(learnt)
				btLevel, lit := backtrackData(learnt, s.model)
				s.cleanupBindings(btLevel)
				s.level = btLevel
				if confl2 := s.unifyLiteral(lit, btLevel); confl2 != nil {
					s.conflict = s.conflict[:0]
					s.ok = false
					return Unsat
				}
				s.qhead = len(s.trail)
			}
			if s.wl.nbLearned >= s.wl.nbMax {
				s.bumpNbMax()
				s.reduceLearned()
			}
		} else {
			var next Lit = -1
			for s.DecisionLevel() < len(s.assumptions) {
				p := s.assumptions[s.DecisionLevel()]
				switch s.litStatus(p) {
				case Sat:
					s.NewDecisionLevel()
					continue
				case Unsat:
					s.conflict = s.analyzeFinal(p)
					s.cleanupBindings(1)
					s.level = 1
					s.qhead = len(s.trail)
					return Unsat
				default:
					next = p
				}
				break
			}
			if next == -1 {
				next = s.chooseLit()
				if next == -1 {
					s.ExtendModel()
					return Sat
				}
			}
			s.NewDecisionLevel()
			s.bind(next, nil)
		}
		if confBudget >= 0 && conflictC >= confBudget {
			s.cleanupBindings(1)
			s.level = 1
			s.qhead = len(s.trail)
			return Indet
		}
		if s.lbdStats.mustRestart() {
			s.lbdStats.clear()
			s.Stats.NbRestarts++
			s.cleanupBindings(1)
			s.level = 1
			s.qhead = len(s.trail)
			return Indet
		}
	}
}

// analyzeFinal builds the conflict set when assumption p is found to
// already be false. It walks the trail backward from p's negation,
// following reason chains, and collects every decision literal above the
// root that p's falsity depends on -- the standard MiniSat analyzeFinal,
// specialized to a single root floor since this engine never nests
// assumption scopes.
func (s *Solver) analyzeFinal(p Lit) []Lit {
	seen := make([]bool, s.nbVars)
	out := []Lit{p.Negation()}
	seen[p.Var()] = true
	for i := len(s.trail) - 1; i >= 0; i-- {
		v := s.trail[i].Var()
		if !seen[v] {
			continue
		}
		seen[v] = false
		if r := s.reason[v]; r == nil {
			if abs(s.model[v]) > 1 {
				out = append(out, s.trail[i].Negation())
			}
		} else {
			for j := 0; j < r.Len(); j++ {
				v2 := r.Get(j).Var()
				if abs(s.model[v2]) > 1 {
					seen[v2] = true
				}
			}
		}
	}
	return out
}
