package solver

import "sort"

type watcher struct {
	other  Lit // Another lit from the clause
	clause *Clause
}

// A watcherList stores clauses and propagates unit literals efficiently
// using the classic two-watched-literal scheme.
type watcherList struct {
	nbOriginal int         // Original # of clauses
	nbLearned  int         // # of learned clauses
	nbMax      int         // Max # of learned clauses at current moment
	idxReduce  int         // # of calls to reduce + 1
	wlistBin   [][]watcher // For each literal, binary clauses where its negation appears
	wlist      [][]*Clause // For each literal, clauses (len >= 3) watching its negation
	clauses    []*Clause   // All live clauses, original first then learned
}

// initWatcherList makes a new watcherList for the solver.
func (s *Solver) initWatcherList(clauses []*Clause) {
	newClauses := make([]*Clause, len(clauses), len(clauses)*2) // room for learned clauses
	copy(newClauses, clauses)
	s.wl = watcherList{
		nbOriginal: len(clauses),
		nbMax:      initNbMaxClauses,
		idxReduce:  1,
		wlistBin:   make([][]watcher, s.nbVars*2),
		wlist:      make([][]*Clause, s.nbVars*2),
		clauses:    newClauses,
	}
	for _, c := range clauses {
		s.watchClause(c)
	}
}

// bumpNbMax increases the max nb of clauses used. Typically called after a restart.
func (s *Solver) bumpNbMax() {
	s.wl.nbMax += incrNbMaxClauses
}

// postponeNbMax increases the max nb of clauses used, when lots of good clauses were learned.
func (s *Solver) postponeNbMax() {
	s.wl.nbMax += incrPostponeNbMax
}

// Utilities for sorting learned clauses by LBD and activity.
func (wl *watcherList) Len() int { return wl.nbLearned }

func (wl *watcherList) Less(i, j int) bool {
	idxI := i + wl.nbOriginal
	idxJ := j + wl.nbOriginal
	lbdI := wl.clauses[idxI].lbd()
	lbdJ := wl.clauses[idxJ].lbd()
	return lbdI > lbdJ || (lbdI == lbdJ && wl.clauses[idxI].activity < wl.clauses[idxJ].activity)
}

func (wl *watcherList) Swap(i, j int) {
	idxI := i + wl.nbOriginal
	idxJ := j + wl.nbOriginal
	wl.clauses[idxI], wl.clauses[idxJ] = wl.clauses[idxJ], wl.clauses[idxI]
}

// watchClause registers c's watched literals.
func (s *Solver) watchClause(c *Clause) {
	if c.Len() == 2 {
		first := c.First()
		second := c.Second()
		neg0 := first.Negation()
		neg1 := second.Negation()
		s.wl.wlistBin[neg0] = append(s.wl.wlistBin[neg0], watcher{clause: c, other: second})
		s.wl.wlistBin[neg1] = append(s.wl.wlistBin[neg1], watcher{clause: c, other: first})
	} else {
		neg0 := c.First().Negation()
		neg1 := c.Second().Negation()
		s.wl.wlist[neg0] = append(s.wl.wlist[neg0], c)
		s.wl.wlist[neg1] = append(s.wl.wlist[neg1], c)
	}
}

// unwatchClause removes c's watch entries (c must not be a binary clause).
func (s *Solver) unwatchClause(c *Clause) {
	for i := 0; i < 2; i++ {
		neg := c.Get(i).Negation()
		j := 0
		length := len(s.wl.wlist[neg])
		for s.wl.wlist[neg][j] != c {
			j++
		}
		s.wl.wlist[neg][j] = s.wl.wlist[neg][length-1]
		s.wl.wlist[neg] = s.wl.wlist[neg][:length-1]
	}
}

// reduceLearned removes a few learned clauses that are deemed useless.
func (s *Solver) reduceLearned() {
	sort.Sort(&s.wl)
	length := s.wl.nbLearned / 2
	if s.wl.clauses[s.wl.nbOriginal+length].lbd() <= 3 { // Lots of good clauses, postpone reduction
		s.postponeNbMax()
	}
	nbRemoved := 0
	for i := 0; i < length; i++ {
		idx := i + s.wl.nbOriginal
		c := s.wl.clauses[idx]
		if c.lbd() <= 2 || c.isLocked() {
			continue
		}
		nbRemoved++
		s.Stats.NbDeleted++
		s.wl.clauses[idx] = s.wl.clauses[len(s.wl.clauses)-nbRemoved]
		s.unwatchClause(c)
	}
	s.wl.clauses = s.wl.clauses[:len(s.wl.clauses)-nbRemoved]
	s.wl.nbLearned -= nbRemoved
}

// addLearned adds the given learned clause and updates watchers.
func (s *Solver) addLearned(c *Clause) {
	s.wl.nbLearned++
	s.wl.clauses = append(s.wl.clauses, c)
	s.watchClause(c)
	s.clauseBumpActivity(c)
}

// appendOriginal adds c as an original (non-learned) clause, keeping it
// ahead of the learned-clause range so the database's split invariant holds.
func (s *Solver) appendOriginal(c *Clause) int {
	idx := s.wl.nbOriginal
	s.wl.clauses = append(s.wl.clauses, nil)
	copy(s.wl.clauses[idx+1:], s.wl.clauses[idx:len(s.wl.clauses)-1])
	s.wl.clauses[idx] = c
	s.wl.nbOriginal++
	s.watchClause(c)
	return idx
}

// removeOriginalAt swaps out original clause at transient slot i with the
// last original slot and shrinks the original range by one. It is the
// clause-database side of CubifyingSolverBase.dropClause; callers are
// responsible for keeping the Bimap in sync with the same swap.
func (s *Solver) removeOriginalAt(i int) {
	c := s.wl.clauses[i]
	s.unwatchOriginal(c)
	last := s.wl.nbOriginal - 1
	s.wl.clauses[i] = s.wl.clauses[last]
	s.wl.clauses = append(s.wl.clauses[:last], s.wl.clauses[last+1:]...)
	s.wl.nbOriginal--
}

func (s *Solver) unwatchOriginal(c *Clause) {
	if c.Len() == 2 {
		neg0 := c.First().Negation()
		neg1 := c.Second().Negation()
		s.wl.wlistBin[neg0] = removeWatcherFrom(s.wl.wlistBin[neg0], c)
		s.wl.wlistBin[neg1] = removeWatcherFrom(s.wl.wlistBin[neg1], c)
	} else {
		s.unwatchClause(c)
	}
}

func removeWatcherFrom(lst []watcher, c *Clause) []watcher {
	i := 0
	for lst[i].clause != c {
		i++
	}
	last := len(lst) - 1
	lst[i] = lst[last]
	return lst[:last]
}

// If l is negative, -lvl is returned. Else, lvl is returned.
func lvlToSignedLvl(l Lit, lvl decLevel) decLevel {
	if l.IsPositive() {
		return lvl
	}
	return -lvl
}

// removeFrom removes the first occurrence of c from lst. c must be present.
func removeFrom(lst []*Clause, c *Clause) []*Clause {
	i := 0
	for lst[i] != c {
		i++
	}
	last := len(lst) - 1
	lst[i] = lst[last]
	return lst[:last]
}

// unifyLiteral binds lit at lvl and propagates it, returning a conflict
// clause, or nil if no conflict arose.
func (s *Solver) unifyLiteral(lit Lit, lvl decLevel) *Clause {
	s.model[lit.Var()] = lvlToSignedLvl(lit, lvl)
	ptr := len(s.trail)
	s.trail = append(s.trail, lit)
	for ptr < len(s.trail) {
		lit := s.trail[ptr]
		s.Stats.NbPropagations++
		for _, w := range s.wl.wlistBin[lit] {
			v2 := w.other.Var()
			if assign := s.model[v2]; assign == 0 {
				s.reason[v2] = w.clause
				w.clause.lock()
				s.model[v2] = lvlToSignedLvl(w.other, lvl)
				s.trail = append(s.trail, w.other)
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
				v := unit.Var()
				s.reason[v] = c
				c.lock()
				s.model[v] = lvlToSignedLvl(unit, lvl)
				s.trail = append(s.trail, unit)
			}
		}
		ptr++
	}
	return nil
}

// simplifyClause simplifies the given clause (len >= 3) according to the
// current binding, moving the watched pair as needed. It returns a new
// status, and a potential unit literal.
func (s *Solver) simplifyClause(clause *Clause) (Status, Lit) {
	var freeIdx int
	found := false
	ln := clause.Len()
	for i := 0; i < ln; i++ {
		lit := clause.Get(i)
		if assign := s.model[lit.Var()]; assign == 0 {
			if found {
				switch freeIdx {
				case 0:
					n1 := &s.wl.wlist[clause.Second().Negation()]
					nf1 := &s.wl.wlist[clause.Get(i).Negation()]
					clause.swap(i, 1)
					*n1 = removeFrom(*n1, clause)
					*nf1 = append(*nf1, clause)
				case 1:
					n0 := &s.wl.wlist[clause.First().Negation()]
					nf1 := &s.wl.wlist[clause.Get(i).Negation()]
					clause.swap(i, 0)
					*n0 = removeFrom(*n0, clause)
					*nf1 = append(*nf1, clause)
				default:
					n0 := &s.wl.wlist[clause.First().Negation()]
					n1 := &s.wl.wlist[clause.Second().Negation()]
					nf0 := &s.wl.wlist[clause.Get(freeIdx).Negation()]
					nf1 := &s.wl.wlist[clause.Get(i).Negation()]
					clause.swap(freeIdx, 0)
					clause.swap(i, 1)
					*n0 = removeFrom(*n0, clause)
					*n1 = removeFrom(*n1, clause)
					*nf0 = append(*nf0, clause)
					*nf1 = append(*nf1, clause)
				}
				return Many, -1
			}
			freeIdx = i
			found = true
		} else if (assign > 0) == lit.IsPositive() {
			return Sat, -1
		}
	}
	if !found {
		return Unsat, -1
	}
	return Unit, clause.Get(freeIdx)
}
