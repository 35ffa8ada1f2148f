package solver

// This file exposes the original (non-learned) clause database to callers
// outside the package that need to inspect and rewrite it directly -- the
// cubing package's clause strengthening, which deletes subsumed original
// clauses and replaces them with refuted cubes' negations.

// NbOriginalClauses returns how many original (non-learned) clauses are
// currently live, at transient slots [0, NbOriginalClauses()).
func (s *Solver) NbOriginalClauses() int {
	return s.wl.nbOriginal
}

// ClauseLits returns the literals of the clause at transient slot i. The
// caller must not mutate the result.
func (s *Solver) ClauseLits(i int) []Lit {
	return s.wl.clauses[i].Lits()
}

// ClauseLen returns the length of the clause at transient slot i.
func (s *Solver) ClauseLen(i int) int {
	return s.wl.clauses[i].Len()
}

// RemoveOriginalAt deletes the original clause at transient slot i, moving
// the last original slot's clause into i's place.
func (s *Solver) RemoveOriginalAt(i int) {
	s.removeOriginalAt(i)
}

// PushOriginalClause adds lits as a new original clause, returning its
// transient slot.
func (s *Solver) PushOriginalClause(lits []Lit) int {
	return s.appendOriginal(NewClause(lits))
}
