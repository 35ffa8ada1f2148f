package cubing

import (
	"github.com/rhartert/yagh"

	"github.com/lippinj/minisat-cubing/cube"
	"github.com/lippinj/minisat-cubing/solver"
)

// cubifyInternal visits every implicant subcube of root (root minus one
// literal, for each literal) and scores it into the cube queue, stopping
// early if asserting a subcube finds a conflict (which strengthens the
// originating clause) or if a subcube is already known subsumed (which
// subsumes the clause outright).
//
// Subcubes are visited one literal at a time rather than one
// NewDecisionLevel per subcube: the walk keeps a single running cube and
// decision-level stack across the whole visit, and before starting the next
// subcube it only cancels back to the longest prefix the two subcubes share
// (positions before whichever of the two skip indices comes first), instead
// of rebuilding from the root every time. Every literal handled along the
// way, not just the final literal of each subcube, gets its own trail-growth
// score, and the running cube is pushed into the cube queue whenever that
// score exceeds 1.0.
//
// Subcubes themselves are visited in a difficulty-ordered schedule: literals
// whose exclusion-subcube is already in the queue are processed first
// (cheaply, by just recording a new parent), then the rest in descending
// order of literalDifficulty, so the harder, more constraining exclusions
// are tried first while the queue and index are freshest.
func (cs *CubifyingSolver) cubifyInternal(i int, root cube.Cube) cube.Cube {
	level0 := cs.Engine.DecisionLevel()
	trail0 := cs.Engine.TrailLen()
	pid := cs.Bimap.Bw(i)
	order := cs.planOrder(root)
	n := root.Len()

	var lits []solver.Lit // the running cube, in root's natural (ascending) order
	levelAt := make([]int, n)
	lenAt := make([]int, n)
	curSkip := -1 // skip index the running walk currently reflects; -1 before the first subcube
	posDone := 0  // natural positions already reflected in lits/levelAt/lenAt

	for _, idx := range order {
		sub := withoutAt(root, idx)

		if cs.ci.Contains(sub) {
			cs.Engine.CancelUntil(level0)
			return cube.Cube{}
		}
		if cs.cq.Contains(sub) {
			cs.cq.AddParent(sub, pid)
			continue
		}

		// The longest prefix this subcube shares with the currently
		// materialized walk ends just before whichever skip index comes
		// first: positions before that point are processed identically
		// regardless of which literal is being excluded.
		div := idx
		if curSkip < 0 {
			div = 0
		} else if curSkip < div {
			div = curSkip
		}
		if div < posDone {
			if div == 0 {
				cs.Engine.CancelUntil(level0)
				lits = lits[:0]
			} else {
				cs.Engine.CancelUntil(levelAt[div-1])
				lits = lits[:lenAt[div-1]]
			}
			posDone = div
		}
		curSkip = idx

		conflicted := false
		var conflictLits []solver.Lit
		for p := posDone; p < n; p++ {
			if p == idx {
				levelAt[p], lenAt[p] = cs.Engine.DecisionLevel(), len(lits)
				continue
			}
			l := root.At(p)
			cs.Engine.NewDecisionLevel()

			if cs.Engine.Value(l) != solver.Sat {
				becomesFirst := len(lits) == 0
				propsBefore := cs.Engine.Propagations()
				lits = append(lits, l)
				switch {
				case cs.ci.Contains(cube.New(lits...)):
					conflicted = true
				case cs.Engine.Value(l) == solver.Unsat:
					conflicted = true
				case !cs.Engine.Enqueue(l):
					conflicted = true
				default:
					if confl := cs.Engine.Propagate(); confl != nil {
						conflicted = true
					}
				}
				if conflicted {
					conflictLits = lits
				} else if becomesFirst {
					cs.literalDifficulty[int(l)] = cs.Engine.Propagations() - propsBefore
				}
			}

			levelAt[p], lenAt[p] = cs.Engine.DecisionLevel(), len(lits)
			if conflicted {
				break
			}
			if size := len(lits); size > 0 {
				score := float64(cs.Engine.TrailLen()-trail0) / float64(size)
				if score > 1.0 {
					cs.cq.Push(cube.New(lits...), score, pid)
				}
			}
		}

		if conflicted {
			result := cube.New(conflictLits...)
			cs.Engine.CancelUntil(level0)
			return result
		}
		posDone = n
	}
	cs.Engine.CancelUntil(level0)
	return root
}

// planOrder returns root's literal indices ordered for planning: indices
// whose exclusion-subcube is already queued come first (in root's natural
// order), then the rest sorted by descending literalDifficulty.
func (cs *CubifyingSolver) planOrder(root cube.Cube) []int {
	n := root.Len()
	var early, rest []int
	for idx := 0; idx < n; idx++ {
		if cs.cq.Contains(withoutAt(root, idx)) {
			early = append(early, idx)
		} else {
			rest = append(rest, idx)
		}
	}
	// Schedule the remainder hardest-first: push each candidate index keyed
	// by its negated difficulty, so popping the min out of the heap yields
	// descending difficulty order, the same trick ordering.go uses to turn
	// a min-heap into a max-by-activity variable order.
	h := yagh.New[float64](n)
	for _, idx := range rest {
		h.Put(idx, -float64(cs.literalDifficulty[int(root.At(idx))]))
	}
	ordered := make([]int, 0, len(rest))
	for {
		e, ok := h.Pop()
		if !ok {
			break
		}
		ordered = append(ordered, e.Elem)
	}
	return append(early, ordered...)
}

// withoutAt returns c with the literal at index idx removed.
func withoutAt(c cube.Cube, idx int) cube.Cube {
	var out cube.Cube
	for i := 0; i < c.Len(); i++ {
		if i != idx {
			out.Push(c.At(i))
		}
	}
	return out
}
