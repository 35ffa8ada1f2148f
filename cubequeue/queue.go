// Package cubequeue implements a bounded priority structure over cubes,
// keyed by a density score, with eviction of the worst-scored cube once a
// budget is reached.
package cubequeue

import (
	"fmt"
	"sort"

	"github.com/lippinj/minisat-cubing/cube"
)

type entry struct {
	cube    cube.Cube
	score   float64
	parents map[int]struct{}
}

// A Queue holds at most Budget cubes, each with a score and a set of
// parent clause ids that produced it. Once full, pushing a new cube evicts
// the current worst-scored cube.
type Queue struct {
	Budget int

	byKey  map[string]*entry
	scores map[float64][]string // score -> keys of cubes with that score, ascending insertion order

	sortedScores []float64 // kept ascending; sortedScores[0] is worst, sortedScores[len-1] is best

	sumScore float64
	numSeen  float64
}

// New returns an empty queue bounded to the given budget.
func New(budget int) *Queue {
	return &Queue{
		Budget: budget,
		byKey:  make(map[string]*entry),
		scores: make(map[float64][]string),
	}
}

func key(c cube.Cube) string {
	return fmt.Sprint(c.Lits())
}

// Contains reports whether c is currently in the queue.
func (q *Queue) Contains(c cube.Cube) bool {
	_, ok := q.byKey[key(c)]
	return ok
}

// Len returns the number of cubes currently in the queue.
func (q *Queue) Len() int { return len(q.byKey) }

// Empty reports whether the queue holds no cubes.
func (q *Queue) Empty() bool { return len(q.byKey) == 0 }

func (q *Queue) insertScore(score float64) {
	i := sort.SearchFloat64s(q.sortedScores, score)
	if i < len(q.sortedScores) && q.sortedScores[i] == score {
		return
	}
	q.sortedScores = append(q.sortedScores, 0)
	copy(q.sortedScores[i+1:], q.sortedScores[i:])
	q.sortedScores[i] = score
}

func (q *Queue) removeScore(score float64) {
	i := sort.SearchFloat64s(q.sortedScores, score)
	if i < len(q.sortedScores) && q.sortedScores[i] == score {
		q.sortedScores = append(q.sortedScores[:i], q.sortedScores[i+1:]...)
	}
}

// Push records c with the given score and parent clause id. If c is already
// in the queue, parentID is merged into its parent set and the existing
// score is kept. If the queue is at budget, the current worst-scored cube
// is evicted first.
func (q *Queue) Push(c cube.Cube, score float64, parentID int) {
	k := key(c)
	if e, ok := q.byKey[k]; ok {
		e.parents[parentID] = struct{}{}
		return
	}
	if q.Budget > 0 && len(q.byKey)+1 > q.Budget {
		q.Pop(q.PeekWorst())
	}
	e := &entry{cube: c, score: score, parents: map[int]struct{}{parentID: {}}}
	q.byKey[k] = e
	q.scores[score] = append(q.scores[score], k)
	q.insertScore(score)
	q.sumScore += score
	q.numSeen++
}

// AddParent merges an extra parent clause id into c's existing entry. c
// must already be in the queue.
func (q *Queue) AddParent(c cube.Cube, parentID int) {
	e := q.byKey[key(c)]
	e.parents[parentID] = struct{}{}
}

// ParentsOf returns the set of parent clause ids recorded for c.
func (q *Queue) ParentsOf(c cube.Cube) map[int]struct{} {
	e, ok := q.byKey[key(c)]
	if !ok {
		return nil
	}
	return e.parents
}

// Pop removes c from the queue. c must currently be in the queue.
func (q *Queue) Pop(c cube.Cube) {
	k := key(c)
	e, ok := q.byKey[k]
	if !ok {
		return
	}
	keys := q.scores[e.score]
	for i, kk := range keys {
		if kk == k {
			keys = append(keys[:i], keys[i+1:]...)
			break
		}
	}
	if len(keys) == 0 {
		delete(q.scores, e.score)
		q.removeScore(e.score)
	} else {
		q.scores[e.score] = keys
	}
	delete(q.byKey, k)
}

// PeekBest returns one of the cubes with the highest score, choosing among
// ties with r (typically a random index supplied by the caller).
func (q *Queue) PeekBest(r int) cube.Cube {
	best := q.sortedScores[len(q.sortedScores)-1]
	keys := q.scores[best]
	return q.byKey[keys[r%len(keys)]].cube
}

// PeekWorst returns the cube with the lowest score.
func (q *Queue) PeekWorst() cube.Cube {
	worst := q.sortedScores[0]
	keys := q.scores[worst]
	return q.byKey[keys[0]].cube
}

// BestScore returns the highest score currently in the queue, or 0 if empty.
func (q *Queue) BestScore() float64 {
	if q.Empty() {
		return 0.0
	}
	return q.sortedScores[len(q.sortedScores)-1]
}

// MeanScore returns the rolling mean of every score ever pushed, including
// cubes since evicted or popped.
func (q *Queue) MeanScore() float64 {
	if q.numSeen == 0 {
		return 0.0
	}
	return q.sumScore / q.numSeen
}
