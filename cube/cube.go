// Package cube implements implicant cubes: ascending, duplicate-free
// literal sets used to describe a restricted branch of a CDCL search tree.
package cube

import (
	"sort"

	"github.com/lippinj/minisat-cubing/solver"
)

// A Cube is a sorted, duplicate-free list of literals, kept in ascending
// solver.Lit order at all times so that equal cubes always compare equal
// literal-by-literal and prefix relationships (StartsWith) are cheap.
type Cube struct {
	lits []solver.Lit
}

// New builds a Cube out of the given literals, in any order.
func New(lits ...solver.Lit) Cube {
	var c Cube
	for _, l := range lits {
		c.Push(l)
	}
	return c
}

// Len returns the number of literals in the cube.
func (c Cube) Len() int { return len(c.lits) }

// At returns the i-th literal, in ascending order.
func (c Cube) At(i int) solver.Lit { return c.lits[i] }

// Lits returns the cube's literals. The caller must not mutate the result.
func (c Cube) Lits() []solver.Lit { return c.lits }

// Clear empties the cube.
func (c *Cube) Clear() { c.lits = c.lits[:0] }

// Push inserts L into the cube, keeping it sorted. Pushing a literal already
// present is a no-op.
func (c *Cube) Push(l solver.Lit) {
	i := sort.Search(len(c.lits), func(i int) bool { return c.lits[i] >= l })
	if i < len(c.lits) && c.lits[i] == l {
		return
	}
	c.lits = append(c.lits, 0)
	copy(c.lits[i+1:], c.lits[i:])
	c.lits[i] = l
}

// Pop removes L from the cube, if present.
func (c *Cube) Pop(l solver.Lit) {
	i := sort.Search(len(c.lits), func(i int) bool { return c.lits[i] >= l })
	if i < len(c.lits) && c.lits[i] == l {
		c.lits = append(c.lits[:i], c.lits[i+1:]...)
	}
}

// Equal reports whether c and other contain exactly the same literals.
func (c Cube) Equal(other Cube) bool {
	if len(c.lits) != len(other.lits) {
		return false
	}
	for i := range c.lits {
		if c.lits[i] != other.lits[i] {
			return false
		}
	}
	return true
}

// Less gives cubes a total order (lexicographic on their sorted literals),
// used to key them in ordered maps.
func (c Cube) Less(other Cube) bool {
	for i := 0; i < len(c.lits) && i < len(other.lits); i++ {
		if c.lits[i] != other.lits[i] {
			return c.lits[i] < other.lits[i]
		}
	}
	return len(c.lits) < len(other.lits)
}

// Union returns a new cube containing every literal from c or other.
func (c Cube) Union(other Cube) Cube {
	ret := Cube{lits: append([]solver.Lit(nil), c.lits...)}
	for _, l := range other.lits {
		ret.Push(l)
	}
	return ret
}

// Invert returns the clause formed by negating every literal in the cube.
func (c Cube) Invert() []solver.Lit {
	out := make([]solver.Lit, len(c.lits))
	for i, l := range c.lits {
		out[i] = l.Negation()
	}
	return out
}

// Contains reports whether L is one of the cube's literals.
func (c Cube) Contains(l solver.Lit) bool {
	i := sort.Search(len(c.lits), func(i int) bool { return c.lits[i] >= l })
	return i < len(c.lits) && c.lits[i] == l
}

// SubsetOf reports whether every literal of c is also in other.
func (c Cube) SubsetOf(other Cube) bool {
	for _, l := range c.lits {
		if !other.Contains(l) {
			return false
		}
	}
	return true
}

// StartsWith reports whether other is a prefix of c in ascending order.
func (c Cube) StartsWith(other Cube) bool {
	if other.Len() > c.Len() {
		return false
	}
	for i := 0; i < other.Len(); i++ {
		if other.lits[i] != c.lits[i] {
			return false
		}
	}
	return true
}

// Sane checks the cube's invariant: strictly ascending literals, and no two
// literals sharing a variable (i.e. no literal and its own negation both
// present).
func (c Cube) Sane() bool {
	for i := 0; i+1 < len(c.lits); i++ {
		a, b := c.lits[i], c.lits[i+1]
		if !(a < b) {
			return false
		}
		if a.Var() == b.Var() {
			return false
		}
	}
	return true
}

// Hash returns a hash suitable for use as a map key surrogate, matching the
// rotate-xor scheme used to key cubes in a hash table.
func (c Cube) Hash() uint64 {
	var x uint64
	for _, l := range c.lits {
		x = (x << 27) | (x >> (64 - 27))
		x ^= uint64(l)
	}
	return x
}

// Inverted builds the implicant cube of a clause: the negation of every
// literal in it.
func Inverted(lits []solver.Lit) Cube {
	var c Cube
	for _, l := range lits {
		c.Push(l.Negation())
	}
	return c
}
