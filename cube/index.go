package cube

import "github.com/lippinj/minisat-cubing/solver"

// An Index is a prefix trie over cubes, letting membership be checked in
// O(|cube|) regardless of how many cubes it holds.
type Index struct {
	marks    map[solver.Lit]struct{}
	children map[solver.Lit]*Index
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		marks:    make(map[solver.Lit]struct{}),
		children: make(map[solver.Lit]*Index),
	}
}

// Push records c in the index.
func (idx *Index) Push(c Cube) {
	idx.pushAt(c, 0)
}

func (idx *Index) pushAt(c Cube, depth int) {
	x := c.At(depth)
	if c.Len() == depth+1 {
		idx.marks[x] = struct{}{}
		return
	}
	child, ok := idx.children[x]
	if !ok {
		child = NewIndex()
		idx.children[x] = child
	}
	child.pushAt(c, depth+1)
}

// Pop removes c from the index, if present.
func (idx *Index) Pop(c Cube) {
	idx.popAt(c, 0)
}

func (idx *Index) popAt(c Cube, depth int) {
	x := c.At(depth)
	if c.Len() == depth+1 {
		delete(idx.marks, x)
		return
	}
	if child, ok := idx.children[x]; ok {
		child.popAt(c, depth+1)
	}
}

// Contains reports whether c was pushed into the index (and not since
// popped).
func (idx *Index) Contains(c Cube) bool {
	if c.Len() == 0 {
		return false
	}
	return idx.containsAt(c, 0)
}

func (idx *Index) containsAt(c Cube, depth int) bool {
	x := c.At(depth)
	if c.Len() == depth+1 {
		_, ok := idx.marks[x]
		return ok
	}
	child, ok := idx.children[x]
	if !ok {
		return false
	}
	return child.containsAt(c, depth+1)
}
