package bimap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lippinj/minisat-cubing/bimap"
)

func TestAddFwBw(t *testing.T) {
	b := bimap.New()
	j0 := b.Add(0)
	j1 := b.Add(1)
	assert.Equal(t, 0, b.Fw(j0))
	assert.Equal(t, 1, b.Fw(j1))
	assert.Equal(t, j0, b.Bw(0))
	assert.Equal(t, j1, b.Bw(1))
}

func TestSwapKeepsPersistentIdentity(t *testing.T) {
	b := bimap.New()
	j0 := b.Add(0)
	j1 := b.Add(1)
	b.Swap(0, 1)
	assert.Equal(t, 1, b.Fw(j0))
	assert.Equal(t, 0, b.Fw(j1))
	assert.Equal(t, j1, b.Bw(0))
	assert.Equal(t, j0, b.Bw(1))
}

func TestDrop(t *testing.T) {
	b := bimap.New()
	j0 := b.Add(0)
	b.Drop(0)
	assert.Equal(t, -1, b.Fw(j0))
}

func TestSwapThenDropLastMatchesRemovalPattern(t *testing.T) {
	// Mirrors dropClause's swap-with-last-slot removal: entry at i is
	// replaced by the last slot's entry, then the (now unused) last slot is
	// dropped.
	b := bimap.New()
	jA := b.Add(0) // slot 0 holds A
	jB := b.Add(1) // slot 1 holds B
	jC := b.Add(2) // slot 2 holds C, the last slot

	b.Swap(0, 2) // slot 0 now holds C, slot 2 holds A
	b.Drop(2)    // the removed slot (now holding A) is dropped

	assert.Equal(t, 0, b.Fw(jC))
	assert.Equal(t, -1, b.Fw(jA))
	assert.Equal(t, 1, b.Fw(jB))
}

func TestWillMoveAndFlipBuffer(t *testing.T) {
	b := bimap.New()
	jA := b.Add(0)
	jB := b.Add(1)

	// Simulate compaction: slot 1's entry moves to slot 0, slot 0's entry is
	// dropped.
	b.WillMove(1, 0)
	b.FlipBuffer()

	assert.Equal(t, 0, b.Fw(jB))
	assert.Equal(t, -1, b.Fw(jA))
}
