package bsp

import (
	"github.com/VoidMesh/gridgen/internal/grid"
)

const none = -1

// Leaf is one node of the partition tree. Relationships are indices into
// Tree.Leaves; none marks a missing link.
type Leaf struct {
	Rect   grid.Rect
	Parent int
	First  int
	Second int
	Room   int
}

// IsTerminal reports whether the leaf was never split.
func (l Leaf) IsTerminal() bool {
	return l.First == none && l.Second == none
}

// Tree is the arena produced by one partition run.
type Tree struct {
	Leaves []Leaf
	// Parents lists split leaves in the order they were split.
	Parents []int
	// Terminals lists unsplit leaves in the order they were reached.
	Terminals []int
}

// builder owns the state of one partition run. The split orientation flips
// on every split attempt across the whole recursion, not per branch.
type builder struct {
	rng        *grid.Rand
	minWidth   int
	minHeight  int
	horizontal bool
	tree       *Tree
}

func newBuilder(rng *grid.Rand, minWidth, minHeight int) *builder {
	return &builder{
		rng:       rng,
		minWidth:  max(minWidth, 2),
		minHeight: max(minHeight, 2),
		tree:      &Tree{},
	}
}

func (b *builder) add(r grid.Rect, parent int) int {
	b.tree.Leaves = append(b.tree.Leaves, Leaf{
		Rect:   r,
		Parent: parent,
		First:  none,
		Second: none,
		Room:   none,
	})
	return len(b.tree.Leaves) - 1
}

// Partition splits root recursively and returns the resulting tree.
func Partition(root grid.Rect, rng *grid.Rand, minWidth, minHeight int) *Tree {
	b := newBuilder(rng, minWidth, minHeight)
	b.split(b.add(root, none))
	return b.tree
}

func (b *builder) split(idx int) {
	r := b.tree.Leaves[idx].Rect
	b.horizontal = !b.horizontal

	var first, second grid.Rect
	if b.horizontal {
		cut := b.rng.IntRange(r.H/4, 3*r.H/4+1)
		first = grid.Rect{X: r.X, Y: r.Y, W: r.W, H: cut}
		second = grid.Rect{X: r.X, Y: r.Y + cut, W: r.W, H: r.H - cut}
	} else {
		cut := b.rng.IntRange(r.W/4, 3*r.W/4+1)
		first = grid.Rect{X: r.X, Y: r.Y, W: cut, H: r.H}
		second = grid.Rect{X: r.X + cut, Y: r.Y, W: r.W - cut, H: r.H}
	}

	if !b.fits(first) || !b.fits(second) {
		b.tree.Terminals = append(b.tree.Terminals, idx)
		return
	}

	b.tree.Parents = append(b.tree.Parents, idx)
	firstIdx := b.add(first, idx)
	secondIdx := b.add(second, idx)
	b.tree.Leaves[idx].First = firstIdx
	b.tree.Leaves[idx].Second = secondIdx

	b.split(firstIdx)
	b.split(secondIdx)
}

func (b *builder) fits(r grid.Rect) bool {
	return r.W >= b.minWidth && r.H >= b.minHeight
}
