package rrb

import (
	"fmt"

	"github.com/AreeseDT/collectable/radix"
)

// Descent is the outcome of one resolution step.
type Descent[T any] struct {
	Node  *Node[T] // selected child, for internal nodes
	Item  T        // selected element, for leaves
	Index int      // position of the selection within the parent
	// Offset is the number of elements preceding the selection in the
	// parent's subtree. Subtract it from the ordinal before descending.
	Offset int
	// Repaired is set if resolution rewrote cumulative sums or the stale
	// window of the parent.
	Repaired bool
}

// Resolve locates the child of n containing ordinal, with shift being the
// shift of n (0 for leaves). It returns false if ordinal is out of range.
//
// For relaxed nodes, cumulative sums inside the stale window are recomputed
// on the way. A child whose cache has to change is cloned first unless the
// session owning n owns it as well; shared nodes are never written.
// If the repair finds all but the last child full, n turns strict.
func (n *Node[T]) Resolve(ordinal, shift int) (Descent[T], bool) {
	var d Descent[T]
	if ordinal < 0 {
		return d, false
	}
	if shift == 0 {
		if ordinal >= len(n.items) {
			return d, false
		}
		d.Item, d.Index, d.Offset = n.items[ordinal], ordinal, ordinal
		return d, true
	}
	if ordinal >= n.size {
		return d, false
	}
	index := (ordinal >> shift) & radix.BranchMask
	if index >= len(n.nodes) {
		return d, false
	}
	if n.recompute == Strict {
		d.Node, d.Index, d.Offset = n.nodes[index], index, index<<shift
		return d, true
	}
	// Each child holds at most 1<<shift elements, so the naive index is a
	// lower bound for the real one.
	trusted := max(0, len(n.nodes)-n.recompute)
	for ; index < trusted; index++ {
		if ordinal < n.nodes[index].sum {
			d.Node, d.Index = n.nodes[index], index
			if index > 0 {
				d.Offset = n.nodes[index-1].sum
			}
			return d, true
		}
	}
	return n.repairSums(ordinal, shift, trusted)
}

// repairSums recomputes the cumulative sums of the children from index on,
// selecting the child containing ordinal along the way.
func (n *Node[T]) repairSums(ordinal, shift, from int) (Descent[T], bool) {
	var d Descent[T]
	found := false
	capacity := radix.Capacity(shift)
	maxSum := capacity * from
	sum := 0
	if from > 0 {
		sum = n.nodes[from-1].sum
	}
	last := len(n.nodes) - 1
	repaired := 0
	n.recompute = 0
	for i := from; i <= last; i++ {
		child := n.nodes[i]
		if i == last && sum == maxSum && child.IsStrict() {
			n.recompute = Strict
			if !found && sum+child.size > ordinal {
				d.Node, d.Index, d.Offset = child, i, sum
				found = true
			}
			break
		}
		sum += child.size
		maxSum += capacity
		if child.sum != sum {
			child = n.repairableChild(i)
			child.sum = sum
			repaired++
		}
		if !found && sum > ordinal {
			d.Node, d.Index, d.Offset = child, i, sum-child.size
			found = true
		}
	}
	d.Repaired = from <= last
	tracer().Debugf("recomputed sums of %d children from #%d, %d rewritten, strict=%v",
		len(n.nodes)-from, from, repaired, n.recompute == Strict)
	return d, found
}

// repairableChild returns the child at index i ready to take a new sum. The
// parent's session may write its own children; others are replaced by a
// clone, editable by that session if the parent is editable, shared
// otherwise.
func (n *Node[T]) repairableChild(i int) *Node[T] {
	child := n.nodes[i]
	s := n.owner.Session()
	if child.ownedBy(s) {
		return child
	}
	if n.owner > 0 {
		child = child.CloneToGroup(s)
	} else {
		child = child.ShallowClone(Shared)
	}
	n.nodes[i] = child
	return child
}

// Lookup returns the element at ordinal in the tree rooted at root, whose
// shift is shift.
func Lookup[T any](root *Node[T], ordinal, shift int) (T, bool) {
	n := root
	for {
		d, ok := n.Resolve(ordinal, shift)
		if !ok {
			var zero T
			return zero, false
		}
		if shift == 0 {
			return d.Item, true
		}
		ordinal -= d.Offset
		shift -= radix.BranchBits
		n = d.Node
	}
}

// Get returns the element at index in the tree rooted at root, whose shift
// is shift. Negative indices count from the end. Resolution repairs stale
// caches on the path as Resolve does.
func Get[T any](root *Node[T], index, shift int) (T, error) {
	ordinal := radix.NormalizeIndex(root.Size(), index)
	if ordinal < 0 {
		var zero T
		return zero, fmt.Errorf("%w: %d for size %d", ErrIndexOutOfBounds, index, root.Size())
	}
	item, ok := Lookup(root, ordinal, shift)
	if !ok {
		return item, fmt.Errorf("%w: %d not reachable (%d elements, shift %d)",
			ErrInvariant, index, root.Size(), shift)
	}
	return item, nil
}
