package rrb

import "slices"

// Strict is the stale-window value of a node whose children, except possibly
// the last, are maximally full.
const Strict = -1

// Node is a node of an RRB-tree holding elements of type T.
//
// Internal nodes use the nodes slice, leaves use the items slice; the other
// one is always empty. Whether a node is a leaf is determined by its depth.
type Node[T any] struct {
	size int // number of elements in this subtree
	sum  int // cumulative element count up to and including this node, as seen by the parent
	// recompute is Strict or the number of trailing children whose sum is stale.
	recompute int
	subcount  int // number of slots of all immediate children
	owner     Tag
	nodes     []*Node[T]
	items     []T
}

// NewLeaf creates a shared, strict leaf holding items. The slice is not
// copied.
func NewLeaf[T any](items []T) *Node[T] {
	return &Node[T]{
		size:      len(items),
		recompute: Strict,
		items:     items,
	}
}

// NewLeafNode creates a shared leaf from explicit cached values.
func NewLeafNode[T any](size, sum, recompute, subcount int, items []T) *Node[T] {
	return &Node[T]{
		size:      size,
		sum:       sum,
		recompute: recompute,
		subcount:  subcount,
		items:     items,
	}
}

// NewInternal creates a shared internal node from explicit cached values.
func NewInternal[T any](size, sum, recompute, subcount int, children []*Node[T]) *Node[T] {
	return &Node[T]{
		size:      size,
		sum:       sum,
		recompute: recompute,
		subcount:  subcount,
		nodes:     children,
	}
}

// Empty returns the shared empty leaf. Empty leaves carry no state besides
// their shared tag, so every call may return a distinct but equivalent node.
func Empty[T any]() *Node[T] {
	return &Node[T]{recompute: Strict}
}

// IsEmpty reports whether the node holds no elements.
func (n *Node[T]) IsEmpty() bool {
	return n == nil || n.size == 0
}

// Size returns the number of elements in the subtree rooted at n.
func (n *Node[T]) Size() int {
	if n == nil {
		return 0
	}
	return n.size
}

// Sum returns the cumulative size cache the parent keeps for n.
func (n *Node[T]) Sum() int { return n.sum }

// Recompute returns Strict or the length of the stale window.
func (n *Node[T]) Recompute() int { return n.recompute }

// Subcount returns the number of slots of all immediate children.
func (n *Node[T]) Subcount() int { return n.subcount }

// Owner returns the ownership tag.
func (n *Node[T]) Owner() Tag { return n.owner }

// Len returns the number of child slots.
func (n *Node[T]) Len() int {
	if n == nil {
		return 0
	}
	return len(n.nodes) + len(n.items)
}

// Child returns the child node at index i of an internal node.
func (n *Node[T]) Child(i int) *Node[T] {
	return n.nodes[i]
}

// Item returns the element at index i of a leaf.
func (n *Node[T]) Item(i int) T {
	return n.items[i]
}

// Children returns a copy of the child nodes.
func (n *Node[T]) Children() []*Node[T] {
	return slices.Clone(n.nodes)
}

// Items returns a copy of the leaf elements.
func (n *Node[T]) Items() []T {
	return slices.Clone(n.items)
}

// IsStrict reports whether lookups in n may use pure index arithmetic.
func (n *Node[T]) IsStrict() bool {
	return n.recompute == Strict
}

// IsRelaxed reports whether lookups in n need cumulative sums.
func (n *Node[T]) IsRelaxed() bool {
	return n.recompute != Strict
}

// IsSubtreeFull reports whether n is maximally packed at the given shift,
// i.e. whether it may be reused intact as a sibling of full subtrees.
func (n *Node[T]) IsSubtreeFull(shift int) bool {
	return n.Len()<<shift == n.size
}

// ShallowClone returns a copy of n tagged with tag, sharing the children
// slice. Editable tags are refused, as an editable node must own its slots.
func (n *Node[T]) ShallowClone(tag Tag) *Node[T] {
	assert(tag <= Shared, "shallow clone cannot be editable (tag %d)", tag)
	clone := *n
	clone.owner = tag
	return &clone
}

// Clone returns a copy of n tagged with tag and with a private copy of the
// children slice. Child nodes and elements are copied by value.
func (n *Node[T]) Clone(tag Tag) *Node[T] {
	clone := *n
	clone.owner = tag
	clone.nodes = slices.Clone(n.nodes)
	clone.items = slices.Clone(n.items)
	return &clone
}

// CalculateRecompute returns the stale window after adding delta child slots
// at the right edge. Strict nodes stay strict.
func (n *Node[T]) CalculateRecompute(delta int) int {
	if n.recompute == Strict {
		return Strict
	}
	return n.recompute + delta
}

func (n *Node[T]) isLeafShaped() bool {
	return n.nodes == nil
}
