package rrb

import "github.com/AreeseDT/collectable/radix"

// Owned is an exclusive, mutable handle on a node editable by one session.
//
// Owned handles are the only way to change a node's children. They are
// created by Edit, by the NewOwned constructors, or by operations which
// synthesize fresh nodes, and they end with Release, which publishes the node
// as shared. Clients must not keep more than one handle per node.
type Owned[T any] struct {
	n *Node[T]
	s Session
}

// Edit returns a handle for mutating n within session s. If n is not
// editable by s, the handle refers to a clone with a private children slice
// and n is left untouched.
func Edit[T any](n *Node[T], s Session) *Owned[T] {
	assert(s > 0, "edit requires a session, got %d", s)
	if !n.IsEditable(s) {
		n = n.CloneToGroup(s)
	}
	return &Owned[T]{n: n, s: s}
}

// NewOwnedLeaf creates a strict leaf editable by s. The slice is not copied.
func NewOwnedLeaf[T any](s Session, items []T) *Owned[T] {
	leaf := NewLeaf(items)
	leaf.owner = s.Editable()
	return &Owned[T]{n: leaf, s: s}
}

// NewOwnedInternal creates an internal node editable by s from explicit
// cached values. The slice is not copied.
func NewOwnedInternal[T any](s Session, size, sum, recompute, subcount int, children []*Node[T]) *Owned[T] {
	inner := NewInternal(size, sum, recompute, subcount, children)
	inner.owner = s.Editable()
	return &Owned[T]{n: inner, s: s}
}

func (o *Owned[T]) node() *Node[T] {
	assert(o != nil && o.n != nil, "use of a released node handle")
	return o.n
}

// Node returns the node under edit. The node must not be published while the
// handle is in use.
func (o *Owned[T]) Node() *Node[T] {
	return o.node()
}

// Session returns the session owning the handle.
func (o *Owned[T]) Session() Session {
	return o.s
}

// SetItem replaces the element at index i of a leaf.
func (o *Owned[T]) SetItem(i int, item T) {
	o.node().items[i] = item
}

// SetChild installs child at index i of an internal node. The grandchild
// count follows the change. For relaxed nodes the stale window is widened to
// cover i; callers replacing a non-terminal child of a strict node with a
// non-full one must call Relax.
func (o *Owned[T]) SetChild(i int, child *Node[T]) {
	n := o.node()
	n.subcount += child.Len() - n.nodes[i].Len()
	n.nodes[i] = child
	if n.recompute != Strict {
		n.recompute = max(n.recompute, len(n.nodes)-i)
	}
}

// EditChild returns a handle on the child at index i, first replacing the
// child by an editable clone unless the session already owns it.
func (o *Owned[T]) EditChild(i int) *Owned[T] {
	n := o.node()
	child := n.nodes[i]
	if !child.IsEditable(o.s) {
		child = child.CloneToGroup(o.s)
		n.nodes[i] = child
	}
	return &Owned[T]{n: child, s: o.s}
}

// AddSize adjusts the cached subtree size by delta.
func (o *Owned[T]) AddSize(delta int) {
	o.node().size += delta
}

// Relax turns a strict node into a relaxed one with every cumulative sum
// marked stale.
func (o *Owned[T]) Relax() {
	n := o.node()
	if n.recompute == Strict {
		n.recompute = n.Len()
	}
}

// ReserveChildAt replaces the child at index i by a placeholder reserved by
// the handle's session and returns the original child for the caller to
// transform. Negative indices count from the end.
func (o *Owned[T]) ReserveChildAt(i int) *Node[T] {
	n := o.node()
	index := normalizeIndex(len(n.nodes), i)
	child := n.nodes[index]
	n.nodes[index] = child.ToReservedPlaceholder(o.s)
	return child
}

// CommitPlaceholder completes the reservation of the child at index i: the
// placeholder in that slot takes over the cached values and the slot count of
// actual. It returns a handle for filling the placeholder's slots. Negative
// indices count from the end.
func (o *Owned[T]) CommitPlaceholder(i int, actual *Node[T]) *Owned[T] {
	n := o.node()
	index := normalizeIndex(len(n.nodes), i)
	p := n.nodes[index]
	assert(p != nil && p.IsReservedFor(o.s), "slot %d does not hold a placeholder of session %d", index, o.s)
	n.subcount += actual.Len() - p.Len()
	p.size = actual.size
	p.sum = actual.sum
	p.recompute = actual.recompute
	p.subcount = actual.subcount
	if actual.isLeafShaped() && p.isLeafShaped() {
		p.items = resize(p.items, len(actual.items))
	} else {
		p.items = nil
		p.nodes = resize(p.nodes, len(actual.nodes))
	}
	if n.recompute != Strict {
		n.recompute = max(n.recompute, len(n.nodes)-index)
	}
	return &Owned[T]{n: p, s: o.s}
}

// Reserve ends the edit and returns the node reserved by the handle's
// session, for use as a placeholder. The handle is unusable afterwards.
func (o *Owned[T]) Reserve() *Node[T] {
	n := o.node()
	n.owner = o.s.Reserved()
	o.n = nil
	return n
}

// Release ends the edit and returns the node tagged as shared. Every node
// below it still owned by the handle's session is published along with it,
// so later edits of the same session have to clone again. The handle is
// unusable afterwards.
func (o *Owned[T]) Release() *Node[T] {
	n := o.node()
	count := release(n, o.s)
	o.n = nil
	tracer().Debugf("released %d nodes of session %d, root size %d", count, o.s, n.size)
	return n
}

// release tags n and its descendants owned by s as shared. Nodes not owned
// by s have no descendants owned by s, so the walk stops there.
func release[T any](n *Node[T], s Session) int {
	if n == nil || !n.ownedBy(s) {
		return 0
	}
	n.owner = Shared
	count := 1
	for _, child := range n.nodes {
		count += release(child, s)
	}
	return count
}

func normalizeIndex(length, i int) int {
	index := radix.NormalizeIndex(length, i)
	assert(index >= 0, "child index %d out of range [0,%d)", i, length)
	return index
}
