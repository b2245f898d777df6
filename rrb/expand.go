package rrb

// Expansion describes a change of a node's child range: slots to add (or,
// if negative, remove) at the left and right edge, and the change of the
// subtree's element count.
type Expansion struct {
	PadLeft   int
	PadRight  int
	SizeDelta int
}

// IsZero reports whether e changes nothing.
func (e Expansion) IsZero() bool {
	return e == Expansion{}
}

// AdjustRange grows or shrinks the child range of the node in place. Negative
// pads remove slots, positive pads open unset slots for the caller to fill.
// Opening slots in an internal node does not change its size; see Expand.
func (o *Owned[T]) AdjustRange(padLeft, padRight int, isLeaf bool) {
	n := o.node()
	adjustBounds(n, n, padLeft, padRight, isLeaf)
}

// Expand adjusts the child range as AdjustRange does and adds e.SizeDelta to
// the size of internal nodes. A leaf's size always equals its slot count.
func (o *Owned[T]) Expand(e Expansion, isLeaf bool) {
	n := o.node()
	adjustBounds(n, n, e.PadLeft, e.PadRight, isLeaf)
	if !isLeaf {
		n.size += e.SizeDelta
	}
}

// CloneWithAdjustedRange returns a copy of n editable by s with its child
// range adjusted as by AdjustRange; n is left untouched. With preserveStatus
// set, a reserved n yields a copy reserved by s.
func (n *Node[T]) CloneWithAdjustedRange(s Session, padLeft, padRight int, isLeaf, preserveStatus bool) *Node[T] {
	tag := s.Editable()
	if preserveStatus && n.IsReserved() {
		tag = s.Reserved()
	}
	dest := &Node[T]{
		size:      n.size,
		recompute: n.recompute,
		subcount:  n.subcount,
		owner:     tag,
	}
	adjustBounds(n, dest, padLeft, padRight, isLeaf)
	return dest
}

// adjustBounds writes the adjusted child range of src into dest, which is
// either src itself or a fresh node.
func adjustBounds[T any](src, dest *Node[T], padLeft, padRight int, isLeaf bool) {
	width := src.Len()
	start, end := 0, width
	if padLeft < 0 {
		start = -padLeft
	}
	if padRight < 0 {
		end = width + padRight
	}
	assert(start <= end, "cannot remove %d+%d slots from a node with %d", -padLeft, -padRight, width)
	at := max(padLeft, 0)
	length := end - start + at + max(padRight, 0)
	inPlace := src == dest
	tracer().Debugf("adjust bounds by %+d:%+d, keeping [%d:%d] of %d slots, in place=%v",
		padLeft, padRight, start, end, width, inPlace)

	if isLeaf {
		dest.items = shiftSlots(src.items, inPlace, start, end, at, length)
		dest.nodes = nil
		dest.size = length
		return
	}

	size, subcount := src.size, src.subcount
	for _, child := range src.nodes[:start] {
		size -= child.Size()
		subcount -= child.Len()
	}
	for _, child := range src.nodes[end:] {
		size -= child.Size()
		subcount -= child.Len()
	}
	var recompute int
	switch {
	case src.recompute == Strict && padLeft <= 0 && padRight <= 0:
		// dropping edge children keeps the remaining ones full
		recompute = Strict
	case src.recompute == Strict || padLeft != 0:
		recompute = length
	default:
		recompute = min(max(src.recompute+padRight, 0), length)
	}
	dest.nodes = shiftSlots(src.nodes, inPlace, start, end, at, length)
	dest.items = nil
	dest.size = size
	dest.subcount = subcount
	dest.recompute = recompute
}

// shiftSlots moves s[start:end] to position at of a slice of the given length.
// If inPlace is set, s's backing array is reused when large enough. Slots not
// covered by the moved range are zeroed.
func shiftSlots[E any](s []E, inPlace bool, start, end, at, length int) []E {
	amount := end - start
	if !inPlace || length > cap(s) {
		out := make([]E, length)
		copy(out[at:], s[start:end])
		return out
	}
	out := s[:max(len(s), length)]
	copy(out[at:at+amount], out[start:end]) // copy is overlap-safe
	clear(out[:at])
	clear(out[at+amount:])
	return out[:length]
}

// CreateParent returns a new parent node editable by s with n as its single
// child, used when a tree grows taller or a node is prepared to receive
// siblings. The optional expansion opens slots left and right of n and adds
// to the parent's size. status decides whether the child is installed as is,
// as a placeholder reserved by s, or prepared for release.
//
// The parent is strict only if n is strict and no slots are opened.
func (n *Node[T]) CreateParent(s Session, status Status, e Expansion) *Owned[T] {
	child := n
	switch status {
	case Release:
		child = n.prepareForRelease(s)
	case Reserve:
		child = n.ToReservedPlaceholder(s)
	}
	slots := 1 + e.PadLeft + e.PadRight
	assert(e.PadLeft >= 0 && e.PadRight >= 0, "parent expansion must not be negative: %+v", e)
	children := make([]*Node[T], slots)
	children[e.PadLeft] = child
	recompute := Strict
	if n.recompute != Strict || slots > 1 {
		recompute = slots
	}
	tracer().Debugf("create parent of node of size %d, session %d, status %s, expansion %+v",
		n.size, s, status, e)
	parent := &Node[T]{
		size:      n.size + e.SizeDelta,
		recompute: recompute,
		subcount:  n.Len(),
		owner:     s.Editable(),
		nodes:     children,
	}
	return &Owned[T]{n: parent, s: s}
}
