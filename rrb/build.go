package rrb

import "github.com/AreeseDT/collectable/radix"

// Build packs items into a strict tree and returns its root and the root's
// shift. All nodes are shared. An empty input yields an empty leaf.
func Build[T any](items []T) (*Node[T], int) {
	if len(items) == 0 {
		return Empty[T](), 0
	}
	level := make([]*Node[T], 0, radix.ShiftDownRoundUp(len(items), radix.BranchBits))
	for start := 0; start < len(items); start += radix.Branching {
		end := min(start+radix.Branching, len(items))
		level = append(level, NewLeaf(append([]T(nil), items[start:end]...)))
	}
	shift := radix.ShiftFor(len(items))
	for range shift / radix.BranchBits {
		level = buildLevel(level)
	}
	tracer().Debugf("built strict tree of %d elements, shift %d", len(items), shift)
	return level[0], shift
}

// buildLevel groups nodes into strict parents.
func buildLevel[T any](nodes []*Node[T]) []*Node[T] {
	parents := make([]*Node[T], 0, radix.ShiftDownRoundUp(len(nodes), radix.BranchBits))
	for start := 0; start < len(nodes); start += radix.Branching {
		end := min(start+radix.Branching, len(nodes))
		children := append([]*Node[T](nil), nodes[start:end]...)
		size, subcount := 0, 0
		for _, child := range children {
			size += child.size
			subcount += child.Len()
			child.sum = size
		}
		parents = append(parents, NewInternal(size, 0, Strict, subcount, children))
	}
	return parents
}
