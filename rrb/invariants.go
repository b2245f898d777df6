package rrb

import (
	"fmt"

	"github.com/AreeseDT/collectable/radix"
)

// Check validates the structural invariants of the tree rooted at root, with
// shift being the root's shift:
//
//   - a node's size equals the sum of its children's sizes,
//   - a node's subcount equals the number of its grandchild slots,
//   - no node has more than radix.Branching slots,
//   - cumulative sums outside of a relaxed node's stale window are exact,
//   - non-terminal children of strict nodes are maximally full.
//
// Check does not repair caches. It is meant for tests.
func Check[T any](root *Node[T], shift int) error {
	if root == nil {
		return fmt.Errorf("%w: nil root", ErrInvariant)
	}
	if shift < 0 || shift%radix.BranchBits != 0 {
		return fmt.Errorf("%w: illegal shift %d", ErrInvariant, shift)
	}
	_, err := checkNode(root, shift, "root")
	return err
}

func checkNode[T any](n *Node[T], shift int, path string) (int, error) {
	width := n.Len()
	if width > radix.Branching {
		return 0, fmt.Errorf("%w: %s has %d slots, exceeding %d", ErrInvariant, path, width, radix.Branching)
	}
	if n.size > radix.NodeCapacity(shift) {
		return 0, fmt.Errorf("%w: %s size %d exceeds capacity %d", ErrInvariant, path, n.size, radix.NodeCapacity(shift))
	}
	if shift == 0 {
		if len(n.nodes) > 0 {
			return 0, fmt.Errorf("%w: leaf %s holds child nodes", ErrInvariant, path)
		}
		if n.size != len(n.items) {
			return 0, fmt.Errorf("%w: leaf %s size %d != %d items", ErrInvariant, path, n.size, len(n.items))
		}
		return n.size, nil
	}
	if len(n.items) > 0 {
		return 0, fmt.Errorf("%w: internal node %s holds elements", ErrInvariant, path)
	}
	trusted := width
	if n.recompute != Strict {
		if n.recompute < 0 {
			return 0, fmt.Errorf("%w: %s has negative stale window %d", ErrInvariant, path, n.recompute)
		}
		trusted = max(0, width-n.recompute)
	}
	capacity := radix.Capacity(shift)
	size, subcount := 0, 0
	for i, child := range n.nodes {
		childPath := fmt.Sprintf("%s/%d", path, i)
		if child == nil {
			return 0, fmt.Errorf("%w: %s is unset", ErrInvariant, childPath)
		}
		childSize, err := checkNode(child, shift-radix.BranchBits, childPath)
		if err != nil {
			return 0, err
		}
		size += childSize
		subcount += child.Len()
		if n.recompute == Strict && i < width-1 && childSize != capacity {
			return 0, fmt.Errorf("%w: %s is not full (%d of %d) under a strict parent",
				ErrInvariant, childPath, childSize, capacity)
		}
		if n.recompute != Strict && i < trusted && child.sum != size {
			return 0, fmt.Errorf("%w: %s has trusted sum %d, expected %d",
				ErrInvariant, childPath, child.sum, size)
		}
	}
	if size != n.size {
		return 0, fmt.Errorf("%w: %s size %d != %d summed over children", ErrInvariant, path, n.size, size)
	}
	if subcount != n.subcount {
		return 0, fmt.Errorf("%w: %s subcount %d != %d", ErrInvariant, path, n.subcount, subcount)
	}
	return size, nil
}
