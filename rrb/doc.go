/*
Package rrb provides the node layer of a relaxed radix-balanced tree (RRB-tree),
the engine underneath collectable's persistent list.

The package is intentionally not a sequence container. It offers the
primitives a sequence type composes into push, pop, update, concatenation
and slicing: nodes with cached sizes, an edit-session ownership protocol,
ordinal resolution with lazy repair of cumulative sums, and range adjustment
of child arrays.

Nodes:
  - a node is either internal (children are nodes) or a leaf (children are
    elements); which one is positional, i.e. known from the depth ("shift"),
  - every node caches its subtree size, the number of grandchild slots and a
    stale window for the cumulative sums of its children,
  - a strict node has full children except possibly the last one, so lookups
    are pure bit arithmetic; relaxed nodes resolve through cumulative sums.

Ownership:
  - every node carries a signed tag: +s means editable by session s, -s means
    reserved by s (a placeholder or a node on its way back to shared), 0 means
    shared and immutable,
  - an Owned handle is the only way to mutate a node's children; it is
    obtained from Edit (which clones unless the node is already editable) and
    turned into a shared node by a one-way Release,
  - shared nodes are never edited in place; a session clones them first.

Resolution repairs stale cumulative sums lazily. Repair may replace a child
slot with a clone carrying the corrected cache, but never changes the
element sequence reachable from a node.

Nothing in this package is safe for concurrent mutation. Shared nodes may be
read from many tree versions, but resolving against a relaxed node writes
cache fields and must not race with other resolutions of the same node.

# BSD License

Copyright (c) The collectable Authors

Please refer to the LICENSE file for details.
*/
package rrb

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'collectable.rrb'.
func tracer() tracing.Trace {
	return tracing.Select("collectable.rrb")
}

func assert(condition bool, msg string, args ...any) {
	if !condition {
		panic(fmt.Sprintf("rrb: "+msg, args...))
	}
}
