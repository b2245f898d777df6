package rrb

import "errors"

var (
	// ErrInvariant signals a violated structural node invariant.
	ErrInvariant = errors.New("rrb: invariant violated")
	// ErrIndexOutOfBounds signals an ordinal outside of a node's range.
	ErrIndexOutOfBounds = errors.New("rrb: index out of bounds")
)
