package radix

import "sync/atomic"

const (
	// BranchBits is log2 of the branching factor.
	BranchBits = 5
	// Branching is the maximum number of children per node.
	Branching = 1 << BranchBits
	// BranchMask extracts a child index from a shifted ordinal.
	BranchMask = Branching - 1
)

var lastID atomic.Int64

// NextID returns a process-wide unique, monotonically increasing id.
// The first id issued is 1; 0 is never returned.
func NextID() int64 {
	return lastID.Add(1)
}

// Capacity is the number of elements a maximally packed child holds when its
// parent sits at the given shift.
func Capacity(shift int) int {
	return 1 << shift
}

// NodeCapacity is the number of elements a maximally packed node at the given
// shift holds.
func NodeCapacity(shift int) int {
	return Branching << shift
}

// ShiftDownRoundUp divides value by 2^shift, rounding up.
func ShiftDownRoundUp(value, shift int) int {
	return (value + (1 << shift) - 1) >> shift
}

// ShiftFor returns the shift of the root of a strict tree holding count
// elements. A tree of up to Branching elements is a single leaf (shift 0).
func ShiftFor(count int) int {
	shift := 0
	for count > Branching {
		count = ShiftDownRoundUp(count, BranchBits)
		shift += BranchBits
	}
	return shift
}

// NormalizeIndex maps a possibly negative index into [0, length). Negative
// indices count from the end. It returns -1 if the index is out of range.
func NormalizeIndex(length, index int) int {
	if index < 0 {
		index += length
	}
	if index < 0 || index >= length {
		return -1
	}
	return index
}

// Abs returns the absolute value of x.
func Abs[I ~int | ~int32 | ~int64](x I) I {
	if x < 0 {
		return -x
	}
	return x
}
