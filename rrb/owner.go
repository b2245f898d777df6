package rrb

import (
	"github.com/AreeseDT/collectable/radix"
)

// Session identifies one batch of related mutations. Sessions are positive
// and never reused within a process.
type Session int64

// NewSession issues a fresh edit session.
func NewSession() Session {
	return Session(radix.NextID())
}

// Tag is a node's ownership tag. The magnitude names a session, the sign
// encodes the status: positive is editable, negative is reserved.
type Tag int64

// Shared tags nodes which are immutable and may be referenced by any number
// of tree versions.
const Shared Tag = 0

// Editable returns the tag of nodes editable by s.
func (s Session) Editable() Tag { return Tag(s) }

// Reserved returns the tag of nodes reserved by s.
func (s Session) Reserved() Tag { return Tag(-s) }

// Session returns the session a tag refers to, or 0 for shared nodes.
func (t Tag) Session() Session { return Session(radix.Abs(t)) }

// Status selects what happens to a node's tag when it is cloned or wrapped.
type Status uint8

const (
	// NoChange keeps the tag.
	NoChange Status = iota
	// Reserve flips the tag to reserved.
	Reserve
	// Release flips the tag to shared.
	Release
)

func (st Status) String() string {
	switch st {
	case NoChange:
		return "no-change"
	case Reserve:
		return "reserve"
	case Release:
		return "release"
	}
	return "unknown"
}

// IsEditable reports whether session s may mutate n in place.
func (n *Node[T]) IsEditable(s Session) bool {
	return s > 0 && n.owner == s.Editable()
}

// IsReserved reports whether n is reserved by any session.
func (n *Node[T]) IsReserved() bool {
	return n.owner < 0
}

// IsReservedFor reports whether n is reserved by session s.
func (n *Node[T]) IsReservedFor(s Session) bool {
	return s > 0 && n.owner == s.Reserved()
}

// IsShared reports whether n is immutable.
func (n *Node[T]) IsShared() bool {
	return n.owner == Shared
}

// ownedBy reports whether session s may write cache fields of n, i.e. n is
// editable or reserved by s.
func (n *Node[T]) ownedBy(s Session) bool {
	return s > 0 && n.owner.Session() == s
}

// ShallowCloneWithStatus returns a clone of n with its tag changed according
// to status. The children slice is shared only if neither n nor the clone
// may be edited in place.
func (n *Node[T]) ShallowCloneWithStatus(status Status) *Node[T] {
	tag := n.owner
	switch status {
	case Release:
		tag = Shared
	case Reserve:
		if tag > 0 {
			tag = -tag
		}
	}
	if tag > 0 || n.owner > 0 {
		return n.Clone(tag)
	}
	return n.ShallowClone(tag)
}

// CloneToGroup returns a clone of n editable by s. The clone owns its children
// slice, so it may be edited without disturbing n.
func (n *Node[T]) CloneToGroup(s Session) *Node[T] {
	return n.Clone(s.Editable())
}

// CloneToGroupPreserving is CloneToGroup, except that a reserved n yields a
// clone reserved by s.
func (n *Node[T]) CloneToGroupPreserving(s Session) *Node[T] {
	if n.IsReserved() {
		return n.Clone(s.Reserved())
	}
	return n.Clone(s.Editable())
}

// ToReservedPlaceholder returns a clone of n reserved by s, keeping n's cached
// values but with a children slice of the same length left unset. The
// placeholder stands in for content still being computed, see
// Owned.CommitPlaceholder.
func (n *Node[T]) ToReservedPlaceholder(s Session) *Node[T] {
	p := &Node[T]{
		size:      n.size,
		sum:       n.sum,
		recompute: n.recompute,
		subcount:  n.subcount,
		owner:     s.Reserved(),
	}
	if n.nodes != nil {
		p.nodes = make([]*Node[T], len(n.nodes))
	} else {
		p.items = make([]T, len(n.items))
	}
	return p
}

// prepareForRelease readies n for publication at the end of session s.
// Nodes reserved by s are flipped to shared in place, nodes reserved by other
// sessions are cloned as shared, and everything else is returned unchanged.
func (n *Node[T]) prepareForRelease(s Session) *Node[T] {
	if n.IsReservedFor(s) {
		release(n, s)
		return n
	}
	if n.IsReserved() {
		return n.ShallowCloneWithStatus(Release)
	}
	return n
}

func resize[E any](s []E, length int) []E {
	if length <= cap(s) {
		old := len(s)
		s = s[:length]
		if length > old {
			clear(s[old:])
		}
		return s
	}
	grown := make([]E, length)
	copy(grown, s)
	return grown
}
