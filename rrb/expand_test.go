package rrb

import (
	"slices"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestAdjustLeafRemoveLeft(t *testing.T) {
	s := NewSession()
	for k := 0; k <= 10; k++ {
		o := NewOwnedLeaf(s, seq(0, 10))
		o.AdjustRange(-k, 0, true)
		n := o.Node()
		if n.Size() != 10-k {
			t.Fatalf("k=%d: expected size %d, got %d", k, 10-k, n.Size())
		}
		for i := 0; i < n.Size(); i++ {
			d, ok := n.Resolve(i, 0)
			if !ok || d.Item != k+i {
				t.Fatalf("k=%d: element %d is %d, expected %d", k, i, d.Item, k+i)
			}
		}
	}
}

func TestAdjustLeafInsertBothEdges(t *testing.T) {
	s := NewSession()
	o := NewOwnedLeaf(s, []string{"a", "b", "c"})
	o.AdjustRange(2, 1, true)
	n := o.Node()
	if n.Size() != 6 || n.Len() != 6 {
		t.Fatalf("expected 6 slots, got size=%d len=%d", n.Size(), n.Len())
	}
	want := []string{"", "", "a", "b", "c", ""}
	if !slices.Equal(n.Items(), want) {
		t.Errorf("expected %q, got %q", want, n.Items())
	}
	o.SetItem(0, "x")
	o.SetItem(1, "y")
	o.SetItem(5, "z")
	if !slices.Equal(n.Items(), []string{"x", "y", "a", "b", "c", "z"}) {
		t.Errorf("unexpected items %q", n.Items())
	}
}

func TestAdjustLeafInsertLeftRemoveRight(t *testing.T) {
	s := NewSession()
	o := NewOwnedLeaf(s, seq(0, 5))
	o.AdjustRange(1, -2, true)
	n := o.Node()
	if n.Size() != 4 || !slices.Equal(n.Items(), []int{0, 0, 1, 2}) {
		t.Errorf("unexpected result size=%d items=%v", n.Size(), n.Items())
	}
}

func TestAdjustInPlaceReusesCapacity(t *testing.T) {
	s := NewSession()
	items := make([]int, 4, 32)
	copy(items, []int{1, 2, 3, 4})
	o := NewOwnedLeaf(s, items)
	o.AdjustRange(2, 0, true)
	n := o.Node()
	if &n.items[0] != &items[0] {
		t.Errorf("expected in-place shift within existing capacity")
	}
	if !slices.Equal(n.Items(), []int{0, 0, 1, 2, 3, 4}) {
		t.Errorf("overlapping shift corrupted items: %v", n.Items())
	}
}

func TestCloneWithAdjustedRangeLeavesSourceUntouched(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "collectable.rrb")
	defer teardown()
	//
	s := NewSession()
	leaf := NewLeaf(seq(0, 8))
	clone := leaf.CloneWithAdjustedRange(s, -3, 2, true, false)
	if !clone.IsEditable(s) || clone.Size() != 7 {
		t.Fatalf("unexpected clone tag=%d size=%d", clone.Owner(), clone.Size())
	}
	if !slices.Equal(clone.Items()[:5], seq(3, 8)) {
		t.Errorf("unexpected clone items %v", clone.Items())
	}
	if !slices.Equal(leaf.Items(), seq(0, 8)) {
		t.Errorf("source changed: %v", leaf.Items())
	}
	reserved := leaf.Clone(Tag(-42))
	if c := reserved.CloneWithAdjustedRange(s, 0, 0, true, true); !c.IsReservedFor(s) {
		t.Errorf("expected status to be preserved, tag %d", c.Owner())
	}
}

func TestAdjustInternalRemoveRight(t *testing.T) {
	root, shift := Build(seq(0, 100)) // leaves 32, 32, 32, 4
	s := NewSession()
	o := Edit(root, s)
	o.AdjustRange(0, -2, false)
	n := o.Node()
	if n.Size() != 64 || n.Subcount() != 64 || n.Len() != 2 {
		t.Fatalf("unexpected size=%d subcount=%d len=%d", n.Size(), n.Subcount(), n.Len())
	}
	if !n.IsStrict() {
		t.Errorf("dropping trailing children of a strict node should keep it strict")
	}
	if err := Check(n, shift); err != nil {
		t.Errorf("invalid: %v", err)
	}
	if !slices.Equal(lookupAll(t, n, shift), seq(0, 64)) {
		t.Errorf("wrong elements after right trim")
	}
}

func TestAdjustInternalRemoveLeft(t *testing.T) {
	root, shift := Build(seq(0, 100))
	s := NewSession()
	n := root.CloneWithAdjustedRange(s, -1, 0, false, false)
	if n.Size() != 68 || n.Subcount() != 68 || n.Len() != 3 {
		t.Fatalf("unexpected size=%d subcount=%d len=%d", n.Size(), n.Subcount(), n.Len())
	}
	if !slices.Equal(lookupAll(t, n, shift), seq(32, 100)) {
		t.Errorf("expected E[32:], got something else")
	}
	if err := Check(n, shift); err != nil {
		t.Errorf("invalid: %v", err)
	}
	if root.Size() != 100 || root.Len() != 4 {
		t.Errorf("source changed")
	}
}

func TestAdjustRelaxedInternalRemoveRight(t *testing.T) {
	n := relaxedLeaves(10, 20, 5, 7)
	lookupAll(t, n, 5) // close the stale window
	s := NewSession()
	o := Edit(n, s)
	o.AdjustRange(0, -1, false)
	trimmed := o.Node()
	if trimmed.Size() != 35 || trimmed.Recompute() != 0 {
		t.Fatalf("unexpected size=%d recompute=%d", trimmed.Size(), trimmed.Recompute())
	}
	if err := Check(trimmed, 5); err != nil {
		t.Errorf("trusted sums should survive a right trim: %v", err)
	}
}

func TestExpandInternalRight(t *testing.T) {
	root, shift := Build(seq(0, 64))
	extra := NewLeaf(seq(64, 70))
	s := NewSession()
	o := Edit(root, s)
	o.Expand(Expansion{PadRight: 1, SizeDelta: extra.Size()}, false)
	n := o.Node()
	if n.Size() != 70 {
		t.Fatalf("expected size to grow by the declared delta, got %d", n.Size())
	}
	if n.IsStrict() || n.Recompute() != 3 {
		t.Errorf("expected relaxed node with all sums stale, recompute=%d", n.Recompute())
	}
	o.SetChild(2, extra)
	if err := Check(n, shift); err != nil {
		t.Errorf("invalid after expansion: %v", err)
	}
	if !slices.Equal(lookupAll(t, n, shift), seq(0, 70)) {
		t.Errorf("wrong elements after expansion")
	}
}

func TestExpandInternalLeft(t *testing.T) {
	root, shift := Build(seq(10, 74))
	front := NewLeaf(seq(0, 10))
	s := NewSession()
	o := Edit(root, s)
	o.Expand(Expansion{PadLeft: 1, SizeDelta: front.Size()}, false)
	o.SetChild(0, front)
	n := o.Node()
	if n.Size() != 74 || n.Subcount() != 74 {
		t.Fatalf("unexpected size=%d subcount=%d", n.Size(), n.Subcount())
	}
	if !slices.Equal(lookupAll(t, n, shift), seq(0, 74)) {
		t.Errorf("wrong elements after left expansion")
	}
	if n.IsStrict() {
		t.Errorf("node with a non-full first child must stay relaxed")
	}
}

func TestAdjustRangeRejectsOverRemoval(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for removing more slots than present")
		}
	}()
	NewOwnedLeaf(NewSession(), seq(0, 3)).AdjustRange(-2, -2, true)
}

func TestCreateParentOfStrictChild(t *testing.T) {
	child, shift := Build(seq(0, 1024))
	s := NewSession()
	parent := child.CreateParent(s, NoChange, Expansion{}).Release()
	if !parent.IsStrict() || parent.Size() != 1024 || parent.Subcount() != 32 || parent.Len() != 1 {
		t.Fatalf("unexpected parent strict=%v size=%d subcount=%d len=%d",
			parent.IsStrict(), parent.Size(), parent.Subcount(), parent.Len())
	}
	if parent.Child(0) != child {
		t.Errorf("child should be installed as is")
	}
	if err := Check(parent, shift+5); err != nil {
		t.Errorf("invalid parent: %v", err)
	}
}

func TestCreateParentOfRelaxedChild(t *testing.T) {
	child := relaxedLeaves(3, 4)
	parent := child.CreateParent(NewSession(), NoChange, Expansion{}).Node()
	if parent.Recompute() != 1 {
		t.Errorf("relaxed child should yield relaxed parent, recompute=%d", parent.Recompute())
	}
}

func TestCreateParentWithPadding(t *testing.T) {
	child, _ := Build(seq(0, 64))
	s := NewSession()
	o := child.CreateParent(s, NoChange, Expansion{PadLeft: 1, PadRight: 2, SizeDelta: 10})
	parent := o.Node()
	if parent.Len() != 4 || parent.Child(1) != child || parent.Recompute() != 4 {
		t.Fatalf("unexpected parent len=%d recompute=%d", parent.Len(), parent.Recompute())
	}
	if parent.Size() != 74 || !parent.IsEditable(s) {
		t.Errorf("unexpected parent size=%d tag=%d", parent.Size(), parent.Owner())
	}
}

func TestCreateParentReserve(t *testing.T) {
	child, _ := Build(seq(0, 64))
	s := NewSession()
	parent := child.CreateParent(s, Reserve, Expansion{}).Node()
	p := parent.Child(0)
	if p == child || !p.IsReservedFor(s) || p.Size() != 64 {
		t.Errorf("expected a reserved placeholder in the parent")
	}
}

func TestCreateParentRelease(t *testing.T) {
	s := NewSession()
	child := NewLeaf(seq(0, 5)).Clone(s.Reserved())
	parent := child.CreateParent(s, Release, Expansion{}).Node()
	if parent.Child(0) != child || !child.IsShared() {
		t.Errorf("expected child reserved by the session to be released in place")
	}
	if !parent.IsStrict() {
		t.Errorf("strict child without padding should yield strict parent")
	}
}

func TestExpansionIsZero(t *testing.T) {
	if !(Expansion{}).IsZero() || (Expansion{PadRight: 1}).IsZero() {
		t.Errorf("IsZero is broken")
	}
}
