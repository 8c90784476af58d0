package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pcpkit/pmderive/internal/units"
)

func sample() *Node {
	left := NewLeaf(Name, "disk.dev.read")
	left.Descriptor = Descriptor{ValueType: units.U64, Semantics: units.Counter, InstanceDomain: "disk"}
	right := NewLeaf(Integer, "2")
	right.Descriptor = Descriptor{ValueType: units.U32}
	return NewBinary(Add, left, right)
}

func TestCloneIsStructurallyEqual(t *testing.T) {
	orig := sample()
	clone := orig.Clone()

	if !orig.Equal(clone) {
		t.Fatalf("clone not structurally equal to original:\n%s\nvs\n%s", orig, clone)
	}
	if diff := cmp.Diff(orig, clone, cmpopts.IgnoreFields(Node{}, "Info")); diff != "" {
		t.Errorf("clone differs (-orig +clone):\n%s", diff)
	}
}

func TestCloneSharesValueStrings(t *testing.T) {
	orig := sample()
	clone := orig.Clone()

	// Same string contents, and per spec.md §3 the bound clone borrows
	// rather than copies; Go string headers can't alias-check directly,
	// so we only assert content equality here.
	if clone.Left.Value != orig.Left.Value {
		t.Fatalf("clone lost literal value")
	}
}

func TestCloneAttachesInfoToNonLiterals(t *testing.T) {
	orig := sample()
	clone := orig.Clone()

	if clone.Info == nil {
		t.Errorf("expected Info on cloned interior node")
	}
	if clone.Left.Info == nil {
		t.Errorf("expected Info on cloned Name leaf (a non-literal)")
	}
	if clone.Right.Info != nil {
		t.Errorf("expected no Info on cloned Integer literal")
	}
	if orig.Info != nil {
		t.Errorf("static tree must not carry Info")
	}
}

func TestStringFullyParenthesized(t *testing.T) {
	n := sample()
	want := "(disk.dev.read + 2)"
	if got := n.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStringUnitSuffix(t *testing.T) {
	n := NewLeaf(Integer, "2")
	n.Descriptor = Descriptor{ValueType: units.U32, Units: units.Units{DimTime: 1, ScaleTime: units.Sec}}
	if got, want := n.String(), "2 sec"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
