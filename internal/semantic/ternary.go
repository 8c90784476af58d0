package semantic

import (
	"fmt"

	"github.com/pcpkit/pmderive/internal/ast"
	"github.com/pcpkit/pmderive/internal/errors"
	"github.com/pcpkit/pmderive/internal/units"
)

// AnalyzeTernary checks a Quest{Left: guard, Right: Colon{Left: then,
// Right: els}} node per spec.md §4.D's ternary rules, then assigns the
// Quest node the then-branch's descriptor (the two branches have
// already been required to match exactly).
func AnalyzeTernary(n *ast.Node, ch *errors.Channel) bool {
	guard, colon := n.Left, n.Right
	then, els := colon.Left, colon.Right

	if !guard.Descriptor.ValueType.IsNumeric() {
		ch.Set(newErr(ErrTernaryGuardType))
		return false
	}
	if !guard.Descriptor.InstanceDomain.IsScalar() &&
		then.Descriptor.InstanceDomain.IsScalar() && els.Descriptor.InstanceDomain.IsScalar() {
		ch.Set(newErr(ErrTernaryGuardScalar))
		return false
	}

	td, ed := then.Descriptor, els.Descriptor

	if td.ValueType != ed.ValueType {
		ch.Set(newErr(ErrTernaryTypeMismatch))
		return false
	}
	if td.Semantics != ed.Semantics {
		ch.Set(newErr(ErrTernarySemanticsDiffer))
		return false
	}
	if !td.Units.Equal(ed.Units) {
		ch.Set(newErr(fmt.Sprintf(ErrTernaryUnitsDiffer, mismatchedAxis(td.Units, ed.Units))))
		return false
	}
	indom, ok := units.Unify(td.InstanceDomain, ed.InstanceDomain)
	if !ok {
		ch.Set(newErr(ErrTernaryIndomMismatch))
		return false
	}

	colon.Descriptor = td
	n.Descriptor = td
	n.Descriptor.InstanceDomain = indom
	return true
}

// mismatchedAxis names the first axis (space/time/count) on which two
// otherwise-matching Units values diverge, for the ternary diagnostic's
// %s placeholder.
func mismatchedAxis(a, b units.Units) string {
	switch {
	case a.DimSpace != b.DimSpace || a.ScaleSpace != b.ScaleSpace:
		return "space"
	case a.DimTime != b.DimTime || a.ScaleTime != b.ScaleTime:
		return "time"
	default:
		return "count"
	}
}
