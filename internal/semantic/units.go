package semantic

import (
	"github.com/pcpkit/pmderive/internal/ast"
	"github.com/pcpkit/pmderive/internal/units"
)

// MapUnits reconciles the per-axis scales of n's two operands (spec.md
// §4.D's map_units), accumulating rescale factors into each operand's
// Info.MulScale/DivScale, and writes n's own resulting Units. It forces
// n's result value type to F64 whenever any rescale was applied.
//
// The caller (AnalyzeBinary, map_desc) has already validated dimension legality for
// n's operator; MapUnits only combines dimensions, reconciles scales,
// and performs the operand rescale bookkeeping.
func MapUnits(n *ast.Node) {
	left, right := n.Left, n.Right
	result := combineDims(n)

	rescaled := false

	result.ScaleSpace = reconcileAxis(
		left.Descriptor.Units.DimSpace, right.Descriptor.Units.DimSpace,
		left.Descriptor.Units.ScaleSpace, right.Descriptor.Units.ScaleSpace,
		units.SpaceFactor,
		func(factor int64, mul bool) { applyFactor(left.Info, factor, mul) },
		func(factor int64, mul bool) { applyFactor(right.Info, factor, mul) },
		func(s units.SpaceScale) { left.Descriptor.Units.ScaleSpace = s },
		func(s units.SpaceScale) { right.Descriptor.Units.ScaleSpace = s },
		&rescaled,
	)
	result.ScaleTime = reconcileAxis(
		left.Descriptor.Units.DimTime, right.Descriptor.Units.DimTime,
		left.Descriptor.Units.ScaleTime, right.Descriptor.Units.ScaleTime,
		units.TimeFactor,
		func(factor int64, mul bool) { applyFactor(left.Info, factor, mul) },
		func(factor int64, mul bool) { applyFactor(right.Info, factor, mul) },
		func(s units.TimeScale) { left.Descriptor.Units.ScaleTime = s },
		func(s units.TimeScale) { right.Descriptor.Units.ScaleTime = s },
		&rescaled,
	)
	result.ScaleCount = reconcileAxis(
		left.Descriptor.Units.DimCount, right.Descriptor.Units.DimCount,
		left.Descriptor.Units.ScaleCount, right.Descriptor.Units.ScaleCount,
		units.CountFactor,
		func(factor int64, mul bool) { applyFactor(left.Info, factor, mul) },
		func(factor int64, mul bool) { applyFactor(right.Info, factor, mul) },
		func(s units.CountScale) { left.Descriptor.Units.ScaleCount = s },
		func(s units.CountScale) { right.Descriptor.Units.ScaleCount = s },
		&rescaled,
	)

	n.Descriptor.Units = result
	if rescaled {
		n.Descriptor.ValueType = units.F64
	}
}

// reconcileAxis handles one of the three unit axes. When both operands
// carry a non-zero dimension on this axis and their scales differ, the
// smaller-scaled operand is rescaled up to match the larger: the
// multiplicative factor is accumulated into that operand's Info —
// MulScale if its dimension on this axis is in denominator position
// (< 0), DivScale otherwise (spec.md §4.D) — and the operand's own
// recorded scale is advanced to match, so a second pass over the same
// tree sees equal scales and does nothing (spec.md §8's fixed-point
// property). The chosen/larger scale (or the sole contributing
// operand's scale) is returned for the node's own result.
func reconcileAxis[S ~int](
	leftDim, rightDim int8,
	leftScale, rightScale S,
	factorOf func(from, to S) int64,
	applyLeft, applyRight func(factor int64, denominatorPosition bool),
	setLeftScale, setRightScale func(S),
	rescaled *bool,
) S {
	switch {
	case leftDim != 0 && rightDim != 0:
		if leftScale == rightScale {
			return leftScale
		}
		if leftScale > rightScale {
			applyRight(factorOf(rightScale, leftScale), rightDim < 0)
			setRightScale(leftScale)
			*rescaled = true
			return leftScale
		}
		applyLeft(factorOf(leftScale, rightScale), leftDim < 0)
		setLeftScale(rightScale)
		*rescaled = true
		return rightScale
	case leftDim != 0:
		return leftScale
	case rightDim != 0:
		return rightScale
	default:
		var zero S
		return zero
	}
}

func applyFactor(info *ast.Info, factor int64, denominatorPosition bool) {
	if info == nil {
		return
	}
	if denominatorPosition {
		info.MulScale *= factor
	} else {
		info.DivScale *= factor
	}
}

func combineDims(n *ast.Node) units.Units {
	l, r := n.Left.Descriptor.Units, n.Right.Descriptor.Units
	switch {
	case n.Kind == ast.Mul:
		return l.Mul(r)
	case n.Kind == ast.Div:
		return l.Div(r)
	case n.Kind.IsRelational():
		return relationalDims(n.Left, n.Right)
	default: // Add, Sub
		return l
	}
}

func relationalDims(left, right *ast.Node) units.Units {
	if left.Descriptor.Units.SameDimensions(right.Descriptor.Units) {
		return left.Descriptor.Units
	}
	if isLiteral(right) {
		return left.Descriptor.Units
	}
	return right.Descriptor.Units
}

func isLiteral(n *ast.Node) bool {
	return n.Kind == ast.Integer || n.Kind == ast.Double
}
