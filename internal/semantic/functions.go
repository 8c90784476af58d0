package semantic

import (
	"fmt"

	"github.com/pcpkit/pmderive/internal/ast"
	"github.com/pcpkit/pmderive/internal/errors"
	"github.com/pcpkit/pmderive/internal/units"
)

// AnalyzeFunction dispatches to the function-specific rule for n's kind
// (spec.md §4.D's "Functions" subsection). n.Left is the already
// analysed operand (the anon pseudo-argument for FuncAnon).
func AnalyzeFunction(n *ast.Node, ch *errors.Channel) bool {
	switch n.Kind {
	case ast.FuncCount:
		return analyzeCount(n)
	case ast.FuncInstant:
		return analyzeInstant(n)
	case ast.FuncAvg, ast.FuncSum, ast.FuncMin, ast.FuncMax:
		return analyzeAggregate(n, ch)
	case ast.FuncRate:
		return analyzeRate(n, ch)
	case ast.FuncDelta:
		return analyzeDelta(n, ch)
	case ast.FuncAnon:
		return analyzeAnon(n)
	default:
		ch.Set(newErr(fmt.Sprintf("Unsupported function %s", n.Kind)))
		return false
	}
}

// count(m): always succeeds, regardless of operand.
func analyzeCount(n *ast.Node) bool {
	n.Descriptor = ast.Descriptor{
		ValueType: units.U32,
		Semantics: units.Instant,
		Units:     units.Units{DimCount: 1, ScaleCount: units.CountOnes},
	}
	return true
}

// instant(m): inherits the operand's descriptor, forcing counter to
// instant semantics.
func analyzeInstant(n *ast.Node) bool {
	n.Descriptor = n.Left.Descriptor
	if n.Descriptor.Semantics.IsCounter() {
		n.Descriptor.Semantics = units.Instant
	}
	return true
}

// avg/sum/min/max(m): operand must be numeric; result is a scalar
// instant, avg additionally forces F32.
func analyzeAggregate(n *ast.Node, ch *errors.Channel) bool {
	operand := n.Left
	if !operand.Descriptor.ValueType.IsNumeric() {
		ch.Set(newErr(fmt.Sprintf(ErrNonArithmeticFunction, n.Kind)))
		return false
	}
	n.Descriptor = operand.Descriptor
	n.Descriptor.Semantics = units.Instant
	n.Descriptor.InstanceDomain = units.NoIndom
	if n.Kind == ast.FuncAvg {
		n.Descriptor.ValueType = units.F32
	}
	return true
}

// rate(m): operand must be numeric with dimTime in {0,1}; the result is
// an F64 instant whose time dimension is decremented by one.
func analyzeRate(n *ast.Node, ch *errors.Channel) bool {
	operand := n.Left
	if !operand.Descriptor.ValueType.IsNumeric() {
		ch.Set(newErr(fmt.Sprintf(ErrNonArithmeticFunction, n.Kind)))
		return false
	}
	dimTime := operand.Descriptor.Units.DimTime
	if dimTime != 0 && dimTime != 1 {
		ch.Set(newErr(ErrBadTimeDimension))
		return false
	}

	result := operand.Descriptor.Units
	result.DimTime = dimTime - 1
	if result.DimTime == 0 {
		result.ScaleTime = 0
	} else {
		result.ScaleTime = units.Sec
	}

	n.Descriptor = ast.Descriptor{
		ValueType:      units.F64,
		Semantics:      units.Instant,
		InstanceDomain: operand.Descriptor.InstanceDomain,
		Units:          result,
	}
	return true
}

// delta(m): operand must be numeric; the result is an instant that
// inherits the operand's instance domain and units unchanged.
func analyzeDelta(n *ast.Node, ch *errors.Channel) bool {
	operand := n.Left
	if !operand.Descriptor.ValueType.IsNumeric() {
		ch.Set(newErr(fmt.Sprintf(ErrNonArithmeticFunction, n.Kind)))
		return false
	}
	n.Descriptor = operand.Descriptor
	n.Descriptor.Semantics = units.Instant
	return true
}

// anon(T): never fails; synthesises a dimensionless scalar instant of
// the type tag's value type (already assigned by the parser).
func analyzeAnon(n *ast.Node) bool {
	n.Descriptor = ast.Descriptor{
		ValueType: n.Descriptor.ValueType,
		Semantics: units.Instant,
	}
	return true
}
