package semantic

import (
	"github.com/pcpkit/pmderive/internal/ast"
	"github.com/pcpkit/pmderive/internal/errors"
	"github.com/pcpkit/pmderive/internal/units"
)

// AnalyzeNeg implements the unary '-' rule (spec.md §4.D): the operand
// must be numeric; unsigned operands become their signed counterpart,
// everything else (including units, semantics, instance domain) is
// inherited unchanged.
func AnalyzeNeg(n *ast.Node, ch *errors.Channel) bool {
	operand := n.Left
	if !operand.Descriptor.ValueType.IsNumeric() {
		ch.Set(newErr("Non-arithmetic operand for unary negation"))
		return false
	}
	n.Descriptor = operand.Descriptor
	n.Descriptor.ValueType = operand.Descriptor.ValueType.Negate()
	return true
}

// AnalyzeNot implements logical negation: the operand must be a
// dimensionless numeric (the U32 boolean flag a relational/boolean
// subtree already produces), and the result is always U32/dimensionless.
func AnalyzeNot(n *ast.Node, ch *errors.Channel) bool {
	operand := n.Left
	if !operand.Descriptor.ValueType.IsNumeric() || !operand.Descriptor.Units.IsDimensionless() {
		ch.Set(newErr("Non-arithmetic operand for unary negation"))
		return false
	}
	n.Descriptor = ast.Descriptor{
		ValueType:      units.U32,
		Semantics:      units.Instant,
		InstanceDomain: operand.Descriptor.InstanceDomain,
	}
	return true
}
