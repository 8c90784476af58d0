// Package semantic implements the unit/type analyser of spec.md §4.D:
// map_units and map_desc for binary operators, plus the ternary, unary
// negation, and function-specific rules, all reporting through a
// *errors.Channel on failure.
package semantic

import (
	"fmt"

	"github.com/pcpkit/pmderive/internal/ast"
	"github.com/pcpkit/pmderive/internal/errors"
	"github.com/pcpkit/pmderive/internal/units"
)

// AnalyzeBinary runs map_desc (spec.md §4.D) on n, a non-ternary binary
// node whose Left/Right already carry fully analysed descriptors. It
// reports a diagnostic on ch and returns false on any rule violation.
func AnalyzeBinary(n *ast.Node, ch *errors.Channel) bool {
	left, right := n.Left, n.Right
	ld, rd := left.Descriptor, right.Descriptor

	if !legalForSemantics(n.Kind, ld.Semantics, rd.Semantics) {
		if ld.Semantics.IsCounter() && rd.Semantics.IsCounter() {
			ch.Set(newErr(ErrIllegalOpCounters))
		} else {
			ch.Set(newErr(ErrIllegalOpCounterMix))
		}
		return false
	}

	if !ld.ValueType.IsNumeric() {
		ch.Set(newErr(fmt.Sprintf(ErrNonArithmeticOperand, "left")))
		return false
	}
	if !rd.ValueType.IsNumeric() {
		ch.Set(newErr(fmt.Sprintf(ErrNonArithmeticOperand, "right")))
		return false
	}

	switch n.Kind {
	case ast.Add, ast.Sub:
		if !ld.Units.SameDimensions(rd.Units) {
			ch.Set(newErr(ErrDimensionsDiffer))
			return false
		}
	case ast.Lt, ast.Le, ast.Eq, ast.Ne, ast.Ge, ast.Gt:
		if !ld.Units.SameDimensions(rd.Units) && !isLiteral(left) && !isLiteral(right) {
			ch.Set(newErr(ErrDimensionsDiffer))
			return false
		}
	case ast.And, ast.Or:
		if !ld.Units.IsDimensionless() || !rd.Units.IsDimensionless() {
			ch.Set(newErr(ErrDimensionsDiffer))
			return false
		}
	}

	if n.Kind == ast.Mul || n.Kind == ast.Div || n.Kind.IsRelational() {
		if ld.Semantics.IsCounter() != rd.Semantics.IsCounter() {
			if ld.Semantics.IsCounter() && !rd.Units.IsDimensionless() {
				ch.Set(newErr(fmt.Sprintf(ErrNonCounterNotDimless, "right")))
				return false
			}
			if rd.Semantics.IsCounter() && !ld.Units.IsDimensionless() {
				ch.Set(newErr(fmt.Sprintf(ErrNonCounterNotDimless, "left")))
				return false
			}
		}
	}

	indom, ok := units.Unify(ld.InstanceDomain, rd.InstanceDomain)
	if !ok {
		ch.Set(newErr(ErrInstanceDomainMismatch))
		return false
	}

	n.Descriptor.Semantics = resultSemantics(left, right)
	n.Descriptor.ValueType = resultValueType(n.Kind, ld.ValueType, rd.ValueType)
	n.Descriptor.InstanceDomain = indom

	if n.Kind.IsArithmetic() || n.Kind.IsRelational() {
		MapUnits(n)
	}
	// A comparison or boolean connective yields a dimensionless flag: its
	// own value type and units are fixed regardless of what its operands
	// (or map_units' F64-forcing rescale) computed.
	if n.Kind.IsRelational() || n.Kind.IsBoolean() {
		n.Descriptor.ValueType = units.U32
		n.Descriptor.Units = units.None
	}

	return true
}

// legalForSemantics implements map_desc step 1: which operators a pair
// of counter/non-counter operands may combine with.
func legalForSemantics(kind ast.Kind, ls, rs units.Semantics) bool {
	lc, rc := ls.IsCounter(), rs.IsCounter()
	arithOrRel := kind.IsArithmetic() || kind.IsRelational() || kind.IsBoolean()
	if !arithOrRel {
		return false
	}
	switch {
	case lc && rc:
		return kind == ast.Add || kind == ast.Sub || kind.IsRelational() || kind.IsBoolean()
	case lc && !rc:
		return kind == ast.Mul || kind == ast.Div || kind.IsRelational() || kind.IsBoolean()
	case !lc && rc:
		return kind == ast.Mul || kind.IsRelational() || kind.IsBoolean()
	default:
		return true
	}
}

// resultSemantics implements map_desc step 2-3: if both operands are
// non-counter, the result is Discrete iff both are Discrete, otherwise
// Instant; when a counter is involved, the candidate operand's
// semantics (preferring the non-literal side, else the right) wins.
func resultSemantics(left, right *ast.Node) units.Semantics {
	ld, rd := left.Descriptor, right.Descriptor
	if !ld.Semantics.IsCounter() && !rd.Semantics.IsCounter() {
		if ld.Semantics == units.Discrete && rd.Semantics == units.Discrete {
			return units.Discrete
		}
		return units.Instant
	}
	return candidateDescriptor(left, right).Semantics
}

// candidateDescriptor implements map_desc step 2: prefer a non-literal
// operand as the source of defaults; else use the right.
func candidateDescriptor(left, right *ast.Node) ast.Descriptor {
	if !isLiteral(left) {
		return left.Descriptor
	}
	return right.Descriptor
}

// resultValueType implements map_desc step 5.
func resultValueType(kind ast.Kind, lt, rt units.ValueType) units.ValueType {
	switch {
	case kind == ast.Div:
		return units.F64
	case kind.IsRelational() || kind.IsBoolean():
		return units.U32
	default:
		return units.Promote(lt, rt)
	}
}

func newErr(message string) *errors.CompilerError {
	return errors.New(errors.Position{}, message, "")
}
