package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pcpkit/pmderive/internal/units"
)

// String renders n as a fully parenthesized expression. Every binary,
// ternary, and unary-operator (-, !) node is wrapped in parentheses, and
// a function call renders as name(arg), so that re-parsing
// the result always reproduces the same tree regardless of the
// original's paren usage (spec.md §8's round-trip property).
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	switch {
	case n.Kind.IsLeaf():
		return n.leafString()
	case n.Kind == Quest:
		then, els := n.Right.Left, n.Right.Right
		return fmt.Sprintf("(%s ? %s : %s)", n.Left, then, els)
	case n.Kind == Colon:
		return fmt.Sprintf("%s : %s", n.Left, n.Right)
	case n.Kind == Neg:
		return fmt.Sprintf("(-%s)", n.Left)
	case n.Kind == Not:
		return fmt.Sprintf("(!%s)", n.Left)
	case n.Kind.IsFunction():
		return fmt.Sprintf("%s(%s)", n.Kind, n.Left)
	default:
		return fmt.Sprintf("(%s %s %s)", n.Left, n.Kind, n.Right)
	}
}

func (n *Node) leafString() string {
	if n.Kind != Integer && n.Kind != Double {
		return n.Value
	}
	suffix := unitSuffix(n.Descriptor.Units)
	if suffix == "" {
		return n.Value
	}
	return n.Value + suffix
}

// unitSuffix renders a non-dimensionless Units value as the "units"
// clause grammar accepts after a numeric literal (spec.md §4.A/§4.B),
// e.g. " byte", " /sec", " Kbyte /sec", " byte /sec^2". Numerator terms
// come first, since the units sub-lexer accepts '/' terms only after them.
func unitSuffix(u units.Units) string {
	if u.IsDimensionless() {
		return ""
	}
	var parts []string
	if u.DimSpace != 0 {
		parts = append(parts, dimString(u.ScaleSpace.String(), u.DimSpace))
	}
	if u.DimTime != 0 {
		parts = append(parts, dimString(u.ScaleTime.String(), u.DimTime))
	}
	if u.DimCount != 0 {
		parts = append(parts, dimString(u.ScaleCount.String(), u.DimCount))
	}
	sort.SliceStable(parts, func(i, j int) bool {
		return !strings.HasPrefix(parts[i], "/") && strings.HasPrefix(parts[j], "/")
	})
	return " " + strings.Join(parts, " ")
}

func dimString(name string, dim int8) string {
	switch {
	case dim == 1:
		return name
	case dim == -1:
		return "/" + name
	case dim < 0:
		return fmt.Sprintf("/%s^%d", name, -int(dim))
	default:
		return fmt.Sprintf("%s^%d", name, dim)
	}
}
